package progression

import "errors"

var (
	ErrHunterNotFound        = errors.New("hunter not found")
	ErrDuplicateHunter       = errors.New("hunter name already taken")
	ErrInvalidName           = errors.New("hunter name must not be empty")
	ErrInvalidRole           = errors.New("unknown role")
	ErrQuestNotFound         = errors.New("quest not found")
	ErrQuestExpired          = errors.New("quest belongs to another day")
	ErrQuestAlreadyCompleted = errors.New("quest already completed")
	ErrAlreadyAssessed       = errors.New("hunter already assessed")
	ErrForbidden             = errors.New("permission denied")
)
