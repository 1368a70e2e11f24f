package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hunter-system/hunter/internal/assessment"
	"github.com/hunter-system/hunter/internal/progression"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Message: "success", Data: data})
}

func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Code: http.StatusCreated, Message: "created", Data: data})
}

func fail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Response{Code: code, Message: message})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, progression.ErrHunterNotFound), errors.Is(err, progression.ErrQuestNotFound):
		return http.StatusNotFound
	case errors.Is(err, progression.ErrDuplicateHunter),
		errors.Is(err, progression.ErrAlreadyAssessed),
		errors.Is(err, progression.ErrQuestAlreadyCompleted):
		return http.StatusConflict
	case errors.Is(err, progression.ErrQuestExpired):
		return http.StatusGone
	case errors.Is(err, assessment.ErrIncomplete):
		return http.StatusUnprocessableEntity
	case errors.Is(err, progression.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, progression.ErrInvalidName), errors.Is(err, progression.ErrInvalidRole):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
