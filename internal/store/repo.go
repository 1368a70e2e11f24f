package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int       // id > After
	Before int       // id < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Hunter is the persisted progress of one user.
type Hunter struct {
	ID                string
	Name              string
	Role              string
	TotalXP           int
	CurrentRank       string
	StreakDays        int
	LastStreakDate    string // YYYY-MM-DD of the last fully completed day, "" if none
	RankAssignedAt    time.Time
	QuestsCompleted   int
	QuestsCompletedOn string // YYYY-MM-DD the QuestsCompleted counter refers to
	AssessmentScore   *int
	Stats             map[string]int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HunterRepo manages hunter rows.
type HunterRepo interface {
	// Create inserts a new hunter. Returns ErrDuplicate if the name is taken.
	Create(ctx context.Context, h *Hunter) error

	// Get returns a hunter by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Hunter, error)

	// GetByName returns a hunter by name, or ErrNotFound.
	GetByName(ctx context.Context, name string) (*Hunter, error)

	// List returns every hunter ordered by total XP, highest first.
	List(ctx context.Context, limit int) ([]Hunter, error)

	// Update writes every mutable column of h.
	Update(ctx context.Context, h *Hunter) error
}

// QuestRecord is one persisted quest in a daily batch.
type QuestRecord struct {
	ID          string
	HunterID    string
	QuestDate   string // YYYY-MM-DD
	Position    int
	Rank        string
	Category    string
	Title       string
	Description string
	XPReward    int
	Difficulty  string
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// QuestRepo manages daily quest batches.
type QuestRepo interface {
	// ForDay returns the hunter's batch for date ordered by position. An
	// empty slice means no batch exists.
	ForDay(ctx context.Context, hunterID, date string) ([]QuestRecord, error)

	// InsertBatch inserts quests as a single statement. Rows that collide
	// with an existing quest for the same hunter, day and category are
	// skipped. Reports whether any row was inserted.
	InsertBatch(ctx context.Context, quests []QuestRecord) (bool, error)

	// Get returns a quest by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*QuestRecord, error)

	// MarkCompleted flips an uncompleted quest to completed. Reports false
	// if the quest was already completed or does not exist.
	MarkCompleted(ctx context.Context, id string, at time.Time) (bool, error)

	// DeleteDay removes the hunter's batch for date.
	DeleteDay(ctx context.Context, hunterID, date string) error

	// CompletedByCategory counts the hunter's completed quests per category.
	CompletedByCategory(ctx context.Context, hunterID string) (map[string]int, error)
}

// ProgressEventData captures a single progression event.
type ProgressEventData struct {
	HunterID  string
	Kind      string
	XPDelta   int
	RankFrom  string
	RankTo    string
	QuestID   string
	Detail    string
	Timestamp time.Time
}

// ProgressEventRecord is a stored progression event.
type ProgressEventRecord struct {
	ID int
	ProgressEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendProgress records a progression event.
	AppendProgress(ctx context.Context, data ProgressEventData) error

	// QueryProgress returns a hunter's events, newest first.
	QueryProgress(ctx context.Context, hunterID string, opts QueryOpts) ([]ProgressEventRecord, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates LLM usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates LLM usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
