package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures journal queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match ("" = any)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
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

// LLMEvent is a journaled LLM request as read back from storage.
type LLMEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// UsageStat aggregates journal rows by purpose or model.
type UsageStat struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
	Failures     int
}

// EventRepo provides append access to the LLM request journal.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// Quiz lifecycle states.
const (
	QuizStatusGenerated = "generated"
	QuizStatusCompleted = "completed"
)

// QuizRecord is a stored quiz. Data holds the full quiz document as JSON,
// answer key included.
type QuizRecord struct {
	ID          string
	Username    string
	Topic       string
	Title       string
	Difficulty  string
	Status      string
	Data        json.RawMessage
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// QuizRepo stores generated quizzes. Quiz content is immutable once saved;
// only the status moves forward.
type QuizRepo interface {
	Save(ctx context.Context, rec *QuizRecord) error

	// Get returns the quiz with id, or nil if it does not exist.
	Get(ctx context.Context, id string) (*QuizRecord, error)

	// MarkCompleted sets the quiz status to completed.
	MarkCompleted(ctx context.Context, id string, at time.Time) error

	// ListByUser returns a user's quizzes, newest first.
	ListByUser(ctx context.Context, username string, limit int) ([]QuizRecord, error)
}

// ResultRecord is one graded submission. Data holds the full result
// (per-question review) as JSON.
type ResultRecord struct {
	ID          string
	Sequence    int64
	QuizID      string
	Username    string
	QuizTitle   string
	Score       float64
	Correct     int
	Total       int
	Data        json.RawMessage
	SubmittedAt time.Time
}

// ResultRepo is append-only: a resubmission creates a new record.
type ResultRepo interface {
	Append(ctx context.Context, rec *ResultRecord) error

	// ListByUser returns a user's results, newest first. limit <= 0 means all.
	ListByUser(ctx context.Context, username string, limit int) ([]ResultRecord, error)
}

// PathRecord is a stored learning path.
type PathRecord struct {
	ID        string
	Username  string
	Name      string
	Data      json.RawMessage
	CreatedAt time.Time
}

// PathRepo stores generated learning paths.
type PathRepo interface {
	Save(ctx context.Context, rec *PathRecord) error

	// Get returns the path with id, or nil if it does not exist.
	Get(ctx context.Context, id string) (*PathRecord, error)

	ListByUser(ctx context.Context, username string, limit int) ([]PathRecord, error)
}
