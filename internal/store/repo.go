package store

import (
	"context"
	"time"

	"github.com/nikhilr/prepmock/internal/exam"
)

// QuestionCacheRepo is the durable cache of previously generated
// questions, keyed by question id. Read order is unspecified.
type QuestionCacheRepo interface {
	// Put upserts questions into the cache. Idempotent per id.
	Put(ctx context.Context, questions []exam.Question) error

	// GetUpTo returns at most limit cached questions restricted to the
	// given subjects (all subjects when the slice is empty), excluding
	// any id present in exclude.
	GetUpTo(ctx context.Context, limit int, subjects []exam.Subject, exclude map[string]bool) ([]exam.Question, error)

	// Count reports the number of cached questions.
	Count(ctx context.Context) (int, error)

	// Clear removes every cached question.
	Clear(ctx context.Context) error
}

// SessionSnapshot is the single persisted record enabling resume of an
// interrupted session.
type SessionSnapshot struct {
	Config           exam.TestConfig                 `json:"config"`
	Questions        []exam.Question                 `json:"questions"`
	Responses        map[string]*exam.ResponseRecord `json:"responses"`
	CurrentIndex     int                             `json:"current_index"`
	RemainingSeconds int                             `json:"remaining_seconds"`
	SavedAt          time.Time                       `json:"saved_at"`
}

// SnapshotRepo persists the in-progress session snapshot. There is at
// most one snapshot at a time; Save overwrites.
type SnapshotRepo interface {
	Save(ctx context.Context, snap *SessionSnapshot) error

	// Load returns the snapshot if one exists and is no older than
	// maxAge, dropping (and deleting) stale ones. Returns nil when no
	// usable snapshot exists.
	Load(ctx context.Context, maxAge time.Duration) (*SessionSnapshot, error)

	Delete(ctx context.Context) error
}

// ResultRepo stores finished test results for the stats history.
type ResultRepo interface {
	Save(ctx context.Context, result *exam.TestResult) error

	// List returns up to limit results, most recent first.
	List(ctx context.Context, limit int) ([]*exam.TestResult, error)
}

// LLMRequestEventData captures one LLM API call for the event log.
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

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// QueryOpts bounds event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = repo default)
	Purpose string // exact purpose label, empty = all
}

// PurposeUsage aggregates token usage per purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage per model for cost estimation.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]*LLMEvent, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
