package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // id > After
	Before  int64     // id < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set
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

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose.
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

// EventRepo is the append-only log of LLM calls.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// HistoryEntry is one rendered chat line ("You: ..." or "Teacher: ...").
type HistoryEntry struct {
	Timestamp time.Time
	Message   string
}

// HistoryRepo stores chat transcripts per user.
type HistoryRepo interface {
	SaveMessage(ctx context.Context, userID, message string) error

	// History returns a user's messages in insertion order.
	History(ctx context.Context, userID string) ([]HistoryEntry, error)

	ClearHistory(ctx context.Context, userID string) error
}

// ProgressRecord is a learner's persisted grammar accuracy counters.
type ProgressRecord struct {
	Correct   uint64
	Total     uint64
	UpdatedAt time.Time
}

// ProgressRepo persists learner progress counters.
type ProgressRepo interface {
	// Load returns the learner's record; found is false if none exists.
	Load(ctx context.Context, learnerID string) (rec ProgressRecord, found bool, err error)

	// Increment atomically adds one judged attempt and returns the
	// counters as stored afterwards. A missing learner starts from zero.
	Increment(ctx context.Context, learnerID string, isCorrect bool) (ProgressRecord, error)
	Delete(ctx context.Context, learnerID string) error
}
