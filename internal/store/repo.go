package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
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
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates token usage for one purpose or model.
type LLMUsageStats struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// AwardEventData captures one applied point award.
type AwardEventData struct {
	EventID     string
	Amount      int
	Reason      string
	PointsAfter int
}

// AwardEventRecord is a stored award event.
type AwardEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	AwardEventData
}

// ReasonTotal sums awarded points for one reason label.
type ReasonTotal struct {
	Reason string
	Count  int
	Points int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single LLM event by ID, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsageStats, error)

	// AppendAward records a point award.
	AppendAward(ctx context.Context, data AwardEventData) error

	// QueryAwards returns award events, newest first.
	QueryAwards(ctx context.Context, opts QueryOpts) ([]AwardEventRecord, error)

	// PointsByReason sums awarded points per reason label.
	PointsByReason(ctx context.Context) ([]ReasonTotal, error)

	// ClearAwards deletes every award event.
	ClearAwards(ctx context.Context) error
}

// KVRepo is a string-keyed blob store.
type KVRepo interface {
	// Get returns the value stored under key; ok is false when absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put upserts value under key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
