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

// AttemptEventData is one completed challenge as the coach reports it.
type AttemptEventData struct {
	AttemptID      string
	UserID         string
	ChallengeID    string
	ChallengeType  string
	Topic          string
	Level          string
	Score          float64
	Passed         bool
	XPEarned       int
	EffectiveLevel string
	Trend          string
}

// AttemptEvent is a stored attempt.
type AttemptEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
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

// LLMEvent is a stored LLM request.
type LLMEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls under one key (a purpose or a model).
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the event logs.
type EventRepo interface {
	// AppendAttempt records a completed challenge attempt.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// QueryAttempts returns userID's attempts, newest first.
	QueryAttempts(ctx context.Context, userID string, opts QueryOpts) ([]AttemptEvent, error)

	// TotalXP sums XP earned over userID's attempts.
	TotalXP(ctx context.Context, userID string) (int, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event, or nil when id is unknown.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates LLM calls per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates LLM calls per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
