package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	After int64     // sequence > After
	From  time.Time // timestamp >= From
}

// Session is the persisted identity: the bearer token and the serialized
// user record. Both are always present together.
type Session struct {
	Token   string
	User    json.RawMessage
	SavedAt time.Time
}

// LocalStorage is a small persistent key/value store. The session keys are
// only ever written and removed together.
type LocalStorage interface {
	// SaveSession writes the token and user keys in one transaction.
	SaveSession(ctx context.Context, token string, user json.RawMessage) error

	// LoadSession returns the persisted session, or nil if none is stored.
	LoadSession(ctx context.Context) (*Session, error)

	// ClearSession removes both session keys in one transaction.
	ClearSession(ctx context.Context) error

	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key. The session keys are reserved.
	Set(ctx context.Context, key, value string) error
}

// SubmissionEventData captures one attempt to submit a stage's responses.
type SubmissionEventData struct {
	AttemptID         string
	UserID            int
	Stage             int
	ResponseCount     int
	Success           bool
	ErrorKind         string
	ErrorMessage      string
	WinningOccupation string
	LatencyMs         int64
}

// SubmissionEvent is a stored SubmissionEventData.
type SubmissionEvent struct {
	Sequence  int64
	Timestamp time.Time
	SubmissionEventData
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
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to local events.
type EventRepo interface {
	// AppendSubmission records a stage submission attempt.
	AppendSubmission(ctx context.Context, data SubmissionEventData) error

	// Submissions returns submission events, newest first.
	Submissions(ctx context.Context, opts QueryOpts) ([]SubmissionEvent, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// LLMRequests returns LLM call events, newest first.
	LLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
}

// Insight is a cached career insight, keyed by a fingerprint of the report
// it was generated from.
type Insight struct {
	Fingerprint string
	Provider    string
	Model       string
	Content     json.RawMessage
	CreatedAt   time.Time
}

// InsightRepo caches generated insights.
type InsightRepo interface {
	// Get returns the insight for fingerprint, or nil if none is cached.
	Get(ctx context.Context, fingerprint string) (*Insight, error)

	// Save stores or replaces an insight.
	Save(ctx context.Context, in *Insight) error
}
