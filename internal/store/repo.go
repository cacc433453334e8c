package store

import (
	"context"
	"time"

	"github.com/selvastics/inrep-sub013/internal/assessment"
)

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID         string
	Action            string // "start" or "stop"
	Mode              string // "adaptive" or "fixed"
	ItemsAdministered int
	FinalTheta        float64
	FinalSE           float64
	StopReason        string
}

// ResponseEventData captures one administered item and its response.
type ResponseEventData struct {
	SessionID  string
	ItemID     string
	Position   int
	Value      int
	ThetaAfter float64
	SEAfter    float64
}

// SessionSummary is one row of the session history listing.
type SessionSummary struct {
	SessionID         string
	StartedAt         time.Time
	Mode              string
	ItemsAdministered int
	FinalTheta        float64
	FinalSE           float64
	StopReason        string
}

// EventRepo provides append and query access to assessment events.
type EventRepo interface {
	// AppendSessionEvent records a session start or stop.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendResponseEvent records an administered item.
	AppendResponseEvent(ctx context.Context, data ResponseEventData) error

	// ExposureCounts returns how many times each item has ever been
	// administered, across all sessions. Feeds the weighted selection
	// criterion and deterministic tie-breaking.
	ExposureCounts(ctx context.Context) (map[string]int, error)

	// SessionSummaries lists completed and in-flight sessions,
	// newest first.
	SessionSummaries(ctx context.Context, limit int) ([]SessionSummary, error)
}

// Snapshot represents a point-in-time capture of one session's state.
type Snapshot struct {
	ID        int
	SessionID string
	Sequence  int64
	Timestamp time.Time
	Data      assessment.Snapshot
}

// SnapshotRepo manages session state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot of the given session.
	Save(ctx context.Context, snap assessment.Snapshot) error

	// Latest returns the most recent snapshot for a session, or nil
	// if none exist.
	Latest(ctx context.Context, sessionID string) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots per session.
	Prune(ctx context.Context, sessionID string, keep int) error
}
