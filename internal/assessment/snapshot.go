package assessment

import (
	"fmt"

	"github.com/selvastics/inrep-sub013/internal/itembank"
	"github.com/selvastics/inrep-sub013/internal/selection"
	"github.com/selvastics/inrep-sub013/internal/stopping"
)

// Snapshot is the plain-data form of a Session, suitable for external
// persistence. Restoring it against the same bank and configuration
// reproduces identical subsequent selection and stopping behavior.
type Snapshot struct {
	SessionID    string            `json:"session_id"`
	Stage        Stage             `json:"stage"`
	Administered []string          `json:"administered"`
	Responses    []Response        `json:"responses"`
	Theta        float64           `json:"theta"`
	SE           float64           `json:"se"`
	SEKnown      bool              `json:"se_known"`
	PageCache    map[string]string `json:"page_cache,omitempty"`

	// RandomDraws is how many random selections the session's
	// generator has produced, so a restore can fast-forward a
	// freshly seeded generator to the identical state.
	RandomDraws int `json:"random_draws"`

	// LastReason is the most recent stopping reason, empty before the
	// first response.
	LastReason stopping.Reason `json:"last_reason,omitempty"`
}

// Snapshot exports the session state as plain data.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:    s.id,
		Stage:        s.stage,
		Administered: s.Administered(),
		Responses:    s.Responses(),
		Theta:        s.theta,
		SE:           s.se,
		SEKnown:      s.seKnown,
		RandomDraws:  s.selector.Draws(),
		LastReason:   s.lastDecision.Reason,
	}
	if len(s.pageCache) > 0 {
		snap.PageCache = make(map[string]string, len(s.pageCache))
		for k, v := range s.pageCache {
			snap.PageCache[k] = v
		}
	}
	return snap
}

// Restore rebuilds a session from a snapshot taken against the same
// bank and configuration. The snapshot is validated against the bank's
// invariants before any state is adopted.
func Restore(bank *itembank.Bank, cfg Config, est Estimator, snap Snapshot) (*Session, error) {
	s, err := NewSession(bank, cfg, est)
	if err != nil {
		return nil, err
	}
	if snap.SessionID == "" {
		return nil, fmt.Errorf("snapshot missing session ID")
	}
	if len(snap.Responses) != len(snap.Administered) {
		return nil, fmt.Errorf("snapshot has %d responses for %d administered items", len(snap.Responses), len(snap.Administered))
	}
	if len(snap.Administered) > bank.Size() {
		return nil, fmt.Errorf("snapshot administered %d items but bank holds %d", len(snap.Administered), bank.Size())
	}

	recorded := make(map[string]bool, len(snap.Administered))
	for i, id := range snap.Administered {
		if recorded[id] {
			return nil, fmt.Errorf("snapshot repeats item %q", id)
		}
		if _, ok := bank.Get(id); !ok {
			return nil, fmt.Errorf("snapshot item %q missing from bank", id)
		}
		if snap.Responses[i].ItemID != id {
			return nil, fmt.Errorf("snapshot response %d is for %q, expected %q", i, snap.Responses[i].ItemID, id)
		}
		recorded[id] = true
	}

	switch snap.Stage {
	case StageNotStarted, StageInProgress, StageStopped:
	default:
		return nil, fmt.Errorf("unknown stage %q", snap.Stage)
	}

	s.id = snap.SessionID
	s.stage = snap.Stage
	s.administered = append([]string(nil), snap.Administered...)
	s.responses = append([]Response(nil), snap.Responses...)
	s.recorded = recorded
	s.theta = snap.Theta
	s.se = snap.SE
	s.seKnown = snap.SEKnown
	// An empty reason means no stopping evaluation has run yet; keep
	// the zero Decision so the restored session matches the original.
	if snap.LastReason != "" {
		s.lastDecision = stopping.Decision{
			Continue: snap.Stage != StageStopped,
			Reason:   snap.LastReason,
		}
	}
	for k, v := range snap.PageCache {
		s.pageCache[k] = v
	}
	s.selector = selection.New(cfg.Selection, cfg.Seed)
	s.selector.FastForward(snap.RandomDraws)
	return s, nil
}
