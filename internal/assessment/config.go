package assessment

import (
	"fmt"

	"github.com/selvastics/inrep-sub013/internal/selection"
	"github.com/selvastics/inrep-sub013/internal/stopping"
)

// Mode selects how the next item is chosen.
type Mode string

const (
	// ModeAdaptive scores the bank at the current ability estimate.
	ModeAdaptive Mode = "adaptive"

	// ModeFixed walks a pre-declared ordered item sequence. The
	// precision stop is inert in this mode; only the item-count
	// bounds govern termination.
	ModeFixed Mode = "fixed"
)

// Config is the full, validated configuration for one session. It is
// passed explicitly to NewSession; there is no ambient or global
// configuration state.
type Config struct {
	Mode      Mode
	Selection selection.Config
	Stopping  stopping.Config

	// FixedSequence is the ordered item IDs walked in ModeFixed.
	// Ignored in ModeAdaptive (positional pinning there is
	// Selection.FixedItems).
	FixedSequence []string

	// PriorMean and PriorSD initialize the ability estimate and seed
	// the estimator's prior.
	PriorMean float64
	PriorSD   float64

	// Seed seeds the session's random generator (Random criterion).
	Seed int64
}

// DefaultConfig returns an adaptive configuration with the standard
// criterion, a standard-normal prior, and common item bounds.
func DefaultConfig() Config {
	return Config{
		Mode:      ModeAdaptive,
		Selection: selection.DefaultConfig(),
		Stopping: stopping.Config{
			MinItems: 3,
			MaxItems: 20,
			MinSEM:   0.3,
		},
		PriorMean: 0,
		PriorSD:   1,
	}
}

// Validate checks cross-field consistency. Sessions assume a validated
// Config; callers that assemble one from external input run this first.
func (c Config) Validate() error {
	if c.Mode != ModeAdaptive && c.Mode != ModeFixed {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Stopping.MinItems < 0 {
		return fmt.Errorf("MinItems must be >= 0, got %d", c.Stopping.MinItems)
	}
	if c.Stopping.MaxItems > 0 && c.Stopping.MaxItems < c.Stopping.MinItems {
		return fmt.Errorf("MaxItems (%d) must be >= MinItems (%d)", c.Stopping.MaxItems, c.Stopping.MinItems)
	}
	if c.Stopping.MinSEM < 0 {
		return fmt.Errorf("MinSEM must be >= 0, got %g", c.Stopping.MinSEM)
	}
	if c.PriorSD <= 0 {
		return fmt.Errorf("PriorSD must be > 0, got %g", c.PriorSD)
	}
	if c.Mode == ModeFixed && len(c.FixedSequence) == 0 {
		return fmt.Errorf("fixed mode requires a FixedSequence")
	}
	seen := make(map[string]bool, len(c.FixedSequence))
	for _, id := range c.FixedSequence {
		if seen[id] {
			return fmt.Errorf("duplicate item %q in FixedSequence", id)
		}
		seen[id] = true
	}
	return nil
}
