package selection

// Criterion is the scoring rule used to rank eligible items.
type Criterion string

const (
	// MaximumInformation picks the item with the highest Fisher
	// information at the current ability estimate.
	MaximumInformation Criterion = "max-information"

	// Weighted discounts information by prior exposure,
	// discouraging overused items.
	Weighted Criterion = "weighted"

	// Random ignores ability and draws uniformly from the eligible
	// pool, using the session-seeded generator.
	Random Criterion = "random"
)

// Config controls eligibility filtering and scoring.
type Config struct {
	// Criterion is the scoring rule. Defaults to MaximumInformation.
	Criterion Criterion

	// FixedItems pins specific item IDs to the leading positions of the
	// test. A position inside this list is served deterministically,
	// bypassing scoring entirely.
	FixedItems []string

	// DomainQuotas caps how many items may be drawn per content domain
	// in one session. Domains absent from the map are unconstrained.
	DomainQuotas map[string]int

	// ExposureCounts holds cross-session administration tallies per
	// item ID, used by the Weighted criterion and for tie-breaking.
	// Missing entries count as zero.
	ExposureCounts map[string]int
}

// DefaultConfig returns a Config with the standard criterion and no
// positional or content constraints.
func DefaultConfig() Config {
	return Config{Criterion: MaximumInformation}
}

func (c Config) exposure(id string) int {
	if c.ExposureCounts == nil {
		return 0
	}
	return c.ExposureCounts[id]
}
