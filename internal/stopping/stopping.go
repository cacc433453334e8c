// Package stopping decides, after each recorded response, whether an
// assessment session continues or ends.
package stopping

// Reason explains a stopping decision.
type Reason string

const (
	// ReasonMinItemsNotMet: the minimum item floor has not been reached.
	ReasonMinItemsNotMet Reason = "min_items_not_met"
	// ReasonPrecisionNotMet: precision target not yet reached.
	ReasonPrecisionNotMet Reason = "precision_not_met"
	// ReasonMaxItemsReached: the item ceiling was hit.
	ReasonMaxItemsReached Reason = "max_items_reached"
	// ReasonPrecisionMet: the standard error dropped to the target.
	ReasonPrecisionMet Reason = "precision_met"
	// ReasonManualOverride: the session was ended externally.
	ReasonManualOverride Reason = "manual_override"
	// ReasonBankExhausted: no eligible items remain.
	ReasonBankExhausted Reason = "bank_exhausted"
)

// Decision is the outcome of evaluating the stopping rules.
type Decision struct {
	Continue bool
	Reason   Reason
}

// DisabledMinSEM is the sentinel precision threshold that disables the
// standard-error stop, leaving only the item-count bounds in force. Any
// MinSEM at or above this magnitude is a deliberate configuration state,
// not a misconfiguration.
const DisabledMinSEM = 100

// Config holds the stopping-rule parameters for one session.
type Config struct {
	// MinItems is a hard floor: no stop condition fires below it.
	MinItems int

	// MaxItems bounds the session length.
	MaxItems int

	// MinSEM is the standard-error target. Set to DisabledMinSEM or
	// higher to disable the precision stop.
	MinSEM float64
}

// PrecisionStopEnabled reports whether the standard-error stop is in force.
func (c Config) PrecisionStopEnabled() bool {
	return c.MinSEM > 0 && c.MinSEM < DisabledMinSEM
}

// Evaluate applies the stopping rules in priority order, first match
// wins. It runs strictly after an ability update and before the next
// selection.
//
// seKnown is false when the most recent estimation failed; the session
// is then treated as not-yet-precise rather than stopped. In
// fixed-sequence mode callers pass seKnown=false so the precision stop
// can never fire.
func Evaluate(administered int, standardError float64, seKnown bool, poolEmpty bool, cfg Config) Decision {
	if administered < cfg.MinItems {
		return Decision{Continue: true, Reason: ReasonMinItemsNotMet}
	}
	if cfg.MaxItems > 0 && administered >= cfg.MaxItems {
		return Decision{Continue: false, Reason: ReasonMaxItemsReached}
	}
	if cfg.PrecisionStopEnabled() && seKnown && standardError <= cfg.MinSEM {
		return Decision{Continue: false, Reason: ReasonPrecisionMet}
	}
	if poolEmpty {
		return Decision{Continue: false, Reason: ReasonBankExhausted}
	}
	return Decision{Continue: true, Reason: ReasonPrecisionNotMet}
}
