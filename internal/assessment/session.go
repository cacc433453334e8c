package assessment

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/selvastics/inrep-sub013/internal/itembank"
	"github.com/selvastics/inrep-sub013/internal/selection"
	"github.com/selvastics/inrep-sub013/internal/stopping"
)

// Stage is the session lifecycle position. Transitions are one-way:
// NotStarted → InProgress → Stopped.
type Stage string

const (
	StageNotStarted Stage = "not_started"
	StageInProgress Stage = "in_progress"
	StageStopped    Stage = "stopped"
)

// ResponseMissing is the sentinel value an external layer submits when a
// respondent skipped or timed out on an item. The estimator ignores
// missing responses; the item still counts as administered.
const ResponseMissing = -1

// Response pairs an administered item with its observed response value:
// 0/1 for dichotomous items, the category index for graded items, or
// ResponseMissing.
type Response struct {
	ItemID string `json:"item_id"`
	Value  int    `json:"value"`
}

// Estimator produces an ability estimate from the responses recorded so
// far. Implementations must be deterministic for identical inputs.
type Estimator interface {
	Estimate(bank *itembank.Bank, responses []Response, priorMean, priorSD float64) (theta, standardError float64, err error)
}

// Progress reports how far a session has advanced. Of is nil when no
// item ceiling is configured.
type Progress struct {
	Administered int
	Of           *int
}

// Session is the per-respondent state machine. It owns its mutable state
// exclusively; the only state shared across sessions is the read-only
// bank. Selection and response collection may be separated by an
// asynchronous presentation boundary, so the item chosen for a page is
// cached and survives re-renders until a response consumes it.
type Session struct {
	id       string
	bank     *itembank.Bank
	cfg      Config
	est      Estimator
	selector *selection.Selector

	stage        Stage
	administered []string
	responses    []Response
	recorded     map[string]bool

	theta   float64
	se      float64
	seKnown bool

	// pageCache maps a presentation-unit key to the item selected for
	// it. Entries are cleared only on forward progression, never on
	// re-render, so a late external re-render cannot trigger
	// re-selection.
	pageCache map[string]string

	lastDecision stopping.Decision
}

// NewSession creates a session over an immutable bank with a validated
// configuration and an external estimator.
func NewSession(bank *itembank.Bank, cfg Config, est Estimator) (*Session, error) {
	if bank == nil {
		return nil, fmt.Errorf("nil item bank")
	}
	if est == nil && cfg.Mode == ModeAdaptive {
		return nil, fmt.Errorf("adaptive mode requires an estimator")
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeAdaptive
	}
	return &Session{
		id:        uuid.NewString(),
		bank:      bank,
		cfg:       cfg,
		est:       est,
		selector:  selection.New(cfg.Selection, cfg.Seed),
		stage:     StageNotStarted,
		recorded:  make(map[string]bool),
		pageCache: make(map[string]string),
		theta:     cfg.PriorMean,
		se:        cfg.PriorSD,
		seKnown:   cfg.Mode == ModeAdaptive,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Stage returns the current lifecycle stage.
func (s *Session) Stage() Stage { return s.stage }

// Ability returns the running ability estimate and its standard error.
// known is false while the last estimation failed, in which case the
// values are the most recent usable ones.
func (s *Session) Ability() (theta, se float64, known bool) {
	return s.theta, s.se, s.seKnown
}

// Administered returns the ordered item IDs served so far.
func (s *Session) Administered() []string {
	out := make([]string, len(s.administered))
	copy(out, s.administered)
	return out
}

// Responses returns the recorded responses in administration order.
func (s *Session) Responses() []Response {
	out := make([]Response, len(s.responses))
	copy(out, s.responses)
	return out
}

// Progress reports administered count against the configured ceiling.
func (s *Session) Progress() Progress {
	p := Progress{Administered: len(s.administered)}
	if max := s.maxLength(); max > 0 {
		p.Of = &max
	}
	return p
}

func (s *Session) maxLength() int {
	max := s.cfg.Stopping.MaxItems
	if s.cfg.Mode == ModeFixed {
		if max == 0 || len(s.cfg.FixedSequence) < max {
			max = len(s.cfg.FixedSequence)
		}
	}
	return max
}

// LastDecision returns the stopping decision from the most recent
// response, or the zero Decision before any response was recorded.
func (s *Session) LastDecision() stopping.Decision { return s.lastDecision }

// pageKey identifies the presentation unit for a zero-based position.
func pageKey(position int) string {
	return fmt.Sprintf("page-%d", position+1)
}

// CurrentItem returns the item awaiting a response, selecting one if the
// current page has none cached yet. The first call transitions the
// session to InProgress. After Stopped it fails with ErrSessionStopped.
func (s *Session) CurrentItem() (*itembank.Item, error) {
	if s.stage == StageStopped {
		return nil, ErrSessionStopped
	}
	if s.stage == StageNotStarted {
		s.stage = StageInProgress
	}

	key := pageKey(len(s.administered))
	if id, ok := s.pageCache[key]; ok {
		it, found := s.bank.Get(id)
		if !found {
			return nil, fmt.Errorf("cached item %q missing from bank", id)
		}
		return it, nil
	}

	id, err := s.selectNext()
	if err != nil {
		return nil, err
	}
	s.pageCache[key] = id
	it, _ := s.bank.Get(id)
	return it, nil
}

func (s *Session) selectNext() (string, error) {
	position := len(s.administered)

	if s.cfg.Mode == ModeFixed {
		if position < len(s.cfg.FixedSequence) {
			id := s.cfg.FixedSequence[position]
			if _, ok := s.bank.Get(id); !ok {
				return "", fmt.Errorf("fixed sequence item %q missing from bank: %w", id, selection.ErrNoEligibleItems)
			}
			if s.recorded[id] {
				return "", fmt.Errorf("fixed sequence repeats item %q: %w", id, selection.ErrNoEligibleItems)
			}
			return id, nil
		}
		return "", selection.ErrNoEligibleItems
	}

	id, err := s.selector.Next(s.bank, s.administered, position, s.theta)
	if err != nil {
		return "", fmt.Errorf("select item at position %d: %w", position+1, err)
	}
	return id, nil
}

// SubmitResponse records the response for the item currently awaiting
// one, updates the ability estimate, and evaluates the stopping rules.
// A duplicate or mismatched submission is rejected with a
// *StaleResponseError and leaves the state untouched; the cached item
// remains current.
func (s *Session) SubmitResponse(itemID string, value int) (stopping.Decision, error) {
	switch s.stage {
	case StageNotStarted:
		return stopping.Decision{}, ErrNotStarted
	case StageStopped:
		return stopping.Decision{}, ErrSessionStopped
	}

	if s.recorded[itemID] {
		return stopping.Decision{}, &StaleResponseError{ItemID: itemID, Recorded: true}
	}

	key := pageKey(len(s.administered))
	pending, ok := s.pageCache[key]
	if !ok {
		return stopping.Decision{}, fmt.Errorf("no item pending for %s", key)
	}
	if pending != itemID {
		return stopping.Decision{}, &StaleResponseError{ItemID: itemID}
	}

	it, found := s.bank.Get(itemID)
	if !found {
		return stopping.Decision{}, fmt.Errorf("item %q missing from bank", itemID)
	}
	if value != ResponseMissing && (value < 0 || value >= it.Model.Categories()) {
		return stopping.Decision{}, &InvalidResponseError{
			ItemID:     itemID,
			Value:      value,
			Categories: it.Model.Categories(),
		}
	}

	// Forward progression: consume the page's cached selection.
	s.administered = append(s.administered, itemID)
	s.responses = append(s.responses, Response{ItemID: itemID, Value: value})
	s.recorded[itemID] = true
	delete(s.pageCache, key)

	s.updateAbility()

	decision := stopping.Evaluate(
		len(s.administered),
		s.se,
		s.seKnown && s.cfg.Mode == ModeAdaptive,
		s.poolEmpty(),
		s.cfg.Stopping,
	)
	s.lastDecision = decision
	if !decision.Continue {
		s.stage = StageStopped
	}
	return decision, nil
}

// updateAbility asks the external estimator for a fresh (theta, SE). A
// failed estimation is absorbed: the previous estimate is kept and the
// session is treated as not-yet-precise, bounded by the item ceiling.
func (s *Session) updateAbility() {
	if s.est == nil {
		s.seKnown = false
		return
	}
	theta, se, err := s.est.Estimate(s.bank, s.responses, s.cfg.PriorMean, s.cfg.PriorSD)
	if err != nil {
		s.seKnown = false
		return
	}
	s.theta = theta
	s.se = se
	s.seKnown = true
}

// poolEmpty reports whether the selector could serve an item for the
// next position. Unscorable leftovers count as exhaustion here, so the
// session stops on BankExhausted instead of failing the next selection.
func (s *Session) poolEmpty() bool {
	position := len(s.administered)
	if s.cfg.Mode == ModeFixed {
		return position >= len(s.cfg.FixedSequence)
	}
	return !selection.Servable(s.bank, s.administered, position, s.cfg.Selection)
}

// Stop ends the session from outside the stopping rules (respondent
// quit, proctor intervention). Idempotent once stopped.
func (s *Session) Stop() stopping.Decision {
	if s.stage == StageStopped {
		return s.lastDecision
	}
	s.stage = StageStopped
	s.lastDecision = stopping.Decision{Continue: false, Reason: stopping.ReasonManualOverride}
	return s.lastDecision
}
