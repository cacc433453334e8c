package itembank

import "fmt"

// Model is the closed set of item response models an item can carry.
// Each variant holds only the parameters its model needs; a nil parameter
// means "not yet calibrated", never zero.
type Model interface {
	// Scorable reports whether every parameter needed to evaluate the
	// model at an ability value is known.
	Scorable() bool

	// Categories returns the number of response categories.
	// Dichotomous models always return 2.
	Categories() int

	// validate checks parameter invariants. It also seals the interface:
	// only types in this package can be Models.
	validate() error
}

// Rasch is the one-parameter logistic model. Discrimination is fixed at 1.
type Rasch struct {
	Difficulty *float64
}

// TwoParam is the two-parameter logistic model.
type TwoParam struct {
	Discrimination *float64
	Difficulty     *float64
}

// ThreeParam is the three-parameter logistic model: a two-parameter
// model with a lower asymptote for guessing.
type ThreeParam struct {
	Discrimination *float64
	Difficulty     *float64
	Guessing       float64
}

// Graded is Samejima's graded response model for ordered polytomous
// responses. Thresholds are the category boundary difficulties; the item
// has len(Thresholds)+1 response categories. Individual thresholds may be
// nil while the item awaits calibration.
type Graded struct {
	Discrimination *float64
	Thresholds     []*float64
}

func (m Rasch) Scorable() bool { return m.Difficulty != nil }
func (m Rasch) Categories() int { return 2 }

func (m Rasch) validate() error { return nil }

func (m TwoParam) Scorable() bool {
	return m.Discrimination != nil && m.Difficulty != nil
}
func (m TwoParam) Categories() int { return 2 }

func (m TwoParam) validate() error {
	return checkDiscrimination(m.Discrimination)
}

func (m ThreeParam) Scorable() bool {
	return m.Discrimination != nil && m.Difficulty != nil
}
func (m ThreeParam) Categories() int { return 2 }

func (m ThreeParam) validate() error {
	if err := checkDiscrimination(m.Discrimination); err != nil {
		return err
	}
	if m.Guessing < 0 || m.Guessing >= 1 {
		return fmt.Errorf("guessing must be in [0, 1), got %g", m.Guessing)
	}
	return nil
}

func (m Graded) Scorable() bool {
	if m.Discrimination == nil || len(m.Thresholds) == 0 {
		return false
	}
	for _, b := range m.Thresholds {
		if b == nil {
			return false
		}
	}
	return true
}

func (m Graded) Categories() int { return len(m.Thresholds) + 1 }

func (m Graded) validate() error {
	if err := checkDiscrimination(m.Discrimination); err != nil {
		return err
	}
	if len(m.Thresholds) == 0 {
		return fmt.Errorf("graded model requires at least one threshold")
	}
	// Known thresholds must be strictly increasing; nil gaps are skipped.
	var prev *float64
	for i, b := range m.Thresholds {
		if b == nil {
			continue
		}
		if prev != nil && *b <= *prev {
			return fmt.Errorf("threshold %d (%g) not greater than previous known threshold (%g)", i+1, *b, *prev)
		}
		prev = b
	}
	return nil
}

func checkDiscrimination(a *float64) error {
	if a != nil && *a <= 0 {
		return fmt.Errorf("discrimination must be > 0, got %g", *a)
	}
	return nil
}

// Float64 returns a pointer to v. Convenience for building items in code.
func Float64(v float64) *float64 { return &v }
