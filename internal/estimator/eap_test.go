package estimator

import (
	"errors"
	"math"
	"testing"

	"github.com/selvastics/inrep-sub013/internal/assessment"
	"github.com/selvastics/inrep-sub013/internal/itembank"
)

func eapBank(t *testing.T) *itembank.Bank {
	t.Helper()
	items := []itembank.Item{
		{ID: "e1", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.2), Difficulty: itembank.Float64(-1)}},
		{ID: "e2", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.0), Difficulty: itembank.Float64(0)}},
		{ID: "e3", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.5), Difficulty: itembank.Float64(1)}},
		{ID: "e4", Model: itembank.Rasch{}},
	}
	bank, err := itembank.New(items)
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}
	return bank
}

func TestEstimatePriorOnly(t *testing.T) {
	bank := eapBank(t)
	est := NewEAP()

	// With no responses the posterior is the (grid-truncated) prior.
	theta, se, err := est.Estimate(bank, nil, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(theta) > 1e-9 {
		t.Errorf("theta = %g, want 0 for a symmetric prior", theta)
	}
	if se < 0.9 || se > 1.05 {
		t.Errorf("se = %g, want close to the prior SD", se)
	}
}

func TestEstimateShiftsWithResponses(t *testing.T) {
	bank := eapBank(t)
	est := NewEAP()

	correct := []assessment.Response{
		{ItemID: "e1", Value: 1},
		{ItemID: "e2", Value: 1},
		{ItemID: "e3", Value: 1},
	}
	incorrect := []assessment.Response{
		{ItemID: "e1", Value: 0},
		{ItemID: "e2", Value: 0},
		{ItemID: "e3", Value: 0},
	}

	high, seHigh, err := est.Estimate(bank, correct, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	low, _, err := est.Estimate(bank, incorrect, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if high <= 0 {
		t.Errorf("all-correct theta = %g, want positive", high)
	}
	if low >= 0 {
		t.Errorf("all-incorrect theta = %g, want negative", low)
	}
	if seHigh >= 1 {
		t.Errorf("posterior se = %g, should shrink below the prior SD", seHigh)
	}
}

func TestEstimateDeterministic(t *testing.T) {
	bank := eapBank(t)
	est := NewEAP()
	responses := []assessment.Response{
		{ItemID: "e1", Value: 1},
		{ItemID: "e2", Value: 0},
	}

	t1, s1, err := est.Estimate(bank, responses, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t2, s2, err := est.Estimate(bank, responses, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if t1 != t2 || s1 != s2 {
		t.Errorf("estimates diverged: (%g, %g) vs (%g, %g)", t1, s1, t2, s2)
	}
}

func TestEstimateIgnoresMissingAndUnscorable(t *testing.T) {
	bank := eapBank(t)
	est := NewEAP()

	base := []assessment.Response{{ItemID: "e2", Value: 1}}
	padded := []assessment.Response{
		{ItemID: "e2", Value: 1},
		{ItemID: "e1", Value: assessment.ResponseMissing},
		{ItemID: "e4", Value: 1}, // unscorable model
		{ItemID: "ghost", Value: 1},
	}

	tBase, sBase, err := est.Estimate(bank, base, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tPad, sPad, err := est.Estimate(bank, padded, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tBase != tPad || sBase != sPad {
		t.Errorf("non-scorable responses changed the estimate: (%g, %g) vs (%g, %g)", tBase, sBase, tPad, sPad)
	}
}

func TestEstimateGradedResponses(t *testing.T) {
	bank, err := itembank.New([]itembank.Item{
		{ID: "g1", Model: itembank.Graded{
			Discrimination: itembank.Float64(1.2),
			Thresholds:     []*float64{itembank.Float64(-1), itembank.Float64(0), itembank.Float64(1)},
		}},
	})
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}
	est := NewEAP()

	top, _, err := est.Estimate(bank, []assessment.Response{{ItemID: "g1", Value: 3}}, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bottom, _, err := est.Estimate(bank, []assessment.Response{{ItemID: "g1", Value: 0}}, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if top <= bottom {
		t.Errorf("top category theta %g should exceed bottom category theta %g", top, bottom)
	}
}

func TestEstimateInvalidPrior(t *testing.T) {
	bank := eapBank(t)
	est := NewEAP()

	_, _, err := est.Estimate(bank, nil, 0, 0)
	if !errors.Is(err, ErrEstimationFailed) {
		t.Errorf("error = %v, want ErrEstimationFailed", err)
	}
}
