package simulate

import (
	"testing"

	"github.com/selvastics/inrep-sub013/internal/assessment"
	"github.com/selvastics/inrep-sub013/internal/estimator"
	"github.com/selvastics/inrep-sub013/internal/itembank"
	"github.com/selvastics/inrep-sub013/internal/selection"
	"github.com/selvastics/inrep-sub013/internal/stopping"
)

// End-to-end walkthroughs of full sessions driven by hand-picked
// response patterns, using the real estimator.

func TestAllCorrectRaisesEstimate(t *testing.T) {
	bank, err := itembank.New([]itembank.Item{
		{ID: "i1", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.1), Difficulty: itembank.Float64(-1)}},
		{ID: "i2", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.3), Difficulty: itembank.Float64(-0.5)}},
		{ID: "i3", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.5), Difficulty: itembank.Float64(0)}},
		{ID: "i4", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.2), Difficulty: itembank.Float64(0.5)}},
		{ID: "i5", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.0), Difficulty: itembank.Float64(1)}},
	})
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}

	cfg := assessment.DefaultConfig()
	cfg.Stopping = stopping.Config{MinItems: 3, MaxItems: 5, MinSEM: 0.3}

	sess, err := assessment.NewSession(bank, cfg, estimator.NewEAP())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	prev := -100.0
	for sess.Stage() != assessment.StageStopped {
		it, err := sess.CurrentItem()
		if err != nil {
			t.Fatalf("current item: %v", err)
		}
		if _, err := sess.SubmitResponse(it.ID, 1); err != nil {
			t.Fatalf("submit: %v", err)
		}
		theta, _, known := sess.Ability()
		if !known {
			t.Fatal("estimate should be known after every response")
		}
		if theta <= prev {
			t.Fatalf("theta %g did not increase past %g after a correct response", theta, prev)
		}
		prev = theta
	}

	n := len(sess.Administered())
	reason := sess.LastDecision().Reason
	switch reason {
	case stopping.ReasonMaxItemsReached:
		if n != 5 {
			t.Errorf("stopped on ceiling with %d items, want 5", n)
		}
	case stopping.ReasonPrecisionMet:
		if n < 3 || n > 5 {
			t.Errorf("precision stop at %d items, want within [3, 5]", n)
		}
	default:
		t.Errorf("stop reason = %q, want max_items_reached or precision_met", reason)
	}
}

func TestDisabledPrecisionStopsExactlyAtCeiling(t *testing.T) {
	var items []itembank.Item
	for i := 0; i < 12; i++ {
		items = append(items, itembank.Item{
			ID:    string(rune('a' + i)),
			Model: itembank.TwoParam{Discrimination: itembank.Float64(2.0), Difficulty: itembank.Float64(float64(i)/2 - 3)},
		})
	}
	bank, err := itembank.New(items)
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}

	cfg := assessment.DefaultConfig()
	cfg.Stopping = stopping.Config{MinItems: 9, MaxItems: 9, MinSEM: stopping.DisabledMinSEM}

	sess, err := assessment.NewSession(bank, cfg, estimator.NewEAP())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	// Highly discriminating items shrink the SE quickly; the disabled
	// precision stop must still carry the session to exactly 9 items.
	for i := 0; sess.Stage() != assessment.StageStopped; i++ {
		it, err := sess.CurrentItem()
		if err != nil {
			t.Fatalf("current item: %v", err)
		}
		if _, err := sess.SubmitResponse(it.ID, i%2); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	if n := len(sess.Administered()); n != 9 {
		t.Errorf("administered = %d, want exactly 9", n)
	}
	if reason := sess.LastDecision().Reason; reason != stopping.ReasonMaxItemsReached {
		t.Errorf("stop reason = %q, want max_items_reached", reason)
	}
}

func TestFixedOrderIgnoresCriterion(t *testing.T) {
	bank := simBank(t)
	want := []string{"c", "a", "e"}

	// The declared order wins under every criterion.
	for _, criterion := range []selection.Criterion{
		selection.MaximumInformation,
		selection.Weighted,
		selection.Random,
	} {
		cfg := assessment.DefaultConfig()
		cfg.Mode = assessment.ModeFixed
		cfg.FixedSequence = want
		cfg.Selection.Criterion = criterion
		cfg.Stopping = stopping.Config{MinItems: 1, MaxItems: 0, MinSEM: 0.3}

		result, err := Run(bank, cfg, estimator.NewEAP(), 0, 3)
		if err != nil {
			t.Fatalf("%s: run: %v", criterion, err)
		}
		if len(result.Steps) != len(want) {
			t.Fatalf("%s: %d steps, want %d", criterion, len(result.Steps), len(want))
		}
		for i, step := range result.Steps {
			if step.ItemID != want[i] {
				t.Fatalf("%s: step %d = %q, want %q", criterion, i, step.ItemID, want[i])
			}
		}
	}
}
