package simulate

import (
	"testing"

	"github.com/selvastics/inrep-sub013/internal/assessment"
	"github.com/selvastics/inrep-sub013/internal/estimator"
	"github.com/selvastics/inrep-sub013/internal/itembank"
	"github.com/selvastics/inrep-sub013/internal/stopping"
)

func simBank(t *testing.T) *itembank.Bank {
	t.Helper()
	var items []itembank.Item
	difficulties := []float64{-2, -1.5, -1, -0.5, 0, 0.5, 1, 1.5, 2}
	for i, b := range difficulties {
		items = append(items, itembank.Item{
			ID:    string(rune('a' + i)),
			Model: itembank.TwoParam{Discrimination: itembank.Float64(1.2), Difficulty: itembank.Float64(b)},
		})
	}
	bank, err := itembank.New(items)
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}
	return bank
}

func TestRespondentDeterministic(t *testing.T) {
	bank := simBank(t)
	it, _ := bank.Get("e")

	r1 := NewRespondent(0.5, 3)
	r2 := NewRespondent(0.5, 3)
	for i := 0; i < 10; i++ {
		v1 := r1.Respond(it)
		v2 := r2.Respond(it)
		if v1 != v2 {
			t.Fatalf("draw %d diverged: %d vs %d", i, v1, v2)
		}
		if v1 != 0 && v1 != 1 {
			t.Fatalf("draw %d out of range: %d", i, v1)
		}
	}
}

func TestRunTerminates(t *testing.T) {
	bank := simBank(t)
	cfg := assessment.DefaultConfig()
	cfg.Stopping = stopping.Config{MinItems: 2, MaxItems: 6, MinSEM: 0.3}

	result, err := Run(bank, cfg, estimator.NewEAP(), 0.5, 17)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(result.Steps) < 2 || len(result.Steps) > 6 {
		t.Errorf("steps = %d, want within [2, 6]", len(result.Steps))
	}
	if result.StopReason == "" {
		t.Error("missing stop reason")
	}
	if result.SessionID == "" {
		t.Error("missing session ID")
	}

	// No repeats, positions sequential.
	seen := make(map[string]bool)
	for i, step := range result.Steps {
		if step.Position != i+1 {
			t.Errorf("step %d position = %d", i, step.Position)
		}
		if seen[step.ItemID] {
			t.Errorf("item %q administered twice", step.ItemID)
		}
		seen[step.ItemID] = true
	}

	last := result.Steps[len(result.Steps)-1]
	if last.Decision.Continue {
		t.Error("final step decision should be a stop")
	}
	if result.FinalTheta != last.Theta || result.FinalSE != last.SE {
		t.Error("final estimate should match the last step")
	}
}

func TestRunFixedMode(t *testing.T) {
	bank := simBank(t)
	cfg := assessment.DefaultConfig()
	cfg.Mode = assessment.ModeFixed
	cfg.FixedSequence = []string{"c", "a", "e"}
	cfg.Stopping = stopping.Config{MinItems: 1, MaxItems: 0, MinSEM: 0.3}

	result, err := Run(bank, cfg, estimator.NewEAP(), 0, 5)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{"c", "a", "e"}
	if len(result.Steps) != len(want) {
		t.Fatalf("steps = %d, want %d", len(result.Steps), len(want))
	}
	for i, step := range result.Steps {
		if step.ItemID != want[i] {
			t.Fatalf("step %d item = %q, want %q", i, step.ItemID, want[i])
		}
	}
	if result.StopReason != stopping.ReasonBankExhausted {
		t.Errorf("stop reason = %q, want bank_exhausted", result.StopReason)
	}
}

func TestRunReproducible(t *testing.T) {
	bank := simBank(t)
	cfg := assessment.DefaultConfig()
	cfg.Stopping = stopping.Config{MinItems: 2, MaxItems: 5, MinSEM: stopping.DisabledMinSEM}

	r1, err := Run(bank, cfg, estimator.NewEAP(), 1.0, 99)
	if err != nil {
		t.Fatalf("run 1: %v", err)
	}
	r2, err := Run(bank, cfg, estimator.NewEAP(), 1.0, 99)
	if err != nil {
		t.Fatalf("run 2: %v", err)
	}

	if len(r1.Steps) != len(r2.Steps) {
		t.Fatalf("step counts diverged: %d vs %d", len(r1.Steps), len(r2.Steps))
	}
	for i := range r1.Steps {
		if r1.Steps[i].ItemID != r2.Steps[i].ItemID || r1.Steps[i].Value != r2.Steps[i].Value {
			t.Fatalf("step %d diverged: %+v vs %+v", i, r1.Steps[i], r2.Steps[i])
		}
	}
	if r1.FinalTheta != r2.FinalTheta || r1.FinalSE != r2.FinalSE {
		t.Error("final estimates diverged between identical runs")
	}
}
