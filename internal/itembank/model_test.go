package itembank

import (
	"errors"
	"strings"
	"testing"
)

func TestScorable(t *testing.T) {
	tests := []struct {
		name  string
		model Model
		want  bool
	}{
		{"rasch known", Rasch{Difficulty: Float64(0.5)}, true},
		{"rasch unknown", Rasch{}, false},
		{"2pl known", TwoParam{Discrimination: Float64(1.2), Difficulty: Float64(-0.3)}, true},
		{"2pl missing a", TwoParam{Difficulty: Float64(-0.3)}, false},
		{"2pl missing b", TwoParam{Discrimination: Float64(1.2)}, false},
		{"3pl known", ThreeParam{Discrimination: Float64(1), Difficulty: Float64(0), Guessing: 0.2}, true},
		{"grm known", Graded{Discrimination: Float64(1), Thresholds: []*float64{Float64(-1), Float64(1)}}, true},
		{"grm partial thresholds", Graded{Discrimination: Float64(1), Thresholds: []*float64{Float64(-1), nil}}, false},
		{"grm missing a", Graded{Thresholds: []*float64{Float64(-1), Float64(1)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.model.Scorable(); got != tt.want {
				t.Errorf("Scorable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	if got := (Rasch{}).Categories(); got != 2 {
		t.Errorf("Rasch categories = %d, want 2", got)
	}
	grm := Graded{Thresholds: []*float64{Float64(-1), Float64(0), Float64(1)}}
	if got := grm.Categories(); got != 4 {
		t.Errorf("GRM categories = %d, want 4", got)
	}
}

func TestBankRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string // substring of the reported problem
	}{
		{
			"negative discrimination",
			Item{ID: "i1", Model: TwoParam{Discrimination: Float64(-0.5), Difficulty: Float64(0)}},
			"discrimination",
		},
		{
			"zero discrimination",
			Item{ID: "i1", Model: TwoParam{Discrimination: Float64(0), Difficulty: Float64(0)}},
			"discrimination",
		},
		{
			"guessing at one",
			Item{ID: "i1", Model: ThreeParam{Discrimination: Float64(1), Difficulty: Float64(0), Guessing: 1}},
			"guessing",
		},
		{
			"guessing below zero",
			Item{ID: "i1", Model: ThreeParam{Discrimination: Float64(1), Difficulty: Float64(0), Guessing: -0.1}},
			"guessing",
		},
		{
			"non-increasing thresholds",
			Item{ID: "i1", Model: Graded{Discrimination: Float64(1), Thresholds: []*float64{Float64(1), Float64(-1)}}},
			"threshold",
		},
		{
			"equal thresholds",
			Item{ID: "i1", Model: Graded{Discrimination: Float64(1), Thresholds: []*float64{Float64(0.5), Float64(0.5)}}},
			"threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]Item{tt.item})
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
			if !strings.Contains(schemaErr.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", schemaErr.Error(), tt.want)
			}
		})
	}
}

func TestBankAllowsUnknownParameters(t *testing.T) {
	// nil parameters mark the item unscorable but not invalid.
	bank, err := New([]Item{
		{ID: "i1", Model: Rasch{}},
		{ID: "i2", Model: Graded{Discrimination: Float64(1), Thresholds: []*float64{Float64(-1), nil, Float64(1)}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range bank.IDs() {
		it, _ := bank.Get(id)
		if it.Model.Scorable() {
			t.Errorf("item %q: expected unscorable", id)
		}
	}
}

func TestBankSkipsNilThresholdGaps(t *testing.T) {
	// Monotonicity is enforced only between known neighbors.
	_, err := New([]Item{
		{ID: "i1", Model: Graded{Discrimination: Float64(1), Thresholds: []*float64{Float64(-1), nil, Float64(1)}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = New([]Item{
		{ID: "i2", Model: Graded{Discrimination: Float64(1), Thresholds: []*float64{Float64(1), nil, Float64(-1)}}},
	})
	if err == nil {
		t.Fatal("expected error for decreasing known thresholds across a gap")
	}
}

func TestBankRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]Item{
		{ID: "i1", Model: Rasch{Difficulty: Float64(0)}},
		{ID: "i1", Model: Rasch{Difficulty: Float64(1)}},
	})
	if err == nil {
		t.Fatal("expected error for duplicate item IDs")
	}
}
