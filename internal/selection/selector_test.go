package selection

import (
	"errors"
	"testing"

	"github.com/selvastics/inrep-sub013/internal/itembank"
)

func TestNextMaximumInformation(t *testing.T) {
	bank := testBank(t)
	sel := New(DefaultConfig(), 1)

	// Near theta=0, i2 (a=1.5, b=0) carries the most information.
	got, err := sel.Next(bank, nil, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "i2" {
		t.Errorf("selected %q, want i2", got)
	}

	// With i2 gone, the peak shifts to i3 at theta=0.5.
	got, err = sel.Next(bank, []string{"i2"}, 1, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "i3" {
		t.Errorf("selected %q, want i3", got)
	}
}

func TestNextTieBreakByExposureThenID(t *testing.T) {
	// Two identically parameterized items tie exactly on information.
	bank, err := itembank.New([]itembank.Item{
		{ID: "b", Model: itembank.TwoParam{Discrimination: itembank.Float64(1), Difficulty: itembank.Float64(0)}},
		{ID: "a", Model: itembank.TwoParam{Discrimination: itembank.Float64(1), Difficulty: itembank.Float64(0)}},
		{ID: "c", Model: itembank.TwoParam{Discrimination: itembank.Float64(1), Difficulty: itembank.Float64(0)}},
	})
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}

	// No exposure data: lowest ID wins.
	sel := New(DefaultConfig(), 1)
	got, err := sel.Next(bank, nil, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a" {
		t.Errorf("selected %q, want a (lowest ID)", got)
	}

	// Exposure breaks the tie before ID does.
	cfg := DefaultConfig()
	cfg.ExposureCounts = map[string]int{"a": 5, "b": 5, "c": 1}
	sel = New(cfg, 1)
	got, err = sel.Next(bank, nil, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "c" {
		t.Errorf("selected %q, want c (least exposed)", got)
	}
}

func TestNextWeightedDiscountsExposure(t *testing.T) {
	bank := testBank(t)
	cfg := DefaultConfig()
	cfg.Criterion = Weighted
	// i2 is the information leader at theta=0 but heavily exposed.
	cfg.ExposureCounts = map[string]int{"i2": 50}
	sel := New(cfg, 1)

	got, err := sel.Next(bank, nil, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == "i2" {
		t.Error("weighted criterion should have discounted the overexposed leader")
	}
}

func TestNextRandomDeterministicPerSeed(t *testing.T) {
	bank := testBank(t)
	cfg := DefaultConfig()
	cfg.Criterion = Random

	pick := func(seed int64) []string {
		sel := New(cfg, seed)
		var administered, picks []string
		for i := 0; i < 3; i++ {
			id, err := sel.Next(bank, administered, i, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			administered = append(administered, id)
			picks = append(picks, id)
		}
		return picks
	}

	first := pick(7)
	second := pick(7)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed diverged at pick %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestNextRandomFastForward(t *testing.T) {
	bank := testBank(t)
	cfg := DefaultConfig()
	cfg.Criterion = Random

	// Run three picks on one selector.
	sel := New(cfg, 11)
	var administered []string
	for i := 0; i < 2; i++ {
		id, err := sel.Next(bank, administered, i, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		administered = append(administered, id)
	}
	want, err := sel.Next(bank, administered, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A fresh selector fast-forwarded past the same draws must agree.
	replay := New(cfg, 11)
	replay.FastForward(2)
	got, err := replay.Next(bank, administered, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("restored pick = %q, want %q", got, want)
	}
}

func TestNextSkipsUnscorableItems(t *testing.T) {
	bank, err := itembank.New([]itembank.Item{
		{ID: "known", Model: itembank.Rasch{Difficulty: itembank.Float64(0)}},
		{ID: "uncalibrated", Model: itembank.Rasch{}},
	})
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}

	sel := New(DefaultConfig(), 1)
	got, err := sel.Next(bank, nil, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "known" {
		t.Errorf("selected %q, want known", got)
	}

	// Only the uncalibrated item remains: nothing can be scored.
	_, err = sel.Next(bank, []string{"known"}, 1, 0)
	if !errors.Is(err, ErrNoEligibleItems) {
		t.Errorf("error = %v, want ErrNoEligibleItems", err)
	}
}

func TestNextEmptyPool(t *testing.T) {
	bank := testBank(t)
	sel := New(DefaultConfig(), 1)

	_, err := sel.Next(bank, []string{"i1", "i2", "i3", "i4", "i5"}, 5, 0)
	if !errors.Is(err, ErrNoEligibleItems) {
		t.Errorf("error = %v, want ErrNoEligibleItems", err)
	}
}

func TestNextPinnedPositionServesUnscored(t *testing.T) {
	bank := testBank(t)
	cfg := DefaultConfig()
	cfg.FixedItems = []string{"i4"}
	sel := New(cfg, 1)

	// i4 is far from the information leader at theta=0 but pinned.
	got, err := sel.Next(bank, nil, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "i4" {
		t.Errorf("selected %q, want pinned i4", got)
	}
}
