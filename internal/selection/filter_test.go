package selection

import (
	"reflect"
	"testing"

	"github.com/selvastics/inrep-sub013/internal/itembank"
)

func testBank(t *testing.T) *itembank.Bank {
	t.Helper()
	bank, err := itembank.New([]itembank.Item{
		{ID: "i1", Domain: "verbal", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.0), Difficulty: itembank.Float64(-1)}},
		{ID: "i2", Domain: "verbal", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.5), Difficulty: itembank.Float64(0)}},
		{ID: "i3", Domain: "numeric", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.2), Difficulty: itembank.Float64(0.5)}},
		{ID: "i4", Domain: "numeric", Model: itembank.TwoParam{Discrimination: itembank.Float64(0.8), Difficulty: itembank.Float64(1)}},
		{ID: "i5", Model: itembank.Rasch{Difficulty: itembank.Float64(0)}},
	})
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}
	return bank
}

func TestEligibleExcludesAdministered(t *testing.T) {
	bank := testBank(t)

	got := Eligible(bank, []string{"i2", "i4"}, 2, DefaultConfig())
	want := []string{"i1", "i3", "i5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("eligible = %v, want %v", got, want)
	}
}

func TestEligibleExhausted(t *testing.T) {
	bank := testBank(t)

	got := Eligible(bank, []string{"i1", "i2", "i3", "i4", "i5"}, 5, DefaultConfig())
	if len(got) != 0 {
		t.Errorf("eligible = %v, want empty", got)
	}
}

func TestEligibleFixedPositions(t *testing.T) {
	bank := testBank(t)
	cfg := DefaultConfig()
	cfg.FixedItems = []string{"i3", "i1"}

	// Position 0 serves exactly the pinned item.
	if got := Eligible(bank, nil, 0, cfg); !reflect.DeepEqual(got, []string{"i3"}) {
		t.Errorf("position 0 = %v, want [i3]", got)
	}
	// Position 1 serves the next pin.
	if got := Eligible(bank, []string{"i3"}, 1, cfg); !reflect.DeepEqual(got, []string{"i1"}) {
		t.Errorf("position 1 = %v, want [i1]", got)
	}
	// Beyond the pinned prefix the full remaining pool applies.
	got := Eligible(bank, []string{"i3", "i1"}, 2, cfg)
	want := []string{"i2", "i4", "i5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("position 2 = %v, want %v", got, want)
	}
}

func TestEligiblePinnedItemAlreadyUsed(t *testing.T) {
	bank := testBank(t)
	cfg := DefaultConfig()
	cfg.FixedItems = []string{"i1", "i1"}

	got := Eligible(bank, []string{"i1"}, 1, cfg)
	if len(got) != 0 {
		t.Errorf("eligible = %v, want empty for a repeated pin", got)
	}
}

func TestEligibleDomainQuota(t *testing.T) {
	bank := testBank(t)
	cfg := DefaultConfig()
	cfg.DomainQuotas = map[string]int{"verbal": 1}

	// One verbal item already spent: the rest of verbal is filtered out.
	got := Eligible(bank, []string{"i1"}, 1, cfg)
	want := []string{"i3", "i4", "i5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("eligible = %v, want %v", got, want)
	}
}

func TestServable(t *testing.T) {
	bank, err := itembank.New([]itembank.Item{
		{ID: "known", Model: itembank.Rasch{Difficulty: itembank.Float64(0)}},
		{ID: "uncalibrated", Model: itembank.Rasch{}},
	})
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}

	// A scorable item remains: servable under every criterion.
	if !Servable(bank, nil, 0, DefaultConfig()) {
		t.Error("pool with a scorable item should be servable")
	}

	// Only the uncalibrated item left: scoring criteria cannot serve it.
	cfg := DefaultConfig()
	if Servable(bank, []string{"known"}, 1, cfg) {
		t.Error("unscorable remainder should not be servable under max-information")
	}
	cfg.Criterion = Weighted
	if Servable(bank, []string{"known"}, 1, cfg) {
		t.Error("unscorable remainder should not be servable under weighted")
	}

	// Random draws uniformly without scoring, so it still serves.
	cfg.Criterion = Random
	if !Servable(bank, []string{"known"}, 1, cfg) {
		t.Error("random criterion should serve an unscorable item")
	}

	// A pinned position serves its item without scoring.
	cfg = DefaultConfig()
	cfg.FixedItems = []string{"uncalibrated"}
	if !Servable(bank, nil, 0, cfg) {
		t.Error("pinned position should be servable regardless of scorability")
	}

	// Fully administered bank is never servable.
	if Servable(bank, []string{"known", "uncalibrated"}, 2, DefaultConfig()) {
		t.Error("exhausted bank should not be servable")
	}
}

func TestEligibleQuotaFallback(t *testing.T) {
	bank := testBank(t)
	cfg := DefaultConfig()
	cfg.DomainQuotas = map[string]int{"verbal": 0, "numeric": 0, "": 0}

	// All quotas spent would empty the pool; the filter falls back to the
	// unconstrained pool instead of stalling the session.
	got := Eligible(bank, []string{"i5"}, 1, cfg)
	want := []string{"i1", "i2", "i3", "i4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("eligible = %v, want unconstrained fallback %v", got, want)
	}
}
