package assessment

import (
	"errors"
	"testing"

	"github.com/selvastics/inrep-sub013/internal/itembank"
	"github.com/selvastics/inrep-sub013/internal/selection"
	"github.com/selvastics/inrep-sub013/internal/stopping"
)

// stubEstimator returns a scripted (theta, se) per call count, so the
// tests control precision without running real quadrature.
type stubEstimator struct {
	thetas []float64
	ses    []float64
	calls  int
	fail   bool
}

func (e *stubEstimator) Estimate(_ *itembank.Bank, _ []Response, priorMean, _ float64) (float64, float64, error) {
	if e.fail {
		return 0, 0, errors.New("degenerate pattern")
	}
	i := e.calls
	if i >= len(e.thetas) {
		i = len(e.thetas) - 1
	}
	e.calls++
	if i < 0 {
		return priorMean, 1, nil
	}
	return e.thetas[i], e.ses[i], nil
}

func sessionBank(t *testing.T) *itembank.Bank {
	t.Helper()
	items := []itembank.Item{
		{ID: "i1", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.0), Difficulty: itembank.Float64(-1)}},
		{ID: "i2", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.5), Difficulty: itembank.Float64(0)}},
		{ID: "i3", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.2), Difficulty: itembank.Float64(0.5)}},
		{ID: "i4", Model: itembank.TwoParam{Discrimination: itembank.Float64(0.8), Difficulty: itembank.Float64(1)}},
		{ID: "i5", Model: itembank.Rasch{Difficulty: itembank.Float64(0)}},
	}
	bank, err := itembank.New(items)
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}
	return bank
}

func adaptiveConfig() Config {
	cfg := DefaultConfig()
	cfg.Stopping = stopping.Config{MinItems: 1, MaxItems: 4, MinSEM: 0.3}
	return cfg
}

func TestSessionLifecycle(t *testing.T) {
	bank := sessionBank(t)
	est := &stubEstimator{thetas: []float64{0.2, 0.4, 0.5, 0.5}, ses: []float64{0.8, 0.6, 0.5, 0.4}}
	sess, err := NewSession(bank, adaptiveConfig(), est)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if sess.Stage() != StageNotStarted {
		t.Fatalf("stage = %q, want not_started", sess.Stage())
	}

	// Submitting before any item is served is rejected.
	if _, err := sess.SubmitResponse("i2", 1); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("error = %v, want ErrNotStarted", err)
	}

	it, err := sess.CurrentItem()
	if err != nil {
		t.Fatalf("current item: %v", err)
	}
	if sess.Stage() != StageInProgress {
		t.Fatalf("stage = %q, want in_progress after first serve", sess.Stage())
	}

	decision, err := sess.SubmitResponse(it.ID, 1)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !decision.Continue {
		t.Fatalf("stopped early: %q", decision.Reason)
	}
	if got := sess.Progress().Administered; got != 1 {
		t.Errorf("administered = %d, want 1", got)
	}
}

func TestSessionStopsOnMaxItems(t *testing.T) {
	bank := sessionBank(t)
	// SE never reaches the target; the ceiling must end the session.
	est := &stubEstimator{thetas: []float64{0, 0, 0, 0}, ses: []float64{0.9, 0.9, 0.9, 0.9}}
	sess, err := NewSession(bank, adaptiveConfig(), est)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	var last stopping.Decision
	for sess.Stage() != StageStopped {
		it, err := sess.CurrentItem()
		if err != nil {
			t.Fatalf("current item: %v", err)
		}
		last, err = sess.SubmitResponse(it.ID, 1)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	if last.Reason != stopping.ReasonMaxItemsReached {
		t.Errorf("reason = %q, want max_items_reached", last.Reason)
	}
	if got := len(sess.Administered()); got != 4 {
		t.Errorf("administered = %d, want 4", got)
	}

	// Terminal stage rejects further operations without corrupting state.
	if _, err := sess.CurrentItem(); !errors.Is(err, ErrSessionStopped) {
		t.Errorf("CurrentItem after stop: %v, want ErrSessionStopped", err)
	}
	if _, err := sess.SubmitResponse("i1", 0); !errors.Is(err, ErrSessionStopped) {
		t.Errorf("SubmitResponse after stop: %v, want ErrSessionStopped", err)
	}
}

func TestSessionStopsOnPrecision(t *testing.T) {
	bank := sessionBank(t)
	est := &stubEstimator{thetas: []float64{0.3, 0.4}, ses: []float64{0.5, 0.25}}
	sess, err := NewSession(bank, adaptiveConfig(), est)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	it, _ := sess.CurrentItem()
	if _, err := sess.SubmitResponse(it.ID, 1); err != nil {
		t.Fatalf("submit 1: %v", err)
	}
	it, _ = sess.CurrentItem()
	decision, err := sess.SubmitResponse(it.ID, 0)
	if err != nil {
		t.Fatalf("submit 2: %v", err)
	}

	if decision.Continue || decision.Reason != stopping.ReasonPrecisionMet {
		t.Errorf("decision = (%v, %q), want precision_met stop", decision.Continue, decision.Reason)
	}
	theta, se, known := sess.Ability()
	if !known || theta != 0.4 || se != 0.25 {
		t.Errorf("ability = (%g, %g, %v), want (0.4, 0.25, true)", theta, se, known)
	}
}

func TestSessionNeverRepeatsItems(t *testing.T) {
	bank := sessionBank(t)
	est := &stubEstimator{thetas: []float64{0, 0, 0, 0}, ses: []float64{0.9, 0.9, 0.9, 0.9}}
	sess, err := NewSession(bank, adaptiveConfig(), est)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	seen := make(map[string]bool)
	for sess.Stage() != StageStopped {
		it, err := sess.CurrentItem()
		if err != nil {
			t.Fatalf("current item: %v", err)
		}
		if seen[it.ID] {
			t.Fatalf("item %q served twice", it.ID)
		}
		seen[it.ID] = true
		if _, err := sess.SubmitResponse(it.ID, 0); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
}

func TestPageCacheSurvivesReRender(t *testing.T) {
	bank := sessionBank(t)
	est := &stubEstimator{thetas: []float64{0, 0}, ses: []float64{0.9, 0.9}}
	sess, err := NewSession(bank, adaptiveConfig(), est)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	first, err := sess.CurrentItem()
	if err != nil {
		t.Fatalf("current item: %v", err)
	}
	// Repeated renders of the same page re-serve the cached selection.
	for i := 0; i < 3; i++ {
		again, err := sess.CurrentItem()
		if err != nil {
			t.Fatalf("re-render %d: %v", i, err)
		}
		if again.ID != first.ID {
			t.Fatalf("re-render %d returned %q, want cached %q", i, again.ID, first.ID)
		}
	}

	if _, err := sess.SubmitResponse(first.ID, 1); err != nil {
		t.Fatalf("submit: %v", err)
	}
	next, err := sess.CurrentItem()
	if err != nil {
		t.Fatalf("next item: %v", err)
	}
	if next.ID == first.ID {
		t.Error("forward progression should select a new item")
	}
}

func TestStaleAndDuplicateSubmissions(t *testing.T) {
	bank := sessionBank(t)
	est := &stubEstimator{thetas: []float64{0, 0}, ses: []float64{0.9, 0.9}}
	sess, err := NewSession(bank, adaptiveConfig(), est)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	first, _ := sess.CurrentItem()
	if _, err := sess.SubmitResponse(first.ID, 1); err != nil {
		t.Fatalf("submit: %v", err)
	}

	second, _ := sess.CurrentItem()

	// Resubmitting the already-recorded item is rejected as stale.
	var stale *StaleResponseError
	_, err = sess.SubmitResponse(first.ID, 0)
	if !errors.As(err, &stale) || !stale.Recorded {
		t.Fatalf("duplicate submit: %v, want StaleResponseError{Recorded: true}", err)
	}

	// Submitting some other bank item is rejected as a mismatch.
	other := "i1"
	if other == second.ID || other == first.ID {
		other = "i4"
	}
	_, err = sess.SubmitResponse(other, 0)
	if !errors.As(err, &stale) || stale.Recorded {
		t.Fatalf("mismatched submit: %v, want StaleResponseError mismatch", err)
	}

	// The pending item is unaffected and still accepts its response.
	if _, err := sess.SubmitResponse(second.ID, 1); err != nil {
		t.Fatalf("pending item rejected after stale submissions: %v", err)
	}
	if got := len(sess.Responses()); got != 2 {
		t.Errorf("responses = %d, want 2", got)
	}
}

func TestInvalidResponseValue(t *testing.T) {
	bank := sessionBank(t)
	est := &stubEstimator{thetas: []float64{0}, ses: []float64{0.9}}
	sess, err := NewSession(bank, adaptiveConfig(), est)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	it, _ := sess.CurrentItem()
	var invalid *InvalidResponseError
	if _, err := sess.SubmitResponse(it.ID, 2); !errors.As(err, &invalid) {
		t.Fatalf("out-of-range submit: %v, want InvalidResponseError", err)
	}

	// The missing sentinel is accepted and counts as administered.
	if _, err := sess.SubmitResponse(it.ID, ResponseMissing); err != nil {
		t.Fatalf("missing response rejected: %v", err)
	}
	if got := sess.Progress().Administered; got != 1 {
		t.Errorf("administered = %d, want 1", got)
	}
}

func TestEstimatorFailureKeepsSessionAlive(t *testing.T) {
	bank := sessionBank(t)
	est := &stubEstimator{fail: true}
	cfg := adaptiveConfig()
	sess, err := NewSession(bank, cfg, est)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	it, _ := sess.CurrentItem()
	decision, err := sess.SubmitResponse(it.ID, 1)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !decision.Continue || decision.Reason != stopping.ReasonPrecisionNotMet {
		t.Errorf("decision = (%v, %q), want continue on precision_not_met", decision.Continue, decision.Reason)
	}

	// The previous estimate is kept, flagged unknown.
	theta, _, known := sess.Ability()
	if known {
		t.Error("expected unknown ability after estimation failure")
	}
	if theta != cfg.PriorMean {
		t.Errorf("theta = %g, want prior mean retained", theta)
	}
}

func TestUnscorableRemainderStopsAsExhausted(t *testing.T) {
	// Past the minimum floor, a pool holding only uncalibrated items
	// must end the session as bank exhaustion, never surface a
	// selection error to the respondent.
	bank, err := itembank.New([]itembank.Item{
		{ID: "k1", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.2), Difficulty: itembank.Float64(-0.5)}},
		{ID: "k2", Model: itembank.TwoParam{Discrimination: itembank.Float64(1.0), Difficulty: itembank.Float64(0.5)}},
		{ID: "uncalibrated", Model: itembank.Rasch{}},
	})
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Stopping = stopping.Config{MinItems: 1, MaxItems: 10, MinSEM: 0.01}
	est := &stubEstimator{thetas: []float64{0, 0}, ses: []float64{0.9, 0.9}}

	sess, err := NewSession(bank, cfg, est)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	var last stopping.Decision
	for i := 0; i < 2; i++ {
		it, err := sess.CurrentItem()
		if err != nil {
			t.Fatalf("current item %d: %v", i+1, err)
		}
		last, err = sess.SubmitResponse(it.ID, 1)
		if err != nil {
			t.Fatalf("submit %d: %v", i+1, err)
		}
	}

	if last.Continue {
		t.Fatal("session should have stopped once only uncalibrated items remain")
	}
	if last.Reason != stopping.ReasonBankExhausted {
		t.Errorf("reason = %q, want bank_exhausted", last.Reason)
	}
	if sess.Stage() != StageStopped {
		t.Errorf("stage = %q, want stopped", sess.Stage())
	}
}

func TestManualStop(t *testing.T) {
	bank := sessionBank(t)
	est := &stubEstimator{thetas: []float64{0}, ses: []float64{0.9}}
	sess, err := NewSession(bank, adaptiveConfig(), est)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if _, err := sess.CurrentItem(); err != nil {
		t.Fatalf("current item: %v", err)
	}
	d := sess.Stop()
	if d.Continue || d.Reason != stopping.ReasonManualOverride {
		t.Errorf("decision = (%v, %q), want manual_override stop", d.Continue, d.Reason)
	}
	if sess.Stage() != StageStopped {
		t.Errorf("stage = %q, want stopped", sess.Stage())
	}

	// Idempotent.
	if again := sess.Stop(); again != d {
		t.Errorf("second Stop() = %+v, want %+v", again, d)
	}
}

func TestFixedModeWalksSequence(t *testing.T) {
	bank := sessionBank(t)
	cfg := DefaultConfig()
	cfg.Mode = ModeFixed
	cfg.FixedSequence = []string{"i3", "i1", "i4"}
	cfg.Stopping = stopping.Config{MinItems: 1, MaxItems: 0, MinSEM: 0.3}

	sess, err := NewSession(bank, cfg, &stubEstimator{thetas: []float64{0, 0, 0}, ses: []float64{0.1, 0.1, 0.1}})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	var served []string
	var last stopping.Decision
	for sess.Stage() != StageStopped {
		it, err := sess.CurrentItem()
		if err != nil {
			t.Fatalf("current item: %v", err)
		}
		served = append(served, it.ID)
		last, err = sess.SubmitResponse(it.ID, 1)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	want := []string{"i3", "i1", "i4"}
	if len(served) != len(want) {
		t.Fatalf("served %v, want %v", served, want)
	}
	for i := range want {
		if served[i] != want[i] {
			t.Fatalf("served %v, want exact order %v", served, want)
		}
	}

	// A tiny SE must not have ended the walk early; the sequence ends on
	// exhaustion.
	if last.Reason != stopping.ReasonBankExhausted {
		t.Errorf("final reason = %q, want bank_exhausted", last.Reason)
	}
}

func TestFixedModeMissingItem(t *testing.T) {
	bank := sessionBank(t)
	cfg := DefaultConfig()
	cfg.Mode = ModeFixed
	cfg.FixedSequence = []string{"i1", "ghost"}
	cfg.Stopping = stopping.Config{MinItems: 1, MaxItems: 0, MinSEM: stopping.DisabledMinSEM}

	sess, err := NewSession(bank, cfg, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	it, _ := sess.CurrentItem()
	if _, err := sess.SubmitResponse(it.ID, 1); err != nil {
		t.Fatalf("submit: %v", err)
	}
	_, err = sess.CurrentItem()
	if !errors.Is(err, selection.ErrNoEligibleItems) {
		t.Errorf("error = %v, want wrapped ErrNoEligibleItems", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(c *Config) {}, true},
		{"unknown mode", func(c *Config) { c.Mode = "oracle" }, false},
		{"max below min", func(c *Config) { c.Stopping.MinItems = 10; c.Stopping.MaxItems = 5 }, false},
		{"unbounded max", func(c *Config) { c.Stopping.MaxItems = 0 }, true},
		{"negative minsem", func(c *Config) { c.Stopping.MinSEM = -1 }, false},
		{"zero prior sd", func(c *Config) { c.PriorSD = 0 }, false},
		{"fixed without sequence", func(c *Config) { c.Mode = ModeFixed }, false},
		{"fixed with sequence", func(c *Config) { c.Mode = ModeFixed; c.FixedSequence = []string{"i1", "i2"} }, true},
		{"duplicate in sequence", func(c *Config) { c.Mode = ModeFixed; c.FixedSequence = []string{"i1", "i1"} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}
