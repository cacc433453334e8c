package assessment

import (
	"encoding/json"
	"testing"

	"github.com/selvastics/inrep-sub013/internal/selection"
	"github.com/selvastics/inrep-sub013/internal/stopping"
)

func TestSnapshotRoundTrip(t *testing.T) {
	bank := sessionBank(t)
	cfg := adaptiveConfig()
	est := &stubEstimator{thetas: []float64{0.2, 0.3, 0.35}, ses: []float64{0.8, 0.6, 0.45}}

	sess, err := NewSession(bank, cfg, est)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	for i := 0; i < 2; i++ {
		it, err := sess.CurrentItem()
		if err != nil {
			t.Fatalf("current item: %v", err)
		}
		if _, err := sess.SubmitResponse(it.ID, 1); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	snap := sess.Snapshot()

	// Snapshots are externally persisted as JSON; the round trip must be
	// lossless.
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored, err := Restore(bank, cfg, &stubEstimator{thetas: []float64{0.35}, ses: []float64{0.45}}, decoded)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if restored.ID() != sess.ID() {
		t.Errorf("restored ID = %q, want %q", restored.ID(), sess.ID())
	}
	if restored.Stage() != sess.Stage() {
		t.Errorf("restored stage = %q, want %q", restored.Stage(), sess.Stage())
	}
	gotTheta, gotSE, known := restored.Ability()
	wantTheta, wantSE, _ := sess.Ability()
	if !known || gotTheta != wantTheta || gotSE != wantSE {
		t.Errorf("restored ability = (%g, %g, %v), want (%g, %g, true)", gotTheta, gotSE, known, wantTheta, wantSE)
	}
	if len(restored.Administered()) != 2 {
		t.Errorf("restored administered = %d, want 2", len(restored.Administered()))
	}
}

func TestRestoreContinuesIdentically(t *testing.T) {
	bank := sessionBank(t)
	cfg := adaptiveConfig()
	cfg.Stopping.MaxItems = 4

	run := func(snapshotAfter int) []string {
		est := &stubEstimator{thetas: []float64{0.2, 0.3, 0.35, 0.4}, ses: []float64{0.8, 0.7, 0.6, 0.5}}
		sess, err := NewSession(bank, cfg, est)
		if err != nil {
			t.Fatalf("new session: %v", err)
		}

		var served []string
		for sess.Stage() != StageStopped {
			if snapshotAfter >= 0 && len(served) == snapshotAfter {
				// Interrupt: persist and rebuild mid-session.
				snap := sess.Snapshot()
				cont := &stubEstimator{thetas: est.thetas[est.calls:], ses: est.ses[est.calls:]}
				sess, err = Restore(bank, cfg, cont, snap)
				if err != nil {
					t.Fatalf("restore: %v", err)
				}
				snapshotAfter = -1
			}
			it, err := sess.CurrentItem()
			if err != nil {
				t.Fatalf("current item: %v", err)
			}
			served = append(served, it.ID)
			if _, err := sess.SubmitResponse(it.ID, 1); err != nil {
				t.Fatalf("submit: %v", err)
			}
		}
		return served
	}

	uninterrupted := run(-1)
	interrupted := run(2)

	if len(uninterrupted) != len(interrupted) {
		t.Fatalf("lengths diverged: %v vs %v", uninterrupted, interrupted)
	}
	for i := range uninterrupted {
		if uninterrupted[i] != interrupted[i] {
			t.Fatalf("selection diverged at %d: %v vs %v", i, uninterrupted, interrupted)
		}
	}
}

func TestRestoreReplaysRandomDraws(t *testing.T) {
	bank := sessionBank(t)
	cfg := adaptiveConfig()
	cfg.Selection = selection.Config{Criterion: selection.Random}
	cfg.Seed = 42
	cfg.Stopping = stopping.Config{MinItems: 1, MaxItems: 5, MinSEM: stopping.DisabledMinSEM}

	est := func() *stubEstimator {
		return &stubEstimator{thetas: []float64{0, 0, 0, 0, 0}, ses: []float64{1, 1, 1, 1, 1}}
	}

	run := func(interrupt bool) []string {
		sess, err := NewSession(bank, cfg, est())
		if err != nil {
			t.Fatalf("new session: %v", err)
		}
		var served []string
		for sess.Stage() != StageStopped {
			if interrupt && len(served) == 2 {
				snap := sess.Snapshot()
				sess, err = Restore(bank, cfg, est(), snap)
				if err != nil {
					t.Fatalf("restore: %v", err)
				}
				interrupt = false
			}
			it, err := sess.CurrentItem()
			if err != nil {
				t.Fatalf("current item: %v", err)
			}
			served = append(served, it.ID)
			if _, err := sess.SubmitResponse(it.ID, 1); err != nil {
				t.Fatalf("submit: %v", err)
			}
		}
		return served
	}

	plain := run(false)
	resumed := run(true)
	for i := range plain {
		if plain[i] != resumed[i] {
			t.Fatalf("random selection diverged at %d: %v vs %v", i, plain, resumed)
		}
	}
}

func TestSnapshotPreservesPendingPage(t *testing.T) {
	bank := sessionBank(t)
	cfg := adaptiveConfig()
	est := &stubEstimator{thetas: []float64{0.2}, ses: []float64{0.8}}

	sess, err := NewSession(bank, cfg, est)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	pending, err := sess.CurrentItem()
	if err != nil {
		t.Fatalf("current item: %v", err)
	}

	// Snapshot taken with an item served but unanswered.
	restored, err := Restore(bank, cfg, est, sess.Snapshot())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	again, err := restored.CurrentItem()
	if err != nil {
		t.Fatalf("restored current item: %v", err)
	}
	if again.ID != pending.ID {
		t.Errorf("restored pending item = %q, want %q", again.ID, pending.ID)
	}
}

func TestRestoreBeforeFirstResponseKeepsZeroDecision(t *testing.T) {
	bank := sessionBank(t)
	cfg := adaptiveConfig()
	est := &stubEstimator{thetas: []float64{0.2}, ses: []float64{0.8}}

	sess, err := NewSession(bank, cfg, est)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, err := sess.CurrentItem(); err != nil {
		t.Fatalf("current item: %v", err)
	}

	// No response recorded yet: the original reports the zero Decision
	// and the restored session must report the same.
	restored, err := Restore(bank, cfg, est, sess.Snapshot())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got, want := restored.LastDecision(), sess.LastDecision(); got != want {
		t.Errorf("restored LastDecision = %+v, want %+v", got, want)
	}
	if got := restored.LastDecision(); got != (stopping.Decision{}) {
		t.Errorf("LastDecision = %+v, want zero Decision before any response", got)
	}
}

func TestRestoreRejectsCorruptSnapshots(t *testing.T) {
	bank := sessionBank(t)
	cfg := adaptiveConfig()
	est := &stubEstimator{thetas: []float64{0.2}, ses: []float64{0.8}}

	base := Snapshot{
		SessionID:    "s-1",
		Stage:        StageInProgress,
		Administered: []string{"i1", "i2"},
		Responses:    []Response{{ItemID: "i1", Value: 1}, {ItemID: "i2", Value: 0}},
	}

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"missing session id", func(s *Snapshot) { s.SessionID = "" }},
		{"count mismatch", func(s *Snapshot) { s.Responses = s.Responses[:1] }},
		{"repeated item", func(s *Snapshot) {
			s.Administered = []string{"i1", "i1"}
			s.Responses = []Response{{ItemID: "i1", Value: 1}, {ItemID: "i1", Value: 0}}
		}},
		{"item not in bank", func(s *Snapshot) {
			s.Administered = []string{"i1", "ghost"}
			s.Responses = []Response{{ItemID: "i1", Value: 1}, {ItemID: "ghost", Value: 0}}
		}},
		{"misaligned response", func(s *Snapshot) {
			s.Responses = []Response{{ItemID: "i2", Value: 1}, {ItemID: "i1", Value: 0}}
		}},
		{"unknown stage", func(s *Snapshot) { s.Stage = "paused" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := base
			tt.mutate(&snap)
			if _, err := Restore(bank, cfg, est, snap); err == nil {
				t.Error("expected restore to fail")
			}
		})
	}

	// The unmutated snapshot restores cleanly.
	if _, err := Restore(bank, cfg, est, base); err != nil {
		t.Errorf("valid snapshot rejected: %v", err)
	}
}
