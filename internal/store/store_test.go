package store

import (
	"context"
	"testing"

	"github.com/selvastics/inrep-sub013/internal/assessment"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not asserted here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		n, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next sequence: %v", err)
		}
		if n <= prev {
			t.Fatalf("sequence %d not greater than previous %d", n, prev)
		}
		prev = n
	}
}

func TestExposureCounts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	// Two sessions touching overlapping items.
	events := []ResponseEventData{
		{SessionID: "s1", ItemID: "i1", Position: 1, Value: 1},
		{SessionID: "s1", ItemID: "i2", Position: 2, Value: 0},
		{SessionID: "s2", ItemID: "i1", Position: 1, Value: 1},
	}
	for _, e := range events {
		if err := repo.AppendResponseEvent(ctx, e); err != nil {
			t.Fatalf("append response event: %v", err)
		}
	}

	counts, err := repo.ExposureCounts(ctx)
	if err != nil {
		t.Fatalf("exposure counts: %v", err)
	}
	if counts["i1"] != 2 {
		t.Errorf("i1 exposure = %d, want 2", counts["i1"])
	}
	if counts["i2"] != 1 {
		t.Errorf("i2 exposure = %d, want 1", counts["i2"])
	}
	if counts["i3"] != 0 {
		t.Errorf("i3 exposure = %d, want 0", counts["i3"])
	}
}

func TestSessionSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", Action: "start", Mode: "adaptive",
	})
	if err != nil {
		t.Fatalf("append start: %v", err)
	}
	err = repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", Action: "stop", Mode: "adaptive",
		ItemsAdministered: 7, FinalTheta: 0.42, FinalSE: 0.28, StopReason: "precision_met",
	})
	if err != nil {
		t.Fatalf("append stop: %v", err)
	}
	// An in-flight session with no stop yet.
	err = repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s2", Action: "start", Mode: "fixed",
	})
	if err != nil {
		t.Fatalf("append start 2: %v", err)
	}

	summaries, err := repo.SessionSummaries(ctx, 10)
	if err != nil {
		t.Fatalf("session summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}

	byID := make(map[string]SessionSummary)
	for _, sum := range summaries {
		byID[sum.SessionID] = sum
	}

	s1 := byID["s1"]
	if s1.ItemsAdministered != 7 || s1.StopReason != "precision_met" {
		t.Errorf("s1 summary = %+v, want completed session details", s1)
	}
	if s1.FinalTheta != 0.42 || s1.FinalSE != 0.28 {
		t.Errorf("s1 estimates = (%g, %g), want (0.42, 0.28)", s1.FinalTheta, s1.FinalSE)
	}

	s2 := byID["s2"]
	if s2.StopReason != "" || s2.ItemsAdministered != 0 {
		t.Errorf("s2 summary = %+v, want in-flight session without stop details", s2)
	}
}

func TestSnapshotSaveLatestPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx, "s1")
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	// Save three progressive snapshots.
	for i := 1; i <= 3; i++ {
		err := repo.Save(ctx, assessment.Snapshot{
			SessionID:    "s1",
			Stage:        assessment.StageInProgress,
			Administered: make([]string, i),
			Theta:        float64(i) / 10,
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err = repo.Latest(ctx, "s1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Data.Theta != 0.3 {
		t.Errorf("latest theta = %g, want 0.3", snap.Data.Theta)
	}
	if len(snap.Data.Administered) != 3 {
		t.Errorf("latest administered = %d, want 3", len(snap.Data.Administered))
	}

	// Snapshots are namespaced by session.
	other, err := repo.Latest(ctx, "s2")
	if err != nil {
		t.Fatalf("latest other session: %v", err)
	}
	if other != nil {
		t.Error("expected nil snapshot for a different session")
	}

	// Prune keeps only the most recent one.
	if err := repo.Prune(ctx, "s1", 1); err != nil {
		t.Fatalf("prune: %v", err)
	}
	snap, err = repo.Latest(ctx, "s1")
	if err != nil {
		t.Fatalf("latest after prune: %v", err)
	}
	if snap == nil || snap.Data.Theta != 0.3 {
		t.Error("prune should keep the most recent snapshot")
	}
}
