package journal

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndQueryTransitions(t *testing.T) {
	j := openTestJournal(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	j.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	if err := j.RecordTransition("run-1", 1, 2, "advance", 10); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := j.RecordTransition("run-1", 2, 1, "revert", 0); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := j.RecentTransitions(10)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	// Newest first.
	if got[0].Reason != "revert" || got[0].ToPhase != 1 {
		t.Fatalf("got[0] = %+v, want revert to phase 1", got[0])
	}
	if got[1].Complexity != 10 {
		t.Fatalf("got[1].Complexity = %d, want 10", got[1].Complexity)
	}

	limited, err := j.RecentTransitions(1)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limited rows = %d, want 1", len(limited))
	}
}

func TestRecordHealActions(t *testing.T) {
	j := openTestJournal(t)

	if err := j.RecordHealAction("critical_memory_integrity", "memory_corruption", "deep memory healing performed", 8.5); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := j.RecentHealActions(5)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1", len(got))
	}
	if got[0].Strategy != "memory_corruption" || got[0].Severity != 8.5 {
		t.Fatalf("got = %+v", got[0])
	}
}

func TestRecordIncentiveEvent(t *testing.T) {
	j := openTestJournal(t)
	if err := j.RecordIncentiveEvent("curiosity", 10.0, "reward"); err != nil {
		t.Fatalf("record: %v", err)
	}

	var count int
	if err := j.db.QueryRow(`SELECT COUNT(*) FROM incentive_events`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}
