package replay

import (
	"context"
	"testing"
	"time"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/config"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/incentive"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/warp"
)

func newTestHarness(t *testing.T) *Harness {
	t.Helper()
	cfg := config.Default()
	cfg.Journal.Path = ""
	h, err := NewHarness(cfg)
	if err != nil {
		t.Fatalf("new harness: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestDefaultScenario(t *testing.T) {
	h := newTestHarness(t)

	results, summary, err := h.Run(context.Background(), DefaultScenario())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	wantOutcomes := []warp.TickOutcome{
		warp.TickIdle,      // warm-up
		warp.TickAdvanced,  // first-ascent
		warp.TickThrottled, // resource-pressure
		warp.TickAdvanced,  // pressure-clears
		warp.TickReverted,  // instability
		warp.TickAdvanced,  // recovery
		warp.TickIdle,      // memory-faults
		warp.TickIdle,      // self-heal
		warp.TickAdvanced,  // final-ascent
		warp.TickAdvanced,  // compression
		warp.TickCompleted, // warp-drive
	}
	if len(results) != len(wantOutcomes) {
		t.Fatalf("got %d results, want %d", len(results), len(wantOutcomes))
	}
	for i, want := range wantOutcomes {
		if results[i].Outcome != want {
			t.Fatalf("step %d (%s): outcome = %q, want %q", i, results[i].Label, results[i].Outcome, want)
		}
	}

	if summary.Advances != 6 {
		t.Fatalf("advances = %d, want 6", summary.Advances)
	}
	if summary.Reverts != 1 {
		t.Fatalf("reverts = %d, want 1", summary.Reverts)
	}
	if summary.Throttles != 1 {
		t.Fatalf("throttles = %d, want 1", summary.Throttles)
	}
	if summary.HealsPerformed != 1 {
		t.Fatalf("heals = %d, want 1", summary.HealsPerformed)
	}
	if summary.FinalPhase != warp.PhaseWarpDrive {
		t.Fatalf("final phase = %v, want warp drive", summary.FinalPhase)
	}
	if !summary.Completed {
		t.Fatal("expected a completed run")
	}
	if summary.TotalReward <= 0 {
		t.Fatalf("total reward = %v, want positive", summary.TotalReward)
	}

	// The memory-faults step diagnoses one recurring issue; the heal step
	// resolves it with at least one action.
	if results[6].Issues != 1 {
		t.Fatalf("memory-faults issues = %d, want 1", results[6].Issues)
	}
	heal := results[7].Heal
	if heal == nil || len(heal.Actions) == 0 {
		t.Fatal("expected heal actions on the self-heal step")
	}
}

func TestRunIsDeterministic(t *testing.T) {
	run := func() ([]StepResult, Summary) {
		h := newTestHarness(t)
		results, summary, err := h.Run(context.Background(), DefaultScenario())
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		return results, summary
	}

	resultsA, summaryA := run()
	resultsB, summaryB := run()

	if summaryA != summaryB {
		t.Fatalf("summaries diverged: %+v vs %+v", summaryA, summaryB)
	}
	for i := range resultsA {
		if resultsA[i].Outcome != resultsB[i].Outcome || resultsA[i].Phase != resultsB[i].Phase {
			t.Fatalf("step %d diverged: %+v vs %+v", i, resultsA[i], resultsB[i])
		}
	}
}

func TestRunAbortsOnUnknownPhase(t *testing.T) {
	h := newTestHarness(t)

	steps := []Step{{
		Label:        "bad-phase",
		Efficiencies: map[int]float64{9: 0.5},
		Advance:      time.Second,
	}}
	if _, _, err := h.Run(context.Background(), steps); err == nil {
		t.Fatal("expected an error for an unknown phase")
	}
}

func TestRunAbortsOnUnknownRewardCategory(t *testing.T) {
	h := newTestHarness(t)

	steps := []Step{{
		Label:   "bad-reward",
		Rewards: []RewardEvent{{Category: incentive.Category("bogus"), Magnitude: 1}},
		Advance: time.Second,
	}}
	if _, _, err := h.Run(context.Background(), steps); err == nil {
		t.Fatal("expected an error for an unknown category")
	}
}
