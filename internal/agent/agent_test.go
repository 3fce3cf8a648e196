package agent

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/config"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/monitor"
)

func newTestAgent(t *testing.T) *Agent {
	t.Helper()
	cfg := config.Default()
	cfg.Journal.Path = "" // no journal in unit tests
	a, err := New(cfg, &monitor.Static{}, nil)
	if err != nil {
		t.Fatalf("new agent: %v", err)
	}
	return a
}

func TestNewAgentDefaults(t *testing.T) {
	a := newTestAgent(t)

	if a.DecisionThreshold() != 0.6 {
		t.Fatalf("decision threshold = %v, want 0.6", a.DecisionThreshold())
	}
	if a.ExplorationRate() != 0.1 {
		t.Fatalf("exploration rate = %v, want 0.1", a.ExplorationRate())
	}
	if a.Efficiency() != 50.0 || a.Creativity() != 50.0 {
		t.Fatalf("efficiency/creativity = %v/%v, want 50/50", a.Efficiency(), a.Creativity())
	}
	if a.Journal() != nil {
		t.Fatal("expected no journal without a configured path")
	}
	if a.Memory().Size() != 10 {
		t.Fatalf("memory size = %d, want 10", a.Memory().Size())
	}
	if a.ID == "" {
		t.Fatal("expected a non-empty agent id")
	}
}

func TestPerformTaskScoring(t *testing.T) {
	a := newTestAgent(t)

	// Fresh emotional state has stability 0, so the base is
	// 0.7*50 + 0.3*50 = 50; the scorer factor adds 0.5*20.
	perf, err := a.PerformTask(0.5, StaticScorer{Factor: 0.5})
	if err != nil {
		t.Fatalf("perform task: %v", err)
	}
	if perf != 60.0 {
		t.Fatalf("performance = %v, want 60", perf)
	}
	if a.TasksDone() != 1 {
		t.Fatalf("tasks done = %d, want 1", a.TasksDone())
	}
}

func TestPerformTaskClampsToHundred(t *testing.T) {
	a := newTestAgent(t)
	a.SetEfficiency(100)
	a.SetCreativity(100)

	perf, err := a.PerformTask(0.5, StaticScorer{Factor: 10})
	if err != nil {
		t.Fatalf("perform task: %v", err)
	}
	if perf != 100.0 {
		t.Fatalf("performance = %v, want clamp at 100", perf)
	}
}

type failingScorer struct{}

func (failingScorer) Score(inputs []float64) (float64, error) {
	return 0, errors.New("network offline")
}

func TestPerformTaskScorerErrorLeavesHistoryUntouched(t *testing.T) {
	a := newTestAgent(t)

	if _, err := a.PerformTask(0.5, failingScorer{}); err == nil {
		t.Fatal("expected scorer error")
	}
	if a.TasksDone() != 0 {
		t.Fatalf("tasks done = %d, want 0 after failed task", a.TasksDone())
	}
	if trend := a.PerformanceTrend(); trend != 0 {
		t.Fatalf("trend = %v, want 0 with empty history", trend)
	}
}

func TestMeanGradient(t *testing.T) {
	if g := meanGradient(nil); g != 0 {
		t.Fatalf("empty gradient = %v, want 0", g)
	}
	if g := meanGradient([]float64{42}); g != 0 {
		t.Fatalf("single-point gradient = %v, want 0", g)
	}
	// Linear ramp has a uniform gradient.
	if g := meanGradient([]float64{10, 20, 30}); math.Abs(g-10) > 1e-9 {
		t.Fatalf("ramp gradient = %v, want 10", g)
	}
	// Central differences: [0,0,0,3] -> [0, 0, 1.5, 3], mean 1.125.
	if g := meanGradient([]float64{0, 0, 0, 3}); math.Abs(g-1.125) > 1e-9 {
		t.Fatalf("gradient = %v, want 1.125", g)
	}
}

func TestTrendFeedsIncentiveScaling(t *testing.T) {
	a := newTestAgent(t)

	// Ramp efficiency so the retained window trends upward; the 100th
	// task triggers one adaptation cycle.
	for i := 0; i < 100; i++ {
		a.SetEfficiency(float64(i))
		if _, err := a.PerformTask(0.5, nil); err != nil {
			t.Fatalf("perform task %d: %v", i, err)
		}
	}

	reward, penalty := a.Incentives().Scaling()
	if math.Abs(reward-0.95) > 1e-9 {
		t.Fatalf("reward scaling = %v, want 0.95 after improving trend", reward)
	}
	if math.Abs(penalty-1.05) > 1e-9 {
		t.Fatalf("penalty scaling = %v, want 1.05 after improving trend", penalty)
	}
}

func TestHealMutatesDecisionParamsThroughAgent(t *testing.T) {
	a := newTestAgent(t)
	a.SetDecisionThreshold(0.9)

	for i := 0; i < 3; i++ {
		a.Health().LogError("decision_paralysis", 20, nil)
	}

	result, err := a.Health().Heal(context.Background())
	if err != nil {
		t.Fatalf("heal: %v", err)
	}
	if result.Status != "healing_performed" {
		t.Fatalf("status = %q, want healing_performed", result.Status)
	}
	if a.DecisionThreshold() != 0.6 {
		t.Fatalf("decision threshold = %v, want reset to 0.6", a.DecisionThreshold())
	}
	if a.ExplorationRate() != 0.3 {
		t.Fatalf("exploration rate = %v, want capped at 0.3", a.ExplorationRate())
	}
}

func TestSetEfficiencyClamps(t *testing.T) {
	a := newTestAgent(t)
	a.SetEfficiency(150)
	if a.Efficiency() != 100 {
		t.Fatalf("efficiency = %v, want clamp at 100", a.Efficiency())
	}
	a.SetCreativity(-5)
	if a.Creativity() != 0 {
		t.Fatalf("creativity = %v, want clamp at 0", a.Creativity())
	}
}
