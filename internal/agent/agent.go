// Package agent wires one autonomous agent together: emotional state,
// incentive system, self-healing engine, warp phase system, and the
// probabilistic memory bank, with an optional provenance journal
// underneath all of them.
package agent

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/config"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/emotion"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/health"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/incentive"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/journal"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/monitor"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/qmem"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/warp"
)

// #region scorer

// Scorer produces the decision factor for one task. The inputs are the
// agent's normalized efficiency, creativity, and emotional stability
// followed by the task complexity. Implementations are opaque to the
// agent; StaticScorer is the deterministic default.
type Scorer interface {
	Score(inputs []float64) (float64, error)
}

// StaticScorer returns a fixed decision factor for every task.
type StaticScorer struct {
	Factor float64
}

// Score implements Scorer.
func (s StaticScorer) Score(inputs []float64) (float64, error) {
	return s.Factor, nil
}

// #endregion scorer

// #region agent

const (
	defaultDecisionThreshold = 0.6
	defaultExplorationRate   = 0.1

	// trendWindow is how many task results feed one incentive
	// adaptation cycle.
	trendWindow = 100
)

// Agent is the composition root for one control loop instance.
type Agent struct {
	ID string

	emotions   *emotion.State
	incentives *incentive.System
	health     *health.Engine
	warp       *warp.System
	memory     *qmem.Bank
	journal    *journal.Journal

	decisionThreshold float64
	explorationRate   float64

	efficiency float64
	creativity float64

	perfHistory []float64
	tasksDone   int
}

// New builds an agent from the configuration. The journal is opened only
// when a path is configured; a nil rng falls back to a time-seeded source
// shared by the memory bank and the heal strategies.
func New(cfg config.Config, sampler monitor.Sampler, rng *rand.Rand) (*Agent, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	a := &Agent{
		ID:                uuid.NewString(),
		emotions:          emotion.NewState(),
		incentives:        incentive.NewSystem(cfg.Incentive),
		memory:            qmem.NewBank(cfg.Memory.Slots, rng),
		warp:              warp.New(cfg.Warp, sampler),
		decisionThreshold: defaultDecisionThreshold,
		explorationRate:   defaultExplorationRate,
		efficiency:        50.0,
		creativity:        50.0,
	}
	deps := health.Deps{
		Memory:   a.memory,
		Emotions: a.emotions,
		Params:   a,
		Rand:     rng,
	}
	if cfg.Journal.Path != "" {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		a.journal = j
		a.warp.AttachJournal(j)
		a.incentives.AttachJournal(j)
		deps.Journal = j
	}
	a.health = health.NewEngine(cfg.Health, deps)
	return a, nil
}

// Close releases the journal, if any.
func (a *Agent) Close() error {
	if a.journal == nil {
		return nil
	}
	return a.journal.Close()
}

// SetClock overrides the time source of every time-sensitive subsystem.
func (a *Agent) SetClock(now func() time.Time) {
	a.warp.SetClock(now)
	a.health.SetClock(now)
	a.incentives.SetClock(now)
}

// #endregion agent

// #region decision-params

// DecisionThreshold returns the current decision acceptance threshold.
func (a *Agent) DecisionThreshold() float64 { return a.decisionThreshold }

// SetDecisionThreshold implements health.DecisionParams.
func (a *Agent) SetDecisionThreshold(v float64) { a.decisionThreshold = v }

// ExplorationRate implements health.DecisionParams.
func (a *Agent) ExplorationRate() float64 { return a.explorationRate }

// SetExplorationRate implements health.DecisionParams.
func (a *Agent) SetExplorationRate(v float64) { a.explorationRate = v }

// #endregion decision-params

// #region tasks

// PerformTask runs one task through the scorer and returns the clamped
// performance score. Every trendWindow-th task feeds the recent
// performance trend back into incentive scaling.
func (a *Agent) PerformTask(complexity float64, scorer Scorer) (float64, error) {
	base := 0.7*a.efficiency + 0.3*a.creativity + 0.2*a.emotions.Stability()

	factor := 0.0
	if scorer != nil {
		inputs := []float64{
			a.efficiency / 100,
			a.creativity / 100,
			a.emotions.Stability() / 100,
			complexity,
		}
		f, err := scorer.Score(inputs)
		if err != nil {
			return 0, fmt.Errorf("score task: %w", err)
		}
		factor = f
	}

	perf := clampf(base+factor*20, 0, 100)
	a.perfHistory = append(a.perfHistory, perf)
	if len(a.perfHistory) > trendWindow {
		a.perfHistory = a.perfHistory[len(a.perfHistory)-trendWindow:]
	}
	a.tasksDone++
	if a.tasksDone%trendWindow == 0 {
		a.incentives.AdaptIncentives(a.PerformanceTrend())
	}
	return perf, nil
}

// PerformanceTrend is the mean gradient over the retained task results.
// Fewer than two results yield a flat trend.
func (a *Agent) PerformanceTrend() float64 {
	return meanGradient(a.perfHistory)
}

// TasksDone returns the lifetime task count.
func (a *Agent) TasksDone() int { return a.tasksDone }

// SetEfficiency sets the agent-level task efficiency in [0,100].
func (a *Agent) SetEfficiency(v float64) { a.efficiency = clampf(v, 0, 100) }

// SetCreativity sets the agent-level task creativity in [0,100].
func (a *Agent) SetCreativity(v float64) { a.creativity = clampf(v, 0, 100) }

// Efficiency returns the agent-level task efficiency.
func (a *Agent) Efficiency() float64 { return a.efficiency }

// Creativity returns the agent-level task creativity.
func (a *Agent) Creativity() float64 { return a.creativity }

// meanGradient averages the central-difference gradient of xs: one-sided
// differences at the ends, (x[i+1]-x[i-1])/2 in the interior.
func meanGradient(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	sum := (xs[1] - xs[0]) + (xs[n-1] - xs[n-2])
	for i := 1; i < n-1; i++ {
		sum += (xs[i+1] - xs[i-1]) / 2
	}
	return sum / float64(n)
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// #endregion tasks

// #region accessors

// Emotions returns the agent's emotional state.
func (a *Agent) Emotions() *emotion.State { return a.emotions }

// Incentives returns the agent's incentive system.
func (a *Agent) Incentives() *incentive.System { return a.incentives }

// Health returns the agent's diagnostic engine.
func (a *Agent) Health() *health.Engine { return a.health }

// Warp returns the agent's phase system.
func (a *Agent) Warp() *warp.System { return a.warp }

// Memory returns the agent's memory bank.
func (a *Agent) Memory() *qmem.Bank { return a.memory }

// Journal returns the journal, or nil when none is configured.
func (a *Agent) Journal() *journal.Journal { return a.journal }

// #endregion accessors
