// Package replay drives one agent through a scripted scenario on a fake
// clock. Runs are fully deterministic: a seeded random source, a static
// resource sampler, and explicit time advances per step.
package replay

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/agent"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/config"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/emotion"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/health"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/incentive"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/monitor"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/warp"
)

// #region types

// ErrorEvent is one scripted degradation event.
type ErrorEvent struct {
	Type     string
	Severity float64
}

// RewardEvent is one scripted incentive event. Penalty selects the
// penalty tables instead of the reward tables.
type RewardEvent struct {
	Category  incentive.Category
	Magnitude float64
	Penalty   bool
}

// Step is one scripted scenario step. All adjustments are applied before
// the clock advance; the phase tick and optional heal run after it.
type Step struct {
	Label string

	// Environment adjustments. Nil pointers leave the value unchanged.
	Efficiencies map[int]float64 // phase number -> team efficiency
	ErrorRate    *float64
	CPU          *float64
	Mem          *float64

	Errors  []ErrorEvent
	Rewards []RewardEvent

	Advance time.Duration
	Heal    bool
}

// StepResult captures the observable outcome of one step.
type StepResult struct {
	Label    string
	Outcome  warp.TickOutcome
	Phase    warp.Phase
	Issues   int
	Heal     *health.HealResult
	Dominant emotion.Emotion
}

// Summary aggregates a whole run.
type Summary struct {
	Steps          int
	Advances       int
	Reverts        int
	Throttles      int
	HealsPerformed int
	FinalPhase     warp.Phase
	Completed      bool
	TotalReward    float64
}

// #endregion types

// #region harness

// Harness owns the replayed agent, its fake clock, and its static sampler.
type Harness struct {
	agent   *agent.Agent
	sampler *monitor.Static
	now     time.Time
}

// NewHarness builds a deterministic agent for scenario runs. The journal
// configuration is honored, so replays can be recorded like live runs.
func NewHarness(cfg config.Config) (*Harness, error) {
	h := &Harness{
		sampler: &monitor.Static{},
		now:     time.Unix(0, 0).UTC(),
	}
	a, err := agent.New(cfg, h.sampler, rand.New(rand.NewSource(1)))
	if err != nil {
		return nil, err
	}
	h.agent = a
	a.SetClock(func() time.Time { return h.now })
	a.Warp().Start()
	return h, nil
}

// Agent exposes the replayed agent for post-run inspection.
func (h *Harness) Agent() *agent.Agent { return h.agent }

// Close releases the agent's journal, if any.
func (h *Harness) Close() error { return h.agent.Close() }

// Run executes the steps in order and returns per-step results plus the
// aggregate summary. The first scripting error aborts the run.
func (h *Harness) Run(ctx context.Context, steps []Step) ([]StepResult, Summary, error) {
	results := make([]StepResult, 0, len(steps))
	summary := Summary{Steps: len(steps)}

	for i, step := range steps {
		if err := h.applyEnvironment(step); err != nil {
			return results, summary, fmt.Errorf("step %d (%s): %w", i, step.Label, err)
		}

		for _, ev := range step.Errors {
			h.agent.Health().LogError(ev.Type, ev.Severity, nil)
		}
		for _, ev := range step.Rewards {
			var err error
			if ev.Penalty {
				_, err = h.agent.Incentives().ApplyPenalty(ev.Category, ev.Magnitude, h.agent.Emotions())
			} else {
				_, err = h.agent.Incentives().ApplyReward(ev.Category, ev.Magnitude, h.agent.Emotions())
			}
			if err != nil {
				return results, summary, fmt.Errorf("step %d (%s): %w", i, step.Label, err)
			}
		}

		h.now = h.now.Add(step.Advance)

		outcome := h.agent.Warp().Tick()
		switch outcome {
		case warp.TickAdvanced, warp.TickCompleted:
			summary.Advances++
		case warp.TickReverted:
			summary.Reverts++
		case warp.TickThrottled:
			summary.Throttles++
		}

		result := StepResult{
			Label:   step.Label,
			Outcome: outcome,
			Phase:   h.agent.Warp().Phase(),
			Issues:  len(h.agent.Health().Diagnose()),
		}
		result.Dominant, _ = h.agent.Emotions().Dominant()

		if step.Heal {
			hr, err := h.agent.Health().Heal(ctx)
			if err != nil {
				return results, summary, fmt.Errorf("step %d (%s): heal: %w", i, step.Label, err)
			}
			result.Heal = &hr
			if len(hr.Actions) > 0 {
				summary.HealsPerformed++
			}
		}

		results = append(results, result)
	}

	summary.FinalPhase = h.agent.Warp().Phase()
	summary.Completed = h.agent.Warp().Completed()
	summary.TotalReward = h.agent.Incentives().TotalReward()
	return results, summary, nil
}

func (h *Harness) applyEnvironment(step Step) error {
	for phase, eff := range step.Efficiencies {
		if err := h.agent.Warp().SetEfficiency(warp.Phase(phase), eff); err != nil {
			return err
		}
	}
	if step.ErrorRate != nil {
		h.agent.Warp().SetErrorRate(*step.ErrorRate)
	}
	if step.CPU != nil || step.Mem != nil {
		cpu, mem := h.sampler.CPU, h.sampler.Mem
		if step.CPU != nil {
			cpu = *step.CPU
		}
		if step.Mem != nil {
			mem = *step.Mem
		}
		h.sampler.Set(cpu, mem)
	}
	return nil
}

// #endregion harness
