package health

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/emotion"
)

// #region strategy-table

// defaultDecisionThreshold is what decision_paralysis resets the host's
// threshold to.
const defaultDecisionThreshold = 0.6

// explorationCap bounds the exploration raise in severe paralysis.
const explorationCap = 0.3

// criticalSlotValue marks a normalized memory slot worth snapshotting
// before a deep scrub.
const criticalSlotValue = 0.7

type strategyFunc func(ctx context.Context, severity float64) (string, error)

type strategyEntry struct {
	key string
	fn  strategyFunc
}

// strategyTable returns the fixed, ordered recovery strategy table.
// Selection walks it in order and takes the first key that is a substring
// of the issue subject.
func (e *Engine) strategyTable() []strategyEntry {
	return []strategyEntry{
		{"memory_corruption", e.healMemoryCorruption},
		{"emotional_instability", e.healEmotionalInstability},
		{"resource_depletion", e.healResourceDepletion},
		{"decision_paralysis", e.healDecisionParalysis},
		{"communication_failure", e.healCommunicationFailure},
	}
}

// #endregion strategy-table

// #region memory-corruption

// healMemoryCorruption always reoptimizes the memory layout. Above
// severity 7 it performs a lossy scrub-and-restore: snapshot slots over the
// critical value, probabilistically zero the rest, restore the snapshot.
func (e *Engine) healMemoryCorruption(ctx context.Context, severity float64) (string, error) {
	if e.memory == nil {
		return "Memory store unavailable, no action taken", nil
	}

	e.memory.OptimizeLayout()

	if severity > 7.0 {
		values := e.memory.Values()
		type backup struct {
			index int
			value float64
		}
		var backups []backup
		critical := make(map[int]bool)
		for i, v := range values {
			if v > criticalSlotValue {
				stored, err := e.memory.Retrieve(i)
				if err != nil {
					return "", fmt.Errorf("backup slot %d: %w", i, err)
				}
				backups = append(backups, backup{index: i, value: stored})
				critical[i] = true
			}
		}

		for i := 0; i < e.memory.Size(); i++ {
			if !critical[i] && e.rng.Float64() < severity/10 {
				if err := e.memory.Store(i, 0.0); err != nil {
					return "", fmt.Errorf("scrub slot %d: %w", i, err)
				}
			}
		}

		for _, b := range backups {
			if err := e.memory.Store(b.index, b.value); err != nil {
				return "", fmt.Errorf("restore slot %d: %w", b.index, err)
			}
		}

		e.raiseGauge(MemoryIntegrity, minf(30, severity*3))
		return "Deep memory healing performed", nil
	}

	e.raiseGauge(MemoryIntegrity, minf(15, severity*2))
	return "Memory layout optimization performed", nil
}

// #endregion memory-corruption

// #region emotional-instability

// healEmotionalInstability nudges the three channels most deviant from the
// median back toward it.
func (e *Engine) healEmotionalInstability(ctx context.Context, severity float64) (string, error) {
	if e.emotions == nil {
		return "Emotional state unavailable, no action taken", nil
	}

	intensities := e.emotions.Intensities()
	values := make([]float64, 0, len(emotion.Emotions))
	for _, ch := range emotion.Emotions {
		values = append(values, intensities[ch])
	}
	median := medianOf(values)

	// Most deviant channels first; ties keep enumeration order.
	ordered := make([]emotion.Emotion, len(emotion.Emotions))
	copy(ordered, emotion.Emotions)
	sort.SliceStable(ordered, func(i, j int) bool {
		di := absf(intensities[ordered[i]] - median)
		dj := absf(intensities[ordered[j]] - median)
		return di > dj
	})

	extreme := ordered[:3]
	for _, ch := range extreme {
		current, err := e.emotions.Get(ch)
		if err != nil {
			return "", err
		}
		adjustment := (median - current) * minf(0.5, severity/10)
		if err := e.emotions.Update(ch, adjustment, emotion.DefaultDecay); err != nil {
			return "", err
		}
	}

	e.raiseGauge(EmotionalBalance, minf(25, severity*2.5))
	return fmt.Sprintf("Emotional rebalancing performed on %v", extreme), nil
}

// #endregion emotional-instability

// #region resource-depletion

// healResourceDepletion suspends briefly to model cleanup cost. No state
// mutation beyond the gauge.
func (e *Engine) healResourceDepletion(ctx context.Context, severity float64) (string, error) {
	if severity > 5.0 {
		if err := sleepCtx(ctx, 10*time.Millisecond); err != nil {
			return "", err
		}
		e.raiseGauge(ResourceEfficiency, minf(20, severity*2))
		return "Major resource reallocation performed", nil
	}

	if err := sleepCtx(ctx, 5*time.Millisecond); err != nil {
		return "", err
	}
	e.raiseGauge(ResourceEfficiency, minf(10, severity))
	return "Resource usage optimization performed", nil
}

// #endregion resource-depletion

// #region decision-paralysis

// healDecisionParalysis resets the host's decision threshold; in severe
// cases it also raises the exploration rate, capped.
func (e *Engine) healDecisionParalysis(ctx context.Context, severity float64) (string, error) {
	if e.params == nil {
		return "Decision parameters unavailable, no action taken", nil
	}

	e.params.SetDecisionThreshold(defaultDecisionThreshold)

	if severity > 6.0 {
		raised := minf(explorationCap, e.params.ExplorationRate()+severity/20)
		e.params.SetExplorationRate(raised)
		e.raiseGauge(DecisionQuality, minf(30, severity*3))
		return "Decision system reset with increased exploration", nil
	}

	e.raiseGauge(DecisionQuality, minf(15, severity*1.5))
	return "Decision thresholds reset", nil
}

// #endregion decision-paralysis

// #region communication-failure

// healCommunicationFailure suspends briefly to model protocol
// reinitialization.
func (e *Engine) healCommunicationFailure(ctx context.Context, severity float64) (string, error) {
	if err := sleepCtx(ctx, 20*time.Millisecond); err != nil {
		return "", err
	}
	e.raiseGauge(CommunicationReliability, minf(25, severity*2.5))
	return "Communication protocols reset and reinitialized", nil
}

// #endregion communication-failure

// #region strategy-helpers

// medianOf returns the median of the values (mean of the middle pair for
// even counts). The input slice is not modified.
func medianOf(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// sleepCtx waits for d or the context, whichever ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// #endregion strategy-helpers
