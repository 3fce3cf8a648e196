package incentive

import (
	"fmt"
	"log"
	"time"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/emotion"
)

// #region event-recorder

// EventRecorder receives applied incentive events for provenance. A nil
// recorder disables recording; recording failures never fail the apply.
type EventRecorder interface {
	RecordIncentiveEvent(category string, value float64, kind string) error
}

// #endregion event-recorder

// #region system

// System owns the incentive weights, scaling factors, and event history.
type System struct {
	config  Config
	history []Record
	journal EventRecorder
	now     func() time.Time
}

// NewSystem creates an incentive system with the given config.
func NewSystem(config Config) *System {
	return &System{
		config: config,
		now:    time.Now,
	}
}

// AttachJournal enables provenance recording of applied events.
func (s *System) AttachJournal(r EventRecorder) { s.journal = r }

// SetClock overrides the time source. Test and replay hook.
func (s *System) SetClock(now func() time.Time) { s.now = now }

// #endregion system

// #region apply-reward

// ApplyReward applies a reward: scaled = weight * magnitude * RewardScaling,
// appends to history, and runs the category's two-emotion update rule.
func (s *System) ApplyReward(cat Category, magnitude float64, es *emotion.State) (float64, error) {
	weight, ok := s.rewardWeight(cat)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a reward", ErrUnknownCategory, cat)
	}

	scaled := weight * magnitude * s.config.RewardScaling
	s.record(cat, scaled, "reward")

	for _, u := range rewardUpdates[cat] {
		if err := es.Update(u.channel, scaled*u.factor, emotion.DefaultDecay); err != nil {
			return scaled, err
		}
	}
	return scaled, nil
}

// #endregion apply-reward

// #region apply-penalty

// ApplyPenalty applies a penalty: scaled = weight * magnitude *
// PenaltyScaling (negative), appends to history, and raises the category's
// negative emotions by -scaled * factor.
func (s *System) ApplyPenalty(cat Category, magnitude float64, es *emotion.State) (float64, error) {
	weight, ok := s.penaltyWeight(cat)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a penalty", ErrUnknownCategory, cat)
	}

	scaled := weight * magnitude * s.config.PenaltyScaling
	s.record(cat, scaled, "penalty")

	for _, u := range penaltyUpdates[cat] {
		if err := es.Update(u.channel, -scaled*u.factor, emotion.DefaultDecay); err != nil {
			return scaled, err
		}
	}
	return scaled, nil
}

// #endregion apply-penalty

// #region history

// RecentRewards returns every record with now - At <= window. History is
// never mutated by the query.
func (s *System) RecentRewards(window time.Duration) []Record {
	cutoff := s.now().Add(-window)
	var recent []Record
	for _, r := range s.history {
		if !r.At.Before(cutoff) {
			recent = append(recent, r)
		}
	}
	return recent
}

// TotalReward is the signed sum over the full history.
func (s *System) TotalReward() float64 {
	var total float64
	for _, r := range s.history {
		total += r.Value
	}
	return total
}

// HistoryLen reports the number of recorded events.
func (s *System) HistoryLen() int { return len(s.history) }

// #endregion history

// #region adapt

// AdaptIncentives nudges the scaling factors against the performance trend:
// improving performance cools rewards and warms penalties, declining
// performance does the inverse. Both factors stay in [0.5, 1.5].
func (s *System) AdaptIncentives(trend float64) {
	switch {
	case trend > 0.2:
		s.config.RewardScaling = max(0.5, s.config.RewardScaling*0.95)
		s.config.PenaltyScaling = min(1.5, s.config.PenaltyScaling*1.05)
	case trend < -0.2:
		s.config.RewardScaling = min(1.5, s.config.RewardScaling*1.05)
		s.config.PenaltyScaling = max(0.5, s.config.PenaltyScaling*0.95)
	}
}

// Scaling returns the current (reward, penalty) scaling factors.
func (s *System) Scaling() (float64, float64) {
	return s.config.RewardScaling, s.config.PenaltyScaling
}

// #endregion adapt

// #region helpers

func (s *System) rewardWeight(cat Category) (float64, bool) {
	switch cat {
	case Curiosity:
		return s.config.CuriosityReward, true
	case Efficiency:
		return s.config.EfficiencyReward, true
	case Cooperation:
		return s.config.CooperationReward, true
	case Innovation:
		return s.config.InnovationReward, true
	}
	return 0, false
}

func (s *System) penaltyWeight(cat Category) (float64, bool) {
	switch cat {
	case Error:
		return s.config.ErrorPenalty, true
	case ResourceWaste:
		return s.config.ResourceWastePenalty, true
	case Conflict:
		return s.config.ConflictPenalty, true
	case Stagnation:
		return s.config.StagnationPenalty, true
	}
	return 0, false
}

func (s *System) record(cat Category, value float64, kind string) {
	s.history = append(s.history, Record{Category: cat, Value: value, At: s.now()})
	if s.journal != nil {
		if err := s.journal.RecordIncentiveEvent(string(cat), value, kind); err != nil {
			log.Printf("[INCENTIVE] journal record failed: %v", err)
		}
	}
}

// #endregion helpers
