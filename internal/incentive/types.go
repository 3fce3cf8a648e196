package incentive

import (
	"errors"
	"time"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/emotion"
)

// #region category

// Category identifies one of the eight fixed incentive classes.
type Category string

const (
	// Reward categories.
	Curiosity   Category = "curiosity"
	Efficiency  Category = "efficiency"
	Cooperation Category = "cooperation"
	Innovation  Category = "innovation"

	// Penalty categories.
	Error         Category = "error"
	ResourceWaste Category = "resource_waste"
	Conflict      Category = "conflict"
	Stagnation    Category = "stagnation"
)

// #endregion category

// #region errors

// ErrUnknownCategory is returned for a category outside the fixed set.
// Rejected before any mutation.
var ErrUnknownCategory = errors.New("unknown incentive category")

// #endregion errors

// #region config

// Config holds the base weights and scaling factors. Reward weights are
// positive, penalty weights negative; scaling factors stay in [0.5, 1.5].
type Config struct {
	CuriosityReward   float64 `yaml:"curiosity_reward"`
	EfficiencyReward  float64 `yaml:"efficiency_reward"`
	CooperationReward float64 `yaml:"cooperation_reward"`
	InnovationReward  float64 `yaml:"innovation_reward"`

	ErrorPenalty         float64 `yaml:"error_penalty"`
	ResourceWastePenalty float64 `yaml:"resource_waste_penalty"`
	ConflictPenalty      float64 `yaml:"conflict_penalty"`
	StagnationPenalty    float64 `yaml:"stagnation_penalty"`

	RewardScaling  float64 `yaml:"reward_scaling"`
	PenaltyScaling float64 `yaml:"penalty_scaling"`
}

// DefaultConfig returns the standard incentive weights.
func DefaultConfig() Config {
	return Config{
		CuriosityReward:   5.0,
		EfficiencyReward:  3.0,
		CooperationReward: 4.0,
		InnovationReward:  6.0,

		ErrorPenalty:         -3.0,
		ResourceWastePenalty: -4.0,
		ConflictPenalty:      -5.0,
		StagnationPenalty:    -2.0,

		RewardScaling:  1.0,
		PenaltyScaling: 1.0,
	}
}

// #endregion config

// #region record

// Record is one signed reward/penalty event in the unbounded history.
type Record struct {
	Category Category
	Value    float64
	At       time.Time
}

// #endregion record

// #region emotion-mapping

// emotionUpdate applies one weighted nudge to a channel.
type emotionUpdate struct {
	channel emotion.Emotion
	factor  float64
}

// rewardUpdates maps each reward category to its two-emotion update rule.
// Deltas are scaledValue * factor.
var rewardUpdates = map[Category][]emotionUpdate{
	Curiosity:   {{emotion.Surprise, 0.5}, {emotion.Joy, 0.3}},
	Efficiency:  {{emotion.Joy, 0.4}, {emotion.Trust, 0.2}},
	Cooperation: {{emotion.Trust, 0.5}, {emotion.Joy, 0.2}},
	Innovation:  {{emotion.Surprise, 0.3}, {emotion.Joy, 0.4}},
}

// penaltyUpdates maps each penalty category to its two-emotion update rule.
// Deltas are -scaledValue * factor; the scaled value is negative, so the
// negative emotions rise.
var penaltyUpdates = map[Category][]emotionUpdate{
	Error:         {{emotion.Sadness, 0.4}, {emotion.Surprise, 0.2}},
	ResourceWaste: {{emotion.Disgust, 0.3}, {emotion.Anger, 0.3}},
	Conflict:      {{emotion.Anger, 0.5}, {emotion.Fear, 0.2}},
	Stagnation:    {{emotion.Sadness, 0.4}, {emotion.Disgust, 0.2}},
}

// #endregion emotion-mapping
