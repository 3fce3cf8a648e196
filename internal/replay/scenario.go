package replay

import (
	"time"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/incentive"
)

// #region scenario

// DefaultScenario is the built-in end-to-end script: a full ascent to warp
// drive with one resource throttle, one instability revert, and one
// memory-fault heal along the way.
func DefaultScenario() []Step {
	return []Step{
		{
			Label:        "warm-up",
			Efficiencies: map[int]float64{1: 0.9},
			Advance:      time.Second,
		},
		{
			Label:   "first-ascent",
			Advance: 3 * time.Second,
		},
		{
			Label:   "resource-pressure",
			CPU:     f64(95),
			Advance: time.Second,
		},
		{
			Label:        "pressure-clears",
			CPU:          f64(10),
			Efficiencies: map[int]float64{2: 0.9},
			Advance:      4 * time.Second,
		},
		{
			Label:     "instability",
			ErrorRate: f64(0.5),
			Advance:   11 * time.Second,
		},
		{
			Label:     "recovery",
			ErrorRate: f64(0),
			Advance:   4 * time.Second,
		},
		{
			Label: "memory-faults",
			Errors: []ErrorEvent{
				{Type: "memory_corruption", Severity: 15},
				{Type: "memory_corruption", Severity: 15},
				{Type: "memory_corruption", Severity: 15},
			},
			Advance: time.Second,
		},
		{
			Label: "self-heal",
			Rewards: []RewardEvent{
				{Category: incentive.Cooperation, Magnitude: 2},
			},
			Advance: time.Second,
			Heal:    true,
		},
		{
			Label:        "final-ascent",
			Efficiencies: map[int]float64{3: 0.9, 4: 0.9, 5: 0.9},
			Advance:      4 * time.Second,
		},
		{
			Label:   "compression",
			Advance: 4 * time.Second,
		},
		{
			Label:   "warp-drive",
			Advance: 4 * time.Second,
		},
	}
}

func f64(v float64) *float64 { return &v }

// #endregion scenario
