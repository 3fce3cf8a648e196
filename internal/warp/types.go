package warp

import "time"

// #region phase

// Phase is one stage in the ordered warp progression, 1..5.
type Phase int

const (
	PhaseInit Phase = iota + 1
	PhaseCohesion
	PhaseAdversarialCortex
	PhaseHyperCompression
	PhaseWarpDrive
)

var phaseNames = map[Phase]string{
	PhaseInit:              "initialization",
	PhaseCohesion:          "capturing_cohesion",
	PhaseAdversarialCortex: "adversarial_cortex",
	PhaseHyperCompression:  "hyper_compression",
	PhaseWarpDrive:         "warp_drive",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// #endregion phase

// #region team

// TeamFunc transforms an input independently of every other team. Pure:
// no team-to-team interaction.
type TeamFunc func(input []float64) []float64

// Team is one named processing unit tied to a phase. It activates when its
// phase starts and stays active unless that phase is reverted.
type Team struct {
	Name       string
	Active     bool
	Efficiency float64

	fn TeamFunc
}

func (t *Team) process(input []float64) []float64 {
	if t.fn == nil {
		out := make([]float64, len(input))
		copy(out, input)
		return out
	}
	return t.fn(input)
}

// teamNames in phase order; the warp-drive team is the final one.
var teamNames = []string{
	"Initialization",
	"Capturing Cohesion",
	"Adversarial Cortex",
	"Secondary Hyper-Compression",
	"Warp Drive",
}

// #endregion team

// #region tick-outcome

// TickOutcome reports what one evaluation tick did.
type TickOutcome string

const (
	TickThrottled TickOutcome = "throttled"
	TickReverted  TickOutcome = "reverted"
	TickAdvanced  TickOutcome = "advanced"
	TickCompleted TickOutcome = "completed"
	TickIdle      TickOutcome = "idle"
)

// #endregion tick-outcome

// #region config

// Config tunes the orchestrator.
type Config struct {
	CPUThreshold        float64       `yaml:"cpu_threshold"`
	MemThreshold        float64       `yaml:"mem_threshold"`
	EfficiencyThreshold float64       `yaml:"efficiency_threshold"`
	SustainDuration     time.Duration `yaml:"sustain_duration"`
	StabilityInterval   time.Duration `yaml:"stability_interval"`
	MaxErrorRate        float64       `yaml:"max_error_rate"`
	ComplexityStep      int           `yaml:"complexity_step"`
	MaxComplexity       int           `yaml:"max_complexity"`
	ThrottleBackoff     time.Duration `yaml:"throttle_backoff"`
	IdleTick            time.Duration `yaml:"idle_tick"`
	DiversityWindow     int           `yaml:"diversity_window"`
	DiversityThreshold  float64       `yaml:"diversity_threshold"`
}

// DefaultConfig returns the standard orchestrator thresholds.
func DefaultConfig() Config {
	return Config{
		CPUThreshold:        90,
		MemThreshold:        90,
		EfficiencyThreshold: 0.8,
		SustainDuration:     3 * time.Second,
		StabilityInterval:   10 * time.Second,
		MaxErrorRate:        0.1,
		ComplexityStep:      10,
		MaxComplexity:       100,
		ThrottleBackoff:     time.Second,
		IdleTick:            100 * time.Millisecond,
		DiversityWindow:     100,
		DiversityThreshold:  0.6,
	}
}

// #endregion config

// #region snapshot

// TeamStatus is one team's state in a snapshot.
type TeamStatus struct {
	Name       string
	Active     bool
	Efficiency float64
}

// Snapshot is a point-in-time view of the orchestrator for status
// reporting.
type Snapshot struct {
	RunID      string
	Phase      Phase
	LightSpeed bool
	Completed  bool
	Complexity int
	ErrorRate  float64
	Teams      []TeamStatus
}

// #endregion snapshot

// #region transition-recorder

// TransitionRecorder receives phase transitions for provenance. A nil
// recorder disables recording; failures never block the loop.
type TransitionRecorder interface {
	RecordTransition(runID string, from, to int, reason string, complexity int) error
}

// #endregion transition-recorder
