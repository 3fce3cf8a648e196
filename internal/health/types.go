package health

import (
	"time"
)

// #region metric

// Metric names one of the five subsystem health gauges.
type Metric string

const (
	MemoryIntegrity          Metric = "memory_integrity"
	EmotionalBalance         Metric = "emotional_balance"
	ResourceEfficiency       Metric = "resource_efficiency"
	DecisionQuality          Metric = "decision_quality"
	CommunicationReliability Metric = "communication_reliability"
)

// MetricNames is the fixed diagnosis order for the gauges.
var MetricNames = []Metric{
	MemoryIntegrity,
	EmotionalBalance,
	ResourceEfficiency,
	DecisionQuality,
	CommunicationReliability,
}

// errorCategories maps each recognized error type to the gauge it degrades.
var errorCategories = map[string]Metric{
	"memory_corruption":     MemoryIntegrity,
	"memory_leak":           MemoryIntegrity,
	"emotional_instability": EmotionalBalance,
	"emotional_deadlock":    EmotionalBalance,
	"resource_depletion":    ResourceEfficiency,
	"resource_contention":   ResourceEfficiency,
	"decision_paralysis":    DecisionQuality,
	"decision_oscillation":  DecisionQuality,
	"communication_failure": CommunicationReliability,
	"protocol_violation":    CommunicationReliability,
}

// #endregion metric

// #region error-record

// ErrorRecord is one logged degradation event in the bounded error log.
type ErrorRecord struct {
	ID       string
	Type     string
	Severity float64
	At       time.Time
	Details  map[string]any
	Healed   bool
}

// #endregion error-record

// #region issue

// IssueKind distinguishes the two diagnosed issue classes.
type IssueKind string

const (
	IssueCritical  IssueKind = "critical"
	IssueRecurring IssueKind = "recurring"
)

// Issue is a diagnosed, prioritized symptom. Derived by Diagnose, never
// persisted.
type Issue struct {
	Kind        IssueKind
	Label       string // e.g. "critical_memory_integrity", "recurring_memory_corruption"
	Subject     string // label with the kind prefix stripped
	Severity    float64
	Count       int // occurrence count, recurring issues only
	Description string
}

// #endregion issue

// #region heal-result

// Action records one executed recovery strategy.
type Action struct {
	Issue    string
	Strategy string
	Outcome  string
}

// Heal status values.
const (
	StatusHealthy    = "healthy"
	StatusHealed     = "healing_performed"
	StatusNoStrategy = "no_suitable_healing_strategy"
)

// HealResult is the outcome of one Heal pass.
type HealResult struct {
	Status  string
	Actions []Action
}

// #endregion heal-result

// #region config

// Config tunes the diagnostic engine.
type Config struct {
	ErrorLogCapacity   int     `yaml:"error_log_capacity"`
	CriticalThreshold  float64 `yaml:"critical_threshold"`
	RecurringThreshold int     `yaml:"recurring_threshold"`
	MaxIssuesPerHeal   int     `yaml:"max_issues_per_heal"`
}

// DefaultConfig returns the standard diagnostic thresholds.
func DefaultConfig() Config {
	return Config{
		ErrorLogCapacity:   100,
		CriticalThreshold:  50,
		RecurringThreshold: 3,
		MaxIssuesPerHeal:   3,
	}
}

// #endregion config

// #region collaborators

// MemoryStore is the probabilistic memory collaborator surface used by the
// memory_corruption strategy.
type MemoryStore interface {
	Size() int
	Values() []float64
	Store(index int, value float64) error
	Retrieve(index int) (float64, error)
	OptimizeLayout()
}

// DecisionParams exposes the host agent's mutable decision parameters,
// written by the decision_paralysis strategy.
type DecisionParams interface {
	SetDecisionThreshold(v float64)
	ExplorationRate() float64
	SetExplorationRate(v float64)
}

// ActionRecorder receives executed heal actions for provenance. A nil
// recorder disables recording.
type ActionRecorder interface {
	RecordHealAction(issue, strategy, outcome string, severity float64) error
}

// #endregion collaborators
