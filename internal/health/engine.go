package health

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/emotion"
)

// #region engine

// Engine owns the bounded error log and the five health gauges, and
// dispatches recovery strategies over diagnosed issues.
type Engine struct {
	config Config

	gauges   map[Metric]float64
	errorLog []ErrorRecord // ring, oldest first

	memory   MemoryStore
	emotions *emotion.State
	params   DecisionParams
	journal  ActionRecorder

	strategies []strategyEntry
	rng        *rand.Rand
	now        func() time.Time
}

// Deps are the collaborators a new engine heals through. Any of them may be
// nil; the corresponding strategies degrade to benign no-op outcomes.
type Deps struct {
	Memory   MemoryStore
	Emotions *emotion.State
	Params   DecisionParams
	Journal  ActionRecorder
	Rand     *rand.Rand
}

// NewEngine creates a diagnostic engine with all gauges at 100.
func NewEngine(config Config, deps Deps) *Engine {
	if config.ErrorLogCapacity <= 0 {
		config = DefaultConfig()
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		config:   config,
		gauges:   make(map[Metric]float64, len(MetricNames)),
		memory:   deps.Memory,
		emotions: deps.Emotions,
		params:   deps.Params,
		journal:  deps.Journal,
		rng:      rng,
		now:      time.Now,
	}
	for _, m := range MetricNames {
		e.gauges[m] = 100.0
	}
	e.strategies = e.strategyTable()
	return e
}

// SetClock overrides the time source. Test and replay hook.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// #endregion engine

// #region log-error

// LogError appends a record to the bounded error log and degrades the gauge
// mapped to the error type (floored at 0). Unrecognized types are retained
// in the log but move no gauge.
func (e *Engine) LogError(errorType string, severity float64, details map[string]any) {
	rec := ErrorRecord{
		ID:       uuid.New().String(),
		Type:     errorType,
		Severity: severity,
		At:       e.now(),
		Details:  details,
	}
	e.errorLog = append(e.errorLog, rec)
	if len(e.errorLog) > e.config.ErrorLogCapacity {
		e.errorLog = e.errorLog[len(e.errorLog)-e.config.ErrorLogCapacity:]
	}

	metric, ok := errorCategories[errorType]
	if !ok {
		log.Printf("[HEAL] logged uncategorized error type %q (severity %.1f)", errorType, severity)
		return
	}
	e.gauges[metric] = maxf(0, e.gauges[metric]-severity)
}

// #endregion log-error

// #region queries

// Gauge returns the current value of one health metric.
func (e *Engine) Gauge(m Metric) float64 { return e.gauges[m] }

// Metrics returns a snapshot of all five gauges.
func (e *Engine) Metrics() map[Metric]float64 {
	out := make(map[Metric]float64, len(e.gauges))
	for m, v := range e.gauges {
		out[m] = v
	}
	return out
}

// UnhealedCount reports log entries not yet marked healed.
func (e *Engine) UnhealedCount() int {
	n := 0
	for _, rec := range e.errorLog {
		if !rec.Healed {
			n++
		}
	}
	return n
}

// #endregion queries

// #region diagnose

// Diagnose derives the current issue list: gauges below the critical
// threshold and error types with enough unhealed entries. Sorted by
// severity descending; ties keep discovery order (gauges in fixed order,
// then error types in first-seen order).
func (e *Engine) Diagnose() []Issue {
	var issues []Issue

	for _, m := range MetricNames {
		v := e.gauges[m]
		if v < e.config.CriticalThreshold {
			issues = append(issues, Issue{
				Kind:        IssueCritical,
				Label:       "critical_" + string(m),
				Subject:     string(m),
				Severity:    (e.config.CriticalThreshold - v) / e.config.CriticalThreshold * 10,
				Description: "critical " + strings.ReplaceAll(string(m), "_", " ") + " issue detected",
			})
		}
	}

	type accum struct {
		count         int
		totalSeverity float64
	}
	counts := make(map[string]*accum)
	var order []string
	for _, rec := range e.errorLog {
		if rec.Healed {
			continue
		}
		a, ok := counts[rec.Type]
		if !ok {
			a = &accum{}
			counts[rec.Type] = a
			order = append(order, rec.Type)
		}
		a.count++
		a.totalSeverity += rec.Severity
	}
	for _, errorType := range order {
		a := counts[errorType]
		if a.count >= e.config.RecurringThreshold {
			issues = append(issues, Issue{
				Kind:        IssueRecurring,
				Label:       "recurring_" + errorType,
				Subject:     errorType,
				Severity:    a.totalSeverity / float64(a.count),
				Count:       a.count,
				Description: "recurring " + strings.ReplaceAll(errorType, "_", " ") + " detected",
			})
		}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity > issues[j].Severity
	})
	return issues
}

// #endregion diagnose

// #region heal

// Heal diagnoses, then runs the first matching strategy for each of the top
// issues, strictly sequentially. Strategy selection is substring-based over
// the issue subject, so critical_<metric> issues never match a strategy key
// and only recurring error types are directly healable. A strategy error
// produces no action and leaves the log unmarked for it; other actions and
// the marking pass proceed, and the errors are returned joined.
func (e *Engine) Heal(ctx context.Context) (HealResult, error) {
	issues := e.Diagnose()
	if len(issues) == 0 {
		return HealResult{Status: StatusHealthy}, nil
	}

	top := issues
	if len(top) > e.config.MaxIssuesPerHeal {
		top = top[:e.config.MaxIssuesPerHeal]
	}

	var actions []Action
	var errs []error
	for _, issue := range top {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		for _, entry := range e.strategies {
			if !strings.Contains(issue.Subject, entry.key) {
				continue
			}
			outcome, err := entry.fn(ctx, issue.Severity)
			if err != nil {
				log.Printf("[HEAL] strategy %s failed on %s: %v", entry.key, issue.Label, err)
				errs = append(errs, err)
				break
			}
			action := Action{Issue: issue.Label, Strategy: entry.key, Outcome: outcome}
			actions = append(actions, action)
			log.Printf("[HEAL] %s → %s: %s", issue.Label, entry.key, outcome)
			if e.journal != nil {
				if jerr := e.journal.RecordHealAction(issue.Label, entry.key, outcome, issue.Severity); jerr != nil {
					log.Printf("[HEAL] journal record failed: %v", jerr)
				}
			}
			break
		}
	}

	// Approximate string-based healed marking: an entry is considered
	// addressed when its type is a substring of any acted-on issue label.
	for i := range e.errorLog {
		if e.errorLog[i].Healed {
			continue
		}
		for _, action := range actions {
			if strings.Contains(action.Issue, e.errorLog[i].Type) {
				e.errorLog[i].Healed = true
				break
			}
		}
	}

	status := StatusNoStrategy
	if len(actions) > 0 {
		status = StatusHealed
	}
	return HealResult{Status: status, Actions: actions}, errors.Join(errs...)
}

// #endregion heal

// #region helpers

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// raiseGauge increases a gauge by amount, capped at 100.
func (e *Engine) raiseGauge(m Metric, amount float64) {
	e.gauges[m] = minf(100, e.gauges[m]+amount)
}

// #endregion helpers
