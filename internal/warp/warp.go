package warp

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/monitor"
)

// #region system

// System is the staged phase orchestrator. All state is owned by a single
// agent instance; Run drives it as a cancellable, tick-driven cooperative
// task.
type System struct {
	config  Config
	sampler monitor.Sampler
	journal TransitionRecorder

	runID      string
	phase      Phase
	phaseStart time.Time
	complexity int
	errorRate  float64
	lightSpeed bool
	started    bool
	completed  bool

	teams     [5]*Team
	diversity *DiversityTracker

	now func() time.Time
}

// New creates an orchestrator. sampler must not be nil.
func New(config Config, sampler monitor.Sampler) *System {
	s := &System{
		config:    config,
		sampler:   sampler,
		diversity: NewDiversityTracker(config.DiversityWindow, config.DiversityThreshold),
		now:       time.Now,
	}
	for i := range s.teams {
		s.teams[i] = &Team{Name: teamNames[i], Efficiency: 0.5}
	}
	return s
}

// AttachJournal enables provenance recording of phase transitions.
func (s *System) AttachJournal(r TransitionRecorder) { s.journal = r }

// SetClock overrides the time source. Test and replay hook.
func (s *System) SetClock(now func() time.Time) { s.now = now }

// SetTeamFunc installs the processing function for one phase's team.
func (s *System) SetTeamFunc(p Phase, fn TeamFunc) error {
	if p < PhaseInit || p > PhaseWarpDrive {
		return fmt.Errorf("no team for phase %d", p)
	}
	s.teams[int(p)-1].fn = fn
	return nil
}

// SetEfficiency reports a team's current efficiency to the orchestrator.
func (s *System) SetEfficiency(p Phase, efficiency float64) error {
	if p < PhaseInit || p > PhaseWarpDrive {
		return fmt.Errorf("no team for phase %d", p)
	}
	s.teams[int(p)-1].Efficiency = efficiency
	return nil
}

// SetErrorRate reports the internal error rate used by the stability check.
func (s *System) SetErrorRate(rate float64) { s.errorRate = rate }

// #endregion system

// #region start

// Start resets the sequence to the first phase and activates its team.
func (s *System) Start() {
	s.runID = uuid.New().String()
	s.phase = PhaseInit
	s.phaseStart = s.now()
	s.started = true
	s.completed = false
	s.lightSpeed = false
	for _, t := range s.teams {
		t.Active = false
	}
	s.teams[0].Active = true
	log.Printf("[WARP] run %s: starting at phase %s", s.runID, s.phase)
}

// Restart allows re-entry after a completed run: back to the first phase
// with only its team active.
func (s *System) Restart() {
	s.Start()
}

// #endregion start

// #region run

// Run drives the orchestrator until the warp drive halts the sequence or
// the context is cancelled. Cancellation is observed at the top of every
// tick and inside the throttle backoff.
func (s *System) Run(ctx context.Context) error {
	if !s.started || s.completed {
		s.Start()
	}

	ticker := time.NewTicker(s.config.IdleTick)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch s.Tick() {
		case TickCompleted:
			return nil
		case TickThrottled:
			// Backpressure, not failure: back off and re-tick.
			t := time.NewTimer(s.config.ThrottleBackoff)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		default:
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
	}
}

// #endregion run

// #region tick

// Tick runs one evaluation cycle: admission control, stability check,
// advancement gate, terminal action. Run-to-completion; callers drive the
// cadence.
func (s *System) Tick() TickOutcome {
	if !s.started {
		s.Start()
	}
	if s.completed {
		return TickCompleted
	}

	// 1. Admission control. A sampler error degrades to not-overloaded.
	sample, err := s.sampler.Sample()
	if err != nil {
		log.Printf("[WARP] resource sample failed: %v", err)
	} else if sample.CPUPercent > s.config.CPUThreshold || sample.MemPercent > s.config.MemThreshold {
		log.Printf("[WARP] resource overload (cpu %.1f%%, mem %.1f%%), throttling", sample.CPUPercent, sample.MemPercent)
		return TickThrottled
	}

	now := s.now()

	// 2. Stability check, once the interval has elapsed in this phase.
	if now.Sub(s.phaseStart) > s.config.StabilityInterval && s.errorRate > s.config.MaxErrorRate {
		s.revert()
		return TickReverted
	}

	// 3. Terminal action.
	if s.phase == PhaseWarpDrive {
		s.initiateWarpDrive()
		return TickCompleted
	}

	// 4. Advancement gate: sustained efficiency with hysteresis — any dip
	// below threshold restarts the sustain window.
	team := s.teams[int(s.phase)-1]
	if team.Efficiency >= s.config.EfficiencyThreshold {
		if now.Sub(s.phaseStart) >= s.config.SustainDuration {
			s.advance()
			return TickAdvanced
		}
	} else {
		s.phaseStart = now
	}

	return TickIdle
}

// #endregion tick

// #region transitions

func (s *System) advance() {
	from := s.phase
	s.phase++
	s.teams[int(s.phase)-1].Active = true
	s.phaseStart = s.now()
	s.complexity += s.config.ComplexityStep
	log.Printf("[WARP] advancing to phase %s (complexity %d)", s.phase, s.complexity)
	if s.complexity > s.config.MaxComplexity {
		log.Printf("[WARP] high complexity detected (%d > %d), consider simplifying", s.complexity, s.config.MaxComplexity)
	}
	s.recordTransition(from, s.phase, "advance")
}

func (s *System) revert() {
	from := s.phase
	if s.phase > PhaseInit {
		left := s.phase
		s.phase--
		s.teams[int(left)-1].Active = false
		s.complexity -= s.config.ComplexityStep
	}
	s.phaseStart = s.now()
	log.Printf("[WARP] instability (error rate %.3f), reverting to phase %s", s.errorRate, s.phase)
	s.recordTransition(from, s.phase, "revert")
}

func (s *System) initiateWarpDrive() {
	s.lightSpeed = true
	s.completed = true
	for _, t := range s.teams {
		t.Active = true
	}
	log.Printf("[WARP] warp drive initiated: all teams active at light speed")
	s.recordTransition(PhaseWarpDrive, PhaseWarpDrive, "complete")
}

func (s *System) recordTransition(from, to Phase, reason string) {
	if s.journal == nil {
		return
	}
	if err := s.journal.RecordTransition(s.runID, int(from), int(to), reason, s.complexity); err != nil {
		log.Printf("[WARP] journal record failed: %v", err)
	}
}

// #endregion transitions

// #region queries

// Phase returns the current phase.
func (s *System) Phase() Phase { return s.phase }

// LightSpeed reports whether the warp drive has engaged this run.
func (s *System) LightSpeed() bool { return s.lightSpeed }

// Completed reports whether this run has halted.
func (s *System) Completed() bool { return s.completed }

// Complexity returns the accumulated complexity score.
func (s *System) Complexity() int { return s.complexity }

// ActiveTeams returns the currently active teams in phase order.
func (s *System) ActiveTeams() []*Team {
	var active []*Team
	for _, t := range s.teams {
		if t.Active {
			active = append(active, t)
		}
	}
	return active
}

// Snapshot returns a point-in-time view for status reporting.
func (s *System) Snapshot() Snapshot {
	snap := Snapshot{
		RunID:      s.runID,
		Phase:      s.phase,
		LightSpeed: s.lightSpeed,
		Completed:  s.completed,
		Complexity: s.complexity,
		ErrorRate:  s.errorRate,
	}
	for _, t := range s.teams {
		snap.Teams = append(snap.Teams, TeamStatus{
			Name:       t.Name,
			Active:     t.Active,
			Efficiency: t.Efficiency,
		})
	}
	return snap
}

// #endregion queries
