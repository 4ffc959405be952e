// Package simulator drives the fake deploy lifecycle used by the create flow.
//
// A deploy moves through a fixed linear sequence of stages:
//
//	idle → queued → building → deploying → live
//
// The Machine only records which stage the current run has reached. Timing
// lives in a Plan and is applied by the caller (the UI schedules one tick per
// stage). Each Start returns a Run token; events carrying any other token are
// ignored, so timers from a cancelled or superseded run can never move the
// machine.
package simulator

import (
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Stage is a lifecycle step.
type Stage int

const (
	Idle Stage = iota
	Queued
	Building
	Deploying
	Live
)

// Steps lists the stages a run passes through, in order.
var Steps = []Stage{Queued, Building, Deploying, Live}

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case Queued:
		return "queued"
	case Building:
		return "building"
	case Deploying:
		return "deploying"
	case Live:
		return "live"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Label is the user-facing name of the stage.
func (s Stage) Label() string {
	switch s {
	case Queued:
		return "Queued"
	case Building:
		return "Building"
	case Deploying:
		return "Deploying"
	case Live:
		return "Live"
	default:
		return "Idle"
	}
}

// Plan holds stage offsets measured from the deploy invocation.
type Plan struct {
	Queued    time.Duration
	Building  time.Duration
	Deploying time.Duration
	Live      time.Duration
	// Navigate is when the finished app's detail view opens.
	Navigate time.Duration
}

// DefaultPlan returns the stock stage timings.
func DefaultPlan() Plan {
	return Plan{
		Queued:    0,
		Building:  1000 * time.Millisecond,
		Deploying: 3000 * time.Millisecond,
		Live:      5000 * time.Millisecond,
		Navigate:  6500 * time.Millisecond,
	}
}

// ErrInvalidPlan is returned by Validate.
var ErrInvalidPlan = errors.New("invalid deploy plan")

// Validate checks that offsets are non-negative and strictly increasing, with
// navigation strictly after live.
func (p Plan) Validate() error {
	if p.Queued < 0 {
		return fmt.Errorf("%w: queued offset %s is negative", ErrInvalidPlan, p.Queued)
	}
	prev, prevStage := p.Queued, Queued
	for _, s := range Steps[1:] {
		at := p.At(s)
		if at <= prev {
			return fmt.Errorf("%w: %s at %s is not after %s at %s", ErrInvalidPlan, s, at, prevStage, prev)
		}
		prev, prevStage = at, s
	}
	if p.Navigate <= p.Live {
		return fmt.Errorf("%w: navigation at %s is not after live at %s", ErrInvalidPlan, p.Navigate, p.Live)
	}
	return nil
}

// At returns the offset of stage s. Idle has no offset.
func (p Plan) At(s Stage) time.Duration {
	switch s {
	case Queued:
		return p.Queued
	case Building:
		return p.Building
	case Deploying:
		return p.Deploying
	case Live:
		return p.Live
	default:
		return 0
	}
}

// Run identifies one invocation of the lifecycle.
type Run uint64

// Machine tracks the stage of the current run. The zero value is an idle
// machine ready for use.
type Machine struct {
	mu    sync.Mutex
	run   Run
	stage Stage
}

// Start begins a new run in the queued stage and returns its token. Any run in
// progress is superseded.
func (m *Machine) Start() Run {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.run++
	m.stage = Queued
	log.WithField("run", m.run).WithField("stage", Queued).Debug("deploy started")
	return m.run
}

// Advance moves the current run to stage if it is the immediate successor of
// the stage already reached. Events for other runs and out-of-order or
// repeated stages are dropped and report false.
func (m *Machine) Advance(run Run, stage Stage) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if run != m.run || m.stage == Idle || stage != m.stage+1 || stage > Live {
		return false
	}
	m.stage = stage
	log.WithField("run", run).WithField("stage", stage).Debug("deploy advanced")
	return true
}

// Cancel revokes the current run and returns the machine to idle.
func (m *Machine) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stage != Idle {
		log.WithField("run", m.run).WithField("stage", m.stage).Debug("deploy cancelled")
	}
	m.run++
	m.stage = Idle
}

// Stage reports the current stage.
func (m *Machine) Stage() Stage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stage
}

// Current reports the active run token.
func (m *Machine) Current() Run {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.run
}

// Active reports whether run is the current, unfinished run.
func (m *Machine) Active(run Run) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return run == m.run && m.stage != Idle && m.stage != Live
}

// Done reports whether the current run reached live.
func (m *Machine) Done() bool {
	return m.Stage() == Live
}

// StepState describes one step of a progress display.
type StepState int

const (
	StepPending StepState = iota
	StepCurrent
	StepComplete
)

// Step pairs a stage with its display state.
type Step struct {
	Stage Stage
	State StepState
}

// Progress projects the reached stage onto every step. Steps before the
// reached stage are complete, the reached stage is current (live counts as
// complete), and later steps are pending.
func Progress(reached Stage) []Step {
	out := make([]Step, len(Steps))
	for i, s := range Steps {
		state := StepPending
		switch {
		case s < reached:
			state = StepComplete
		case s == reached && s == Live:
			state = StepComplete
		case s == reached:
			state = StepCurrent
		}
		out[i] = Step{Stage: s, State: state}
	}
	return out
}
