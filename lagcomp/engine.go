package lagcomp

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/westphae/quaternion"

	"github.com/simtheverse/entsync/fed"
)

// StateAttrName is the schema attribute the receive-side freshness gate
// checks: compensation only runs when this attribute's data arrived in the
// current cycle.
const StateAttrName = "state"

// EntityModel is the live entity representation a compensator propagates.
// The engine reads the state buffer once at pass entry and writes it once at
// pass exit; no other writer may touch the buffer between those points
// within a cycle.
type EntityModel interface {
	// State returns the entity's current kinematic state.
	State() KinematicState
	// SetState adopts a compensated state as the entity's current state.
	SetState(KinematicState)
	// Accelerations returns the entity's instantaneous linear and rotational
	// acceleration. The engine treats them as input, never derives them.
	Accelerations() AccelInputs
}

// PhysicalCompensator propagates a rigid-body entity state across the
// network latency gap. One instance owns one working KinematicState and one
// integration strategy; it is single-owner and runs to completion within a
// simulation cycle.
type PhysicalCompensator struct {
	Base

	entity EntityModel
	cfg    Config
	integ  Integrator

	work KinematicState // working state, valid only during a pass
	in   AccelInputs    // derivative inputs, refreshed at pass entry
	qdot quaternion.Quaternion

	stateAttr *fed.Attribute
	log       *logrus.Logger
}

// NewPhysicalCompensator creates a compensator for the given entity. The
// integration strategy and attribute descriptors are resolved later by
// Initialize, after the object registration record is attached.
func NewPhysicalCompensator(entity EntityModel, cfg Config) (*PhysicalCompensator, error) {
	if entity == nil {
		return nil, fmt.Errorf("compensator: entity model must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("compensator: %w", err)
	}
	log := logrus.StandardLogger()
	if cfg.Verbosity != "" {
		level, err := logrus.ParseLevel(cfg.Verbosity)
		if err != nil {
			return nil, fmt.Errorf("compensator: invalid verbosity %q: %w", cfg.Verbosity, err)
		}
		log = logrus.New()
		log.SetLevel(level)
	}
	return &PhysicalCompensator{entity: entity, cfg: cfg, log: log}, nil
}

// Initialize constructs the integration strategy and resolves the state
// attribute descriptor. Failures are configuration mismatches; the caller
// must treat them as fatal.
func (e *PhysicalCompensator) Initialize() error {
	integ, err := NewIntegrator(e.cfg.Integrator, e.cfg.StepSize, e.derivative)
	if err != nil {
		return fmt.Errorf("compensator initialize: %w", err)
	}
	e.integ = integ

	attr, err := e.AttributeAndValidate(StateAttrName)
	if err != nil {
		return fmt.Errorf("compensator initialize: %w", err)
	}
	e.stateAttr = attr
	return nil
}

// derivative is the fixed derivative callback handed to the integration
// strategy. Accelerations are the ones sampled at pass entry.
func (e *PhysicalCompensator) derivative(_ float64, y *StateVector, dy *StateVector) {
	Derivative(y, e.in, dy)
}

// QuaternionRateDiag returns the quaternion rate computed at the end of the
// most recent compensation pass.
func (e *PhysicalCompensator) QuaternionRateDiag() quaternion.Quaternion { return e.qdot }

// CompensatedState returns the working state left by the most recent pass.
func (e *PhysicalCompensator) CompensatedState() KinematicState { return e.work }

// SendLagCompensation propagates the current entity state forward by the
// federation lookahead so the transmitted state is valid when a receiver can
// first act on it.
func (e *PhysicalCompensator) SendLagCompensation() {
	begin := e.ScenarioTime()
	end := begin + e.Lookahead()

	e.log.WithFields(logrus.Fields{
		"scenario_time": begin,
		"lookahead":     e.Lookahead(),
		"adjusted_time": end,
	}).Debug("send lag compensation")

	e.Compensate(begin, end)

	// Skip the copy-back when the entity's working state is the simulation's
	// authoritative buffer; it only makes sense for buffered working state.
	if e.cfg.AdoptOnSend {
		e.entity.SetState(e.work)
	}
}

// ReceiveLagCompensation closes the gap between the arrived data's timestamp
// and local scenario time. Ownership transfers and differing send rates mean
// an update cycle may carry no state data; stale data must not be
// extrapolated as if it just arrived, so the pass is skipped entirely unless
// the state attribute was received this cycle.
func (e *PhysicalCompensator) ReceiveLagCompensation() {
	end := e.ScenarioTime()
	data := e.entity.State().Time

	e.log.WithFields(logrus.Fields{
		"scenario_time": end,
		"data_time":     data,
		"gap":           end - data,
	}).Debug("receive lag compensation")

	if e.stateAttr == nil || !e.stateAttr.IsReceived() {
		e.log.Debug("state attribute not received this cycle; skipping compensation")
		return
	}

	e.Compensate(data, end)
	e.entity.SetState(e.work)
}

// Compensate propagates the entity state from tBegin to tEnd through
// repeated integration sub-steps and returns the resulting state. A zero or
// negative gap skips the loop and the state is accepted as-is at tBegin.
// The loop has no non-convergence outcome: step size and tolerance bound the
// iteration count at ceil((tEnd-tBegin)/step).
func (e *PhysicalCompensator) Compensate(tBegin, tEnd float64) KinematicState {
	e.work = e.entity.State()
	e.in = e.entity.Accelerations()
	e.qdot = QuaternionRate(e.work.Att, e.work.AngVel)

	e.integ.Prepare(tBegin)
	t := tBegin
	dtGo := tEnd - tBegin

	// Iteration bound from the step/tolerance policy, plus slack for the
	// short final sub-step. Trips only on malformed time inputs (NaN).
	maxIter := int(math.Ceil(dtGo/e.cfg.StepSize)) + 2

	var y StateVector
	for iter := 0; dtGo >= 0 && math.Abs(dtGo) > e.cfg.Tolerance; iter++ {
		if iter >= maxIter {
			e.log.WithFields(logrus.Fields{
				"t": t, "dt_go": dtGo, "iterations": iter,
			}).Warn("compensation sub-step loop exceeded its iteration bound")
			break
		}

		// Final sub-step lands exactly on tEnd instead of overshooting.
		step := e.cfg.StepSize
		if dtGo <= step {
			step = dtGo
		}

		e.work.Flatten(&y)
		e.integ.Load(&y)
		e.integ.Step(step)
		e.integ.Unload(&y)
		e.work.Restore(&y)

		// Take the clock from the integrator rather than accumulating step
		// sizes, so floating-point drift cannot compound.
		t = e.integ.Time()
		dtGo = tEnd - t

		e.log.WithFields(logrus.Fields{"t": t, "dt_go": dtGo}).Trace("sub-step")
	}

	e.work.Time = t
	if e.cfg.NormalizeAttitude {
		e.work.Att = NormalizeQuaternion(e.work.Att)
	}
	e.qdot = QuaternionRate(e.work.Att, e.work.AngVel)
	return e.work
}
