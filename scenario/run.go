package scenario

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/westphae/quaternion"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/simtheverse/entsync/entity"
	"github.com/simtheverse/entsync/fed"
	"github.com/simtheverse/entsync/lagcomp"
)

// Result summarizes a loopback run: how far the receiver's adopted state
// strayed from the closed-form truth at its consumption time.
type Result struct {
	Cycles  int // scheduler cycles executed
	Updates int // cycles where an update was published and adopted
	Skipped int // cycles where the freshness gate skipped propagation

	MaxPosErr  float64 // metres
	MeanPosErr float64
	MaxVelErr  float64 // metres/second
	MaxAttErr  float64 // radians; -1 when the attitude closed form does not apply
}

// Log writes the run summary at info level.
func (r *Result) Log(log *logrus.Logger) {
	log.WithFields(logrus.Fields{
		"cycles":       r.Cycles,
		"updates":      r.Updates,
		"skipped":      r.Skipped,
		"max_pos_err":  fmt.Sprintf("%.3e", r.MaxPosErr),
		"mean_pos_err": fmt.Sprintf("%.3e", r.MeanPosErr),
		"max_vel_err":  fmt.Sprintf("%.3e", r.MaxVelErr),
		"max_att_err":  fmt.Sprintf("%.3e", r.MaxAttErr),
	}).Info("loopback scenario complete")
}

// Run executes the loopback scenario: each cycle the publishing federate's
// live state is set from the truth trajectory and compensated forward by the
// lookahead; the subscriber consumes the update one cycle later, closes the
// remaining gap, and is scored against truth at its consumption time.
func Run(spec *Spec, log *logrus.Logger) (*Result, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	cfg := spec.EngineConfig()

	initial := lagcomp.KinematicState{
		Pos: vec(spec.Entity.Position),
		Vel: vec(spec.Entity.Velocity),
		Att: quaternion.Quaternion{
			W: spec.Entity.Attitude[0], X: spec.Entity.Attitude[1],
			Y: spec.Entity.Attitude[2], Z: spec.Entity.Attitude[3],
		},
		AngVel: vec(spec.Entity.AngularVelocity),
	}
	inputs := lagcomp.AccelInputs{
		Accel:    vec(spec.Entity.Acceleration),
		RotAccel: vec(spec.Entity.RotationalAcceleration),
	}
	attExact := r3.Norm(inputs.RotAccel) == 0

	sender, senderComp, senderClock, err := buildFederate(spec, cfg, true)
	if err != nil {
		return nil, err
	}
	receiver, receiverComp, receiverClock, err := buildFederate(spec, cfg, false)
	if err != nil {
		return nil, err
	}

	var pacer *fed.SleepTimeout
	if spec.RealTime {
		cycle := time.Duration(spec.CycleTime * float64(time.Second))
		pacer = fed.NewSleepTimeout(cycle, cycle/10)
	}

	res := &Result{MaxAttErr: -1}
	var posErrs, velErrs, attErrs []float64

	cycles := int(math.Round(spec.Duration / spec.CycleTime))
	for i := 0; i < cycles; i++ {
		t := float64(i) * spec.CycleTime

		// The publisher's live state tracks the truth trajectory; the engine
		// only ever sees it through the EntityModel surface.
		senderClock.Set(t)
		truthNow := Truth(initial, inputs, t)
		sender.SetState(truthNow)
		sender.SetAccelerations(inputs.Accel, inputs.RotAccel)

		published := false
		var update lagcomp.KinematicState
		if i%spec.SendEvery == 0 {
			senderComp.SendLagCompensation()
			update = senderComp.CompensatedState()
			published = true
		}

		// The subscriber consumes at its next cycle boundary.
		tConsume := t + spec.CycleTime
		receiverClock.Set(tConsume)
		if published {
			receiver.SetState(update)
			receiver.SetAccelerations(inputs.Accel, inputs.RotAccel)
			receiver.Attr(lagcomp.StateAttrName).MarkReceived()
		}
		receiverComp.ReceiveLagCompensation()
		receiver.Object().ClearReceived()

		if published {
			got := receiver.State()
			want := Truth(initial, inputs, tConsume)
			posErrs = append(posErrs, r3.Norm(r3.Sub(got.Pos, want.Pos)))
			velErrs = append(velErrs, r3.Norm(r3.Sub(got.Vel, want.Vel)))
			if attExact {
				attErrs = append(attErrs, AttitudeAngle(got.Att, want.Att))
			}
			res.Updates++
		} else {
			res.Skipped++
		}
		res.Cycles++

		if pacer != nil {
			for !pacer.TimedOut() {
				pacer.Sleep()
			}
			pacer.Reset()
		}
	}

	if len(posErrs) > 0 {
		res.MaxPosErr = floats.Max(posErrs)
		res.MeanPosErr = floats.Sum(posErrs) / float64(len(posErrs))
		res.MaxVelErr = floats.Max(velErrs)
	}
	if len(attErrs) > 0 {
		res.MaxAttErr = floats.Max(attErrs)
	}
	return res, nil
}

// buildFederate wires one entity, its object registration, clock, and
// compensation engine.
func buildFederate(spec *Spec, cfg lagcomp.Config, publishes bool) (*entity.PhysicalEntity, *lagcomp.PhysicalCompensator, *fed.ScenarioClock, error) {
	ent := entity.New(spec.Entity.Name, spec.Entity.Type, "root")
	obj := fed.NewObject(entity.FOMClassName, spec.Entity.Name, spec.Lookahead)
	if err := ent.RegisterAttributes(obj, publishes); err != nil {
		return nil, nil, nil, err
	}
	comp, err := lagcomp.NewPhysicalCompensator(ent, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	clock := fed.NewScenarioClock(0)
	comp.AttachObject(obj)
	comp.AttachClock(clock)
	if err := comp.Initialize(); err != nil {
		return nil, nil, nil, err
	}
	return ent, comp, clock, nil
}

func vec(v [3]float64) r3.Vec { return r3.Vec{X: v[0], Y: v[1], Z: v[2]} }
