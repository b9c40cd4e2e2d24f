package scenario

import (
	"math"

	"github.com/westphae/quaternion"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/simtheverse/entsync/lagcomp"
)

// Truth evaluates the closed-form trajectory for the initial state under the
// given constant accelerations at elapsed time t.
//
// Translation is exact for any constant acceleration. The attitude closed
// form assumes constant angular velocity (zero rotational acceleration);
// with a nonzero rotational acceleration the attitude channel has no
// elementary closed form and only the translational and angular-velocity
// channels of the returned state are exact.
func Truth(initial lagcomp.KinematicState, in lagcomp.AccelInputs, t float64) lagcomp.KinematicState {
	out := initial
	out.Time = initial.Time + t

	out.Pos = r3.Add(initial.Pos, r3.Add(r3.Scale(t, initial.Vel), r3.Scale(0.5*t*t, in.Accel)))
	out.Vel = r3.Add(initial.Vel, r3.Scale(t, in.Accel))
	out.AngVel = r3.Add(initial.AngVel, r3.Scale(t, in.RotAccel))

	// q(t) = q0 ⊗ exp(½ ω t) for body-frame ω: rotation of |ω|t about ω̂.
	w := r3.Norm(initial.AngVel)
	if w > 0 {
		half := 0.5 * w * t
		axis := r3.Scale(math.Sin(half)/w, initial.AngVel)
		rot := quaternion.Quaternion{W: math.Cos(half), X: axis.X, Y: axis.Y, Z: axis.Z}
		out.Att = quaternion.Prod(initial.Att, rot)
	}
	return out
}

// AttitudeAngle returns the rotation angle, in radians, separating two unit
// attitude quaternions.
func AttitudeAngle(a, b quaternion.Quaternion) float64 {
	dot := a.W*b.W + a.X*b.X + a.Y*b.Y + a.Z*b.Z
	c := math.Abs(dot)
	if c > 1 {
		c = 1
	}
	return 2 * math.Acos(c)
}
