package lagcomp

import (
	"fmt"

	"github.com/westphae/quaternion"
	"gonum.org/v1/gonum/spatial/r3"
)

// StateSize is the number of scalars in the flattened kinematic state.
const StateSize = 13

// Flattened state slot indices. The slot order is fixed at
// [pos(3), vel(3), quat(4), ang_vel(3)] and is the only contract between the
// kinematic state and the integrators: integration code addresses slots, not
// fields.
const (
	SlotPos    = 0  // position x,y,z
	SlotVel    = 3  // velocity x,y,z
	SlotQuat   = 6  // attitude quaternion w,x,y,z
	SlotAngVel = 10 // body angular velocity x,y,z
)

// StateVector is a kinematic state flattened into integrator slot order.
type StateVector [StateSize]float64

// KinematicState is the rigid-body state propagated by a compensation pass.
// Each instance is owned by exactly one engine and mutated only while that
// engine is compensating.
type KinematicState struct {
	Time   float64               // timestamp the state is valid at (scenario seconds)
	Pos    r3.Vec                // translational position
	Vel    r3.Vec                // translational velocity
	Att    quaternion.Quaternion // attitude of body frame, scalar-first
	AngVel r3.Vec                // body angular velocity
}

// Flatten writes the state into v using the fixed slot mapping.
// The timestamp is not part of the integrated vector.
func (k *KinematicState) Flatten(v *StateVector) {
	v[SlotPos+0] = k.Pos.X
	v[SlotPos+1] = k.Pos.Y
	v[SlotPos+2] = k.Pos.Z
	v[SlotVel+0] = k.Vel.X
	v[SlotVel+1] = k.Vel.Y
	v[SlotVel+2] = k.Vel.Z
	v[SlotQuat+0] = k.Att.W
	v[SlotQuat+1] = k.Att.X
	v[SlotQuat+2] = k.Att.Y
	v[SlotQuat+3] = k.Att.Z
	v[SlotAngVel+0] = k.AngVel.X
	v[SlotAngVel+1] = k.AngVel.Y
	v[SlotAngVel+2] = k.AngVel.Z
}

// Restore reads the integrated vector back into the state fields.
func (k *KinematicState) Restore(v *StateVector) {
	k.Pos = r3.Vec{X: v[SlotPos+0], Y: v[SlotPos+1], Z: v[SlotPos+2]}
	k.Vel = r3.Vec{X: v[SlotVel+0], Y: v[SlotVel+1], Z: v[SlotVel+2]}
	k.Att = quaternion.Quaternion{W: v[SlotQuat+0], X: v[SlotQuat+1], Y: v[SlotQuat+2], Z: v[SlotQuat+3]}
	k.AngVel = r3.Vec{X: v[SlotAngVel+0], Y: v[SlotAngVel+1], Z: v[SlotAngVel+2]}
}

func (k KinematicState) String() string {
	return fmt.Sprintf("t=%.6f pos=(%.6g,%.6g,%.6g) vel=(%.6g,%.6g,%.6g) att=(%.6g,%.6g,%.6g,%.6g) w=(%.6g,%.6g,%.6g)",
		k.Time, k.Pos.X, k.Pos.Y, k.Pos.Z, k.Vel.X, k.Vel.Y, k.Vel.Z,
		k.Att.W, k.Att.X, k.Att.Y, k.Att.Z, k.AngVel.X, k.AngVel.Y, k.AngVel.Z)
}

// AccelInputs carries the instantaneous accelerations supplied by the owning
// entity model. The engine treats them as input, never derives them.
type AccelInputs struct {
	Accel    r3.Vec // linear acceleration
	RotAccel r3.Vec // rotational (angular) acceleration
}

// Derivative populates dy with the state derivative at y: velocity into the
// position channels, the supplied accelerations into the velocity and angular
// velocity channels, and the quaternion kinematic rate into the attitude
// channels.
func Derivative(y *StateVector, in AccelInputs, dy *StateVector) {
	dy[SlotPos+0] = y[SlotVel+0]
	dy[SlotPos+1] = y[SlotVel+1]
	dy[SlotPos+2] = y[SlotVel+2]
	dy[SlotVel+0] = in.Accel.X
	dy[SlotVel+1] = in.Accel.Y
	dy[SlotVel+2] = in.Accel.Z

	att := quaternion.Quaternion{W: y[SlotQuat+0], X: y[SlotQuat+1], Y: y[SlotQuat+2], Z: y[SlotQuat+3]}
	omega := r3.Vec{X: y[SlotAngVel+0], Y: y[SlotAngVel+1], Z: y[SlotAngVel+2]}
	qdot := QuaternionRate(att, omega)

	dy[SlotQuat+0] = qdot.W
	dy[SlotQuat+1] = qdot.X
	dy[SlotQuat+2] = qdot.Y
	dy[SlotQuat+3] = qdot.Z
	dy[SlotAngVel+0] = in.RotAccel.X
	dy[SlotAngVel+1] = in.RotAccel.Y
	dy[SlotAngVel+2] = in.RotAccel.Z
}
