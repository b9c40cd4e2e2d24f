package lagcomp

import (
	"math"

	"github.com/westphae/quaternion"
	"gonum.org/v1/gonum/spatial/r3"
)

// QuaternionRate computes the time derivative of the attitude quaternion att
// for body angular velocity omega using the kinematic relation
// q_dot = 1/2 * q * (0, omega). It is pure and tolerates a non-unit input:
// drift between renormalizations is expected during integration.
func QuaternionRate(att quaternion.Quaternion, omega r3.Vec) quaternion.Quaternion {
	w := quaternion.Quaternion{X: omega.X, Y: omega.Y, Z: omega.Z}
	p := quaternion.Prod(att, w)
	return quaternion.Quaternion{W: 0.5 * p.W, X: 0.5 * p.X, Y: 0.5 * p.Y, Z: 0.5 * p.Z}
}

// NormalizeQuaternion returns q scaled to unit norm. A zero quaternion is
// returned unchanged rather than dividing by zero.
func NormalizeQuaternion(q quaternion.Quaternion) quaternion.Quaternion {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n == 0 {
		return q
	}
	return quaternion.Quaternion{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}
