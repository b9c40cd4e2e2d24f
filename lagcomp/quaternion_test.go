package lagcomp

import (
	"math"
	"testing"

	"github.com/westphae/quaternion"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-12

func TestQuaternionRate_IdentityAttitude_UnitYaw(t *testing.T) {
	// GIVEN the identity attitude and a unit angular velocity about z
	att := quaternion.Quaternion{W: 1}
	omega := r3.Vec{Z: 1}

	// WHEN the quaternion rate is computed
	rate := QuaternionRate(att, omega)

	// THEN the scalar rate is 0 and the z rate is 0.5 (standard kinematic identity)
	if math.Abs(rate.W) > tol {
		t.Errorf("rate scalar: got %g, want 0", rate.W)
	}
	if math.Abs(rate.Z-0.5) > tol {
		t.Errorf("rate z: got %g, want 0.5", rate.Z)
	}
	if math.Abs(rate.X) > tol || math.Abs(rate.Y) > tol {
		t.Errorf("rate x,y: got %g,%g, want 0,0", rate.X, rate.Y)
	}
}

func TestQuaternionRate_ZeroAngularVelocity_IsZero(t *testing.T) {
	att := quaternion.Quaternion{W: 0.5, X: 0.5, Y: 0.5, Z: 0.5}
	rate := QuaternionRate(att, r3.Vec{})
	if rate.W != 0 || rate.X != 0 || rate.Y != 0 || rate.Z != 0 {
		t.Errorf("rate for zero angular velocity: got %+v, want zero", rate)
	}
}

func TestQuaternionRate_NonUnitInput_NoError(t *testing.T) {
	// GIVEN a drifted, non-unit attitude quaternion
	att := quaternion.Quaternion{W: 1.01, X: 0.02, Y: -0.01, Z: 0.03}
	omega := r3.Vec{X: 0.1, Y: -0.2, Z: 0.3}

	// WHEN the rate is computed
	rate := QuaternionRate(att, omega)

	// THEN the result is finite; drift between renormalizations is expected
	for _, v := range []float64{rate.W, rate.X, rate.Y, rate.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("rate contains non-finite component: %+v", rate)
		}
	}
}

func TestNormalizeQuaternion(t *testing.T) {
	q := NormalizeQuaternion(quaternion.Quaternion{W: 2, X: 0, Y: 0, Z: 0})
	if math.Abs(q.W-1) > tol {
		t.Errorf("normalized scalar: got %g, want 1", q.W)
	}

	q = NormalizeQuaternion(quaternion.Quaternion{W: 1, X: 1, Y: 1, Z: 1})
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if math.Abs(n-1) > tol {
		t.Errorf("norm after normalization: got %g, want 1", n)
	}

	// A zero quaternion passes through unchanged rather than dividing by zero.
	q = NormalizeQuaternion(quaternion.Quaternion{})
	if q != (quaternion.Quaternion{}) {
		t.Errorf("zero quaternion: got %+v, want zero", q)
	}
}
