package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestEuler_RoundTrip(t *testing.T) {
	cases := []mgl32.Vec3{
		{0, 0, 0},
		{0.3, -0.2, 1.1},
		{-1.2, 0.7, -2.5},
		{0, math.Pi / 2, 0},
	}
	for _, e := range cases {
		got := QuatToEuler(EulerToQuat(e))
		assert.InDelta(t, e.X(), got.X(), 1e-4, "x of %v", e)
		assert.InDelta(t, e.Y(), got.Y(), 1e-4, "y of %v", e)
		assert.InDelta(t, e.Z(), got.Z(), 1e-4, "z of %v", e)
	}
}

func TestEulerToQuat_IsIntrinsicXYZ(t *testing.T) {
	q := EulerToQuat(mgl32.Vec3{0, math.Pi / 2, 0})
	v := q.Rotate(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, v.X(), 1e-5)
	assert.InDelta(t, -1, v.Z(), 1e-5)
}

func TestQuatToEulerNear_PrefersContinuity(t *testing.T) {
	ref := mgl32.Vec3{0, 0, 3.0}
	q := EulerToQuat(mgl32.Vec3{0, 0, 3.3})
	got := QuatToEulerNear(q, ref)
	// 3.3 wraps to -2.98 in the principal range; near the reference it stays 3.3.
	assert.InDelta(t, 3.3, got.Z(), 1e-4)

	// The alternate solution is picked when it is closer to the reference.
	ref = mgl32.Vec3{math.Pi, math.Pi - 0.2, math.Pi}
	q = EulerToQuat(ref)
	got = QuatToEulerNear(q, ref)
	assert.InDelta(t, ref.X(), got.X(), 1e-4)
	assert.InDelta(t, ref.Y(), got.Y(), 1e-4)
	assert.InDelta(t, ref.Z(), got.Z(), 1e-4)
}
