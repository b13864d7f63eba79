package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Euler angles in this package are radians applied in intrinsic XYZ order,
// the convention scene nodes store their rotation in.

func EulerToQuat(e mgl32.Vec3) mgl32.Quat {
	qx := mgl32.QuatRotate(e.X(), mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(e.Y(), mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(e.Z(), mgl32.Vec3{0, 0, 1})
	return qx.Mul(qy).Mul(qz).Normalize()
}

// QuatToEuler decomposes q into XYZ angles. Computed in float64 because the
// gimbal branch is sensitive to rounding in the matrix terms.
func QuatToEuler(q mgl32.Quat) mgl32.Vec3 {
	x, y, z := quatToEuler64(q)
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// QuatToEulerNear decomposes q and picks, among the equivalent XYZ solutions
// and their 2π shifts, the one closest to ref. Used when committing a drag so
// that angles keep continuity with what the node stored before.
func QuatToEulerNear(q mgl32.Quat, ref mgl32.Vec3) mgl32.Vec3 {
	x, y, z := quatToEuler64(q)
	r := [3]float64{float64(ref.X()), float64(ref.Y()), float64(ref.Z())}

	candidates := [2][3]float64{
		{x, y, z},
		{x + math.Pi, math.Pi - y, z + math.Pi},
	}
	best := candidates[0]
	bestDist := math.Inf(1)
	for _, c := range candidates {
		var d float64
		for i := range c {
			c[i] = unwrapNear(c[i], r[i])
			d += (c[i] - r[i]) * (c[i] - r[i])
		}
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return mgl32.Vec3{float32(best[0]), float32(best[1]), float32(best[2])}
}

func quatToEuler64(q mgl32.Quat) (x, y, z float64) {
	q = q.Normalize()
	qx, qy, qz, qw := float64(q.V.X()), float64(q.V.Y()), float64(q.V.Z()), float64(q.W)

	m11 := 1 - 2*(qy*qy+qz*qz)
	m12 := 2 * (qx*qy - qw*qz)
	m13 := 2 * (qx*qz + qw*qy)
	m22 := 1 - 2*(qx*qx+qz*qz)
	m23 := 2 * (qy*qz - qw*qx)
	m32 := 2 * (qy*qz + qw*qx)
	m33 := 1 - 2*(qx*qx+qy*qy)

	y = math.Atan2(clamp64(m13, -1, 1), math.Hypot(m23, m33))
	if math.Abs(m13) < 0.9999999 {
		x = math.Atan2(-m23, m33)
		z = math.Atan2(-m12, m11)
	} else {
		x = math.Atan2(m32, m22)
		z = 0
	}
	return x, y, z
}

func unwrapNear(a, ref float64) float64 {
	return a + 2*math.Pi*math.Round((ref-a)/(2*math.Pi))
}

func clamp64(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
