package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ApparentScale is the world size that keeps a unit gizmo at a constant
// on-screen size: distance * tan(fov/2) * factor. fovDeg is vertical.
func ApparentScale(eye, target mgl32.Vec3, fovDeg, factor float32) float32 {
	d := target.Sub(eye).Len()
	return d * math32.Tan(mgl32.DegToRad(fovDeg)/2) * factor
}

// ModelMatrix is T * R * uniform S.
func ModelMatrix(pos mgl32.Vec3, rot mgl32.Quat, scale float32) mgl32.Mat4 {
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}
