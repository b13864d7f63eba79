package scenedit

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/scenedit/viewport/core"
	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera is a Y-up perspective camera. Yaw and Pitch are radians; yaw 0
// looks down -Z. Fov is the vertical field of view in degrees.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Fov      float32
	Aspect   float32
	Near     float32
	Far      float32
}

func NewCamera() *Camera {
	c := &Camera{
		Position: mgl32.Vec3{0, 5, 10},
		Fov:      60,
		Aspect:   16.0 / 9.0,
		Near:     0.05,
		Far:      2000,
	}
	c.LookAt(mgl32.Vec3{})
	return c
}

func (c *Camera) Forward() mgl32.Vec3 {
	sy, cy := math32.Sincos(c.Yaw)
	sp, cp := math32.Sincos(c.Pitch)
	return mgl32.Vec3{sy * cp, sp, -cy * cp}.Normalize()
}

func (c *Camera) Right() mgl32.Vec3 {
	return c.Forward().Cross(worldUp).Normalize()
}

func (c *Camera) Up() mgl32.Vec3 {
	return c.Right().Cross(c.Forward()).Normalize()
}

// LookAt turns the camera towards target without moving it.
func (c *Camera) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Position)
	if d.Len() < 1e-6 {
		return
	}
	d = d.Normalize()
	c.Yaw = math32.Atan2(d.X(), -d.Z())
	c.Pitch = math32.Asin(mgl32.Clamp(d.Y(), -1, 1))
}

// ClampPitch keeps pitch within ±limit.
func (c *Camera) ClampPitch(limit float32) {
	c.Pitch = mgl32.Clamp(c.Pitch, -limit, limit)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), worldUp)
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// ScreenRay is the pick ray through window pixel (x, y).
func (c *Camera) ScreenRay(x, y float64, width, height int) core.Ray {
	if width <= 0 || height <= 0 {
		return core.Ray{Origin: c.Position, Direction: c.Forward()}
	}
	nx := (2.0*float32(x))/float32(width) - 1.0
	ny := 1.0 - (2.0*float32(y))/float32(height)

	forward := c.Forward()
	right := c.Right()
	up := right.Cross(forward)

	aspect := float32(width) / float32(height)
	tanHalfFov := math32.Tan(mgl32.DegToRad(c.Fov) / 2)

	dir := forward.Add(right.Mul(nx * aspect * tanHalfFov)).Add(up.Mul(ny * tanHalfFov))
	return core.Ray{Origin: c.Position, Direction: dir.Normalize()}
}

// Project maps a world point to window pixels; ok is false behind the camera.
func (c *Camera) Project(p mgl32.Vec3, width, height int) (x, y float64, ok bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = float64((ndc.X() + 1) / 2 * float32(width))
	y = float64((1 - ndc.Y()) / 2 * float32(height))
	return x, y, true
}
