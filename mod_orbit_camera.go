package scenedit

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitController is the default camera: it circles, pans and zooms around
// a target point. It yields to fly mode and to gizmo drags by being disabled.
type OrbitController struct {
	cam *Camera
	cfg *Config
	arb *InputArbitration

	target  mgl32.Vec3
	enabled bool

	rotating bool
	panning  bool
	lastX    float64
	lastY    float64
}

func NewOrbitController(cam *Camera, cfg *Config, arb *InputArbitration) *OrbitController {
	o := &OrbitController{
		cam:     cam,
		cfg:     cfg,
		arb:     arb,
		enabled: true,
	}
	o.target = cam.Position.Add(cam.Forward().Mul(cam.Position.Len()))
	return o
}

func (o *OrbitController) Target() mgl32.Vec3 { return o.target }
func (o *OrbitController) Enabled() bool      { return o.enabled }

// SetEnabled also drops any gesture in progress when disabling.
func (o *OrbitController) SetEnabled(enabled bool) {
	o.enabled = enabled
	if !enabled {
		o.rotating = false
		o.panning = false
	}
}

// SetTarget moves the pivot and turns the camera to face it.
func (o *OrbitController) SetTarget(t mgl32.Vec3) {
	o.target = t
	o.cam.LookAt(t)
}

func (o *OrbitController) Distance() float32 {
	return o.cam.Position.Sub(o.target).Len()
}

// Orbit swings the camera around the target by yaw and pitch deltas in radians.
func (o *OrbitController) Orbit(dYaw, dPitch float32) {
	dist := o.Distance()
	o.cam.LookAt(o.target)
	o.cam.Yaw += dYaw
	o.cam.Pitch += dPitch
	o.cam.ClampPitch(o.cfg.Fly.PitchLimit)
	o.cam.Position = o.target.Sub(o.cam.Forward().Mul(dist))
}

// Pan slides camera and target together in the view plane. dx and dy are
// pixels; the step grows with distance so the target tracks the cursor.
func (o *OrbitController) Pan(dx, dy float32) {
	scale := o.Distance() * o.cfg.Orbit.PanSpeed
	offset := o.cam.Right().Mul(-dx * scale).Add(o.cam.Up().Mul(dy * scale))
	o.cam.Position = o.cam.Position.Add(offset)
	o.target = o.target.Add(offset)
}

// Zoom multiplies the distance to the target by factor, within the
// configured range.
func (o *OrbitController) Zoom(factor float32) {
	dist := mgl32.Clamp(o.Distance()*factor, o.cfg.Orbit.MinDistance, o.cfg.Orbit.MaxDistance)
	dir := o.cam.Position.Sub(o.target)
	if dir.Len() < 1e-6 {
		dir = o.cam.Forward().Mul(-1)
	}
	o.cam.Position = o.target.Add(dir.Normalize().Mul(dist))
}

// HandleEvent runs in the default phase after the gizmo. Primary drag
// orbits, middle drag pans, the wheel zooms. Nothing is consumed on
// pointer down so click selection still sees it.
func (o *OrbitController) HandleEvent(ev *InputEvent) bool {
	if !o.enabled || o.arb.Flying.Value() || o.arb.Dragging.Value() {
		return false
	}
	switch ev.Kind {
	case EventPointerDown:
		switch ev.Button {
		case MouseButtonLeft:
			o.rotating = true
		case MouseButtonMiddle:
			o.panning = true
		default:
			return false
		}
		o.lastX, o.lastY = ev.X, ev.Y
	case EventPointerMove:
		if !o.rotating && !o.panning {
			return false
		}
		dx := float32(ev.X - o.lastX)
		dy := float32(ev.Y - o.lastY)
		o.lastX, o.lastY = ev.X, ev.Y
		if o.rotating {
			o.Orbit(-dx*o.cfg.Orbit.RotateSpeed, -dy*o.cfg.Orbit.RotateSpeed)
		} else {
			o.Pan(dx, dy)
		}
		return true
	case EventPointerUp:
		if ev.Button == MouseButtonLeft {
			o.rotating = false
		} else if ev.Button == MouseButtonMiddle {
			o.panning = false
		}
	case EventWheel:
		if ev.WheelDelta == 0 {
			return false
		}
		o.Zoom(math32.Pow(o.cfg.Orbit.ZoomFactor, float32(-ev.WheelDelta)))
		return true
	}
	return false
}
