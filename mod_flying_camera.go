package scenedit

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PointerLocker is the host's relative-motion pointer lock. The request may
// be refused, and a granted lock may later be revoked; the host reports that
// with an EventCaptureChange carrying Captured=false.
type PointerLocker interface {
	RequestPointerLock() bool
	ExitPointerLock()
}

type FlyOption func(*FlyController)

func WithPointerLocker(l PointerLocker) FlyOption {
	return func(f *FlyController) { f.locker = l }
}

// FlyController is the first-person mode entered by holding the secondary
// button. While active it owns the keyboard and pointer; otherwise it lets
// everything through.
type FlyController struct {
	cam    *Camera
	cfg    *Config
	arb    *InputArbitration
	orbit  *OrbitController
	locker PointerLocker

	Speed float32

	locked bool
	lastX  float64
	lastY  float64
}

func NewFlyController(cam *Camera, cfg *Config, arb *InputArbitration, orbit *OrbitController, opts ...FlyOption) *FlyController {
	f := &FlyController{
		cam:   cam,
		cfg:   cfg,
		arb:   arb,
		orbit: orbit,
		Speed: cfg.Fly.BaseSpeed,
	}
	for _, opt := range opts {
		opt(f)
	}
	arb.Flying.Set(false)
	return f
}

func (f *FlyController) Flying() bool { return f.arb.Flying.Value() }

// PointerLocked reports whether look deltas currently come from the lock.
func (f *FlyController) PointerLocked() bool { return f.locked }

func isFlyKey(k int) bool {
	switch k {
	case KeyW, KeyA, KeyS, KeyD, KeyE, KeyQ:
		return true
	}
	return false
}

// HandleEvent runs in the capture phase.
func (f *FlyController) HandleEvent(ev *InputEvent) bool {
	switch ev.Kind {
	case EventContextMenu:
		ev.PreventDefault()
		return true
	case EventPointerDown:
		if ev.Button != MouseButtonRight {
			return f.Flying()
		}
		if f.arb.Dragging.Value() {
			return false
		}
		f.enter(ev)
		return true
	case EventPointerUp:
		if ev.Button != MouseButtonRight {
			return f.Flying()
		}
		if !f.Flying() {
			return false
		}
		f.exit()
		return true
	case EventPointerMove:
		if !f.Flying() {
			return false
		}
		f.look(ev)
		return true
	case EventCaptureChange:
		if f.Flying() && !ev.Captured && f.locked {
			// The host reports where the real cursor reappeared; deltas
			// continue from there.
			f.locked = false
			f.lastX, f.lastY = ev.X, ev.Y
		}
		return f.Flying()
	case EventWheel:
		if !f.Flying() {
			return false
		}
		f.adjustSpeed(ev.WheelDelta)
		return true
	case EventKeyDown, EventKeyUp:
		return f.Flying() && isFlyKey(ev.Key)
	}
	return false
}

func (f *FlyController) enter(ev *InputEvent) {
	f.arb.Flying.Set(true)
	f.orbit.SetEnabled(false)
	f.lastX, f.lastY = ev.X, ev.Y
	f.locked = f.locker != nil && f.locker.RequestPointerLock()
}

func (f *FlyController) exit() {
	if f.locked && f.locker != nil {
		f.locker.ExitPointerLock()
	}
	f.locked = false
	f.arb.Flying.Set(false)
	f.orbit.SetTarget(f.cam.Position.Add(f.cam.Forward().Mul(f.cfg.Fly.RetargetDistance)))
	f.orbit.SetEnabled(true)
}

func (f *FlyController) look(ev *InputEvent) {
	var dx, dy float64
	if f.locked && ev.HasMovement {
		dx, dy = ev.MovementX, ev.MovementY
	} else {
		dx, dy = ev.X-f.lastX, ev.Y-f.lastY
	}
	f.lastX, f.lastY = ev.X, ev.Y

	sens := f.cfg.Fly.LookSensitivity
	f.cam.Yaw += float32(dx) * sens
	f.cam.Pitch -= float32(dy) * sens
	f.cam.ClampPitch(f.cfg.Fly.PitchLimit)
}

// adjustSpeed applies one wheel factor per notch.
func (f *FlyController) adjustSpeed(delta float64) {
	if delta == 0 {
		return
	}
	factor := f.cfg.Fly.WheelFaster
	if delta < 0 {
		factor = f.cfg.Fly.WheelSlower
	}
	notches := math32.Max(1, math32.Round(math32.Abs(float32(delta))))
	f.Speed = mgl32.Clamp(f.Speed*math32.Pow(factor, notches), f.cfg.Fly.MinSpeed, f.cfg.Fly.MaxSpeed)
}

// Update moves the camera from the held keys. W/S and A/D follow the view
// direction flattened onto the ground plane; E/Q move straight up and down.
func (f *FlyController) Update(dt time.Duration, input *Input) {
	if !f.Flying() || dt <= 0 {
		return
	}
	forward := f.cam.Forward()
	forward[1] = 0
	if forward.Len() < 1e-6 {
		forward = mgl32.Vec3{0, 0, -1}
	}
	forward = forward.Normalize()
	right := forward.Cross(worldUp).Normalize()

	move := mgl32.Vec3{}
	if input.Pressed[KeyW] {
		move = move.Add(forward)
	}
	if input.Pressed[KeyS] {
		move = move.Sub(forward)
	}
	if input.Pressed[KeyD] {
		move = move.Add(right)
	}
	if input.Pressed[KeyA] {
		move = move.Sub(right)
	}
	if input.Pressed[KeyE] {
		move = move.Add(worldUp)
	}
	if input.Pressed[KeyQ] {
		move = move.Sub(worldUp)
	}
	if move.Len() == 0 {
		return
	}
	f.cam.Position = f.cam.Position.Add(move.Normalize().Mul(f.Speed * float32(dt.Seconds())))
}

// Close leaves fly mode and clears the shared flag.
func (f *FlyController) Close() {
	if f.locked && f.locker != nil {
		f.locker.ExitPointerLock()
	}
	f.locked = false
	if f.Flying() {
		f.orbit.SetEnabled(true)
	}
	f.arb.Flying.Set(false)
}
