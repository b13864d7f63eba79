package scenedit

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamera_LookAtAndRays(t *testing.T) {
	cam := NewCamera()
	cam.Position = mgl32.Vec3{0, 0, 10}
	cam.LookAt(mgl32.Vec3{})
	assertVecInDelta(t, mgl32.Vec3{0, 0, -1}, cam.Forward(), 1e-5)
	assertVecInDelta(t, mgl32.Vec3{1, 0, 0}, cam.Right(), 1e-5)
	assertVecInDelta(t, mgl32.Vec3{0, 1, 0}, cam.Up(), 1e-5)

	ray := cam.ScreenRay(400, 300, 800, 600)
	assertVecInDelta(t, cam.Forward(), ray.Direction, 1e-5)

	right := cam.ScreenRay(800, 300, 800, 600)
	assert.Greater(t, right.Direction.X(), float32(0))
	top := cam.ScreenRay(400, 0, 800, 600)
	assert.Greater(t, top.Direction.Y(), float32(0))

	x, y, ok := cam.Project(mgl32.Vec3{}, 800, 600)
	require.True(t, ok)
	assert.InDelta(t, 400, x, 1e-3)
	assert.InDelta(t, 300, y, 1e-3)
	_, _, ok = cam.Project(mgl32.Vec3{0, 0, 20}, 800, 600)
	assert.False(t, ok)
}

func TestCamera_ProjectInvertsScreenRay(t *testing.T) {
	cam := NewCamera()
	cam.Aspect = 800.0 / 600.0
	ray := cam.ScreenRay(123, 456, 800, 600)
	p := ray.At(7)
	x, y, ok := cam.Project(p, 800, 600)
	require.True(t, ok)
	assert.InDelta(t, 123, x, 0.05)
	assert.InDelta(t, 456, y, 0.05)
}

type orbitFixture struct {
	cam   *Camera
	cfg   *Config
	arb   *InputArbitration
	orbit *OrbitController
}

func newOrbitFixture() orbitFixture {
	cam := NewCamera()
	cam.Position = mgl32.Vec3{0, 0, 10}
	cam.LookAt(mgl32.Vec3{})
	cfg := DefaultConfig()
	arb := NewInputArbitration()
	return orbitFixture{cam: cam, cfg: cfg, arb: arb, orbit: NewOrbitController(cam, cfg, arb)}
}

func TestOrbit_OrbitKeepsDistance(t *testing.T) {
	f := newOrbitFixture()
	assertVecInDelta(t, mgl32.Vec3{}, f.orbit.Target(), 1e-4)

	f.orbit.Orbit(0.7, 0.3)
	assert.InDelta(t, 10, f.orbit.Distance(), 1e-4)
	assertVecInDelta(t, f.orbit.Target(), f.cam.Position.Add(f.cam.Forward().Mul(10)), 1e-4)

	f.orbit.Orbit(0, 10)
	assert.LessOrEqual(t, f.cam.Pitch, f.cfg.Fly.PitchLimit)
}

func TestOrbit_ZoomClamps(t *testing.T) {
	f := newOrbitFixture()
	f.orbit.Zoom(0.5)
	assert.InDelta(t, 5, f.orbit.Distance(), 1e-4)
	f.orbit.Zoom(1e-6)
	assert.InDelta(t, f.cfg.Orbit.MinDistance, f.orbit.Distance(), 1e-4)
	f.orbit.Zoom(1e9)
	assert.InDelta(t, f.cfg.Orbit.MaxDistance, f.orbit.Distance(), 1e-2)
}

func TestOrbit_PanMovesTargetWithCamera(t *testing.T) {
	f := newOrbitFixture()
	f.orbit.Pan(100, 0)
	assert.Less(t, f.orbit.Target().X(), float32(0))
	assert.InDelta(t, 10, f.orbit.Distance(), 1e-4)
}

func TestOrbit_HandleEvent(t *testing.T) {
	f := newOrbitFixture()

	down := &InputEvent{Kind: EventPointerDown, Button: MouseButtonLeft, X: 100, Y: 100}
	assert.False(t, f.orbit.HandleEvent(down), "press stays visible to selection")
	before := f.cam.Yaw
	assert.True(t, f.orbit.HandleEvent(&InputEvent{Kind: EventPointerMove, X: 150, Y: 100}))
	assert.NotEqual(t, before, f.cam.Yaw)
	f.orbit.HandleEvent(&InputEvent{Kind: EventPointerUp, Button: MouseButtonLeft})
	assert.False(t, f.orbit.HandleEvent(&InputEvent{Kind: EventPointerMove, X: 200, Y: 100}))

	assert.True(t, f.orbit.HandleEvent(&InputEvent{Kind: EventWheel, WheelDelta: 1}))
	assert.Less(t, f.orbit.Distance(), float32(10))

	f.arb.Dragging.Set(true)
	assert.False(t, f.orbit.HandleEvent(&InputEvent{Kind: EventWheel, WheelDelta: 1}))
	f.arb.Dragging.Set(false)

	f.orbit.SetEnabled(false)
	assert.False(t, f.orbit.HandleEvent(&InputEvent{Kind: EventWheel, WheelDelta: 1}))
}

type fakeLocker struct {
	grant    bool
	requests int
	exits    int
}

func (l *fakeLocker) RequestPointerLock() bool { l.requests++; return l.grant }
func (l *fakeLocker) ExitPointerLock()         { l.exits++ }

func newFly(grant bool) (orbitFixture, *FlyController, *fakeLocker) {
	f := newOrbitFixture()
	l := &fakeLocker{grant: grant}
	return f, NewFlyController(f.cam, f.cfg, f.arb, f.orbit, WithPointerLocker(l)), l
}

func rightDown(x, y float64) *InputEvent {
	return &InputEvent{Kind: EventPointerDown, Button: MouseButtonRight, X: x, Y: y}
}

func rightUp() *InputEvent {
	return &InputEvent{Kind: EventPointerUp, Button: MouseButtonRight}
}

func TestFly_EnterAndExit(t *testing.T) {
	f, fly, l := newFly(true)

	assert.True(t, fly.HandleEvent(rightDown(10, 10)))
	assert.True(t, fly.Flying())
	assert.True(t, f.arb.Flying.Value())
	assert.False(t, f.orbit.Enabled())
	assert.True(t, fly.PointerLocked())
	assert.Equal(t, 1, l.requests)

	f.cam.Position = mgl32.Vec3{3, 1, 2}
	assert.True(t, fly.HandleEvent(rightUp()))
	assert.False(t, fly.Flying())
	assert.True(t, f.orbit.Enabled())
	assert.Equal(t, 1, l.exits)
	want := f.cam.Position.Add(f.cam.Forward().Mul(f.cfg.Fly.RetargetDistance))
	assertVecInDelta(t, want, f.orbit.Target(), 1e-4)

	assert.False(t, fly.HandleEvent(rightUp()), "release without fly is ignored")
}

func TestFly_BlockedWhileDragging(t *testing.T) {
	f, fly, l := newFly(true)
	f.arb.Dragging.Set(true)
	assert.False(t, fly.HandleEvent(rightDown(0, 0)))
	assert.False(t, fly.Flying())
	assert.Zero(t, l.requests)
}

func TestFly_LookFallsBackWithoutLock(t *testing.T) {
	f, fly, _ := newFly(false)
	fly.HandleEvent(rightDown(100, 100))
	require.False(t, fly.PointerLocked())

	yaw := f.cam.Yaw
	assert.True(t, fly.HandleEvent(&InputEvent{Kind: EventPointerMove, X: 110, Y: 100}))
	assert.InDelta(t, float64(yaw+10*f.cfg.Fly.LookSensitivity), float64(f.cam.Yaw), 1e-6)
}

func TestFly_LockRevokedMidFlight(t *testing.T) {
	f, fly, _ := newFly(true)
	fly.HandleEvent(rightDown(100, 100))
	require.True(t, fly.PointerLocked())

	// A locked host keeps reporting a virtual cursor that runs away from
	// the real one.
	yaw := f.cam.Yaw
	for i := 1; i <= 50; i++ {
		fly.HandleEvent(&InputEvent{Kind: EventPointerMove, X: 100 + float64(10*i), Y: 100, HasMovement: true, MovementX: 10})
	}
	assert.InDelta(t, float64(yaw+500*f.cfg.Fly.LookSensitivity), float64(f.cam.Yaw), 1e-4)

	// The real cursor reappears at 100.
	assert.True(t, fly.HandleEvent(&InputEvent{Kind: EventCaptureChange, Captured: false, X: 100, Y: 100}))
	assert.False(t, fly.PointerLocked())
	assert.True(t, fly.Flying(), "fly mode survives losing the lock")

	yaw = f.cam.Yaw
	fly.HandleEvent(&InputEvent{Kind: EventPointerMove, X: 102, Y: 100})
	assert.InDelta(t, float64(yaw+2*f.cfg.Fly.LookSensitivity), float64(f.cam.Yaw), 1e-6)
}

func TestFly_WheelSpeedClamped(t *testing.T) {
	f, fly, _ := newFly(true)
	assert.False(t, fly.HandleEvent(&InputEvent{Kind: EventWheel, WheelDelta: 1}), "wheel passes through outside fly")
	fly.HandleEvent(rightDown(0, 0))

	fly.HandleEvent(&InputEvent{Kind: EventWheel, WheelDelta: 1})
	assert.InDelta(t, float64(f.cfg.Fly.BaseSpeed*f.cfg.Fly.WheelFaster), float64(fly.Speed), 1e-5)

	fly.HandleEvent(&InputEvent{Kind: EventWheel, WheelDelta: 100})
	assert.Equal(t, f.cfg.Fly.MaxSpeed, fly.Speed)
	fly.HandleEvent(&InputEvent{Kind: EventWheel, WheelDelta: -100})
	assert.Equal(t, f.cfg.Fly.MinSpeed, fly.Speed)
}

func TestFly_ConsumesInputWhileFlying(t *testing.T) {
	_, fly, _ := newFly(true)
	w := &InputEvent{Kind: EventKeyDown, Key: KeyW}
	assert.False(t, fly.HandleEvent(w))
	left := &InputEvent{Kind: EventPointerDown, Button: MouseButtonLeft}
	assert.False(t, fly.HandleEvent(left))

	fly.HandleEvent(rightDown(0, 0))
	assert.True(t, fly.HandleEvent(w))
	assert.True(t, fly.HandleEvent(left))
	assert.False(t, fly.HandleEvent(&InputEvent{Kind: EventKeyDown, Key: KeyF}))

	menu := &InputEvent{Kind: EventContextMenu}
	assert.True(t, fly.HandleEvent(menu))
	assert.True(t, menu.Prevented)
}

func TestFly_UpdateMovesOnGroundPlane(t *testing.T) {
	f, fly, _ := newFly(true)
	f.cam.Position = mgl32.Vec3{0, 5, 0}
	f.cam.Yaw, f.cam.Pitch = 0, -0.5
	in := &Input{}
	in.Pressed[KeyW] = true

	fly.Update(time.Second, in)
	assertVecInDelta(t, mgl32.Vec3{0, 5, 0}, f.cam.Position, 1e-6)

	fly.HandleEvent(rightDown(0, 0))
	fly.Update(time.Second, in)
	assertVecInDelta(t, mgl32.Vec3{0, 5, -f.cfg.Fly.BaseSpeed}, f.cam.Position, 1e-4)

	in.Pressed[KeyW] = false
	in.Pressed[KeyE] = true
	in.Pressed[KeyD] = true
	fly.Update(500*time.Millisecond, in)
	step := f.cfg.Fly.BaseSpeed * 0.5 / 1.41421356
	assertVecInDelta(t, mgl32.Vec3{step, 5 + step, -f.cfg.Fly.BaseSpeed}, f.cam.Position, 1e-4)
}
