package scenedit

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FocusAnimator frames a node: it moves the camera back along its current
// view direction until the node's bounds fit, and eases the orbit pivot onto
// the node's center. The animation advances from the frame clock, so a new
// request or fly mode simply replaces or cancels it.
type FocusAnimator struct {
	cam      *Camera
	orbit    *OrbitController
	registry *RenderableRegistry
	store    *SceneStore
	cfg      *Config

	active     bool
	elapsed    time.Duration
	duration   time.Duration
	fromPos    mgl32.Vec3
	toPos      mgl32.Vec3
	fromTarget mgl32.Vec3
	toTarget   mgl32.Vec3

	unsubscribe func()
}

func NewFocusAnimator(cam *Camera, orbit *OrbitController, registry *RenderableRegistry, store *SceneStore, arb *InputArbitration, cfg *Config) *FocusAnimator {
	f := &FocusAnimator{
		cam:      cam,
		orbit:    orbit,
		registry: registry,
		store:    store,
		cfg:      cfg,
	}
	f.unsubscribe = arb.Flying.Subscribe(func(flying bool) {
		if flying {
			f.Cancel()
		}
	})
	return f
}

func (f *FocusAnimator) Active() bool { return f.active }

func (f *FocusAnimator) Cancel() { f.active = false }

// Close cancels any animation and stops listening for fly mode.
func (f *FocusAnimator) Close() {
	f.Cancel()
	if f.unsubscribe != nil {
		f.unsubscribe()
		f.unsubscribe = nil
	}
}

// FitDistance is how far from a box of the given largest dimension the
// camera must be for it to fill the view with padding.
func FitDistance(maxDim, fovDeg float32, cfg FocusConfig) float32 {
	half := math32.Tan(mgl32.DegToRad(fovDeg) / 2)
	d := maxDim / (2 * half) * cfg.Padding
	return math32.Max(d, cfg.MinDistance)
}

// Focus starts framing id, replacing any animation in flight. A mounted
// node is framed by its world bounds; otherwise the stored transform is
// used with a fixed distance. It reports false only when id is unknown.
func (f *FocusAnimator) Focus(id string) bool {
	center, dist, ok := f.frame(id)
	if !ok {
		return false
	}

	dir := f.cam.Forward()
	f.fromPos = f.cam.Position
	f.fromTarget = f.orbit.Target()
	f.toTarget = center
	f.toPos = center.Sub(dir.Mul(dist))
	f.elapsed = 0
	f.duration = f.cfg.Focus.Duration()
	f.active = true
	if f.duration <= 0 {
		f.Update(0)
	}
	return true
}

func (f *FocusAnimator) frame(id string) (mgl32.Vec3, float32, bool) {
	snap := f.store.Snapshot()
	if node, ok := f.registry.Get(id); ok && snap.Has(id) {
		box := node.WorldAABB()
		if !box.IsEmpty() {
			return box.Center(), FitDistance(box.MaxDimension(), f.cam.Fov, f.cfg.Focus), true
		}
		return node.WorldPosition(), f.cfg.Focus.FallbackDistance, true
	}
	pos, _, _, ok := snap.WorldTransform(id)
	if !ok {
		return mgl32.Vec3{}, 0, false
	}
	return pos, f.cfg.Focus.FallbackDistance, true
}

// Update advances the animation by dt.
func (f *FocusAnimator) Update(dt time.Duration) {
	if !f.active {
		return
	}
	f.elapsed += dt
	t := float32(1)
	if f.duration > 0 {
		t = mgl32.Clamp(float32(f.elapsed)/float32(f.duration), 0, 1)
	}
	k := easeOutCubic(t)
	f.cam.Position = lerpVec3(f.fromPos, f.toPos, k)
	f.orbit.SetTarget(lerpVec3(f.fromTarget, f.toTarget, k))
	if t >= 1 {
		f.active = false
	}
}

func easeOutCubic(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func focusSystem(f *FocusAnimator, t *Time) {
	f.Update(t.Dt)
}
