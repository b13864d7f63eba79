package scenedit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/scenedit/viewport/core"
)

type selectFixture struct {
	*dragFixture
	input    *Input
	cfg      *Config
	gizmo    *TransformGizmo
	selector *ClickSelector
}

func newSelectFixture(t *testing.T) *selectFixture {
	t.Helper()
	f := &selectFixture{dragFixture: newDragFixture(t), input: &Input{WindowWidth: 800, WindowHeight: 600}, cfg: DefaultConfig()}
	f.cam.Position = mgl32.Vec3{0, 0, 10}
	f.cam.LookAt(mgl32.Vec3{})
	f.cam.Aspect = 800.0 / 600.0
	f.gizmo = NewTransformGizmo(f.cfg.Gizmo)
	f.selector = NewClickSelector(f.store, f.registry, f.gizmo, f.cam, f.input, f.cfg)
	return f
}

func (f *selectFixture) cube(t *testing.T, id string, pos mgl32.Vec3) {
	tr := IdentityTransform()
	tr.Position = pos
	r := f.addCube(t, id, "", tr)
	r.Bounds = core.BoxAround(mgl32.Vec3{}, mgl32.Vec3{0.5, 0.5, 0.5})
}

func (f *selectFixture) click(x, y, dx, dy float64) bool {
	down := &InputEvent{Kind: EventPointerDown, Button: MouseButtonLeft, PointerID: 1, X: x, Y: y}
	up := &InputEvent{Kind: EventPointerUp, Button: MouseButtonLeft, PointerID: 1, X: x + dx, Y: y + dy}
	return f.selector.HandleEvent(down) || f.selector.HandleEvent(up)
}

func (f *selectFixture) screen(t *testing.T, p mgl32.Vec3) (float64, float64) {
	x, y, ok := f.cam.Project(p, f.input.WindowWidth, f.input.WindowHeight)
	require.True(t, ok)
	return x, y
}

func TestClickSelector_SelectsNearest(t *testing.T) {
	f := newSelectFixture(t)
	f.cube(t, "near", mgl32.Vec3{0, 0, 2})
	f.cube(t, "far", mgl32.Vec3{0, 0, -2})

	assert.False(t, f.click(400, 300, 0, 0), "clicks are never consumed")
	assert.Equal(t, []string{"near"}, f.store.Snapshot().Selection())
}

func TestClickSelector_DragIsNotAClick(t *testing.T) {
	f := newSelectFixture(t)
	f.cube(t, "cube", mgl32.Vec3{})

	f.click(400, 300, 30, 0)
	assert.Empty(t, f.store.Snapshot().Selection())

	f.click(400, 300, 2, 2)
	assert.Equal(t, []string{"cube"}, f.store.Snapshot().Selection())
}

func TestClickSelector_MissClears(t *testing.T) {
	f := newSelectFixture(t)
	f.cube(t, "cube", mgl32.Vec3{})
	f.store.Select("cube")

	f.click(5, 5, 0, 0)
	assert.Empty(t, f.store.Snapshot().Selection())
}

func TestClickSelector_SkipsHiddenAndLocked(t *testing.T) {
	f := newSelectFixture(t)
	f.cube(t, "front", mgl32.Vec3{0, 0, 2})
	f.cube(t, "back", mgl32.Vec3{0, 0, -2})
	require.NoError(t, f.store.SetLocked("front", true))

	f.click(400, 300, 0, 0)
	assert.Equal(t, []string{"back"}, f.store.Snapshot().Selection())

	require.NoError(t, f.store.SetHidden("back", true))
	_, ok := f.selector.PickScene(f.cam.ScreenRay(400, 300, 800, 600))
	assert.False(t, ok)
}

func TestClickSelector_GizmoOutranksScene(t *testing.T) {
	f := newSelectFixture(t)
	f.cube(t, "target", mgl32.Vec3{})
	f.store.Select("target")
	f.store.SetTransformMode(ModeTranslate)
	require.True(t, f.gizmo.Place(f.store.Snapshot(), f.registry, f.cam, f.cfg.Gizmo.SizeFactor))

	onShaft := mgl32.Vec3{0.7 * f.gizmo.Size, 0, 0}
	ray := f.rayTo(onShaft)
	hit, ok := f.gizmo.Pick(ray)
	require.True(t, ok)
	require.Equal(t, core.AxisX, hit.Tag)

	// Something selectable sits right behind the handle.
	f.cube(t, "behind", ray.At(14))
	_, ok = f.selector.PickScene(ray)
	require.True(t, ok)

	x, y := f.screen(t, onShaft)
	f.click(x, y, 0, 0)
	assert.Equal(t, []string{"target"}, f.store.Snapshot().Selection())
}

func TestClickSelector_IgnoresOtherButtons(t *testing.T) {
	f := newSelectFixture(t)
	f.cube(t, "cube", mgl32.Vec3{})
	f.selector.HandleEvent(&InputEvent{Kind: EventPointerDown, Button: MouseButtonRight, X: 400, Y: 300})
	f.selector.HandleEvent(&InputEvent{Kind: EventPointerUp, Button: MouseButtonRight, X: 400, Y: 300})
	assert.Empty(t, f.store.Snapshot().Selection())
}
