package scenedit

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/scenedit/viewport/core"
)

type fakeHost struct {
	fakeLocker
	fakeCapturer
}

type editorFixture struct {
	app    *App
	editor *Editor
	input  *Input
	host   *fakeHost
	now    time.Time
}

func newEditorFixture(t *testing.T) *editorFixture {
	t.Helper()
	store := NewSceneStore()
	_, err := store.AddNode(NewNode("crate", "Crate", MeshPayload{Geometry: GeometryBox, Size: mgl32.Vec3{1, 1, 1}}))
	require.NoError(t, err)
	store.Select("crate")
	store.SetTransformMode(ModeTranslate)

	f := &editorFixture{host: &fakeHost{fakeLocker: fakeLocker{grant: true}}, now: time.Unix(1000, 0)}
	f.app = NewAppBuilder().
		UseModule(
			InputModule{},
			TimeModule{Now: func() time.Time { return f.now }},
			EditorModule{Store: store, Host: f.host},
		).
		Build()
	f.editor = MustResource[Editor](f.app)
	f.input = MustResource[Input](f.app)
	f.input.WindowWidth, f.input.WindowHeight = 800, 600
	t.Cleanup(f.editor.Close)

	f.step()
	return f
}

func (f *editorFixture) step() {
	f.now = f.now.Add(50 * time.Millisecond)
	f.app.Step()
}

func (f *editorFixture) crate(t *testing.T) Transform {
	t.Helper()
	n, ok := f.editor.Store.Snapshot().Node("crate")
	require.True(t, ok)
	return n.Transform
}

func TestEditor_PlacesGizmoOnMountedSelection(t *testing.T) {
	f := newEditorFixture(t)
	assert.True(t, f.editor.Mounter.Mounted("crate"))
	assert.True(t, f.editor.Gizmo.Visible)
	assert.Equal(t, "crate", f.editor.Gizmo.Target)
	assert.InDelta(t, 800.0/600.0, float64(f.editor.Camera.Aspect), 1e-6)
}

func TestEditor_DragXHandleCommitsOnRelease(t *testing.T) {
	f := newEditorFixture(t)
	g := f.editor.Gizmo
	x, y, ok := f.editor.Camera.Project(mgl32.Vec3{0.7 * g.Size, 0, 0}, 800, 600)
	require.True(t, ok)
	hit, ok := g.Pick(f.editor.Camera.ScreenRay(x, y, 800, 600))
	require.True(t, ok)
	require.Equal(t, core.AxisX, hit.Tag)

	f.input.Push(InputEvent{Kind: EventPointerDown, Button: MouseButtonLeft, PointerID: 1, X: x, Y: y})
	f.input.Push(InputEvent{Kind: EventPointerMove, PointerID: 1, X: x + 60, Y: y})
	f.step()

	assert.True(t, f.editor.Arbitration.Dragging.Value())
	assert.False(t, f.editor.Orbit.Enabled())
	assert.Equal(t, core.AxisX, g.Active)
	assert.Equal(t, mgl32.Vec3{}, f.crate(t).Position, "nothing is committed mid-drag")
	live, ok := f.editor.Registry.Get("crate")
	require.True(t, ok)
	assert.Greater(t, live.Position.X(), float32(0.01))

	f.input.Push(InputEvent{Kind: EventPointerUp, Button: MouseButtonLeft, PointerID: 1, X: x + 60, Y: y})
	f.step()

	committed := f.crate(t).Position
	assert.Greater(t, committed.X(), float32(0.01))
	assert.InDelta(t, 0, committed.Y(), 1e-5)
	assert.InDelta(t, 0, committed.Z(), 1e-5)
	assert.False(t, f.editor.Arbitration.Dragging.Value())
	assert.True(t, f.editor.Orbit.Enabled())
	assert.Equal(t, core.AxisNone, g.Active)
	assert.Equal(t, []string{"crate"}, f.editor.Store.Snapshot().Selection(), "a handle drag is not a click")
}

func TestEditor_FlyMovesCameraWhileRightHeld(t *testing.T) {
	f := newEditorFixture(t)
	start := f.editor.Camera.Position

	f.input.Push(InputEvent{Kind: EventPointerDown, Button: MouseButtonRight, PointerID: 1, X: 400, Y: 300})
	f.input.Push(InputEvent{Kind: EventKeyDown, Key: KeyW})
	f.step()
	f.step()

	assert.True(t, f.editor.Fly.Flying())
	assert.Equal(t, 1, f.host.requests)
	moved := f.editor.Camera.Position.Sub(start)
	assert.Greater(t, moved.Len(), float32(0))
	assert.InDelta(t, 0, moved.Y(), 1e-5, "forward motion stays on the ground plane")
	assert.Less(t, moved.Z(), float32(0))

	f.input.Push(InputEvent{Kind: EventKeyUp, Key: KeyW})
	f.input.Push(InputEvent{Kind: EventPointerUp, Button: MouseButtonRight, PointerID: 1, X: 400, Y: 300})
	f.step()
	assert.False(t, f.editor.Fly.Flying())
	assert.True(t, f.editor.Orbit.Enabled())
	assert.Equal(t, 1, f.host.exits)

	// Nothing was clicked, so the selection survives.
	assert.Equal(t, []string{"crate"}, f.editor.Store.Snapshot().Selection())
}

func TestEditor_ShortcutsSwitchModes(t *testing.T) {
	f := newEditorFixture(t)
	f.input.Push(InputEvent{Kind: EventKeyDown, Key: KeyE})
	f.step()
	assert.Equal(t, ModeRotate, f.editor.Store.Snapshot().Mode())
	assert.Equal(t, core.GizmoRotate, f.editor.Gizmo.Kind)
}

func TestEditor_CloseResetsFlags(t *testing.T) {
	f := newEditorFixture(t)
	f.input.Push(InputEvent{Kind: EventPointerDown, Button: MouseButtonRight, PointerID: 1, X: 400, Y: 300})
	f.step()
	require.True(t, f.editor.Arbitration.Flying.Value())

	f.editor.Close()
	assert.False(t, f.editor.Arbitration.Flying.Value())
	assert.False(t, f.editor.Arbitration.Dragging.Value())
	assert.True(t, f.editor.Orbit.Enabled())
	assert.Equal(t, 1, f.host.exits)

	f.input.Push(InputEvent{Kind: EventPointerDown, Button: MouseButtonRight, PointerID: 1, X: 400, Y: 300})
	f.step()
	assert.False(t, f.editor.Fly.Flying(), "handlers are unrouted")
}

func TestEditor_HidingSelectionHidesGizmo(t *testing.T) {
	f := newEditorFixture(t)
	require.True(t, f.editor.Gizmo.Visible)

	require.NoError(t, f.editor.Store.SetHidden("crate", true))
	f.step()
	assert.False(t, f.editor.Mounter.Mounted("crate"))
	assert.False(t, f.editor.Gizmo.Visible)
	assert.Empty(t, f.editor.Gizmo.Target)

	// A press where the handle used to be is an ordinary click again.
	x, y, ok := f.editor.Camera.Project(mgl32.Vec3{0.7 * f.editor.Gizmo.Size, 0, 0}, 800, 600)
	require.True(t, ok)
	f.input.Push(InputEvent{Kind: EventPointerDown, Button: MouseButtonLeft, PointerID: 1, X: x, Y: y})
	f.input.Push(InputEvent{Kind: EventPointerUp, Button: MouseButtonLeft, PointerID: 1, X: x, Y: y})
	f.step()
	assert.Empty(t, f.editor.Store.Snapshot().Selection())

	require.NoError(t, f.editor.Store.SetHidden("crate", false))
	f.editor.Store.Select("crate")
	f.step()
	assert.True(t, f.editor.Gizmo.Visible)
	assert.Equal(t, "crate", f.editor.Gizmo.Target)
}
