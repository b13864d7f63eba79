package scenedit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/scenedit/viewport/core"
)

func newMountFixture(t *testing.T) (*SceneStore, *RenderableRegistry, *Mounter) {
	t.Helper()
	store := newTree(t)
	registry := NewRenderableRegistry()
	m := NewMounter(registry, store, NewNopLogger())
	t.Cleanup(m.Close)
	return store, registry, m
}

func TestMounter_MountsVisibleTree(t *testing.T) {
	_, registry, m := newMountFixture(t)
	assert.Equal(t, 4, registry.Len())
	for _, id := range []string{"root", "a", "b", "other"} {
		assert.True(t, m.Mounted(id), id)
	}
	b, _ := registry.Get("b")
	a, _ := registry.Get("a")
	require.NotNil(t, b.Parent)
	assert.Same(t, a, b.Parent)
}

func TestMounter_HiddenSubtreeUnmounts(t *testing.T) {
	store, registry, m := newMountFixture(t)
	require.NoError(t, store.SetHidden("a", true))
	assert.False(t, m.Mounted("a"))
	assert.False(t, m.Mounted("b"), "children of hidden nodes are not drawn")
	_, ok := registry.Get("b")
	assert.False(t, ok)

	require.NoError(t, store.SetHidden("a", false))
	assert.True(t, m.Mounted("b"))
}

func TestMounter_RemoveAndReparent(t *testing.T) {
	store, registry, m := newMountFixture(t)
	require.NoError(t, store.Reparent("b", "other", -1))
	b, _ := registry.Get("b")
	other, _ := registry.Get("other")
	assert.Same(t, other, b.Parent)

	require.NoError(t, store.RemoveNode("other"))
	assert.False(t, m.Mounted("other"))
	assert.False(t, m.Mounted("b"))
	assert.Equal(t, 2, registry.Len())
}

func TestMounter_KeepsUncommittedDrag(t *testing.T) {
	store, registry, _ := newMountFixture(t)
	a, _ := registry.Get("a")
	a.Position = mgl32.Vec3{7, 0, 0}

	require.NoError(t, store.Rename("other", "unrelated"))
	store.Select("root")
	assert.Equal(t, mgl32.Vec3{7, 0, 0}, a.Position, "untouched record leaves the live transform alone")

	tr := IdentityTransform()
	tr.Position = mgl32.Vec3{1, 2, 3}
	tr.Rotation = mgl32.Vec3{0, 0.5, 0}
	require.NoError(t, store.CommitTransform("a", tr))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, a.Position)
	assert.InDelta(t, 1, float64(abs32(a.Rotation.Dot(core.EulerToQuat(tr.Rotation)))), 1e-6)
}

func TestMounter_CloseUnmountsAll(t *testing.T) {
	store, registry, m := newMountFixture(t)
	m.Close()
	assert.Zero(t, registry.Len())
	_, err := store.AddNode(NewNode("late", "late", nil))
	require.NoError(t, err)
	assert.False(t, m.Mounted("late"))
}

func TestPayloadBounds(t *testing.T) {
	box := PayloadBounds(MeshPayload{Geometry: GeometryBox, Size: mgl32.Vec3{2, 4, 6}})
	assert.Equal(t, mgl32.Vec3{2, 4, 6}, box.Size())

	sphere := PayloadBounds(MeshPayload{Geometry: GeometrySphere, Size: mgl32.Vec3{2, 9, 9}})
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, sphere.Size())

	plane := PayloadBounds(MeshPayload{Geometry: GeometryPlane, Size: mgl32.Vec3{10, 3, 10}})
	assert.Equal(t, float32(0), plane.Size().Y())
	assert.False(t, plane.IsEmpty())

	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, PayloadBounds(LightPayload{}).Size())
	assert.True(t, PayloadBounds(GroupPayload{}).IsEmpty())
	assert.True(t, PayloadBounds(EnvironmentPayload{}).IsEmpty())
}
