package core

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func down(x, z float32) Ray {
	return Ray{Origin: mgl32.Vec3{x, 5, z}, Direction: mgl32.Vec3{0, -1, 0}}
}

func TestBuildGizmo_HandleSets(t *testing.T) {
	st := DefaultStyle()

	tr := BuildGizmo(GizmoTranslate, st)
	require.Len(t, tr.Handles, 7)
	assert.Len(t, tr.HandlesFor(AxisX), 1)
	assert.Len(t, tr.HandlesFor(AxisXY), 1)
	assert.Len(t, tr.HandlesFor(AxisXYZ), 1)

	rot := BuildGizmo(GizmoRotate, st)
	require.Len(t, rot.Handles, 6)
	for _, i := range rot.HandlesFor(AxisY) {
		assert.Contains(t, []Part{PartArc, PartSector}, rot.Handles[i].Part)
	}

	sc := BuildGizmo(GizmoScale, st)
	require.Len(t, sc.Handles, 7)

	for _, g := range []*Gizmo{tr, rot, sc} {
		for _, h := range g.Handles {
			assert.NotEmpty(t, h.Hitbox, "%s %s handle has no hitbox", g.Kind, h.Tag)
			assert.NotZero(t, h.Mesh.VertexCount())
			assert.Equal(t, 0, len(h.Mesh.Indices)%3)
		}
	}
}

func TestGizmo_HitboxThickerThanVisual(t *testing.T) {
	st := DefaultStyle()
	g := BuildGizmo(GizmoTranslate, st)
	x := g.Handles[g.HandlesFor(AxisX)[0]]

	// Just outside the visual shaft but inside the hitbox.
	_, visual := RayCapsule(down(0.5, st.ShaftRadius*2), mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, st.ShaftRadius)
	assert.False(t, visual)
	_, ok := x.Hitbox[0].IntersectRay(down(0.5, st.ShaftRadius*2))
	assert.True(t, ok)
}

func TestGizmo_PickTranslate(t *testing.T) {
	g := BuildGizmo(GizmoTranslate, DefaultStyle())

	hit, ok := g.Pick(down(0.6, 0), mgl32.Ident4())
	require.True(t, ok)
	assert.Equal(t, AxisX, hit.Tag)
	assert.Equal(t, LayerGizmo, hit.Layer)
	assert.Equal(t, float32(0), hit.Distance)
	assert.Equal(t, PriorityGizmo, hit.Priority)

	hit, ok = g.Pick(down(0.3, 0.3), mgl32.Ident4())
	require.True(t, ok)
	assert.Equal(t, AxisXZ, hit.Tag)

	eye := mgl32.Vec3{3, 3, 3}
	hit, ok = g.Pick(RayThrough(eye, mgl32.Vec3{}), mgl32.Ident4())
	require.True(t, ok)
	assert.Equal(t, AxisXYZ, hit.Tag)

	_, ok = g.Pick(down(3, 3), mgl32.Ident4())
	assert.False(t, ok)
}

func TestGizmo_PickFollowsModelMatrix(t *testing.T) {
	g := BuildGizmo(GizmoTranslate, DefaultStyle())
	model := ModelMatrix(mgl32.Vec3{10, 0, 0}, mgl32.QuatIdent(), 2)

	_, ok := g.Pick(down(0.6, 0), model)
	assert.False(t, ok)

	hit, ok := g.Pick(down(11.2, 0), model)
	require.True(t, ok)
	assert.Equal(t, AxisX, hit.Tag)

	// Rotated a quarter turn about Y, the local X arrow points along world -Z.
	model = ModelMatrix(mgl32.Vec3{}, mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}), 1)
	hit, ok = g.Pick(down(0, -0.6), model)
	require.True(t, ok)
	assert.Equal(t, AxisX, hit.Tag)
}

func TestGizmo_PickRotateSector(t *testing.T) {
	g := BuildGizmo(GizmoRotate, DefaultStyle())
	hit, ok := g.Pick(down(0.5, 0.5), mgl32.Ident4())
	require.True(t, ok)
	assert.Equal(t, AxisY, hit.Tag)
	assert.Equal(t, PartSector, g.Handles[hit.Handle].Part)

	// Quarter arcs only cover the positive quadrant.
	_, ok = g.Pick(down(-0.5, -0.5), mgl32.Ident4())
	assert.False(t, ok)
}

func TestGizmo_PickScale(t *testing.T) {
	g := BuildGizmo(GizmoScale, DefaultStyle())
	hit, ok := g.Pick(down(0.94, 0), mgl32.Ident4())
	require.True(t, ok)
	assert.Equal(t, AxisX, hit.Tag)

	hit, ok = g.Pick(RayThrough(mgl32.Vec3{3, 3, 3}, mgl32.Vec3{}), mgl32.Ident4())
	require.True(t, ok)
	assert.Equal(t, AxisXYZ, hit.Tag)
	assert.Equal(t, PartUniform, g.Handles[hit.Handle].Part)
}

func TestResolve_GizmoWinsOverCloserScene(t *testing.T) {
	hits := []Hit{
		{Layer: LayerScene, Priority: PriorityScene, Distance: 0.5, ID: "near"},
		{Layer: LayerScene, Priority: PriorityScene, Distance: 3, ID: "far"},
		{Layer: LayerGizmo, Priority: PriorityGizmo, Distance: 0, Tag: AxisY},
	}
	best, ok := Resolve(hits)
	require.True(t, ok)
	assert.Equal(t, LayerGizmo, best.Layer)

	best, ok = Resolve(hits[:2])
	require.True(t, ok)
	assert.Equal(t, "near", best.ID)

	_, ok = Resolve(nil)
	assert.False(t, ok)
}

func TestAxis_Helpers(t *testing.T) {
	assert.Equal(t, "XZ", AxisXZ.String())
	assert.Equal(t, AxisY, AxisXZ.Missing())
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, AxisXZ.Mask())
	assert.True(t, AxisX.IsSingle())
	assert.True(t, AxisYZ.IsPlane())
	assert.True(t, AxisXYZ.IsAll())
	assert.Equal(t, 2, AxisZ.Index())

	a, ok := ParseAxis("yz")
	require.True(t, ok)
	assert.Equal(t, AxisYZ, a)
	_, ok = ParseAxis("w")
	assert.False(t, ok)
}

func TestGridTexture(t *testing.T) {
	fill := color.RGBA{40, 40, 40, 255}
	line := color.RGBA{200, 200, 200, 255}
	img := GridTexture(64, 8, fill, line)

	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, line, img.RGBAAt(0, 5))
	assert.Equal(t, line, img.RGBAAt(8, 3))
	assert.Equal(t, fill, img.RGBAAt(4, 4))
}
