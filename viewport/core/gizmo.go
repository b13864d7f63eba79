package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type GizmoKind int

const (
	GizmoTranslate GizmoKind = iota
	GizmoRotate
	GizmoScale
)

var GizmoKinds = [...]GizmoKind{GizmoTranslate, GizmoRotate, GizmoScale}

func (k GizmoKind) String() string {
	switch k {
	case GizmoTranslate:
		return "translate"
	case GizmoRotate:
		return "rotate"
	case GizmoScale:
		return "scale"
	}
	return "unknown"
}

type Part int

const (
	PartArrow Part = iota
	PartPlane
	PartFree
	PartArc
	PartSector
	PartCube
	PartEdge
	PartUniform
)

func (p Part) String() string {
	return [...]string{"arrow", "plane", "free", "arc", "sector", "cube", "edge", "uniform"}[p]
}

// Handle is one visible piece of a gizmo plus the larger invisible volume
// used to hit-test it.
type Handle struct {
	Tag      Axis
	Part     Part
	Mesh     Mesh
	Textured bool
	Hitbox   []Shape
}

type Gizmo struct {
	Kind    GizmoKind
	Handles []Handle
}

// Style sizes are in gizmo-local units where the axis length is 1.
type Style struct {
	AxisColors  [3]Color
	CenterColor Color

	ShaftRadius float32
	HeadLength  float32
	HeadRadius  float32
	PlaneOffset float32
	PlaneSize   float32
	FreeRadius  float32
	ArcRadius   float32
	ArcTube     float32
	SectorAlpha float32
	CubeSize    float32

	// HitboxScale multiplies the thickness of thin handles.
	HitboxScale float32
	Segments    int
}

func DefaultStyle() Style {
	return Style{
		AxisColors: [3]Color{
			{0.92, 0.22, 0.24, 1},
			{0.35, 0.82, 0.25, 1},
			{0.22, 0.45, 0.95, 1},
		},
		CenterColor: Color{0.85, 0.85, 0.85, 1},
		ShaftRadius: 0.015,
		HeadLength:  0.2,
		HeadRadius:  0.055,
		PlaneOffset: 0.35,
		PlaneSize:   0.15,
		FreeRadius:  0.08,
		ArcRadius:   1,
		ArcTube:     0.015,
		SectorAlpha: 0.22,
		CubeSize:    0.06,
		HitboxScale: 3.5,
		Segments:    24,
	}
}

func (s Style) axisColor(a Axis) Color {
	if i := a.Index(); i >= 0 {
		return s.AxisColors[i]
	}
	return s.CenterColor
}

func BuildGizmo(kind GizmoKind, st Style) *Gizmo {
	g := &Gizmo{Kind: kind}
	switch kind {
	case GizmoTranslate:
		g.Handles = translateHandles(st)
	case GizmoRotate:
		g.Handles = rotateHandles(st)
	case GizmoScale:
		g.Handles = scaleHandles(st)
	}
	return g
}

func translateHandles(st Style) []Handle {
	var hs []Handle
	thick := st.ShaftRadius * st.HitboxScale
	for _, a := range singleAxes {
		dir := a.Vector()
		c := st.axisColor(a)
		shaftEnd := dir.Mul(1 - st.HeadLength)

		mesh := CylinderMesh(mgl32.Vec3{}, shaftEnd, st.ShaftRadius, st.Segments, c)
		mesh.Append(ConeMesh(shaftEnd, dir, st.HeadRadius, st.Segments, c))
		hs = append(hs, Handle{
			Tag:  a,
			Part: PartArrow,
			Mesh: mesh,
			Hitbox: []Shape{
				Capsule{A: dir.Mul(st.FreeRadius), B: dir, Radius: max(thick, st.HeadRadius)},
			},
		})
	}
	for _, plane := range []Axis{AxisXY, AxisYZ, AxisXZ} {
		hs = append(hs, lCorner(plane, st, thick))
	}
	hs = append(hs, Handle{
		Tag:    AxisXYZ,
		Part:   PartFree,
		Mesh:   SphereMesh(mgl32.Vec3{}, st.FreeRadius, 12, st.Segments, st.CenterColor),
		Hitbox: []Shape{Sphere{Radius: st.FreeRadius * 1.5}},
	})
	return hs
}

// lCorner builds two short legs meeting at a corner offset from the origin.
// Each leg runs parallel to one of the plane's axes and takes its colour.
func lCorner(plane Axis, st Style, thick float32) Handle {
	axes := plane.Axes()
	u, v := axes[0].Vector(), axes[1].Vector()
	corner := u.Add(v).Mul(st.PlaneOffset)

	legU := corner.Sub(u.Mul(st.PlaneSize))
	legV := corner.Sub(v.Mul(st.PlaneSize))

	mesh := CylinderMesh(legU, corner, st.ShaftRadius, st.Segments/2, st.axisColor(axes[0]))
	mesh.Append(CylinderMesh(legV, corner, st.ShaftRadius, st.Segments/2, st.axisColor(axes[1])))

	inner := corner.Sub(u.Mul(st.PlaneSize)).Sub(v.Mul(st.PlaneSize))
	square := EmptyAABB().Extend(inner).Extend(corner)
	n := plane.Missing().Vector().Mul(thick * 0.5)
	square.Min = square.Min.Sub(n)
	square.Max = square.Max.Add(n)

	return Handle{
		Tag:  plane,
		Part: PartPlane,
		Mesh: mesh,
		Hitbox: []Shape{
			Capsule{A: legU, B: corner, Radius: thick},
			Capsule{A: legV, B: corner, Radius: thick},
			Box{Bounds: square},
		},
	}
}

func rotateHandles(st Style) []Handle {
	var hs []Handle
	thick := st.ArcTube * st.HitboxScale
	quarter := math32.Pi / 2
	for _, a := range singleAxes {
		e1, e2 := axisBasis(a)
		c := st.axisColor(a)

		hs = append(hs, Handle{
			Tag:  a,
			Part: PartArc,
			Mesh: TorusArcMesh(e1, e2, st.ArcRadius, st.ArcTube, 0, quarter, st.Segments, 8, c),
			Hitbox: []Shape{
				Polyline{Points: ArcPoints(e1, e2, st.ArcRadius, 0, quarter, st.Segments), Radius: thick},
			},
		})

		fill := c
		fill[3] = st.SectorAlpha
		hs = append(hs, Handle{
			Tag:      a,
			Part:     PartSector,
			Mesh:     SectorMesh(e1, e2, 0, st.ArcRadius, 0, quarter, st.Segments, fill),
			Textured: true,
			Hitbox: []Shape{
				SectorShape{E1: e1, E2: e2, Inner: 0, Outer: st.ArcRadius, A0: 0, A1: quarter},
			},
		})
	}
	return hs
}

func scaleHandles(st Style) []Handle {
	var hs []Handle
	thick := st.ShaftRadius * st.HitboxScale
	for _, a := range singleAxes {
		dir := a.Vector()
		c := st.axisColor(a)
		tip := dir.Mul(1 - st.CubeSize)
		half := mgl32.Vec3{st.CubeSize, st.CubeSize, st.CubeSize}

		mesh := CylinderMesh(mgl32.Vec3{}, tip, st.ShaftRadius, st.Segments, c)
		mesh.Append(BoxMesh(tip, half, c))
		hs = append(hs, Handle{
			Tag:  a,
			Part: PartCube,
			Mesh: mesh,
			Hitbox: []Shape{
				Capsule{A: dir.Mul(st.FreeRadius), B: tip, Radius: thick},
				Box{Bounds: BoxAround(tip, half.Mul(1.5))},
			},
		})
	}
	for _, plane := range []Axis{AxisXY, AxisYZ, AxisXZ} {
		axes := plane.Axes()
		u, v := axes[0].Vector(), axes[1].Vector()
		a := u.Mul(0.5).Add(v.Mul(0.2))
		b := u.Mul(0.2).Add(v.Mul(0.5))
		mid := a.Add(b).Mul(0.5)

		mesh := CylinderMesh(a, mid, st.ShaftRadius, st.Segments/2, st.axisColor(axes[0]))
		mesh.Append(CylinderMesh(mid, b, st.ShaftRadius, st.Segments/2, st.axisColor(axes[1])))
		hs = append(hs, Handle{
			Tag:    plane,
			Part:   PartEdge,
			Mesh:   mesh,
			Hitbox: []Shape{Capsule{A: a, B: b, Radius: thick}},
		})
	}
	hs = append(hs, Handle{
		Tag:    AxisXYZ,
		Part:   PartUniform,
		Mesh:   SphereMesh(mgl32.Vec3{}, st.FreeRadius, 12, st.Segments, st.CenterColor),
		Hitbox: []Shape{Sphere{Radius: st.FreeRadius * 1.5}},
	})
	return hs
}

// Pick tests r against every hitbox with the gizmo placed by model. A gizmo
// hit always reports distance zero and gizmo priority; the nearest handle
// inside the gizmo wins.
func (g *Gizmo) Pick(r Ray, model mgl32.Mat4) (Hit, bool) {
	local := r.Transform(model.Inv())
	l := local.Direction.Len()
	if l < epsilon {
		return Hit{}, false
	}
	local.Direction = local.Direction.Mul(1 / l)

	bestT := float32(math32.MaxFloat32)
	best := -1
	for i, h := range g.Handles {
		for _, s := range h.Hitbox {
			if t, ok := s.IntersectRay(local); ok && t < bestT {
				bestT = t
				best = i
			}
		}
	}
	if best < 0 {
		return Hit{}, false
	}
	return Hit{
		Layer:    LayerGizmo,
		Priority: PriorityGizmo,
		Distance: 0,
		Tag:      g.Handles[best].Tag,
		Handle:   best,
	}, true
}

// HandlesFor returns indices of every handle carrying tag.
func (g *Gizmo) HandlesFor(tag Axis) []int {
	var out []int
	for i, h := range g.Handles {
		if h.Tag == tag {
			out = append(out, i)
		}
	}
	return out
}
