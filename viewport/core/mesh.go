package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Color [4]float32

// Mesh is an indexed triangle list in gizmo-local units.
type Mesh struct {
	Positions []mgl32.Vec3
	UVs       []mgl32.Vec2
	Colors    []Color
	Indices   []uint32
}

func (m *Mesh) VertexCount() int { return len(m.Positions) }

func (m *Mesh) addVertex(p mgl32.Vec3, uv mgl32.Vec2, c Color) uint32 {
	m.Positions = append(m.Positions, p)
	m.UVs = append(m.UVs, uv)
	m.Colors = append(m.Colors, c)
	return uint32(len(m.Positions) - 1)
}

// Append merges o into m, rebasing its indices.
func (m *Mesh) Append(o Mesh) {
	base := uint32(len(m.Positions))
	m.Positions = append(m.Positions, o.Positions...)
	m.UVs = append(m.UVs, o.UVs...)
	m.Colors = append(m.Colors, o.Colors...)
	for _, i := range o.Indices {
		m.Indices = append(m.Indices, base+i)
	}
}

func (m *Mesh) Bounds() AABB {
	b := EmptyAABB()
	for _, p := range m.Positions {
		b = b.Extend(p)
	}
	return b
}

// planeBasis returns two unit vectors spanning the plane perpendicular to a,
// ordered so that e1 x e2 == a.
func planeBasis(a mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	ref := mgl32.Vec3{0, 1, 0}
	if math32.Abs(a.Dot(ref)) > 0.9 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	e1 := ref.Cross(a).Normalize()
	e2 := a.Cross(e1).Normalize()
	return e1, e2
}

// axisBasis is the positive quadrant basis for a single gizmo axis:
// X spans (Y, Z), Y spans (Z, X), Z spans (X, Y).
func axisBasis(a Axis) (mgl32.Vec3, mgl32.Vec3) {
	switch a {
	case AxisX:
		return AxisY.Vector(), AxisZ.Vector()
	case AxisY:
		return AxisZ.Vector(), AxisX.Vector()
	default:
		return AxisX.Vector(), AxisY.Vector()
	}
}

func CylinderMesh(a, b mgl32.Vec3, radius float32, segments int, c Color) Mesh {
	var m Mesh
	axis := b.Sub(a).Normalize()
	e1, e2 := planeBasis(axis)
	for i := 0; i <= segments; i++ {
		t := float32(i) / float32(segments)
		s, co := math32.Sincos(t * 2 * math32.Pi)
		off := e1.Mul(co * radius).Add(e2.Mul(s * radius))
		m.addVertex(a.Add(off), mgl32.Vec2{t, 0}, c)
		m.addVertex(b.Add(off), mgl32.Vec2{t, 1}, c)
	}
	for i := 0; i < segments; i++ {
		i0 := uint32(i * 2)
		m.Indices = append(m.Indices, i0, i0+2, i0+1, i0+1, i0+2, i0+3)
	}
	return m
}

func ConeMesh(base, tip mgl32.Vec3, radius float32, segments int, c Color) Mesh {
	var m Mesh
	axis := tip.Sub(base).Normalize()
	e1, e2 := planeBasis(axis)
	apex := m.addVertex(tip, mgl32.Vec2{0.5, 1}, c)
	center := m.addVertex(base, mgl32.Vec2{0.5, 0}, c)
	first := uint32(len(m.Positions))
	for i := 0; i <= segments; i++ {
		t := float32(i) / float32(segments)
		s, co := math32.Sincos(t * 2 * math32.Pi)
		m.addVertex(base.Add(e1.Mul(co*radius)).Add(e2.Mul(s*radius)), mgl32.Vec2{t, 0}, c)
	}
	for i := uint32(0); i < uint32(segments); i++ {
		m.Indices = append(m.Indices, first+i, first+i+1, apex)
		m.Indices = append(m.Indices, first+i+1, first+i, center)
	}
	return m
}

func SphereMesh(center mgl32.Vec3, radius float32, rings, segments int, c Color) Mesh {
	var m Mesh
	for r := 0; r <= rings; r++ {
		v := float32(r) / float32(rings)
		phi := v * math32.Pi
		sp, cp := math32.Sincos(phi)
		for s := 0; s <= segments; s++ {
			u := float32(s) / float32(segments)
			st, ct := math32.Sincos(u * 2 * math32.Pi)
			p := mgl32.Vec3{sp * ct, cp, sp * st}
			m.addVertex(center.Add(p.Mul(radius)), mgl32.Vec2{u, v}, c)
		}
	}
	stride := uint32(segments + 1)
	for r := uint32(0); r < uint32(rings); r++ {
		for s := uint32(0); s < uint32(segments); s++ {
			i0 := r*stride + s
			i1 := i0 + stride
			m.Indices = append(m.Indices, i0, i1, i0+1, i0+1, i1, i1+1)
		}
	}
	return m
}

func BoxMesh(center, half mgl32.Vec3, c Color) Mesh {
	var m Mesh
	faces := [6][3]mgl32.Vec3{
		{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
		{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
	}
	scale := func(v mgl32.Vec3) mgl32.Vec3 {
		return mgl32.Vec3{v.X() * half.X(), v.Y() * half.Y(), v.Z() * half.Z()}
	}
	for _, f := range faces {
		n, u, v := scale(f[0]), scale(f[1]), scale(f[2])
		base := uint32(len(m.Positions))
		m.addVertex(center.Add(n).Sub(u).Sub(v), mgl32.Vec2{0, 0}, c)
		m.addVertex(center.Add(n).Add(u).Sub(v), mgl32.Vec2{1, 0}, c)
		m.addVertex(center.Add(n).Add(u).Add(v), mgl32.Vec2{1, 1}, c)
		m.addVertex(center.Add(n).Sub(u).Add(v), mgl32.Vec2{0, 1}, c)
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// SectorMesh is a filled annular sector in the plane spanned by e1 and e2,
// from angle a0 to a1 measured from e1 towards e2. UVs are the planar
// coordinates over the outer radius so a grid texture tiles evenly.
func SectorMesh(e1, e2 mgl32.Vec3, inner, outer, a0, a1 float32, segments int, c Color) Mesh {
	var m Mesh
	for i := 0; i <= segments; i++ {
		a := a0 + (a1-a0)*float32(i)/float32(segments)
		s, co := math32.Sincos(a)
		dir := e1.Mul(co).Add(e2.Mul(s))
		pi := dir.Mul(inner)
		po := dir.Mul(outer)
		m.addVertex(pi, mgl32.Vec2{co * inner / outer, s * inner / outer}, c)
		m.addVertex(po, mgl32.Vec2{co, s}, c)
	}
	for i := 0; i < segments; i++ {
		i0 := uint32(i * 2)
		m.Indices = append(m.Indices, i0, i0+1, i0+2, i0+2, i0+1, i0+3)
		// Back face, the sector is visible from both sides.
		m.Indices = append(m.Indices, i0, i0+2, i0+1, i0+2, i0+3, i0+1)
	}
	return m
}

// ArcPoints samples the arc of the given radius from a0 to a1.
func ArcPoints(e1, e2 mgl32.Vec3, radius, a0, a1 float32, segments int) []mgl32.Vec3 {
	pts := make([]mgl32.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := a0 + (a1-a0)*float32(i)/float32(segments)
		s, co := math32.Sincos(a)
		pts = append(pts, e1.Mul(co*radius).Add(e2.Mul(s*radius)))
	}
	return pts
}

// TorusArcMesh sweeps a tube of radius tube along an arc.
func TorusArcMesh(e1, e2 mgl32.Vec3, radius, tube, a0, a1 float32, segments, sides int, c Color) Mesh {
	var m Mesh
	normal := e1.Cross(e2).Normalize()
	for i := 0; i <= segments; i++ {
		t := float32(i) / float32(segments)
		s, co := math32.Sincos(a0 + (a1-a0)*t)
		radial := e1.Mul(co).Add(e2.Mul(s))
		center := radial.Mul(radius)
		for j := 0; j <= sides; j++ {
			u := float32(j) / float32(sides)
			ss, cc := math32.Sincos(u * 2 * math32.Pi)
			off := radial.Mul(cc * tube).Add(normal.Mul(ss * tube))
			m.addVertex(center.Add(off), mgl32.Vec2{t, u}, c)
		}
	}
	stride := uint32(sides + 1)
	for i := uint32(0); i < uint32(segments); i++ {
		for j := uint32(0); j < uint32(sides); j++ {
			i0 := i*stride + j
			i1 := i0 + stride
			m.Indices = append(m.Indices, i0, i1, i0+1, i0+1, i1, i1+1)
		}
	}
	return m
}
