package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-6

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// RayThrough builds a normalized ray from origin towards target.
func RayThrough(origin, target mgl32.Vec3) Ray {
	return Ray{Origin: origin, Direction: target.Sub(origin).Normalize()}
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform maps the ray through m. The direction is not renormalized, so
// parameters along the result stay comparable to parameters along r.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	return Ray{
		Origin:    m.Mul4x1(r.Origin.Vec4(1)).Vec3(),
		Direction: m.Mul4x1(r.Direction.Vec4(0)).Vec3(),
	}
}

// Plane is the set of points p with Normal.Dot(p) + D == 0.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// PlaneFromPoint returns the plane with the given normal passing through p.
func PlaneFromPoint(normal, p mgl32.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, D: -n.Dot(p)}
}

func (p Plane) Distance(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.D
}

// IntersectRay reports the hit point of r on the plane. Rays parallel to the
// plane or pointing away from it report no intersection.
func (p Plane) IntersectRay(r Ray) (mgl32.Vec3, bool) {
	denom := p.Normal.Dot(r.Direction)
	if math32.Abs(denom) < epsilon {
		return mgl32.Vec3{}, false
	}
	t := -(p.Normal.Dot(r.Origin) + p.D) / denom
	if t < 0 || isBad(t) {
		return mgl32.Vec3{}, false
	}
	return r.At(t), true
}

// ProjectVector removes the component of v along the plane normal.
func (p Plane) ProjectVector(v mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(p.Normal.Mul(p.Normal.Dot(v)))
}

type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyAABB returns an inverted box that any Extend call will overwrite.
func EmptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func BoxAround(center, half mgl32.Vec3) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

func (b AABB) IsEmpty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

func (b AABB) Extend(p mgl32.Vec3) AABB {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

func (b AABB) Union(o AABB) AABB {
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b AABB) Size() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

func (b AABB) MaxDimension() float32 {
	s := b.Size()
	return max(s.X(), s.Y(), s.Z())
}

// Transform returns the world-aligned box enclosing all eight corners of b under m.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	if b.IsEmpty() {
		return b
	}
	out := EmptyAABB()
	for i := 0; i < 8; i++ {
		c := mgl32.Vec3{b.Min.X(), b.Min.Y(), b.Min.Z()}
		if i&1 != 0 {
			c[0] = b.Max.X()
		}
		if i&2 != 0 {
			c[1] = b.Max.Y()
		}
		if i&4 != 0 {
			c[2] = b.Max.Z()
		}
		out = out.Extend(m.Mul4x1(c.Vec4(1)).Vec3())
	}
	return out
}

// IntersectRay is the slab test. It returns the entry parameter, or zero when
// the ray starts inside the box.
func (b AABB) IntersectRay(r Ray) (float32, bool) {
	if b.IsEmpty() {
		return 0, false
	}
	tMin := float32(0)
	tMax := float32(math32.MaxFloat32)
	for i := 0; i < 3; i++ {
		d := r.Direction[i]
		if math32.Abs(d) < 1e-8 {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (b.Min[i] - r.Origin[i]) * inv
		t2 := (b.Max[i] - r.Origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max(tMin, t1)
		tMax = min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// RaySphere returns the nearest non-negative hit parameter.
func RaySphere(r Ray, center mgl32.Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	a := r.Direction.Dot(r.Direction)
	if a < epsilon {
		return 0, false
	}
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	t := (-b - sq) / a
	if t < 0 {
		t = (-b + sq) / a
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// ClosestPointsRaySegment returns the ray parameter and segment parameter
// (0..1) of the closest approach, plus the distance between the two points.
func ClosestPointsRaySegment(r Ray, a, b mgl32.Vec3) (tRay, sSeg, dist float32) {
	u := r.Direction
	v := b.Sub(a)
	w := r.Origin.Sub(a)

	uu := u.Dot(u)
	uv := u.Dot(v)
	vv := v.Dot(v)
	uw := u.Dot(w)
	vw := v.Dot(w)

	den := uu*vv - uv*uv
	if den < epsilon || vv < epsilon {
		// Parallel or degenerate: clamp against the segment start.
		sSeg = 0
		if vv > epsilon {
			sSeg = mgl32.Clamp(vw/vv, 0, 1)
		}
		p := a.Add(v.Mul(sSeg))
		tRay = max(0, p.Sub(r.Origin).Dot(u)/max(uu, epsilon))
	} else {
		sSeg = mgl32.Clamp((uu*vw-uv*uw)/den, 0, 1)
		tRay = max(0, (uv*sSeg-uw)/uu)
		// Re-project the segment parameter against the clamped ray point.
		sSeg = mgl32.Clamp(r.At(tRay).Sub(a).Dot(v)/vv, 0, 1)
	}
	dist = r.At(tRay).Sub(a.Add(v.Mul(sSeg))).Len()
	return tRay, sSeg, dist
}

// RayCapsule treats a hit as any approach of the ray within radius of segment ab.
func RayCapsule(r Ray, a, b mgl32.Vec3, radius float32) (float32, bool) {
	t, _, d := ClosestPointsRaySegment(r, a, b)
	if d > radius {
		return 0, false
	}
	return t, true
}

func isBad(f float32) bool {
	return math32.IsNaN(f) || math32.IsInf(f, 0)
}
