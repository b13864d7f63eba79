package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Shape is an invisible hit volume in gizmo-local space.
type Shape interface {
	IntersectRay(r Ray) (float32, bool)
}

type Capsule struct {
	A, B   mgl32.Vec3
	Radius float32
}

func (c Capsule) IntersectRay(r Ray) (float32, bool) {
	return RayCapsule(r, c.A, c.B, c.Radius)
}

type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

func (s Sphere) IntersectRay(r Ray) (float32, bool) {
	return RaySphere(r, s.Center, s.Radius)
}

type Box struct {
	Bounds AABB
}

func (b Box) IntersectRay(r Ray) (float32, bool) {
	return b.Bounds.IntersectRay(r)
}

// Polyline is a chain of capsules, used for the arc hitboxes.
type Polyline struct {
	Points []mgl32.Vec3
	Radius float32
}

func (p Polyline) IntersectRay(r Ray) (float32, bool) {
	best := float32(math32.MaxFloat32)
	hit := false
	for i := 0; i+1 < len(p.Points); i++ {
		if t, ok := RayCapsule(r, p.Points[i], p.Points[i+1], p.Radius); ok && t < best {
			best = t
			hit = true
		}
	}
	return best, hit
}

// SectorShape is a flat annular sector in the plane spanned by E1 and E2.
type SectorShape struct {
	E1, E2       mgl32.Vec3
	Inner, Outer float32
	A0, A1       float32
}

func (s SectorShape) IntersectRay(r Ray) (float32, bool) {
	n := s.E1.Cross(s.E2)
	denom := n.Dot(r.Direction)
	if math32.Abs(denom) < epsilon {
		return 0, false
	}
	t := -n.Dot(r.Origin) / denom
	if t < 0 {
		return 0, false
	}
	p := r.At(t)
	u, v := p.Dot(s.E1), p.Dot(s.E2)
	d := math32.Hypot(u, v)
	if d < s.Inner || d > s.Outer {
		return 0, false
	}
	a := math32.Atan2(v, u)
	if a < s.A0-epsilon || a > s.A1+epsilon {
		return 0, false
	}
	return t, true
}
