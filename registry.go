package scenedit

import (
	"github.com/gekko3d/scenedit/viewport/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderable is the live, mounted drawable of a scene node. Its transform is
// parent-relative; Parent links mirror the scene hierarchy.
type Renderable struct {
	ID       string
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3

	// Bounds is the local-space box of the drawable's geometry.
	Bounds core.AABB
	Parent *Renderable
}

func NewRenderable(id string) *Renderable {
	return &Renderable{
		ID:       id,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Bounds:   core.EmptyAABB(),
	}
}

// LocalMatrix is T * R * S.
func (r *Renderable) LocalMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(r.Position.X(), r.Position.Y(), r.Position.Z()).
		Mul4(r.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(r.Scale.X(), r.Scale.Y(), r.Scale.Z()))
}

func (r *Renderable) WorldMatrix() mgl32.Mat4 {
	if r.Parent == nil {
		return r.LocalMatrix()
	}
	return r.Parent.WorldMatrix().Mul4(r.LocalMatrix())
}

// WorldTRS composes position, rotation and per-axis scale down the parent
// chain without decomposing a matrix, which keeps negative scales intact.
func (r *Renderable) WorldTRS() (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	if r.Parent == nil {
		return r.Position, r.Rotation, r.Scale
	}
	pp, pr, ps := r.Parent.WorldTRS()
	return composeTRS(pp, pr, ps, r.Position, r.Rotation, r.Scale)
}

func (r *Renderable) WorldPosition() mgl32.Vec3 {
	p, _, _ := r.WorldTRS()
	return p
}

func (r *Renderable) WorldRotation() mgl32.Quat {
	_, q, _ := r.WorldTRS()
	return q
}

// ParentTRS is the world transform local values are relative to.
func (r *Renderable) ParentTRS() (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	if r.Parent == nil {
		return mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}
	}
	return r.Parent.WorldTRS()
}

// SetWorldPosition stores the parent-relative position that lands at p.
func (r *Renderable) SetWorldPosition(p mgl32.Vec3) {
	if r.Parent == nil {
		r.Position = p
		return
	}
	pp, pr, ps := r.Parent.WorldTRS()
	r.Position = worldToLocalPoint(pp, pr, ps, p)
}

// SetWorldRotation stores the parent-relative rotation that yields q.
func (r *Renderable) SetWorldRotation(q mgl32.Quat) {
	_, pr, _ := r.ParentTRS()
	r.Rotation = pr.Conjugate().Mul(q).Normalize()
}

// WorldAABB is the world-aligned box around the transformed local bounds.
// Nodes without geometry report an empty box.
func (r *Renderable) WorldAABB() core.AABB {
	return r.Bounds.Transform(r.WorldMatrix())
}

func composeTRS(pp mgl32.Vec3, pr mgl32.Quat, ps mgl32.Vec3, lp mgl32.Vec3, lr mgl32.Quat, ls mgl32.Vec3) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	// WorldPos = ParentPos + ParentRot * (ParentScale * LocalPos)
	scaled := mgl32.Vec3{lp.X() * ps.X(), lp.Y() * ps.Y(), lp.Z() * ps.Z()}
	pos := pp.Add(pr.Rotate(scaled))
	rot := pr.Mul(lr).Normalize()
	scale := mgl32.Vec3{ps.X() * ls.X(), ps.Y() * ls.Y(), ps.Z() * ls.Z()}
	return pos, rot, scale
}

func worldToLocalPoint(pp mgl32.Vec3, pr mgl32.Quat, ps mgl32.Vec3, p mgl32.Vec3) mgl32.Vec3 {
	l := pr.Conjugate().Rotate(p.Sub(pp))
	return mgl32.Vec3{
		l.X() / nonZero(ps.X()),
		l.Y() / nonZero(ps.Y()),
		l.Z() / nonZero(ps.Z()),
	}
}

// nonZero keeps a collapsed scale axis from dividing by zero.
func nonZero(s float32) float32 {
	if s > -1e-6 && s < 1e-6 {
		if s < 0 {
			return -1e-6
		}
		return 1e-6
	}
	return s
}

// RenderableRegistry maps scene node ids to their mounted renderables. It
// does not check liveness; callers treat an id missing from the scene as
// not found even when an entry lingers. Not safe for concurrent use.
type RenderableRegistry struct {
	nodes map[string]*Renderable
}

func NewRenderableRegistry() *RenderableRegistry {
	return &RenderableRegistry{nodes: make(map[string]*Renderable)}
}

// Register overwrites any existing entry for id.
func (r *RenderableRegistry) Register(id string, node *Renderable) {
	r.nodes[id] = node
}

// Unregister removes id; absent ids are ignored.
func (r *RenderableRegistry) Unregister(id string) {
	delete(r.nodes, id)
}

func (r *RenderableRegistry) Get(id string) (*Renderable, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

func (r *RenderableRegistry) Len() int {
	return len(r.nodes)
}

// Each visits entries in no particular order until fn returns false.
func (r *RenderableRegistry) Each(fn func(id string, node *Renderable) bool) {
	for id, n := range r.nodes {
		if !fn(id, n) {
			return
		}
	}
}
