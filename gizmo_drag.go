package scenedit

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/scenedit/viewport/core"
	"github.com/go-gl/mathgl/mgl32"
)

// PointerCapturer routes every later event of a pointer to the capturing
// element until released, even when the pointer leaves it.
type PointerCapturer interface {
	CapturePointer(pointerID int)
	ReleasePointer(pointerID int)
}

// CameraNavigation is the camera controller a drag switches off.
type CameraNavigation interface {
	SetEnabled(enabled bool)
}

// DragTick reports the live values written to the renderable after each
// drag move. Angle is set while rotating, Factor while scaling.
type DragTick struct {
	ID       string
	Kind     core.GizmoKind
	Tag      core.Axis
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Angle    float32
	Factor   float32
}

type tickSub struct {
	id int
	fn func(DragTick)
}

type DragOption func(*TransformDragger)

func WithNavigation(n CameraNavigation) DragOption {
	return func(d *TransformDragger) { d.nav = n }
}

func WithPointerCapturer(c PointerCapturer) DragOption {
	return func(d *TransformDragger) { d.capturer = c }
}

func WithDragLogger(l Logger) DragOption {
	return func(d *TransformDragger) { d.logger = l }
}

// dragSession lives from a successful BeginDrag to EndDrag.
type dragSession struct {
	id        string
	node      *Renderable
	kind      core.GizmoKind
	tag       core.Axis
	pointerID int
	local     bool

	startPos      mgl32.Vec3
	startRot      mgl32.Quat
	startScale    mgl32.Vec3
	startEuler    mgl32.Vec3
	startWorldPos mgl32.Vec3
	startWorldRot mgl32.Quat

	// orient is the handle frame: identity in world space, the target's
	// world rotation in local space and always for scale.
	orient   mgl32.Quat
	plane    core.Plane
	startHit mgl32.Vec3

	// rotate
	axis    mgl32.Vec3
	prevDir mgl32.Vec3
	angle   float32

	// scale
	ref       mgl32.Vec3
	startDist float32
	startSide float32
	factor    float32
}

// TransformDragger is the gizmo drag state machine. While a drag is active
// it writes straight into the target's renderable; the scene store changes
// once, when the drag ends.
type TransformDragger struct {
	registry *RenderableRegistry
	store    *SceneStore
	arb      *InputArbitration
	cam      *Camera

	nav      CameraNavigation
	capturer PointerCapturer
	logger   Logger

	session *dragSession

	ticks      []tickSub
	nextTickID int
}

func NewTransformDragger(registry *RenderableRegistry, store *SceneStore, arb *InputArbitration, cam *Camera, opts ...DragOption) *TransformDragger {
	d := &TransformDragger{
		registry: registry,
		store:    store,
		arb:      arb,
		cam:      cam,
		logger:   NewNopLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	arb.Dragging.Set(false)
	return d
}

func (d *TransformDragger) Dragging() bool { return d.session != nil }

// ActiveTag is the handle being dragged, AxisNone when idle.
func (d *TransformDragger) ActiveTag() core.Axis {
	if d.session == nil {
		return core.AxisNone
	}
	return d.session.tag
}

// RotationAngle is the accumulated angle of the current rotate drag.
func (d *TransformDragger) RotationAngle() float32 {
	if d.session == nil {
		return 0
	}
	return d.session.angle
}

// OnTick subscribes fn to live drag values.
func (d *TransformDragger) OnTick(fn func(DragTick)) (unsubscribe func()) {
	d.nextTickID++
	id := d.nextTickID
	d.ticks = append(d.ticks, tickSub{id: id, fn: fn})
	return func() {
		for i, s := range d.ticks {
			if s.id == id {
				d.ticks = append(d.ticks[:i:i], d.ticks[i+1:]...)
				return
			}
		}
	}
}

func gizmoKindFor(m TransformMode) (core.GizmoKind, bool) {
	switch m {
	case ModeTranslate:
		return core.GizmoTranslate, true
	case ModeRotate:
		return core.GizmoRotate, true
	case ModeScale:
		return core.GizmoScale, true
	}
	return 0, false
}

// BeginDrag starts a drag on the handle tagged tag of the primary
// selection. It refuses, leaving the dragger idle, when no drag is
// possible: select mode, no live target, or a ray that misses the
// constraint plane.
func (d *TransformDragger) BeginDrag(tag core.Axis, ray core.Ray, pointerID int) bool {
	if d.session != nil || tag == core.AxisNone {
		return false
	}
	snap := d.store.Snapshot()
	kind, ok := gizmoKindFor(snap.Mode())
	if !ok {
		return false
	}
	if kind == core.GizmoRotate && !tag.IsSingle() {
		return false
	}
	id, ok := snap.Primary()
	if !ok {
		return false
	}
	stored, ok := snap.Node(id)
	if !ok || stored.Locked {
		return false
	}
	node, ok := d.registry.Get(id)
	if !ok {
		return false
	}

	s := &dragSession{
		id:         id,
		node:       node,
		kind:       kind,
		tag:        tag,
		pointerID:  pointerID,
		startPos:   node.Position,
		startRot:   node.Rotation,
		startScale: node.Scale,
		startEuler: stored.Transform.Rotation,
		factor:     1,
	}
	s.startWorldPos, s.startWorldRot, _ = node.WorldTRS()
	s.local = kind == core.GizmoScale || snap.Space() == SpaceLocal
	s.orient = mgl32.QuatIdent()
	if s.local {
		s.orient = s.startWorldRot
	}

	eye := d.cam.Position.Sub(s.startWorldPos)
	if eye.Len() < 1e-6 {
		eye = d.cam.Forward().Mul(-1)
	}
	eye = eye.Normalize()

	var normal mgl32.Vec3
	if kind == core.GizmoRotate {
		s.axis = s.orient.Rotate(tag.Vector()).Normalize()
		normal = s.axis
	} else {
		normal = constraintNormal(tag, s.orient, eye)
	}
	s.plane = core.PlaneFromPoint(normal, s.startWorldPos)
	hit, ok := s.plane.IntersectRay(ray)
	if !ok {
		return false
	}
	s.startHit = hit

	switch kind {
	case core.GizmoRotate:
		dir, ok := s.dirOnPlane(hit)
		if !ok {
			return false
		}
		s.prevDir = dir
	case core.GizmoScale:
		v := hit.Sub(s.startWorldPos)
		s.startDist = v.Len()
		if s.startDist < 1e-4 {
			return false
		}
		s.ref = scaleReference(tag, s.orient, v)
		s.startSide = v.Dot(s.ref)
	}

	d.session = s
	if d.capturer != nil {
		d.capturer.CapturePointer(pointerID)
	}
	if d.nav != nil {
		d.nav.SetEnabled(false)
	}
	d.arb.Dragging.Set(true)
	d.logger.Debugf("drag start %s %s on %s", kind, tag, id)
	return true
}

// constraintNormal picks the plane a translate or scale drag moves in.
// Single axes use the plane containing the axis that faces the eye most.
func constraintNormal(tag core.Axis, orient mgl32.Quat, eye mgl32.Vec3) mgl32.Vec3 {
	switch {
	case tag.IsSingle():
		a := orient.Rotate(tag.Vector())
		n := a.Cross(eye).Cross(a)
		if n.Len() < 1e-6 {
			// Axis points at the camera; any plane containing it will do.
			n = a.Cross(mgl32.Vec3{0, 1, 0})
			if n.Len() < 1e-6 {
				n = a.Cross(mgl32.Vec3{1, 0, 0})
			}
		}
		return n.Normalize()
	case tag.IsPlane():
		return orient.Rotate(tag.Missing().Vector()).Normalize()
	}
	return eye
}

// scaleReference is the direction whose side of the center decides the
// sign of the scale factor.
func scaleReference(tag core.Axis, orient mgl32.Quat, start mgl32.Vec3) mgl32.Vec3 {
	if tag.IsAll() {
		return start.Normalize()
	}
	var sum mgl32.Vec3
	for _, a := range tag.Axes() {
		sum = sum.Add(a.Vector())
	}
	return orient.Rotate(sum).Normalize()
}

func (s *dragSession) dirOnPlane(p mgl32.Vec3) (mgl32.Vec3, bool) {
	v := p.Sub(s.startWorldPos)
	v = v.Sub(s.axis.Mul(v.Dot(s.axis)))
	if v.Len() < 1e-6 {
		return mgl32.Vec3{}, false
	}
	return v.Normalize(), true
}

// UpdateDrag moves the target for the current pointer ray. It returns false
// when idle or when the ray yields no movement this frame.
func (d *TransformDragger) UpdateDrag(ray core.Ray) bool {
	s := d.session
	if s == nil {
		return false
	}
	if !d.live(s) {
		return false
	}
	hit, ok := s.plane.IntersectRay(ray)
	if !ok {
		return false
	}

	switch s.kind {
	case core.GizmoTranslate:
		delta := hit.Sub(s.startHit)
		if !s.tag.IsAll() {
			local := s.orient.Conjugate().Rotate(delta)
			m := s.tag.Mask()
			local = mgl32.Vec3{local.X() * m.X(), local.Y() * m.Y(), local.Z() * m.Z()}
			delta = s.orient.Rotate(local)
		}
		s.node.SetWorldPosition(s.startWorldPos.Add(delta))
	case core.GizmoRotate:
		dir, ok := s.dirOnPlane(hit)
		if !ok {
			return false
		}
		// Summing per-move steps keeps the angle continuous past ±π.
		step := math32.Atan2(s.axis.Dot(s.prevDir.Cross(dir)), s.prevDir.Dot(dir))
		s.angle += step
		s.prevDir = dir
		s.applyRotation()
	case core.GizmoScale:
		v := hit.Sub(s.startWorldPos)
		f := v.Len() / s.startDist
		if side := v.Dot(s.ref); side != 0 && (side > 0) != (s.startSide > 0) {
			f = -f
		}
		s.factor = f
		scale := s.startScale
		for _, a := range s.tag.Axes() {
			scale[a.Index()] = s.startScale[a.Index()] * f
		}
		s.node.Scale = scale
	}

	d.emitTick()
	return true
}

// applyRotation composes the accumulated angle with the start rotation:
// about the object's own axis in local space, about the fixed world axis
// in world space.
func (s *dragSession) applyRotation() {
	q := mgl32.QuatRotate(s.angle, s.tag.Vector())
	if s.local {
		s.node.Rotation = s.startRot.Mul(q).Normalize()
		return
	}
	s.node.SetWorldRotation(q.Mul(s.startWorldRot).Normalize())
}

func (d *TransformDragger) emitTick() {
	s := d.session
	t := DragTick{
		ID:       s.id,
		Kind:     s.kind,
		Tag:      s.tag,
		Position: s.node.Position,
		Rotation: s.node.Rotation,
		Scale:    s.node.Scale,
	}
	switch s.kind {
	case core.GizmoRotate:
		t.Angle = s.angle
	case core.GizmoScale:
		t.Factor = s.factor
	}
	for _, sub := range append([]tickSub(nil), d.ticks...) {
		sub.fn(t)
	}
}

// live reports whether the session's renderable is still the one mounted
// for a node the store knows. Hiding unmounts it; showing again mounts a
// fresh one the session does not own.
func (d *TransformDragger) live(s *dragSession) bool {
	if !d.store.Snapshot().Has(s.id) {
		return false
	}
	r, ok := d.registry.Get(s.id)
	return ok && r == s.node
}

// EndDrag finishes the drag and commits the renderable's transform to the
// scene store, once. The session is dropped even if the target is gone.
func (d *TransformDragger) EndDrag() bool {
	s := d.session
	if s == nil {
		return false
	}
	d.session = nil
	if d.capturer != nil {
		d.capturer.ReleasePointer(s.pointerID)
	}
	if d.nav != nil {
		d.nav.SetEnabled(true)
	}
	d.arb.Dragging.Set(false)

	if !d.live(s) {
		d.logger.Debugf("drag target %s vanished, nothing committed", s.id)
		return true
	}
	t := Transform{
		Position: s.node.Position,
		Rotation: core.QuatToEulerNear(s.node.Rotation, s.startEuler),
		Scale:    s.node.Scale,
	}
	if err := d.store.CommitTransform(s.id, t); err != nil {
		d.logger.Warnf("commit drag on %s: %v", s.id, err)
		return true
	}
	d.logger.Debugf("drag commit %s on %s: pos=%v rot=%v scale=%v", s.kind, s.id, t.Position, t.Rotation, t.Scale)
	return true
}

// Close ends any drag without committing and clears the shared flag.
func (d *TransformDragger) Close() {
	if s := d.session; s != nil {
		d.session = nil
		if d.capturer != nil {
			d.capturer.ReleasePointer(s.pointerID)
		}
		if d.nav != nil {
			d.nav.SetEnabled(true)
		}
	}
	d.arb.Dragging.Set(false)
}
