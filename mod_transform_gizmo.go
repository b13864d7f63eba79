package scenedit

import (
	"github.com/gekko3d/scenedit/viewport/core"
	"github.com/go-gl/mathgl/mgl32"
)

// TransformGizmo is the on-screen handle set for the primary selection. It
// is placed once per frame from the target's live renderable and picked
// against between frames.
type TransformGizmo struct {
	gizmos [len(core.GizmoKinds)]*core.Gizmo
	style  core.Style

	Visible  bool
	Kind     core.GizmoKind
	Target   string
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Size     float32
	Model    mgl32.Mat4

	Hover  core.Axis
	Active core.Axis
}

func NewTransformGizmo(cfg GizmoConfig) *TransformGizmo {
	g := &TransformGizmo{Rotation: mgl32.QuatIdent(), Model: mgl32.Ident4()}
	g.rebuild(StyleFromConfig(cfg))
	return g
}

// StyleFromConfig applies the configurable colours and hitbox thickness on
// top of the default handle proportions.
func StyleFromConfig(cfg GizmoConfig) core.Style {
	st := core.DefaultStyle()
	for i, c := range cfg.AxisColors {
		st.AxisColors[i] = core.Color(c)
	}
	st.CenterColor = core.Color(cfg.CenterColor)
	st.HitboxScale = cfg.HitboxScale
	return st
}

func (g *TransformGizmo) rebuild(st core.Style) {
	g.style = st
	for i, kind := range core.GizmoKinds {
		g.gizmos[i] = core.BuildGizmo(kind, st)
	}
}

// Gizmo returns the handle set for kind.
func (g *TransformGizmo) Gizmo(kind core.GizmoKind) *core.Gizmo {
	return g.gizmos[kind]
}

func (g *TransformGizmo) Current() *core.Gizmo {
	return g.gizmos[g.Kind]
}

// Place positions the gizmo on the primary selection. It reports false when
// the target's renderable is not mounted yet, leaving the previous placement
// untouched.
func (g *TransformGizmo) Place(snap *Snapshot, registry *RenderableRegistry, cam *Camera, sizeFactor float32) bool {
	kind, ok := gizmoKindFor(snap.Mode())
	id, selected := snap.Primary()
	if !ok || !selected {
		g.Visible = false
		g.Target = ""
		return true
	}
	if !snap.Shown(id) {
		g.Visible = false
		g.Target = ""
		return true
	}
	node, ok := registry.Get(id)
	if !ok {
		return false
	}

	pos, rot, _ := node.WorldTRS()
	if kind != core.GizmoScale && snap.Space() == SpaceWorld {
		rot = mgl32.QuatIdent()
	}
	g.Visible = true
	g.Kind = kind
	g.Target = id
	g.Position = pos
	g.Rotation = rot
	g.Size = core.ApparentScale(cam.Position, pos, cam.Fov, sizeFactor)
	g.Model = core.ModelMatrix(pos, rot, g.Size)
	return true
}

func (g *TransformGizmo) Pick(ray core.Ray) (core.Hit, bool) {
	if !g.Visible {
		return core.Hit{}, false
	}
	return g.Current().Pick(ray, g.Model)
}

// Highlighted reports whether handle i of the current gizmo should use the
// highlight colour: it is hovered, or it is being dragged.
func (g *TransformGizmo) Highlighted(i int) bool {
	h := g.Current().Handles
	if i < 0 || i >= len(h) {
		return false
	}
	if g.Active != core.AxisNone {
		return h[i].Tag == g.Active
	}
	return h[i].Tag == g.Hover
}

func gizmoPlacementSystem(g *TransformGizmo, store *SceneStore, registry *RenderableRegistry, cam *Camera, cfg *Config, dragger *TransformDragger) {
	if st := StyleFromConfig(cfg.Gizmo); st != g.style {
		g.rebuild(st)
	}
	g.Place(store.Snapshot(), registry, cam, cfg.Gizmo.SizeFactor)
	g.Active = dragger.ActiveTag()
}

// routerCapture captures a pointer in the input router and, when present,
// in the host window.
type routerCapture struct {
	router  *InputRouter
	handler Handler
	host    PointerCapturer
}

func (c *routerCapture) CapturePointer(id int) {
	c.router.SetPointerCapture(id, c.handler)
	if c.host != nil {
		c.host.CapturePointer(id)
	}
}

func (c *routerCapture) ReleasePointer(id int) {
	c.router.ReleasePointerCapture(id)
	if c.host != nil {
		c.host.ReleasePointer(id)
	}
}

// GizmoPointer turns pointer events into hover changes and drags. Primary
// button down on a handle starts a drag; every later event of that pointer
// reaches it through the router's capture until the button is released.
type GizmoPointer struct {
	gizmo   *TransformGizmo
	dragger *TransformDragger
	cam     *Camera
	input   *Input
}

func NewGizmoPointer(gizmo *TransformGizmo, dragger *TransformDragger, cam *Camera, input *Input) *GizmoPointer {
	return &GizmoPointer{gizmo: gizmo, dragger: dragger, cam: cam, input: input}
}

func (p *GizmoPointer) ray(ev *InputEvent) core.Ray {
	return p.cam.ScreenRay(ev.X, ev.Y, p.input.WindowWidth, p.input.WindowHeight)
}

func (p *GizmoPointer) HandleEvent(ev *InputEvent) bool {
	switch ev.Kind {
	case EventPointerDown:
		if ev.Button != MouseButtonLeft || p.dragger.Dragging() {
			return p.dragger.Dragging()
		}
		hit, ok := p.gizmo.Pick(p.ray(ev))
		if !ok {
			return false
		}
		if p.dragger.BeginDrag(hit.Tag, p.ray(ev), ev.PointerID) {
			p.gizmo.Active = hit.Tag
		}
		// A press on a handle never falls through to selection.
		return true
	case EventPointerMove:
		if p.dragger.Dragging() {
			p.dragger.UpdateDrag(p.ray(ev))
			return true
		}
		tag := core.AxisNone
		if hit, ok := p.gizmo.Pick(p.ray(ev)); ok {
			tag = hit.Tag
		}
		p.gizmo.Hover = tag
		return false
	case EventPointerUp:
		if ev.Button != MouseButtonLeft || !p.dragger.Dragging() {
			return false
		}
		p.dragger.EndDrag()
		p.gizmo.Active = core.AxisNone
		return true
	}
	return false
}
