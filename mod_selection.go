package scenedit

import (
	"math"

	"github.com/gekko3d/scenedit/viewport/core"
)

// ClickSelector selects what is under a primary click. A press and release
// further apart than the click threshold is a camera drag, not a click.
type ClickSelector struct {
	store    *SceneStore
	registry *RenderableRegistry
	gizmo    *TransformGizmo
	cam      *Camera
	input    *Input
	cfg      *Config

	pressed      bool
	pointerID    int
	downX, downY float64
}

func NewClickSelector(store *SceneStore, registry *RenderableRegistry, gizmo *TransformGizmo, cam *Camera, input *Input, cfg *Config) *ClickSelector {
	return &ClickSelector{
		store:    store,
		registry: registry,
		gizmo:    gizmo,
		cam:      cam,
		input:    input,
		cfg:      cfg,
	}
}

func (c *ClickSelector) HandleEvent(ev *InputEvent) bool {
	if ev.Button != MouseButtonLeft {
		return false
	}
	switch ev.Kind {
	case EventPointerDown:
		c.pressed = true
		c.pointerID = ev.PointerID
		c.downX, c.downY = ev.X, ev.Y
	case EventPointerUp:
		if !c.pressed || ev.PointerID != c.pointerID {
			return false
		}
		c.pressed = false
		if math.Hypot(ev.X-c.downX, ev.Y-c.downY) > c.cfg.Gizmo.ClickThreshold {
			return false
		}
		c.SelectAt(ev.X, ev.Y)
	}
	return false
}

// SelectAt resolves the click at window pixel (x, y). A gizmo handle under
// the cursor outranks any scene node and leaves the selection alone; a miss
// clears it.
func (c *ClickSelector) SelectAt(x, y float64) {
	ray := c.cam.ScreenRay(x, y, c.input.WindowWidth, c.input.WindowHeight)
	hits := c.sceneHits(ray)
	if c.gizmo != nil {
		if h, ok := c.gizmo.Pick(ray); ok {
			hits = append(hits, h)
		}
	}
	best, ok := core.Resolve(hits)
	switch {
	case !ok:
		c.store.ClearSelection()
	case best.Layer == core.LayerScene:
		c.store.Select(best.ID)
	}
}

// PickScene returns the nearest selectable node hit by ray.
func (c *ClickSelector) PickScene(ray core.Ray) (core.Hit, bool) {
	return core.Resolve(c.sceneHits(ray))
}

func (c *ClickSelector) sceneHits(ray core.Ray) []core.Hit {
	snap := c.store.Snapshot()
	var hits []core.Hit
	c.registry.Each(func(id string, r *Renderable) bool {
		n, ok := snap.Node(id)
		if !ok || n.Hidden || n.Locked {
			return true
		}
		box := r.WorldAABB()
		if box.IsEmpty() {
			return true
		}
		if t, ok := box.IntersectRay(ray); ok {
			hits = append(hits, core.Hit{
				Layer:    core.LayerScene,
				Priority: core.PriorityScene,
				Distance: t,
				ID:       id,
			})
		}
		return true
	})
	return hits
}
