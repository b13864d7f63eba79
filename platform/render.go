package platform

import (
	"image/color"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/scenedit"
	"github.com/gekko3d/scenedit/viewport/core"
	"github.com/gekko3d/scenedit/viewport/gpu"
)

var (
	defaultClear = wgpu.Color{R: 0.11, G: 0.12, B: 0.14, A: 1}
	lightColor   = core.Color{1, 0.9, 0.4, 0.8}
	neutralColor = core.Color{0.7, 0.7, 0.75, 0.6}
)

// Renderer draws the scene's bounding boxes and the transform gizmo into
// the window surface each frame.
type Renderer struct {
	gfx     *Graphics
	handles *gpu.HandlePass
	bounds  *gpu.BoundsPass
	logger  scenedit.Logger
	boxes   []gpu.Box
}

func NewRenderer(gfx *Graphics, logger scenedit.Logger) (*Renderer, error) {
	grid := core.GridTexture(64, 8, color.RGBA{255, 255, 255, 0}, color.RGBA{255, 255, 255, 255})
	handles, err := gpu.NewHandlePass(gfx.Device, gfx.Queue, gfx.Config.Format, grid)
	if err != nil {
		return nil, err
	}
	bounds, err := gpu.NewBoundsPass(gfx.Device, gfx.Queue, gfx.Config.Format)
	if err != nil {
		handles.Release()
		return nil, err
	}
	return &Renderer{gfx: gfx, handles: handles, bounds: bounds, logger: logger}, nil
}

// sceneBoxes lists the world bounds of every mounted node, tinted by kind
// and highlighted when selected.
func sceneBoxes(dst []gpu.Box, snap *scenedit.Snapshot, registry *scenedit.RenderableRegistry, highlight core.Color) []gpu.Box {
	dst = dst[:0]
	registry.Each(func(id string, node *scenedit.Renderable) bool {
		n, ok := snap.Node(id)
		if !ok || n.Hidden {
			return true
		}
		c := neutralColor
		switch p := n.Payload.(type) {
		case scenedit.MeshPayload:
			c = core.Color(p.Color)
		case scenedit.LightPayload:
			c = lightColor
		}
		if snap.IsSelected(id) {
			c = highlight
		}
		dst = append(dst, gpu.Box{Bounds: node.WorldAABB(), Color: c})
		return true
	})
	return dst
}

// clearColor uses the sky color of the first visible environment node.
func clearColor(snap *scenedit.Snapshot) wgpu.Color {
	out := defaultClear
	snap.Walk(func(n *scenedit.Node) bool {
		env, ok := n.Payload.(scenedit.EnvironmentPayload)
		if !ok || n.Hidden {
			return true
		}
		out = wgpu.Color{R: float64(env.SkyColor[0]), G: float64(env.SkyColor[1]), B: float64(env.SkyColor[2]), A: 1}
		return false
	})
	return out
}

func (r *Renderer) Frame(e *scenedit.Editor, cfg *scenedit.Config) {
	snap := e.Store.Snapshot()
	viewProj := e.Camera.ViewProjection()
	highlight := core.Color(cfg.Gizmo.HighlightColor)

	r.boxes = sceneBoxes(r.boxes, snap, e.Registry, highlight)
	if err := r.bounds.Update(r.gfx.Queue, viewProj, r.boxes); err != nil {
		r.logger.Errorf("bounds update: %v", err)
		return
	}
	g := e.Gizmo
	err := r.handles.Update(r.gfx.Queue, gpu.HandleFrame{
		ViewProj:    viewProj,
		Visible:     g.Visible,
		Gizmo:       g.Current(),
		Model:       g.Model,
		Highlight:   highlight,
		Highlighted: g.Highlighted,
	})
	if err != nil {
		r.logger.Errorf("gizmo update: %v", err)
		return
	}

	next, err := r.gfx.Surface.GetCurrentTexture()
	if err != nil {
		r.logger.Warnf("acquire surface texture: %v", err)
		return
	}
	defer next.Release()
	view, err := next.CreateView(nil)
	if err != nil {
		r.logger.Errorf("create surface view: %v", err)
		return
	}
	defer view.Release()

	encoder, err := r.gfx.Device.CreateCommandEncoder(nil)
	if err != nil {
		r.logger.Errorf("create command encoder: %v", err)
		return
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: clearColor(snap),
		}},
	})
	r.bounds.Draw(pass)
	// Handles last, over everything.
	r.handles.Draw(pass)
	if err := pass.End(); err != nil {
		r.logger.Errorf("end render pass: %v", err)
	}
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		r.logger.Errorf("finish encoder: %v", err)
		return
	}
	defer cmd.Release()
	r.gfx.Queue.Submit(cmd)
	r.gfx.Surface.Present()
}

func (r *Renderer) Release() {
	r.handles.Release()
	r.bounds.Release()
}

func renderSystem(r *Renderer, e *scenedit.Editor, cfg *scenedit.Config) {
	r.Frame(e, cfg)
}
