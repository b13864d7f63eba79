package scenedit

import (
	"github.com/gekko3d/scenedit/viewport/core"
	"github.com/go-gl/mathgl/mgl32"
)

type mountEntry struct {
	node       *Renderable
	lastRecord *Node
}

// Mounter keeps the renderable registry in step with the scene: every
// visible node has a mounted renderable, hidden subtrees and removed nodes
// are unmounted. A renderable's transform is only rewritten when its node
// record changed, so an uncommitted drag survives unrelated store updates.
type Mounter struct {
	registry *RenderableRegistry
	logger   Logger

	mounted     map[string]*mountEntry
	unsubscribe func()
}

func NewMounter(registry *RenderableRegistry, store *SceneStore, logger Logger) *Mounter {
	m := &Mounter{
		registry: registry,
		logger:   logger,
		mounted:  make(map[string]*mountEntry),
	}
	m.Sync(store.Snapshot())
	m.unsubscribe = store.Subscribe(m.Sync)
	return m
}

func (m *Mounter) Mounted(id string) bool {
	_, ok := m.mounted[id]
	return ok
}

// Sync mounts and unmounts against snap.
func (m *Mounter) Sync(snap *Snapshot) {
	visible := make(map[string]*Node, snap.Len())
	var order []*Node
	var visit func(ids []string)
	visit = func(ids []string) {
		for _, id := range ids {
			n := snap.nodes[id]
			if n == nil || n.Hidden {
				continue
			}
			visible[id] = n
			order = append(order, n)
			visit(n.Children)
		}
	}
	visit(snap.roots)

	for id := range m.mounted {
		if _, ok := visible[id]; !ok {
			m.unmount(id)
		}
	}

	// Parents come before children in order.
	for _, n := range order {
		e, ok := m.mounted[n.ID]
		if !ok {
			e = &mountEntry{node: NewRenderable(n.ID)}
			m.mounted[n.ID] = e
			m.registry.Register(n.ID, e.node)
			m.logger.Debugf("mounted %s (%s)", n.ID, n.Payload.Kind())
		}
		if e.lastRecord != n {
			applyRecord(e.node, n)
			e.lastRecord = n
		}
		e.node.Parent = nil
		if p, ok := m.mounted[n.Parent]; ok && n.Parent != "" {
			e.node.Parent = p.node
		}
	}
}

func (m *Mounter) unmount(id string) {
	delete(m.mounted, id)
	m.registry.Unregister(id)
	m.logger.Debugf("unmounted %s", id)
}

// Close stops following the store and unmounts everything.
func (m *Mounter) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	for id := range m.mounted {
		m.unmount(id)
	}
}

func applyRecord(r *Renderable, n *Node) {
	r.Position = n.Transform.Position
	r.Rotation = core.EulerToQuat(n.Transform.Rotation)
	r.Scale = n.Transform.Scale
	r.Bounds = PayloadBounds(n.Payload)
}

// PayloadBounds is the local box a node's drawable occupies. Lights get a
// small pickable box; groups and environments have none.
func PayloadBounds(p Payload) core.AABB {
	switch p := p.(type) {
	case MeshPayload:
		half := p.Size.Mul(0.5)
		switch p.Geometry {
		case GeometrySphere:
			r := half.X()
			half = mgl32.Vec3{r, r, r}
		case GeometryPlane:
			half[1] = 0
		}
		return core.BoxAround(mgl32.Vec3{}, half)
	case LightPayload:
		return core.BoxAround(mgl32.Vec3{}, mgl32.Vec3{0.25, 0.25, 0.25})
	case ModelPayload:
		return core.BoxAround(mgl32.Vec3{}, mgl32.Vec3{0.5, 0.5, 0.5})
	case EnvironmentPayload, GroupPayload:
		return core.EmptyAABB()
	}
	return core.EmptyAABB()
}
