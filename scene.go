package scenedit

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrNodeExists    = errors.New("node already exists")
	ErrCycle         = errors.New("node cannot be its own ancestor")
	ErrInvalidParent = errors.New("invalid parent")
	ErrNilPayload    = errors.New("nil payload")
)

// Transform is a node's parent-relative placement. Rotation holds XYZ Euler
// angles in radians.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

func IdentityTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

type NodeKind int

const (
	KindMesh NodeKind = iota
	KindLight
	KindEnvironment
	KindModel
	KindGroup
)

func (k NodeKind) String() string {
	return [...]string{"mesh", "light", "environment", "model", "group"}[k]
}

// Payload is the type-specific part of a node. The set of implementations is
// closed: MeshPayload, LightPayload, EnvironmentPayload, ModelPayload and
// GroupPayload.
type Payload interface {
	Kind() NodeKind
	payload()
}

type GeometryKind int

const (
	GeometryBox GeometryKind = iota
	GeometrySphere
	GeometryPlane
	GeometryCylinder
)

type MeshPayload struct {
	Geometry  GeometryKind
	Size      mgl32.Vec3
	Color     [4]float32
	Roughness float32
	Metallic  float32
	Emissive  float32
}

type LightType int

const (
	LightPoint LightType = iota
	LightDirectional
	LightSpot
	LightAmbient
)

type LightPayload struct {
	Type      LightType
	Color     [3]float32
	Intensity float32
	Range     float32
	ConeAngle float32
}

type EnvironmentPayload struct {
	SkyColor   [3]float32
	FogColor   [3]float32
	FogNear    float32
	FogFar     float32
	CloudCover float32
}

// ModelPayload references an external asset by URI; loading it is not this
// package's concern.
type ModelPayload struct {
	URI string
}

type GroupPayload struct{}

func (MeshPayload) Kind() NodeKind        { return KindMesh }
func (LightPayload) Kind() NodeKind       { return KindLight }
func (EnvironmentPayload) Kind() NodeKind { return KindEnvironment }
func (ModelPayload) Kind() NodeKind       { return KindModel }
func (GroupPayload) Kind() NodeKind       { return KindGroup }

func (MeshPayload) payload()        {}
func (LightPayload) payload()       {}
func (EnvironmentPayload) payload() {}
func (ModelPayload) payload()       {}
func (GroupPayload) payload()       {}

// Node is one scene-graph record. Parent and Children always agree: a
// node's Children lists exactly the nodes whose Parent names it.
type Node struct {
	ID        string `copier:"-"`
	Name      string
	Transform Transform
	Parent    string   `copier:"-"`
	Children  []string `copier:"-"`
	Hidden    bool
	Locked    bool
	Payload   Payload
}

// NewNode returns a visible node with an identity transform.
func NewNode(id, name string, payload Payload) Node {
	return Node{
		ID:        id,
		Name:      name,
		Transform: IdentityTransform(),
		Payload:   payload,
	}
}

func (n *Node) clone() *Node {
	c := *n
	c.Children = slices.Clone(n.Children)
	return &c
}

type TransformMode int

const (
	ModeSelect TransformMode = iota
	ModeTranslate
	ModeRotate
	ModeScale
)

func (m TransformMode) String() string {
	return [...]string{"select", "translate", "rotate", "scale"}[m]
}

// Next is the mode Space cycles to.
func (m TransformMode) Next() TransformMode {
	return (m + 1) % 4
}

type TransformSpace int

const (
	SpaceWorld TransformSpace = iota
	SpaceLocal
)

func (s TransformSpace) String() string {
	if s == SpaceLocal {
		return "local"
	}
	return "world"
}

// Snapshot is an immutable view of the scene. Mutations on the store build a
// new snapshot that shares every untouched node with the previous one.
type Snapshot struct {
	nodes     map[string]*Node
	roots     []string
	selection []string
	mode      TransformMode
	space     TransformSpace
	version   uint64
}

func emptySnapshot() *Snapshot {
	return &Snapshot{nodes: make(map[string]*Node)}
}

// Node returns a copy of the node record.
func (s *Snapshot) Node(id string) (Node, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n.clone(), true
}

func (s *Snapshot) Has(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

func (s *Snapshot) Len() int                  { return len(s.nodes) }
func (s *Snapshot) Roots() []string           { return slices.Clone(s.roots) }
func (s *Snapshot) Selection() []string       { return slices.Clone(s.selection) }
func (s *Snapshot) Mode() TransformMode       { return s.mode }
func (s *Snapshot) Space() TransformSpace     { return s.space }
func (s *Snapshot) Version() uint64           { return s.version }
func (s *Snapshot) IsSelected(id string) bool { return slices.Contains(s.selection, id) }

func (s *Snapshot) Children(id string) []string {
	if id == "" {
		return s.Roots()
	}
	if n, ok := s.nodes[id]; ok {
		return slices.Clone(n.Children)
	}
	return nil
}

// Primary is the first selected node, the only one the gizmo manipulates.
func (s *Snapshot) Primary() (string, bool) {
	if len(s.selection) == 0 {
		return "", false
	}
	return s.selection[0], true
}

// Walk visits nodes depth first in child order until fn returns false.
func (s *Snapshot) Walk(fn func(n *Node) bool) {
	var visit func(ids []string) bool
	visit = func(ids []string) bool {
		for _, id := range ids {
			n := s.nodes[id]
			if !fn(n) || !visit(n.Children) {
				return false
			}
		}
		return true
	}
	visit(s.roots)
}

func (s *Snapshot) shallowCopy() *Snapshot {
	next := &Snapshot{
		nodes:     make(map[string]*Node, len(s.nodes)),
		roots:     s.roots,
		selection: s.selection,
		mode:      s.mode,
		space:     s.space,
		version:   s.version + 1,
	}
	for id, n := range s.nodes {
		next.nodes[id] = n
	}
	return next
}

// edit swaps in a private copy of node id so it can be mutated.
func (s *Snapshot) edit(id string) *Node {
	n := s.nodes[id].clone()
	s.nodes[id] = n
	return n
}

type storeSub struct {
	id int
	fn func(*Snapshot)
}

// SceneStore owns the authoritative scene. Every mutation publishes a fresh
// Snapshot, so readers holding an older one never see a partial update.
type SceneStore struct {
	current *Snapshot
	subs    []storeSub
	nextSub int
}

func NewSceneStore() *SceneStore {
	return &SceneStore{current: emptySnapshot()}
}

func (s *SceneStore) Snapshot() *Snapshot {
	return s.current
}

// Subscribe calls fn with every snapshot published after this call.
func (s *SceneStore) Subscribe(fn func(*Snapshot)) (unsubscribe func()) {
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, storeSub{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *SceneStore) publish(next *Snapshot) {
	s.current = next
	for _, sub := range append([]storeSub(nil), s.subs...) {
		sub.fn(next)
	}
}

// AddNode inserts n under n.Parent (or as a root) and returns its id. An
// empty id is replaced by a fresh UUID. n.Children is ignored.
func (s *SceneStore) AddNode(n Node) (string, error) {
	cur := s.current
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if cur.Has(n.ID) {
		return "", fmt.Errorf("add %s: %w", n.ID, ErrNodeExists)
	}
	if n.Parent != "" && !cur.Has(n.Parent) {
		return "", fmt.Errorf("add %s under %s: %w", n.ID, n.Parent, ErrInvalidParent)
	}
	if n.Payload == nil {
		n.Payload = GroupPayload{}
	}
	n.Children = nil

	next := cur.shallowCopy()
	node := n
	next.nodes[n.ID] = &node
	if n.Parent == "" {
		next.roots = append(slices.Clone(cur.roots), n.ID)
	} else {
		p := next.edit(n.Parent)
		p.Children = append(p.Children, n.ID)
	}
	s.publish(next)
	return n.ID, nil
}

// RemoveNode deletes id and its whole subtree, dropping them from the
// selection.
func (s *SceneStore) RemoveNode(id string) error {
	cur := s.current
	n, ok := cur.nodes[id]
	if !ok {
		return fmt.Errorf("remove %s: %w", id, ErrNodeNotFound)
	}

	next := cur.shallowCopy()
	removed := make(map[string]bool)
	var drop func(id string)
	drop = func(id string) {
		removed[id] = true
		for _, c := range next.nodes[id].Children {
			drop(c)
		}
		delete(next.nodes, id)
	}
	drop(id)

	if n.Parent == "" {
		next.roots = slices.DeleteFunc(slices.Clone(cur.roots), func(r string) bool { return r == id })
	} else {
		p := next.edit(n.Parent)
		p.Children = slices.DeleteFunc(p.Children, func(c string) bool { return c == id })
	}
	next.selection = slices.DeleteFunc(slices.Clone(cur.selection), func(sel string) bool { return removed[sel] })
	s.publish(next)
	return nil
}

// Duplicate copies id and its subtree under the same parent, right after
// the original, and returns the copy's id. Copies get fresh UUIDs; the
// selection is left alone.
func (s *SceneStore) Duplicate(id string) (string, error) {
	cur := s.current
	src, ok := cur.nodes[id]
	if !ok {
		return "", fmt.Errorf("duplicate %s: %w", id, ErrNodeNotFound)
	}

	next := cur.shallowCopy()
	var dup func(n *Node, parent string) (string, error)
	dup = func(n *Node, parent string) (string, error) {
		c := &Node{ID: uuid.NewString(), Parent: parent}
		if err := copier.Copy(c, n); err != nil {
			return "", fmt.Errorf("duplicate %s: %w", n.ID, err)
		}
		next.nodes[c.ID] = c
		for _, child := range n.Children {
			cid, err := dup(cur.nodes[child], c.ID)
			if err != nil {
				return "", err
			}
			c.Children = append(c.Children, cid)
		}
		return c.ID, nil
	}
	copyID, err := dup(src, src.Parent)
	if err != nil {
		return "", err
	}
	next.nodes[copyID].Name = src.Name + " copy"

	if src.Parent == "" {
		next.roots = insertAfter(cur.roots, id, copyID)
	} else {
		p := next.edit(src.Parent)
		p.Children = insertAfter(p.Children, id, copyID)
	}
	s.publish(next)
	return copyID, nil
}

func insertAfter(ids []string, after, id string) []string {
	i := slices.Index(ids, after)
	return slices.Insert(slices.Clone(ids), i+1, id)
}

// Reparent moves id under parent ("" for root) at index, or at the end when
// index is out of range. Moving a node under itself or a descendant fails
// with ErrCycle and leaves the scene unchanged.
func (s *SceneStore) Reparent(id, parent string, index int) error {
	cur := s.current
	n, ok := cur.nodes[id]
	if !ok {
		return fmt.Errorf("reparent %s: %w", id, ErrNodeNotFound)
	}
	if parent != "" {
		if !cur.Has(parent) {
			return fmt.Errorf("reparent %s under %s: %w", id, parent, ErrInvalidParent)
		}
		if parent == id || cur.IsAncestor(id, parent) {
			return fmt.Errorf("reparent %s under %s: %w", id, parent, ErrCycle)
		}
	}

	next := cur.shallowCopy()
	without := func(ids []string) []string {
		return slices.DeleteFunc(slices.Clone(ids), func(c string) bool { return c == id })
	}
	insert := func(ids []string) []string {
		if index < 0 || index > len(ids) {
			return append(ids, id)
		}
		return slices.Insert(ids, index, id)
	}

	if n.Parent == "" {
		next.roots = without(cur.roots)
	} else {
		old := next.edit(n.Parent)
		old.Children = without(old.Children)
	}
	if parent == "" {
		next.roots = insert(slices.Clone(next.roots))
	} else {
		p := next.edit(parent)
		p.Children = insert(p.Children)
	}
	next.edit(id).Parent = parent
	s.publish(next)
	return nil
}

func (s *SceneStore) Rename(id, name string) error {
	return s.update(id, func(n *Node) { n.Name = name })
}

func (s *SceneStore) SetHidden(id string, hidden bool) error {
	return s.update(id, func(n *Node) { n.Hidden = hidden })
}

func (s *SceneStore) SetLocked(id string, locked bool) error {
	return s.update(id, func(n *Node) { n.Locked = locked })
}

func (s *SceneStore) SetPayload(id string, p Payload) error {
	if p == nil {
		return fmt.Errorf("payload for %s: %w", id, ErrNilPayload)
	}
	return s.update(id, func(n *Node) { n.Payload = p })
}

// CommitTransform is the single write-back a finished drag makes.
func (s *SceneStore) CommitTransform(id string, t Transform) error {
	return s.update(id, func(n *Node) { n.Transform = t })
}

func (s *SceneStore) update(id string, fn func(n *Node)) error {
	if !s.current.Has(id) {
		return fmt.Errorf("update %s: %w", id, ErrNodeNotFound)
	}
	next := s.current.shallowCopy()
	fn(next.edit(id))
	s.publish(next)
	return nil
}

// Select replaces the selection with ids, in order, skipping unknown and
// repeated ids.
func (s *SceneStore) Select(ids ...string) {
	cur := s.current
	sel := make([]string, 0, len(ids))
	for _, id := range ids {
		if cur.Has(id) && !slices.Contains(sel, id) {
			sel = append(sel, id)
		}
	}
	if slices.Equal(sel, cur.selection) {
		return
	}
	next := cur.shallowCopy()
	next.selection = sel
	s.publish(next)
}

func (s *SceneStore) ClearSelection() {
	s.Select()
}

func (s *SceneStore) SetTransformMode(m TransformMode) {
	if s.current.mode == m {
		return
	}
	next := s.current.shallowCopy()
	next.mode = m
	s.publish(next)
}

func (s *SceneStore) CycleTransformMode() {
	s.SetTransformMode(s.current.mode.Next())
}

func (s *SceneStore) SetTransformSpace(sp TransformSpace) {
	if s.current.space == sp {
		return
	}
	next := s.current.shallowCopy()
	next.space = sp
	s.publish(next)
}

func (s *SceneStore) ToggleTransformSpace() {
	if s.current.space == SpaceWorld {
		s.SetTransformSpace(SpaceLocal)
	} else {
		s.SetTransformSpace(SpaceWorld)
	}
}
