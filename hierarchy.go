package scenedit

import (
	"github.com/gekko3d/scenedit/viewport/core"
	"github.com/go-gl/mathgl/mgl32"
)

// IsAncestor reports whether ancestor appears on the parent chain of id.
func (s *Snapshot) IsAncestor(ancestor, id string) bool {
	n, ok := s.nodes[id]
	for ok && n.Parent != "" {
		if n.Parent == ancestor {
			return true
		}
		n, ok = s.nodes[n.Parent]
	}
	return false
}

// Shown reports whether id exists and neither it nor any ancestor is
// hidden.
func (s *Snapshot) Shown(id string) bool {
	n, ok := s.nodes[id]
	for ok {
		if n.Hidden {
			return false
		}
		if n.Parent == "" {
			return true
		}
		n, ok = s.nodes[n.Parent]
	}
	return false
}

// Path lists ids from the root down to id.
func (s *Snapshot) Path(id string) []string {
	var path []string
	for n, ok := s.nodes[id]; ok; n, ok = s.nodes[n.Parent] {
		path = append([]string{n.ID}, path...)
		if n.Parent == "" {
			break
		}
	}
	return path
}

// WorldTransform composes the stored transforms from the root down to id.
func (s *Snapshot) WorldTransform(id string) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3, bool) {
	path := s.Path(id)
	if len(path) == 0 {
		return mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}, false
	}
	pos, rot, scale := mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}
	for _, pid := range path {
		t := s.nodes[pid].Transform
		pos, rot, scale = composeTRS(pos, rot, scale, t.Position, core.EulerToQuat(t.Rotation), t.Scale)
	}
	return pos, rot, scale, true
}
