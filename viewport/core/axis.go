package core

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Axis tags a gizmo handle with the axes it constrains. Single bits are the
// arrow/ring/cube handles, two bits are plane handles, all three is the free
// or uniform handle.
type Axis uint8

const (
	AxisX Axis = 1 << iota
	AxisY
	AxisZ

	AxisNone Axis = 0
	AxisXY        = AxisX | AxisY
	AxisXZ        = AxisX | AxisZ
	AxisYZ        = AxisY | AxisZ
	AxisXYZ       = AxisX | AxisY | AxisZ
)

var singleAxes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) Has(b Axis) bool { return a&b == b && b != 0 }

func (a Axis) Count() int {
	n := 0
	for _, s := range singleAxes {
		if a&s != 0 {
			n++
		}
	}
	return n
}

func (a Axis) IsSingle() bool { return a.Count() == 1 }
func (a Axis) IsPlane() bool  { return a.Count() == 2 }
func (a Axis) IsAll() bool    { return a == AxisXYZ }

// Index is 0, 1 or 2 for a single axis and -1 otherwise.
func (a Axis) Index() int {
	switch a {
	case AxisX:
		return 0
	case AxisY:
		return 1
	case AxisZ:
		return 2
	}
	return -1
}

// Vector is the unit vector of a single axis, or zero.
func (a Axis) Vector() mgl32.Vec3 {
	var v mgl32.Vec3
	if i := a.Index(); i >= 0 {
		v[i] = 1
	}
	return v
}

// Mask has 1 in every component the tag permits.
func (a Axis) Mask() mgl32.Vec3 {
	var v mgl32.Vec3
	for i, s := range singleAxes {
		if a&s != 0 {
			v[i] = 1
		}
	}
	return v
}

// Missing returns the axis perpendicular to a plane tag.
func (a Axis) Missing() Axis {
	if !a.IsPlane() {
		return AxisNone
	}
	return AxisXYZ &^ a
}

func (a Axis) Axes() []Axis {
	var out []Axis
	for _, s := range singleAxes {
		if a&s != 0 {
			out = append(out, s)
		}
	}
	return out
}

func (a Axis) String() string {
	if a == AxisNone {
		return "none"
	}
	var b strings.Builder
	for i, s := range singleAxes {
		if a&s != 0 {
			b.WriteByte("XYZ"[i])
		}
	}
	return b.String()
}

// ParseAxis accepts the String form, case-insensitively.
func ParseAxis(s string) (Axis, bool) {
	var a Axis
	if s == "" {
		return AxisNone, false
	}
	for _, c := range strings.ToUpper(s) {
		switch c {
		case 'X':
			a |= AxisX
		case 'Y':
			a |= AxisY
		case 'Z':
			a |= AxisZ
		default:
			return AxisNone, false
		}
	}
	return a, true
}
