package shaders

import (
	_ "embed"
)

//go:embed handles.wgsl
var HandlesWGSL string

//go:embed bounds.wgsl
var BoundsWGSL string
