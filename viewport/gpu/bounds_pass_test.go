package gpu

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitCubeHasTwelveEdges(t *testing.T) {
	verts := unitCube()
	require.Len(t, verts, 24)

	for i := 0; i < len(verts); i += 2 {
		a, b := verts[i].Pos, verts[i+1].Pos
		diff := 0
		for k := 0; k < 3; k++ {
			assert.Contains(t, []float32{-0.5, 0.5}, a[k])
			if a[k] != b[k] {
				diff++
			}
		}
		assert.Equal(t, 1, diff, "edge %d should differ along one axis", i/2)
	}
}

func TestInstanceLayoutsMatchShaders(t *testing.T) {
	assert.Equal(t, uintptr(36), unsafe.Sizeof(HandleVertex{}))
	assert.Equal(t, uintptr(96), unsafe.Sizeof(HandleInstance{}))
	assert.Equal(t, uintptr(80), unsafe.Sizeof(BoundsInstance{}))
	assert.Equal(t, uintptr(cameraUniformSize), unsafe.Sizeof([16]float32{}))
}
