package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraUniformSize is one column-major mat4x4<f32>.
const cameraUniformSize = 64

func newCameraUniform(device *wgpu.Device, label string) (*wgpu.Buffer, error) {
	return device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  cameraUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
}

func writeCameraUniform(queue *wgpu.Queue, buf *wgpu.Buffer, viewProj mgl32.Mat4) {
	queue.WriteBuffer(buf, 0, unsafe.Slice((*byte)(unsafe.Pointer(&viewProj[0])), cameraUniformSize))
}

func alphaTarget(format wgpu.TextureFormat) wgpu.ColorTargetState {
	return wgpu.ColorTargetState{
		Format:    format,
		WriteMask: wgpu.ColorWriteMaskAll,
		Blend: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
			Alpha: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
		},
	}
}
