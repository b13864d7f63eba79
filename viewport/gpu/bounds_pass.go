package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/scenedit/viewport/core"
	"github.com/gekko3d/scenedit/viewport/shaders"
)

type BoundsVertex struct {
	Pos [3]float32
}

type BoundsInstance struct {
	Model mgl32.Mat4
	Color [4]float32
}

// Box is one world-space wire box to draw.
type Box struct {
	Bounds core.AABB
	Color  core.Color
}

// BoundsPass draws renderable bounding boxes as instanced wire cubes.
type BoundsPass struct {
	Pipeline       *wgpu.RenderPipeline
	BindGroup      *wgpu.BindGroup
	UniformBuffer  *wgpu.Buffer
	VertexBuffer   *wgpu.Buffer
	VertexCount    uint32
	InstanceBuffer *wgpu.Buffer
	InstanceCap    uint32
	Device         *wgpu.Device

	instances []BoundsInstance
}

// unitCube is the 12 edges of the cube spanning -0.5..0.5 as a line list.
func unitCube() []BoundsVertex {
	lo, hi := float32(-0.5), float32(0.5)
	corner := func(i int) BoundsVertex {
		v := BoundsVertex{Pos: [3]float32{lo, lo, lo}}
		for a := 0; a < 3; a++ {
			if i&(1<<a) != 0 {
				v.Pos[a] = hi
			}
		}
		return v
	}
	var out []BoundsVertex
	for i := 0; i < 8; i++ {
		for a := 0; a < 3; a++ {
			if j := i | 1<<a; j != i {
				out = append(out, corner(i), corner(j))
			}
		}
	}
	return out
}

func NewBoundsPass(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat) (*BoundsPass, error) {
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "BoundsShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.BoundsWGSL},
	})
	if err != nil {
		return nil, err
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "BoundsPipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(BoundsVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					},
				},
				{
					ArrayStride: uint64(unsafe.Sizeof(BoundsInstance{})),
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 1},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 3},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 4},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 64, ShaderLocation: 5},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets:    []wgpu.ColorTargetState{alphaTarget(format)},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	p := &BoundsPass{Pipeline: pipeline, Device: device}
	p.UniformBuffer, err = newCameraUniform(device, "BoundsCameraUniform")
	if err != nil {
		return nil, err
	}
	p.BindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "BoundsBindGroup",
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.UniformBuffer, Size: cameraUniformSize},
		},
	})
	if err != nil {
		return nil, err
	}

	vertices := unitCube()
	p.VertexCount = uint32(len(vertices))
	p.VertexBuffer, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "BoundsVertexBuffer",
		Contents: wgpu.ToBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *BoundsPass) Update(queue *wgpu.Queue, viewProj mgl32.Mat4, boxes []Box) error {
	p.instances = p.instances[:0]
	for _, b := range boxes {
		if b.Bounds.IsEmpty() {
			continue
		}
		c, s := b.Bounds.Center(), b.Bounds.Size()
		// Flat boxes still get a visible outline.
		for i := range s {
			s[i] = max(s[i], 1e-3)
		}
		p.instances = append(p.instances, BoundsInstance{
			Model: mgl32.Translate3D(c.X(), c.Y(), c.Z()).Mul4(mgl32.Scale3D(s.X(), s.Y(), s.Z())),
			Color: b.Color,
		})
	}
	if len(p.instances) == 0 {
		return nil
	}
	writeCameraUniform(queue, p.UniformBuffer, viewProj)

	count := uint32(len(p.instances))
	if p.InstanceBuffer == nil || p.InstanceCap < count {
		if p.InstanceBuffer != nil {
			p.InstanceBuffer.Release()
		}
		p.InstanceCap = count + 64
		var err error
		p.InstanceBuffer, err = p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "BoundsInstanceBuffer",
			Size:  uint64(p.InstanceCap) * uint64(unsafe.Sizeof(BoundsInstance{})),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
	}
	size := uint64(count) * uint64(unsafe.Sizeof(BoundsInstance{}))
	queue.WriteBuffer(p.InstanceBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&p.instances[0])), size))
	return nil
}

func (p *BoundsPass) Draw(pass *wgpu.RenderPassEncoder) {
	if len(p.instances) == 0 {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.VertexBuffer, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, p.InstanceBuffer, 0, wgpu.WholeSize)
	pass.Draw(p.VertexCount, uint32(len(p.instances)), 0, 0)
}

func (p *BoundsPass) Release() {
	for _, b := range []*wgpu.Buffer{p.VertexBuffer, p.InstanceBuffer, p.UniformBuffer} {
		if b != nil {
			b.Release()
		}
	}
}
