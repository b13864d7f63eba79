package gpu

import (
	"errors"
	"image"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/scenedit/viewport/core"
	"github.com/gekko3d/scenedit/viewport/shaders"
)

// HandleVertex matches the WGSL VertexInput.
type HandleVertex struct {
	Pos   [3]float32
	UV    [2]float32
	Color [4]float32
}

// HandleInstance matches the WGSL instance attributes.
type HandleInstance struct {
	Model     mgl32.Mat4
	Highlight [4]float32
	Params    [4]float32
}

type handleRange struct {
	firstIndex uint32
	indexCount uint32
	baseVertex int32
	textured   bool
}

// HandleFrame is everything the pass needs to draw one gizmo for one frame.
type HandleFrame struct {
	ViewProj  mgl32.Mat4
	Visible   bool
	Gizmo     *core.Gizmo
	Model     mgl32.Mat4
	Highlight core.Color
	// Highlighted reports whether handle i of Gizmo is hovered or dragged.
	Highlighted func(i int) bool
}

// HandlePass draws the gizmo handles as an alpha blended overlay with no
// depth test, so handles stay visible through scene geometry.
type HandlePass struct {
	Pipeline       *wgpu.RenderPipeline
	BindGroup      *wgpu.BindGroup
	UniformBuffer  *wgpu.Buffer
	VertexBuffer   *wgpu.Buffer
	IndexBuffer    *wgpu.Buffer
	InstanceBuffer *wgpu.Buffer
	InstanceCap    uint32
	GridTexture    *wgpu.Texture
	GridView       *wgpu.TextureView
	Sampler        *wgpu.Sampler
	Device         *wgpu.Device

	uploaded  *core.Gizmo
	ranges    []handleRange
	instances []HandleInstance
}

func NewHandlePass(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, grid *image.RGBA) (*HandlePass, error) {
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "HandleShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.HandlesWGSL},
	})
	if err != nil {
		return nil, err
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "HandlePipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(HandleVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 20, ShaderLocation: 2},
					},
				},
				{
					ArrayStride: uint64(unsafe.Sizeof(HandleInstance{})),
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 3},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 4},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 5},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 6},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 64, ShaderLocation: 7},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 80, ShaderLocation: 8},
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
			Topology:  wgpu.PrimitiveTopologyTriangleList,
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

	p := &HandlePass{Pipeline: pipeline, Device: device}

	p.UniformBuffer, err = newCameraUniform(device, "HandleCameraUniform")
	if err != nil {
		return nil, err
	}

	w, h := grid.Bounds().Dx(), grid.Bounds().Dy()
	p.GridTexture, err = device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "HandleGridTexture",
		Size:          wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}
	queue.WriteTexture(p.GridTexture.AsImageCopy(), grid.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(grid.Stride),
		RowsPerImage: uint32(h),
	}, &wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1})

	p.GridView, err = p.GridTexture.CreateView(nil)
	if err != nil {
		return nil, err
	}
	p.Sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, err
	}

	p.BindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "HandleBindGroup",
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.UniformBuffer, Size: cameraUniformSize},
			{Binding: 1, TextureView: p.GridView},
			{Binding: 2, Sampler: p.Sampler},
		},
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// upload replaces the vertex and index buffers with g's handle meshes. Each
// handle keeps its own index range so it can carry its own highlight.
func (p *HandlePass) upload(queue *wgpu.Queue, g *core.Gizmo) error {
	var vertices []HandleVertex
	var indices []uint32
	p.ranges = p.ranges[:0]
	for _, h := range g.Handles {
		m := h.Mesh
		r := handleRange{
			firstIndex: uint32(len(indices)),
			indexCount: uint32(len(m.Indices)),
			baseVertex: int32(len(vertices)),
			textured:   h.Textured,
		}
		for i, pos := range m.Positions {
			v := HandleVertex{Pos: pos, Color: m.Colors[i]}
			if i < len(m.UVs) {
				v.UV = m.UVs[i]
			}
			vertices = append(vertices, v)
		}
		indices = append(indices, m.Indices...)
		p.ranges = append(p.ranges, r)
	}
	if len(vertices) == 0 || len(indices) == 0 {
		return errors.New("gizmo has no geometry")
	}

	if p.VertexBuffer != nil {
		p.VertexBuffer.Release()
	}
	if p.IndexBuffer != nil {
		p.IndexBuffer.Release()
	}
	vSize := uint64(len(vertices)) * uint64(unsafe.Sizeof(HandleVertex{}))
	var err error
	p.VertexBuffer, err = p.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "HandleVertexBuffer",
		Size:  vSize,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	queue.WriteBuffer(p.VertexBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), vSize))

	p.IndexBuffer, err = p.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "HandleIndexBuffer",
		Contents: wgpu.ToBytes(indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		return err
	}
	p.uploaded = g
	return nil
}

// Update writes the camera uniform and one instance per handle. Geometry is
// re-uploaded only when the gizmo changes, which happens on mode switches and
// style reloads.
func (p *HandlePass) Update(queue *wgpu.Queue, f HandleFrame) error {
	p.instances = p.instances[:0]
	if !f.Visible || f.Gizmo == nil {
		return nil
	}
	if f.Gizmo != p.uploaded {
		if err := p.upload(queue, f.Gizmo); err != nil {
			return err
		}
	}
	writeCameraUniform(queue, p.UniformBuffer, f.ViewProj)

	for i, r := range p.ranges {
		inst := HandleInstance{Model: f.Model, Highlight: f.Highlight}
		if r.textured {
			inst.Params[0] = 1
		}
		if f.Highlighted != nil && f.Highlighted(i) {
			inst.Params[1] = 1
		}
		p.instances = append(p.instances, inst)
	}

	count := uint32(len(p.instances))
	if p.InstanceBuffer == nil || p.InstanceCap < count {
		if p.InstanceBuffer != nil {
			p.InstanceBuffer.Release()
		}
		p.InstanceCap = count + 16
		var err error
		p.InstanceBuffer, err = p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "HandleInstanceBuffer",
			Size:  uint64(p.InstanceCap) * uint64(unsafe.Sizeof(HandleInstance{})),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
	}
	size := uint64(count) * uint64(unsafe.Sizeof(HandleInstance{}))
	queue.WriteBuffer(p.InstanceBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&p.instances[0])), size))
	return nil
}

func (p *HandlePass) Draw(pass *wgpu.RenderPassEncoder) {
	if len(p.instances) == 0 || p.VertexBuffer == nil {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.VertexBuffer, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, p.InstanceBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(p.IndexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	for i, r := range p.ranges {
		if r.indexCount == 0 {
			continue
		}
		pass.DrawIndexed(r.indexCount, 1, r.firstIndex, r.baseVertex, uint32(i))
	}
}

func (p *HandlePass) Release() {
	for _, b := range []*wgpu.Buffer{p.VertexBuffer, p.IndexBuffer, p.InstanceBuffer, p.UniformBuffer} {
		if b != nil {
			b.Release()
		}
	}
	if p.GridView != nil {
		p.GridView.Release()
	}
	if p.GridTexture != nil {
		p.GridTexture.Release()
	}
	if p.Sampler != nil {
		p.Sampler.Release()
	}
}
