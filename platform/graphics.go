package platform

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
)

// Graphics owns the WebGPU device and the window's swapchain surface.
type Graphics struct {
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
	Device  *wgpu.Device
	Queue   *wgpu.Queue
	Config  *wgpu.SurfaceConfiguration
}

func NewGraphics(w *Window) (*Graphics, error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(w.Glfw()))
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, err
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Editor Device",
	})
	if err != nil {
		return nil, err
	}

	caps := surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return nil, errors.New("surface reports no usable formats")
	}
	width, height := w.FramebufferSize()
	g := &Graphics{
		Surface: surface,
		Adapter: adapter,
		Device:  device,
		Queue:   device.GetQueue(),
		Config: &wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      caps.Formats[0],
			Width:       uint32(max(width, 1)),
			Height:      uint32(max(height, 1)),
			PresentMode: wgpu.PresentModeFifo,
			AlphaMode:   caps.AlphaModes[0],
		},
	}
	surface.Configure(adapter, device, g.Config)
	w.OnFramebufferResize(g.Resize)
	return g, nil
}

// Resize reconfigures the surface. A minimized window reports zero size and
// is skipped.
func (g *Graphics) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.Config.Width = uint32(width)
	g.Config.Height = uint32(height)
	g.Surface.Configure(g.Adapter, g.Device, g.Config)
}

func (g *Graphics) Release() {
	g.Device.Release()
	g.Adapter.Release()
	g.Surface.Release()
}
