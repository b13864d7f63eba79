package scenedit

// EditorHost is the window the editor runs in. Both capabilities are
// optional for the editor; a nil host means plain cursor tracking.
type EditorHost interface {
	PointerLocker
	PointerCapturer
}

// Editor bundles the viewport interaction components sharing one scene.
type Editor struct {
	Camera      *Camera
	Arbitration *InputArbitration
	Registry    *RenderableRegistry
	Store       *SceneStore
	Mounter     *Mounter
	Orbit       *OrbitController
	Fly         *FlyController
	Dragger     *TransformDragger
	Gizmo       *TransformGizmo
	Pointer     *GizmoPointer
	Shortcuts   *Shortcuts
	Selector    *ClickSelector
	Focus       *FocusAnimator

	unroute []func()
}

// NewEditor wires the components and routes their handlers: fly mode in
// the capture phase, then gizmo, shortcuts, orbit and click selection.
func NewEditor(store *SceneStore, cfg *Config, input *Input, router *InputRouter, host EditorHost, logger Logger) *Editor {
	e := &Editor{
		Camera:      NewCamera(),
		Arbitration: NewInputArbitration(),
		Registry:    NewRenderableRegistry(),
		Store:       store,
	}
	e.Mounter = NewMounter(e.Registry, store, logger)
	e.Orbit = NewOrbitController(e.Camera, cfg, e.Arbitration)

	var flyOpts []FlyOption
	capture := &routerCapture{router: router}
	if host != nil {
		flyOpts = append(flyOpts, WithPointerLocker(host))
		capture.host = host
	}
	e.Fly = NewFlyController(e.Camera, cfg, e.Arbitration, e.Orbit, flyOpts...)
	e.Dragger = NewTransformDragger(e.Registry, store, e.Arbitration, e.Camera,
		WithNavigation(e.Orbit),
		WithPointerCapturer(capture),
		WithDragLogger(logger),
	)
	e.Gizmo = NewTransformGizmo(cfg.Gizmo)
	e.Pointer = NewGizmoPointer(e.Gizmo, e.Dragger, e.Camera, input)
	capture.handler = e.Pointer.HandleEvent
	e.Focus = NewFocusAnimator(e.Camera, e.Orbit, e.Registry, store, e.Arbitration, cfg)
	e.Shortcuts = NewShortcuts(store, e.Arbitration, e.Focus, input)
	e.Selector = NewClickSelector(store, e.Registry, e.Gizmo, e.Camera, input, cfg)

	e.unroute = []func(){
		router.Handle(PhaseCapture, e.Fly.HandleEvent),
		router.Handle(PhaseDefault, e.Pointer.HandleEvent),
		router.Handle(PhaseDefault, e.Shortcuts.HandleEvent),
		router.Handle(PhaseDefault, e.Orbit.HandleEvent),
		router.Handle(PhaseDefault, e.Selector.HandleEvent),
	}
	return e
}

// Close unroutes every handler and resets the shared flags, so nothing is
// left stuck in fly or drag mode.
func (e *Editor) Close() {
	for _, fn := range e.unroute {
		fn()
	}
	e.unroute = nil
	e.Dragger.Close()
	e.Fly.Close()
	e.Focus.Close()
	e.Mounter.Close()
	e.Arbitration.Reset()
}

// EditorModule installs the editor and its per-frame systems. It needs the
// input, time and config resources, so install it after their modules.
// Store may carry a prepared scene.
type EditorModule struct {
	Store *SceneStore
	Host  EditorHost
}

func (m EditorModule) Install(app *App, cmd *Commands) {
	cfg, ok := Resource[Config](app)
	if !ok {
		cfg = DefaultConfig()
		cmd.AddResources(cfg)
	}
	store := m.Store
	if store == nil {
		store = NewSceneStore()
	}
	e := NewEditor(store, cfg, MustResource[Input](app), MustResource[InputRouter](app), m.Host, app.Logger())
	cmd.AddResources(
		e,
		e.Camera,
		e.Arbitration,
		e.Registry,
		e.Store,
		e.Orbit,
		e.Fly,
		e.Dragger,
		e.Gizmo,
		e.Focus,
	)

	app.UseSystem(System(cameraAspectSystem).InStage(PreUpdate))
	app.UseSystem(System(flyUpdateSystem).InStage(Update))
	app.UseSystem(System(focusSystem).InStage(Update))
	app.UseSystem(System(gizmoPlacementSystem).InStage(PostUpdate))
}

func cameraAspectSystem(cam *Camera, input *Input) {
	if input.WindowWidth > 0 && input.WindowHeight > 0 {
		cam.Aspect = float32(input.WindowWidth) / float32(input.WindowHeight)
	}
}

func flyUpdateSystem(fly *FlyController, t *Time, input *Input) {
	fly.Update(t.Dt, input)
}
