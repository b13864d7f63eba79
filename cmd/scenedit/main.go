package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/scenedit"
	"github.com/gekko3d/scenedit/platform"
)

func init() {
	// GLFW and the surface must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML file overriding the interaction defaults")
	watch := flag.Bool("watch", false, "Reload the config file when it changes")
	debug := flag.Bool("debug", false, "Enable debug logging")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	flag.Parse()

	logger := scenedit.NewDefaultLogger("platform", *debug)
	defer logger.Sync()

	win, err := platform.NewWindow(*width, *height, "Scene Editor", logger)
	if err != nil {
		logger.Errorf("create window: %v", err)
		os.Exit(1)
	}
	defer win.Destroy()

	store := scenedit.NewSceneStore()
	if err := populateDemo(store); err != nil {
		logger.Errorf("build demo scene: %v", err)
		os.Exit(1)
	}

	app := scenedit.NewAppBuilder().
		UseModule(scenedit.LoggingModule{Prefix: "scenedit", Debug: *debug}).
		UseModule(scenedit.ConfigModule{Path: *configPath, Watch: *watch}).
		UseModule(scenedit.TimeModule{}).
		UseModule(scenedit.InputModule{}).
		UseModule(scenedit.EditorModule{Store: store, Host: win}).
		UseModule(platform.Module{Window: win}).
		Build()
	defer func() {
		if r, ok := scenedit.Resource[platform.Renderer](app); ok {
			r.Release()
		}
		if e, ok := scenedit.Resource[scenedit.Editor](app); ok {
			e.Close()
		}
	}()
	app.Run()
}

func populateDemo(store *scenedit.SceneStore) error {
	at := func(x, y, z float32) scenedit.Transform {
		t := scenedit.IdentityTransform()
		t.Position = mgl32.Vec3{x, y, z}
		return t
	}
	nodes := []scenedit.Node{
		{ID: "environment", Name: "Environment", Transform: scenedit.IdentityTransform(), Payload: scenedit.EnvironmentPayload{
			SkyColor: [3]float32{0.16, 0.18, 0.22},
			FogColor: [3]float32{0.5, 0.5, 0.55},
			FogNear:  30,
			FogFar:   120,
		}},
		{ID: "ground", Name: "Ground", Transform: scenedit.IdentityTransform(), Payload: scenedit.MeshPayload{
			Geometry: scenedit.GeometryPlane,
			Size:     mgl32.Vec3{20, 0, 20},
			Color:    [4]float32{0.4, 0.42, 0.45, 0.5},
		}},
		{ID: "crate", Name: "Crate", Transform: at(0, 0.5, 0), Payload: scenedit.MeshPayload{
			Geometry: scenedit.GeometryBox,
			Size:     mgl32.Vec3{1, 1, 1},
			Color:    [4]float32{0.85, 0.55, 0.3, 1},
		}},
		{ID: "orb", Name: "Orb", Parent: "crate", Transform: at(0, 1.25, 0), Payload: scenedit.MeshPayload{
			Geometry: scenedit.GeometrySphere,
			Size:     mgl32.Vec3{0.75, 0.75, 0.75},
			Color:    [4]float32{0.3, 0.7, 0.95, 1},
		}},
		{ID: "pillar", Name: "Pillar", Transform: at(-3, 1, -2), Payload: scenedit.MeshPayload{
			Geometry: scenedit.GeometryCylinder,
			Size:     mgl32.Vec3{0.6, 2, 0.6},
			Color:    [4]float32{0.75, 0.75, 0.7, 1},
		}},
		{ID: "sun", Name: "Sun", Transform: at(4, 6, 3), Payload: scenedit.LightPayload{
			Type:      scenedit.LightPoint,
			Color:     [3]float32{1, 0.95, 0.85},
			Intensity: 2,
			Range:     25,
		}},
	}
	for _, n := range nodes {
		if _, err := store.AddNode(n); err != nil {
			return err
		}
	}
	store.Select("crate")
	return nil
}
