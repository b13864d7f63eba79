package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/scenedit"
)

// Module hosts the editor in a desktop window. Window must be created on
// the main thread before the app is built and must also be the editor's
// host so pointer lock reaches GLFW.
type Module struct {
	Window *Window
}

func (m Module) Install(app *scenedit.App, cmd *scenedit.Commands) {
	logger := app.Logger()
	m.Window.Attach(scenedit.MustResource[scenedit.Input](app))

	gfx, err := NewGraphics(m.Window)
	if err != nil {
		logger.Errorf("graphics unavailable: %v", err)
		cmd.Quit()
		return
	}
	r, err := NewRenderer(gfx, logger)
	if err != nil {
		logger.Errorf("renderer unavailable: %v", err)
		gfx.Release()
		cmd.Quit()
		return
	}
	logger.Infof("surface %dx%d format %v", gfx.Config.Width, gfx.Config.Height, gfx.Config.Format)

	cmd.AddResources(m.Window, gfx, r)
	app.UseSystem(scenedit.System(pollSystem).InStage(scenedit.Prelude))
	app.UseSystem(scenedit.System(renderSystem).InStage(scenedit.Render))
}

func pollSystem(w *Window, cmd *scenedit.Commands) {
	glfw.PollEvents()
	if w.ShouldClose() {
		cmd.Quit()
	}
}
