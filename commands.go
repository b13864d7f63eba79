package scenedit

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// Defer queues fn to run once the current stage has finished.
func (cmd *Commands) Defer(fn func()) *Commands {
	cmd.app.deferred = append(cmd.app.deferred, fn)
	return cmd
}

func (cmd *Commands) Quit() {
	cmd.app.Quit()
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
