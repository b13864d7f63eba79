package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/scenedit"
)

// MousePointer is the pointer id reported for the system mouse.
const MousePointer = 1

// Window is a GLFW window that feeds the editor's input stream and serves
// as its pointer lock and capture host. All methods must be called from the
// main thread.
type Window struct {
	win    *glfw.Window
	input  *scenedit.Input
	logger scenedit.Logger

	locked       bool
	captured     map[int]bool
	lastX, lastY float64

	onFramebuffer []func(width, height int)
}

func NewWindow(width, height int, title string, logger scenedit.Logger) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, err
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	w := &Window{
		win:      win,
		logger:   logger,
		captured: make(map[int]bool),
	}
	w.lastX, w.lastY = win.GetCursorPos()

	win.SetKeyCallback(w.onKey)
	win.SetMouseButtonCallback(w.onMouseButton)
	win.SetCursorPosCallback(w.onCursorPos)
	win.SetScrollCallback(w.onScroll)
	win.SetFocusCallback(w.onFocus)
	win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.input != nil {
			w.input.WindowWidth, w.input.WindowHeight = width, height
		}
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		for _, fn := range w.onFramebuffer {
			fn(width, height)
		}
	})
	return w, nil
}

// Attach starts delivering window events into input.
func (w *Window) Attach(input *scenedit.Input) {
	w.input = input
	input.WindowWidth, input.WindowHeight = w.win.GetSize()
	input.MouseX, input.MouseY = w.lastX, w.lastY
}

func (w *Window) Glfw() *glfw.Window { return w.win }

func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

func (w *Window) FramebufferSize() (int, int) { return w.win.GetFramebufferSize() }

// OnFramebufferResize registers fn to run whenever the drawable size changes.
func (w *Window) OnFramebufferResize(fn func(width, height int)) {
	w.onFramebuffer = append(w.onFramebuffer, fn)
}

func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}

// RequestPointerLock hides the cursor and switches to relative motion. It is
// refused while the window is not focused.
func (w *Window) RequestPointerLock() bool {
	if w.win.GetAttrib(glfw.Focused) == 0 {
		w.logger.Debugf("pointer lock refused: window not focused")
		return false
	}
	w.win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		w.win.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}
	w.locked = true
	w.push(scenedit.InputEvent{
		Kind:      scenedit.EventCaptureChange,
		PointerID: MousePointer,
		X:         w.lastX,
		Y:         w.lastY,
		Captured:  true,
	})
	return true
}

func (w *Window) ExitPointerLock() {
	if !w.locked {
		return
	}
	w.release()
}

func (w *Window) release() {
	if glfw.RawMouseMotionSupported() {
		w.win.SetInputMode(glfw.RawMouseMotion, glfw.False)
	}
	w.win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	w.locked = false
	w.lastX, w.lastY = w.win.GetCursorPos()
	w.push(scenedit.InputEvent{
		Kind:      scenedit.EventCaptureChange,
		PointerID: MousePointer,
		X:         w.lastX,
		Y:         w.lastY,
		Captured:  false,
	})
}

// GLFW keeps reporting cursor motion outside the window while a button is
// held, so capture only needs bookkeeping.
func (w *Window) CapturePointer(id int) { w.captured[id] = true }
func (w *Window) ReleasePointer(id int) { delete(w.captured, id) }

func (w *Window) push(ev scenedit.InputEvent) {
	if w.input != nil {
		w.input.Push(ev)
	}
}

func (w *Window) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k, ok := glfwToKey[key]
	if !ok || action == glfw.Repeat {
		return
	}
	kind := scenedit.EventKeyDown
	if action == glfw.Release {
		kind = scenedit.EventKeyUp
	}
	w.push(scenedit.InputEvent{Kind: kind, Key: k})
}

func (w *Window) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b, ok := glfwToButton[button]
	if !ok {
		return
	}
	kind := scenedit.EventPointerDown
	if action == glfw.Release {
		kind = scenedit.EventPointerUp
	}
	w.push(scenedit.InputEvent{
		Kind:      kind,
		Button:    b,
		PointerID: MousePointer,
		X:         w.lastX,
		Y:         w.lastY,
	})
}

func (w *Window) onCursorPos(_ *glfw.Window, x, y float64) {
	ev := scenedit.InputEvent{
		Kind:      scenedit.EventPointerMove,
		PointerID: MousePointer,
		X:         x,
		Y:         y,
	}
	if w.locked {
		ev.MovementX, ev.MovementY = x-w.lastX, y-w.lastY
		ev.HasMovement = true
	}
	w.lastX, w.lastY = x, y
	w.push(ev)
}

func (w *Window) onScroll(_ *glfw.Window, _, yoff float64) {
	w.push(scenedit.InputEvent{
		Kind:       scenedit.EventWheel,
		PointerID:  MousePointer,
		X:          w.lastX,
		Y:          w.lastY,
		WheelDelta: yoff,
	})
}

// Losing focus drops the lock the same way a browser does. GLFW sends no
// releases for keys still held at that moment, so they are released here.
func (w *Window) onFocus(_ *glfw.Window, focused bool) {
	if focused {
		return
	}
	if w.locked {
		w.release()
	}
	if w.input != nil {
		w.input.ReleaseAll(MousePointer)
	}
}
