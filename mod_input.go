package scenedit

const (
	KeyA int = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyMinus
	KeyEqual
	KeyKPPlus
	KeyKPMinus
	KeyShift
	KeyControl
	KeyLeftAlt
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventWheel
	EventContextMenu
	EventCaptureChange
)

func (k EventKind) String() string {
	return [...]string{"keydown", "keyup", "pointerdown", "pointermove", "pointerup", "wheel", "contextmenu", "capturechange"}[k]
}

func (k EventKind) IsPointer() bool {
	return k == EventPointerDown || k == EventPointerMove || k == EventPointerUp
}

// InputEvent is one entry of the editor's input stream. Coordinates are in
// window pixels with the origin at the top left.
type InputEvent struct {
	Kind      EventKind
	Key       int
	Button    int
	PointerID int

	X, Y float64

	// Relative motion, reported while the pointer is locked.
	MovementX, MovementY float64
	HasMovement          bool

	// Positive is one notch away from the user.
	WheelDelta float64

	// New state for EventCaptureChange.
	Captured bool

	Prevented bool
}

func (e *InputEvent) PreventDefault() { e.Prevented = true }

type InputModule struct{}

// Input is the per-frame view of the keyboard and pointer plus the queue of
// events that arrived since the last dispatch.
type Input struct {
	Pressed [256]bool

	JustPressed  [256]bool
	JustReleased [256]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	MouseCaptured            bool

	WindowWidth, WindowHeight int

	events []InputEvent
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{}, NewInputRouter())
	app.UseSystem(
		System(inputDispatchSystem).
			InStage(PreUpdate),
	)
	app.UseSystem(
		System(inputEndFrameSystem).
			InStage(Finale),
	)
}

// Push records ev and folds it into the held-key state.
func (in *Input) Push(ev InputEvent) {
	switch ev.Kind {
	case EventKeyDown:
		in.press(ev.Key)
	case EventKeyUp:
		in.release(ev.Key)
	case EventPointerDown:
		in.press(ev.Button)
		in.moveTo(ev)
	case EventPointerUp:
		in.release(ev.Button)
		in.moveTo(ev)
	case EventPointerMove:
		in.moveTo(ev)
	case EventCaptureChange:
		in.MouseCaptured = ev.Captured
	}
	in.events = append(in.events, ev)
}

func (in *Input) press(k int) {
	if k < 0 || k >= len(in.Pressed) {
		return
	}
	if !in.Pressed[k] {
		in.JustPressed[k] = true
	}
	in.Pressed[k] = true
}

func (in *Input) release(k int) {
	if k < 0 || k >= len(in.Pressed) {
		return
	}
	if in.Pressed[k] {
		in.JustReleased[k] = true
	}
	in.Pressed[k] = false
}

func (in *Input) moveTo(ev InputEvent) {
	if ev.HasMovement {
		in.MouseDeltaX += ev.MovementX
		in.MouseDeltaY += ev.MovementY
	} else {
		in.MouseDeltaX += ev.X - in.MouseX
		in.MouseDeltaY += ev.Y - in.MouseY
	}
	in.MouseX, in.MouseY = ev.X, ev.Y
}

// ReleaseAll queues a release for every held key and button, for hosts
// that stop delivering releases, such as a window losing focus. Button
// releases are reported for pointerID at the last known position.
func (in *Input) ReleaseAll(pointerID int) {
	for k := range MouseButtonLeft {
		if in.Pressed[k] {
			in.Push(InputEvent{Kind: EventKeyUp, Key: k})
		}
	}
	for b := MouseButtonLeft; b <= MouseButtonMiddle; b++ {
		if in.Pressed[b] {
			in.Push(InputEvent{Kind: EventPointerUp, Button: b, PointerID: pointerID, X: in.MouseX, Y: in.MouseY})
		}
	}
}

// Drain hands over the queued events and empties the queue.
func (in *Input) Drain() []InputEvent {
	evs := in.events
	in.events = nil
	return evs
}

func (in *Input) endFrame() {
	in.JustPressed = [256]bool{}
	in.JustReleased = [256]bool{}
	in.MouseDeltaX, in.MouseDeltaY = 0, 0
}

func inputDispatchSystem(input *Input, router *InputRouter) {
	for _, ev := range input.Drain() {
		router.Dispatch(&ev)
	}
}

func inputEndFrameSystem(input *Input) {
	input.endFrame()
}
