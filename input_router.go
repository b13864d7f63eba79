package scenedit

// Phase orders handlers. Capture handlers see every event before any
// default handler and before pointer capture redirects it.
type Phase int

const (
	PhaseCapture Phase = iota
	PhaseDefault
	phaseCount
)

// Handler returns true when it consumed the event.
type Handler func(ev *InputEvent) bool

type route struct {
	id      int
	handler Handler
}

// InputRouter dispatches the input stream to handlers in phase order,
// stopping at the first one that consumes an event. Not safe for concurrent
// use; dispatch happens on the frame goroutine.
type InputRouter struct {
	routes  [phaseCount][]route
	nextID  int
	capture map[int]Handler
}

func NewInputRouter() *InputRouter {
	return &InputRouter{capture: make(map[int]Handler)}
}

// Handle registers h and returns a function removing it.
func (r *InputRouter) Handle(phase Phase, h Handler) (unsubscribe func()) {
	r.nextID++
	id := r.nextID
	r.routes[phase] = append(r.routes[phase], route{id: id, handler: h})
	return func() {
		routes := r.routes[phase]
		for i, rt := range routes {
			if rt.id == id {
				r.routes[phase] = append(routes[:i:i], routes[i+1:]...)
				return
			}
		}
	}
}

// SetPointerCapture sends every later pointer event for pointerID to h alone
// until ReleasePointerCapture, wherever the pointer goes.
func (r *InputRouter) SetPointerCapture(pointerID int, h Handler) {
	r.capture[pointerID] = h
}

func (r *InputRouter) ReleasePointerCapture(pointerID int) {
	delete(r.capture, pointerID)
}

func (r *InputRouter) HasPointerCapture(pointerID int) bool {
	_, ok := r.capture[pointerID]
	return ok
}

// Dispatch delivers ev and reports whether someone consumed it.
func (r *InputRouter) Dispatch(ev *InputEvent) bool {
	if r.dispatchPhase(PhaseCapture, ev) {
		return true
	}
	if ev.Kind.IsPointer() {
		if h, ok := r.capture[ev.PointerID]; ok {
			return h(ev)
		}
	}
	return r.dispatchPhase(PhaseDefault, ev)
}

func (r *InputRouter) dispatchPhase(phase Phase, ev *InputEvent) bool {
	// Handlers may unsubscribe while running.
	routes := append([]route(nil), r.routes[phase]...)
	for _, rt := range routes {
		if rt.handler(ev) {
			return true
		}
	}
	return false
}
