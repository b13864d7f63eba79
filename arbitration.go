package scenedit

type flagSub struct {
	id int
	fn func(bool)
}

// Flag is a shared boolean with change notification. Last writer wins.
type Flag struct {
	value  bool
	subs   []flagSub
	nextID int
}

func (f *Flag) Value() bool {
	return f.value
}

// Set stores v and notifies subscribers only if the value changed.
func (f *Flag) Set(v bool) {
	if f.value == v {
		return
	}
	f.value = v
	for _, s := range append([]flagSub(nil), f.subs...) {
		s.fn(v)
	}
}

func (f *Flag) Subscribe(fn func(bool)) (unsubscribe func()) {
	f.nextID++
	id := f.nextID
	f.subs = append(f.subs, flagSub{id: id, fn: fn})
	return func() {
		for i, s := range f.subs {
			if s.id == id {
				f.subs = append(f.subs[:i:i], f.subs[i+1:]...)
				return
			}
		}
	}
}

// InputArbitration lets independent input handlers defer to each other.
// Flying is set while the secondary button holds the camera in fly mode;
// Dragging is set while a gizmo drag owns the pointer.
type InputArbitration struct {
	Flying   Flag
	Dragging Flag
}

func NewInputArbitration() *InputArbitration {
	return &InputArbitration{}
}

// Reset clears both flags, notifying subscribers of any change.
func (a *InputArbitration) Reset() {
	a.Flying.Set(false)
	a.Dragging.Set(false)
}
