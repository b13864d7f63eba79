package scenedit

// Shortcuts maps editor keys onto the scene store. Fly mode owns the
// keyboard and a drag owns the target, so nothing here fires while either
// flag is set.
//
//	W translate, E rotate, R scale, Q select, Space cycle mode,
//	X toggle world/local, Escape clear selection, F focus selection,
//	Ctrl+D duplicate selection.
type Shortcuts struct {
	store *SceneStore
	arb   *InputArbitration
	focus *FocusAnimator
	input *Input
}

// NewShortcuts reads modifier state from input; with a nil input there are
// no chords.
func NewShortcuts(store *SceneStore, arb *InputArbitration, focus *FocusAnimator, input *Input) *Shortcuts {
	return &Shortcuts{store: store, arb: arb, focus: focus, input: input}
}

func (s *Shortcuts) HandleEvent(ev *InputEvent) bool {
	if ev.Kind != EventKeyDown || s.arb.Flying.Value() || s.arb.Dragging.Value() {
		return false
	}
	if s.input != nil && s.input.Pressed[KeyControl] {
		return s.chord(ev.Key)
	}
	switch ev.Key {
	case KeyW:
		s.store.SetTransformMode(ModeTranslate)
	case KeyE:
		s.store.SetTransformMode(ModeRotate)
	case KeyR:
		s.store.SetTransformMode(ModeScale)
	case KeyQ:
		s.store.SetTransformMode(ModeSelect)
	case KeySpace:
		s.store.CycleTransformMode()
	case KeyX:
		s.store.ToggleTransformSpace()
	case KeyEscape:
		s.store.ClearSelection()
	case KeyF:
		id, ok := s.store.Snapshot().Primary()
		if !ok || s.focus == nil {
			return false
		}
		s.focus.Focus(id)
	default:
		return false
	}
	return true
}

func (s *Shortcuts) chord(key int) bool {
	if key != KeyD {
		return false
	}
	id, ok := s.store.Snapshot().Primary()
	if !ok {
		return false
	}
	copyID, err := s.store.Duplicate(id)
	if err != nil {
		return false
	}
	s.store.Select(copyID)
	return true
}
