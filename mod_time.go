package scenedit

import (
	"time"
)

// Time is the frame clock. Dt is the wall time since the previous frame,
// capped at MaxDt so a stalled frame does not teleport animations.
type Time struct {
	Time  time.Time
	Dt    time.Duration
	MaxDt time.Duration

	now func() time.Time
}

type TimeModule struct {
	// Now overrides the wall clock, for tests.
	Now   func() time.Time
	MaxDt time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := mod.Now
	if now == nil {
		now = time.Now
	}
	maxDt := mod.MaxDt
	if maxDt == 0 {
		maxDt = 100 * time.Millisecond
	}
	cmd.AddResources(&Time{
		Time:  now(),
		MaxDt: maxDt,
		now:   now,
	})
	app.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(t *Time) {
	current := t.now()
	t.Dt = current.Sub(t.Time)
	if t.Dt < 0 {
		t.Dt = 0
	}
	if t.MaxDt > 0 && t.Dt > t.MaxDt {
		t.Dt = t.MaxDt
	}
	t.Time = current
}
