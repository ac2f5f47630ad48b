package engine

import (
	"time"

	"github.com/lixenwraith/platanus-dice/events"
	"github.com/lixenwraith/platanus-dice/palette"
	"github.com/lixenwraith/platanus-dice/score"
)

// Snapshot is a read-only copy of engine state for one frame
type Snapshot struct {
	State   State
	Session Session

	Level int
	Rank  string

	// Turn timer, Remaining is zero when TimerActive is false
	TimerActive bool
	Remaining   time.Duration

	// Game over details
	Outcome      events.Outcome
	Expected     palette.Color
	MistakeIndex int // Logical sequence index of the wrong press, -1 if none
	Leaderboard  score.Table
	Qualified    bool
}

// Snapshot copies the state as of now
func (e *Engine) Snapshot(now time.Time) Snapshot {
	level := e.session.Level()
	snap := Snapshot{
		State:        e.state,
		Session:      e.session.Clone(),
		Level:        level,
		Rank:         Rank(level),
		Outcome:      e.outcome,
		Expected:     e.expected,
		MistakeIndex: e.mistakeIndex,
		Leaderboard:  e.leaderboard.Clone(),
		Qualified:    e.qualified,
	}

	if e.state == StateAwaitingInput && e.turnTimer.Valid() {
		remaining := e.session.Timing.TurnLimit - now.Sub(e.session.Timing.TurnStart)
		if remaining < 0 {
			remaining = 0
		}
		snap.TimerActive = true
		snap.Remaining = remaining
	}
	return snap
}

// Selected returns the color under the cursor
func (s Snapshot) Selected() palette.Color {
	return palette.At(s.Session.Round.Selected)
}
