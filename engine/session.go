package engine

import (
	"time"

	"github.com/lixenwraith/platanus-dice/constants"
	"github.com/lixenwraith/platanus-dice/palette"
)

// RoundState tracks progress through the current sequence
type RoundState struct {
	SequenceIndex int  // Next position the player must reproduce
	PlayingBack   bool // Sequence is being shown
	Selected      int  // Cursor over the color buttons, wraps over palette.Count
}

// TimingState holds the difficulty parameters and the running turn
type TimingState struct {
	StepDuration time.Duration
	TurnLimit    time.Duration
	TurnStart    time.Time
}

// ScoreState holds the counters shown to the player
type ScoreState struct {
	Score  int // Completed rounds
	Streak int // Consecutive completed rounds, zeroed by a mistake or timeout
}

// Session is the whole mutable state of one game
type Session struct {
	ID       string
	Sequence []palette.Color
	Round    RoundState
	Timing   TimingState
	Score    ScoreState
}

// NewSession returns a session in its reset state
func NewSession() *Session {
	s := &Session{}
	s.Reset("")
	return s
}

// Reset clears everything and restores starting difficulty
func (s *Session) Reset(id string) {
	s.ID = id
	s.Sequence = s.Sequence[:0]
	s.Round = RoundState{}
	s.Timing = TimingState{
		StepDuration: constants.InitialStepDuration,
		TurnLimit:    constants.InitialTurnLimit,
	}
	s.Score = ScoreState{}
}

// Level is the current sequence length
func (s *Session) Level() int {
	return len(s.Sequence)
}

// Ramp shortens step and turn limit after a completed round, bounded by their floors
func (s *Session) Ramp() {
	s.Timing.StepDuration -= constants.StepDurationDecay
	if s.Timing.StepDuration < constants.MinStepDuration {
		s.Timing.StepDuration = constants.MinStepDuration
	}
	s.Timing.TurnLimit -= constants.TurnLimitDecay
	if s.Timing.TurnLimit < constants.MinTurnLimit {
		s.Timing.TurnLimit = constants.MinTurnLimit
	}
}

// MoveSelection shifts the cursor by delta with wraparound
func (s *Session) MoveSelection(delta int) {
	s.Round.Selected = ((s.Round.Selected+delta)%palette.Count + palette.Count) % palette.Count
}

// Expected returns the color at the current sequence position
func (s *Session) Expected() (palette.Color, bool) {
	if s.Round.SequenceIndex < 0 || s.Round.SequenceIndex >= len(s.Sequence) {
		return palette.Color{}, false
	}
	return s.Sequence[s.Round.SequenceIndex], true
}

// Clone returns a deep copy
func (s *Session) Clone() Session {
	c := *s
	c.Sequence = append([]palette.Color(nil), s.Sequence...)
	return c
}
