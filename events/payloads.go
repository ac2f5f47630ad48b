package events

import (
	"time"

	"github.com/lixenwraith/platanus-dice/palette"
)

// Outcome classifies how a session ended
type Outcome int

const (
	OutcomeNone       Outcome = iota
	OutcomeCompleted          // Max level reached
	OutcomeWrongColor         // Mismatched press
	OutcomeTimeout            // Turn timer expired
)

// String returns the outcome name used in logs
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeWrongColor:
		return "wrong_color"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "none"
	}
}

// GameStartedPayload identifies the new session
type GameStartedPayload struct {
	SessionID string
}

// RoundStartedPayload describes the round about to be played back
type RoundStartedPayload struct {
	Level int // Sequence length after the append
	Rank  string
	Added palette.Color
}

// PlaybackStepPayload describes one shown sequence element
type PlaybackStepPayload struct {
	Index    int
	Color    palette.Color
	Tone     time.Duration // Cue tone length
	Pulse    time.Duration // Visual pulse length, yoyo included
	StepTime time.Duration // Current step duration
}

// InputEnabledPayload carries the turn limit of the round
type InputEnabledPayload struct {
	TurnLimit time.Duration
}

// SelectionMovedPayload carries the new cursor position
type SelectionMovedPayload struct {
	Index int
	Color palette.Color
}

// InputAcceptedPayload describes a correct press
type InputAcceptedPayload struct {
	Index    int // Position that was matched
	Color    palette.Color
	Elapsed  time.Duration
	Rating   string
	Complete bool // Whole sequence reproduced
}

// InputRejectedPayload describes a wrong press at a logical sequence index
type InputRejectedPayload struct {
	Index    int
	Expected palette.Color
	Got      palette.Color
}

// RoundWonPayload carries counters after a completed round
type RoundWonPayload struct {
	Level  int
	Score  int
	Streak int
	Rank   string
}

// GameOverPayload describes the end of a session
type GameOverPayload struct {
	Outcome  Outcome
	Expected palette.Color // Set for OutcomeWrongColor
	Score    int
	Level    int
}

// LeaderboardEntry mirrors one high score row without importing the score package
type LeaderboardEntry struct {
	Initials string
	Score    int
}

// LeaderboardPayload carries the table after submission
type LeaderboardPayload struct {
	Entries   []LeaderboardEntry
	Qualified bool // Final score entered the table
}
