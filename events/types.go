package events

import (
	"time"
)

// EventType represents the type of game event
type EventType int

const (
	// EventGameStarted signals a fresh session after reset
	// Trigger: Engine.Start | Payload: GameStartedPayload
	EventGameStarted EventType = iota

	// EventIntroJingle signals the opening fanfare
	// Trigger: Start + intro delay | Consumer: ToneGenerator | Payload: nil
	EventIntroJingle

	// EventRoundStarted signals a color was appended and playback is about to begin
	// Consumer: Presenter (banner) | Payload: RoundStartedPayload
	EventRoundStarted

	// EventPlaybackStep signals one sequence element being shown
	// Consumer: ToneGenerator (cue tone), Presenter (pulse) | Payload: PlaybackStepPayload
	EventPlaybackStep

	// EventInputEnabled signals playback finished and the turn timer started
	// Payload: InputEnabledPayload
	EventInputEnabled

	// EventSelectionMoved signals cursor navigation over the color buttons
	// Payload: SelectionMovedPayload
	EventSelectionMoved

	// EventInputAccepted signals a correct press
	// Consumer: ToneGenerator (success tone), Presenter (rating, slot fill) | Payload: InputAcceptedPayload
	EventInputAccepted

	// EventInputRejected signals a wrong press, streak already reset
	// Consumer: Presenter (error slot flash) | Payload: InputRejectedPayload
	EventInputRejected

	// EventRoundWon signals the whole sequence was reproduced
	// Consumer: ToneGenerator (win jingle), Presenter | Payload: RoundWonPayload
	EventRoundWon

	// EventTimedOut signals turn timer expiry, streak already reset
	// Payload: nil
	EventTimedOut

	// EventGameOver signals the end of the session, emitted before the score is submitted
	// Consumer: ToneGenerator (game over jingle), Presenter | Payload: GameOverPayload
	EventGameOver

	// EventLeaderboardReady signals the final score was submitted and the table is current
	// Consumer: Presenter | Payload: LeaderboardPayload
	EventLeaderboardReady

	eventTypeCount
)

var eventNames = [eventTypeCount]string{
	EventGameStarted:      "GameStarted",
	EventIntroJingle:      "IntroJingle",
	EventRoundStarted:     "RoundStarted",
	EventPlaybackStep:     "PlaybackStep",
	EventInputEnabled:     "InputEnabled",
	EventSelectionMoved:   "SelectionMoved",
	EventInputAccepted:    "InputAccepted",
	EventInputRejected:    "InputRejected",
	EventRoundWon:         "RoundWon",
	EventTimedOut:         "TimedOut",
	EventGameOver:         "GameOver",
	EventLeaderboardReady: "LeaderboardReady",
}

// String returns the event name
func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return "Unknown"
	}
	return eventNames[t]
}

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Timestamp time.Time
}
