package constants

import "time"

// Game Loop Timing Constants
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// EventChannelSize is the buffer of the terminal event pump
	EventChannelSize = 100
)

// Level Constants
const (
	// MaxLevel is the sequence length at which the game is won
	MaxLevel = 35

	// LevelsPerRank is how many levels share one rank title
	LevelsPerRank = 5
)

// Difficulty Ramp Constants
// Both parameters shrink once per completed round and never go below their floor
const (
	InitialStepDuration = 700 * time.Millisecond
	MinStepDuration     = 250 * time.Millisecond
	StepDurationDecay   = 30 * time.Millisecond

	InitialTurnLimit = 5000 * time.Millisecond
	MinTurnLimit     = 1500 * time.Millisecond
	TurnLimitDecay   = 150 * time.Millisecond
)

// Transition Delays
const (
	// IntroJingleDelay is the wait between game start and the intro jingle
	IntroJingleDelay = 1000 * time.Millisecond

	// FirstRoundDelay is the wait between game start and the first round
	FirstRoundDelay = IntroJingleDelay + 700*time.Millisecond

	// PlaybackLeadIn is the pause between a round announcement and its playback
	PlaybackLeadIn = 1200 * time.Millisecond

	// RoundCompleteDelay is the celebration pause before the next round
	RoundCompleteDelay = 1800 * time.Millisecond

	// MistakeDelay is the feedback pause before a wrong press ends the game
	MistakeDelay = 1000 * time.Millisecond

	// RatingDisplayDuration is how long a turn rating replaces the status banner
	RatingDisplayDuration = 500 * time.Millisecond
)

// Playback Shape
// Each played-back element pulses for PulseFactor of the step duration (yoyo included),
// then waits GapFactor before the next element. Its tone lasts ToneFactor of the step.
const (
	PlaybackPulseFactor = 0.8
	PlaybackGapFactor   = 0.6
	PlaybackToneFactor  = 0.5
)

// Turn Rating Bands (upper bounds, exclusive)
const (
	RatingFlashBelow  = 500 * time.Millisecond
	RatingFastBelow   = 1500 * time.Millisecond
	RatingGoodBelow   = 3000 * time.Millisecond
	RatingBarelyBelow = 4500 * time.Millisecond
)

// High Score Constants
const (
	// HighScoreKey is the storage key of the leaderboard
	HighScoreKey = "platanusDiceHighScores"

	// HighScoreSlots is the leaderboard capacity
	HighScoreSlots = 5

	// InitialsLength is the exact length of a leaderboard name
	InitialsLength = 3

	// DefaultInitials is used when the player enters nothing
	DefaultInitials = "AAA"
)
