package audio

import (
	"time"
)

// Note is one jingle step
type Note struct {
	Freq     float64
	Duration time.Duration
	Wave     WaveType
	Volume   float64
}

// Jingle is an ordered run of notes; each starts Overlap before the previous ends
type Jingle struct {
	Name    string
	Notes   []Note
	Overlap time.Duration
}

// IntroJingle plays when a game starts
var IntroJingle = Jingle{
	Name: "intro",
	Notes: []Note{
		{440, 120 * time.Millisecond, WaveSquare, 0.4},
		{392, 120 * time.Millisecond, WaveSquare, 0.4},
		{349, 120 * time.Millisecond, WaveSquare, 0.4},
		{330, 120 * time.Millisecond, WaveSquare, 0.4},
		{311, 150 * time.Millisecond, WaveTriangle, 0.6},
	},
	Overlap: 30 * time.Millisecond,
}

// WinJingle plays on a completed round
var WinJingle = Jingle{
	Name: "win",
	Notes: []Note{
		{659, 100 * time.Millisecond, WaveSine, 0.5},
		{783, 100 * time.Millisecond, WaveSine, 0.5},
		{987, 250 * time.Millisecond, WaveSine, 0.7},
	},
}

// GameOverJingle plays on any game over
var GameOverJingle = Jingle{
	Name: "game_over",
	Notes: []Note{
		{330, 200 * time.Millisecond, WaveSawtooth, 0.6},
		{247, 200 * time.Millisecond, WaveSawtooth, 0.6},
		{165, 500 * time.Millisecond, WaveSquare, 0.8},
	},
}

// jingleOffsets returns each note's start relative to the first
func jingleOffsets(notes []Note, overlap time.Duration) []time.Duration {
	offsets := make([]time.Duration, len(notes))
	var at time.Duration
	for i, n := range notes {
		offsets[i] = at
		at += n.Duration - overlap
		if at < 0 {
			at = 0
		}
	}
	return offsets
}
