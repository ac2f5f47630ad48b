package constants

import "time"

// Audio Output
const (
	// AudioSampleRate is the PCM rate of the speaker
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// ToneAttack is the linear ramp from silence to the tone volume
	ToneAttack = 10 * time.Millisecond
)

// Success Tone (correct press)
const (
	SuccessToneFreq     = 1000.0
	SuccessToneDuration = 100 * time.Millisecond
	SuccessToneVolume   = 0.6
)

// Playback Tone
const (
	PlaybackToneVolume = 0.4
)

// Jingle Shaping
const (
	// IntroJingleOverlap makes consecutive intro notes overlap for a legato run
	IntroJingleOverlap = 30 * time.Millisecond

	// DefaultJingleVolume applies to notes that carry no volume of their own
	DefaultJingleVolume = 0.4
)

// Pipe Backend
const (
	// AudioPipeChunk is the PCM span written per tick to an external player
	AudioPipeChunk = 20 * time.Millisecond

	// AudioBytesPerFrame is interleaved stereo s16le
	AudioBytesPerFrame = 4
)
