package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/platanus-dice/constants"
)

// Output is a PCM sink accepting streamers to mix
type Output interface {
	Init(rate beep.SampleRate) error
	Play(s beep.Streamer)
	Clear()
	Close()
}

// SpeakerOutput plays through the beep speaker device
type SpeakerOutput struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeakerOutput creates an uninitialized speaker output
func NewSpeakerOutput() *SpeakerOutput {
	return &SpeakerOutput{mixer: &beep.Mixer{}}
}

// Init opens the device, safe to call more than once
func (so *SpeakerOutput) Init(rate beep.SampleRate) error {
	so.mu.Lock()
	defer so.mu.Unlock()

	if so.initialized {
		return nil
	}

	if err := speaker.Init(rate, rate.N(constants.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(so.mixer)
	so.initialized = true
	return nil
}

// Play adds s to the running mix
func (so *SpeakerOutput) Play(s beep.Streamer) {
	so.mu.Lock()
	defer so.mu.Unlock()

	if !so.initialized {
		return
	}
	speaker.Lock()
	so.mixer.Add(s)
	speaker.Unlock()
}

// Clear drops every playing streamer
func (so *SpeakerOutput) Clear() {
	so.mu.Lock()
	defer so.mu.Unlock()

	if !so.initialized {
		return
	}
	speaker.Lock()
	so.mixer.Clear()
	speaker.Unlock()
}

// Close releases the device
func (so *SpeakerOutput) Close() {
	so.mu.Lock()
	defer so.mu.Unlock()

	if !so.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	so.initialized = false
}

// fallbackOutput tries each output in order and keeps the first that initializes
type fallbackOutput struct {
	candidates []Output
	active     Output
}

// NewFallbackOutput returns an output that uses the first candidate to initialize
func NewFallbackOutput(candidates ...Output) Output {
	return &fallbackOutput{candidates: candidates}
}

func (f *fallbackOutput) Init(rate beep.SampleRate) error {
	if f.active != nil {
		return nil
	}
	var firstErr error
	for _, c := range f.candidates {
		err := c.Init(rate)
		if err == nil {
			f.active = c
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = ErrNoAudioBackend
	}
	return firstErr
}

func (f *fallbackOutput) Play(s beep.Streamer) {
	if f.active != nil {
		f.active.Play(s)
	}
}

func (f *fallbackOutput) Clear() {
	if f.active != nil {
		f.active.Clear()
	}
}

func (f *fallbackOutput) Close() {
	if f.active != nil {
		f.active.Close()
		f.active = nil
	}
}
