package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"go.uber.org/zap"

	"github.com/lixenwraith/platanus-dice/clock"
	"github.com/lixenwraith/platanus-dice/constants"
)

// Config holds tone generator settings
type Config struct {
	Enabled    bool
	Volume     float64 // Master volume 0.0-1.0
	SampleRate int
}

// DefaultConfig returns full-volume output at the standard rate
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Volume:     1.0,
		SampleRate: constants.AudioSampleRate,
	}
}

// ToneGenerator synthesizes tones and jingles into an Output
// The output is opened lazily; failure switches to silent mode for the rest of the run
type ToneGenerator struct {
	mu     sync.Mutex
	out    Output
	sched  *clock.Scheduler
	logger *zap.Logger

	volume float64
	rate   beep.SampleRate

	muted       bool
	initialized bool
	silent      bool
}

// NewToneGenerator creates a generator; nothing touches the device until first use
func NewToneGenerator(out Output, sched *clock.Scheduler, cfg Config, logger *zap.Logger) *ToneGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = constants.AudioSampleRate
	}
	return &ToneGenerator{
		out:    out,
		sched:  sched,
		logger: logger,
		volume: clampVolume(cfg.Volume),
		rate:   beep.SampleRate(cfg.SampleRate),
		muted:  !cfg.Enabled,
	}
}

// Initialize opens the output once
func (g *ToneGenerator) Initialize() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.initLocked()
}

func (g *ToneGenerator) initLocked() {
	if g.initialized {
		return
	}
	g.initialized = true

	if g.out == nil {
		g.silent = true
		g.logger.Info("no audio output configured, running silent")
		return
	}
	if err := g.out.Init(g.rate); err != nil {
		g.silent = true
		g.logger.Warn("audio output unavailable, running silent", zap.Error(err))
		return
	}
	g.logger.Debug("audio output ready", zap.Int("sample_rate", int(g.rate)))
}

// PlayTone plays one shaped tone, returns false when nothing was played
func (g *ToneGenerator) PlayTone(freq float64, duration time.Duration, wave WaveType, vol float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.muted || duration <= 0 {
		return false
	}
	g.initLocked()
	if g.silent {
		return false
	}

	g.out.Play(NewTone(freq, duration, wave, vol*g.volume, g.rate))
	return true
}

// PlayJingle plays notes back to back, each starting overlap before the previous ends
// The first note plays now, the rest are scheduled and cancellable
func (g *ToneGenerator) PlayJingle(notes []Note, overlap time.Duration) int {
	if g.Muted() {
		return 0
	}

	played := 0
	for i, offset := range jingleOffsets(notes, overlap) {
		n := notes[i]
		if n.Volume <= 0 {
			n.Volume = constants.DefaultJingleVolume
		}
		if offset == 0 || g.sched == nil {
			if g.PlayTone(n.Freq, n.Duration, n.Wave, n.Volume) {
				played++
			}
			continue
		}
		g.sched.After(offset, clock.GroupJingle, func() {
			g.PlayTone(n.Freq, n.Duration, n.Wave, n.Volume)
		})
		played++
	}
	return played
}

// CancelJingles drops every pending jingle note
func (g *ToneGenerator) CancelJingles() int {
	if g.sched == nil {
		return 0
	}
	return g.sched.CancelGroup(clock.GroupJingle)
}

// Stop silences everything currently sounding or pending
func (g *ToneGenerator) Stop() {
	g.CancelJingles()

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.initialized && !g.silent {
		g.out.Clear()
	}
}

// Close releases the output
func (g *ToneGenerator) Close() {
	g.CancelJingles()

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.initialized && !g.silent {
		g.out.Close()
	}
	g.initialized = false
	g.silent = false
}

// SetMuted enables or disables output
func (g *ToneGenerator) SetMuted(muted bool) {
	g.mu.Lock()
	g.muted = muted
	g.mu.Unlock()

	if muted {
		g.Stop()
	}
}

// ToggleMute flips mute, returns true if sound is now enabled
func (g *ToneGenerator) ToggleMute() bool {
	muted := !g.Muted()
	g.SetMuted(muted)
	return !muted
}

// Muted returns current mute state
func (g *ToneGenerator) Muted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.muted
}

// Silent reports whether output failed to open
func (g *ToneGenerator) Silent() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.silent
}

// SetVolume updates master volume (0.0-1.0) for tones started afterwards
func (g *ToneGenerator) SetVolume(vol float64) {
	g.mu.Lock()
	g.volume = clampVolume(vol)
	g.mu.Unlock()
}

// Volume returns master volume
func (g *ToneGenerator) Volume() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.volume
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
