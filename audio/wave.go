package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/platanus-dice/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSquare WaveType = iota
	WaveSine
	WaveSawtooth
	WaveTriangle
)

var waveNames = [...]string{"square", "sine", "sawtooth", "triangle"}

func (w WaveType) String() string {
	if w < 0 || int(w) >= len(waveNames) {
		return "unknown"
	}
	return waveNames[w]
}

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.duration {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.duration {
			return i, true
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSawtooth:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 1.0 - 4.0*math.Abs(o.phase-0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps linearly up over attack, then linearly down to zero at the end
type envelope struct {
	streamer      beep.Streamer
	position      int
	attackSamples int
	totalSamples  int
}

// NewEnvelope shapes a stream of the given total duration
func NewEnvelope(s beep.Streamer, duration, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	if att > total {
		att = total
	}
	return &envelope{
		streamer:      s,
		attackSamples: att,
		totalSamples:  total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if remain := e.totalSamples - e.position; len(samples) > remain {
		samples = samples[:remain]
	}

	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		samples[i][0] *= e.gain()
		samples[i][1] *= e.gain()
		e.position++
	}
	return n, ok
}

// gain at the current position
func (e *envelope) gain() float64 {
	if e.position < e.attackSamples {
		return float64(e.position) / float64(e.attackSamples)
	}
	release := e.totalSamples - e.attackSamples
	if release <= 0 {
		return 0
	}
	return float64(e.totalSamples-e.position) / float64(release)
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so 0 volume is made silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// NewTone builds a shaped tone: wave at freq, attack then fade to zero at duration
func NewTone(freq float64, duration time.Duration, wave WaveType, vol float64, rate beep.SampleRate) beep.Streamer {
	var src beep.Streamer
	if wave == WaveSine {
		// Library sine is used when the frequency is representable at this rate
		if sine, err := generators.SineTone(rate, freq); err == nil {
			src = beep.Take(rate.N(duration), sine)
		}
	}
	if src == nil {
		src = NewOscillator(freq, duration, wave, rate)
	}

	shaped := NewEnvelope(src, duration, constants.ToneAttack, rate)
	return newVolume(shaped, vol)
}
