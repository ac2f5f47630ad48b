package audio

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/platanus-dice/clock"
	"github.com/lixenwraith/platanus-dice/events"
	"github.com/lixenwraith/platanus-dice/palette"
)

// recordingOutput counts streamers instead of playing them
type recordingOutput struct {
	mu      sync.Mutex
	initErr error
	inits   int
	played  int
	clears  int
	closed  bool
}

func (r *recordingOutput) Init(beep.SampleRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inits++
	return r.initErr
}

func (r *recordingOutput) Play(beep.Streamer) {
	r.mu.Lock()
	r.played++
	r.mu.Unlock()
}

func (r *recordingOutput) Clear() {
	r.mu.Lock()
	r.clears++
	r.mu.Unlock()
}

func (r *recordingOutput) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

func (r *recordingOutput) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.played
}

func newTestGenerator(out Output) (*ToneGenerator, *clock.MockTimeProvider, *clock.Scheduler) {
	mock := clock.NewMockTimeProvider(time.Unix(0, 0))
	sched := clock.NewScheduler(mock)
	return NewToneGenerator(out, sched, DefaultConfig(), nil), mock, sched
}

// TestLazyInitialization verifies the output opens on first tone, once
func TestLazyInitialization(t *testing.T) {
	out := &recordingOutput{}
	g, _, _ := newTestGenerator(out)

	if out.inits != 0 {
		t.Fatal("Output initialized before first use")
	}

	g.PlayTone(440, 100*time.Millisecond, WaveSquare, 0.4)
	g.PlayTone(440, 100*time.Millisecond, WaveSquare, 0.4)
	g.Initialize()

	if out.inits != 1 {
		t.Errorf("Expected 1 init, got %d", out.inits)
	}
	if out.count() != 2 {
		t.Errorf("Expected 2 tones played, got %d", out.count())
	}
}

// TestSilentModeOnInitFailure verifies a failed device never raises and plays nothing
func TestSilentModeOnInitFailure(t *testing.T) {
	out := &recordingOutput{initErr: errors.New("no device")}
	g, _, _ := newTestGenerator(out)

	if g.PlayTone(440, 100*time.Millisecond, WaveSquare, 0.4) {
		t.Error("Expected PlayTone to report nothing played")
	}
	if !g.Silent() {
		t.Error("Expected silent mode")
	}

	g.PlayTone(440, 100*time.Millisecond, WaveSquare, 0.4)
	if out.inits != 1 {
		t.Errorf("Expected init attempted once, got %d", out.inits)
	}
	if out.count() != 0 {
		t.Errorf("Expected nothing played, got %d", out.count())
	}
}

func TestNilOutputIsSilent(t *testing.T) {
	g := NewToneGenerator(nil, nil, DefaultConfig(), nil)

	if g.PlayTone(440, time.Second, WaveSine, 1) {
		t.Error("Expected no playback without output")
	}
	if g.PlayJingle(WinJingle.Notes, 0) != 0 {
		t.Error("Expected no jingle notes without output")
	}
	g.Close()
}

// TestJingleScheduling verifies notes fire at their offsets through the scheduler
func TestJingleScheduling(t *testing.T) {
	out := &recordingOutput{}
	g, mock, sched := newTestGenerator(out)

	n := g.PlayJingle(IntroJingle.Notes, IntroJingle.Overlap)
	if n != 5 {
		t.Fatalf("Expected 5 notes, got %d", n)
	}
	if out.count() != 1 {
		t.Errorf("Expected first note immediately, got %d", out.count())
	}
	if sched.Pending(clock.GroupJingle) != 4 {
		t.Errorf("Expected 4 pending notes, got %d", sched.Pending(clock.GroupJingle))
	}

	clock.Drive(mock, sched, 89*time.Millisecond)
	if out.count() != 1 {
		t.Errorf("Expected second note not yet played, got %d", out.count())
	}

	clock.Drive(mock, sched, time.Millisecond)
	if out.count() != 2 {
		t.Errorf("Expected second note at 90ms, got %d", out.count())
	}

	clock.Drive(mock, sched, time.Second)
	if out.count() != 5 {
		t.Errorf("Expected all notes played, got %d", out.count())
	}
}

func TestCancelJingles(t *testing.T) {
	out := &recordingOutput{}
	g, mock, sched := newTestGenerator(out)

	g.PlayJingle(GameOverJingle.Notes, 0)
	if got := g.CancelJingles(); got != 2 {
		t.Errorf("Expected 2 cancelled notes, got %d", got)
	}

	clock.Drive(mock, sched, time.Second)
	if out.count() != 1 {
		t.Errorf("Expected only the first note, got %d", out.count())
	}
}

func TestMute(t *testing.T) {
	out := &recordingOutput{}
	g, _, sched := newTestGenerator(out)

	g.PlayJingle(WinJingle.Notes, 0)

	if g.ToggleMute() {
		t.Error("Expected toggle to report sound disabled")
	}
	if sched.Pending(clock.GroupJingle) != 0 {
		t.Error("Expected mute to drop pending notes")
	}
	if g.PlayTone(440, time.Second, WaveSine, 1) {
		t.Error("Expected muted tone to be skipped")
	}
	if !g.ToggleMute() {
		t.Error("Expected toggle to report sound enabled")
	}
	if !g.PlayTone(440, time.Second, WaveSine, 1) {
		t.Error("Expected tone after unmute")
	}
}

func TestDisabledConfigStartsMuted(t *testing.T) {
	out := &recordingOutput{}
	cfg := DefaultConfig()
	cfg.Enabled = false
	g := NewToneGenerator(out, nil, cfg, nil)

	if !g.Muted() {
		t.Error("Expected disabled config to start muted")
	}
	g.PlayTone(440, time.Second, WaveSine, 1)
	if out.inits != 0 {
		t.Error("Expected muted generator to leave output untouched")
	}
}

func TestSetVolumeClamps(t *testing.T) {
	g := NewToneGenerator(nil, nil, DefaultConfig(), nil)

	g.SetVolume(1.5)
	if g.Volume() != 1 {
		t.Errorf("Expected 1, got %v", g.Volume())
	}
	g.SetVolume(-1)
	if g.Volume() != 0 {
		t.Errorf("Expected 0, got %v", g.Volume())
	}
}

// TestEventMapping verifies each engine event produces the documented sound count
func TestEventMapping(t *testing.T) {
	rojo := palette.Catalog[0]

	tests := []struct {
		name    string
		ev      events.GameEvent
		immed   int
		pending int
	}{
		{"intro", events.GameEvent{Type: events.EventIntroJingle}, 1, 4},
		{"playback", events.GameEvent{Type: events.EventPlaybackStep, Payload: events.PlaybackStepPayload{
			Color: rojo, Tone: 350 * time.Millisecond,
		}}, 1, 0},
		{"accepted", events.GameEvent{Type: events.EventInputAccepted}, 1, 0},
		{"round won", events.GameEvent{Type: events.EventRoundWon}, 1, 2},
		{"game over", events.GameEvent{Type: events.EventGameOver}, 1, 2},
		{"playback without payload", events.GameEvent{Type: events.EventPlaybackStep}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &recordingOutput{}
			g, _, sched := newTestGenerator(out)

			g.HandleEvent(tt.ev)

			if out.count() != tt.immed {
				t.Errorf("Expected %d immediate tones, got %d", tt.immed, out.count())
			}
			if sched.Pending(clock.GroupJingle) != tt.pending {
				t.Errorf("Expected %d pending notes, got %d", tt.pending, sched.Pending(clock.GroupJingle))
			}
		})
	}
}

// TestGameStartedSilences verifies a restart drops pending notes and clears the mix
func TestGameStartedSilences(t *testing.T) {
	out := &recordingOutput{}
	g, _, sched := newTestGenerator(out)

	g.HandleEvent(events.GameEvent{Type: events.EventGameOver})
	g.HandleEvent(events.GameEvent{Type: events.EventGameStarted})

	if sched.Pending(clock.GroupJingle) != 0 {
		t.Error("Expected no pending notes after restart")
	}
	if out.clears != 1 {
		t.Errorf("Expected output cleared once, got %d", out.clears)
	}
}

func TestBusSubscription(t *testing.T) {
	out := &recordingOutput{}
	g, mock, _ := newTestGenerator(out)

	bus := events.NewBus(mock)
	bus.Register(g)

	bus.Publish(events.EventInputAccepted, events.InputAcceptedPayload{})
	if out.count() != 1 {
		t.Errorf("Expected success tone via bus, got %d", out.count())
	}
}

func TestFallbackOutput(t *testing.T) {
	bad := &recordingOutput{initErr: errors.New("busy")}
	good := &recordingOutput{}
	out := NewFallbackOutput(bad, good)

	if err := out.Init(44100); err != nil {
		t.Fatalf("Expected fallback to succeed, got %v", err)
	}
	out.Play(nil)
	if good.count() != 1 || bad.count() != 0 {
		t.Error("Expected playback routed to the working output")
	}

	none := NewFallbackOutput(bad)
	if err := none.Init(44100); err == nil {
		t.Error("Expected error when no candidate initializes")
	}
}
