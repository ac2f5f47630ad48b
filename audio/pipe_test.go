package audio

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// captureWriter collects PCM written by the pipe loop
type captureWriter struct {
	mu     sync.Mutex
	data   []byte
	closed bool
	fail   bool
}

func (c *captureWriter) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail || c.closed {
		return 0, errors.New("broken pipe")
	}
	c.data = append(c.data, p...)
	return len(p), nil
}

func (c *captureWriter) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *captureWriter) nonZero() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.data {
		if b != 0 {
			return true
		}
	}
	return false
}

// TestPipeOutputWritesMix verifies a played tone reaches the player as PCM
func TestPipeOutputWritesMix(t *testing.T) {
	w := &captureWriter{}
	po := NewPipeOutput()
	po.start(&BackendConfig{Name: "capture"}, w, 8000)

	po.Play(NewTone(440, 200*time.Millisecond, WaveSquare, 0.5, 8000))

	deadline := time.Now().Add(2 * time.Second)
	for !w.nonZero() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	po.Close()

	if !w.nonZero() {
		t.Error("Expected non-silent PCM written to the pipe")
	}
	if !w.closed {
		t.Error("Expected writer closed on Close")
	}

	// Second close is a no-op
	po.Close()
}

func TestPipeOutputReportsBrokenPipe(t *testing.T) {
	w := &captureWriter{fail: true}
	po := NewPipeOutput()
	po.start(&BackendConfig{Name: "capture"}, w, 8000)

	select {
	case err := <-po.Errors():
		if !errors.Is(err, ErrPipeClosed) {
			t.Errorf("Expected ErrPipeClosed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected pipe error")
	}
	po.Close()
}

func TestDetectBackendNone(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()
	lookPath = func(string) (string, error) { return "", errors.New("not found") }

	if _, err := DetectBackend(44100); !errors.Is(err, ErrNoAudioBackend) && err != nil {
		t.Errorf("Expected ErrNoAudioBackend, got %v", err)
	}
}

func TestDetectBackendPriority(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()
	lookPath = func(name string) (string, error) {
		if name == "aplay" || name == "play" {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}

	b, err := DetectBackend(22050)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if b.Type != BackendALSA {
		t.Errorf("Expected aplay preferred over sox, got %s", b.Name)
	}
	found := false
	for _, a := range b.Args {
		if a == "22050" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected rate in args, got %v", b.Args)
	}
}
