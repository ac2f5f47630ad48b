package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/platanus-dice/constants"
)

// PipeOutput mixes into raw PCM written to an external player process
type PipeOutput struct {
	mu    sync.Mutex
	mixer *beep.Mixer

	backend *BackendConfig
	cmd     *exec.Cmd
	writer  io.WriteCloser

	running  atomic.Bool
	stopChan chan struct{}
	errChan  chan error
	wg       sync.WaitGroup
}

// NewPipeOutput creates an output that detects its player on Init
func NewPipeOutput() *PipeOutput {
	return &PipeOutput{
		mixer:   &beep.Mixer{},
		errChan: make(chan error, 1),
	}
}

// Init detects a backend and starts the write loop
func (po *PipeOutput) Init(rate beep.SampleRate) error {
	if po.running.Load() {
		return nil
	}

	backend, err := DetectBackend(int(rate))
	if err != nil {
		return err
	}

	var w io.WriteCloser
	if backend.Type == BackendOSS {
		f, err := os.OpenFile(backend.Path, os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("open %s: %w", backend.Path, err)
		}
		w = f
	} else {
		cmd := exec.Command(backend.Path, backend.Args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return fmt.Errorf("pipe to %s: %w", backend.Name, err)
		}
		if err := cmd.Start(); err != nil {
			stdin.Close()
			return fmt.Errorf("start %s: %w", backend.Name, err)
		}
		po.cmd = cmd
		w = stdin
	}

	po.start(backend, w, rate)
	return nil
}

// start launches the write loop over w
func (po *PipeOutput) start(backend *BackendConfig, w io.WriteCloser, rate beep.SampleRate) {
	po.backend = backend
	po.writer = w
	po.stopChan = make(chan struct{})
	po.running.Store(true)

	po.wg.Add(1)
	go po.loop(rate)
}

// loop renders one chunk of the mix per tick
func (po *PipeOutput) loop(rate beep.SampleRate) {
	defer po.wg.Done()

	ticker := time.NewTicker(constants.AudioPipeChunk)
	defer ticker.Stop()

	frames := rate.N(constants.AudioPipeChunk)
	mixBuf := make([][2]float64, frames)
	outBytes := make([]byte, frames*constants.AudioBytesPerFrame)

	for {
		select {
		case <-po.stopChan:
			return
		case <-ticker.C:
			po.mu.Lock()
			n, _ := po.mixer.Stream(mixBuf)
			po.mu.Unlock()
			for i := n; i < frames; i++ {
				mixBuf[i] = [2]float64{}
			}

			framesToBytes(mixBuf, outBytes)

			if _, err := po.writer.Write(outBytes); err != nil {
				select {
				case po.errChan <- fmt.Errorf("%w: %v", ErrPipeClosed, err):
				default:
				}
				po.running.Store(false)
				return
			}
		}
	}
}

// Errors reports a broken pipe once
func (po *PipeOutput) Errors() <-chan error {
	return po.errChan
}

// Backend returns the detected player, nil before Init
func (po *PipeOutput) Backend() *BackendConfig {
	return po.backend
}

func (po *PipeOutput) Play(s beep.Streamer) {
	if !po.running.Load() {
		return
	}
	po.mu.Lock()
	po.mixer.Add(s)
	po.mu.Unlock()
}

func (po *PipeOutput) Clear() {
	po.mu.Lock()
	po.mixer.Clear()
	po.mu.Unlock()
}

// Close stops the loop and the player
func (po *PipeOutput) Close() {
	if po.stopChan == nil {
		return
	}
	select {
	case <-po.stopChan:
		return
	default:
		close(po.stopChan)
	}
	po.running.Store(false)

	// Closing the pipe unblocks a write stalled on the player
	if po.writer != nil {
		po.writer.Close()
	}
	if po.cmd != nil && po.cmd.Process != nil {
		po.cmd.Process.Kill()
		po.cmd.Wait()
	}
	po.wg.Wait()
}

// framesToBytes converts stereo float frames to interleaved int16 LE
// Applies soft limiting before hard clip
func framesToBytes(in [][2]float64, out []byte) {
	for i, frame := range in {
		for ch, v := range frame {
			if v > 0.8 {
				v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
			} else if v < -0.8 {
				v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
			}

			if v > 1.0 {
				v = 1.0
			} else if v < -1.0 {
				v = -1.0
			}

			binary.LittleEndian.PutUint16(out[i*4+ch*2:], uint16(int16(v*32767)))
		}
	}
}
