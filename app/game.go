// Package app wires the terminal, input, engine, audio and renderer into one game loop.
package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/platanus-dice/audio"
	"github.com/lixenwraith/platanus-dice/clock"
	"github.com/lixenwraith/platanus-dice/config"
	"github.com/lixenwraith/platanus-dice/constants"
	"github.com/lixenwraith/platanus-dice/engine"
	"github.com/lixenwraith/platanus-dice/events"
	"github.com/lixenwraith/platanus-dice/input"
	"github.com/lixenwraith/platanus-dice/render"
	"github.com/lixenwraith/platanus-dice/score"
	"github.com/lixenwraith/platanus-dice/storage"
)

// Options carries the collaborators of a Game; zero fields are built from Config
type Options struct {
	Config     *config.Config
	ConfigPath string // Watched for live audio changes, empty disables watching
	Logger     *zap.Logger

	Output audio.Output       // Nil builds one from Config.Audio.Backend
	KV     storage.KV         // Nil opens Config.Storage
	Time   clock.TimeProvider // Nil uses the monotonic clock
	Picker engine.Picker      // Nil seeds math/rand from Config.Seed
}

// Game owns the screen and runs every component on one goroutine
type Game struct {
	screen tcell.Screen
	cfg    *config.Config
	logger *zap.Logger

	time      clock.TimeProvider
	sched     *clock.Scheduler
	bus       *events.Bus
	engine    *engine.Engine
	mapper    *input.Mapper
	tone      *audio.ToneGenerator
	presenter *render.Presenter
	store     *score.Store
	kv        storage.KV
	watcher   *config.Watcher

	eventCh     chan tcell.Event
	stopCh      chan struct{}
	pumpDone    chan struct{}
	pumpOnce    sync.Once
	closeOnce   sync.Once
	lastButtons tcell.ButtonMask
}

// New assembles a game on an initialized screen; Close releases it
func New(screen tcell.Screen, opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	table, err := cfg.KeyTable()
	if err != nil {
		return nil, err
	}

	tp := opts.Time
	if tp == nil {
		tp = clock.NewMonotonicTimeProvider()
	}

	kv := opts.KV
	if kv == nil {
		kv, err = storage.Open(cfg.Storage.Backend, cfg.DataDir, cfg.Storage.Path)
		if err != nil {
			logger.Warn("storage unavailable, high scores kept in memory",
				zap.String("backend", cfg.Storage.Backend),
				zap.Error(err),
			)
			kv = storage.NewMemoryKV()
		}
	}

	out := opts.Output
	if out == nil {
		out = NewOutput(cfg.Audio.Backend)
	}

	picker := opts.Picker
	if picker == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		picker = rand.New(rand.NewSource(seed))
		logger.Debug("color picker seeded", zap.Int64("seed", seed))
	}

	g := &Game{
		screen:   screen,
		cfg:      cfg,
		logger:   logger,
		time:     tp,
		kv:       kv,
		eventCh:  make(chan tcell.Event, constants.EventChannelSize),
		stopCh:   make(chan struct{}),
		pumpDone: make(chan struct{}),
	}

	g.sched = clock.NewScheduler(tp)
	g.bus = events.NewBus(tp)
	g.mapper = input.NewMapper(table)
	g.tone = audio.NewToneGenerator(out, g.sched, audio.Config{
		Enabled:    cfg.Audio.Enabled,
		Volume:     cfg.Audio.Volume,
		SampleRate: cfg.Audio.SampleRate,
	}, logger.Named("audio"))
	g.presenter = render.NewPresenter(screen, logger.Named("render"))
	g.store = score.NewStore(kv, render.NewPrompt(screen, g.eventCh, g.promptFrame), logger.Named("score"))
	g.engine = engine.New(g.sched, g.bus, g.store, picker, logger.Named("engine"))

	g.bus.Register(g.presenter)
	g.bus.Register(g.tone)
	// Audio devices open on the first key or click
	g.mapper.OnFirstGesture(g.tone.Initialize)

	if opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath, logger.Named("config"))
		if err != nil {
			logger.Warn("config watcher unavailable", zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	screen.EnableMouse()
	screen.HideCursor()
	return g, nil
}

// Engine exposes the round engine
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// Tone exposes the tone generator
func (g *Game) Tone() *audio.ToneGenerator {
	return g.tone
}

// Run starts a game and loops until quit, a closed screen or ctx cancellation
func (g *Game) Run(ctx context.Context) error {
	g.pumpOnce.Do(func() { go g.pump() })

	var updates <-chan *config.Config
	if g.watcher != nil {
		if err := g.watcher.Start(ctx); err != nil {
			g.logger.Warn("config watcher failed to start", zap.Error(err))
		} else {
			updates = g.watcher.Updates()
			defer g.watcher.Stop()
		}
	}

	ticker := time.NewTicker(constants.FrameUpdateInterval)
	defer ticker.Stop()

	g.engine.Start()
	g.frame()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-g.eventCh:
			if !ok {
				return nil
			}
			if !g.handleEvent(ev) {
				g.logger.Info("quit requested")
				return nil
			}
			g.frame()

		case cfg := <-updates:
			g.applyConfig(cfg)

		case <-ticker.C:
			g.frame()
		}
	}
}

// pump forwards terminal events until the screen is finalized
func (g *Game) pump() {
	defer close(g.pumpDone)
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			close(g.eventCh)
			return
		}
		select {
		case g.eventCh <- ev:
		case <-g.stopCh:
			return
		}
	}
}

// frame fires due callbacks and presents the result
func (g *Game) frame() {
	g.sched.Advance()
	now := g.time.Now()
	g.presenter.Render(g.engine.Snapshot(now), now)
}

// promptFrame keeps jingles and animations running behind the initials prompt
func (g *Game) promptFrame() {
	g.sched.Advance()
	now := g.time.Now()
	g.presenter.Draw(g.engine.Snapshot(now), now)
}

// handleEvent applies one terminal event, false means quit
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if code, ok := g.mapper.MapKeyEvent(ev); ok {
			g.engine.Handle(code)
			return true
		}
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'm' || ev.Rune() == 'M') {
			enabled := g.tone.ToggleMute()
			g.logger.Info("audio toggled", zap.Bool("enabled", enabled))
		}

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && g.lastButtons&tcell.Button1 == 0
		g.lastButtons = buttons
		if !pressed {
			return true
		}
		x, y, ok := g.mapper.PointerPress(ev)
		if !ok {
			return true
		}
		if i, hit := g.presenter.ButtonAt(x, y); hit {
			if g.engine.SelectIndex(i) {
				g.engine.Handle(input.CodeActionA)
			}
		}

	case *tcell.EventResize:
		g.screen.Sync()
		g.presenter.Resize()
	}
	return true
}

// applyConfig takes the live-reloadable part of a rewritten config
func (g *Game) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	g.cfg.Audio.Enabled = cfg.Audio.Enabled
	g.cfg.Audio.Volume = cfg.Audio.Volume
	g.tone.SetMuted(!cfg.Audio.Enabled)
	g.tone.SetVolume(cfg.Audio.Volume)
	g.logger.Info("config reloaded",
		zap.Bool("audio_enabled", cfg.Audio.Enabled),
		zap.Float64("volume", cfg.Audio.Volume),
	)
}

// Close stops audio, closes storage and finalizes the screen
func (g *Game) Close() {
	g.closeOnce.Do(func() {
		g.tone.Close()
		if err := g.kv.Close(); err != nil {
			g.logger.Warn("storage close failed", zap.Error(err))
		}
		close(g.stopCh)
		g.screen.Fini()
		g.pumpOnce.Do(func() { close(g.pumpDone) })
		<-g.pumpDone
	})
}
