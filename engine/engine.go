package engine

import (
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/platanus-dice/clock"
	"github.com/lixenwraith/platanus-dice/constants"
	"github.com/lixenwraith/platanus-dice/events"
	"github.com/lixenwraith/platanus-dice/input"
	"github.com/lixenwraith/platanus-dice/palette"
	"github.com/lixenwraith/platanus-dice/score"
)

// Picker chooses the next color index in [0, n); *rand.Rand satisfies it
type Picker interface {
	Intn(n int) int
}

// ScoreKeeper is the leaderboard the engine submits final scores to
type ScoreKeeper interface {
	Load() score.Table
	Submit(score int) score.Table
}

// Engine runs the round state machine
// All methods and scheduled callbacks must run on the goroutine advancing the scheduler
type Engine struct {
	sched  *clock.Scheduler
	bus    *events.Bus
	scores ScoreKeeper
	picker Picker
	base   *zap.Logger
	log    *zap.Logger

	// ===== SESSION =====
	session    Session
	state      State
	generation uint64       // Bumped on Start, stale callbacks compare against it
	turnTimer  clock.Handle // Only valid in StateAwaitingInput

	// ===== RESULT (valid in StateGameOver) =====
	outcome      events.Outcome
	expected     palette.Color
	mistakeIndex int
	leaderboard  score.Table
	qualified    bool
}

// New creates an idle engine; scores may be nil to skip the leaderboard
func New(sched *clock.Scheduler, bus *events.Bus, scores ScoreKeeper, picker Picker, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		sched:        sched,
		bus:          bus,
		scores:       scores,
		picker:       picker,
		base:         logger,
		log:          logger,
		mistakeIndex: -1,
	}
	e.session.Reset("")
	return e
}

// after schedules fn for the current game only
func (e *Engine) after(d time.Duration, fn func()) clock.Handle {
	gen := e.generation
	return e.sched.After(d, clock.GroupEngine, func() {
		if gen != e.generation {
			return
		}
		fn()
	})
}

// Start resets the session and begins a new game
func (e *Engine) Start() {
	e.generation++
	e.sched.CancelGroup(clock.GroupEngine)
	e.sched.CancelGroup(clock.GroupJingle)
	e.turnTimer = 0

	id := uuid.NewString()
	e.session.Reset(id)
	e.state = StateIdle
	e.outcome = events.OutcomeNone
	e.expected = palette.Color{}
	e.mistakeIndex = -1
	e.leaderboard = nil
	e.qualified = false

	e.log = e.base.With(zap.String("session", id))
	e.log.Info("game started")

	e.bus.Publish(events.EventGameStarted, events.GameStartedPayload{SessionID: id})

	e.after(constants.IntroJingleDelay, func() {
		e.bus.Publish(events.EventIntroJingle, nil)
	})
	e.after(constants.FirstRoundDelay, e.enterShowing)
}

// enterShowing appends one color and plays the sequence back
func (e *Engine) enterShowing() {
	if e.session.Level() >= constants.MaxLevel {
		e.gameOver(events.OutcomeCompleted, palette.Color{})
		return
	}

	e.state = StateShowing
	added := palette.At(e.picker.Intn(palette.Count))
	e.session.Sequence = append(e.session.Sequence, added)
	e.session.Round.SequenceIndex = 0
	e.session.Round.PlayingBack = true

	level := e.session.Level()
	e.log.Debug("round started", zap.Int("level", level), zap.String("added", added.Name))
	e.bus.Publish(events.EventRoundStarted, events.RoundStartedPayload{
		Level: level,
		Rank:  Rank(level),
		Added: added,
	})

	e.after(constants.PlaybackLeadIn, func() { e.playStep(0) })
}

// playStep shows element i, then schedules the next or opens the turn
func (e *Engine) playStep(i int) {
	if i >= len(e.session.Sequence) {
		e.session.Round.PlayingBack = false
		e.enableInput()
		return
	}

	step := e.session.Timing.StepDuration
	pulse := scale(step, constants.PlaybackPulseFactor)
	gap := scale(step, constants.PlaybackGapFactor)

	e.bus.Publish(events.EventPlaybackStep, events.PlaybackStepPayload{
		Index:    i,
		Color:    e.session.Sequence[i],
		Tone:     scale(step, constants.PlaybackToneFactor),
		Pulse:    pulse,
		StepTime: step,
	})

	e.after(pulse+gap, func() { e.playStep(i + 1) })
}

func (e *Engine) enableInput() {
	e.state = StateAwaitingInput
	e.session.Round.SequenceIndex = 0
	e.restartTurnTimer()

	e.bus.Publish(events.EventInputEnabled, events.InputEnabledPayload{
		TurnLimit: e.session.Timing.TurnLimit,
	})
}

// restartTurnTimer begins a fresh full-length turn
func (e *Engine) restartTurnTimer() {
	e.cancelTurnTimer()
	e.session.Timing.TurnStart = e.sched.Now()
	e.turnTimer = e.after(e.session.Timing.TurnLimit, e.timeout)
}

func (e *Engine) cancelTurnTimer() {
	if e.turnTimer.Valid() {
		e.sched.Cancel(e.turnTimer)
		e.turnTimer = 0
	}
}

// Handle applies one control code, returns false when the current state ignores it
func (e *Engine) Handle(code input.Code) bool {
	switch e.state {
	case StateGameOver:
		if code.IsRestart() {
			e.Start()
			return true
		}
		return false

	case StateAwaitingInput, StateRoundComplete:
		switch code {
		case input.CodeLeft:
			e.move(-1)
			return true
		case input.CodeRight:
			e.move(1)
			return true
		case input.CodeActionA:
			if e.state == StateAwaitingInput {
				e.press()
				return true
			}
		}
	}
	return false
}

// SelectIndex places the cursor directly, as a pointer does
func (e *Engine) SelectIndex(i int) bool {
	if !e.state.acceptsMovement() {
		return false
	}
	e.session.Round.Selected = 0
	e.session.MoveSelection(i)
	e.publishSelection()
	return true
}

func (e *Engine) move(delta int) {
	e.session.MoveSelection(delta)
	e.publishSelection()
}

func (e *Engine) publishSelection() {
	e.bus.Publish(events.EventSelectionMoved, events.SelectionMovedPayload{
		Index: e.session.Round.Selected,
		Color: palette.At(e.session.Round.Selected),
	})
}

// press validates the selected color against the sequence
func (e *Engine) press() {
	expected, ok := e.session.Expected()
	if !ok {
		return
	}
	got := palette.At(e.session.Round.Selected)
	idx := e.session.Round.SequenceIndex

	if got.Name != expected.Name {
		e.mistake(idx, expected, got)
		return
	}

	elapsed := e.sched.Now().Sub(e.session.Timing.TurnStart)
	e.session.Round.SequenceIndex++
	complete := e.session.Round.SequenceIndex >= len(e.session.Sequence)

	if complete {
		e.cancelTurnTimer()
	} else {
		e.restartTurnTimer()
	}

	e.bus.Publish(events.EventInputAccepted, events.InputAcceptedPayload{
		Index:    idx,
		Color:    got,
		Elapsed:  elapsed,
		Rating:   RateTurn(elapsed),
		Complete: complete,
	})

	if complete {
		e.roundComplete()
	}
}

func (e *Engine) roundComplete() {
	e.state = StateRoundComplete
	e.session.Score.Score++
	e.session.Score.Streak++
	e.session.Ramp()

	level := e.session.Level()
	e.log.Debug("round won",
		zap.Int("level", level),
		zap.Int("score", e.session.Score.Score),
		zap.Duration("step", e.session.Timing.StepDuration),
		zap.Duration("turn_limit", e.session.Timing.TurnLimit),
	)
	e.bus.Publish(events.EventRoundWon, events.RoundWonPayload{
		Level:  level,
		Score:  e.session.Score.Score,
		Streak: e.session.Score.Streak,
		Rank:   Rank(level),
	})

	e.after(constants.RoundCompleteDelay, e.enterShowing)
}

func (e *Engine) mistake(idx int, expected, got palette.Color) {
	e.cancelTurnTimer()
	e.state = StateMistake
	e.session.Score.Streak = 0
	e.mistakeIndex = idx

	e.bus.Publish(events.EventInputRejected, events.InputRejectedPayload{
		Index:    idx,
		Expected: expected,
		Got:      got,
	})

	e.after(constants.MistakeDelay, func() {
		e.gameOver(events.OutcomeWrongColor, expected)
	})
}

func (e *Engine) timeout() {
	e.turnTimer = 0
	e.session.Score.Streak = 0
	e.bus.Publish(events.EventTimedOut, nil)
	e.gameOver(events.OutcomeTimeout, palette.Color{})
}

// gameOver ends the session and submits the final score
func (e *Engine) gameOver(outcome events.Outcome, expected palette.Color) {
	e.cancelTurnTimer()
	e.state = StateGameOver
	e.session.Round.PlayingBack = false
	e.outcome = outcome
	e.expected = expected

	final := e.session.Score.Score
	e.log.Info("game over",
		zap.Stringer("outcome", outcome),
		zap.Int("score", final),
		zap.Int("level", e.session.Level()),
	)
	e.bus.Publish(events.EventGameOver, events.GameOverPayload{
		Outcome:  outcome,
		Expected: expected,
		Score:    final,
		Level:    e.session.Level(),
	})

	gen := e.generation
	table := score.Table{}
	qualified := false
	if e.scores != nil {
		qualified = score.Qualifies(e.scores.Load(), final)
		table = e.scores.Submit(final)
	}
	// A restart during the initials prompt already moved on
	if gen != e.generation {
		return
	}
	e.leaderboard = table
	e.qualified = qualified

	entries := make([]events.LeaderboardEntry, len(table))
	for i, row := range table {
		entries[i] = events.LeaderboardEntry{Initials: row.Initials, Score: row.Score}
	}
	e.bus.Publish(events.EventLeaderboardReady, events.LeaderboardPayload{
		Entries:   entries,
		Qualified: qualified,
	})
}

// State returns the current state
func (e *Engine) State() State {
	return e.state
}

// Session returns a copy of the current session
func (e *Engine) Session() Session {
	return e.session.Clone()
}

func scale(d time.Duration, f float64) time.Duration {
	return time.Duration(math.Round(float64(d) * f))
}
