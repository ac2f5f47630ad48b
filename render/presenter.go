package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/platanus-dice/constants"
	"github.com/lixenwraith/platanus-dice/engine"
	"github.com/lixenwraith/platanus-dice/events"
	"github.com/lixenwraith/platanus-dice/palette"
	"github.com/lixenwraith/platanus-dice/score"
)

// Banner texts
const (
	TitleBanner     = "🍌 PLATANUS DICE 🍌"
	TurnBanner      = "¡TU TURNO, HACKER!"
	CompletedBanner = "¡JUEGO SUPERADO! ERES EL REY BANANERO"
	TimeoutBanner   = "⏰ ¡TIEMPO AGOTADO!"
	BoardTitle      = "TABLA DE PLATANO-RANGOS"
	RestartPrompt   = "PRESIONA P1A O START PARA REINICIAR"
)

// gameOverFlashFor covers six fade cycles of the final banner
const gameOverFlashFor = 6 * 2 * 200 * time.Millisecond

// effect is a transient animation anchored at an event timestamp
type effect struct {
	index int
	start time.Time
	dur   time.Duration
}

func (e effect) active(now time.Time) bool {
	return e.index >= 0 && now.Sub(e.start) < e.dur
}

// progress returns elapsed/dur clamped to [0,1]
func (e effect) progress(now time.Time) float64 {
	if e.dur <= 0 {
		return 1
	}
	p := float64(now.Sub(e.start)) / float64(e.dur)
	return max(0, min(1, p))
}

// Presenter draws the game from engine snapshots
// Event driven state covers what a snapshot cannot show: banner text and animations
type Presenter struct {
	screen tcell.Screen
	layout Layout
	logger *zap.Logger

	banner      []string
	bannerColor RGB
	rating      string
	ratingUntil time.Time
	gameOverAt  time.Time

	pulse    effect // Playback highlight
	press    effect // Pressed button feedback
	errSlot  effect // Mistaken slot flash
	prevSize [2]int
}

// NewPresenter creates a presenter for screen
func NewPresenter(screen tcell.Screen, logger *zap.Logger) *Presenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, h := screen.Size()
	p := &Presenter{
		screen: screen,
		layout: NewLayout(w, h),
		logger: logger,
	}
	p.reset()
	return p
}

func (p *Presenter) reset() {
	p.banner = []string{TitleBanner}
	p.bannerColor = rgbBanner
	p.rating = ""
	p.ratingUntil = time.Time{}
	p.gameOverAt = time.Time{}
	p.pulse = effect{index: -1}
	p.press = effect{index: -1}
	p.errSlot = effect{index: -1}
}

// Layout returns the current widget placement
func (p *Presenter) Layout() Layout {
	return p.layout
}

// Banner returns the current status lines
func (p *Presenter) Banner() []string {
	return append([]string(nil), p.banner...)
}

// ButtonAt maps a screen cell to a catalog index
func (p *Presenter) ButtonAt(x, y int) (int, bool) {
	return p.layout.ButtonAt(x, y)
}

// Resize recomputes the layout for the current screen size
func (p *Presenter) Resize() {
	w, h := p.screen.Size()
	if w == p.prevSize[0] && h == p.prevSize[1] {
		return
	}
	p.prevSize = [2]int{w, h}
	p.layout = NewLayout(w, h)
	p.logger.Debug("layout changed", zap.Int("width", w), zap.Int("height", h))
}

// EventTypes implements events.Handler
func (p *Presenter) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventGameStarted,
		events.EventRoundStarted,
		events.EventPlaybackStep,
		events.EventInputEnabled,
		events.EventInputAccepted,
		events.EventInputRejected,
		events.EventRoundWon,
		events.EventGameOver,
	}
}

// HandleEvent updates banner text and transient effects
func (p *Presenter) HandleEvent(ev events.GameEvent) {
	switch ev.Type {
	case events.EventGameStarted:
		p.reset()

	case events.EventRoundStarted:
		if pl, ok := ev.Payload.(events.RoundStartedPayload); ok {
			p.setBanner(rgbBanner, fmt.Sprintf("NIVEL %d [%s]: ¡OBSERVA!", pl.Level, pl.Rank))
		}

	case events.EventPlaybackStep:
		if pl, ok := ev.Payload.(events.PlaybackStepPayload); ok {
			idx, _ := palette.Index(pl.Color.Name)
			p.pulse = effect{index: idx, start: ev.Timestamp, dur: pl.Pulse}
		}

	case events.EventInputEnabled:
		p.setBanner(rgbBanner, TurnBanner)

	case events.EventInputAccepted:
		if pl, ok := ev.Payload.(events.InputAcceptedPayload); ok {
			p.pressed(pl.Color, ev.Timestamp)
			p.rating = pl.Rating
			p.ratingUntil = ev.Timestamp.Add(constants.RatingDisplayDuration)
		}

	case events.EventInputRejected:
		if pl, ok := ev.Payload.(events.InputRejectedPayload); ok {
			p.pressed(pl.Got, ev.Timestamp)
			p.errSlot = effect{
				index: pl.Index,
				start: ev.Timestamp,
				dur:   2 * constants.ErrorSlotFlashPeriod * constants.ErrorSlotFlashCount,
			}
		}

	case events.EventRoundWon:
		if pl, ok := ev.Payload.(events.RoundWonPayload); ok {
			// The win text replaces a pending rating
			p.rating = ""
			p.setBanner(rgbBanner, fmt.Sprintf("¡NIVEL SUPERADO! ERES %s.", pl.Rank))
		}

	case events.EventGameOver:
		if pl, ok := ev.Payload.(events.GameOverPayload); ok {
			p.rating = ""
			p.gameOverAt = ev.Timestamp
			p.setBanner(rgbGameOver, GameOverMessage(pl.Outcome, pl.Expected), "", fmt.Sprintf("PUNTAJE FINAL: %d", pl.Score))
		}
	}
}

func (p *Presenter) setBanner(c RGB, lines ...string) {
	p.banner = lines
	p.bannerColor = c
}

func (p *Presenter) pressed(c palette.Color, at time.Time) {
	idx, _ := palette.Index(c.Name)
	p.press = effect{index: idx, start: at, dur: constants.PressFeedbackDuration}
}

// GameOverMessage returns the headline for how the session ended
func GameOverMessage(outcome events.Outcome, expected palette.Color) string {
	switch outcome {
	case events.OutcomeCompleted:
		return CompletedBanner
	case events.OutcomeWrongColor:
		return fmt.Sprintf("¡ERROR! ERA %s 🍌", expected.Name)
	case events.OutcomeTimeout:
		return TimeoutBanner
	default:
		return ""
	}
}

// LeaderboardLine formats one table row, rank is 1-based
func LeaderboardLine(rank int, e score.Entry) string {
	return fmt.Sprintf("%d. %s ............ %d", rank, e.Initials, e.Score)
}

// Draw renders one frame without showing it
func (p *Presenter) Draw(snap engine.Snapshot, now time.Time) {
	p.Resize()
	p.screen.Fill(' ', styleDefault)

	l := p.layout
	if !l.Fits() {
		drawCentered(p.screen, l.Width, l.Height/2,
			fmt.Sprintf("TERMINAL DEMASIADO PEQUEÑA (%dx%d)", constants.MinScreenWidth, constants.MinScreenHeight),
			fg(rgbBanner))
		return
	}

	p.drawDeco()
	p.drawHeader(snap, now)
	p.drawBanner(snap, now)
	p.drawSlots(snap, now)
	p.drawButtons(snap, now)
	if snap.State == engine.StateGameOver {
		p.drawLeaderboard(snap)
	} else {
		drawCentered(p.screen, l.Width, l.FooterY,
			"←/→ ELEGIR   P1A PULSAR   M SONIDO   ESC SALIR", fg(rgbHint))
	}
}

// Render draws and shows one frame
func (p *Presenter) Render(snap engine.Snapshot, now time.Time) {
	p.Draw(snap, now)
	p.screen.Show()
}

func (p *Presenter) drawDeco() {
	style := styleDefault.Background(rgbDeco.Tcell())
	l := p.layout
	fillRect(p.screen, Rect{X: 0, Y: l.Top, W: l.Width, H: 1}, ' ', style)
}

func (p *Presenter) drawHeader(snap engine.Snapshot, now time.Time) {
	l := p.layout
	y := l.HeaderY
	s := snap.Session.Score

	drawText(p.screen, 2, y, fmt.Sprintf("PUNTAJE: %d", s.Score), fg(rgbScore).Bold(true))

	if snap.State != engine.StateGameOver {
		drawCentered(p.screen, l.Width, y, fmt.Sprintf("RACHA: %d", s.Streak), fg(rgbStreak).Bold(true))
	}

	text := FormatCountdown(snap.Remaining, snap.TimerActive)
	c := rgbUrgencyCalm
	if snap.TimerActive {
		c = UrgencyColor(snap.Remaining, now)
	}
	drawRight(p.screen, l.Width-2, y, text, fg(c).Bold(true))
}

func (p *Presenter) drawBanner(snap engine.Snapshot, now time.Time) {
	l := p.layout

	if p.rating != "" && now.Before(p.ratingUntil) {
		drawCentered(p.screen, l.Width, l.BannerY, p.rating, fg(rgbRating).Bold(true))
		return
	}

	c := p.bannerColor
	if snap.State == engine.StateGameOver && !p.gameOverAt.IsZero() {
		// Yoyo fade to half intensity, repeated
		elapsed := now.Sub(p.gameOverAt)
		if elapsed >= 0 && elapsed < gameOverFlashFor {
			cycle := gameOverFlashFor / 6
			phase := float64(elapsed%cycle) / float64(cycle)
			c = rgbBackground.Blend(c, 1-0.5*triangle(phase))
		}
	}
	style := fg(c).Bold(true)
	for i, line := range p.banner {
		if i >= 3 {
			break
		}
		drawCentered(p.screen, l.Width, l.BannerY+i, line, style)
	}
}

func (p *Presenter) drawSlots(snap engine.Snapshot, now time.Time) {
	seq := snap.Session.Sequence
	entered := snap.Session.Round.SequenceIndex
	if snap.Session.Round.PlayingBack {
		entered = 0
	}

	errIndex := -1
	if p.errSlot.active(now) {
		half := int(now.Sub(p.errSlot.start) / constants.ErrorSlotFlashPeriod)
		if half%2 == 0 {
			errIndex = p.errSlot.index
		}
	}

	for i, c := range seq {
		r := p.layout.Slot(i, len(seq))
		switch {
		case i == errIndex:
			bg := styleDefault.Background(rgbSlotError.Tcell()).Foreground(tcell.ColorWhite)
			drawText(p.screen, r.X, r.Y, "[?]", bg)
		case i < entered:
			fill := styleDefault.Background(ColorRGB(c).Dim(0.2).Tcell()).Foreground(rgbSlotDone.Tcell())
			drawText(p.screen, r.X, r.Y, "[ ]", fill)
		default:
			border := fg(rgbSlotBorder)
			p.screen.SetContent(r.X, r.Y, '[', nil, border)
			p.screen.SetContent(r.X+1, r.Y, '?', nil, styleDefault)
			p.screen.SetContent(r.X+2, r.Y, ']', nil, border)
		}
	}
}

func (p *Presenter) drawButtons(snap engine.Snapshot, now time.Time) {
	showSelection := !snap.Session.Round.PlayingBack && snap.State != engine.StateIdle
	selected := snap.Session.Round.Selected

	for i, c := range palette.Catalog {
		r := p.layout.Buttons[c.Name]
		base := ColorRGB(c)
		fill := base
		frame := frameThin
		frameColor := rgbFrame

		if showSelection && i == selected {
			alpha := 0.8 + 0.2*triangle(phaseOf(now, constants.SelectionPulsePeriod))
			fill = rgbBackground.Blend(base, alpha)
			frame = frameThick
			frameColor = rgbSelected
		}

		if p.pulse.index == i && p.pulse.active(now) {
			// Playback grows the button by one cell and brightens it
			amount := triangle(p.pulse.progress(now))
			fill = base.Lighten(0.5 * amount)
			frame = frameThick
			frameColor = rgbFrame
			fillRect(p.screen, r.Grow(1), ' ', styleDefault.Background(fill.Tcell()))
			drawFrame(p.screen, r.Grow(1), frame, fg(frameColor))
			p.drawLabel(r, c, fill)
			continue
		}

		if p.press.index == i && p.press.active(now) {
			fill = fill.Dim(0.3)
		}

		fillRect(p.screen, r, ' ', styleDefault.Background(fill.Tcell()))
		drawFrame(p.screen, r, frame, fg(frameColor))
		p.drawLabel(r, c, fill)
	}
}

// drawLabel writes the color name on the button's middle row
func (p *Presenter) drawLabel(r Rect, c palette.Color, fill RGB) {
	text := tcell.ColorBlack
	if luminance(fill) < 128 {
		text = tcell.ColorWhite
	}
	name := strings.ToUpper(c.Name)
	if len(name) > r.W {
		name = name[:r.W]
	}
	x := r.X + (r.W-len(name))/2
	drawText(p.screen, x, r.Y+r.H/2, name, styleDefault.Background(fill.Tcell()).Foreground(text))
}

func (p *Presenter) drawLeaderboard(snap engine.Snapshot) {
	l := p.layout
	drawCentered(p.screen, l.Width, l.BoardTitleY, BoardTitle, fg(rgbBoardTitle).Bold(true))
	for i, e := range snap.Leaderboard {
		if i >= constants.HighScoreSlots {
			break
		}
		drawCentered(p.screen, l.Width, l.BoardY+i, LeaderboardLine(i+1, e), fg(rgbBoardRow))
	}
	restart := styleDefault.Background(rgbRestartBg.Tcell()).Foreground(rgbRestart.Tcell()).Bold(true)
	drawCentered(p.screen, l.Width, l.FooterY, " "+RestartPrompt+" ", restart)
}

// phaseOf returns the position of now within a repeating period, in [0,1)
func phaseOf(now time.Time, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	return float64(now.UnixNano()%int64(period)) / float64(period)
}

func luminance(c RGB) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}
