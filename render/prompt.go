package render

import (
	"fmt"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/platanus-dice/constants"
)

// Prompt collects leaderboard initials on the terminal
// It blocks the caller, reading from the same event channel the game loop owns
type Prompt struct {
	screen tcell.Screen
	events <-chan tcell.Event
	// frame redraws the backdrop and keeps timers running while waiting, optional
	frame func()
}

// NewPrompt creates a prompt reading events from ch
func NewPrompt(screen tcell.Screen, ch <-chan tcell.Event, frame func()) *Prompt {
	return &Prompt{screen: screen, events: ch, frame: frame}
}

// Initials implements score.Prompt
// Enter confirms, Esc cancels, a closed channel cancels
func (p *Prompt) Initials(score int) (string, bool) {
	ticker := time.NewTicker(constants.FrameUpdateInterval)
	defer ticker.Stop()

	buf := make([]rune, 0, constants.InitialsLength)
	p.draw(score, buf)

	for {
		select {
		case ev, ok := <-p.events:
			if !ok {
				return "", false
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEnter:
					return string(buf), true
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return "", false
				case tcell.KeyBackspace, tcell.KeyBackspace2:
					if len(buf) > 0 {
						buf = buf[:len(buf)-1]
					}
				case tcell.KeyRune:
					r := unicode.ToUpper(ev.Rune())
					if len(buf) < constants.InitialsLength && r < unicode.MaxASCII &&
						(unicode.IsLetter(r) || unicode.IsDigit(r)) {
						buf = append(buf, r)
					}
				}
			case *tcell.EventResize:
				p.screen.Sync()
			}
		case <-ticker.C:
		}
		p.draw(score, buf)
	}
}

func (p *Prompt) draw(score int, buf []rune) {
	if p.frame != nil {
		p.frame()
	}

	w, h := p.screen.Size()
	box := Rect{W: 36, H: 5}
	box.X = (w - box.W) / 2
	box.Y = (h - box.H) / 2

	bg := styleDefault.Background(rgbRestartBg.Tcell())
	fillRect(p.screen, box, ' ', bg)
	drawFrame(p.screen, box, frameThick, bg.Foreground(rgbSelected.Tcell()))

	title := fmt.Sprintf("¡NUEVO RÉCORD! %d", score)
	drawCentered(p.screen, w, box.Y, title, bg.Foreground(rgbBoardTitle.Tcell()).Bold(true))
	drawCentered(p.screen, w, box.Y+1, "ESCRIBE TUS INICIALES", bg.Foreground(tcell.ColorWhite))

	slots := make([]rune, constants.InitialsLength)
	for i := range slots {
		slots[i] = '_'
		if i < len(buf) {
			slots[i] = buf[i]
		}
	}
	x := (w - (2*constants.InitialsLength - 1)) / 2
	for i, r := range slots {
		style := bg.Foreground(rgbBoardRow.Tcell()).Bold(true)
		if i == len(buf) {
			style = style.Reverse(true)
		}
		p.screen.SetContent(x+2*i, box.Y+3, r, nil, style)
	}
	drawCentered(p.screen, w, box.Y+4, "ENTER OK   ESC OMITIR", bg.Foreground(rgbHint.Tcell()))

	p.screen.Show()
}
