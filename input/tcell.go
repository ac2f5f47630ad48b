package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Names of non-rune keys, matching browser key identifiers in lower case
var specialKeyNames = map[tcell.Key]string{
	tcell.KeyLeft:       "arrowleft",
	tcell.KeyRight:      "arrowright",
	tcell.KeyUp:         "arrowup",
	tcell.KeyDown:       "arrowdown",
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "escape",
	tcell.KeyTab:        "tab",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyDelete:     "delete",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
}

// KeyName returns the raw key name of a terminal key event, empty if it has none
func KeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		return strings.ToLower(string(ev.Rune()))
	}
	return specialKeyNames[ev.Key()]
}

// MapKeyEvent resolves a terminal key event
func (m *Mapper) MapKeyEvent(ev *tcell.EventKey) (Code, bool) {
	name := KeyName(ev)
	if name == "" {
		m.Gesture()
		return CodeNone, false
	}
	return m.MapKey(name)
}

// PointerPress extracts the cell of a primary button press
// Any mouse event counts as a gesture
func (m *Mapper) PointerPress(ev *tcell.EventMouse) (x, y int, ok bool) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return 0, 0, false
	}
	m.Gesture()
	x, y = ev.Position()
	return x, y, true
}
