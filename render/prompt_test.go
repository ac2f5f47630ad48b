package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func feed(evs ...tcell.Event) chan tcell.Event {
	ch := make(chan tcell.Event, len(evs))
	for _, ev := range evs {
		ch <- ev
	}
	return ch
}

func TestPromptInitials(t *testing.T) {
	tests := []struct {
		name   string
		events []tcell.Event
		want   string
		ok     bool
	}{
		{
			name:   "Three letters upper-cased",
			events: []tcell.Event{keyRune('a'), keyRune('b'), keyRune('c'), key(tcell.KeyEnter)},
			want:   "ABC",
			ok:     true,
		},
		{
			name:   "Extra input ignored",
			events: []tcell.Event{keyRune('x'), keyRune('y'), keyRune('z'), keyRune('q'), key(tcell.KeyEnter)},
			want:   "XYZ",
			ok:     true,
		},
		{
			name:   "Backspace edits",
			events: []tcell.Event{keyRune('a'), keyRune('b'), key(tcell.KeyBackspace2), keyRune('z'), key(tcell.KeyEnter)},
			want:   "AZ",
			ok:     true,
		},
		{
			name:   "Symbols rejected",
			events: []tcell.Event{keyRune('!'), keyRune('ñ'), keyRune('7'), key(tcell.KeyEnter)},
			want:   "7",
			ok:     true,
		},
		{
			name:   "Empty confirm",
			events: []tcell.Event{key(tcell.KeyEnter)},
			want:   "",
			ok:     true,
		},
		{
			name:   "Escape cancels",
			events: []tcell.Event{keyRune('a'), key(tcell.KeyEscape)},
			want:   "",
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newScreen(t, 80, 24)
			frames := 0
			p := NewPrompt(screen, feed(tt.events...), func() { frames++ })

			got, ok := p.Initials(42)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Expected (%q, %v), got (%q, %v)", tt.want, tt.ok, got, ok)
			}
			if frames == 0 {
				t.Error("Expected the backdrop to be redrawn")
			}
		})
	}
}

func TestPromptClosedChannel(t *testing.T) {
	screen := newScreen(t, 80, 24)
	ch := make(chan tcell.Event)
	close(ch)

	p := NewPrompt(screen, ch, nil)
	if got, ok := p.Initials(10); ok || got != "" {
		t.Errorf("Expected cancel on closed channel, got (%q, %v)", got, ok)
	}
}
