package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/platanus-dice/engine"
	"github.com/lixenwraith/platanus-dice/events"
	"github.com/lixenwraith/platanus-dice/palette"
	"github.com/lixenwraith/platanus-dice/score"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

// rowText reads the primary runes of one screen row
func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func bgAt(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func sequence(names ...string) []palette.Color {
	out := make([]palette.Color, len(names))
	for i, n := range names {
		out[i], _ = palette.ByName(n)
	}
	return out
}

func TestLayoutButtons(t *testing.T) {
	l := NewLayout(80, 24)
	if !l.Fits() {
		t.Fatal("Expected 80x24 to fit")
	}
	if len(l.Buttons) != palette.Count {
		t.Fatalf("Expected %d buttons, got %d", palette.Count, len(l.Buttons))
	}

	for i, c := range palette.Catalog {
		r := l.Buttons[c.Name]
		if r.X < 1 || r.X+r.W >= 80 {
			t.Errorf("Button %s out of screen: %+v", c.Name, r)
		}
		got, ok := l.ButtonAt(r.X+r.W/2, r.Y+r.H/2)
		if !ok || got != i {
			t.Errorf("Expected center of %s to hit %d, got %d (ok=%v)", c.Name, i, got, ok)
		}
		// Frame cells count as the button
		if got, ok := l.ButtonAt(r.X-1, r.Y-1); !ok || got != i {
			t.Errorf("Expected frame corner of %s to hit %d, got %d", c.Name, i, got)
		}
	}

	if _, ok := l.ButtonAt(0, 0); ok {
		t.Error("Expected top-left corner to miss every button")
	}
}

func TestLayoutTooSmall(t *testing.T) {
	if NewLayout(40, 10).Fits() {
		t.Error("Expected 40x10 not to fit")
	}
}

func TestSlotsWrap(t *testing.T) {
	l := NewLayout(80, 24)
	n := 35
	rows := make(map[int]int)
	for i := 0; i < n; i++ {
		r := l.Slot(i, n)
		if r.X < 0 || r.X+r.W > 80 {
			t.Errorf("Slot %d out of screen: %+v", i, r)
		}
		rows[r.Y]++
	}
	if len(rows) != 2 {
		t.Errorf("Expected 35 slots on 2 rows, got %d rows", len(rows))
	}

	// A single slot is centered
	r := l.Slot(0, 1)
	if mid := r.X + r.W/2; mid < 39 || mid > 41 {
		t.Errorf("Expected single slot centered, got x=%d", r.X)
	}
}

func TestUrgencyColor(t *testing.T) {
	// t0 falls on an even flash phase
	even := t0
	odd := t0.Add(100 * time.Millisecond)

	tests := []struct {
		name      string
		remaining time.Duration
		now       time.Time
		want      RGB
	}{
		{"Full turn", 5000 * time.Millisecond, even, rgbUrgencyCalm},
		{"Warn boundary", 2500 * time.Millisecond, even, rgbUrgencyCalm},
		{"Warn", 2499 * time.Millisecond, even, rgbUrgencyWarn},
		{"Critical boundary", 1000 * time.Millisecond, even, rgbUrgencyWarn},
		{"Critical on", 999 * time.Millisecond, even, rgbUrgencyCrit},
		{"Critical off", 999 * time.Millisecond, odd, rgbBackground.Blend(rgbUrgencyCrit, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UrgencyColor(tt.remaining, tt.now); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		active    bool
		want      string
	}{
		{5000 * time.Millisecond, true, "5.00"},
		{1234 * time.Millisecond, true, "1.23"},
		{0, true, "0.00"},
		{3000 * time.Millisecond, false, "0.00"},
	}
	for _, tt := range tests {
		if got := FormatCountdown(tt.remaining, tt.active); got != tt.want {
			t.Errorf("FormatCountdown(%v, %v): expected %s, got %s", tt.remaining, tt.active, tt.want, got)
		}
	}
}

func TestBannerFollowsEvents(t *testing.T) {
	p := NewPresenter(newScreen(t, 80, 24), nil)
	rojo, _ := palette.ByName("Rojo")

	steps := []struct {
		ev   events.GameEvent
		want []string
	}{
		{
			events.GameEvent{Type: events.EventGameStarted, Payload: events.GameStartedPayload{SessionID: "s"}},
			[]string{TitleBanner},
		},
		{
			events.GameEvent{Type: events.EventRoundStarted, Payload: events.RoundStartedPayload{Level: 1, Rank: "Platano Junior", Added: rojo}},
			[]string{"NIVEL 1 [Platano Junior]: ¡OBSERVA!"},
		},
		{
			events.GameEvent{Type: events.EventInputEnabled, Payload: events.InputEnabledPayload{TurnLimit: 5 * time.Second}},
			[]string{TurnBanner},
		},
		{
			events.GameEvent{Type: events.EventRoundWon, Payload: events.RoundWonPayload{Level: 1, Score: 1, Streak: 1, Rank: "Platano Junior"}},
			[]string{"¡NIVEL SUPERADO! ERES Platano Junior."},
		},
		{
			events.GameEvent{Type: events.EventGameOver, Payload: events.GameOverPayload{Outcome: events.OutcomeWrongColor, Expected: rojo, Score: 1, Level: 2}},
			[]string{"¡ERROR! ERA Rojo 🍌", "", "PUNTAJE FINAL: 1"},
		},
	}

	for _, s := range steps {
		s.ev.Timestamp = t0
		p.HandleEvent(s.ev)
		got := p.Banner()
		if strings.Join(got, "|") != strings.Join(s.want, "|") {
			t.Errorf("After %s: expected banner %q, got %q", s.ev.Type, s.want, got)
		}
	}
}

func TestGameOverMessage(t *testing.T) {
	azul, _ := palette.ByName("Azul")
	tests := []struct {
		outcome events.Outcome
		want    string
	}{
		{events.OutcomeCompleted, CompletedBanner},
		{events.OutcomeWrongColor, "¡ERROR! ERA Azul 🍌"},
		{events.OutcomeTimeout, TimeoutBanner},
	}
	for _, tt := range tests {
		if got := GameOverMessage(tt.outcome, azul); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.outcome, tt.want, got)
		}
	}
}

func TestLeaderboardLine(t *testing.T) {
	got := LeaderboardLine(1, score.Entry{Initials: "ABC", Score: 50})
	if got != "1. ABC ............ 50" {
		t.Errorf("Unexpected line %q", got)
	}
}

func TestDrawGameOver(t *testing.T) {
	screen := newScreen(t, 80, 24)
	p := NewPresenter(screen, nil)

	snap := engine.Snapshot{
		State: engine.StateGameOver,
		Session: engine.Session{
			Sequence: sequence("Rojo", "Verde"),
			Score:    engine.ScoreState{Score: 1, Streak: 0},
		},
		MistakeIndex: -1,
		Leaderboard: score.Table{
			{Initials: "ABC", Score: 50},
			{Initials: "XYZ", Score: 1},
		},
	}
	p.Draw(snap, t0)

	l := p.Layout()
	header := rowText(screen, l.HeaderY)
	if !strings.Contains(header, "PUNTAJE: 1") {
		t.Errorf("Expected score in header, got %q", header)
	}
	if strings.Contains(header, "RACHA") {
		t.Errorf("Expected streak hidden at game over, got %q", header)
	}
	if !strings.Contains(header, "0.00") {
		t.Errorf("Expected idle countdown, got %q", header)
	}

	if row := rowText(screen, l.BoardTitleY); !strings.Contains(row, BoardTitle) {
		t.Errorf("Expected board title, got %q", row)
	}
	if row := rowText(screen, l.BoardY); !strings.Contains(row, "1. ABC ............ 50") {
		t.Errorf("Expected first entry, got %q", row)
	}
	if row := rowText(screen, l.BoardY+1); !strings.Contains(row, "2. XYZ ............ 1") {
		t.Errorf("Expected second entry, got %q", row)
	}
	if row := rowText(screen, l.FooterY); !strings.Contains(row, RestartPrompt) {
		t.Errorf("Expected restart prompt, got %q", row)
	}
}

func TestDrawAwaitingInput(t *testing.T) {
	screen := newScreen(t, 80, 24)
	p := NewPresenter(screen, nil)

	snap := engine.Snapshot{
		State: engine.StateAwaitingInput,
		Session: engine.Session{
			Sequence: sequence("Rojo", "Verde", "Azul"),
			Round:    engine.RoundState{SequenceIndex: 1},
			Score:    engine.ScoreState{Score: 2, Streak: 2},
		},
		TimerActive:  true,
		Remaining:    3210 * time.Millisecond,
		MistakeIndex: -1,
	}
	p.Draw(snap, t0)

	l := p.Layout()
	header := rowText(screen, l.HeaderY)
	for _, want := range []string{"PUNTAJE: 2", "RACHA: 2", "3.21"} {
		if !strings.Contains(header, want) {
			t.Errorf("Expected %q in header, got %q", want, header)
		}
	}

	slots := rowText(screen, l.SlotsY)
	if strings.Count(slots, "[?]") != 2 {
		t.Errorf("Expected two unentered slots, got %q", slots)
	}
	first := l.Slot(0, 3)
	rojo, _ := palette.ByName("Rojo")
	if got, want := bgAt(screen, first.X+1, first.Y), ColorRGB(rojo).Dim(0.2).Tcell(); got != want {
		t.Errorf("Expected entered slot filled with its color, got %v", got)
	}

	// Buttons carry their names
	buttonRow := rowText(screen, l.Button(0).Y+l.Button(0).H/2)
	for _, name := range []string{"ROJO", "VERDE", "AZUL", "AMARILLO", "BLANCO", "MORADO"} {
		if !strings.Contains(buttonRow, name) {
			t.Errorf("Expected label %s, got %q", name, buttonRow)
		}
	}
}

func TestRatingFlash(t *testing.T) {
	screen := newScreen(t, 80, 24)
	p := NewPresenter(screen, nil)
	verde, _ := palette.ByName("Verde")

	p.HandleEvent(events.GameEvent{Type: events.EventInputEnabled, Timestamp: t0})
	p.HandleEvent(events.GameEvent{
		Type:      events.EventInputAccepted,
		Timestamp: t0,
		Payload:   events.InputAcceptedPayload{Index: 0, Color: verde, Elapsed: 300 * time.Millisecond, Rating: "¡FLASH!"},
	})

	snap := engine.Snapshot{
		State:        engine.StateAwaitingInput,
		Session:      engine.Session{Sequence: sequence("Verde", "Rojo"), Round: engine.RoundState{SequenceIndex: 1}},
		MistakeIndex: -1,
	}
	l := p.Layout()

	p.Draw(snap, t0.Add(100*time.Millisecond))
	if row := rowText(screen, l.BannerY); !strings.Contains(row, "¡FLASH!") {
		t.Errorf("Expected rating shown, got %q", row)
	}

	p.Draw(snap, t0.Add(500*time.Millisecond))
	if row := rowText(screen, l.BannerY); !strings.Contains(row, "¡TU TURNO, HACKER!") {
		t.Errorf("Expected turn banner after rating expired, got %q", row)
	}
}

func TestErrorSlotFlash(t *testing.T) {
	screen := newScreen(t, 80, 24)
	p := NewPresenter(screen, nil)
	rojo, _ := palette.ByName("Rojo")
	azul, _ := palette.ByName("Azul")

	p.HandleEvent(events.GameEvent{
		Type:      events.EventInputRejected,
		Timestamp: t0,
		Payload:   events.InputRejectedPayload{Index: 1, Expected: rojo, Got: azul},
	})

	snap := engine.Snapshot{
		State:        engine.StateMistake,
		Session:      engine.Session{Sequence: sequence("Azul", "Rojo", "Rojo"), Round: engine.RoundState{SequenceIndex: 1}},
		MistakeIndex: 1,
	}
	slot := p.Layout().Slot(1, 3)
	red := rgbSlotError.Tcell()

	tests := []struct {
		at   time.Duration
		want bool
	}{
		{0, true},
		{150 * time.Millisecond, false},
		{300 * time.Millisecond, true},
		{900 * time.Millisecond, true},
		{1050 * time.Millisecond, false},
		{1200 * time.Millisecond, false},
		{2 * time.Second, false},
	}
	for _, tt := range tests {
		p.Draw(snap, t0.Add(tt.at))
		if got := bgAt(screen, slot.X+1, slot.Y) == red; got != tt.want {
			t.Errorf("At %v: expected red=%v, got %v", tt.at, tt.want, got)
		}
	}
}

func TestDrawTooSmall(t *testing.T) {
	screen := newScreen(t, 40, 10)
	p := NewPresenter(screen, nil)
	p.Draw(engine.Snapshot{MistakeIndex: -1}, t0)

	if row := rowText(screen, 5); !strings.Contains(row, "TERMINAL") {
		t.Errorf("Expected resize hint, got %q", row)
	}
}

func TestResizeRecomputesLayout(t *testing.T) {
	screen := newScreen(t, 80, 24)
	p := NewPresenter(screen, nil)
	before := p.Layout().Button(0)

	screen.SetSize(120, 40)
	p.Draw(engine.Snapshot{MistakeIndex: -1}, t0)

	after := p.Layout().Button(0)
	if after == before {
		t.Errorf("Expected layout to move after resize, still %+v", after)
	}
	if p.Layout().Top != (40-24)/2 {
		t.Errorf("Expected centered top %d, got %d", (40-24)/2, p.Layout().Top)
	}
}

func TestBlend(t *testing.T) {
	a := RGB{0, 0, 0}
	b := RGB{200, 100, 50}
	if got := a.Blend(b, 0); got != a {
		t.Errorf("Alpha 0: expected %v, got %v", a, got)
	}
	if got := a.Blend(b, 1); got != b {
		t.Errorf("Alpha 1: expected %v, got %v", b, got)
	}
	if got := a.Blend(b, 0.5); got != (RGB{100, 50, 25}) {
		t.Errorf("Alpha 0.5: expected {100 50 25}, got %v", got)
	}
	if got := FromHex(0x4499ff); got != (RGB{0x44, 0x99, 0xff}) {
		t.Errorf("FromHex: got %v", got)
	}
}
