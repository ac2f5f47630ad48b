package input

import "strings"

// Code is a logical arcade control
type Code uint8

const (
	CodeNone Code = iota
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeActionA
	CodeActionB
	CodeActionC
	CodeActionX
	CodeActionY
	CodeActionZ
	CodeStart
	codeCount
)

// Cabinet labels, used by keymap files and help output
var codeNames = [codeCount]string{
	CodeNone:    "NONE",
	CodeUp:      "P1U",
	CodeDown:    "P1D",
	CodeLeft:    "P1L",
	CodeRight:   "P1R",
	CodeActionA: "P1A",
	CodeActionB: "P1B",
	CodeActionC: "P1C",
	CodeActionX: "P1X",
	CodeActionY: "P1Y",
	CodeActionZ: "P1Z",
	CodeStart:   "START1",
}

// Descriptive aliases accepted alongside cabinet labels
var codeAliases = map[string]Code{
	"UP":       CodeUp,
	"DOWN":     CodeDown,
	"LEFT":     CodeLeft,
	"RIGHT":    CodeRight,
	"ACTION_A": CodeActionA,
	"ACTION_B": CodeActionB,
	"ACTION_C": CodeActionC,
	"ACTION_X": CodeActionX,
	"ACTION_Y": CodeActionY,
	"ACTION_Z": CodeActionZ,
	"START":    CodeStart,
}

// String returns the cabinet label
func (c Code) String() string {
	if c >= codeCount {
		return "UNKNOWN"
	}
	return codeNames[c]
}

// ParseCode resolves a cabinet label or alias, case-insensitive
func ParseCode(s string) (Code, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for c := CodeUp; c < codeCount; c++ {
		if codeNames[c] == s {
			return c, true
		}
	}
	c, ok := codeAliases[s]
	return c, ok
}

// AllCodes returns every bindable code in table order
func AllCodes() []Code {
	codes := make([]Code, 0, codeCount-1)
	for c := CodeUp; c < codeCount; c++ {
		codes = append(codes, c)
	}
	return codes
}

// IsRestart reports whether the code restarts a finished game
func (c Code) IsRestart() bool {
	return c == CodeActionA || c == CodeStart
}
