package input

import (
	"fmt"
	"strings"
)

// KeyTable binds each code to the raw key names that produce it
type KeyTable map[Code][]string

// DefaultKeyTable returns the arcade cabinet layout
// Enter appears twice, table order makes START win
func DefaultKeyTable() KeyTable {
	return KeyTable{
		CodeUp:      {"w"},
		CodeDown:    {"s"},
		CodeLeft:    {"a", "ArrowLeft"},
		CodeRight:   {"d", "ArrowRight"},
		CodeActionA: {"u", " ", "Enter"},
		CodeActionB: {"i"},
		CodeActionC: {"o"},
		CodeActionX: {"j"},
		CodeActionY: {"k"},
		CodeActionZ: {"l"},
		CodeStart:   {"1", "Enter"},
	}
}

// UnknownCodeError reports a keymap entry naming no control
type UnknownCodeError struct {
	Name string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown control code %q", e.Name)
}

// ParseKeyTable converts a name → keys map, as read from config, into a sparse table
func ParseKeyTable(raw map[string][]string) (KeyTable, error) {
	kt := make(KeyTable, len(raw))
	for name, keys := range raw {
		code, ok := ParseCode(name)
		if !ok {
			return nil, &UnknownCodeError{Name: name}
		}
		kt[code] = append([]string(nil), keys...)
	}
	return kt, nil
}

// Merge returns a copy of kt with every code present in override rebound
func (kt KeyTable) Merge(override KeyTable) KeyTable {
	out := make(KeyTable, len(kt))
	for c, keys := range kt {
		out[c] = append([]string(nil), keys...)
	}
	for c, keys := range override {
		out[c] = append([]string(nil), keys...)
	}
	return out
}

// Invert builds the key → code lookup, keys normalized to lower case
// Codes are walked in table order so a key bound twice resolves to the later code
func (kt KeyTable) Invert() map[string]Code {
	lookup := make(map[string]Code)
	for _, c := range AllCodes() {
		for _, k := range kt[c] {
			lookup[normalizeKey(k)] = c
		}
	}
	return lookup
}

func normalizeKey(k string) string {
	// Space must survive trimming
	if k == " " {
		return k
	}
	return strings.ToLower(strings.TrimSpace(k))
}
