package input

import (
	"sync"
)

// Mapper translates raw input to logical codes
// The lookup is built once; the first gesture hook fires on the first raw input of any kind
type Mapper struct {
	lookup map[string]Code
	table  KeyTable

	gestureOnce sync.Once
	onGesture   func()
}

// NewMapper inverts the table into the lookup
func NewMapper(table KeyTable) *Mapper {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &Mapper{
		lookup: table.Invert(),
		table:  table,
	}
}

// OnFirstGesture registers fn to run once on the first raw input
// Used to create resources that platforms only allow after a user gesture
func (m *Mapper) OnFirstGesture(fn func()) {
	m.onGesture = fn
}

// Gesture records raw user activity without mapping it
func (m *Mapper) Gesture() {
	m.gestureOnce.Do(func() {
		if m.onGesture != nil {
			m.onGesture()
		}
	})
}

// MapKey resolves a raw key name, case-insensitive
// Every call counts as a gesture, mapped or not
func (m *Mapper) MapKey(name string) (Code, bool) {
	m.Gesture()
	c, ok := m.lookup[normalizeKey(name)]
	if !ok {
		return CodeNone, false
	}
	return c, true
}

// Table returns the bindings the mapper was built from
func (m *Mapper) Table() KeyTable {
	return m.table
}
