// Package score keeps the persisted top scores table
package score

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lixenwraith/platanus-dice/constants"
)

// Entry is one leaderboard row
type Entry struct {
	Initials string
	Score    int
}

// Table is sorted by score descending, ties in arrival order, at most HighScoreSlots rows
type Table []Entry

// Qualifies reports whether score earns a place in t
func Qualifies(t Table, score int) bool {
	if score <= 0 {
		return false
	}
	if len(t) < constants.HighScoreSlots {
		return true
	}
	return score > t[len(t)-1].Score
}

// Insert returns a new table with e placed after every entry of equal or higher score
func Insert(t Table, e Entry) Table {
	out := make(Table, 0, len(t)+1)
	out = append(out, t...)
	out = append(out, e)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > constants.HighScoreSlots {
		out = out[:constants.HighScoreSlots]
	}
	return out
}

// Normalize drops rows that could never have been recorded, then sorts and truncates
func Normalize(t Table) Table {
	out := make(Table, 0, len(t))
	for _, e := range t {
		if e.Score <= 0 {
			continue
		}
		e.Initials = NormalizeInitials(e.Initials)
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > constants.HighScoreSlots {
		out = out[:constants.HighScoreSlots]
	}
	return out
}

// NormalizeInitials upper-cases, keeps the first runes and pads with 'A'
// Empty input yields the default initials
func NormalizeInitials(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return constants.DefaultInitials
	}

	var b strings.Builder
	n := 0
	for _, r := range s {
		if n == constants.InitialsLength {
			break
		}
		if r == utf8.RuneError {
			continue
		}
		b.WriteRune(r)
		n++
	}
	for ; n < constants.InitialsLength; n++ {
		b.WriteByte('A')
	}
	return b.String()
}

// Clone returns an independent copy
func (t Table) Clone() Table {
	if t == nil {
		return Table{}
	}
	return append(Table{}, t...)
}
