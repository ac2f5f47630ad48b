package clock

import (
	"sort"
	"sync"
	"time"
)

// Group tags scheduled callbacks so related ones can be cancelled together
type Group uint8

const (
	GroupEngine Group = iota // Round engine transitions and the turn timer
	GroupJingle              // Pending jingle notes
	GroupUI                  // Presentation effects
	groupCount
)

// Handle identifies one scheduled callback, zero value is never issued
type Handle uint64

// Valid reports whether the handle was issued by a scheduler
func (h Handle) Valid() bool {
	return h != 0
}

type task struct {
	id    Handle
	due   time.Time
	group Group
	fn    func()
}

// Scheduler holds delayed callbacks and fires them when Advance observes their deadline
// Callbacks run on the goroutine calling Advance, in deadline order, ties in scheduling order
// A callback may schedule or cancel other callbacks
type Scheduler struct {
	mu      sync.Mutex
	clock   TimeProvider
	nextID  Handle
	pending []task // Sorted by due, then id
}

// NewScheduler creates a scheduler reading time from the given provider
func NewScheduler(tp TimeProvider) *Scheduler {
	return &Scheduler{clock: tp}
}

// Now returns the scheduler's current time
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// After schedules fn to run once d has elapsed
func (s *Scheduler) After(d time.Duration, group Group, fn func()) Handle {
	if d < 0 {
		d = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	t := task{id: s.nextID, due: s.clock.Now().Add(d), group: group, fn: fn}

	// Insert after every task due at or before t
	i := sort.Search(len(s.pending), func(i int) bool {
		return s.pending[i].due.After(t.due)
	})
	s.pending = append(s.pending, task{})
	copy(s.pending[i+1:], s.pending[i:])
	s.pending[i] = t

	return t.id
}

// Cancel removes a pending callback, returns false if it already fired or was cancelled
func (s *Scheduler) Cancel(h Handle) bool {
	if !h.Valid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pending {
		if s.pending[i].id == h {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	return false
}

// CancelGroup removes every pending callback of the group and returns how many were removed
func (s *Scheduler) CancelGroup(g Group) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.pending[:0]
	removed := 0
	for _, t := range s.pending {
		if t.group == g {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	// Drop references held past the new length
	for i := len(kept); i < len(s.pending); i++ {
		s.pending[i] = task{}
	}
	s.pending = kept
	return removed
}

// Pending returns the number of callbacks waiting in the group
func (s *Scheduler) Pending(g Group) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.pending {
		if t.group == g {
			n++
		}
	}
	return n
}

// Len returns the number of callbacks waiting in all groups
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// NextDeadline returns the earliest pending deadline
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return time.Time{}, false
	}
	return s.pending[0].due, true
}

// Advance fires every callback whose deadline has passed and returns how many fired
// Callbacks scheduled while advancing fire in the same call if already due
func (s *Scheduler) Advance() int {
	fired := 0
	for {
		now := s.clock.Now()

		s.mu.Lock()
		if len(s.pending) == 0 || s.pending[0].due.After(now) {
			s.mu.Unlock()
			return fired
		}
		t := s.pending[0]
		s.pending[0] = task{}
		s.pending = s.pending[1:]
		s.mu.Unlock()

		// Run unlocked so the callback can reschedule
		t.fn()
		fired++
	}
}
