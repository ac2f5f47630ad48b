package clock

import "time"

// Drive advances mock time by d, stopping at each pending deadline on the way
// so callbacks observe the exact instant they were due
// Returns the number of callbacks fired
func Drive(mock *MockTimeProvider, s *Scheduler, d time.Duration) int {
	end := mock.Now().Add(d)
	fired := 0
	for {
		next, ok := s.NextDeadline()
		if !ok || next.After(end) {
			break
		}
		if next.After(mock.Now()) {
			mock.SetTime(next)
		}
		fired += s.Advance()
	}
	mock.SetTime(end)
	fired += s.Advance()
	return fired
}
