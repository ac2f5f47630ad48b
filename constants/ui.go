package constants

import "time"

// Countdown Urgency Thresholds
const (
	// CountdownWarnBelow switches the countdown from yellow to orange
	CountdownWarnBelow = 2500 * time.Millisecond

	// CountdownCriticalBelow switches the countdown to flashing red
	CountdownCriticalBelow = 1000 * time.Millisecond

	// CountdownFlashPeriod is the on/off period of the critical flash
	CountdownFlashPeriod = 100 * time.Millisecond
)

// Selection and Feedback Animation
const (
	// SelectionPulsePeriod is the full on/off period of the selected button pulse
	SelectionPulsePeriod = 600 * time.Millisecond

	// ErrorSlotFlashPeriod is one on/off half cycle of the mistaken slot flash
	ErrorSlotFlashPeriod = 150 * time.Millisecond

	// ErrorSlotFlashCount is the number of red flashes on the mistaken slot
	ErrorSlotFlashCount = 4

	// PressFeedbackDuration is how long a pressed button renders dimmed
	PressFeedbackDuration = 120 * time.Millisecond
)

// Layout (terminal cells)
const (
	ButtonWidth   = 10
	ButtonHeight  = 4
	ButtonPadding = 3

	SlotWidth   = 3
	SlotPadding = 1

	// MinScreenWidth and MinScreenHeight below which a resize hint is shown
	MinScreenWidth  = 78
	MinScreenHeight = 24
)
