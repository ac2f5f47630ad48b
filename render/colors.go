package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/platanus-dice/constants"
)

// Arcade palette
var (
	rgbBackground  = RGB{0, 0, 0}
	rgbBanner      = RGB{255, 221, 0}   // Status banner
	rgbRating      = RGB{0, 255, 0}     // Turn rating flash
	rgbGameOver    = RGB{255, 0, 0}     // Final banner
	rgbScore       = RGB{0, 255, 170}   // PUNTAJE
	rgbStreak      = RGB{255, 0, 255}   // RACHA
	rgbUrgencyCalm = RGB{255, 255, 0}   // Countdown >= warn threshold
	rgbUrgencyWarn = RGB{255, 153, 0}   // Countdown < warn threshold
	rgbUrgencyCrit = RGB{255, 0, 0}     // Countdown < critical threshold, flashing
	rgbSlotBorder  = RGB{85, 85, 85}    // Unentered slot
	rgbSlotDone    = RGB{255, 255, 0}   // Entered slot border
	rgbSlotError   = RGB{255, 0, 0}     // Mistaken slot flash
	rgbFrame       = RGB{255, 255, 255} // Idle button frame
	rgbSelected    = RGB{255, 255, 0}   // Selected button frame
	rgbBoardTitle  = RGB{0, 255, 204}
	rgbBoardRow    = RGB{255, 255, 0}
	rgbRestart     = RGB{255, 255, 85}
	rgbRestartBg   = RGB{51, 51, 51}
	rgbHint        = RGB{120, 120, 120}
	rgbDeco        = RGB{92, 46, 0} // Banana-brown decoration bars
)

var styleDefault = tcell.StyleDefault.Background(rgbBackground.Tcell()).Foreground(tcell.ColorWhite)

// fg returns the default style with a foreground
func fg(c RGB) tcell.Style {
	return styleDefault.Foreground(c.Tcell())
}

// UrgencyColor returns the countdown color for the time left on the turn
// Below the critical threshold it alternates between full and half intensity
func UrgencyColor(remaining time.Duration, now time.Time) RGB {
	switch {
	case remaining < constants.CountdownCriticalBelow:
		if (now.UnixMilli()/constants.CountdownFlashPeriod.Milliseconds())%2 == 0 {
			return rgbUrgencyCrit
		}
		return rgbBackground.Blend(rgbUrgencyCrit, 0.5)
	case remaining < constants.CountdownWarnBelow:
		return rgbUrgencyWarn
	default:
		return rgbUrgencyCalm
	}
}

// FormatCountdown renders seconds with two decimals, "0.00" without a running timer
func FormatCountdown(remaining time.Duration, active bool) string {
	if !active || remaining < 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", remaining.Seconds())
}
