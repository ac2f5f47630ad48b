package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawText writes s from x and returns the column after the last cell
// Wide runes take two cells, zero-width runes are dropped
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

// drawCentered writes s centered on a row of the given width
func drawCentered(screen tcell.Screen, width, y int, s string, style tcell.Style) int {
	x := (width - runewidth.StringWidth(s)) / 2
	if x < 0 {
		x = 0
	}
	return drawText(screen, x, y, s, style)
}

// drawRight writes s so that it ends before column right
func drawRight(screen tcell.Screen, right, y int, s string, style tcell.Style) {
	drawText(screen, right-runewidth.StringWidth(s), y, s, style)
}

// fillRect paints every cell of r with ch
func fillRect(screen tcell.Screen, r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			screen.SetContent(x, y, ch, nil, style)
		}
	}
}

// Frame glyphs: corners TL TR BL BR, horizontal, vertical
var (
	frameThin  = [6]rune{'┌', '┐', '└', '┘', '─', '│'}
	frameThick = [6]rune{'╔', '╗', '╚', '╝', '═', '║'}
)

// drawFrame outlines r from the outside
func drawFrame(screen tcell.Screen, r Rect, glyphs [6]rune, style tcell.Style) {
	o := r.Grow(1)
	right, bottom := o.X+o.W-1, o.Y+o.H-1
	for x := o.X + 1; x < right; x++ {
		screen.SetContent(x, o.Y, glyphs[4], nil, style)
		screen.SetContent(x, bottom, glyphs[4], nil, style)
	}
	for y := o.Y + 1; y < bottom; y++ {
		screen.SetContent(o.X, y, glyphs[5], nil, style)
		screen.SetContent(right, y, glyphs[5], nil, style)
	}
	screen.SetContent(o.X, o.Y, glyphs[0], nil, style)
	screen.SetContent(right, o.Y, glyphs[1], nil, style)
	screen.SetContent(o.X, bottom, glyphs[2], nil, style)
	screen.SetContent(right, bottom, glyphs[3], nil, style)
}
