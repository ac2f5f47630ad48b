package render

import (
	"github.com/lixenwraith/platanus-dice/constants"
	"github.com/lixenwraith/platanus-dice/palette"
)

// Rect is a cell rectangle, X/Y top-left
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell lies inside
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Grow expands by n cells on every side
func (r Rect) Grow(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Vertical plan of the minimum screen, rows relative to Layout.Top
const (
	rowHeader     = 1
	rowBanner     = 3 // Up to 3 lines
	rowSlots      = 7 // Up to 2 lines
	rowButtons    = 11
	rowBoardTitle = 17
	rowBoard      = 18
	rowFooter     = 23
)

// Layout places every widget for one screen size
type Layout struct {
	Width, Height int
	Top           int

	HeaderY     int
	BannerY     int
	SlotsY      int
	BoardTitleY int
	BoardY      int
	FooterY     int
	SlotsPerRow int

	// Buttons maps color name to its button cells, frame excluded
	Buttons map[string]Rect
}

// NewLayout centers the game area on a width x height screen
func NewLayout(width, height int) Layout {
	top := 0
	if height > constants.MinScreenHeight {
		top = (height - constants.MinScreenHeight) / 2
	}

	l := Layout{
		Width:       width,
		Height:      height,
		Top:         top,
		HeaderY:     top + rowHeader,
		BannerY:     top + rowBanner,
		SlotsY:      top + rowSlots,
		BoardTitleY: top + rowBoardTitle,
		BoardY:      top + rowBoard,
		FooterY:     top + rowFooter,
		SlotsPerRow: max(1, (width-2+constants.SlotPadding)/(constants.SlotWidth+constants.SlotPadding)),
		Buttons:     make(map[string]Rect, palette.Count),
	}

	total := palette.Count*constants.ButtonWidth + (palette.Count-1)*constants.ButtonPadding
	x := (width - total) / 2
	for _, c := range palette.Catalog {
		l.Buttons[c.Name] = Rect{
			X: x,
			Y: top + rowButtons,
			W: constants.ButtonWidth,
			H: constants.ButtonHeight,
		}
		x += constants.ButtonWidth + constants.ButtonPadding
	}
	return l
}

// Fits reports whether the screen can hold the game area
func (l Layout) Fits() bool {
	return l.Width >= constants.MinScreenWidth && l.Height >= constants.MinScreenHeight
}

// Button returns the rectangle of the color at catalog index i
func (l Layout) Button(i int) Rect {
	return l.Buttons[palette.At(i).Name]
}

// ButtonAt hit-tests a cell against the buttons, frame included
func (l Layout) ButtonAt(x, y int) (int, bool) {
	for i, c := range palette.Catalog {
		if l.Buttons[c.Name].Grow(1).Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// Slot returns the cell rectangle of sequence slot i out of n
// Slots wrap onto the next row and every row is centered
func (l Layout) Slot(i, n int) Rect {
	per := l.SlotsPerRow
	row := i / per
	inRow := min(per, n-row*per)
	col := i - row*per

	stride := constants.SlotWidth + constants.SlotPadding
	rowWidth := inRow*stride - constants.SlotPadding
	return Rect{
		X: (l.Width-rowWidth)/2 + col*stride,
		Y: l.SlotsY + row,
		W: constants.SlotWidth,
		H: 1,
	}
}
