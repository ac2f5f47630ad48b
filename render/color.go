package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/platanus-dice/palette"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// FromHex splits a 0xRRGGBB value
func FromHex(hex uint32) RGB {
	return RGB{uint8(hex >> 16), uint8(hex >> 8), uint8(hex)}
}

// ColorRGB returns the display value of a palette color
func ColorRGB(c palette.Color) RGB {
	return FromHex(c.Hex)
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// Dim darkens toward black by factor in [0,1]
func (dst RGB) Dim(factor float64) RGB {
	return RGBBlack.Blend(dst, 1-factor)
}

// Lighten moves toward white by factor in [0,1]
func (dst RGB) Lighten(factor float64) RGB {
	return dst.Blend(RGBWhite, factor)
}

// Tcell converts to a true color tcell value
func (dst RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(dst.R), int32(dst.G), int32(dst.B))
}

// TcellToRGB converts tcell.Color to RGB
// Treats ColorDefault as the standard background color
func TcellToRGB(c tcell.Color) RGB {
	if c == tcell.ColorDefault {
		return rgbBackground
	}
	r, g, b := c.RGB()
	return RGB{uint8(r), uint8(g), uint8(b)}
}

// triangle maps a phase in [0,1) to a 0..1..0 wave
func triangle(phase float64) float64 {
	if phase < 0.5 {
		return phase * 2
	}
	return (1 - phase) * 2
}
