// Package palette holds the fixed color catalog of the game.
package palette

// Color is one selectable game color with its display value and cue tone
type Color struct {
	Name string
	Hex  uint32  // 0xRRGGBB
	Freq float64 // Hz
}

// RGB splits the display value into channels
func (c Color) RGB() (r, g, b int32) {
	return int32(c.Hex >> 16 & 0xff), int32(c.Hex >> 8 & 0xff), int32(c.Hex & 0xff)
}

// Catalog is the ordered set of game colors, left to right as drawn
var Catalog = [...]Color{
	{Name: "Rojo", Hex: 0xff4444, Freq: 440},     // A4
	{Name: "Verde", Hex: 0x44ff44, Freq: 554},    // C#5
	{Name: "Azul", Hex: 0x4499ff, Freq: 659},     // E5
	{Name: "Amarillo", Hex: 0xffff44, Freq: 880}, // A5
	{Name: "Blanco", Hex: 0xffffff, Freq: 987},   // B5
	{Name: "Morado", Hex: 0xcc44ff, Freq: 783},   // G5
}

// Count is the number of catalog colors
const Count = len(Catalog)

// Index returns the catalog position of the named color
func Index(name string) (int, bool) {
	for i, c := range Catalog {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// ByName returns the named color
func ByName(name string) (Color, bool) {
	i, ok := Index(name)
	if !ok {
		return Color{}, false
	}
	return Catalog[i], true
}

// At returns the color at position i, wrapping out-of-range indices
func At(i int) Color {
	i %= Count
	if i < 0 {
		i += Count
	}
	return Catalog[i]
}
