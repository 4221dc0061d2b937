package style

import "fmt"

// Color is an RGB color expressed as 0..1 device-gray/RGB components, the
// form PDF's "rg"/"RG" content-stream operators take directly.
type Color struct {
	R, G, B float64
}

// RGB constructs a Color from 0..1 components.
func RGB(r, g, b float64) Color { return Color{R: r, G: g, B: b} }

// RGB8 constructs a Color from 0..255 components, mirroring the teacher's
// ColorRGBFrom8bit convenience constructor.
func RGB8(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Black and White are predefined colors; Black is the color a Style
// resolves to when it leaves color unspecified.
var (
	Black = RGB(0, 0, 0)
	White = RGB(1, 1, 1)
)

// Gray returns a neutral gray at the given 0..1 level.
func Gray(level float64) Color { return RGB(level, level, level) }

// Hex parses a "#RRGGBB" string into a Color, panicking on malformed input
// since callers pass color literals, not untrusted data.
func Hex(s string) Color {
	if len(s) != 7 || s[0] != '#' {
		panic(fmt.Sprintf("style: malformed hex color %q", s))
	}
	var r, g, b int
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		panic(fmt.Sprintf("style: malformed hex color %q: %v", s, err))
	}
	return RGB8(uint8(r), uint8(g), uint8(b))
}
