package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor is an 8-bit RGB triple.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor holds hue in degrees (0-360) and saturation/lightness in percent
// (0-100).
type HSLColor struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// ColorSample is the color of one pixel in several notations.
type ColorSample struct {
	X   int      `json:"x"`
	Y   int      `json:"y"`
	Hex string   `json:"hex"`
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// SampleColor returns the color at (x, y), with (0,0) at the top-left.
//
// Coordinates are relative to the image origin, so they stay valid for
// images whose bounds do not start at zero.
func SampleColor(img image.Image, x, y int) (*ColorSample, error) {
	b := img.Bounds()
	px, py := b.Min.X+x, b.Min.Y+y
	if x < 0 || y < 0 || px >= b.Max.X || py >= b.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside %dx%d image", x, y, b.Dx(), b.Dy())
	}

	nc := color.NRGBAModel.Convert(img.At(px, py)).(color.NRGBA)
	c := colorful.Color{
		R: float64(nc.R) / 255,
		G: float64(nc.G) / 255,
		B: float64(nc.B) / 255,
	}
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return &ColorSample{
		X:   x,
		Y:   y,
		Hex: strings.ToUpper(c.Hex()),
		RGB: RGBColor{R: nc.R, G: nc.G, B: nc.B},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}, nil
}

// ParseHexColor parses "#RRGGBB" or "#RGB" into an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimSpace(s)
	if !isHexColor(hex) {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want #RRGGBB or #RGB", s)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// colorful.Hex scans with Sscanf and accepts short or overlong digit runs.
func isHexColor(s string) bool {
	if (len(s) != 4 && len(s) != 7) || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
