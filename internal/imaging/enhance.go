package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Enhancement names one of the continuously adjustable filters.
type Enhancement string

const (
	Brightness Enhancement = "brightness"
	Contrast   Enhancement = "contrast"
	Color      Enhancement = "color"
)

// Enhancements lists every Enhancement in display order.
var Enhancements = []Enhancement{Brightness, Contrast, Color}

// NeutralFactor leaves an image unchanged for every Enhancement.
const NeutralFactor = 1.0

// ParseEnhancement accepts "brightness", "contrast" and "color" (or its
// alias "saturation").
func ParseEnhancement(s string) (Enhancement, error) {
	switch s {
	case "brightness":
		return Brightness, nil
	case "contrast":
		return Contrast, nil
	case "color", "saturation":
		return Color, nil
	}
	return "", fmt.Errorf("unknown adjustment %q (want brightness, contrast or color)", s)
}

// Enhance blends img with a degenerate version of itself:
//
//	out = degenerate + factor*(src - degenerate)
//
// clamped to [0,255] and truncated. The degenerate image is:
//   - Brightness: black, so the factor scales every channel
//   - Contrast: a flat gray at the rounded mean luma of img
//   - Color: the per-pixel luma, so the factor scales saturation
//
// A factor of 1.0 reproduces img exactly; 0 yields the degenerate image.
// Alpha is copied through unchanged.
func Enhance(img image.Image, kind Enhancement, factor float64) (*image.NRGBA, error) {
	switch kind {
	case Brightness:
		return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
			return color.NRGBA{
				R: blend(0, c.R, factor),
				G: blend(0, c.G, factor),
				B: blend(0, c.B, factor),
				A: c.A,
			}
		}), nil

	case Contrast:
		mean := meanLuma(img)
		return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
			return color.NRGBA{
				R: blend(mean, c.R, factor),
				G: blend(mean, c.G, factor),
				B: blend(mean, c.B, factor),
				A: c.A,
			}
		}), nil

	case Color:
		return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
			l := luma(c.R, c.G, c.B)
			return color.NRGBA{
				R: blend(l, c.R, factor),
				G: blend(l, c.G, factor),
				B: blend(l, c.B, factor),
				A: c.A,
			}
		}), nil
	}
	return nil, fmt.Errorf("unknown adjustment %q", kind)
}

func blend(degenerate, src uint8, factor float64) uint8 {
	v := float64(degenerate) + factor*(float64(src)-float64(degenerate))
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// luma is the ITU-R BT.601 luma in 16.16 fixed point, rounded.
func luma(r, g, b uint8) uint8 {
	return uint8((19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 1<<15) >> 16)
}

func meanLuma(img image.Image) uint8 {
	src, ok := img.(*image.NRGBA)
	if !ok {
		src = imaging.Clone(img)
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w == 0 || h == 0 {
		return 0
	}

	var sum uint64
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			sum += uint64(luma(row[i], row[i+1], row[i+2]))
		}
	}
	n := uint64(w * h)
	return uint8((sum + n/2) / n)
}
