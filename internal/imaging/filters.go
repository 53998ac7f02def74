package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/disintegration/imaging"
)

// Axis selects the mirror direction for Flip.
type Axis string

const (
	// Horizontal mirrors left to right.
	Horizontal Axis = "horizontal"
	// Vertical mirrors top to bottom.
	Vertical Axis = "vertical"
)

// ParseAxis accepts "horizontal"/"h" and "vertical"/"v".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "horizontal", "h", "H":
		return Horizontal, nil
	case "vertical", "v", "V":
		return Vertical, nil
	}
	return "", fmt.Errorf("unknown flip axis %q (want horizontal or vertical)", s)
}

// Resize scales img to exactly width x height using bicubic (Catmull-Rom)
// resampling. The aspect ratio is not preserved.
func Resize(img image.Image, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d: both dimensions must be positive", width, height)
	}
	return imaging.Resize(img, width, height, imaging.CatmullRom), nil
}

// Rotate turns img clockwise by angle degrees. The canvas grows to hold the
// whole rotated image; uncovered corners are painted with fill.
//
// Multiples of 90 degrees are exact pixel permutations.
func Rotate(img image.Image, angle float64, fill color.Color) *image.NRGBA {
	if fill == nil {
		fill = color.Black
	}
	// imaging rotates counter-clockwise.
	return imaging.Rotate(img, -angle, fill)
}

// Flip mirrors img along axis.
func Flip(img image.Image, axis Axis) (*image.NRGBA, error) {
	switch axis {
	case Horizontal:
		return imaging.FlipH(img), nil
	case Vertical:
		return imaging.FlipV(img), nil
	}
	return nil, fmt.Errorf("unknown flip axis %q", axis)
}

// Grayscale reduces img to a single luminance channel using ITU-R 601-2
// weights (the same luma Enhance uses). The result is an *image.Gray; run it
// through Normalize to get back to three channels.
func Grayscale(img image.Image) *image.Gray {
	src, ok := img.(*image.NRGBA)
	if !ok || src.Rect.Min != (image.Point{}) {
		src = imaging.Clone(img)
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := range out {
			out[x] = luma(row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return dst
}

// Kernel weights for Blur and Sharpen. Each is divided by its scale before
// convolving so that flat regions are preserved.
var (
	blurWeights = []float64{
		1, 1, 1, 1, 1,
		1, 0, 0, 0, 1,
		1, 0, 0, 0, 1,
		1, 0, 0, 0, 1,
		1, 1, 1, 1, 1,
	}
	sharpenWeights = []float64{
		-2, -2, -2,
		-2, 32, -2,
		-2, -2, -2,
	}
)

const (
	blurSize     = 5
	sharpenSize  = 3
	kernelDivide = 16
)

// Blur softens img with a fixed 5x5 ring kernel. Edges are extended, not
// wrapped. The result is an *image.RGBA.
func Blur(img image.Image) *image.RGBA {
	return convolve(img, blurWeights, blurSize)
}

// Sharpen accentuates edges with a fixed 3x3 kernel. The result is an
// *image.RGBA.
func Sharpen(img image.Image) *image.RGBA {
	return convolve(img, sharpenWeights, sharpenSize)
}

func convolve(img image.Image, weights []float64, size int) *image.RGBA {
	k := convolution.NewKernel(size, size)
	for i, w := range weights {
		k.Matrix[i] = w / kernelDivide
	}
	return convolution.Convolve(img, k, &convolution.Options{Bias: 0, Wrap: false, KeepAlpha: true})
}
