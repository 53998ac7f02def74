package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Normalize converts img to the canonical pipeline format: an *image.NRGBA
// anchored at (0,0) with every alpha value set to 255.
//
// The result is always a fresh copy, even when img is already canonical, so
// callers may treat it as owned. Alpha is dropped rather than composited,
// leaving the straight (non-premultiplied) color of each pixel.
func Normalize(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// Equal reports whether a and b have the same dimensions and identical pixel
// buffers.
func Equal(a, b *image.NRGBA) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Rect.Dx() != b.Rect.Dx() || a.Rect.Dy() != b.Rect.Dy() {
		return false
	}
	w := a.Rect.Dx() * 4
	for y := 0; y < a.Rect.Dy(); y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+w]
		rb := b.Pix[y*b.Stride : y*b.Stride+w]
		for i := range ra {
			if ra[i] != rb[i] {
				return false
			}
		}
	}
	return true
}
