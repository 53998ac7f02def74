package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// Default preview box, matching the editor window's canvas.
const (
	DefaultPreviewWidth  = 820
	DefaultPreviewHeight = 640
)

// PreviewResult is a downsampled rendering of an image, ready for display.
type PreviewResult struct {
	// Width and Height are the preview dimensions, not the source dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// SourceWidth and SourceHeight are the full-resolution dimensions.
	SourceWidth  int `json:"source_width"`
	SourceHeight int `json:"source_height"`

	// ImageBase64 is the preview encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// Thumbnail shrinks img to fit within maxWidth x maxHeight, preserving aspect
// ratio. Images that already fit are copied, never enlarged.
func Thumbnail(img image.Image, maxWidth, maxHeight int) *image.NRGBA {
	if maxWidth <= 0 {
		maxWidth = DefaultPreviewWidth
	}
	if maxHeight <= 0 {
		maxHeight = DefaultPreviewHeight
	}
	return imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
}

// Preview renders img as a PNG thumbnail bounded by maxWidth x maxHeight.
//
// Preview is stateless: the same image and bounds always produce the same
// bytes.
func Preview(img image.Image, maxWidth, maxHeight int) (*PreviewResult, error) {
	if img == nil {
		return nil, fmt.Errorf("no image to preview")
	}

	thumb := Thumbnail(img, maxWidth, maxHeight)
	encoded, err := EncodePNGBase64(thumb)
	if err != nil {
		return nil, err
	}

	src := img.Bounds()
	return &PreviewResult{
		Width:        thumb.Bounds().Dx(),
		Height:       thumb.Bounds().Dy(),
		SourceWidth:  src.Dx(),
		SourceHeight: src.Dy(),
		ImageBase64:  encoded,
		MimeType:     "image/png",
	}, nil
}

// EncodePNGBase64 encodes img as PNG and returns the base64 (standard
// alphabet) text.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode preview: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
