package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedFormat is returned when a file extension does not map to a
// known raster format.
var ErrUnsupportedFormat = imaging.ErrUnsupportedFormat

// EncodeOptions controls how Encode writes an image to disk.
type EncodeOptions struct {
	// JPEGQuality is the JPEG quality in the range 1-100. Zero means 95.
	JPEGQuality int

	// PNGCompression selects the PNG compression level. The zero value is
	// png.DefaultCompression.
	PNGCompression png.CompressionLevel
}

// Decode reads the image file at path and returns it in canonical form.
//
// The file format is detected from the file contents, not the extension, so a
// PNG saved with a ".jpg" name still decodes. EXIF orientation is not applied;
// pixels are returned as stored.
//
// # Errors
//
//   - Returns an error wrapping the os error if the file cannot be opened
//   - Returns an error wrapping image.ErrFormat if the contents are not a
//     supported raster format
func Decode(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return Normalize(img), nil
}

// Encode writes img to path in the format implied by the path's extension.
//
// Missing parent directories are created with mode 0755. An unknown extension
// fails with an error wrapping ErrUnsupportedFormat before anything is written.
func Encode(img image.Image, path string, opts EncodeOptions) error {
	if img == nil {
		return errors.New("nothing to encode")
	}
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("cannot save %q: %w", filepath.Ext(path), err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	quality := opts.JPEGQuality
	if quality == 0 {
		quality = 95
	}

	if err := imaging.Save(img, path,
		imaging.JPEGQuality(quality),
		imaging.PNGCompressionLevel(opts.PNGCompression),
	); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// FormatName returns the lower-case format name for a file extension:
// "jpeg", "png", "gif", "bmp", "tiff", or "unknown".
func FormatName(path string) string {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "unknown"
	}
	return strings.ToLower(f.String())
}

// ImageInfo describes an image held by the editor and the file it came from.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the source format derived from the file extension.
	Format string `json:"format"`

	// FileSizeBytes is the size of the source file on disk, or 0 if the file
	// is no longer present.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Describe returns metadata for img, which was decoded from path.
//
// The file is stat'ed, not re-read. A source file that has since been removed
// is reported with a zero size rather than an error, because the in-memory
// image is still valid.
func Describe(img image.Image, path string) *ImageInfo {
	bounds := img.Bounds()

	var size int64
	if stat, err := os.Stat(path); err == nil {
		size = stat.Size()
	}

	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        FormatName(path),
		FileSizeBytes: size,
	}
}
