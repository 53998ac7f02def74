// Package imaging provides the pixel-level building blocks of the photo editor.
//
// Everything in this package is a pure function: an image goes in, a new image
// comes out, and the input is never modified. The editor package layers the
// stateful pieces (current image, undo history, slider sessions) on top.
//
// # Canonical Format
//
// Every image stored by the editor is an *image.NRGBA whose bounds start at
// (0,0) and whose alpha channel is fully opaque. Decoders, filters and the
// bild-based kernels may hand back other concrete types (*image.Gray,
// *image.RGBA, *image.YCbCr); Normalize converts any of them to the canonical
// form so that stored images have one representation regardless of which
// operation produced them.
//
// # Libraries
//
// Geometry, codecs and per-pixel adjustment use github.com/disintegration/imaging.
// The fixed blur/sharpen kernels use github.com/anthonynsimon/bild. Color
// space conversion for sampling uses github.com/lucasb-eyer/go-colorful.
//
// # Supported Formats
//
// Decoding accepts JPEG, PNG, GIF, BMP and TIFF. Encoding picks the format
// from the destination file extension:
//   - ".jpg", ".jpeg" -> JPEG (quality from EncodeOptions)
//   - ".png" -> PNG (compression from EncodeOptions)
//   - ".bmp" -> BMP
//   - ".gif" -> GIF
//   - ".tif", ".tiff" -> TIFF
//
// # Thread Safety
//
// All functions are stateless and safe to call concurrently on different or
// shared inputs, since inputs are never written to.
package imaging
