package editor

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/photo-edit-mcp/internal/imaging"
)

// DefaultMaxPixels caps the area of a resize when Options.MaxPixels is unset.
const DefaultMaxPixels = 100_000_000

// Options configures an Editor.
type Options struct {
	// RotateFill paints the corners uncovered by a rotation. Nil means black.
	RotateFill color.Color

	// Encode controls JPEG quality and PNG compression for Save.
	Encode imaging.EncodeOptions

	// MaxPixels is the largest width*height Resize accepts. Zero or less
	// means DefaultMaxPixels.
	MaxPixels int64

	// Logger receives debug records for every state change. Nil discards them.
	Logger logrus.FieldLogger
}

// Editor is the editing core: the current image, its source path, the undo
// history and one adjustment session per slider.
//
// An Editor is not safe for concurrent use. Callers serialize access, the way
// a UI event loop would.
type Editor struct {
	current  *image.NRGBA
	source   string
	history  *History
	sessions map[imaging.Enhancement]*Session
	opts     Options
	log      logrus.FieldLogger
}

// New returns an Editor with nothing loaded.
func New(opts Options) *Editor {
	if opts.RotateFill == nil {
		opts.RotateFill = color.Black
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = DefaultMaxPixels
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	sessions := make(map[imaging.Enhancement]*Session, len(imaging.Enhancements))
	for _, kind := range imaging.Enhancements {
		sessions[kind] = newSession(kind)
	}

	return &Editor{
		history:  NewHistory(),
		sessions: sessions,
		opts:     opts,
		log:      log,
	}
}

// Current returns the committed image, or nil if nothing is loaded.
func (e *Editor) Current() *image.NRGBA { return e.current }

// SourcePath is the file the current editing session was loaded from.
func (e *Editor) SourcePath() string { return e.source }

// Depth is the number of undo steps available.
func (e *Editor) Depth() int { return e.history.Depth() }

// Session returns the adjustment session for kind, or nil for an unknown kind.
func (e *Editor) Session(kind imaging.Enhancement) *Session { return e.sessions[kind] }

// Load decodes path and makes it the current image. History is cleared and
// every slider returns to neutral. On failure nothing changes.
func (e *Editor) Load(path string) (*image.NRGBA, error) {
	img, err := imaging.Decode(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	e.current = img
	e.source = path
	e.history.Clear()
	e.resetSessions()

	e.log.WithFields(logrus.Fields{
		"path":   path,
		"width":  img.Rect.Dx(),
		"height": img.Rect.Dy(),
	}).Info("Image loaded")
	return img, nil
}

// Save writes the current image to path in the format implied by its
// extension, creating parent directories as needed.
func (e *Editor) Save(path string) error {
	if e.current == nil {
		return ErrNoImage
	}
	if err := imaging.Encode(e.current, path, e.opts.Encode); err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	e.log.WithField("path", path).Info("Image saved")
	return nil
}

// Undo restores the most recent snapshot. It reports false, with no state
// change, when there is nothing to undo.
func (e *Editor) Undo() bool {
	prev, ok := e.history.Pop()
	if !ok {
		e.log.Debug("Nothing to undo")
		return false
	}
	e.current = prev
	e.resetSessions()
	e.log.WithField("depth", e.history.Depth()).Debug("Undo")
	return true
}

// Reset re-reads the original file and makes it current. The image being
// replaced is pushed first, so Reset can itself be undone. If the file cannot
// be read, nothing is pushed.
func (e *Editor) Reset() error {
	if e.source == "" {
		return ErrNoSource
	}
	orig, err := imaging.Decode(e.source)
	if err != nil {
		return &DecodeError{Path: e.source, Err: err}
	}

	e.history.Push(e.current)
	e.current = orig
	e.resetSessions()
	e.log.WithFields(logrus.Fields{
		"path":  e.source,
		"depth": e.history.Depth(),
	}).Debug("Reset to original")
	return nil
}

// Resize scales the image to exactly width x height. Sizes above the
// configured pixel limit are rejected before anything is pushed.
func (e *Editor) Resize(width, height int) error {
	if width <= 0 {
		return &InvalidParameterError{Name: "width", Value: fmt.Sprint(width), Reason: "must be positive"}
	}
	if height <= 0 {
		return &InvalidParameterError{Name: "height", Value: fmt.Sprint(height), Reason: "must be positive"}
	}
	if int64(width)*int64(height) > e.opts.MaxPixels {
		return &InvalidParameterError{
			Name:   "size",
			Value:  fmt.Sprintf("%dx%d", width, height),
			Reason: fmt.Sprintf("exceeds the %d pixel limit", e.opts.MaxPixels),
		}
	}
	return e.apply("resize", func(img *image.NRGBA) (image.Image, error) {
		return imaging.Resize(img, width, height)
	})
}

// Rotate turns the image clockwise by angle degrees, growing the canvas to fit.
func (e *Editor) Rotate(angle float64) error {
	if err := checkFinite("angle", angle); err != nil {
		return err
	}
	return e.apply("rotate", func(img *image.NRGBA) (image.Image, error) {
		return imaging.Rotate(img, angle, e.opts.RotateFill), nil
	})
}

// Flip mirrors the image along axis.
func (e *Editor) Flip(axis imaging.Axis) error {
	if axis != imaging.Horizontal && axis != imaging.Vertical {
		return &InvalidParameterError{Name: "axis", Value: string(axis), Reason: "must be horizontal or vertical"}
	}
	return e.apply("flip", func(img *image.NRGBA) (image.Image, error) {
		return imaging.Flip(img, axis)
	})
}

// Grayscale desaturates the image. The stored result keeps three channels.
func (e *Editor) Grayscale() error {
	return e.apply("grayscale", func(img *image.NRGBA) (image.Image, error) {
		return imaging.Grayscale(img), nil
	})
}

// Blur applies the fixed blur kernel.
func (e *Editor) Blur() error {
	return e.apply("blur", func(img *image.NRGBA) (image.Image, error) {
		return imaging.Blur(img), nil
	})
}

// Sharpen applies the fixed sharpen kernel.
func (e *Editor) Sharpen() error {
	return e.apply("sharpen", func(img *image.NRGBA) (image.Image, error) {
		return imaging.Sharpen(img), nil
	})
}

// apply runs one discrete operation: push, transform, normalize, replace.
//
// The snapshot is pushed before the transform runs and stays pushed if the
// transform fails, so every history entry is the state just before an
// attempted operation.
func (e *Editor) apply(op string, fn func(*image.NRGBA) (image.Image, error)) error {
	if e.current == nil {
		return ErrNoImage
	}

	e.history.Push(e.current)
	e.resetSessions()

	result, err := transform(fn, e.current)
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"op":    op,
			"error": err,
		}).Warn("Operation failed")
		return &OperationError{Op: op, Err: err}
	}

	e.current = imaging.Normalize(result)
	e.log.WithFields(logrus.Fields{
		"op":     op,
		"width":  e.current.Rect.Dx(),
		"height": e.current.Rect.Dy(),
		"depth":  e.history.Depth(),
	}).Debug("Applied operation")
	return nil
}

// transform calls fn on a private copy of img and converts a panic inside the
// imaging libraries into an error.
func transform(fn func(*image.NRGBA) (image.Image, error), img *image.NRGBA) (result image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	result, err = fn(imaging.Normalize(img))
	if err == nil && result == nil {
		err = fmt.Errorf("transform produced no image")
	}
	return result, err
}

func (e *Editor) resetSessions() {
	for _, s := range e.sessions {
		s.reset()
	}
}
