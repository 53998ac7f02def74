// Package editor holds the state of a photo editing session.
//
// An Editor owns three things:
//   - the current image and the path it was loaded from
//   - a History of snapshots for undo
//   - one Session per continuous adjustment (brightness, contrast, color)
//
// # Discrete Operations
//
// Resize, Rotate, Flip, Grayscale, Blur and Sharpen each push the current
// image onto the history, transform a copy, normalize the result and make it
// current. The push happens before the transform is attempted and is kept if
// the transform fails, so Undo always returns to the state just before the
// most recent attempt.
//
// # Slider Gestures
//
// A slider produces many Preview calls followed by one Commit. The first
// Preview pushes a snapshot and becomes the gesture's base; every Preview is
// computed from that base, and Commit applies the final factor to it. History
// therefore grows by exactly one per gesture. Committing a different
// adjustment, running a discrete operation, Undo, Reset or Load abandons an
// uncommitted gesture; its snapshot stays on the stack.
//
// # Errors
//
// Errors are typed (DecodeError, EncodeError, InvalidParameterError,
// OperationError) or sentinel (ErrNoImage, ErrNoSource). KindOf maps any of
// them to a stable name for transports. An empty undo stack is not an error:
// Undo reports false.
package editor
