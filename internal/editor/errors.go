package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrNoImage is returned by operations that need a loaded image.
	ErrNoImage = errors.New("no image loaded")

	// ErrNoSource is returned by Reset when no source file has been recorded.
	ErrNoSource = errors.New("no original file to reset to")
)

// DecodeError reports a file that could not be read as an image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not open image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports an image that could not be written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("could not save image %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// InvalidParameterError reports malformed user input. It is always raised
// before any state changes.
type InvalidParameterError struct {
	Name   string
	Value  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Name, e.Value, e.Reason)
}

// OperationError reports a transform that failed after its history snapshot
// was pushed. The current image is left as it was.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// Kind classifies an error for transports that report errors by name.
type Kind string

const (
	KindNone             Kind = ""
	KindNoImage          Kind = "no_image"
	KindNoSource         Kind = "no_source"
	KindDecode           Kind = "decode"
	KindEncode           Kind = "encode"
	KindInvalidParameter Kind = "invalid_parameter"
	KindOperation        Kind = "operation"
	KindInternal         Kind = "internal"
)

// KindOf returns the Kind of err, or KindInternal for errors outside the
// editor's taxonomy. A nil error is KindNone.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var (
		decodeErr *DecodeError
		encodeErr *EncodeError
		paramErr  *InvalidParameterError
		opErr     *OperationError
	)
	switch {
	case errors.Is(err, ErrNoImage):
		return KindNoImage
	case errors.Is(err, ErrNoSource):
		return KindNoSource
	case errors.As(err, &paramErr):
		return KindInvalidParameter
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &encodeErr):
		return KindEncode
	case errors.As(err, &opErr):
		return KindOperation
	}
	return KindInternal
}
