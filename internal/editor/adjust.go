package editor

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/photo-edit-mcp/internal/imaging"
)

// Preview records a slider move and returns enhance(base, factor) without
// touching the committed image.
//
// The first preview of a gesture pushes the current image and makes it the
// base; later previews reuse that base, so however many previews a gesture
// produces, history grows by one. A failure is returned to the caller, which
// may ignore it mid-drag; it never changes the session.
func (e *Editor) Preview(kind imaging.Enhancement, factor float64) (*image.NRGBA, error) {
	s, err := e.session(kind, factor)
	if err != nil {
		return nil, err
	}
	if e.current == nil {
		return nil, ErrNoImage
	}

	if s.State() == Idle {
		e.history.Push(e.current)
		base, _ := e.history.Peek()
		s.begin(base)
		e.log.WithFields(logrus.Fields{
			"kind":  kind,
			"depth": e.history.Depth(),
		}).Debug("Adjustment started")
	}
	s.move(factor)

	preview, err := imaging.Enhance(s.Base(), kind, factor)
	if err != nil {
		return nil, &OperationError{Op: string(kind) + " preview", Err: err}
	}
	return preview, nil
}

// Commit applies enhance(base, factor) as the new current image and returns
// every slider to neutral.
//
// Committing without a preceding preview behaves like a one-step gesture:
// the current image is pushed and used as the base. Committing also abandons
// any other kind's uncommitted gesture.
func (e *Editor) Commit(kind imaging.Enhancement, factor float64) error {
	s, err := e.session(kind, factor)
	if err != nil {
		return err
	}
	if e.current == nil {
		return ErrNoImage
	}

	if s.State() == Idle {
		e.history.Push(e.current)
		base, _ := e.history.Peek()
		s.begin(base)
	}
	base := s.Base()
	e.resetSessions()

	result, err := imaging.Enhance(base, kind, factor)
	if err != nil {
		return &OperationError{Op: string(kind), Err: err}
	}
	e.current = imaging.Normalize(result)

	e.log.WithFields(logrus.Fields{
		"kind":   kind,
		"factor": factor,
		"depth":  e.history.Depth(),
	}).Debug("Adjustment committed")
	return nil
}

// Cancel abandons kind's gesture: previews are discarded and the slider
// returns to neutral. The snapshot pushed when the gesture started stays on
// the history stack.
func (e *Editor) Cancel(kind imaging.Enhancement) error {
	s, ok := e.sessions[kind]
	if !ok {
		return &InvalidParameterError{Name: "adjustment", Value: string(kind), Reason: "unknown adjustment"}
	}
	s.reset()
	return nil
}

// Sliders returns each adjustment's current factor.
func (e *Editor) Sliders() map[imaging.Enhancement]float64 {
	out := make(map[imaging.Enhancement]float64, len(e.sessions))
	for kind, s := range e.sessions {
		out[kind] = s.Factor()
	}
	return out
}

func (e *Editor) session(kind imaging.Enhancement, factor float64) (*Session, error) {
	s, ok := e.sessions[kind]
	if !ok {
		return nil, &InvalidParameterError{
			Name:   "adjustment",
			Value:  string(kind),
			Reason: fmt.Sprintf("want one of %v", imaging.Enhancements),
		}
	}
	if err := checkFinite("factor", factor); err != nil {
		return nil, err
	}
	return s, nil
}
