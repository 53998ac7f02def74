package editor

import (
	"image"

	"github.com/ironsheep/photo-edit-mcp/internal/imaging"
)

// SessionState is the state of one slider gesture.
type SessionState int

const (
	// Idle means no gesture is in progress; the slider shows the neutral factor.
	Idle SessionState = iota
	// Active means a snapshot has been pushed and previews are computed from it.
	Active
)

func (s SessionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	}
	return "unknown"
}

// Session tracks one continuous adjustment (brightness, contrast or color).
//
// A gesture starts with the first preview while Idle: the editor pushes the
// current image and hands the pushed snapshot to begin as the base. Every
// preview is computed from that base, never from a previous preview, so
// moving the slider back and forth is lossless.
type Session struct {
	kind   imaging.Enhancement
	state  SessionState
	base   *image.NRGBA
	factor float64
}

func newSession(kind imaging.Enhancement) *Session {
	return &Session{kind: kind, factor: imaging.NeutralFactor}
}

// Kind is the adjustment this session controls.
func (s *Session) Kind() imaging.Enhancement { return s.kind }

// State reports whether a gesture is in progress.
func (s *Session) State() SessionState { return s.state }

// Factor is the slider's current value. It is the neutral factor while Idle.
func (s *Session) Factor() float64 { return s.factor }

// Base is the snapshot the current gesture previews from, or nil while Idle.
func (s *Session) Base() *image.NRGBA { return s.base }

func (s *Session) begin(base *image.NRGBA) {
	s.state = Active
	s.base = base
}

func (s *Session) move(factor float64) {
	s.factor = factor
}

// reset discards any gesture and puts the slider back to neutral.
func (s *Session) reset() {
	s.state = Idle
	s.base = nil
	s.factor = imaging.NeutralFactor
}
