package editor

import (
	"github.com/ironsheep/photo-edit-mcp/internal/imaging"
)

// SliderState is the display state of one adjustment slider.
type SliderState struct {
	Factor float64 `json:"factor"`
	State  string  `json:"state"`
}

// State is a snapshot of everything a shell needs to redraw its controls.
type State struct {
	Loaded       bool                   `json:"loaded"`
	Width        int                    `json:"width,omitempty"`
	Height       int                    `json:"height,omitempty"`
	SourcePath   string                 `json:"source_path,omitempty"`
	Source       *imaging.ImageInfo     `json:"source,omitempty"`
	HistoryDepth int                    `json:"history_depth"`
	Sliders      map[string]SliderState `json:"sliders"`
}

// State reports the editor's current state.
func (e *Editor) State() *State {
	st := &State{
		Loaded:       e.current != nil,
		SourcePath:   e.source,
		HistoryDepth: e.history.Depth(),
		Sliders:      make(map[string]SliderState, len(e.sessions)),
	}
	if e.current != nil {
		st.Width = e.current.Rect.Dx()
		st.Height = e.current.Rect.Dy()
	}
	if e.source != "" && e.current != nil {
		st.Source = imaging.Describe(e.current, e.source)
	}
	for kind, s := range e.sessions {
		st.Sliders[string(kind)] = SliderState{Factor: s.Factor(), State: s.State().String()}
	}
	return st
}
