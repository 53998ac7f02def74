package editor

import (
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/photo-edit-mcp/internal/imaging"
)

func TestPreview_OnePushPerGesture(t *testing.T) {
	for _, kind := range imaging.Enhancements {
		t.Run(string(kind), func(t *testing.T) {
			e, _ := loadedEditor(t)
			committed := e.Current()

			for _, f := range []float64{1.1, 1.4, 0.6, 2.2, 1.0, 0.9} {
				if _, err := e.Preview(kind, f); err != nil {
					t.Fatalf("Preview(%v) failed: %v", f, err)
				}
			}
			if e.Depth() != 1 {
				t.Errorf("depth after six previews: got %d, want 1", e.Depth())
			}
			if e.Current() != committed {
				t.Error("previews must not replace the committed image")
			}
			if s := e.Session(kind); s.State() != Active || s.Factor() != 0.9 {
				t.Errorf("session: %s at %v, want active at 0.9", s.State(), s.Factor())
			}
		})
	}
}

func TestPreview_NoCompoundingDrift(t *testing.T) {
	e, _ := loadedEditor(t)

	first, err := e.Preview(imaging.Brightness, 1.3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Preview(imaging.Brightness, 2.5); err != nil {
		t.Fatal(err)
	}
	again, err := e.Preview(imaging.Brightness, 1.3)
	if err != nil {
		t.Fatal(err)
	}

	if !imaging.Equal(first, again) {
		t.Error("returning the slider to 1.3 should reproduce the first preview exactly")
	}

	want, _ := imaging.Enhance(e.Session(imaging.Brightness).Base(), imaging.Brightness, 1.3)
	if !imaging.Equal(again, want) {
		t.Error("preview should equal enhance(base, factor)")
	}
}

func TestPreview_ComputedFromBase(t *testing.T) {
	e, _ := loadedEditor(t)
	base := imaging.Normalize(e.Current())

	if _, err := e.Preview(imaging.Color, 0); err != nil {
		t.Fatal(err)
	}
	got, err := e.Preview(imaging.Color, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if !imaging.Equal(got, base) {
		t.Error("a neutral preview after a full desaturation should still show the untouched base")
	}
}

func TestCommit_NeutralIsIdentity(t *testing.T) {
	for _, kind := range imaging.Enhancements {
		t.Run(string(kind), func(t *testing.T) {
			e, _ := loadedEditor(t)
			base := imaging.Normalize(e.Current())

			if _, err := e.Preview(kind, 1.8); err != nil {
				t.Fatal(err)
			}
			if err := e.Commit(kind, 1.0); err != nil {
				t.Fatalf("Commit failed: %v", err)
			}
			if !imaging.Equal(e.Current(), base) {
				t.Error("committing factor 1.0 must leave the image pixel-identical to the base")
			}
		})
	}
}

func TestCommit_AppliesFinalFactor(t *testing.T) {
	e, _ := loadedEditor(t)
	base := imaging.Normalize(e.Current())

	preview, err := e.Preview(imaging.Contrast, 1.6)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Commit(imaging.Contrast, 1.6); err != nil {
		t.Fatal(err)
	}

	if !imaging.Equal(e.Current(), preview) {
		t.Error("commit should store exactly what the last preview showed")
	}
	if e.Depth() != 1 {
		t.Errorf("commit must not push or pop, depth %d", e.Depth())
	}
	s := e.Session(imaging.Contrast)
	if s.State() != Idle || s.Factor() != imaging.NeutralFactor || s.Base() != nil {
		t.Errorf("session after commit: %s at %v", s.State(), s.Factor())
	}

	if !e.Undo() || !imaging.Equal(e.Current(), base) {
		t.Error("undo after commit should restore the gesture's base")
	}
}

func TestCommit_WithoutPreviewPushesOnce(t *testing.T) {
	e, _ := loadedEditor(t)
	base := imaging.Normalize(e.Current())

	if err := e.Commit(imaging.Brightness, 1.2); err != nil {
		t.Fatal(err)
	}
	if e.Depth() != 1 {
		t.Errorf("depth: got %d, want 1", e.Depth())
	}
	want, _ := imaging.Enhance(base, imaging.Brightness, 1.2)
	if !imaging.Equal(e.Current(), want) {
		t.Error("commit without preview should apply the factor to the current image")
	}
}

func TestScenario_BrightnessGesture(t *testing.T) {
	e, path := loadedEditor(t)
	a, err := imaging.Decode(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range []float64{1.5, 2.0, 1.0} {
		if _, err := e.Preview(imaging.Brightness, f); err != nil {
			t.Fatal(err)
		}
	}
	if e.Depth() != 1 {
		t.Fatalf("depth after three preview events: got %d, want 1", e.Depth())
	}

	if err := e.Commit(imaging.Brightness, 1.0); err != nil {
		t.Fatal(err)
	}
	if !imaging.Equal(e.Current(), a) {
		t.Error("committing 1.0 should leave the image equal to A")
	}
	if e.Depth() != 1 {
		t.Errorf("depth after commit: got %d, want 1", e.Depth())
	}
}

func TestGesture_AbandonedByDiscreteOperation(t *testing.T) {
	e, _ := loadedEditor(t)
	base := imaging.Normalize(e.Current())

	if _, err := e.Preview(imaging.Color, 0.2); err != nil {
		t.Fatal(err)
	}
	if err := e.Flip(imaging.Horizontal); err != nil {
		t.Fatal(err)
	}

	if s := e.Session(imaging.Color); s.State() != Idle || s.Factor() != 1.0 {
		t.Errorf("discrete operation should abandon the gesture, got %s at %v", s.State(), s.Factor())
	}
	// Orphan snapshot from the gesture plus the flip's own snapshot.
	if e.Depth() != 2 {
		t.Errorf("depth: got %d, want 2", e.Depth())
	}
	flipped, _ := imaging.Flip(base, imaging.Horizontal)
	if !imaging.Equal(e.Current(), flipped) {
		t.Error("flip should apply to the committed image, not the preview")
	}
}

func TestGesture_AbandonedByOtherCommit(t *testing.T) {
	e, _ := loadedEditor(t)

	if _, err := e.Preview(imaging.Brightness, 2.0); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Preview(imaging.Contrast, 0.5); err != nil {
		t.Fatal(err)
	}
	if e.Depth() != 2 {
		t.Fatalf("each kind's gesture pushes its own snapshot, depth %d", e.Depth())
	}

	if err := e.Commit(imaging.Contrast, 0.5); err != nil {
		t.Fatal(err)
	}
	if s := e.Session(imaging.Brightness); s.State() != Idle {
		t.Error("committing contrast should abandon the brightness gesture")
	}
	if e.Depth() != 2 {
		t.Errorf("commit must not change depth, got %d", e.Depth())
	}

	// A new brightness gesture starts from the contrast result.
	committed := e.Current()
	if _, err := e.Preview(imaging.Brightness, 1.0); err != nil {
		t.Fatal(err)
	}
	if !imaging.Equal(e.Session(imaging.Brightness).Base(), committed) {
		t.Error("new gesture should use the latest committed image as base")
	}
}

func TestGesture_ResetByUndo(t *testing.T) {
	e, _ := loadedEditor(t)
	before := imaging.Normalize(e.Current())

	if _, err := e.Preview(imaging.Brightness, 0.4); err != nil {
		t.Fatal(err)
	}
	if !e.Undo() {
		t.Fatal("undo should pop the gesture snapshot")
	}
	if s := e.Session(imaging.Brightness); s.State() != Idle {
		t.Error("undo should reset sessions")
	}
	if !imaging.Equal(e.Current(), before) || e.Depth() != 0 {
		t.Error("undo of an uncommitted gesture should leave the committed image intact")
	}
}

func TestCancel(t *testing.T) {
	e, _ := loadedEditor(t)
	committed := e.Current()

	if _, err := e.Preview(imaging.Color, 1.9); err != nil {
		t.Fatal(err)
	}
	if err := e.Cancel(imaging.Color); err != nil {
		t.Fatal(err)
	}

	s := e.Session(imaging.Color)
	if s.State() != Idle || s.Factor() != 1.0 {
		t.Errorf("cancelled session: %s at %v", s.State(), s.Factor())
	}
	if e.Current() != committed {
		t.Error("cancel must not change the committed image")
	}
	if e.Depth() != 1 {
		t.Errorf("cancel leaves the gesture snapshot in place, depth %d", e.Depth())
	}

	if err := e.Cancel(imaging.Enhancement("gamma")); err == nil {
		t.Error("cancel of unknown kind should fail")
	}
}

func TestAdjust_NoImage(t *testing.T) {
	e := New(Options{})

	if _, err := e.Preview(imaging.Brightness, 1.5); !errors.Is(err, ErrNoImage) {
		t.Errorf("preview: got %v, want ErrNoImage", err)
	}
	if err := e.Commit(imaging.Brightness, 1.5); !errors.Is(err, ErrNoImage) {
		t.Errorf("commit: got %v, want ErrNoImage", err)
	}
	if e.Depth() != 0 || e.Session(imaging.Brightness).State() != Idle {
		t.Error("no-image adjustments must not change state")
	}
}

func TestAdjust_InvalidInput(t *testing.T) {
	e, _ := loadedEditor(t)

	tests := []struct {
		name   string
		kind   imaging.Enhancement
		factor float64
	}{
		{"unknown kind", imaging.Enhancement("hue"), 1.0},
		{"nan", imaging.Brightness, math.NaN()},
		{"inf", imaging.Contrast, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var paramErr *InvalidParameterError
			if _, err := e.Preview(tt.kind, tt.factor); !errors.As(err, &paramErr) {
				t.Errorf("preview: got %v, want InvalidParameterError", err)
			}
			if err := e.Commit(tt.kind, tt.factor); !errors.As(err, &paramErr) {
				t.Errorf("commit: got %v, want InvalidParameterError", err)
			}
			if e.Depth() != 0 {
				t.Errorf("depth: got %d, want 0", e.Depth())
			}
		})
	}
}

func TestSliders(t *testing.T) {
	e, _ := loadedEditor(t)
	if _, err := e.Preview(imaging.Contrast, 2.5); err != nil {
		t.Fatal(err)
	}

	got := e.Sliders()
	want := map[imaging.Enhancement]float64{
		imaging.Brightness: 1.0,
		imaging.Contrast:   2.5,
		imaging.Color:      1.0,
	}
	for kind, f := range want {
		if got[kind] != f {
			t.Errorf("%s: got %v, want %v", kind, got[kind], f)
		}
	}
}
