package editor

import (
	"strings"

	"github.com/ironsheep/photo-edit-mcp/internal/imaging"
)

// Step is one operation of a batch edit, written "name" or "name=value":
//
//	resize=800,600   rotate=90   flip=horizontal   grayscale   blur   sharpen
//	brightness=1.2   contrast=0.8   color=1.5
type Step struct {
	Name  string
	Value string
}

func (s Step) String() string {
	if s.Value == "" {
		return s.Name
	}
	return s.Name + "=" + s.Value
}

// ParseStep parses and validates one step without running it.
func ParseStep(text string) (Step, error) {
	name, value, _ := strings.Cut(strings.TrimSpace(text), "=")
	step := Step{Name: strings.ToLower(strings.TrimSpace(name)), Value: strings.TrimSpace(value)}

	needsValue := true
	switch step.Name {
	case "grayscale", "blur", "sharpen":
		needsValue = false
	case "resize":
		if _, _, err := ParseDimensions(step.Value); err != nil {
			return Step{}, err
		}
	case "rotate":
		if _, err := ParseAngle(step.Value); err != nil {
			return Step{}, err
		}
	case "flip":
		if _, err := imaging.ParseAxis(step.Value); err != nil {
			return Step{}, &InvalidParameterError{Name: "axis", Value: step.Value, Reason: "must be horizontal or vertical"}
		}
	default:
		if _, err := imaging.ParseEnhancement(step.Name); err != nil {
			return Step{}, &InvalidParameterError{Name: "step", Value: text, Reason: "unknown operation"}
		}
		if _, err := ParseFactor(step.Value); err != nil {
			return Step{}, err
		}
	}

	if !needsValue && step.Value != "" {
		return Step{}, &InvalidParameterError{Name: step.Name, Value: step.Value, Reason: "takes no value"}
	}
	return step, nil
}

// Apply runs a parsed step against the editor. Adjustments commit
// immediately, each as its own history entry.
func (e *Editor) Apply(step Step) error {
	switch step.Name {
	case "resize":
		w, h, err := ParseDimensions(step.Value)
		if err != nil {
			return err
		}
		return e.Resize(w, h)
	case "rotate":
		angle, err := ParseAngle(step.Value)
		if err != nil {
			return err
		}
		return e.Rotate(angle)
	case "flip":
		axis, err := imaging.ParseAxis(step.Value)
		if err != nil {
			return &InvalidParameterError{Name: "axis", Value: step.Value, Reason: "must be horizontal or vertical"}
		}
		return e.Flip(axis)
	case "grayscale":
		return e.Grayscale()
	case "blur":
		return e.Blur()
	case "sharpen":
		return e.Sharpen()
	}

	kind, err := imaging.ParseEnhancement(step.Name)
	if err != nil {
		return &InvalidParameterError{Name: "step", Value: step.String(), Reason: "unknown operation"}
	}
	factor, err := ParseFactor(step.Value)
	if err != nil {
		return err
	}
	return e.Commit(kind, factor)
}
