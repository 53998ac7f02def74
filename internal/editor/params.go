package editor

import (
	"math"
	"strconv"
	"strings"
)

// ParseDimension parses a positive integer size.
func ParseDimension(name, value string) (int, error) {
	v := strings.TrimSpace(value)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &InvalidParameterError{Name: name, Value: value, Reason: "must be an integer"}
	}
	if n <= 0 {
		return 0, &InvalidParameterError{Name: name, Value: value, Reason: "must be positive"}
	}
	return n, nil
}

// ParseDimensions parses "width,height", ignoring spaces, e.g. "800, 600".
func ParseDimensions(value string) (width, height int, err error) {
	parts := strings.Split(strings.ReplaceAll(value, " ", ""), ",")
	if len(parts) != 2 {
		return 0, 0, &InvalidParameterError{
			Name:   "size",
			Value:  value,
			Reason: "enter width and height separated by a comma",
		}
	}
	if width, err = ParseDimension("width", parts[0]); err != nil {
		return 0, 0, err
	}
	if height, err = ParseDimension("height", parts[1]); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// ParseAngle parses a rotation in degrees.
func ParseAngle(value string) (float64, error) {
	return parseFinite("angle", value)
}

// ParseFactor parses an adjustment factor.
func ParseFactor(value string) (float64, error) {
	return parseFinite("factor", value)
}

func parseFinite(name, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, &InvalidParameterError{Name: name, Value: value, Reason: "must be a number"}
	}
	if err := checkFinite(name, f); err != nil {
		return 0, err
	}
	return f, nil
}

func checkFinite(name string, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &InvalidParameterError{
			Name:   name,
			Value:  strconv.FormatFloat(f, 'g', -1, 64),
			Reason: "must be a finite number",
		}
	}
	return nil
}
