package config

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/photo-edit-mcp/internal/imaging"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo-edit.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadOptional_Missing(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "nope.yaml")} {
		cfg, err := LoadOptional(path)
		if err != nil {
			t.Fatalf("LoadOptional(%q): %v", path, err)
		}
		if cfg.Preview.MaxWidth != 820 || cfg.Output.JPEGQuality != 95 || cfg.HTTP.Addr != ":8080" {
			t.Errorf("expected defaults, got %+v", cfg)
		}
	}
}

func TestLoadOptional_Merge(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
preview:
  max_width: 400
output:
  jpeg_quality: 80
  png_compression: best
rotate:
  fill: "#ffffff"
sliders:
  color:
    min: 0.5
    max: 1.5
limits:
  max_pixels: 4000000
`)
	cfg, err := LoadOptional(path)
	if err != nil {
		t.Fatalf("LoadOptional failed: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("log.level: got %q", cfg.Log.Level)
	}
	if cfg.Preview.MaxWidth != 400 || cfg.Preview.MaxHeight != 640 {
		t.Errorf("preview: got %dx%d, want 400x640", cfg.Preview.MaxWidth, cfg.Preview.MaxHeight)
	}
	opts := cfg.EncodeOptions()
	if opts.JPEGQuality != 80 || opts.PNGCompression != png.BestCompression {
		t.Errorf("encode options: %+v", opts)
	}
	fill, err := cfg.RotateFill()
	if err != nil {
		t.Fatal(err)
	}
	if fill != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("fill: got %v", fill)
	}
	if r := cfg.SliderRange(imaging.Color); r.Min != 0.5 || r.Max != 1.5 {
		t.Errorf("color range: %+v", r)
	}
	if cfg.Limits.MaxPixels != 4000000 {
		t.Errorf("limits.max_pixels: got %d", cfg.Limits.MaxPixels)
	}
	if r := cfg.SliderRange(imaging.Brightness); r.Min != 0.2 || r.Max != 3.0 {
		t.Errorf("brightness range should keep default, got %+v", r)
	}
}

func TestLoadOptional_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "log: [", "failed to parse"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"bad quality", "output:\n  jpeg_quality: 150\n", "jpeg_quality"},
		{"bad compression", "output:\n  png_compression: max\n", "png_compression"},
		{"bad fill", "rotate:\n  fill: purple\n", "rotate.fill"},
		{"short hex fill", "rotate:\n  fill: \"#12345\"\n", "rotate.fill"},
		{"long hex fill", "rotate:\n  fill: \"#1234567\"\n", "rotate.fill"},
		{"negative pixel limit", "limits:\n  max_pixels: -5\n", "limits.max_pixels"},
		{"inverted range", "sliders:\n  contrast:\n    min: 2\n    max: 1\n", "sliders.contrast"},
		{"range excludes neutral", "sliders:\n  brightness:\n    min: 1.5\n    max: 2\n", "must include"},
		{"negative preview", "preview:\n  max_height: -1\n", "preview size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadOptional(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{Min: 0.2, Max: 3.0}
	tests := []struct {
		f    float64
		want bool
	}{
		{0.2, true},
		{1.0, true},
		{3.0, true},
		{0.1, false},
		{3.01, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.f); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.f, got, tt.want)
		}
	}
}
