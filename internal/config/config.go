// Package config loads the optional photo-edit.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/photo-edit-mcp/internal/editor"
	"github.com/ironsheep/photo-edit-mcp/internal/imaging"
)

// Config represents photo-edit.yaml. Zero values are filled from Default.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Preview PreviewConfig `yaml:"preview"`
	Output  OutputConfig  `yaml:"output"`
	Rotate  RotateConfig  `yaml:"rotate"`
	Sliders SlidersConfig `yaml:"sliders"`
	HTTP    HTTPConfig    `yaml:"http"`
	Limits  LimitsConfig  `yaml:"limits"`
}

// LogConfig sets the logrus level.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// PreviewConfig bounds the preview images returned by tools.
type PreviewConfig struct {
	MaxWidth  int `yaml:"max_width,omitempty"`
	MaxHeight int `yaml:"max_height,omitempty"`
}

// OutputConfig controls encoding on save.
type OutputConfig struct {
	JPEGQuality int `yaml:"jpeg_quality,omitempty"`

	// PNGCompression is one of default, none, speed, best.
	PNGCompression string `yaml:"png_compression,omitempty"`
}

// RotateConfig sets the corner fill for rotations, as "#RRGGBB" or "#RGB".
type RotateConfig struct {
	Fill string `yaml:"fill,omitempty"`
}

// SlidersConfig holds the accepted factor range per adjustment.
type SlidersConfig struct {
	Brightness Range `yaml:"brightness"`
	Contrast   Range `yaml:"contrast"`
	Color      Range `yaml:"color"`
}

// HTTPConfig holds the listen address for the http subcommand.
type HTTPConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// LimitsConfig bounds the output of size-changing operations.
type LimitsConfig struct {
	// MaxPixels is the largest width*height a resize may produce.
	MaxPixels int64 `yaml:"max_pixels,omitempty"`
}

// Range is an inclusive factor range.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether f lies within the range.
func (r Range) Contains(f float64) bool {
	return f >= r.Min && f <= r.Max
}

func (r Range) isZero() bool { return r.Min == 0 && r.Max == 0 }

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "info"},
		Preview: PreviewConfig{MaxWidth: imaging.DefaultPreviewWidth, MaxHeight: imaging.DefaultPreviewHeight},
		Output:  OutputConfig{JPEGQuality: 95, PNGCompression: "default"},
		Rotate:  RotateConfig{Fill: "#000000"},
		Sliders: SlidersConfig{
			Brightness: Range{Min: 0.2, Max: 3.0},
			Contrast:   Range{Min: 0.2, Max: 3.0},
			Color:      Range{Min: 0.0, Max: 2.0},
		},
		HTTP:   HTTPConfig{Addr: ":8080"},
		Limits: LimitsConfig{MaxPixels: editor.DefaultMaxPixels},
	}
}

// LoadOptional reads the file at path if present. An empty path or a missing
// file yields the defaults.
func LoadOptional(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.merge(&file)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if v := strings.TrimSpace(o.Log.Level); v != "" {
		c.Log.Level = v
	}
	if o.Preview.MaxWidth != 0 {
		c.Preview.MaxWidth = o.Preview.MaxWidth
	}
	if o.Preview.MaxHeight != 0 {
		c.Preview.MaxHeight = o.Preview.MaxHeight
	}
	if o.Output.JPEGQuality != 0 {
		c.Output.JPEGQuality = o.Output.JPEGQuality
	}
	if v := strings.TrimSpace(o.Output.PNGCompression); v != "" {
		c.Output.PNGCompression = v
	}
	if v := strings.TrimSpace(o.Rotate.Fill); v != "" {
		c.Rotate.Fill = v
	}
	if !o.Sliders.Brightness.isZero() {
		c.Sliders.Brightness = o.Sliders.Brightness
	}
	if !o.Sliders.Contrast.isZero() {
		c.Sliders.Contrast = o.Sliders.Contrast
	}
	if !o.Sliders.Color.isZero() {
		c.Sliders.Color = o.Sliders.Color
	}
	if v := strings.TrimSpace(o.HTTP.Addr); v != "" {
		c.HTTP.Addr = v
	}
	if o.Limits.MaxPixels != 0 {
		c.Limits.MaxPixels = o.Limits.MaxPixels
	}
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Preview.MaxWidth <= 0 || c.Preview.MaxHeight <= 0 {
		return fmt.Errorf("preview size must be positive (got %dx%d)", c.Preview.MaxWidth, c.Preview.MaxHeight)
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("output.jpeg_quality must be 1-100 (got %d)", c.Output.JPEGQuality)
	}
	if _, err := c.PNGCompression(); err != nil {
		return err
	}
	if _, err := c.RotateFill(); err != nil {
		return fmt.Errorf("rotate.fill: %w", err)
	}
	if c.Limits.MaxPixels <= 0 {
		return fmt.Errorf("limits.max_pixels must be positive (got %d)", c.Limits.MaxPixels)
	}
	for name, r := range map[string]Range{
		"brightness": c.Sliders.Brightness,
		"contrast":   c.Sliders.Contrast,
		"color":      c.Sliders.Color,
	} {
		if r.Min < 0 || r.Max < r.Min {
			return fmt.Errorf("sliders.%s: need 0 <= min <= max (got %g..%g)", name, r.Min, r.Max)
		}
		if !r.Contains(imaging.NeutralFactor) {
			return fmt.Errorf("sliders.%s: range %g..%g must include %g", name, r.Min, r.Max, imaging.NeutralFactor)
		}
	}
	return nil
}

// RotateFill returns the corner fill color for rotations.
func (c *Config) RotateFill() (color.Color, error) {
	return imaging.ParseHexColor(c.Rotate.Fill)
}

// PNGCompression maps output.png_compression to an encoder level.
func (c *Config) PNGCompression() (png.CompressionLevel, error) {
	switch strings.ToLower(c.Output.PNGCompression) {
	case "", "default":
		return png.DefaultCompression, nil
	case "none":
		return png.NoCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	}
	return 0, fmt.Errorf("output.png_compression must be default, none, speed or best (got %q)", c.Output.PNGCompression)
}

// EncodeOptions returns the save settings for the imaging codec.
func (c *Config) EncodeOptions() imaging.EncodeOptions {
	level, _ := c.PNGCompression()
	return imaging.EncodeOptions{JPEGQuality: c.Output.JPEGQuality, PNGCompression: level}
}

// SliderRange returns the accepted range for kind.
func (c *Config) SliderRange(kind imaging.Enhancement) Range {
	switch kind {
	case imaging.Brightness:
		return c.Sliders.Brightness
	case imaging.Contrast:
		return c.Sliders.Contrast
	}
	return c.Sliders.Color
}
