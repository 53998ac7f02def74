package imaging

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"testing"
)

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		maxW, maxH    int
		wantW, wantH  int
	}{
		{"landscape shrinks to width", 1640, 640, 820, 640, 820, 320},
		{"portrait shrinks to height", 400, 1280, 820, 640, 200, 640},
		{"small image is not enlarged", 100, 50, 820, 640, 100, 50},
		{"zero bounds use defaults", 1640, 1280, 0, 0, 820, 640},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Thumbnail(newSolid(tt.width, tt.height, color.NRGBA{9, 9, 9, 255}), tt.maxW, tt.maxH)
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", got.Bounds().Dx(), got.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	src := newPattern(1000, 500)

	result, err := Preview(src, 100, 100)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if result.Width != 100 || result.Height != 50 {
		t.Errorf("preview size: got %dx%d, want 100x50", result.Width, result.Height)
	}
	if result.SourceWidth != 1000 || result.SourceHeight != 500 {
		t.Errorf("source size: got %dx%d, want 1000x500", result.SourceWidth, result.SourceHeight)
	}
	if result.MimeType != "image/png" {
		t.Errorf("mime type: got %q", result.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("preview is not valid base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("preview is not a valid PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 100 {
		t.Errorf("decoded width: got %d, want 100", decoded.Bounds().Dx())
	}
}

func TestPreview_NilImage(t *testing.T) {
	if _, err := Preview(nil, 10, 10); err == nil {
		t.Error("Preview(nil) should fail")
	}
}

func TestPreview_DoesNotModifySource(t *testing.T) {
	src := newPattern(50, 50)
	before := Normalize(src)

	if _, err := Preview(src, 10, 10); err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if !Equal(src, before) {
		t.Error("Preview modified the source image")
	}
}
