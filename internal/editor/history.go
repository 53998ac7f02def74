package editor

import (
	"image"

	"github.com/disintegration/imaging"
)

// History is a last-in-first-out stack of image snapshots used for undo.
//
// Each snapshot is an owned copy, so later changes to the pushed image (or to
// an image returned by Pop) can never reach back into the stack.
type History struct {
	snapshots []*image.NRGBA
}

// NewHistory returns an empty stack.
func NewHistory() *History {
	return &History{}
}

// Push stores a copy of img. A nil image means there is nothing to preserve
// and is silently ignored.
func (h *History) Push(img *image.NRGBA) {
	if img == nil {
		return
	}
	h.snapshots = append(h.snapshots, imaging.Clone(img))
}

// Pop removes and returns the most recent snapshot. ok is false when the
// stack is empty.
func (h *History) Pop() (img *image.NRGBA, ok bool) {
	n := len(h.snapshots)
	if n == 0 {
		return nil, false
	}
	img = h.snapshots[n-1]
	h.snapshots[n-1] = nil
	h.snapshots = h.snapshots[:n-1]
	return img, true
}

// Peek returns the most recent snapshot without removing it.
func (h *History) Peek() (img *image.NRGBA, ok bool) {
	n := len(h.snapshots)
	if n == 0 {
		return nil, false
	}
	return h.snapshots[n-1], true
}

// Depth is the number of snapshots on the stack.
func (h *History) Depth() int {
	return len(h.snapshots)
}

// Clear drops every snapshot.
func (h *History) Clear() {
	for i := range h.snapshots {
		h.snapshots[i] = nil
	}
	h.snapshots = h.snapshots[:0]
}
