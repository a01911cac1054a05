package swipe

import "github.com/go-drift/swipeactions/pkg/graphics"

// MinX returns the horizontal position of the row content relative to the
// scroll viewport's origin. Zero means the row is closed; the sign of a
// nonzero value tells which way the content has moved.
func MinX(viewport, content graphics.Rect) float64 {
	return content.Left - viewport.Left
}

// ScrollOffset returns the correction applied to the track for a given minX.
// The content may move freely toward the action strip but is pinned at its
// closed position when pulled the other way.
func ScrollOffset(direction Direction, minX float64) float64 {
	if direction == Trailing {
		if minX > 0 {
			return -minX
		}
		return 0
	}
	if minX < 0 {
		return -minX
	}
	return 0
}
