// Package gestures turns raw pointer events into taps and drags.
//
// Recognizers track a single pointer at a time. A drag is accepted once the
// pointer travels further than [DefaultTouchSlop] along its axis; a pointer
// that moves mostly along the other axis is rejected, so a horizontal row
// and the vertical list around it never both claim the same pointer.
package gestures

import (
	"fmt"
	"time"

	"github.com/go-drift/swipeactions/pkg/graphics"
)

// DefaultTouchSlop is the distance a pointer may travel before a tap becomes a drag.
const DefaultTouchSlop = 18.0

// PointerPhase identifies the stage of a pointer interaction.
type PointerPhase int

const (
	PointerPhaseDown PointerPhase = iota
	PointerPhaseMove
	PointerPhaseUp
	PointerPhaseCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("PointerPhase(%d)", int(p))
	}
}

// PointerEvent is a single touch or mouse sample in local coordinates.
type PointerEvent struct {
	PointerID int64
	Position  graphics.Offset
	Delta     graphics.Offset
	Phase     PointerPhase
	// Time is the sample timestamp. Zero means "now" on the animation clock.
	Time time.Time
}

// Translate returns a copy of the event with its position shifted by -origin,
// converting from a parent's coordinate space into a child's.
func (e PointerEvent) Translate(origin graphics.Offset) PointerEvent {
	e.Position = e.Position.Sub(origin)
	return e
}
