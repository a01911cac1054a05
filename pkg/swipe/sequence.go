package swipe

import (
	"fmt"
	"time"

	"github.com/go-drift/swipeactions/pkg/animation"
)

// Action sequence timing.
const (
	// FireDelay separates the start of the close animation from the handler.
	FireDelay = 250 * time.Millisecond
	// SettleDelay separates the handler from re-enabling input.
	SettleDelay = 100 * time.Millisecond
)

// SequenceState is the step of the tap sequence a row is in.
type SequenceState int

const (
	// SequenceIdle means no action is running and input is enabled.
	SequenceIdle SequenceState = iota
	// SequenceClosing means the row is animating closed before the handler runs.
	SequenceClosing
	// SequenceFiring means the handler is running.
	SequenceFiring
	// SequenceSettling means the handler returned and input is still locked.
	SequenceSettling
)

func (s SequenceState) String() string {
	switch s {
	case SequenceIdle:
		return "idle"
	case SequenceClosing:
		return "closing"
	case SequenceFiring:
		return "firing"
	case SequenceSettling:
		return "settling"
	default:
		return fmt.Sprintf("SequenceState(%d)", int(s))
	}
}

// Tap runs the action at index as if its button had been tapped: input is
// disabled, the row snaps closed, the handler fires after FireDelay and input
// returns SettleDelay later. Tap reports false, doing nothing, when the row
// is locked or disposed, the index is out of range, or the action is
// disabled.
func (r *Row) Tap(index int) bool {
	if r.disposed || !r.enabled.Load() {
		return false
	}
	if index < 0 || index >= r.actions.Len() {
		return false
	}
	action := r.actions.At(index)
	if !action.IsEnabled() {
		return false
	}

	r.setInteraction(false)
	r.drag.Reset()
	r.tap.Reset()
	r.sequence = SequenceClosing
	r.position.AnimateTo(r.anchorOffset(), animation.CategorySnap)
	r.notify()

	r.timer = animation.After(FireDelay, func() {
		if r.disposed {
			return
		}
		r.sequence = SequenceFiring
		action.Perform()
		if r.disposed {
			return
		}
		r.sequence = SequenceSettling
		r.notify()
		r.timer = animation.After(SettleDelay, func() {
			if r.disposed {
				return
			}
			r.sequence = SequenceIdle
			r.setInteraction(true)
			r.notify()
		})
	})
	return true
}

// Sequence returns the current step of the tap sequence.
func (r *Row) Sequence() SequenceState {
	return r.sequence
}
