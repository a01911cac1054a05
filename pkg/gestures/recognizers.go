package gestures

import (
	"math"
	"time"

	"github.com/go-drift/swipeactions/pkg/animation"
	"github.com/go-drift/swipeactions/pkg/graphics"
)

// DragStartDetails describes the start of an accepted drag.
type DragStartDetails struct {
	Position graphics.Offset
}

// DragUpdateDetails describes incremental drag movement.
type DragUpdateDetails struct {
	Position     graphics.Offset
	PrimaryDelta float64
}

// DragEndDetails describes the end of a drag.
type DragEndDetails struct {
	PrimaryVelocity float64
}

type dragState int

const (
	dragIdle dragState = iota
	dragPossible
	dragAccepted
	dragRejected
)

// DragAxis is the axis a DragRecognizer tracks.
type DragAxis int

const (
	// DragHorizontal tracks X. It is the zero value.
	DragHorizontal DragAxis = iota
	// DragVertical tracks Y.
	DragVertical
)

// DragRecognizer reports drags of a single pointer along one axis. A pointer
// that travels further along the other axis first is rejected.
type DragRecognizer struct {
	Axis DragAxis

	OnStart  func(DragStartDetails)
	OnUpdate func(DragUpdateDetails)
	OnEnd    func(DragEndDetails)
	OnCancel func()

	// Slop overrides DefaultTouchSlop when positive.
	Slop float64

	state    dragState
	pointer  int64
	origin   graphics.Offset
	last     graphics.Offset
	velocity VelocityTracker
}

// IsActive reports whether a drag has been accepted and not yet ended.
func (r *DragRecognizer) IsActive() bool {
	return r.state == dragAccepted
}

// HandleEvent feeds a pointer event to the recognizer.
func (r *DragRecognizer) HandleEvent(event PointerEvent) {
	now := eventTime(event)
	switch event.Phase {
	case PointerPhaseDown:
		if r.state == dragAccepted {
			return
		}
		r.state = dragPossible
		r.pointer = event.PointerID
		r.origin = event.Position
		r.last = event.Position
		r.velocity.Reset()
		r.velocity.AddSample(now, event.Position)
	case PointerPhaseMove:
		if event.PointerID != r.pointer {
			return
		}
		r.velocity.AddSample(now, event.Position)
		switch r.state {
		case dragPossible:
			primary := r.primary(event.Position) - r.primary(r.origin)
			cross := r.cross(event.Position) - r.cross(r.origin)
			if math.Abs(cross) > r.slop() && math.Abs(cross) > math.Abs(primary) {
				r.state = dragRejected
				return
			}
			if math.Abs(primary) <= r.slop() {
				return
			}
			r.state = dragAccepted
			if r.OnStart != nil {
				r.OnStart(DragStartDetails{Position: r.origin})
			}
			r.update(event.Position, primary)
		case dragAccepted:
			r.update(event.Position, r.primary(event.Position)-r.primary(r.last))
		}
	case PointerPhaseUp:
		if event.PointerID != r.pointer {
			return
		}
		if r.state == dragAccepted {
			if event.Position != r.last {
				r.velocity.AddSample(now, event.Position)
				r.update(event.Position, r.primary(event.Position)-r.primary(r.last))
			}
			if r.OnEnd != nil {
				r.OnEnd(DragEndDetails{PrimaryVelocity: r.primary(r.velocity.Velocity())})
			}
		}
		r.state = dragIdle
	case PointerPhaseCancel:
		if event.PointerID != r.pointer {
			return
		}
		if r.state == dragAccepted && r.OnCancel != nil {
			r.OnCancel()
		}
		r.state = dragIdle
	}
}

// Reset abandons any in-progress drag without invoking callbacks.
func (r *DragRecognizer) Reset() {
	r.state = dragIdle
	r.velocity.Reset()
}

func (r *DragRecognizer) update(position graphics.Offset, delta float64) {
	r.last = position
	if r.OnUpdate != nil {
		r.OnUpdate(DragUpdateDetails{Position: position, PrimaryDelta: delta})
	}
}

func (r *DragRecognizer) primary(o graphics.Offset) float64 {
	if r.Axis == DragVertical {
		return o.Y
	}
	return o.X
}

func (r *DragRecognizer) cross(o graphics.Offset) float64 {
	if r.Axis == DragVertical {
		return o.X
	}
	return o.Y
}

func (r *DragRecognizer) slop() float64 {
	if r.Slop > 0 {
		return r.Slop
	}
	return DefaultTouchSlop
}

// TapRecognizer reports a tap when a pointer goes down and up without
// travelling further than the touch slop.
type TapRecognizer struct {
	// OnTap receives the position of the pointer-down event.
	OnTap func(position graphics.Offset)

	tracking bool
	pointer  int64
	origin   graphics.Offset
}

// HandleEvent feeds a pointer event to the recognizer.
func (r *TapRecognizer) HandleEvent(event PointerEvent) {
	switch event.Phase {
	case PointerPhaseDown:
		r.tracking = true
		r.pointer = event.PointerID
		r.origin = event.Position
	case PointerPhaseMove:
		if !r.tracking || event.PointerID != r.pointer {
			return
		}
		if distance(event.Position, r.origin) > DefaultTouchSlop {
			r.tracking = false
		}
	case PointerPhaseUp:
		if !r.tracking || event.PointerID != r.pointer {
			return
		}
		r.tracking = false
		if distance(event.Position, r.origin) > DefaultTouchSlop {
			return
		}
		if r.OnTap != nil {
			r.OnTap(r.origin)
		}
	case PointerPhaseCancel:
		r.tracking = false
	}
}

// Reset abandons any tracked pointer.
func (r *TapRecognizer) Reset() {
	r.tracking = false
}

func distance(a, b graphics.Offset) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func eventTime(event PointerEvent) time.Time {
	if event.Time.IsZero() {
		return animation.Now()
	}
	return event.Time
}
