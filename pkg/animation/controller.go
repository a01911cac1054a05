package animation

import (
	"fmt"
	"time"
)

// AnimationStatus is where a controller sits between 0 and 1.
//
//	           Forward()
//	Dismissed ──────────► Completed
//	    ▲                     │
//	    └──────── Reverse() ──┘
//
// While moving the status is AnimationForward or AnimationReverse.
type AnimationStatus int

const (
	// AnimationDismissed means the controller is stopped at 0.
	AnimationDismissed AnimationStatus = iota
	// AnimationForward means the controller is moving toward 1.
	AnimationForward
	// AnimationReverse means the controller is moving toward 0.
	AnimationReverse
	// AnimationCompleted means the controller is stopped at 1.
	AnimationCompleted
)

func (s AnimationStatus) String() string {
	switch s {
	case AnimationDismissed:
		return "dismissed"
	case AnimationForward:
		return "forward"
	case AnimationReverse:
		return "reverse"
	case AnimationCompleted:
		return "completed"
	default:
		return fmt.Sprintf("AnimationStatus(%d)", int(s))
	}
}

// AnimationController moves Value between 0 and 1 over Duration, shaped by
// Curve. Listeners run in registration order on the frame that changes the
// value, so a transition can react in the same frame it finishes.
//
// Dispose releases the ticker; a disposed controller ignores further
// Forward and Reverse calls.
type AnimationController struct {
	// Value is the current progress in [0, 1].
	Value float64

	// Duration is the time a full 0→1 run takes. Partial runs take the
	// same time regardless of distance.
	Duration time.Duration

	// Curve eases linear progress. Nil means linear.
	Curve func(float64) float64

	status   AnimationStatus
	ticker   *Ticker
	from, to float64
	onValue  registry[func()]
	onStatus registry[func(AnimationStatus)]
	disposed bool
}

// NewAnimationController returns a dismissed controller.
func NewAnimationController(duration time.Duration) *AnimationController {
	return &AnimationController{Duration: duration, Curve: LinearCurve}
}

// Forward runs the controller to 1.
func (c *AnimationController) Forward() { c.run(1, AnimationForward) }

// Reverse runs the controller to 0.
func (c *AnimationController) Reverse() { c.run(0, AnimationReverse) }

func (c *AnimationController) run(to float64, direction AnimationStatus) {
	if c.disposed {
		return
	}
	c.Stop()
	c.from, c.to = c.Value, to
	c.setStatus(direction)
	c.ticker = NewTicker(c.tick)
	c.ticker.Start()
}

func (c *AnimationController) tick(elapsed time.Duration) {
	t := 1.0
	if c.Duration > 0 {
		t = min(float64(elapsed)/float64(c.Duration), 1)
	}
	eased := t
	if c.Curve != nil {
		eased = c.Curve(t)
	}
	c.Value = LerpFloat64(c.from, c.to, eased)
	c.onValue.each(func(fn func()) { fn() })
	if t < 1 {
		return
	}
	c.Stop()
	switch {
	case c.Value <= 0:
		c.setStatus(AnimationDismissed)
	case c.Value >= 1:
		c.setStatus(AnimationCompleted)
	}
}

// Stop freezes the controller at its current value. The status is left as
// it was.
func (c *AnimationController) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// Status returns the current status.
func (c *AnimationController) Status() AnimationStatus { return c.status }

// IsAnimating reports whether a run is in progress.
func (c *AnimationController) IsAnimating() bool {
	return c.ticker != nil && c.ticker.IsActive()
}

// IsCompleted reports whether the controller stopped at 1.
func (c *AnimationController) IsCompleted() bool { return c.status == AnimationCompleted }

// AddListener registers fn to run after every value change and returns a
// function that removes it.
func (c *AnimationController) AddListener(fn func()) func() {
	return c.onValue.add(fn)
}

// AddStatusListener registers fn to run on every status change and returns a
// function that removes it.
func (c *AnimationController) AddStatusListener(fn func(AnimationStatus)) func() {
	return c.onStatus.add(fn)
}

func (c *AnimationController) setStatus(status AnimationStatus) {
	if c.status == status {
		return
	}
	c.status = status
	c.onStatus.each(func(fn func(AnimationStatus)) { fn(status) })
}

// Dispose stops the controller and drops its listeners.
func (c *AnimationController) Dispose() {
	c.Stop()
	c.disposed = true
	c.onValue = registry[func()]{}
	c.onStatus = registry[func(AnimationStatus)]{}
}

// registry keeps callbacks in registration order. Removal during iteration
// takes effect on the next call to each.
type registry[F any] struct {
	next    int
	entries []registryEntry[F]
}

type registryEntry[F any] struct {
	id int
	fn F
}

func (r *registry[F]) add(fn F) func() {
	id := r.next
	r.next++
	r.entries = append(r.entries, registryEntry[F]{id: id, fn: fn})
	return func() {
		for i, e := range r.entries {
			if e.id == id {
				r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
				return
			}
		}
	}
}

func (r *registry[F]) each(call func(F)) {
	for _, e := range r.entries {
		call(e.fn)
	}
}
