// Package transition implements the masked reveal used when a row enters or
// leaves a list.
//
// A rectangular mask the size of the row slides vertically: at [Identity]
// it sits over the row and everything is visible; in the other phases it is
// shifted up by the row's height and nothing is. Whether a row is appearing
// or disappearing is decided by whoever diffs the list, not by the row.
package transition

import (
	"fmt"
	"time"

	"github.com/go-drift/swipeactions/pkg/animation"
	"github.com/go-drift/swipeactions/pkg/graphics"
	"github.com/go-drift/swipeactions/pkg/render"
)

// DefaultDuration is the length of the reveal animation.
const DefaultDuration = 350 * time.Millisecond

// Phase is the transition state of a row.
type Phase int

const (
	// Identity is the resting, fully visible state.
	Identity Phase = iota
	// WillAppear is the state a row animates from on insertion.
	WillAppear
	// DidDisappear is the state a row animates to on removal.
	DidDisappear
)

func (p Phase) String() string {
	switch p {
	case Identity:
		return "identity"
	case WillAppear:
		return "willAppear"
	case DidDisappear:
		return "didDisappear"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// MaskOffset returns the vertical mask offset for a phase: zero at Identity,
// minus the row height otherwise.
func MaskOffset(phase Phase, height float64) float64 {
	if phase == Identity {
		return 0
	}
	return -height
}

// Reveal animates a row's mask between its phases.
type Reveal struct {
	controller  *animation.AnimationController
	phase       Phase
	onDone      func()
	unsubscribe func()
}

// NewReveal returns a reveal resting at Identity. A zero duration selects
// DefaultDuration.
func NewReveal(duration time.Duration) *Reveal {
	if duration <= 0 {
		duration = DefaultDuration
	}
	c := animation.NewAnimationController(duration)
	c.Curve = animation.EaseInOut
	c.Value = 1
	r := &Reveal{controller: c, phase: Identity}
	r.unsubscribe = c.AddStatusListener(r.statusChanged)
	return r
}

// Phase returns the current phase. A row mid-animation reports the phase it
// is leaving or heading toward.
func (r *Reveal) Phase() Phase {
	return r.phase
}

// Progress returns how much of the row is visible, from 0 to 1.
func (r *Reveal) Progress() float64 {
	return r.controller.Value
}

// Insert starts the row hidden and animates it to Identity.
func (r *Reveal) Insert() {
	r.onDone = nil
	r.phase = WillAppear
	r.controller.Value = 0
	r.controller.Forward()
}

// Remove animates the row to DidDisappear and calls onDone once the mask has
// fully covered it.
func (r *Reveal) Remove(onDone func()) {
	r.onDone = onDone
	r.phase = DidDisappear
	r.controller.Reverse()
}

// MaskOffset returns the current vertical mask offset for a row of height.
func (r *Reveal) MaskOffset(height float64) float64 {
	return animation.TweenFloat64(-height, 0).At(r.controller)
}

// MaskRect returns the mask in the row's local coordinates.
func (r *Reveal) MaskRect(size graphics.Size) graphics.Rect {
	return graphics.RectFromLTWH(0, r.MaskOffset(size.Height), size.Width, size.Height)
}

// Apply masks node with the current reveal and returns it. Nodes at rest in
// Identity are left unmasked.
func (r *Reveal) Apply(node *render.Node, size graphics.Size) *render.Node {
	if node == nil {
		return nil
	}
	if r.phase == Identity && !r.controller.IsAnimating() {
		return node
	}
	mask := r.MaskRect(size)
	node.Mask = &mask
	return node
}

// IsAnimating reports whether the mask is moving.
func (r *Reveal) IsAnimating() bool {
	return r.controller.IsAnimating()
}

// Dispose stops the animation. A pending onDone is dropped.
func (r *Reveal) Dispose() {
	r.onDone = nil
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
	r.controller.Dispose()
}

func (r *Reveal) statusChanged(status animation.AnimationStatus) {
	switch status {
	case animation.AnimationCompleted:
		r.phase = Identity
	case animation.AnimationDismissed:
		r.phase = DidDisappear
		if done := r.onDone; done != nil {
			r.onDone = nil
			done()
		}
	}
}
