// Package scroll implements the scroll substrate underneath the swipe row:
// an offset with extents, drag physics, inertial and spring settling, and
// view-aligned snapping.
//
// # Scroll Physics
//
// The Physics of a [Position] controls how drags behave at the edges:
//   - [ClampingPhysics]: stops at edges, no overscroll
//   - [BouncingPhysics]: rubber-band resistance past the edges
//
// # Frame Loop
//
// Simulations started by [Position.StartBallistic] and [Position.AnimateTo]
// advance when the frame loop calls [StepBallistics].
package scroll

import (
	"math"

	"github.com/go-drift/swipeactions/pkg/animation"
	"github.com/go-drift/swipeactions/pkg/graphics"
)

// Axis is the direction along which a position scrolls.
type Axis int

const (
	// AxisVertical scrolls along Y. It is the zero value.
	AxisVertical Axis = iota
	// AxisHorizontal scrolls along X.
	AxisHorizontal
)

// SnapFunc returns the offset a released drag should settle at, given the
// current offset and the scroll velocity (units per second).
type SnapFunc func(offset, velocity float64) float64

// Position stores the current scroll offset and extents.
type Position struct {
	offset     float64
	min        float64
	max        float64
	viewport   float64
	physics    Physics
	snap       SnapFunc
	onUpdate   func()
	controller *Controller
	ballistic  *ballisticState
}

// NewPosition creates a new scroll position.
func NewPosition(controller *Controller, physics Physics, onUpdate func()) *Position {
	if physics == nil {
		physics = ClampingPhysics{}
	}
	position := &Position{
		physics:    physics,
		onUpdate:   onUpdate,
		controller: controller,
	}
	if controller != nil {
		position.offset = controller.InitialScrollOffset
		controller.attach(position)
	}
	return position
}

// Offset returns the current scroll offset.
func (p *Position) Offset() float64 {
	return p.offset
}

// MinExtent returns the smallest in-range offset.
func (p *Position) MinExtent() float64 { return p.min }

// MaxExtent returns the largest in-range offset.
func (p *Position) MaxExtent() float64 { return p.max }

// SetOffset updates the scroll offset.
func (p *Position) SetOffset(value float64) {
	clamped := p.clampOffset(value, isBouncing(p.physics))
	if clamped == p.offset {
		return
	}
	p.offset = clamped
	p.notify()
}

// SetExtents updates the min/max scroll extents.
func (p *Position) SetExtents(min, max float64) {
	if max < min {
		max = min
	}
	p.min = min
	p.max = max
	if p.ballistic == nil {
		p.SetOffset(p.offset)
	}
}

// SetViewportExtent records the visible extent along the scroll axis.
func (p *Position) SetViewportExtent(extent float64) {
	p.viewport = extent
	if p.controller != nil {
		p.controller.setViewportExtent(extent)
	}
}

// SetSnap installs the snapping policy used when a drag is released.
// Pass nil for free inertial scrolling.
func (p *Position) SetSnap(snap SnapFunc) {
	p.snap = snap
}

// JumpTo moves to offset immediately, cancelling any simulation.
func (p *Position) JumpTo(offset float64) {
	p.StopBallistic()
	p.SetOffset(offset)
}

// ApplyUserOffset applies a drag delta with physics.
func (p *Position) ApplyUserOffset(delta float64) {
	p.StopBallistic()
	adjusted := p.physics.ApplyPhysicsToUserOffset(p, delta)
	proposed := p.offset + adjusted
	overscroll := p.physics.ApplyBoundaryConditions(p, proposed)
	proposed -= overscroll
	p.SetOffset(proposed)
}

// StartBallistic begins settling with the provided velocity. With a snap
// policy the position springs to the chosen target; otherwise it coasts and,
// when overscrolled, springs back inside the extents.
func (p *Position) StartBallistic(velocity float64) {
	p.StopBallistic()
	velocity = p.normalizeBallisticVelocity(velocity)
	if p.snap != nil {
		target := clamp(p.snap(p.offset, velocity), p.min, p.max)
		if target == p.offset && math.Abs(velocity) < minFlingVelocity {
			return
		}
		p.startBallistic(newSpringState(p, animation.SnappySpring(), velocity, target))
		return
	}
	if isOverscrolled(p) {
		p.startBallistic(newSpringState(p, animation.IOSSpring(), velocity, clamp(p.offset, p.min, p.max)))
		return
	}
	if math.Abs(velocity) < minFlingVelocity {
		return
	}
	p.startBallistic(newFlingState(p, velocity))
}

// AnimateTo moves to target with the given motion category: a snappy spring
// for CategorySnap or an eased tween for CategoryEase.
func (p *Position) AnimateTo(target float64, category animation.Category) {
	p.StopBallistic()
	switch category {
	case animation.CategoryEase:
		p.startBallistic(newEaseState(p, target, defaultEaseDuration, animation.Ease))
	default:
		p.startBallistic(newSpringState(p, animation.SnappySpring(), 0, target))
	}
}

// IsAnimating reports whether a simulation is driving the offset.
func (p *Position) IsAnimating() bool {
	return p.ballistic != nil
}

func (p *Position) startBallistic(state *ballisticState) {
	p.ballistic = state
	registerBallistic(p)
	p.notify()
}

const minFlingVelocity = 5.0

func (p *Position) normalizeBallisticVelocity(velocity float64) float64 {
	if math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		return 0
	}
	velocity *= 0.9
	maxAbs := clamp(p.viewportExtent()*5.4, 1080, 4500)
	return clamp(velocity, -maxAbs, maxAbs)
}

// StopBallistic halts any ongoing simulation.
func (p *Position) StopBallistic() {
	if p.ballistic != nil {
		unregisterBallistic(p)
		p.ballistic = nil
	}
}

// Detach stops simulations and detaches from the controller.
func (p *Position) Detach() {
	p.StopBallistic()
	if p.controller != nil {
		p.controller.detach(p)
		p.controller = nil
	}
	p.onUpdate = nil
}

func (p *Position) notify() {
	if p.onUpdate != nil {
		p.onUpdate()
	}
	if p.controller != nil {
		p.controller.notifyListeners()
	}
}

func (p *Position) clampOffset(value float64, allowOverscroll bool) float64 {
	if !allowOverscroll {
		return clamp(value, p.min, p.max)
	}
	limit := clamp(p.viewportExtent()*0.35, 80, 220)
	return clamp(value, p.min-limit, p.max+limit)
}

func (p *Position) viewportExtent() float64 {
	if p.viewport > 0 {
		return p.viewport
	}
	if p.controller != nil && p.controller.viewportExtent > 0 {
		return p.controller.viewportExtent
	}
	return 600
}

func isOverscrolled(position *Position) bool {
	return position.offset < position.min || position.offset > position.max
}

// AnchorOffset returns the scroll offset that aligns item's anchor point with
// the same anchor point of a viewport of the given extent. Item coordinates
// are in scroll-content space.
func AnchorOffset(axis Axis, item graphics.Rect, viewportExtent float64, anchor graphics.Alignment) float64 {
	if axis == AxisHorizontal {
		return item.Left + (item.Width()-viewportExtent)*(anchor.X+1)/2
	}
	return item.Top + (item.Height()-viewportExtent)*(anchor.Y+1)/2
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
