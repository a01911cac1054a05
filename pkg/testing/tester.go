package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/swipeactions/pkg/animation"
	"github.com/go-drift/swipeactions/pkg/gestures"
	"github.com/go-drift/swipeactions/pkg/graphics"
	"github.com/go-drift/swipeactions/pkg/render"
	"github.com/go-drift/swipeactions/pkg/scroll"
)

const (
	// DefaultTestWidth is the default logical width for the test surface.
	DefaultTestWidth = 390
	// DefaultTestHeight is the default logical height for the test surface.
	DefaultTestHeight = 844
	// FrameDuration is the time between pumped frames.
	FrameDuration = 16 * time.Millisecond
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: simulations did not settle")

// Surface is what a Tester drives: a swipe row or a screen of rows.
type Surface interface {
	Layout(size graphics.Size)
	Render() *render.Node
	HandlePointer(event gestures.PointerEvent)
}

// Tester runs frames against a Surface with a fake clock.
type Tester struct {
	surface    Surface
	clock      *FakeClock
	prevClock  animation.Clock
	size       graphics.Size
	tree       *render.Node
	dispatches []func()
	pointers   map[int64]graphics.Offset
	nextID     int64
}

// NewTester creates a tester for surface and pumps the first frame.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester(surface Surface, size graphics.Size) *Tester {
	if size.Width <= 0 || size.Height <= 0 {
		size = graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight}
	}
	clk := NewFakeClock()
	t := &Tester{
		surface:  surface,
		clock:    clk,
		size:     size,
		pointers: make(map[int64]graphics.Offset),
	}
	t.prevClock = animation.SetClock(clk)
	t.Pump()
	return t
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T, surface Surface, size graphics.Size) *Tester {
	tester := NewTester(surface, size)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the animation clock.
func (t *Tester) Cleanup() {
	animation.SetClock(t.prevClock)
}

// Clock returns the fake clock for advancing time in tests.
func (t *Tester) Clock() *FakeClock {
	return t.clock
}

// Size returns the surface size.
func (t *Tester) Size() graphics.Size {
	return t.size
}

// SetSize changes the surface size and pumps a frame.
func (t *Tester) SetSize(size graphics.Size) {
	t.size = size
	t.Pump()
}

// Tree returns the render tree from the last frame.
func (t *Tester) Tree() *render.Node {
	return t.tree
}

// Pump runs a single frame: dispatches, simulations, timers, layout, render.
func (t *Tester) Pump() {
	// 1. Drain dispatch queue
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}

	// 2. Step ballistics, tickers and timers
	scroll.StepBallistics()
	animation.StepTickers()

	// 3. Layout and render
	t.surface.Layout(t.size)
	t.tree = t.surface.Render()
}

// Advance moves time forward by d in frame-sized steps, pumping each frame.
func (t *Tester) Advance(d time.Duration) {
	for d > 0 {
		step := min(d, FrameDuration)
		t.clock.Advance(step)
		d -= step
		t.Pump()
	}
}

// PumpAndSettle runs frames until nothing is animating or the timeout is
// reached. Each frame advances the fake clock by FrameDuration.
func (t *Tester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		t.Pump()
		if !t.needsWork() {
			return nil
		}
		t.clock.Advance(FrameDuration)
		elapsed += FrameDuration
	}
	return ErrSettleTimeout
}

func (t *Tester) needsWork() bool {
	return animation.HasActiveTickers() ||
		scroll.HasActiveBallistics() ||
		len(t.dispatches) > 0
}

// Dispatch queues a callback for the next frame.
func (t *Tester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// Find returns the first node in the current tree with key, or nil.
func (t *Tester) Find(key string) *render.Node {
	return render.FindByKey(t.tree, key)
}

// FindAll returns every node of kind in the current tree.
func (t *Tester) FindAll(kind string) []*render.Node {
	return render.FindByKind(t.tree, kind)
}

// Center returns the center of node in surface coordinates.
func (t *Tester) Center(node *render.Node) (graphics.Offset, bool) {
	bounds, ok := render.Bounds(t.tree, node)
	if !ok {
		return graphics.Offset{}, false
	}
	return bounds.Center(), true
}

// Snapshot captures the current render tree.
func (t *Tester) Snapshot() *render.Snapshot {
	return render.Capture(t.tree, t.size)
}
