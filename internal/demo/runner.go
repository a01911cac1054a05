package demo

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/go-drift/swipeactions/pkg/animation"
	swipeerrors "github.com/go-drift/swipeactions/pkg/errors"
	"github.com/go-drift/swipeactions/pkg/gestures"
	"github.com/go-drift/swipeactions/pkg/graphics"
	"github.com/go-drift/swipeactions/pkg/render"
	"github.com/go-drift/swipeactions/pkg/scroll"
)

// DefaultFrameInterval paces the runner at 60 frames per second.
const DefaultFrameInterval = time.Second / 60

// Surface is what a Runner drives.
type Surface interface {
	Layout(size graphics.Size)
	Render() *render.Node
	HandlePointer(event gestures.PointerEvent)
}

// Runner is a real-time frame loop. The goroutine calling Run is the UI
// thread: every surface method, timer and simulation runs there. Other
// goroutines post work with Dispatch.
type Runner struct {
	surface  Surface
	size     graphics.Size
	interval time.Duration

	dispatchMu    sync.Mutex
	dispatchQueue []func()

	frameMu sync.Mutex
	tree    *render.Node

	frames     atomic.Int64
	running    atomic.Bool
	frameHooks []func(*render.Node)
}

// NewRunner returns a runner for surface. A non-positive interval selects
// DefaultFrameInterval.
func NewRunner(surface Surface, size graphics.Size, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Runner{
		surface:  surface,
		size:     size,
		interval: interval,
	}
}

// OnFrame registers fn to receive each rendered tree. Register hooks before
// calling Run.
func (r *Runner) OnFrame(fn func(*render.Node)) {
	r.frameHooks = append(r.frameHooks, fn)
}

// Dispatch schedules a callback to run on the UI thread during the next
// frame and is safe to call from any goroutine.
func (r *Runner) Dispatch(callback func()) {
	if callback == nil {
		return
	}
	r.dispatchMu.Lock()
	r.dispatchQueue = append(r.dispatchQueue, callback)
	r.dispatchMu.Unlock()
}

// Call runs fn on the UI thread and waits for it to return.
func (r *Runner) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	r.Dispatch(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pointer queues a pointer event for the surface.
func (r *Runner) Pointer(event gestures.PointerEvent) {
	r.Dispatch(func() { r.surface.HandlePointer(event) })
}

// Frames returns the number of frames run so far.
func (r *Runner) Frames() int64 { return r.frames.Load() }

// IsRunning reports whether Run is executing.
func (r *Runner) IsRunning() bool { return r.running.Load() }

// Tree returns the most recently rendered tree. It is safe to call from any
// goroutine, but the tree must be treated as read-only.
func (r *Runner) Tree() *render.Node {
	r.frameMu.Lock()
	defer r.frameMu.Unlock()
	return r.tree
}

// NeedsFrame reports whether work is pending: queued callbacks, tickers,
// timers or scroll simulations.
func (r *Runner) NeedsFrame() bool {
	r.dispatchMu.Lock()
	pending := len(r.dispatchQueue) > 0
	r.dispatchMu.Unlock()
	return pending || animation.HasActiveTickers() || scroll.HasActiveBallistics()
}

// Run drives frames until ctx is done. It returns ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	r.running.Store(true)
	defer r.running.Store(false)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.frame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.frame()
		}
	}
}

// frame runs one frame. A panic inside any callback is reported and the
// loop carries on with the next frame.
func (r *Runner) frame() {
	defer swipeerrors.Recover("demo.Runner.frame")

	for _, fn := range r.drainDispatchQueue() {
		fn()
	}
	scroll.StepBallistics()
	animation.StepTickers()
	r.surface.Layout(r.size)
	tree := r.surface.Render()

	r.frameMu.Lock()
	r.tree = tree
	r.frameMu.Unlock()
	r.frames.Inc()

	for _, hook := range r.frameHooks {
		hook(tree)
	}
}

func (r *Runner) drainDispatchQueue() []func() {
	r.dispatchMu.Lock()
	callbacks := append([]func(){}, r.dispatchQueue...)
	r.dispatchQueue = nil
	r.dispatchMu.Unlock()
	return callbacks
}
