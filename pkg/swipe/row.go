package swipe

import (
	"math"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/go-drift/swipeactions/pkg/animation"
	"github.com/go-drift/swipeactions/pkg/gestures"
	"github.com/go-drift/swipeactions/pkg/graphics"
	"github.com/go-drift/swipeactions/pkg/render"
	"github.com/go-drift/swipeactions/pkg/scroll"
)

// Config configures a Row.
type Config struct {
	// CornerRadius rounds the clip of the whole row.
	CornerRadius float64
	// Direction selects the edge the actions are revealed from.
	Direction Direction
	// Content is built at the full row width.
	Content render.Widget
	// Actions are the buttons in the strip, in order.
	Actions ActionList
	// Key is the caller's stable identity for the row, used for list
	// diffing. Rows without a key are identified by their internal ID.
	Key string
}

// Row is a swipeable list row. A Row must be used from a single goroutine,
// the one running the frame loop; IsInteractionEnabled may be read from any
// goroutine.
type Row struct {
	id        uuid.UUID
	key       string
	radius    float64
	direction Direction
	content   render.Widget
	actions   ActionList

	size     graphics.Size
	laidOut  bool
	position *scroll.Position
	drag     gestures.DragRecognizer
	tap      gestures.TapRecognizer

	enabled  *atomic.Bool
	sequence SequenceState
	timer    *animation.Timer
	disposed bool

	listeners      map[int]func()
	nextListenerID int
}

// NewRow creates a closed, enabled row. Call Layout before rendering.
func NewRow(cfg Config) *Row {
	r := &Row{
		id:        uuid.New(),
		key:       cfg.Key,
		radius:    cfg.CornerRadius,
		direction: cfg.Direction,
		content:   cfg.Content,
		actions:   cfg.Actions,
		enabled:   atomic.NewBool(true),
	}
	r.position = scroll.NewPosition(nil, scroll.BouncingPhysics{}, r.notify)
	r.drag = gestures.DragRecognizer{
		Axis: gestures.DragHorizontal,

		OnStart: func(gestures.DragStartDetails) {
			r.position.StopBallistic()
		},
		OnUpdate: func(d gestures.DragUpdateDetails) {
			// Dragging left advances the track.
			r.position.ApplyUserOffset(-d.PrimaryDelta)
		},
		OnEnd: func(d gestures.DragEndDetails) {
			r.position.StartBallistic(-d.PrimaryVelocity)
		},
		OnCancel: func() {
			r.position.StartBallistic(0)
		},
	}
	r.tap = gestures.TapRecognizer{OnTap: r.handleTap}
	return r
}

// ID returns the identity generated for this row instance.
func (r *Row) ID() uuid.UUID { return r.id }

// Key returns the caller's key, or the internal ID when none was given.
func (r *Row) Key() string {
	if r.key != "" {
		return r.key
	}
	return r.id.String()
}

// Direction returns the swipe direction.
func (r *Row) Direction() Direction { return r.direction }

// Actions returns the row's actions.
func (r *Row) Actions() ActionList { return r.actions }

// Size returns the size from the last layout.
func (r *Row) Size() graphics.Size { return r.size }

// IsInteractionEnabled reports whether the row accepts input. It is false
// while an action sequence runs.
func (r *Row) IsInteractionEnabled() bool { return r.enabled.Load() }

// IsDisposed reports whether Dispose has been called.
func (r *Row) IsDisposed() bool { return r.disposed }

// Layout sizes the row. The content fills the row width and the scroll track
// extends past it by the width of the action strip. The first layout places
// the row closed.
func (r *Row) Layout(size graphics.Size) {
	if r.disposed {
		return
	}
	r.size = size
	r.position.SetViewportExtent(size.Width)
	r.position.SetExtents(0, r.actions.Width())
	r.position.SetSnap(scroll.ViewAligned(r.closedOffset(), r.openOffset()))
	if !r.laidOut {
		r.laidOut = true
		r.position.JumpTo(r.closedOffset())
	}
}

// ScrollPosition returns the current track offset.
func (r *Row) ScrollPosition() float64 { return r.position.Offset() }

// ContentFrame returns the content's frame in viewport coordinates, before
// the visual correction is applied.
func (r *Row) ContentFrame() graphics.Rect {
	return r.contentRect().Translate(-r.position.Offset(), 0)
}

// MinX returns the content's position relative to the viewport origin.
func (r *Row) MinX() float64 {
	return MinX(r.viewport(), r.ContentFrame())
}

// VisualOffset returns the correction applied to the track this frame.
func (r *Row) VisualOffset() float64 {
	return ScrollOffset(r.direction, r.MinX())
}

// Reveal returns how far the action strip is shown, from 0 (closed) to 1
// (fully open).
func (r *Row) Reveal() float64 {
	width := r.actions.Width()
	if width == 0 {
		return 0
	}
	reveal := math.Abs(r.position.Offset()-r.closedOffset()) / width
	return math.Min(1, reveal)
}

// IsOpen reports whether more than half of the action strip is revealed.
func (r *Row) IsOpen() bool {
	return r.Reveal() > 0.5
}

// IsAnimating reports whether the track is settling or snapping.
func (r *Row) IsAnimating() bool {
	return r.position.IsAnimating()
}

// Open animates the row fully open.
func (r *Row) Open() {
	if r.disposed {
		return
	}
	r.position.AnimateTo(r.openOffset(), animation.CategorySnap)
}

// Close animates the row back to its anchor.
func (r *Row) Close() {
	if r.disposed {
		return
	}
	r.position.AnimateTo(r.anchorOffset(), animation.CategorySnap)
}

// HandlePointer routes a pointer event in row-local coordinates. Events are
// ignored while interaction is disabled.
func (r *Row) HandlePointer(event gestures.PointerEvent) {
	if r.disposed || !r.enabled.Load() {
		return
	}
	r.drag.HandleEvent(event)
	r.tap.HandleEvent(event)
}

// OnChange registers a callback invoked whenever the row needs re-rendering.
// It returns a function that removes the callback.
func (r *Row) OnChange(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	if r.listeners == nil {
		r.listeners = make(map[int]func())
	}
	id := r.nextListenerID
	r.nextListenerID++
	r.listeners[id] = fn
	return func() {
		delete(r.listeners, id)
	}
}

// Dispose stops timers and simulations. Steps of an in-flight action
// sequence that have not run yet never run. Dispose is idempotent.
func (r *Row) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.timer.Stop()
	r.timer = nil
	r.drag.Reset()
	r.tap.Reset()
	r.position.Detach()
	r.listeners = nil
}

func (r *Row) handleTap(position graphics.Offset) {
	if r.drag.IsActive() {
		return
	}
	if fn, ok := render.FindTap(r.Render(), position); ok {
		fn()
	}
}

func (r *Row) setInteraction(enabled bool) {
	r.enabled.Store(enabled)
}

func (r *Row) notify() {
	for _, fn := range r.listeners {
		fn()
	}
}

func (r *Row) viewport() graphics.Rect {
	return graphics.RectFromLTWH(0, 0, r.size.Width, r.size.Height)
}

// contentRect is the content's frame in track coordinates. Trailing rows lay
// out [content | strip]; leading rows lay out [strip | content].
func (r *Row) contentRect() graphics.Rect {
	left := 0.0
	if r.direction == Leading {
		left = r.actions.Width()
	}
	return graphics.RectFromLTWH(left, 0, r.size.Width, r.size.Height)
}

func (r *Row) stripRect() graphics.Rect {
	left := r.size.Width
	if r.direction == Leading {
		left = 0
	}
	return graphics.RectFromLTWH(left, 0, r.actions.Width(), r.size.Height)
}

func (r *Row) closedOffset() float64 {
	if r.direction == Leading {
		return r.actions.Width()
	}
	return 0
}

func (r *Row) openOffset() float64 {
	if r.direction == Leading {
		return 0
	}
	return r.actions.Width()
}

// anchorOffset scrolls the content's anchor point onto the viewport's.
func (r *Row) anchorOffset() float64 {
	return scroll.AnchorOffset(scroll.AxisHorizontal, r.contentRect(), r.size.Width, r.direction.Anchor())
}
