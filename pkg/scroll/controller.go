package scroll

import (
	"slices"

	"github.com/go-drift/swipeactions/pkg/animation"
)

// Controller observes and drives one or more attached positions.
type Controller struct {
	// InitialScrollOffset is used by positions attached after creation.
	InitialScrollOffset float64

	positions      []*Position
	viewportExtent float64
	listeners      map[int]func()
	nextListenerID int
}

// Offset returns the current scroll offset.
func (c *Controller) Offset() float64 {
	if len(c.positions) > 0 {
		return c.positions[0].Offset()
	}
	return c.InitialScrollOffset
}

// ViewportExtent returns the current viewport extent.
func (c *Controller) ViewportExtent() float64 {
	return c.viewportExtent
}

// AddListener registers a callback for scroll changes.
func (c *Controller) AddListener(listener func()) func() {
	if listener == nil {
		return func() {}
	}
	if c.listeners == nil {
		c.listeners = make(map[int]func())
	}
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = listener
	return func() {
		delete(c.listeners, id)
	}
}

// JumpTo moves all attached positions to a new offset.
func (c *Controller) JumpTo(offset float64) {
	c.InitialScrollOffset = offset
	if len(c.positions) == 0 {
		c.notifyListeners()
		return
	}
	for _, position := range c.positions {
		position.JumpTo(offset)
	}
}

// AnimateTo animates all attached positions to offset.
func (c *Controller) AnimateTo(offset float64, category animation.Category) {
	for _, position := range c.positions {
		position.AnimateTo(offset, category)
	}
}

func (c *Controller) attach(position *Position) {
	if slices.Contains(c.positions, position) {
		return
	}
	c.positions = append(c.positions, position)
}

func (c *Controller) detach(position *Position) {
	for i, existing := range c.positions {
		if existing == position {
			c.positions = append(c.positions[:i], c.positions[i+1:]...)
			return
		}
	}
}

func (c *Controller) setViewportExtent(extent float64) {
	if extent == c.viewportExtent {
		return
	}
	c.viewportExtent = extent
	c.notifyListeners()
}

func (c *Controller) notifyListeners() {
	for _, listener := range c.listeners {
		listener()
	}
}
