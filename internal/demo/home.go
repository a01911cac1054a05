// Package demo is the sample screen: a vertical list of colored cards, each
// wrapped in a swipe row with bookmark and delete actions.
package demo

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/go-drift/swipeactions/internal/config"
	"github.com/go-drift/swipeactions/pkg/animation"
	"github.com/go-drift/swipeactions/pkg/gestures"
	"github.com/go-drift/swipeactions/pkg/graphics"
	"github.com/go-drift/swipeactions/pkg/render"
	"github.com/go-drift/swipeactions/pkg/scroll"
	"github.com/go-drift/swipeactions/pkg/swipe"
	"github.com/go-drift/swipeactions/pkg/transition"
)

// entry is one card and the row presenting it. Entries outlive renders, so a
// row keeps its scroll position and sequence state from frame to frame.
type entry struct {
	card     Card
	row      *swipe.Row
	reveal   *transition.Reveal
	removing bool
}

// Home is the card list. It implements the tester's Surface and is driven
// by a Runner in the CLI. All methods must be called from the frame loop.
type Home struct {
	cfg      config.Config
	logger   zerolog.Logger
	messages *Messages

	size       graphics.Size
	entries    []*entry
	controller *scroll.Controller
	position   *scroll.Position
	drag       gestures.DragRecognizer

	// captured maps a pointer to the row it went down on.
	captured  map[int64]*entry
	bookmarks []string
}

// Option customizes a Home.
type Option func(*Home)

// WithLogger sets the logger used for action events.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Home) { h.logger = logger }
}

// WithMessages sets the localized strings used in log events.
func WithMessages(m *Messages) Option {
	return func(h *Home) { h.messages = m }
}

// NewHome builds the list described by cfg.
func NewHome(cfg config.Config, opts ...Option) (*Home, error) {
	h := &Home{
		cfg:        cfg,
		logger:     zerolog.Nop(),
		controller: &scroll.Controller{},
		captured:   make(map[int64]*entry),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.messages == nil {
		bundle, err := NewBundle()
		if err != nil {
			return nil, fmt.Errorf("failed to load messages: %w", err)
		}
		h.messages = NewMessages(bundle, cfg.Language())
	}

	h.position = scroll.NewPosition(h.controller, scroll.ClampingPhysics{}, nil)
	h.drag = gestures.DragRecognizer{
		Axis: gestures.DragVertical,

		OnStart: func(gestures.DragStartDetails) {
			h.position.StopBallistic()
		},
		OnUpdate: func(d gestures.DragUpdateDetails) {
			h.position.ApplyUserOffset(-d.PrimaryDelta)
		},
		OnEnd: func(d gestures.DragEndDetails) {
			h.position.StartBallistic(-d.PrimaryVelocity)
		},
		OnCancel: func() {
			h.position.StartBallistic(0)
		},
	}

	for _, c := range cfg.Cards {
		h.entries = append(h.entries, h.newEntry(Card{Name: c.Name, Color: c.Color}))
	}
	return h, nil
}

// Cards returns the cards currently listed, including any still animating
// out.
func (h *Home) Cards() []Card {
	cards := make([]Card, 0, len(h.entries))
	for _, e := range h.entries {
		cards = append(cards, e.card)
	}
	return cards
}

// Row returns the row presenting the named card.
func (h *Home) Row(name string) (*swipe.Row, bool) {
	if e := h.find(name); e != nil {
		return e.row, true
	}
	return nil, false
}

// Bookmarks returns the names of bookmarked cards in the order they were
// bookmarked.
func (h *Home) Bookmarks() []string {
	return slices.Clone(h.bookmarks)
}

// Messages returns the localized strings in use.
func (h *Home) Messages() *Messages { return h.messages }

// ScrollOffset returns the list's vertical scroll offset.
func (h *Home) ScrollOffset() float64 { return h.controller.Offset() }

// Add appends a card and animates it in. Adding a name already in the list
// is an error.
func (h *Home) Add(card Card) error {
	if h.find(card.Name) != nil {
		return fmt.Errorf("card %q already listed", card.Name)
	}
	e := h.newEntry(card)
	e.reveal.Insert()
	h.entries = append(h.entries, e)
	return nil
}

// Remove animates the named card out and disposes its row once the mask
// has closed. Removing a card twice is a no-op.
func (h *Home) Remove(name string) {
	e := h.find(name)
	if e == nil || e.removing {
		return
	}
	e.removing = true
	h.logger.Info().Str("card", name).Msg(h.messages.Deleted())
	e.reveal.Remove(func() { h.drop(e) })
}

// ScrollTo animates the list so the named card's top edge meets the
// viewport's.
func (h *Home) ScrollTo(name string) bool {
	for i, e := range h.entries {
		if e.card.Name == name {
			item := graphics.RectFromLTWH(0, h.itemTop(i), h.rowWidth(), h.cfg.Row.Height)
			target := scroll.AnchorOffset(scroll.AxisVertical, item, h.size.Height, graphics.AlignmentTopLeft)
			h.controller.AnimateTo(target, animation.CategoryEase)
			return true
		}
	}
	return false
}

// CellCenter returns the center of the named card's cell on screen.
func (h *Home) CellCenter(name string) (graphics.Offset, bool) {
	for i, e := range h.entries {
		if e.card.Name == name {
			return h.cellFrame(i).Center(), true
		}
	}
	return graphics.Offset{}, false
}

// ActionCenter returns the on-screen center of the index'th action button
// of the named card, wherever the row currently has it.
func (h *Home) ActionCenter(name string, index int) (graphics.Offset, bool) {
	e := h.find(name)
	if e == nil || index < 0 || index >= e.row.Actions().Len() {
		return graphics.Offset{}, false
	}
	tree := h.Render()
	button := render.FindByKey(tree, e.row.Actions().At(index).ID().String())
	if button == nil {
		return graphics.Offset{}, false
	}
	bounds, ok := render.Bounds(tree, button)
	if !ok {
		return graphics.Offset{}, false
	}
	return bounds.Center(), true
}

// Layout sizes the list and every row.
func (h *Home) Layout(size graphics.Size) {
	h.size = size
	for _, e := range h.entries {
		e.row.Layout(graphics.Size{Width: h.rowWidth(), Height: h.cfg.Row.Height})
	}
	h.position.SetViewportExtent(size.Height)
	h.position.SetExtents(0, max(0, h.contentHeight()-size.Height))
}

// Render builds the screen: the scrolled list with one cell per card.
func (h *Home) Render() *render.Node {
	root := &render.Node{
		Kind:  "home",
		Frame: graphics.RectFromLTWH(0, 0, h.size.Width, h.size.Height),
		Fill:  graphics.ColorWhite,
		Props: map[string]string{"cards": h.messages.CardCount(len(h.entries))},
	}
	list := &render.Node{
		Kind:  "list",
		Frame: graphics.RectFromLTWH(0, 0, h.size.Width, h.size.Height),
		Clip:  true,
	}
	rowSize := graphics.Size{Width: h.rowWidth(), Height: h.cfg.Row.Height}
	for i, e := range h.entries {
		cell := &render.Node{
			Kind:          "cell",
			Key:           "cell/" + e.card.Name,
			Frame:         h.cellFrame(i),
			IgnorePointer: e.removing,
		}
		cell.Add(e.row.Render())
		list.Add(e.reveal.Apply(cell, rowSize))
	}
	return root.Add(list)
}

// HandlePointer routes a pointer to the row under it and to the list's
// vertical drag. A pointer stays with the row it went down on.
func (h *Home) HandlePointer(event gestures.PointerEvent) {
	if event.Phase == gestures.PointerPhaseDown {
		if i := h.indexAt(event.Position); i >= 0 && !h.entries[i].removing {
			h.captured[event.PointerID] = h.entries[i]
		}
	}
	if e, ok := h.captured[event.PointerID]; ok {
		if i := h.index(e); i >= 0 && !e.removing {
			origin := h.cellFrame(i)
			e.row.HandlePointer(event.Translate(graphics.Offset{X: origin.Left, Y: origin.Top}))
		}
	}
	h.drag.HandleEvent(event)

	switch event.Phase {
	case gestures.PointerPhaseUp, gestures.PointerPhaseCancel:
		delete(h.captured, event.PointerID)
	}
}

// Dispose releases every row and stops the list's simulations.
func (h *Home) Dispose() {
	for _, e := range h.entries {
		e.reveal.Dispose()
		e.row.Dispose()
	}
	h.entries = nil
	h.position.Detach()
}

func (h *Home) newEntry(card Card) *entry {
	e := &entry{card: card, reveal: transition.NewReveal(0)}
	e.row = swipe.NewRow(swipe.Config{
		CornerRadius: h.cfg.Row.CornerRadius,
		Direction:    h.cfg.Row.Direction,
		Content:      card.Content(),
		Actions:      h.actionsFor(card),
		Key:          card.Name,
	})
	return e
}

func (h *Home) actionsFor(card Card) swipe.ActionList {
	list := make([]swipe.Action, 0, len(h.cfg.Actions))
	for _, a := range h.cfg.Actions {
		var handler func()
		switch a.Kind {
		case config.ActionBookmark:
			handler = func() { h.bookmark(card.Name) }
		case config.ActionDelete:
			handler = func() { h.Remove(card.Name) }
		}
		list = append(list, swipe.NewAction(a.Tint, a.Icon, handler,
			swipe.WithIconFont(a.IconFont),
			swipe.WithEnabled(!a.Disabled),
		))
	}
	return swipe.Actions(list...)
}

func (h *Home) bookmark(name string) {
	h.bookmarks = append(h.bookmarks, name)
	h.logger.Info().Str("card", name).Msg(h.messages.Bookmarked())
}

func (h *Home) drop(e *entry) {
	i := h.index(e)
	if i < 0 {
		return
	}
	h.entries = slices.Delete(h.entries, i, i+1)
	for id, captured := range h.captured {
		if captured == e {
			delete(h.captured, id)
		}
	}
	e.reveal.Dispose()
	e.row.Dispose()
	h.position.SetExtents(0, max(0, h.contentHeight()-h.size.Height))
}

func (h *Home) find(name string) *entry {
	for _, e := range h.entries {
		if e.card.Name == name {
			return e
		}
	}
	return nil
}

func (h *Home) index(e *entry) int {
	return slices.Index(h.entries, e)
}

// indexAt returns the entry whose cell contains point, or -1.
func (h *Home) indexAt(point graphics.Offset) int {
	for i := range h.entries {
		if h.cellFrame(i).Contains(point) {
			return i
		}
	}
	return -1
}

func (h *Home) rowWidth() float64 {
	return max(0, h.size.Width-2*h.cfg.List.Padding)
}

// itemTop is the top of the i'th cell in list coordinates.
func (h *Home) itemTop(i int) float64 {
	return h.cfg.List.Padding + float64(i)*(h.cfg.Row.Height+h.cfg.List.Spacing)
}

func (h *Home) cellFrame(i int) graphics.Rect {
	return graphics.RectFromLTWH(h.cfg.List.Padding, h.itemTop(i)-h.position.Offset(), h.rowWidth(), h.cfg.Row.Height)
}

func (h *Home) contentHeight() float64 {
	n := len(h.entries)
	if n == 0 {
		return 2 * h.cfg.List.Padding
	}
	return 2*h.cfg.List.Padding + float64(n)*h.cfg.Row.Height + float64(n-1)*h.cfg.List.Spacing
}
