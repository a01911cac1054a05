// Package swipe implements a list row that slides horizontally to reveal a
// strip of action buttons.
//
// A [Row] pairs opaque content with an [ActionList]. Dragging the row moves
// it along a horizontal scroll track; releasing snaps it open or closed.
// Tapping a button closes the row, runs the action's handler and briefly
// locks the row against further input:
//
//	row := swipe.NewRow(swipe.Config{
//	    CornerRadius: 15,
//	    Direction:    swipe.Trailing,
//	    Content:      card,
//	    Actions: swipe.Actions(
//	        swipe.NewAction(graphics.ColorBlue, "star.fill", bookmark),
//	        swipe.NewAction(graphics.ColorRed, "trash.fill", remove),
//	    ),
//	})
//
// Rows are driven by the frame loop: pointer events go to
// [Row.HandlePointer], time advances through animation.StepTickers and
// scroll.StepBallistics, and [Row.Render] produces the current render tree.
package swipe

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/go-drift/swipeactions/pkg/graphics"
)

// Font describes the glyph size used for an action icon.
type Font struct {
	Name string
	Size float64
}

// Text styles available for action icons.
var (
	FontBody   = Font{Name: "body", Size: 17}
	FontTitle3 = Font{Name: "title3", Size: 20}
	FontTitle2 = Font{Name: "title2", Size: 22}
	FontTitle  = Font{Name: "title", Size: 28}
)

var fontsByName = map[string]Font{
	FontBody.Name:   FontBody,
	FontTitle3.Name: FontTitle3,
	FontTitle2.Name: FontTitle2,
	FontTitle.Name:  FontTitle,
}

// ParseFont returns the text style with the given name. An empty name
// selects FontTitle3.
func ParseFont(name string) (Font, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FontTitle3, nil
	}
	f, ok := fontsByName[name]
	if !ok {
		return Font{}, fmt.Errorf("unknown font %q", name)
	}
	return f, nil
}

// MarshalText encodes the font as its style name.
func (f Font) MarshalText() ([]byte, error) {
	return []byte(f.Name), nil
}

// UnmarshalText decodes a style name.
func (f *Font) UnmarshalText(text []byte) error {
	parsed, err := ParseFont(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// disabledIconOpacity dims the icon of an action that cannot be tapped.
const disabledIconOpacity = 0.4

// Action describes one button revealed by swiping a row. Actions are values:
// once built they never change.
type Action struct {
	id       uuid.UUID
	tint     graphics.Color
	icon     string
	iconFont Font
	iconTint graphics.Color
	enabled  bool
	handler  func()
}

// ActionOption customizes an Action at construction.
type ActionOption func(*Action)

// WithIconFont overrides the default FontTitle3 icon size.
func WithIconFont(font Font) ActionOption {
	return func(a *Action) { a.iconFont = font }
}

// WithIconTint overrides the default white icon color.
func WithIconTint(tint graphics.Color) ActionOption {
	return func(a *Action) { a.iconTint = tint }
}

// WithEnabled sets whether the action responds to taps.
func WithEnabled(enabled bool) ActionOption {
	return func(a *Action) { a.enabled = enabled }
}

// NewAction returns an enabled action with a fresh identity. The icon is a
// symbolic glyph name resolved at render time; it is not validated here.
func NewAction(tint graphics.Color, icon string, handler func(), opts ...ActionOption) Action {
	a := Action{
		id:       uuid.New(),
		tint:     tint,
		icon:     icon,
		iconFont: FontTitle3,
		iconTint: graphics.ColorWhite,
		enabled:  true,
		handler:  handler,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// ID returns the identity assigned at construction.
func (a Action) ID() uuid.UUID { return a.id }

// Tint returns the button background color.
func (a Action) Tint() graphics.Color { return a.tint }

// Icon returns the glyph name.
func (a Action) Icon() string { return a.icon }

// IconFont returns the icon text style.
func (a Action) IconFont() Font { return a.iconFont }

// IconTint returns the icon color.
func (a Action) IconTint() graphics.Color { return a.iconTint }

// IsEnabled reports whether the action responds to taps.
func (a Action) IsEnabled() bool { return a.enabled }

// Perform invokes the handler. A nil handler does nothing.
func (a Action) Perform() {
	if a.handler != nil {
		a.handler()
	}
}
