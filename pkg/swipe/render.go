package swipe

import (
	"strconv"

	"github.com/go-drift/swipeactions/pkg/graphics"
	"github.com/go-drift/swipeactions/pkg/render"
)

// Render builds the row's render tree for its current state:
//
//	row    clipped to the corner radius, filled with the last action's tint
//	track  shifted by the scroll position plus the visual correction
//	  content  filled with the first action's tint, then the content widget
//	  strip    one 100-wide button per action, in order
//
// The whole row ignores pointers while interaction is disabled.
func (r *Row) Render() *render.Node {
	size := r.size
	enabled := r.enabled.Load() && !r.disposed

	row := &render.Node{
		Kind:          "row",
		Key:           r.Key(),
		Frame:         r.viewport(),
		CornerRadius:  r.radius,
		Clip:          true,
		IgnorePointer: !enabled,
		Props: map[string]string{
			"direction": r.direction.String(),
			"sequence":  r.sequence.String(),
		},
	}
	if last, ok := r.actions.Last(); ok {
		row.Fill = last.Tint()
	}

	trackWidth := size.Width + r.actions.Width()
	track := &render.Node{
		Kind:  "track",
		Frame: graphics.RectFromLTWH(-r.position.Offset()+r.VisualOffset(), 0, trackWidth, size.Height),
	}

	content := &render.Node{
		Kind:  "content",
		Frame: r.contentRect(),
	}
	if first, ok := r.actions.First(); ok {
		content.Fill = first.Tint()
	}
	if r.content != nil {
		content.Add(r.content.Build(size))
	}

	strip := r.renderStrip(enabled)
	if r.direction == Leading {
		track.Add(strip, content)
	} else {
		track.Add(content, strip)
	}
	return row.Add(track)
}

func (r *Row) renderStrip(enabled bool) *render.Node {
	stripRect := r.stripRect()
	strip := &render.Node{
		Kind:  "strip",
		Frame: stripRect,
	}
	buttons := graphics.Size{Width: r.actions.Width(), Height: r.size.Height}
	inset := r.direction.Alignment().Inset(stripRect.Size(), buttons)

	for i, action := range r.actions.All() {
		index := i
		button := &render.Node{
			Kind:  "button",
			Key:   action.ID().String(),
			Frame: graphics.RectFromLTWH(inset.X+float64(i)*ButtonWidth, inset.Y, ButtonWidth, r.size.Height),
			Fill:  action.Tint(),
			Props: map[string]string{"index": strconv.Itoa(i)},
		}
		if enabled && action.IsEnabled() {
			button.OnTap = func() { r.Tap(index) }
		}
		iconTint := action.IconTint()
		if !action.IsEnabled() {
			iconTint = iconTint.WithAlpha(iconTint.Alpha() * disabledIconOpacity)
		}
		button.Add(&render.Node{
			Kind:     render.KindIcon,
			Frame:    button.Local(),
			Icon:     action.Icon(),
			IconTint: iconTint,
			IconSize: action.IconFont().Size,
			Props:    map[string]string{"font": action.IconFont().Name},
		})
		strip.Add(button)
	}
	return strip
}
