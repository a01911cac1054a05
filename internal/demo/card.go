package demo

import (
	"github.com/go-drift/swipeactions/pkg/graphics"
	"github.com/go-drift/swipeactions/pkg/render"
)

// Card geometry.
const (
	cardPaddingX     = 15.0
	cardPaddingY     = 10.0
	avatarSize       = 50.0
	avatarSpacing    = 12.0
	barHeight        = 5.0
	barSpacing       = 6.0
	barRadius        = 5.0
	firstBarWidth    = 80.0
	secondBarWidth   = 60.0
	placeholderAlpha = 0.4
)

// CardHeight is the natural height of a card: the avatar plus vertical
// padding.
const CardHeight = avatarSize + 2*cardPaddingY

// Card is one entry in the list.
type Card struct {
	Name  string
	Color graphics.Color
}

// Content returns the placeholder card body: an avatar circle and two text
// bars on the card's color.
func (c Card) Content() render.Widget {
	return render.WidgetFunc(func(size graphics.Size) *render.Node {
		fg := graphics.ColorWhite.WithAlpha(placeholderAlpha)
		barsTop := (size.Height - 2*barHeight - barSpacing) / 2
		barsLeft := cardPaddingX + avatarSize + avatarSpacing

		return (&render.Node{
			Kind:  render.KindBox,
			Key:   "card/" + c.Name,
			Frame: graphics.RectFromLTWH(0, 0, size.Width, size.Height),
			Fill:  c.Color,
		}).Add(
			&render.Node{
				Kind:  render.KindCircle,
				Frame: graphics.RectFromLTWH(cardPaddingX, (size.Height-avatarSize)/2, avatarSize, avatarSize),
				Fill:  fg,
			},
			&render.Node{
				Kind:         render.KindBox,
				Frame:        graphics.RectFromLTWH(barsLeft, barsTop, firstBarWidth, barHeight),
				Fill:         fg,
				CornerRadius: barRadius,
			},
			&render.Node{
				Kind:         render.KindBox,
				Frame:        graphics.RectFromLTWH(barsLeft, barsTop+barHeight+barSpacing, secondBarWidth, barHeight),
				Fill:         fg,
				CornerRadius: barRadius,
			},
		)
	})
}
