package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/go-drift/swipeactions/pkg/errors"
	"github.com/go-drift/swipeactions/pkg/graphics"
	"github.com/go-drift/swipeactions/pkg/icons"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Rasterize paints the tree into a new image of size×scale pixels. Fills are
// anti-aliased rounded rectangles; icons are tinted glyph masks. A glyph that
// cannot be resolved is reported through pkg/errors and skipped.
func Rasterize(root *Node, size graphics.Size, scale float64) (*image.RGBA, error) {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(size.Width * scale))
	h := int(math.Ceil(size.Height * scale))
	if w <= 0 || h <= 0 {
		return nil, errors.Wrap("render.Rasterize", errors.KindRender, fmt.Errorf("invalid surface %vx%v", size.Width, size.Height))
	}
	p := &painter{
		dst:   image.NewRGBA(image.Rect(0, 0, w, h)),
		scale: scale,
		z:     vector.NewRasterizer(w, h),
	}
	if root != nil {
		p.paint(root, graphics.Offset{}, nil)
	}
	return p.dst, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return errors.Wrap("render.WritePNG", errors.KindRender, png.Encode(w, img))
}

type painter struct {
	dst   *image.RGBA
	scale float64
	z     *vector.Rasterizer
}

func (p *painter) paint(n *Node, parent graphics.Offset, clip *image.Alpha) {
	abs := n.Frame.Translate(parent.X, parent.Y)

	if !n.Fill.IsTransparent() {
		mask := intersect(p.shapeMask(abs, n.CornerRadius), clip)
		draw.DrawMask(p.dst, p.dst.Bounds(), image.NewUniform(n.Fill.NRGBA()), image.Point{}, mask, image.Point{}, draw.Over)
	}
	if n.Icon != "" {
		p.paintIcon(n, abs, clip)
	}

	childClip := clip
	if n.Clip {
		childClip = intersect(p.shapeMask(abs, n.CornerRadius), childClip)
	}
	if n.Mask != nil {
		childClip = intersect(p.shapeMask(n.Mask.Translate(abs.Left, abs.Top), 0), childClip)
	}
	for _, child := range n.Children {
		p.paint(child, abs.Origin(), childClip)
	}
}

func (p *painter) paintIcon(n *Node, abs graphics.Rect, clip *image.Alpha) {
	extent := n.IconSize
	if extent <= 0 {
		extent = math.Min(abs.Width(), abs.Height()) / 2
	}
	px := int(math.Round(extent * p.scale))
	glyph, err := icons.Rasterize(n.Icon, px)
	if err != nil {
		errors.Report(&errors.SwipeError{
			Op:   "render.Rasterize",
			Kind: errors.KindIcon,
			Key:  n.Icon,
			Err:  err,
		})
		return
	}
	center := abs.Center()
	at := image.Point{
		X: int(math.Round(center.X*p.scale)) - px/2,
		Y: int(math.Round(center.Y*p.scale)) - px/2,
	}
	mask := image.NewAlpha(p.dst.Bounds())
	draw.Draw(mask, image.Rectangle{Min: at, Max: at.Add(glyph.Bounds().Size())}, glyph, image.Point{}, draw.Src)
	mask = intersect(mask, clip)
	draw.DrawMask(p.dst, p.dst.Bounds(), image.NewUniform(n.IconTint.NRGBA()), image.Point{}, mask, image.Point{}, draw.Over)
}

// shapeMask rasterizes a rounded rectangle given in logical units into a
// coverage mask the size of the destination.
func (p *painter) shapeMask(r graphics.Rect, radius float64) *image.Alpha {
	bounds := p.dst.Bounds()
	mask := image.NewAlpha(bounds)
	if r.IsEmpty() {
		return mask
	}
	rr := graphics.RRectFromRectAndRadius(r, graphics.CircularRadius(radius))
	p.z.Reset(bounds.Dx(), bounds.Dy())
	p.z.DrawOp = draw.Src
	s := p.scale
	addRRect(p.z,
		float32(rr.Rect.Left*s), float32(rr.Rect.Top*s),
		float32(rr.Rect.Right*s), float32(rr.Rect.Bottom*s),
		float32(rr.Radius.X*s), float32(rr.Radius.Y*s))
	p.z.Draw(mask, bounds, image.Opaque, image.Point{})
	return mask
}

func addRRect(z *vector.Rasterizer, l, t, r, b, rx, ry float32) {
	if rx <= 0 || ry <= 0 {
		z.MoveTo(l, t)
		z.LineTo(r, t)
		z.LineTo(r, b)
		z.LineTo(l, b)
		z.ClosePath()
		return
	}
	kx, ky := rx*kappa, ry*kappa
	z.MoveTo(l+rx, t)
	z.LineTo(r-rx, t)
	z.CubeTo(r-rx+kx, t, r, t+ry-ky, r, t+ry)
	z.LineTo(r, b-ry)
	z.CubeTo(r, b-ry+ky, r-rx+kx, b, r-rx, b)
	z.LineTo(l+rx, b)
	z.CubeTo(l+rx-kx, b, l, b-ry+ky, l, b-ry)
	z.LineTo(l, t+ry)
	z.CubeTo(l, t+ry-ky, l+rx-kx, t, l+rx, t)
	z.ClosePath()
}

// intersect multiplies two coverage masks. A nil mask means full coverage.
func intersect(a, b *image.Alpha) *image.Alpha {
	if b == nil {
		return a
	}
	if a == nil {
		return b
	}
	out := image.NewAlpha(a.Rect)
	for i := range out.Pix {
		out.Pix[i] = uint8(uint16(a.Pix[i]) * uint16(b.Pix[i]) / 255)
	}
	return out
}
