package render

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/go-drift/swipeactions/pkg/errors"
	"github.com/go-drift/swipeactions/pkg/graphics"
)

func sampleTree(tapped *int) *Node {
	button := &Node{
		Kind:  "button",
		Key:   "delete",
		Frame: graphics.RectFromLTWH(100, 0, 100, 50),
		Fill:  graphics.ColorRed,
		OnTap: func() { *tapped++ },
	}
	content := &Node{
		Kind:  "content",
		Key:   "content",
		Frame: graphics.RectFromLTWH(0, 0, 100, 50),
		Fill:  graphics.ColorBlue,
	}
	return (&Node{
		Kind:         "row",
		Frame:        graphics.RectFromLTWH(10, 10, 200, 50),
		CornerRadius: 15,
		Clip:         true,
	}).Add(content, button)
}

func TestHitTest_DeepestFirst(t *testing.T) {
	var tapped int
	root := sampleTree(&tapped)
	path := HitTest(root, graphics.Offset{X: 150, Y: 30})
	if len(path) != 2 || path[0].Key != "delete" || path[1].Kind != "row" {
		t.Fatalf("path = %v", kinds(path))
	}
	fn, ok := FindTap(root, graphics.Offset{X: 150, Y: 30})
	if !ok {
		t.Fatal("expected tap handler")
	}
	fn()
	if tapped != 1 {
		t.Errorf("tapped = %d", tapped)
	}
	if _, ok := FindTap(root, graphics.Offset{X: 50, Y: 30}); ok {
		t.Error("content has no tap handler")
	}
}

func TestHitTest_ClipExcludesCorners(t *testing.T) {
	var tapped int
	root := sampleTree(&tapped)
	// Top-right corner of the row lies outside the 15-unit rounding.
	if path := HitTest(root, graphics.Offset{X: 209, Y: 11}); len(path) != 0 {
		t.Errorf("corner hit = %v", kinds(path))
	}
}

func TestHitTest_IgnorePointer(t *testing.T) {
	var tapped int
	root := sampleTree(&tapped)
	root.IgnorePointer = true
	if _, ok := FindTap(root, graphics.Offset{X: 150, Y: 30}); ok {
		t.Error("ignored subtree should not receive taps")
	}
}

func TestHitTest_Mask(t *testing.T) {
	var tapped int
	root := sampleTree(&tapped)
	root.Mask = &graphics.Rect{Left: 0, Top: 0, Right: 200, Bottom: 10}
	if _, ok := FindTap(root, graphics.Offset{X: 150, Y: 40}); ok {
		t.Error("masked-out child should not receive taps")
	}
	if _, ok := FindTap(root, graphics.Offset{X: 150, Y: 15}); !ok {
		t.Error("child inside mask should receive taps")
	}
}

func TestFindAndBounds(t *testing.T) {
	var tapped int
	root := sampleTree(&tapped)
	button := FindByKey(root, "delete")
	if button == nil {
		t.Fatal("button not found")
	}
	bounds, ok := Bounds(root, button)
	if !ok {
		t.Fatal("bounds not found")
	}
	if want := graphics.RectFromLTWH(110, 10, 100, 50); bounds != want {
		t.Errorf("bounds = %v, want %v", bounds, want)
	}
	if got := len(FindByKind(root, "content")); got != 1 {
		t.Errorf("FindByKind = %d", got)
	}
	if FindByKey(root, "missing") != nil {
		t.Error("expected nil for missing key")
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	var tapped int
	size := graphics.Size{Width: 220, Height: 70}
	snap := Capture(sampleTree(&tapped), size)
	if snap.Root.ID != "row#0" || snap.Root.Children[1].ID != "button#0" {
		t.Fatalf("ids = %s, %s", snap.Root.ID, snap.Root.Children[1].ID)
	}
	if !snap.Root.Children[1].Tappable {
		t.Error("button should be tappable")
	}

	path := filepath.Join(t.TempDir(), "row.json")
	if err := snap.UpdateFile(path); err != nil {
		t.Fatal(err)
	}
	snap.MatchesFile(t, path)

	moved := sampleTree(&tapped)
	moved.Children[0].Frame = moved.Children[0].Frame.Translate(-30, 0)
	if diff := Capture(moved, size).Diff(snap); diff == "" {
		t.Error("expected diff after moving content")
	}
}

func TestRasterize_PaintsFillsInsideClip(t *testing.T) {
	var tapped int
	img, err := Rasterize(sampleTree(&tapped), graphics.Size{Width: 220, Height: 70}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(60, 35); got.B != 0xFF || got.A != 0xFF {
		t.Errorf("content pixel = %v, want blue", got)
	}
	if got := img.RGBAAt(160, 35); got.R != 0xFF || got.A != 0xFF {
		t.Errorf("button pixel = %v, want red", got)
	}
	if got := img.RGBAAt(10, 10); got.A != 0 {
		t.Errorf("clipped corner pixel = %v, want transparent", got)
	}
	if got := img.RGBAAt(215, 35); got.A != 0 {
		t.Errorf("outside pixel = %v, want transparent", got)
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestRasterize_UnknownIconReported(t *testing.T) {
	h := &recorder{}
	prev := errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(prev) })

	root := &Node{Kind: KindIcon, Frame: graphics.RectFromLTWH(0, 0, 40, 40), Icon: "bogus.glyph", IconTint: graphics.ColorWhite}
	if _, err := Rasterize(root, graphics.Size{Width: 40, Height: 40}, 1); err != nil {
		t.Fatal(err)
	}
	if len(h.errs) != 1 || h.errs[0].Kind != errors.KindIcon || h.errs[0].Key != "bogus.glyph" {
		t.Errorf("reported = %v", h.errs)
	}
}

func TestRasterize_InvalidSize(t *testing.T) {
	if _, err := Rasterize(nil, graphics.Size{}, 1); err == nil {
		t.Error("expected error for empty surface")
	}
}

type recorder struct {
	errs []*errors.SwipeError
}

func (r *recorder) HandleError(err *errors.SwipeError) { r.errs = append(r.errs, err) }
func (r *recorder) HandlePanic(*errors.PanicError)     {}

func kinds(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind
	}
	return out
}
