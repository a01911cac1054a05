package swipe_test

import (
	"math"
	"testing"
	"time"

	"github.com/go-drift/swipeactions/pkg/graphics"
	"github.com/go-drift/swipeactions/pkg/render"
	"github.com/go-drift/swipeactions/pkg/swipe"
	swipetest "github.com/go-drift/swipeactions/pkg/testing"
)

var rowSize = graphics.Size{Width: 360, Height: 70}

type fixture struct {
	row      *swipe.Row
	tester   *swipetest.Tester
	bookmark swipe.Action
	remove   swipe.Action
	calls    map[string]int
}

func newFixture(t *testing.T, direction swipe.Direction) *fixture {
	t.Helper()
	f := &fixture{calls: make(map[string]int)}
	f.bookmark = swipe.NewAction(graphics.ColorBlue, "star.fill", func() { f.calls["bookmark"]++ })
	f.remove = swipe.NewAction(graphics.ColorRed, "trash.fill", func() { f.calls["delete"]++ })
	f.row = swipe.NewRow(swipe.Config{
		CornerRadius: 15,
		Direction:    direction,
		Content: render.WidgetFunc(func(size graphics.Size) *render.Node {
			return &render.Node{
				Kind:  "card",
				Key:   "card",
				Frame: graphics.RectFromLTWH(0, 0, size.Width, size.Height),
				Fill:  graphics.ColorPurple,
			}
		}),
		Actions: swipe.Actions(f.bookmark, f.remove),
		Key:     "purple",
	})
	f.tester = swipetest.NewTesterWithT(t, f.row, rowSize)
	t.Cleanup(f.row.Dispose)
	return f
}

// open drags the row fully open and waits for it to settle.
func (f *fixture) open(t *testing.T) {
	t.Helper()
	dx := -150.0
	if f.row.Direction() == swipe.Leading {
		dx = 150
	}
	f.tester.DragFrom(graphics.Offset{X: 180, Y: 35}, graphics.Offset{X: dx})
	if err := f.tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if !f.row.IsOpen() {
		t.Fatalf("row did not open: position %v", f.row.ScrollPosition())
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestRow_ClosedLayout(t *testing.T) {
	for _, tt := range []struct {
		direction swipe.Direction
		closed    float64
	}{
		{swipe.Trailing, 0},
		{swipe.Leading, 200},
	} {
		t.Run(tt.direction.String(), func(t *testing.T) {
			f := newFixture(t, tt.direction)
			if got := f.row.ScrollPosition(); got != tt.closed {
				t.Errorf("closed position = %v, want %v", got, tt.closed)
			}
			if got := f.row.MinX(); got != 0 {
				t.Errorf("MinX = %v, want 0", got)
			}
			if f.row.IsOpen() || !f.row.IsInteractionEnabled() {
				t.Error("new row should be closed and enabled")
			}
			content := f.tester.FindAll("content")[0]
			bounds, _ := render.Bounds(f.tester.Tree(), content)
			if bounds != graphics.RectFromLTWH(0, 0, 360, 70) {
				t.Errorf("content bounds = %v", bounds)
			}
		})
	}
}

func TestRow_RenderTints(t *testing.T) {
	f := newFixture(t, swipe.Trailing)
	tree := f.tester.Tree()

	if tree.Fill != graphics.ColorRed {
		t.Errorf("track background = %v, want last tint (red)", tree.Fill)
	}
	if !tree.Clip || tree.CornerRadius != 15 {
		t.Errorf("row clip = %v radius = %v", tree.Clip, tree.CornerRadius)
	}
	content := f.tester.FindAll("content")[0]
	if content.Fill != graphics.ColorBlue {
		t.Errorf("content background = %v, want first tint (blue)", content.Fill)
	}
	if f.tester.Find("card") == nil {
		t.Error("content widget not rendered")
	}
}

func TestRow_EmptyActions(t *testing.T) {
	row := swipe.NewRow(swipe.Config{CornerRadius: 15})
	tester := swipetest.NewTesterWithT(t, row, rowSize)
	defer row.Dispose()

	tree := tester.Tree()
	if !tree.Fill.IsTransparent() {
		t.Errorf("row fill = %v, want none", tree.Fill)
	}
	if content := tester.FindAll("content")[0]; !content.Fill.IsTransparent() {
		t.Errorf("content fill = %v, want none", content.Fill)
	}
	if n := len(tester.FindAll("button")); n != 0 {
		t.Errorf("buttons = %d", n)
	}
	if row.Tap(0) {
		t.Error("Tap on empty row should do nothing")
	}
	tester.DragFrom(graphics.Offset{X: 200, Y: 35}, graphics.Offset{X: -150})
	if err := tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if row.ScrollPosition() != 0 {
		t.Errorf("position = %v, want 0", row.ScrollPosition())
	}
}

func TestRow_StripLayout(t *testing.T) {
	f := newFixture(t, swipe.Trailing)
	strip := f.tester.FindAll("strip")[0]
	if strip.Frame != graphics.RectFromLTWH(360, 0, 200, 70) {
		t.Errorf("strip frame = %v", strip.Frame)
	}
	buttons := f.tester.FindAll("button")
	if len(buttons) != 2 {
		t.Fatalf("buttons = %d", len(buttons))
	}
	for i, want := range []swipe.Action{f.bookmark, f.remove} {
		b := buttons[i]
		if b.Key != want.ID().String() {
			t.Errorf("button %d key = %s, want %s", i, b.Key, want.ID())
		}
		if b.Frame.Width() != swipe.ButtonWidth || b.Frame.Left != float64(i)*swipe.ButtonWidth {
			t.Errorf("button %d frame = %v", i, b.Frame)
		}
		if b.Fill != want.Tint() {
			t.Errorf("button %d fill = %v", i, b.Fill)
		}
		icon := b.Children[0]
		if icon.Icon != want.Icon() || icon.IconSize != swipe.FontTitle3.Size || icon.IconTint != graphics.ColorWhite {
			t.Errorf("button %d icon = %+v", i, icon)
		}
	}
}

func TestRow_LeadingStripPrecedesContent(t *testing.T) {
	f := newFixture(t, swipe.Leading)
	track := f.tester.FindAll("track")[0]
	if track.Children[0].Kind != "strip" || track.Children[1].Kind != "content" {
		t.Fatalf("track order = %s, %s", track.Children[0].Kind, track.Children[1].Kind)
	}
	if track.Frame.Left != -200 {
		t.Errorf("track left = %v, want -200", track.Frame.Left)
	}
}

func TestRow_DragPastMidpointOpens(t *testing.T) {
	for _, d := range []swipe.Direction{swipe.Trailing, swipe.Leading} {
		t.Run(d.String(), func(t *testing.T) {
			f := newFixture(t, d)
			f.open(t)
			if f.row.Reveal() != 1 {
				t.Errorf("reveal = %v, want 1", f.row.Reveal())
			}
		})
	}
}

func TestRow_ShortDragCloses(t *testing.T) {
	f := newFixture(t, swipe.Trailing)
	f.tester.DragFrom(graphics.Offset{X: 300, Y: 35}, graphics.Offset{X: -60})
	if err := f.tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if f.row.ScrollPosition() != 0 {
		t.Errorf("position = %v, want 0", f.row.ScrollPosition())
	}
}

func TestRow_FlingOpens(t *testing.T) {
	f := newFixture(t, swipe.Trailing)
	f.tester.Fling(graphics.Offset{X: 300, Y: 35}, graphics.Offset{X: -60})
	if err := f.tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if f.row.ScrollPosition() != 200 {
		t.Errorf("position = %v, want 200", f.row.ScrollPosition())
	}
}

func TestRow_VerticalDragIgnored(t *testing.T) {
	f := newFixture(t, swipe.Trailing)
	f.tester.DragFrom(graphics.Offset{X: 180, Y: 10}, graphics.Offset{X: -10, Y: 60})
	if f.row.ScrollPosition() != 0 {
		t.Errorf("position = %v, want 0", f.row.ScrollPosition())
	}
}

func TestRow_ContentPinnedAwayFromStrip(t *testing.T) {
	tests := []struct {
		direction swipe.Direction
		dx        float64
	}{
		{swipe.Trailing, 80},
		{swipe.Leading, -80},
	}
	for _, tt := range tests {
		t.Run(tt.direction.String(), func(t *testing.T) {
			f := newFixture(t, tt.direction)
			start := graphics.Offset{X: 180, Y: 35}
			f.tester.SendPointerDown(start, 1)
			f.tester.SendPointerMove(graphics.Offset{X: start.X + tt.dx, Y: 35}, 1)
			f.tester.Pump()

			minX := f.row.MinX()
			if tt.direction == swipe.Trailing && minX <= 0 || tt.direction == swipe.Leading && minX >= 0 {
				t.Fatalf("expected overscroll, MinX = %v", minX)
			}
			if got := f.row.VisualOffset(); got != -minX {
				t.Errorf("VisualOffset = %v, want %v", got, -minX)
			}
			content := f.tester.FindAll("content")[0]
			bounds, _ := render.Bounds(f.tester.Tree(), content)
			if !near(bounds.Left, 0) {
				t.Errorf("content left = %v, want pinned at 0", bounds.Left)
			}

			f.tester.SendPointerUp(graphics.Offset{X: start.X + tt.dx, Y: 35}, 1)
			if err := f.tester.PumpAndSettle(2 * time.Second); err != nil {
				t.Fatal(err)
			}
			if f.row.MinX() != 0 {
				t.Errorf("MinX after release = %v, want 0", f.row.MinX())
			}
		})
	}
}

func TestRow_ContentMovesFreelyTowardStrip(t *testing.T) {
	f := newFixture(t, swipe.Trailing)
	f.tester.SendPointerDown(graphics.Offset{X: 300, Y: 35}, 1)
	f.tester.SendPointerMove(graphics.Offset{X: 200, Y: 35}, 1)
	f.tester.Pump()

	if got := f.row.MinX(); got != -100 {
		t.Errorf("MinX = %v, want -100", got)
	}
	if got := f.row.VisualOffset(); got != 0 {
		t.Errorf("VisualOffset = %v, want 0", got)
	}
	f.tester.SendPointerCancel(1)
}

func TestRow_TapSequenceTiming(t *testing.T) {
	f := newFixture(t, swipe.Trailing)
	f.open(t)

	if err := f.tester.Tap(f.bookmark.ID().String()); err != nil {
		t.Fatal(err)
	}
	if f.row.IsInteractionEnabled() {
		t.Fatal("interaction should be disabled at tap time")
	}
	if f.row.Sequence() != swipe.SequenceClosing {
		t.Errorf("sequence = %v, want closing", f.row.Sequence())
	}
	if !f.tester.Tree().IgnorePointer {
		t.Error("locked row should ignore pointers")
	}

	f.tester.Advance(249 * time.Millisecond)
	if f.calls["bookmark"] != 0 {
		t.Fatal("handler fired before 250ms")
	}
	f.tester.Advance(1 * time.Millisecond)
	if f.calls["bookmark"] != 1 {
		t.Fatalf("handler calls = %d at 250ms, want 1", f.calls["bookmark"])
	}
	if f.row.IsInteractionEnabled() {
		t.Fatal("interaction re-enabled together with the handler")
	}
	if f.row.Sequence() != swipe.SequenceSettling {
		t.Errorf("sequence = %v, want settling", f.row.Sequence())
	}

	f.tester.Advance(99 * time.Millisecond)
	if f.row.IsInteractionEnabled() {
		t.Fatal("interaction re-enabled before 350ms")
	}
	f.tester.Advance(1 * time.Millisecond)
	if !f.row.IsInteractionEnabled() {
		t.Fatal("interaction not re-enabled at 350ms")
	}
	if f.row.Sequence() != swipe.SequenceIdle {
		t.Errorf("sequence = %v, want idle", f.row.Sequence())
	}

	if err := f.tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if f.row.ScrollPosition() != 0 || f.row.IsOpen() {
		t.Errorf("row should be closed, position %v", f.row.ScrollPosition())
	}
	if f.calls["delete"] != 0 {
		t.Error("only the tapped action should fire")
	}
}

func TestRow_LockedRowIgnoresInput(t *testing.T) {
	f := newFixture(t, swipe.Trailing)
	f.open(t)

	key := f.remove.ID().String()
	pos, _ := f.tester.Center(f.tester.Find(key))
	if err := f.tester.TapAt(pos); err != nil {
		t.Fatal(err)
	}
	// Re-tap the same spot and try a programmatic tap while locked.
	if err := f.tester.TapAt(pos); err != nil {
		t.Fatal(err)
	}
	if f.row.Tap(1) || f.row.Tap(0) {
		t.Error("Tap should be rejected while locked")
	}
	before := f.row.ScrollPosition()
	f.tester.SendPointerDown(graphics.Offset{X: 100, Y: 35}, 9)
	f.tester.SendPointerMove(graphics.Offset{X: 20, Y: 35}, 9)
	if f.row.ScrollPosition() != before {
		t.Error("drag should be ignored while locked")
	}
	f.tester.SendPointerUp(graphics.Offset{X: 20, Y: 35}, 9)

	if err := f.tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if f.calls["delete"] != 1 {
		t.Errorf("delete calls = %d, want 1", f.calls["delete"])
	}
}

func TestRow_LeadingTapClosesToAnchor(t *testing.T) {
	f := newFixture(t, swipe.Leading)
	f.open(t)
	if f.row.ScrollPosition() != 0 {
		t.Fatalf("open position = %v, want 0", f.row.ScrollPosition())
	}
	if !f.row.Tap(0) {
		t.Fatal("Tap rejected")
	}
	if err := f.tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if f.row.ScrollPosition() != 200 || f.calls["bookmark"] != 1 {
		t.Errorf("position = %v calls = %d", f.row.ScrollPosition(), f.calls["bookmark"])
	}
}

func TestRow_DisposeMidSequence(t *testing.T) {
	f := newFixture(t, swipe.Trailing)
	f.open(t)
	if !f.row.Tap(1) {
		t.Fatal("Tap rejected")
	}
	f.tester.Advance(100 * time.Millisecond)
	f.row.Dispose()
	f.row.Dispose()

	f.tester.Advance(time.Second)
	if f.calls["delete"] != 0 {
		t.Errorf("handler fired after dispose: %d", f.calls["delete"])
	}
	if f.row.Tap(0) {
		t.Error("disposed row should reject taps")
	}
}

func TestRow_HandlerDisposesRow(t *testing.T) {
	var row *swipe.Row
	calls := 0
	remove := swipe.NewAction(graphics.ColorRed, "trash.fill", func() {
		calls++
		row.Dispose()
	})
	row = swipe.NewRow(swipe.Config{Actions: swipe.Actions(remove)})
	tester := swipetest.NewTesterWithT(t, row, rowSize)

	if !row.Tap(0) {
		t.Fatal("Tap rejected")
	}
	if err := tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !row.IsDisposed() || row.Sequence() != swipe.SequenceFiring {
		t.Errorf("disposed = %v sequence = %v", row.IsDisposed(), row.Sequence())
	}
}

func TestRow_DisabledAction(t *testing.T) {
	calls := 0
	pin := swipe.NewAction(graphics.ColorOrange, "pin.fill", func() { calls++ }, swipe.WithEnabled(false))
	row := swipe.NewRow(swipe.Config{Actions: swipe.Actions(pin)})
	tester := swipetest.NewTesterWithT(t, row, rowSize)
	defer row.Dispose()

	button := tester.Find(pin.ID().String())
	if button.OnTap != nil {
		t.Error("disabled action should not be tappable")
	}
	if got := button.Children[0].IconTint.Alpha(); !near(got, 0.4) {
		t.Errorf("icon alpha = %v, want 0.4", got)
	}
	if row.Tap(0) {
		t.Error("Tap on disabled action should be rejected")
	}
	if !row.IsInteractionEnabled() || calls != 0 {
		t.Error("disabled action should not start a sequence")
	}
}

func TestRow_TapOutOfRange(t *testing.T) {
	f := newFixture(t, swipe.Trailing)
	if f.row.Tap(-1) || f.row.Tap(2) {
		t.Error("out-of-range Tap should be rejected")
	}
	if !f.row.IsInteractionEnabled() {
		t.Error("rejected Tap must not lock the row")
	}
}

func TestRow_OpenClose(t *testing.T) {
	f := newFixture(t, swipe.Trailing)
	f.row.Open()
	if err := f.tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if f.row.ScrollPosition() != 200 {
		t.Errorf("open position = %v", f.row.ScrollPosition())
	}
	f.row.Close()
	if err := f.tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if f.row.ScrollPosition() != 0 {
		t.Errorf("closed position = %v", f.row.ScrollPosition())
	}
}

func TestRow_OnChange(t *testing.T) {
	f := newFixture(t, swipe.Trailing)
	changes := 0
	unsubscribe := f.row.OnChange(func() { changes++ })

	f.row.Open()
	f.tester.Advance(50 * time.Millisecond)
	if changes == 0 {
		t.Fatal("expected change notifications while opening")
	}
	unsubscribe()
	seen := changes
	f.tester.Advance(50 * time.Millisecond)
	if changes != seen {
		t.Error("listener called after unsubscribe")
	}
}

func TestRow_Keys(t *testing.T) {
	keyed := swipe.NewRow(swipe.Config{Key: "black"})
	anonymous := swipe.NewRow(swipe.Config{})
	if keyed.Key() != "black" {
		t.Errorf("Key = %q", keyed.Key())
	}
	if anonymous.Key() != anonymous.ID().String() {
		t.Errorf("anonymous key = %q, want internal ID", anonymous.Key())
	}
	if keyed.ID() == anonymous.ID() {
		t.Error("rows should get distinct identities")
	}
}

func TestRow_SnapshotChangesWhenOpened(t *testing.T) {
	f := newFixture(t, swipe.Trailing)
	closed := f.tester.Snapshot()
	f.open(t)
	if diff := f.tester.Snapshot().Diff(closed); diff == "" {
		t.Error("expected snapshot to change when opened")
	}
}
