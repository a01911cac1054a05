package transition_test

import (
	"testing"
	"time"

	"github.com/go-drift/swipeactions/pkg/gestures"
	"github.com/go-drift/swipeactions/pkg/graphics"
	"github.com/go-drift/swipeactions/pkg/render"
	swipetest "github.com/go-drift/swipeactions/pkg/testing"
	"github.com/go-drift/swipeactions/pkg/transition"
)

var cardSize = graphics.Size{Width: 360, Height: 70}

// masked renders a single card through a Reveal.
type masked struct {
	reveal *transition.Reveal
	size   graphics.Size
}

func (m *masked) Layout(size graphics.Size) { m.size = size }

func (m *masked) Render() *render.Node {
	return m.reveal.Apply(&render.Node{
		Kind:  "card",
		Frame: graphics.RectFromLTWH(0, 0, cardSize.Width, cardSize.Height),
	}, cardSize)
}

func (m *masked) HandlePointer(gestures.PointerEvent) {}

func TestMaskOffset(t *testing.T) {
	tests := []struct {
		phase transition.Phase
		want  float64
	}{
		{transition.Identity, 0},
		{transition.WillAppear, -70},
		{transition.DidDisappear, -70},
	}
	for _, tt := range tests {
		if got := transition.MaskOffset(tt.phase, 70); got != tt.want {
			t.Errorf("MaskOffset(%v, 70) = %v, want %v", tt.phase, got, tt.want)
		}
	}
}

func TestReveal_StartsAtIdentity(t *testing.T) {
	r := transition.NewReveal(0)
	defer r.Dispose()
	if r.Phase() != transition.Identity || r.MaskOffset(70) != 0 {
		t.Errorf("phase = %v offset = %v", r.Phase(), r.MaskOffset(70))
	}
	node := r.Apply(&render.Node{Kind: "card"}, cardSize)
	if node.Mask != nil {
		t.Error("resting reveal should not mask")
	}
}

func TestReveal_Insert(t *testing.T) {
	m := &masked{reveal: transition.NewReveal(0)}
	defer m.reveal.Dispose()
	tester := swipetest.NewTesterWithT(t, m, cardSize)
	m.reveal.Insert()
	tester.Pump()

	if m.reveal.Phase() != transition.WillAppear {
		t.Fatalf("phase = %v, want willAppear", m.reveal.Phase())
	}
	mask := tester.Tree().Mask
	if mask == nil || mask.Top != -70 {
		t.Fatalf("initial mask = %v, want top -70", mask)
	}

	tester.Advance(transition.DefaultDuration / 2)
	mid := tester.Tree().Mask
	if mid == nil || mid.Top <= -70 || mid.Top >= 0 {
		t.Errorf("mid mask = %v, want partially revealed", mid)
	}

	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if m.reveal.Phase() != transition.Identity || tester.Tree().Mask != nil {
		t.Errorf("phase = %v mask = %v, want identity and unmasked", m.reveal.Phase(), tester.Tree().Mask)
	}
}

func TestReveal_Remove(t *testing.T) {
	m := &masked{reveal: transition.NewReveal(0)}
	defer m.reveal.Dispose()
	tester := swipetest.NewTesterWithT(t, m, cardSize)

	done := 0
	m.reveal.Remove(func() { done++ })
	if !m.reveal.IsAnimating() {
		t.Fatal("expected removal to animate")
	}
	tester.Advance(transition.DefaultDuration - 16*time.Millisecond)
	if done != 0 {
		t.Fatal("onDone called before the mask closed")
	}
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if done != 1 {
		t.Errorf("onDone calls = %d, want 1", done)
	}
	if m.reveal.Phase() != transition.DidDisappear {
		t.Errorf("phase = %v", m.reveal.Phase())
	}
	if got := m.reveal.MaskRect(cardSize); got.Top != -70 || got.Height() != 70 {
		t.Errorf("mask = %v", got)
	}
	if _, ok := render.FindTap(tester.Tree(), graphics.Offset{X: 10, Y: 10}); ok {
		t.Error("hidden card has no tap targets")
	}
}

func TestReveal_DisposeDropsCallback(t *testing.T) {
	m := &masked{reveal: transition.NewReveal(0)}
	tester := swipetest.NewTesterWithT(t, m, cardSize)

	done := 0
	m.reveal.Remove(func() { done++ })
	tester.Advance(100 * time.Millisecond)
	m.reveal.Dispose()
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if done != 0 {
		t.Errorf("onDone called after Dispose")
	}
}
