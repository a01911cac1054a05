package testing

import (
	"testing"
	"time"

	"github.com/go-drift/swipeactions/pkg/animation"
	"github.com/go-drift/swipeactions/pkg/gestures"
	"github.com/go-drift/swipeactions/pkg/graphics"
	"github.com/go-drift/swipeactions/pkg/render"
)

// probe records what the tester feeds it.
type probe struct {
	size    graphics.Size
	events  []gestures.PointerEvent
	renders int
	taps    int
}

func (p *probe) Layout(size graphics.Size) { p.size = size }

func (p *probe) Render() *render.Node {
	p.renders++
	return (&render.Node{
		Kind:  "root",
		Frame: graphics.RectFromLTWH(0, 0, p.size.Width, p.size.Height),
	}).Add(&render.Node{
		Kind:  "button",
		Key:   "ok",
		Frame: graphics.RectFromLTWH(20, 40, 100, 50),
		OnTap: func() { p.taps++ },
	})
}

func (p *probe) HandlePointer(event gestures.PointerEvent) {
	p.events = append(p.events, event)
	if event.Phase == gestures.PointerPhaseUp {
		if fn, ok := render.FindTap(p.Render(), event.Position); ok {
			fn()
		}
	}
}

func TestNewTester_Defaults(t *testing.T) {
	p := &probe{}
	tester := NewTesterWithT(t, p, graphics.Size{})

	if p.size.Width != DefaultTestWidth || p.size.Height != DefaultTestHeight {
		t.Errorf("expected default size %dx%d, got %vx%v", DefaultTestWidth, DefaultTestHeight, p.size.Width, p.size.Height)
	}
	if tester.Tree() == nil {
		t.Fatal("expected first frame to be rendered")
	}
	if !animation.Now().Equal(Epoch) {
		t.Errorf("animation clock not installed: %v", animation.Now())
	}
}

func TestCleanup_RestoresClock(t *testing.T) {
	tester := NewTester(&probe{}, graphics.Size{Width: 100, Height: 100})
	tester.Cleanup()
	if animation.Now().Equal(Epoch) {
		t.Error("expected system clock after cleanup")
	}
}

func TestAdvance_PumpsFrames(t *testing.T) {
	p := &probe{}
	tester := NewTesterWithT(t, p, graphics.Size{Width: 200, Height: 200})
	start := p.renders

	tester.Advance(40 * time.Millisecond)

	if got := p.renders - start; got != 3 {
		t.Errorf("frames = %d, want 3 (16+16+8ms)", got)
	}
	if got := tester.Clock().Since(Epoch); got != 40*time.Millisecond {
		t.Errorf("elapsed = %v", got)
	}
}

func TestPumpAndSettle_FiresTimers(t *testing.T) {
	tester := NewTesterWithT(t, &probe{}, graphics.Size{Width: 200, Height: 200})
	fired := false
	animation.After(100*time.Millisecond, func() { fired = true })

	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if !fired {
		t.Error("timer should have fired")
	}
}

func TestPumpAndSettle_Timeout(t *testing.T) {
	tester := NewTesterWithT(t, &probe{}, graphics.Size{Width: 200, Height: 200})
	timer := animation.After(time.Hour, func() {})
	defer timer.Stop()

	if err := tester.PumpAndSettle(100 * time.Millisecond); err != ErrSettleTimeout {
		t.Errorf("err = %v, want ErrSettleTimeout", err)
	}
}

func TestDispatch(t *testing.T) {
	tester := NewTesterWithT(t, &probe{}, graphics.Size{Width: 200, Height: 200})

	called := false
	tester.Dispatch(func() { called = true })

	if called {
		t.Error("dispatch should not run until Pump")
	}

	tester.Pump()

	if !called {
		t.Error("dispatch should have run after Pump")
	}
}

func TestTap_ByKey(t *testing.T) {
	p := &probe{}
	tester := NewTesterWithT(t, p, graphics.Size{Width: 200, Height: 200})

	if err := tester.Tap("ok"); err != nil {
		t.Fatal(err)
	}
	if p.taps != 1 {
		t.Errorf("taps = %d", p.taps)
	}
	if got := p.events[0].Position; got != (graphics.Offset{X: 70, Y: 65}) {
		t.Errorf("tap position = %v", got)
	}
	if err := tester.Tap("missing"); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestDragFrom_EndsWithoutVelocity(t *testing.T) {
	p := &probe{}
	tester := NewTesterWithT(t, p, graphics.Size{Width: 200, Height: 200})

	tester.DragFrom(graphics.Offset{X: 150, Y: 100}, graphics.Offset{X: -100})

	first, last := p.events[0], p.events[len(p.events)-1]
	if first.Phase != gestures.PointerPhaseDown || last.Phase != gestures.PointerPhaseUp {
		t.Fatalf("phases = %v .. %v", first.Phase, last.Phase)
	}
	if last.Position.X != 50 {
		t.Errorf("end x = %v, want 50", last.Position.X)
	}
	hold := last.Time.Sub(p.events[len(p.events)-3].Time)
	if hold < holdDuration {
		t.Errorf("hold = %v, want at least %v", hold, holdDuration)
	}
}

func TestSnapshot(t *testing.T) {
	tester := NewTesterWithT(t, &probe{}, graphics.Size{Width: 200, Height: 200})
	snap := tester.Snapshot()
	if snap.Root == nil || len(snap.Root.Children) != 1 || !snap.Root.Children[0].Tappable {
		t.Fatalf("snapshot = %+v", snap.Root)
	}
}
