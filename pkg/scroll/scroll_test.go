package scroll

import (
	"math"
	"testing"
	"time"

	"github.com/go-drift/swipeactions/pkg/animation"
	"github.com/go-drift/swipeactions/pkg/graphics"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func useClock(t *testing.T) *stepClock {
	t.Helper()
	clk := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	prev := animation.SetClock(clk)
	t.Cleanup(func() { animation.SetClock(prev) })
	return clk
}

// settle advances the clock frame by frame until no simulation is running.
func settle(t *testing.T, clk *stepClock) {
	t.Helper()
	for i := 0; i < 300; i++ {
		if !HasActiveBallistics() {
			return
		}
		clk.now = clk.now.Add(16 * time.Millisecond)
		StepBallistics()
	}
	t.Fatal("scroll simulation did not settle")
}

func TestClampingPhysics_ClampsUserOffset(t *testing.T) {
	p := NewPosition(nil, ClampingPhysics{}, nil)
	p.SetExtents(0, 200)
	p.ApplyUserOffset(-50)
	if p.Offset() != 0 {
		t.Errorf("offset = %v, want 0", p.Offset())
	}
	p.ApplyUserOffset(500)
	if p.Offset() != 200 {
		t.Errorf("offset = %v, want 200", p.Offset())
	}
}

func TestBouncingPhysics_AllowsResistedOverscroll(t *testing.T) {
	p := NewPosition(nil, BouncingPhysics{}, nil)
	p.SetViewportExtent(300)
	p.SetExtents(0, 200)
	p.ApplyUserOffset(-20)
	first := p.Offset()
	if first >= 0 {
		t.Fatalf("expected overscroll below 0, got %v", first)
	}
	p.ApplyUserOffset(-20)
	if second := p.Offset() - first; second <= -20 || second >= 0 {
		t.Errorf("second delta = %v, want resisted movement in (-20, 0)", second)
	}
}

func TestStartBallistic_SpringsBackFromOverscroll(t *testing.T) {
	clk := useClock(t)
	p := NewPosition(nil, BouncingPhysics{}, nil)
	p.SetViewportExtent(300)
	p.SetExtents(0, 200)
	p.ApplyUserOffset(-40)
	p.StartBallistic(0)
	settle(t, clk)
	if math.Abs(p.Offset()) > 0.1 {
		t.Errorf("offset = %v, want 0", p.Offset())
	}
}

func TestViewAlignedSnap(t *testing.T) {
	snap := ViewAligned(0, 200)
	tests := []struct {
		offset, velocity, want float64
	}{
		{offset: 80, velocity: 0, want: 0},
		{offset: 120, velocity: 0, want: 200},
		{offset: 60, velocity: 800, want: 200},
		{offset: 150, velocity: -1000, want: 0},
	}
	for _, tt := range tests {
		if got := snap(tt.offset, tt.velocity); got != tt.want {
			t.Errorf("snap(%v, %v) = %v, want %v", tt.offset, tt.velocity, got, tt.want)
		}
	}
}

func TestStartBallistic_SnapsToTarget(t *testing.T) {
	clk := useClock(t)
	p := NewPosition(nil, BouncingPhysics{}, nil)
	p.SetExtents(0, 200)
	p.SetSnap(ViewAligned(0, 200))
	p.JumpTo(130)
	p.StartBallistic(0)
	if !p.IsAnimating() {
		t.Fatal("expected snap animation")
	}
	settle(t, clk)
	if p.Offset() != 200 {
		t.Errorf("offset = %v, want 200", p.Offset())
	}
}

func TestAnimateTo_Categories(t *testing.T) {
	for _, category := range []animation.Category{animation.CategorySnap, animation.CategoryEase} {
		t.Run(category.String(), func(t *testing.T) {
			clk := useClock(t)
			p := NewPosition(nil, ClampingPhysics{}, nil)
			p.SetExtents(0, 200)
			p.JumpTo(200)
			p.AnimateTo(0, category)
			settle(t, clk)
			if p.Offset() != 0 {
				t.Errorf("offset = %v, want 0", p.Offset())
			}
		})
	}
}

func TestController_Listeners(t *testing.T) {
	c := &Controller{}
	p := NewPosition(c, ClampingPhysics{}, nil)
	p.SetExtents(0, 100)
	calls := 0
	unsubscribe := c.AddListener(func() { calls++ })
	c.JumpTo(50)
	if calls != 1 || c.Offset() != 50 {
		t.Errorf("calls = %d offset = %v", calls, c.Offset())
	}
	unsubscribe()
	c.JumpTo(10)
	if calls != 1 {
		t.Errorf("listener called after unsubscribe")
	}
	p.Detach()
	if c.Offset() != 10 {
		t.Errorf("detached controller offset = %v, want InitialScrollOffset 10", c.Offset())
	}
}

func TestAnchorOffset(t *testing.T) {
	content := graphics.RectFromLTWH(200, 0, 360, 70)
	if got := AnchorOffset(AxisHorizontal, content, 360, graphics.AlignmentTopRight); got != 200 {
		t.Errorf("topTrailing = %v, want 200", got)
	}
	if got := AnchorOffset(AxisHorizontal, content, 360, graphics.AlignmentTopLeft); got != 200 {
		t.Errorf("topLeading = %v, want 200", got)
	}
	wide := graphics.RectFromLTWH(0, 0, 560, 70)
	if got := AnchorOffset(AxisHorizontal, wide, 360, graphics.AlignmentTopRight); got != 200 {
		t.Errorf("trailing edge of wide item = %v, want 200", got)
	}
	row := graphics.RectFromLTWH(0, 400, 360, 70)
	if got := AnchorOffset(AxisVertical, row, 800, graphics.AlignmentTopLeft); got != 400 {
		t.Errorf("vertical top = %v, want 400", got)
	}
}
