// Package testing drives swipe rows and the screens that host them without a
// display.
//
// # Quick Start
//
// Create a tester around anything that lays out, renders and accepts pointer
// events, then pump frames and simulate gestures:
//
//	func TestRowOpens(t *testing.T) {
//	    row := swipe.NewRow(cfg)
//	    tester := swipetest.NewTesterWithT(t, row, graphics.Size{Width: 360, Height: 70})
//
//	    tester.DragFrom(graphics.Offset{X: 300, Y: 35}, graphics.Offset{X: -150})
//	    tester.PumpAndSettle(time.Second)
//
//	    if !row.IsOpen() {
//	        t.Error("expected row to open")
//	    }
//	}
//
// # Time
//
// The tester installs a [FakeClock] as the animation clock. [Tester.Advance]
// moves it forward in 16ms frames, firing timers and stepping springs along
// the way, so timed sequences can be asserted to the millisecond.
//
// # Snapshot Testing
//
// Capture and compare render tree snapshots:
//
//	tester.Snapshot().MatchesFile(t, "testdata/row_open.json")
//
// Update snapshots with:
//
//	SWIPE_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import swipetest "github.com/go-drift/swipeactions/pkg/testing"
package testing
