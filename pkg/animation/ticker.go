// Package animation provides the timing primitives behind the swipe row:
// frame tickers, one-shot timers, eased controllers and spring simulations.
//
// # Core Components
//
//   - [Ticker]: calls a callback on every frame while active.
//
//   - [Timer]: fires a callback once, on the frame loop, after a delay.
//     Timers are the cooperative suspension points of the action sequence;
//     they never block the UI thread.
//
//   - [AnimationController]: drives a value from 0.0 to 1.0 over a duration
//     with an easing curve.
//
//   - [SpringSimulation]: damped spring used for "snap" motion such as the
//     row closing over its action strip.
//
// # Frame Loop
//
// Everything in this package is stepped by [StepTickers], which the frame
// loop (or a test harness) calls once per frame:
//
//	for range frames {
//	    animation.StepTickers()
//	    render()
//	}
//
// Replace the clock with [SetClock] to drive time manually in tests.
package animation

import (
	"sync"
	"time"
)

var (
	tickerMu      sync.Mutex
	activeTickers = make(map[*Ticker]struct{})
	activeTimers  = make(map[*Timer]struct{})
)

// Ticker calls a callback on each frame while active.
//
// Ticker is the low-level timing primitive used by [AnimationController].
// The callback receives the elapsed time since Start was called.
type Ticker struct {
	callback func(elapsed time.Duration)
	isActive bool
	start    time.Time
}

// NewTicker creates a new ticker with the given callback.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{
		callback: callback,
	}
}

// Start activates the ticker.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = Now()
	tickerMu.Lock()
	activeTickers[t] = struct{}{}
	tickerMu.Unlock()
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	tickerMu.Lock()
	delete(activeTickers, t)
	tickerMu.Unlock()
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return Now().Sub(t.start)
}

// StepTickers advances all active tickers and fires due timers.
// This should be called once per frame from the frame loop.
func StepTickers() {
	tickerMu.Lock()
	if len(activeTickers) == 0 && len(activeTimers) == 0 {
		tickerMu.Unlock()
		return
	}
	// Copy to avoid holding the lock during callbacks
	tickers := make([]*Ticker, 0, len(activeTickers))
	for ticker := range activeTickers {
		tickers = append(tickers, ticker)
	}
	timers := make([]*Timer, 0, len(activeTimers))
	for timer := range activeTimers {
		timers = append(timers, timer)
	}
	tickerMu.Unlock()

	now := Now()
	for _, ticker := range tickers {
		if ticker.isActive && ticker.callback != nil {
			ticker.callback(now.Sub(ticker.start))
		}
	}
	fireDueTimers(timers, now)
}

// HasActiveTickers returns true if any tickers or timers are pending.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(activeTickers) > 0 || len(activeTimers) > 0
}
