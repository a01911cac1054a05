package animation

import (
	"slices"
	"sync/atomic"
	"time"
)

var timerSeq atomic.Uint64

// Timer fires a callback once, from [StepTickers], after its delay has elapsed
// on the animation clock. A stopped timer never fires.
type Timer struct {
	callback func()
	deadline time.Time
	seq      uint64
	active   bool
}

// After schedules fn to run on the frame loop once d has elapsed.
func After(d time.Duration, fn func()) *Timer {
	t := &Timer{
		callback: fn,
		deadline: Now().Add(d),
		seq:      timerSeq.Add(1),
		active:   true,
	}
	tickerMu.Lock()
	activeTimers[t] = struct{}{}
	tickerMu.Unlock()
	return t
}

// Stop cancels the timer. Returns false if the timer already fired or was stopped.
func (t *Timer) Stop() bool {
	if t == nil {
		return false
	}
	tickerMu.Lock()
	defer tickerMu.Unlock()
	if !t.active {
		return false
	}
	t.active = false
	delete(activeTimers, t)
	return true
}

// Pending reports whether the timer is still waiting to fire.
func (t *Timer) Pending() bool {
	if t == nil {
		return false
	}
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return t.active
}

// Deadline returns the clock time at which the timer becomes due.
func (t *Timer) Deadline() time.Time {
	return t.deadline
}

// fireDueTimers runs every due timer in deadline order. Timers scheduled by a
// callback are not considered until the next frame.
func fireDueTimers(timers []*Timer, now time.Time) {
	slices.SortFunc(timers, func(a, b *Timer) int {
		if c := a.deadline.Compare(b.deadline); c != 0 {
			return c
		}
		if a.seq < b.seq {
			return -1
		}
		return 1
	})
	for _, t := range timers {
		if now.Before(t.deadline) {
			continue
		}
		tickerMu.Lock()
		if !t.active {
			tickerMu.Unlock()
			continue
		}
		t.active = false
		delete(activeTimers, t)
		tickerMu.Unlock()
		if t.callback != nil {
			t.callback()
		}
	}
}
