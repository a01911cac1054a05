package gestures

import (
	"time"

	"github.com/go-drift/swipeactions/pkg/graphics"
)

// velocityWindow bounds how old a sample may be to contribute to the estimate.
const velocityWindow = 100 * time.Millisecond

type velocitySample struct {
	position graphics.Offset
	time     time.Time
}

// VelocityTracker estimates pointer velocity from recent samples.
type VelocityTracker struct {
	samples []velocitySample
}

// AddSample records a pointer position at time t.
func (v *VelocityTracker) AddSample(t time.Time, position graphics.Offset) {
	v.samples = append(v.samples, velocitySample{position: position, time: t})
	cutoff := t.Add(-velocityWindow)
	drop := 0
	for drop < len(v.samples)-1 && v.samples[drop].time.Before(cutoff) {
		drop++
	}
	v.samples = v.samples[drop:]
}

// Velocity returns the estimated velocity in units per second.
func (v *VelocityTracker) Velocity() graphics.Offset {
	if len(v.samples) < 2 {
		return graphics.Offset{}
	}
	first := v.samples[0]
	last := v.samples[len(v.samples)-1]
	dt := last.time.Sub(first.time).Seconds()
	if dt <= 0 {
		return graphics.Offset{}
	}
	return graphics.Offset{
		X: (last.position.X - first.position.X) / dt,
		Y: (last.position.Y - first.position.Y) / dt,
	}
}

// Reset discards all samples.
func (v *VelocityTracker) Reset() {
	v.samples = v.samples[:0]
}
