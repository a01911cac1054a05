package scroll

import (
	"math"
	"sync"
	"time"

	"github.com/go-drift/swipeactions/pkg/animation"
)

const defaultEaseDuration = 300 * time.Millisecond

type ballisticKind int

const (
	ballisticFling ballisticKind = iota
	ballisticSpring
	ballisticEase
)

type ballisticState struct {
	kind     ballisticKind
	position *Position
	velocity float64
	lastTime time.Time
	spring   *animation.SpringSimulation

	// eased motion
	start    time.Time
	from     float64
	to       float64
	duration time.Duration
	curve    func(float64) float64
}

func newFlingState(position *Position, velocity float64) *ballisticState {
	return &ballisticState{
		kind:     ballisticFling,
		position: position,
		velocity: velocity,
		lastTime: animation.Now(),
	}
}

func newSpringState(position *Position, spring animation.SpringDescription, velocity, target float64) *ballisticState {
	return &ballisticState{
		kind:     ballisticSpring,
		position: position,
		velocity: velocity,
		lastTime: animation.Now(),
		spring:   animation.NewSpringSimulation(spring, position.offset, velocity, target),
	}
}

func newEaseState(position *Position, target float64, duration time.Duration, curve func(float64) float64) *ballisticState {
	now := animation.Now()
	return &ballisticState{
		kind:     ballisticEase,
		position: position,
		lastTime: now,
		start:    now,
		from:     position.offset,
		to:       target,
		duration: duration,
		curve:    curve,
	}
}

func (b *ballisticState) step(now time.Time) bool {
	if b.kind == ballisticEase {
		return b.stepEase(now)
	}
	if now.Before(b.lastTime) {
		b.lastTime = now
		return false
	}
	dt := now.Sub(b.lastTime).Seconds()
	b.lastTime = now
	if dt <= 0 {
		return false
	}
	// Integrate in small slices so a stalled frame does not skip the motion
	// while the result stays independent of the frame rate.
	const maxDt = 1.0 / 120
	done := false
	for dt > 0 && !done {
		slice := math.Min(dt, maxDt)
		dt -= slice
		done = b.advance(slice)
	}
	b.position.notify()
	return done
}

func (b *ballisticState) stepEase(now time.Time) bool {
	pos := b.position
	progress := 1.0
	if b.duration > 0 {
		progress = float64(now.Sub(b.start)) / float64(b.duration)
	}
	if progress >= 1 {
		pos.offset = b.to
		pos.notify()
		return true
	}
	if progress < 0 {
		progress = 0
	}
	eased := progress
	if b.curve != nil {
		eased = b.curve(progress)
	}
	pos.offset = b.from + (b.to-b.from)*eased
	pos.notify()
	return false
}

func (b *ballisticState) advance(dt float64) bool {
	pos := b.position
	if b.spring != nil {
		done := b.spring.Step(dt)
		pos.offset = b.spring.Position()
		b.velocity = b.spring.Velocity()
		return done
	}

	// Crossed an edge while coasting with bouncing physics: spring back.
	if isOverscrolled(pos) && isBouncing(pos.physics) {
		b.spring = animation.NewSpringSimulation(
			animation.IOSSpring(),
			pos.offset,
			b.velocity,
			clamp(pos.offset, pos.min, pos.max),
		)
		return b.advance(dt)
	}

	velocity := b.velocity
	decel := 2200.0 + 0.385*math.Abs(velocity)
	if velocity > 0 {
		velocity = math.Max(0, velocity-decel*dt)
	} else if velocity < 0 {
		velocity = math.Min(0, velocity+decel*dt)
	}
	b.velocity = velocity
	pos.offset = pos.clampOffset(pos.offset+velocity*dt, isBouncing(pos.physics))

	return math.Abs(velocity) < minFlingVelocity
}

var ballisticMu sync.Mutex
var ballisticPositions = make(map[*Position]struct{})

func registerBallistic(position *Position) {
	ballisticMu.Lock()
	ballisticPositions[position] = struct{}{}
	ballisticMu.Unlock()
}

func unregisterBallistic(position *Position) {
	ballisticMu.Lock()
	delete(ballisticPositions, position)
	ballisticMu.Unlock()
}

// HasActiveBallistics returns true if any scroll simulations are running.
func HasActiveBallistics() bool {
	ballisticMu.Lock()
	defer ballisticMu.Unlock()
	return len(ballisticPositions) > 0
}

// StepBallistics advances any active scroll simulations.
// This should be called once per frame from the frame loop.
func StepBallistics() {
	ballisticMu.Lock()
	if len(ballisticPositions) == 0 {
		ballisticMu.Unlock()
		return
	}
	now := animation.Now()
	positions := make([]*Position, 0, len(ballisticPositions))
	for position := range ballisticPositions {
		positions = append(positions, position)
	}
	ballisticMu.Unlock()

	for _, position := range positions {
		state := position.ballistic
		if state == nil {
			continue
		}
		if state.step(now) && position.ballistic == state {
			position.StopBallistic()
		}
	}
}
