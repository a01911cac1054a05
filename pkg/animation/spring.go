package animation

import "math"

// SpringDescription describes a damped spring.
type SpringDescription struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

// DampingRatio returns the spring's damping ratio; 1 is critically damped.
func (s SpringDescription) DampingRatio() float64 {
	return s.Damping / (2 * math.Sqrt(s.Stiffness*s.Mass))
}

// SnappySpring settles quickly without visible overshoot. Used for scroll
// snapping and the row closing over its action strip.
func SnappySpring() SpringDescription {
	return SpringDescription{Mass: 1, Stiffness: 400, Damping: 40}
}

// IOSSpring approximates the system overscroll bounce-back.
func IOSSpring() SpringDescription {
	return SpringDescription{Mass: 1, Stiffness: 170, Damping: 26}
}

// BouncySpring overshoots noticeably before settling.
func BouncySpring() SpringDescription {
	return SpringDescription{Mass: 1, Stiffness: 180, Damping: 12}
}

const (
	springPositionTolerance = 0.05
	springVelocityTolerance = 0.5
)

// SpringSimulation integrates a damped spring toward a target analytically,
// so the result does not depend on frame rate.
type SpringSimulation struct {
	spring   SpringDescription
	target   float64
	x0       float64
	v0       float64
	elapsed  float64
	position float64
	velocity float64
	done     bool
}

// NewSpringSimulation starts a spring at position with the given initial
// velocity, pulling toward target.
func NewSpringSimulation(spring SpringDescription, position, velocity, target float64) *SpringSimulation {
	s := &SpringSimulation{
		spring:   spring,
		target:   target,
		x0:       position - target,
		v0:       velocity,
		position: position,
		velocity: velocity,
	}
	s.done = s.atRest()
	if s.done {
		s.position = target
		s.velocity = 0
	}
	return s
}

// Step advances the simulation by dt seconds. Returns true once settled.
func (s *SpringSimulation) Step(dt float64) bool {
	if s.done {
		return true
	}
	s.elapsed += dt
	x, v := s.evaluate(s.elapsed)
	s.position = s.target + x
	s.velocity = v
	if s.atRest() {
		s.done = true
		s.position = s.target
		s.velocity = 0
	}
	return s.done
}

// Position returns the current position.
func (s *SpringSimulation) Position() float64 { return s.position }

// Velocity returns the current velocity in units per second.
func (s *SpringSimulation) Velocity() float64 { return s.velocity }

// Target returns the resting position.
func (s *SpringSimulation) Target() float64 { return s.target }

// IsDone reports whether the spring has settled.
func (s *SpringSimulation) IsDone() bool { return s.done }

func (s *SpringSimulation) atRest() bool {
	return math.Abs(s.position-s.target) < springPositionTolerance &&
		math.Abs(s.velocity) < springVelocityTolerance
}

// evaluate returns displacement from target and velocity at time t.
func (s *SpringSimulation) evaluate(t float64) (float64, float64) {
	m, k := s.spring.Mass, s.spring.Stiffness
	if m <= 0 || k <= 0 {
		return 0, 0
	}
	w := math.Sqrt(k / m)
	zeta := s.spring.DampingRatio()
	x0, v0 := s.x0, s.v0

	switch {
	case math.Abs(zeta-1) < 1e-6:
		c1 := x0
		c2 := v0 + w*x0
		e := math.Exp(-w * t)
		x := (c1 + c2*t) * e
		v := (c2 - w*(c1+c2*t)) * e
		return x, v
	case zeta < 1:
		wd := w * math.Sqrt(1-zeta*zeta)
		c1 := x0
		c2 := (v0 + zeta*w*x0) / wd
		e := math.Exp(-zeta * w * t)
		cos, sin := math.Cos(wd*t), math.Sin(wd*t)
		x := e * (c1*cos + c2*sin)
		v := e * ((c2*wd-zeta*w*c1)*cos - (c1*wd+zeta*w*c2)*sin)
		return x, v
	default:
		root := w * math.Sqrt(zeta*zeta-1)
		r1 := -zeta*w + root
		r2 := -zeta*w - root
		c1 := (v0 - r2*x0) / (r1 - r2)
		c2 := x0 - c1
		e1, e2 := math.Exp(r1*t), math.Exp(r2*t)
		x := c1*e1 + c2*e2
		v := c1*r1*e1 + c2*r2*e2
		return x, v
	}
}
