package scroll

// Physics determines scroll behavior at the edges.
type Physics interface {
	ApplyPhysicsToUserOffset(position *Position, offset float64) float64
	ApplyBoundaryConditions(position *Position, value float64) float64
}

// ClampingPhysics clamps at edges.
type ClampingPhysics struct{}

// ApplyPhysicsToUserOffset returns the raw delta for clamping physics.
func (ClampingPhysics) ApplyPhysicsToUserOffset(_ *Position, offset float64) float64 {
	return offset
}

// ApplyBoundaryConditions clamps at the min/max extents.
func (ClampingPhysics) ApplyBoundaryConditions(position *Position, value float64) float64 {
	if value < position.min {
		return value - position.min
	}
	if value > position.max {
		return value - position.max
	}
	return 0
}

// BouncingPhysics adds resistance past the edges.
type BouncingPhysics struct{}

// ApplyPhysicsToUserOffset reduces delta when overscrolling.
func (BouncingPhysics) ApplyPhysicsToUserOffset(position *Position, offset float64) float64 {
	if (position.offset <= position.min && offset < 0) || (position.offset >= position.max && offset > 0) {
		overscroll := 0.0
		if position.offset < position.min {
			overscroll = position.min - position.offset
		} else if position.offset > position.max {
			overscroll = position.offset - position.max
		}
		fraction := overscroll / position.viewportExtent()
		// Progressive resistance near edges for a rubber-band feel.
		resistance := 1.0 / (1.0 + 2.4*fraction)
		if resistance < 0.12 {
			resistance = 0.12
		}
		return offset * resistance
	}
	return offset
}

// ApplyBoundaryConditions never rejects movement; clampOffset bounds it.
func (BouncingPhysics) ApplyBoundaryConditions(_ *Position, _ float64) float64 {
	return 0
}

func isBouncing(physics Physics) bool {
	_, ok := physics.(BouncingPhysics)
	return ok
}
