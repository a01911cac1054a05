package scroll

import "math"

// projectionTime is how far ahead a release velocity is projected when
// choosing a snap target.
const projectionTime = 0.15

// ViewAligned snaps to the target nearest the projected resting offset, so a
// quick flick past the midpoint still opens or closes the row.
func ViewAligned(targets ...float64) SnapFunc {
	snapTargets := append([]float64(nil), targets...)
	return func(offset, velocity float64) float64 {
		if len(snapTargets) == 0 {
			return offset
		}
		projected := offset + velocity*projectionTime
		best := snapTargets[0]
		for _, t := range snapTargets[1:] {
			if math.Abs(t-projected) < math.Abs(best-projected) {
				best = t
			}
		}
		return best
	}
}
