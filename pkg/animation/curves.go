package animation

import (
	"fmt"
	"math"
)

// Category groups motion into the two feels the swipe row uses: eased
// transitions (list insert/remove) and spring snaps (scroll settling).
type Category int

const (
	// CategoryEase animates with a cubic-bezier curve over a fixed duration.
	CategoryEase Category = iota
	// CategorySnap animates with a critically damped spring.
	CategorySnap
)

func (c Category) String() string {
	switch c {
	case CategoryEase:
		return "ease"
	case CategorySnap:
		return "snap"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// ParseCategory parses "ease" or "snap".
func ParseCategory(s string) (Category, error) {
	switch s {
	case "ease":
		return CategoryEase, nil
	case "snap", "snappy":
		return CategorySnap, nil
	default:
		return 0, fmt.Errorf("unknown animation category %q", s)
	}
}

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 {
	return t
}

// Ease is a standard cubic bezier curve for general-purpose easing.
// Equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut starts and ends slowly. The list uses it for row insert/remove.
var EaseInOut = CubicBezier(0.42, 0.0, 0.58, 1.0)

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
// The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most values.
		for range 8 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Bisection fallback keeps the solution in [0,1].
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 24 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
