package animation

// Tween maps controller progress onto a range of T.
type Tween[T any] struct {
	Begin, End T
	Lerp       func(a, b T, t float64) T
}

// Evaluate returns the value at progress t. Progress outside [0, 1] is
// clamped; a tween without Lerp jumps straight to End.
func (tw Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, max(0, min(t, 1)))
}

// At evaluates the tween at the controller's current value.
func (tw Tween[T]) At(c *AnimationController) T {
	return tw.Evaluate(c.Value)
}

// LerpFloat64 interpolates linearly from a to b.
func LerpFloat64(a, b, t float64) float64 {
	return a + (b-a)*t
}

// TweenFloat64 returns a float64 tween from begin to end.
func TweenFloat64(begin, end float64) Tween[float64] {
	return Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}
