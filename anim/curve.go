// SPDX-License-Identifier: Unlicense OR MIT

package anim

// Curve maps linear progress in [0, 1] to eased progress.
type Curve func(t float32) float32

var (
	// EaseInOut starts and ends slowly.
	EaseInOut = Bezier(0.42, 0, 0.58, 1)
	// EaseOut starts quickly and settles slowly.
	EaseOut = Bezier(0, 0, 0.58, 1)
)

// Linear is the identity curve.
func Linear(t float32) float32 { return t }

// Bezier returns the timing curve of the cubic Bézier with end points
// (0, 0) and (1, 1) and the given control points.
func Bezier(x1, y1, x2, y2 float32) Curve {
	// Polynomial coefficients.
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float32) float32 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float32) float32 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float32) float32 { return (3*ax*s+2*bx)*s + cx }

	const epsilon = 1e-5
	solve := func(x float32) float32 {
		// Newton's method first.
		s := x
		for i := 0; i < 8; i++ {
			d := sampleX(s) - x
			if abs(d) < epsilon {
				return s
			}
			dx := slopeX(s)
			if abs(dx) < 1e-6 {
				break
			}
			s -= d / dx
		}
		// Fall back to bisection.
		lo, hi := float32(0), float32(1)
		s = x
		for i := 0; i < 32 && lo < hi; i++ {
			v := sampleX(s)
			if abs(v-x) < epsilon {
				break
			}
			if x > v {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return s
	}
	return func(t float32) float32 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		return sampleY(solve(t))
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
