package microvoxel

import "math"

// IVec2 is an integer screen-space point. The occlusion mask's edge
// functions are evaluated entirely in integer arithmetic (spec.md 4.1: the
// reference bounds screen-vertex components to +/-16383 to keep the 2x2
// determinants from overflowing), so projected cube corners are rounded to
// IVec2 as soon as they leave the projection step.
type IVec2 struct {
	X, Y int
}

// Sub returns the difference of two points as a displacement.
func (p IVec2) Sub(q IVec2) IVec2 {
	return IVec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// roundHalfAwayFromZero implements the rounding rule spec.md's
// "Floating-point" section requires for the projection step: round to the
// nearest integer, ties breaking away from zero. Go's math.Round already
// implements exactly this rule; the wrapper only names it so the
// calculator's intent is explicit at the call site.
func roundHalfAwayFromZero(v float64) int {
	return int(math.Round(v))
}
