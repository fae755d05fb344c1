package spline

// Adaptive subdivision stops at this depth even if the flatness test has not
// been met, bounding both recursion and output size.
const maxSubdivideDepth = 16

// Flatten tessellates the whole spline into a polyline whose deviation from
// the true curve stays within tolerance. The result always starts at the first
// knot's position and ends at the last knot's, with interior points only where
// curvature demands them: a perfectly straight segment contributes just its
// two endpoints.
//
// Flatten requires a positive tolerance and at least two knots, and does not
// modify the spline.
func (s *Spline) Flatten(tolerance float64) ([]Point, error) {
	if tolerance <= 0 {
		return nil, ErrInvalidArgument
	}
	if len(s.knots) < 2 {
		return nil, ErrInsufficientData
	}
	out := []Point{s.knots[0].Pos}
	for i := range len(s.knots) - 1 {
		seg, _ := s.Segment(i)
		out = flattenRec(seg, tolerance, out, 0)
	}
	return out, nil
}

// flattenRec appends the polyline approximation of c, excluding c.P0, to out.
//
// The flatness metric is the distance between the curve midpoint and the
// chord midpoint. It goes to zero as the segment approaches a straight line,
// which is what tessellation for display cares about.
func flattenRec(c CubicBez, tolerance float64, out []Point, depth int) []Point {
	mid := c.Eval(0.5)
	chordMid := c.P0.Midpoint(c.P3)
	if mid.Distance(chordMid) <= tolerance || depth >= maxSubdivideDepth {
		return append(out, c.P3)
	}
	left, right := c.Subdivide()
	out = flattenRec(left, tolerance, out, depth+1)
	return flattenRec(right, tolerance, out, depth+1)
}
