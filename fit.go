package spline

// Schneider least-squares fitting of an ordered point sequence, as used for
// turning freehand strokes into clean spline data.

const (
	// Upper bound on Newton–Raphson reparameterization passes per candidate
	// cubic before splitting the point range instead.
	maxReparamIterations = 4
)

// FitPoints fits a spline to an ordered point sequence so that the fitted
// curve deviates from every input point by at most tolerance.
//
// Tangent directions at the two ends are estimated from the immediate
// neighbors; each point is assigned a parameter by normalized cumulative
// chord length; a single cubic is then solved by least squares for the two
// handle lengths. If the fit is out of tolerance after a bounded number of
// Newton–Raphson reparameterization passes, the sequence is split at the
// point of maximum deviation and each half fitted recursively. Knots at split
// points are stored as [Corner]; callers may smooth them afterwards.
//
// Degenerate input (coincident points defeating tangent estimation, or a
// singular least-squares system) degrades to straight-line segments rather
// than failing: an interactive tool needs some usable curve. The only errors
// are a non-positive tolerance and fewer than two input points.
func FitPoints(points []Point, tolerance float64) (*Spline, error) {
	if tolerance <= 0 {
		return nil, ErrInvalidArgument
	}
	if len(points) < 2 {
		return nil, ErrInsufficientData
	}
	tHat1, ok1 := startTangent(points)
	tHat2, ok2 := endTangent(points)
	var cubics []CubicBez
	if !ok1 || !ok2 {
		// All useful direction information is gone; the best remaining
		// answer is the chord itself.
		logger().Debug("fit: degenerate tangents, falling back to chord",
			"points", len(points))
		cubics = []CubicBez{lineCubic(points[0], points[len(points)-1])}
	} else {
		cubics = fitCubic(points, tHat1, tHat2, tolerance)
	}
	return assembleSpline(cubics), nil
}

// FitChain fits points like [FitPoints] and projects the result into chain
// form. Chain spans hold a single control between junctures, so each fitted
// cubic is degree-reduced to the quadratic with control
// (3(P1+P2) − P0 − P3)/4, the midpoint approximation classically used for
// cubic-to-quadratic conversion. The projection trades some fidelity for the
// chain's flat alternating layout.
func FitChain(points []Point, tolerance float64) (*PointChain, error) {
	s, err := FitPoints(points, tolerance)
	if err != nil {
		return nil, err
	}
	c := NewPointChain()
	for i, k := range s.Knots() {
		if i == 0 {
			c.pts = append(c.pts, k.Pos)
			c.overrides = append(c.overrides, ForceJuncture)
			c.conts = append(c.conts, k.Cont)
			continue
		}
		seg, _ := s.Segment(i - 1)
		q := Vec2(seg.P1).Add(Vec2(seg.P2)).Mul(3).
			Sub(Vec2(seg.P0)).Sub(Vec2(seg.P3)).Mul(1.0 / 4.0)
		c.pts = append(c.pts, Point(q), k.Pos)
		c.overrides = append(c.overrides, ForceControl, ForceJuncture)
		c.conts = append(c.conts, Smooth, k.Cont)
	}
	return c, nil
}

// fitCubic fits the point range with one cubic if it can, recursively
// splitting at the point of maximum deviation if it cannot. tHat1 and tHat2
// are unit tangents at the two ends, both pointing into the range.
func fitCubic(pts []Point, tHat1, tHat2 Vec2, tolerance float64) []CubicBez {
	// Two points: no interior evidence, use the chord heuristic directly.
	if len(pts) == 2 {
		return []CubicBez{heuristicCubic(pts[0], pts[len(pts)-1], tHat1, tHat2)}
	}

	u := chordLengthParams(pts)
	bez := generateBezier(pts, u, tHat1, tHat2)
	maxErr, split := computeMaxError(pts, bez, u)
	if maxErr <= tolerance {
		return []CubicBez{bez}
	}

	// Refine each point's parameter toward the nearest point on the current
	// fit, then re-solve. Often rescues a fit whose chord-length
	// parameterization was merely a poor initial guess.
	for range maxReparamIterations {
		u = reparameterize(pts, bez, u)
		bez = generateBezier(pts, u, tHat1, tHat2)
		maxErr, split = computeMaxError(pts, bez, u)
		if maxErr <= tolerance {
			return []CubicBez{bez}
		}
	}

	logger().Debug("fit: splitting point range",
		"points", len(pts), "split", split, "err", maxErr)

	tHatCenter, ok := centerTangent(pts, split)
	if !ok {
		// Coincident neighbors around the split; aim along the chord ends
		// instead so recursion still makes progress.
		tHatCenter = pts[split].Sub(pts[len(pts)-1]).Normalize()
		if tHatCenter.IsNaN() {
			tHatCenter = tHat1.Negate()
		}
	}
	left := fitCubic(pts[:split+1], tHat1, tHatCenter, tolerance)
	right := fitCubic(pts[split:], tHatCenter.Negate(), tHat2, tolerance)
	return append(left, right...)
}

// generateBezier solves the least-squares system for the two handle lengths
// given fixed end tangents and per-point parameters.
func generateBezier(pts []Point, u []float64, tHat1, tHat2 Vec2) CubicBez {
	first := pts[0]
	last := pts[len(pts)-1]

	var c00, c01, c11, x0, x1 float64
	for i, ui := range u {
		b0, b1, b2, b3 := bernstein3(ui)
		a0 := tHat1.Mul(b1)
		a1 := tHat2.Mul(b2)
		c00 += a0.Dot(a0)
		c01 += a0.Dot(a1)
		c11 += a1.Dot(a1)
		base := Vec2(first).Mul(b0 + b1).Add(Vec2(last).Mul(b2 + b3))
		tmp := Vec2(pts[i]).Sub(base)
		x0 += a0.Dot(tmp)
		x1 += a1.Dot(tmp)
	}
	detC0C1 := c00*c11 - c01*c01
	detC0X := c00*x1 - c01*x0
	detXC1 := x0*c11 - x1*c01

	var alphaL, alphaR float64
	if detC0C1 != 0 {
		alphaL = detXC1 / detC0C1
		alphaR = detC0X / detC0C1
	}

	// A singular system, or alphas that are negative or vanishingly small,
	// mean the least-squares answer is unusable (typically collinear
	// near-duplicate points). Fall back to the Wu/Barsky heuristic of
	// placing both handles at a third of the chord length.
	segLength := first.Distance(last)
	epsilon := 1e-6 * segLength
	if alphaL < epsilon || alphaR < epsilon {
		return heuristicCubic(first, last, tHat1, tHat2)
	}
	return CubicBez{
		P0: first,
		P1: first.Translate(tHat1.Mul(alphaL)),
		P2: last.Translate(tHat2.Mul(alphaR)),
		P3: last,
	}
}

// heuristicCubic places both handles a third of the chord length along the
// end tangents. Used for two-point ranges and as the degenerate-system
// fallback; for NaN tangents it degrades further to the bare chord.
func heuristicCubic(first, last Point, tHat1, tHat2 Vec2) CubicBez {
	if tHat1.IsNaN() || tHat2.IsNaN() {
		return lineCubic(first, last)
	}
	dist := first.Distance(last) / 3.0
	return CubicBez{
		P0: first,
		P1: first.Translate(tHat1.Mul(dist)),
		P2: last.Translate(tHat2.Mul(dist)),
		P3: last,
	}
}

// lineCubic returns the chord from first to last as a cubic with handles at
// the third points, which flattens back to exactly its endpoints.
func lineCubic(first, last Point) CubicBez {
	return CubicBez{
		P0: first,
		P1: first.Lerp(last, 1.0/3.0),
		P2: first.Lerp(last, 2.0/3.0),
		P3: last,
	}
}

// chordLengthParams assigns each point a parameter by cumulative chord
// length, normalized to [0, 1]. If all points coincide the parameters
// degenerate to zero; callers handle that through the fallback paths.
func chordLengthParams(pts []Point) []float64 {
	u := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		u[i] = u[i-1] + pts[i].Distance(pts[i-1])
	}
	total := u[len(u)-1]
	if total > 0 {
		for i := range u {
			u[i] /= total
		}
	}
	return u
}

// reparameterize refines each point's parameter with one Newton–Raphson step
// toward the nearest point on bez.
func reparameterize(pts []Point, bez CubicBez, u []float64) []float64 {
	uPrime := make([]float64, len(u))
	for i := range u {
		uPrime[i] = newtonRaphsonStep(bez, pts[i], u[i])
	}
	return uPrime
}

// newtonRaphsonStep improves the parameter u for point p on bez by one root
// finding step on f(u) = (Q(u)−p)·Q'(u).
func newtonRaphsonStep(bez CubicBez, p Point, u float64) float64 {
	q := bez.Eval(u)

	// First and second derivative control nets.
	q1 := [3]Vec2{
		bez.P1.Sub(bez.P0).Mul(3),
		bez.P2.Sub(bez.P1).Mul(3),
		bez.P3.Sub(bez.P2).Mul(3),
	}
	q2 := [2]Vec2{
		q1[1].Sub(q1[0]).Mul(2),
		q1[2].Sub(q1[1]).Mul(2),
	}
	d1 := q1[0].Mul((1 - u) * (1 - u)).
		Add(q1[1].Mul(2 * (1 - u) * u)).
		Add(q1[2].Mul(u * u))
	d2 := q2[0].Mul(1 - u).Add(q2[1].Mul(u))

	diff := q.Sub(p)
	numerator := diff.Dot(d1)
	denominator := d1.Dot(d1) + diff.Dot(d2)
	if denominator == 0 {
		return u
	}
	return u - numerator/denominator
}

// computeMaxError returns the maximum deviation between the input points and
// the fitted cubic sampled at each point's parameter, and the index to split
// at if the fit is rejected.
func computeMaxError(pts []Point, bez CubicBez, u []float64) (float64, int) {
	maxDist := 0.0
	split := len(pts) / 2
	for i := 1; i < len(pts)-1; i++ {
		d := bez.Eval(u[i]).Distance(pts[i])
		if d > maxDist {
			maxDist = d
			split = i
		}
	}
	return maxDist, split
}

// startTangent estimates the unit tangent at the first point from its nearest
// distinct neighbor. Reports false if every point coincides with the first.
func startTangent(pts []Point) (Vec2, bool) {
	for i := 1; i < len(pts); i++ {
		v := pts[i].Sub(pts[0])
		if v.Hypot() >= coincidentEpsilon {
			return v.Normalize(), true
		}
	}
	return Vec2{}, false
}

// endTangent is startTangent at the other end, pointing back into the range.
func endTangent(pts []Point) (Vec2, bool) {
	last := len(pts) - 1
	for i := last - 1; i >= 0; i-- {
		v := pts[i].Sub(pts[last])
		if v.Hypot() >= coincidentEpsilon {
			return v.Normalize(), true
		}
	}
	return Vec2{}, false
}

// centerTangent estimates the tangent at an interior split point from its two
// neighbors. The result points into the left half; the right half uses its
// negation, so the two sub-fits share opposed tangents at the split.
func centerTangent(pts []Point, center int) (Vec2, bool) {
	v := pts[center-1].Sub(pts[center+1])
	if v.Hypot() < coincidentEpsilon {
		return Vec2{}, false
	}
	return v.Normalize(), true
}

func bernstein3(t float64) (float64, float64, float64, float64) {
	u := 1 - t
	return u * u * u, 3 * u * u * t, 3 * u * t * t, t * t * t
}

// assembleSpline turns a run of end-to-end cubics into knot form. All knots
// are stored as [Corner]: split points are corners per the fit contract, and
// the end knots carry a zero-length outer handle that a later switch to
// [Smooth] would collapse the real handle against. Callers smooth knots
// explicitly when they want to.
func assembleSpline(cubics []CubicBez) *Spline {
	s := &Spline{}
	for i, c := range cubics {
		if i == 0 {
			s.knots = append(s.knots, Knot{
				Pos:        c.P0,
				HandlePrev: c.P0,
				HandleNext: c.P1,
				Cont:       Corner,
			})
		} else {
			s.knots[len(s.knots)-1].HandleNext = c.P1
		}
		s.knots = append(s.knots, Knot{
			Pos:        c.P3,
			HandlePrev: c.P2,
			HandleNext: c.P3,
			Cont:       Corner,
		})
	}
	return s
}
