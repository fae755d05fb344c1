package spline

type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

// Eval evaluates the cubic at parameter t using three levels of de Casteljau
// interpolation.
//
// Unlike the polynomial form, de Casteljau returns P0 at t = 0 and P3 at t = 1
// exactly.
func (c CubicBez) Eval(t float64) Point {
	q0 := c.P0.Lerp(c.P1, t)
	q1 := c.P1.Lerp(c.P2, t)
	q2 := c.P2.Lerp(c.P3, t)
	r0 := q0.Lerp(q1, t)
	r1 := q1.Lerp(q2, t)
	return r0.Lerp(r1, t)
}

// Subdivide subdivides the cubic into halves at t = 0.5, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	q0 := c.P0.Midpoint(c.P1)
	q1 := c.P1.Midpoint(c.P2)
	q2 := c.P2.Midpoint(c.P3)
	r0 := q0.Midpoint(q1)
	r1 := q1.Midpoint(q2)
	s := r0.Midpoint(r1)
	return CubicBez{c.P0, q0, r0, s}, CubicBez{s, r1, q2, c.P3}
}

func (c CubicBez) Start() Point {
	return c.P0
}

func (c CubicBez) End() Point {
	return c.P3
}

// EvalBez evaluates the Bézier curve of degree len(pts)-1 at parameter t,
// performing len(pts)-1 levels of pairwise interpolation. It panics if pts is
// empty.
//
// The scratch buffer is allocated per call; use [EvalBezIndexed] to evaluate
// spans of a larger backing store without copying the operand list first.
func EvalBez(pts []Point, t float64) Point {
	tmp := make([]Point, len(pts))
	copy(tmp, pts)
	return evalBezInPlace(tmp, t)
}

// EvalBezIndexed evaluates the Bézier span of n points starting at index
// start in pts, where operand i is pts[(start+i) % len(pts)]. This is how
// closed chains evaluate the span that wraps past the end of the backing
// store: the working buffer holds interpolation state only, never a second
// copy of the chain.
func EvalBezIndexed(pts []Point, start, n int, t float64) Point {
	tmp := make([]Point, n)
	for i := range n {
		tmp[i] = pts[(start+i)%len(pts)]
	}
	return evalBezInPlace(tmp, t)
}

func evalBezInPlace(tmp []Point, t float64) Point {
	for level := len(tmp) - 1; level > 0; level-- {
		for i := range level {
			tmp[i] = tmp[i].Lerp(tmp[i+1], t)
		}
	}
	return tmp[0]
}
