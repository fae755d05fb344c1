package spline

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCubicBezEvalEndpoints(t *testing.T) {
	c := CubicBez{Pt(0.25, -1.5), Pt(2.0, 4.0), Pt(-3.0, 0.5), Pt(7.125, 2.25)}
	if got := c.Eval(0); got != c.P0 {
		t.Errorf("Eval(0) = %v, want %v exactly", got, c.P0)
	}
	if got := c.Eval(1); got != c.P3 {
		t.Errorf("Eval(1) = %v, want %v exactly", got, c.P3)
	}
	if c.Start() != c.P0 || c.End() != c.P3 {
		t.Error("Start/End must return the outer control points")
	}
}

func TestCubicBezEvalAgainstPolynomial(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(1, 2), Pt(3, 3), Pt(4, 0)}
	poly := func(t float64) Point {
		u := 1 - t
		x := u*u*u*c.P0.X + 3*u*u*t*c.P1.X + 3*u*t*t*c.P2.X + t*t*t*c.P3.X
		y := u*u*u*c.P0.Y + 3*u*u*t*c.P1.Y + 3*u*t*t*c.P2.Y + t*t*t*c.P3.Y
		return Pt(x, y)
	}
	const n = 16
	for i := range n + 1 {
		ts := float64(i) / float64(n)
		if d := c.Eval(ts).Distance(poly(ts)); d > 1e-12 {
			t.Errorf("t=%g: de Casteljau and polynomial form differ by %g", ts, d)
		}
	}
}

func TestCubicBezSubdivide(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(1, 2), Pt(3, 3), Pt(4, 0)}
	left, right := c.Subdivide()
	if left.P0 != c.P0 || right.P3 != c.P3 {
		t.Fatal("subdivision does not preserve endpoints")
	}
	if left.P3 != right.P0 {
		t.Fatal("halves do not meet")
	}
	const n = 8
	for i := range n + 1 {
		ts := float64(i) / float64(n)
		if d := left.Eval(ts).Distance(c.Eval(ts / 2)); d > 1e-12 {
			t.Errorf("left half deviates by %g at t=%g", d, ts)
		}
		if d := right.Eval(ts).Distance(c.Eval(0.5 + ts/2)); d > 1e-12 {
			t.Errorf("right half deviates by %g at t=%g", d, ts)
		}
	}
}

func TestEvalBezMatchesCubic(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(1, 2), Pt(3, 3), Pt(4, 0)}
	pts := []Point{c.P0, c.P1, c.P2, c.P3}
	for i := range 11 {
		ts := float64(i) / 10
		if d := EvalBez(pts, ts).Distance(c.Eval(ts)); d > 1e-12 {
			t.Errorf("EvalBez deviates from cubic by %g at t=%g", d, ts)
		}
	}
}

func TestEvalBezLowDegrees(t *testing.T) {
	// Degree 0: constant.
	if got := EvalBez([]Point{Pt(2, 3)}, 0.7); got != Pt(2, 3) {
		t.Errorf("got %v, want (2, 3)", got)
	}
	// Degree 1: plain lerp.
	got := EvalBez([]Point{Pt(0, 0), Pt(10, 4)}, 0.25)
	diff(t, Pt(2.5, 1), got, cmpopts.EquateApprox(0, 1e-12))
}

func TestEvalBezIndexedWraparound(t *testing.T) {
	ring := []Point{Pt(0, 0), Pt(1, 1), Pt(2, 0), Pt(1, -1)}
	// The span 2,3,0 wraps past the end of the backing store.
	want := EvalBez([]Point{Pt(2, 0), Pt(1, -1), Pt(0, 0)}, 0.375)
	got := EvalBezIndexed(ring, 2, 3, 0.375)
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEvalBezIndexedDoesNotMutate(t *testing.T) {
	ring := []Point{Pt(0, 0), Pt(1, 1), Pt(2, 0)}
	orig := append([]Point(nil), ring...)
	EvalBezIndexed(ring, 1, 3, 0.5)
	diff(t, orig, ring)
}

func TestEvalBezStraightLine(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0)}
	for i := range 11 {
		ts := float64(i) / 10
		p := EvalBez(pts, ts)
		if math.Abs(p.Y) > 1e-15 {
			t.Errorf("straight span should stay on the line, got y=%g", p.Y)
		}
	}
}
