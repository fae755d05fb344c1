package spline

import (
	"iter"
	"slices"
)

// Knot is an on-curve point of a [Spline] together with its two off-curve
// handles. HandlePrev is the incoming control, shared with the segment ending
// at this knot; HandleNext is the outgoing control, shared with the segment
// starting at it.
//
// Whenever Cont is not [Corner], HandlePrev−Pos and HandleNext−Pos are
// anti-parallel (and of equal magnitude under [Symmetric]) to within floating
// tolerance. The [Spline] mutators re-establish this after every change; code
// that assembles Knot values by hand is responsible for it itself.
type Knot struct {
	Pos        Point
	HandlePrev Point
	HandleNext Point
	Cont       Continuity
}

// Spline is an ordered sequence of knots. Segment i, for 0 ≤ i < Len()-1, is
// the cubic with control points
//
//	knot[i].Pos, knot[i].HandleNext, knot[i+1].HandlePrev, knot[i+1].Pos
//
// A spline with fewer than 2 knots has no evaluable segments. The zero value
// is an empty spline ready for use.
type Spline struct {
	knots []Knot
}

// AddKnot appends a knot at pt. Its handles default to coincident with the
// position and its continuity to [Smooth].
func (s *Spline) AddKnot(pt Point) {
	s.knots = append(s.knots, Knot{
		Pos:        pt,
		HandlePrev: pt,
		HandleNext: pt,
		Cont:       Smooth,
	})
}

// Len returns the number of knots.
func (s *Spline) Len() int {
	return len(s.knots)
}

// KnotAt returns a copy of the knot at index i. Mutate through the Spline
// methods, or via [Spline.SetKnot], so the continuity invariant is repaired.
func (s *Spline) KnotAt(i int) (Knot, error) {
	if i < 0 || i >= len(s.knots) {
		return Knot{}, ErrOutOfBounds
	}
	return s.knots[i], nil
}

// SetKnot replaces the knot at index i and re-aligns its handles according to
// its continuity.
func (s *Spline) SetKnot(i int, k Knot) error {
	if i < 0 || i >= len(s.knots) {
		return ErrOutOfBounds
	}
	alignHandles(&k)
	s.knots[i] = k
	return nil
}

// RemoveKnot removes the knot at index i, shifting later knots down by one.
func (s *Spline) RemoveKnot(i int) error {
	if i < 0 || i >= len(s.knots) {
		return ErrOutOfBounds
	}
	s.knots = slices.Delete(s.knots, i, i+1)
	return nil
}

// SetContinuity sets the continuity constraint of knot i. For [Smooth] and
// [Symmetric], HandlePrev is adjusted to oppose HandleNext; [Corner] leaves
// both handles untouched.
func (s *Spline) SetContinuity(i int, c Continuity) error {
	if i < 0 || i >= len(s.knots) {
		return ErrOutOfBounds
	}
	k := &s.knots[i]
	k.Cont = c
	alignHandles(k)
	return nil
}

// MoveKnot translates knot i and both of its handles by delta. Translation
// preserves handle parallelism, so no continuity repair is needed.
func (s *Spline) MoveKnot(i int, delta Vec2) error {
	if i < 0 || i >= len(s.knots) {
		return ErrOutOfBounds
	}
	k := &s.knots[i]
	k.Pos = k.Pos.Translate(delta)
	k.HandlePrev = k.HandlePrev.Translate(delta)
	k.HandleNext = k.HandleNext.Translate(delta)
	return nil
}

// SetHandleNext moves the outgoing handle of knot i to pt. Under [Smooth] or
// [Symmetric], HandlePrev follows to keep the handles anti-parallel.
func (s *Spline) SetHandleNext(i int, pt Point) error {
	if i < 0 || i >= len(s.knots) {
		return ErrOutOfBounds
	}
	k := &s.knots[i]
	k.HandleNext = pt
	alignHandles(k)
	return nil
}

// SetHandlePrev moves the incoming handle of knot i to pt. Under [Smooth] or
// [Symmetric], HandleNext follows to keep the handles anti-parallel.
func (s *Spline) SetHandlePrev(i int, pt Point) error {
	if i < 0 || i >= len(s.knots) {
		return ErrOutOfBounds
	}
	k := &s.knots[i]
	k.HandlePrev = pt
	alignHandlesReverse(k)
	return nil
}

// Segment returns the cubic for segment i. It requires at least two knots and
// 0 ≤ i < Len()-1.
func (s *Spline) Segment(i int) (CubicBez, error) {
	if len(s.knots) < 2 {
		return CubicBez{}, ErrInsufficientData
	}
	if i < 0 || i >= len(s.knots)-1 {
		return CubicBez{}, ErrOutOfBounds
	}
	k0 := s.knots[i]
	k1 := s.knots[i+1]
	return CubicBez{k0.Pos, k0.HandleNext, k1.HandlePrev, k1.Pos}, nil
}

// Eval evaluates segment i at parameter t ∈ [0, 1].
func (s *Spline) Eval(i int, t float64) (Point, error) {
	seg, err := s.Segment(i)
	if err != nil {
		return Point{}, err
	}
	return seg.Eval(t), nil
}

// Bounds returns the axis-aligned bounding box of the control hull: every
// knot position and every handle position. It requires at least one knot.
//
// The hull box contains the curve, though it is not necessarily tight.
func (s *Spline) Bounds() (Rect, error) {
	if len(s.knots) == 0 {
		return Rect{}, ErrInsufficientData
	}
	r := NewRectFromPoints(s.knots[0].Pos, s.knots[0].Pos)
	for _, k := range s.knots {
		r = r.UnionPoint(k.Pos)
		r = r.UnionPoint(k.HandlePrev)
		r = r.UnionPoint(k.HandleNext)
	}
	return r, nil
}

// Clone returns a deep copy of the spline.
func (s *Spline) Clone() *Spline {
	return &Spline{knots: slices.Clone(s.knots)}
}

// Knots iterates over the knots in index order. The yielded values are
// copies.
func (s *Spline) Knots() iter.Seq2[int, Knot] {
	return slices.All(s.knots)
}
