package spline

import (
	"iter"
	"slices"
)

// JunctureOverride is the per-point role override of a [PointChain] point,
// resolved against the chain's global mode at read time. Keeping the stored
// flag a tri-state, and resolving it in exactly one place
// ([PointChain.IsJuncture]), is what keeps the global default and per-point
// state from drifting apart.
type JunctureOverride int

const (
	// Inherit resolves to the chain's global mode.
	Inherit JunctureOverride = iota
	// ForceJuncture marks the point on-curve regardless of the global mode.
	ForceJuncture
	// ForceControl marks the point off-curve regardless of the global mode.
	ForceControl
)

func (o JunctureOverride) String() string {
	switch o {
	case Inherit:
		return "Inherit"
	case ForceJuncture:
		return "ForceJuncture"
	case ForceControl:
		return "ForceControl"
	default:
		return "invalid"
	}
}

// Span is a maximal run of chain points between two consecutive junctures,
// inclusive. Start indexes the opening juncture; N is the number of points in
// the span. On a closed chain a span may wrap past the end of the backing
// store, in which case point i of the span is chain point (Start+i) mod Len.
type Span struct {
	Start int
	N     int
}

// PointChain is the flat, topology-aware curve representation used during
// interactive editing: an ordered point sequence whose on-curve/off-curve
// roles are derived per point, an open/closed flag, and a global default role
// for newly placed endpoints ("chain mode").
//
// An open chain holds 1 or an odd number of points (endpoint,
// [control, endpoint]...); its first and last points are always junctures. A
// closed chain holds an even number: the final point is the control closing
// back to point 0, which is never duplicated.
type PointChain struct {
	pts       []Point
	overrides []JunctureOverride
	conts     []Continuity // read at junctures only
	closed    bool
	chainMode bool
	selected  int
}

// NewPointChain returns an empty open chain with chain mode enabled and no
// selection.
func NewPointChain() *PointChain {
	return &PointChain{
		chainMode: true,
		selected:  -1,
	}
}

// Len returns the number of stored points.
func (c *PointChain) Len() int {
	return len(c.pts)
}

// IsClosed reports whether the chain is a closed loop.
func (c *PointChain) IsClosed() bool {
	return c.closed
}

// ChainMode reports the global default role: when true, newly placed
// endpoints are junctures.
func (c *PointChain) ChainMode() bool {
	return c.chainMode
}

// SetChainMode changes the default applied to future [PointChain.Place]
// calls. Existing points are not touched; points stored as [Inherit] resolve
// against the new default the next time they are read.
func (c *PointChain) SetChainMode(on bool) {
	c.chainMode = on
}

// PointAt returns the point at index i.
func (c *PointChain) PointAt(i int) (Point, error) {
	if i < 0 || i >= len(c.pts) {
		return Point{}, ErrOutOfBounds
	}
	return c.pts[i], nil
}

// IsJuncture resolves the on-curve role of point i. The first and last point
// of an open chain are junctures unconditionally; any other point's stored
// override is resolved against the global chain mode. Out-of-range indices
// report false.
func (c *PointChain) IsJuncture(i int) bool {
	if i < 0 || i >= len(c.pts) {
		return false
	}
	if !c.closed && (i == 0 || i == len(c.pts)-1) {
		return true
	}
	switch c.overrides[i] {
	case ForceJuncture:
		return true
	case ForceControl:
		return false
	default:
		return c.chainMode
	}
}

// ContinuityAt returns the continuity constraint stored for point i. It is
// meaningful for junctures; controls carry it inertly.
func (c *PointChain) ContinuityAt(i int) (Continuity, error) {
	if i < 0 || i >= len(c.pts) {
		return 0, ErrOutOfBounds
	}
	return c.conts[i], nil
}

// SetContinuity sets the continuity constraint of point i. If i resolves to a
// juncture and the constraint is not [Corner], the control on its incoming
// side is immediately re-aligned against the outgoing side, the same repair
// [Spline.SetContinuity] performs on handles.
func (c *PointChain) SetContinuity(i int, cont Continuity) error {
	if i < 0 || i >= len(c.pts) {
		return ErrOutOfBounds
	}
	c.conts[i] = cont
	if cont != Corner && c.IsJuncture(i) {
		if next, ok := c.neighbor(i, +1); ok && !c.IsJuncture(next) {
			c.mirrorOpposite(i, next)
		}
	}
	return nil
}

// Selected returns the selected point index, or -1.
func (c *PointChain) Selected() int {
	return c.selected
}

// Select marks point i as selected. Out-of-range indices clear the
// selection.
func (c *PointChain) Select(i int) {
	if i < 0 || i >= len(c.pts) {
		c.selected = -1
		return
	}
	c.selected = i
}

// HitTest returns the index of the stored point nearest to pt within radius,
// or -1 if none is in range.
func (c *PointChain) HitTest(pt Point, radius float64) int {
	best := radius
	hit := -1
	for i, p := range c.pts {
		if d := pt.Distance(p); d < best {
			best = d
			hit = i
		}
	}
	return hit
}

// Place appends a point to an open chain. The first placed point becomes a
// lone juncture, stamped as one so its role stays fixed once the chain
// closes. Every later call synthesizes a control at the midpoint of the
// previous last point and pt, then appends pt itself, stamped as a juncture
// or control according to the chain mode in effect right now. The synthesized
// control is selected so an immediately following drag shapes the new
// segment. Placing on a closed chain is a no-op.
func (c *PointChain) Place(pt Point) {
	if c.closed {
		return
	}
	if len(c.pts) == 0 {
		c.pts = append(c.pts, pt)
		c.overrides = append(c.overrides, ForceJuncture)
		c.conts = append(c.conts, Smooth)
		c.selected = 0
		return
	}
	prev := c.pts[len(c.pts)-1]
	mid := prev.Midpoint(pt)
	end := ForceControl
	if c.chainMode {
		end = ForceJuncture
	}
	c.pts = append(c.pts, mid, pt)
	c.overrides = append(c.overrides, ForceControl, end)
	c.conts = append(c.conts, Smooth, Smooth)
	c.selected = len(c.pts) - 2
}

// Close closes the chain into a loop. It requires an open chain with at least
// 4 stored points. A single closing control is synthesized at the midpoint of
// the last point and point 0; point 0 is not duplicated, and its juncture
// role becomes toggleable like any interior point. Closing an already closed
// chain is a no-op.
func (c *PointChain) Close() error {
	if c.closed {
		return nil
	}
	if len(c.pts) < 4 {
		return ErrInsufficientData
	}
	control := c.pts[len(c.pts)-1].Midpoint(c.pts[0])
	c.pts = append(c.pts, control)
	c.overrides = append(c.overrides, ForceControl)
	c.conts = append(c.conts, Smooth)
	c.closed = true
	logger().Debug("chain: closed", "points", len(c.pts))
	return nil
}

// Reopen reverts a closed chain to an open one, dropping the closing control
// so the open parity invariant holds again. Reopening an open chain is a
// no-op.
func (c *PointChain) Reopen() {
	if !c.closed {
		return
	}
	n := len(c.pts) - 1
	c.pts = c.pts[:n]
	c.overrides = c.overrides[:n]
	c.conts = c.conts[:n]
	c.closed = false
	if c.selected >= n {
		c.selected = -1
	}
	logger().Debug("chain: reopened", "points", n)
}

// ToggleJuncture flips the resolved role of point i by stamping the opposite
// override. The forced junctures of an open chain (its first and last point)
// cannot be toggled; toggling them, or an out-of-range index, is a no-op.
func (c *PointChain) ToggleJuncture(i int) {
	if i < 0 || i >= len(c.pts) {
		return
	}
	if !c.closed && (i == 0 || i == len(c.pts)-1) {
		return
	}
	if c.IsJuncture(i) {
		c.overrides[i] = ForceControl
	} else {
		c.overrides[i] = ForceJuncture
	}
}

// Drag translates point i by delta and repairs continuity around it:
//
//   - a juncture under [Smooth] or [Symmetric] carries its two neighboring
//     controls along by the same delta, preserving tangency by translation;
//   - a control adjacent to a [Smooth] or [Symmetric] juncture mirrors that
//     juncture's opposite control to keep the pair anti-parallel.
//
// Corners and free controls move alone. The stored points are the single
// source of truth: rendering evaluates them as-is and never re-derives the
// constrained geometry.
func (c *PointChain) Drag(i int, delta Vec2) error {
	if i < 0 || i >= len(c.pts) {
		return ErrOutOfBounds
	}
	c.pts[i] = c.pts[i].Translate(delta)
	if c.IsJuncture(i) {
		if c.conts[i] == Corner {
			return nil
		}
		for _, dir := range [2]int{-1, +1} {
			if j, ok := c.neighbor(i, dir); ok && !c.IsJuncture(j) {
				c.pts[j] = c.pts[j].Translate(delta)
			}
		}
		return nil
	}
	for _, dir := range [2]int{-1, +1} {
		j, ok := c.neighbor(i, dir)
		if !ok || !c.IsJuncture(j) {
			continue
		}
		if c.conts[j] == Corner {
			continue
		}
		c.mirrorOpposite(j, i)
	}
	return nil
}

// Delete removes point i. Deleting from a closed chain removes only that
// point and reopens the loop (the even count becomes odd, which is what an
// open chain requires). Deleting from an open chain removes the point
// together with one adjacent point so the alternation parity survives: the
// last point takes its predecessor with it, every other point takes its
// successor. A one-point chain simply empties. The selection is cleared.
func (c *PointChain) Delete(i int) error {
	if i < 0 || i >= len(c.pts) {
		return ErrOutOfBounds
	}
	lo, hi := i, i+1
	if !c.closed && len(c.pts) > 1 {
		if i == len(c.pts)-1 {
			lo = i - 1
		} else {
			hi = i + 2
		}
	}
	c.pts = slices.Delete(c.pts, lo, hi)
	c.overrides = slices.Delete(c.overrides, lo, hi)
	c.conts = slices.Delete(c.conts, lo, hi)
	c.closed = false
	c.selected = -1
	logger().Debug("chain: deleted", "index", i, "points", len(c.pts))
	return nil
}

// Spans iterates over the chain's evaluable spans in order: the maximal runs
// between consecutive junctures, inclusive of both. On a closed chain the
// final span wraps through index 0 back to the first juncture; it exists in
// the iteration only as index arithmetic, never as a copied buffer. A closed
// chain whose points all resolve to controls yields a single span covering
// the whole ring.
func (c *PointChain) Spans() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		n := len(c.pts)
		if n < 2 {
			return
		}
		if !c.closed {
			start := 0
			for i := 1; i < n; i++ {
				if i == n-1 || c.IsJuncture(i) {
					if !yield(Span{Start: start, N: i - start + 1}) {
						return
					}
					start = i
				}
			}
			return
		}
		first := -1
		for i := range n {
			if c.IsJuncture(i) {
				first = i
				break
			}
		}
		if first == -1 {
			// No juncture anywhere; the whole ring is one span that ends
			// where it starts.
			yield(Span{Start: 0, N: n + 1})
			return
		}
		start, startOff := first, 0
		for off := 1; off <= n; off++ {
			i := (first + off) % n
			if i == first || c.IsJuncture(i) {
				if !yield(Span{Start: start, N: off - startOff + 1}) {
					return
				}
				start, startOff = i, off
			}
		}
	}
}

// EvalSpan evaluates the span as a Bézier curve of degree N-1 at parameter
// t ∈ [0, 1], reading the backing store modulo its length for wrapped spans.
func (c *PointChain) EvalSpan(sp Span, t float64) (Point, error) {
	if sp.N < 2 || sp.Start < 0 || sp.Start >= len(c.pts) {
		return Point{}, ErrOutOfBounds
	}
	if !c.closed && sp.Start+sp.N > len(c.pts) {
		return Point{}, ErrOutOfBounds
	}
	return EvalBezIndexed(c.pts, sp.Start, sp.N, t), nil
}

// SampleSpan evaluates the span at steps+1 evenly spaced parameters,
// including both endpoints. Display code draws the polyline through the
// result.
func (c *PointChain) SampleSpan(sp Span, steps int) ([]Point, error) {
	if steps < 1 {
		return nil, ErrInvalidArgument
	}
	out := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		p, err := c.EvalSpan(sp, float64(i)/float64(steps))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Bounds returns the axis-aligned bounding box of every stored point. It
// requires at least one point.
func (c *PointChain) Bounds() (Rect, error) {
	if len(c.pts) == 0 {
		return Rect{}, ErrInsufficientData
	}
	r := NewRectFromPoints(c.pts[0], c.pts[0])
	for _, p := range c.pts {
		r = r.UnionPoint(p)
	}
	return r, nil
}

// neighbor returns the index next to i in the given direction, using ring
// arithmetic when the chain is closed. It reports false at the ends of an
// open chain.
func (c *PointChain) neighbor(i, dir int) (int, bool) {
	n := len(c.pts)
	j := i + dir
	if c.closed {
		return ((j % n) + n) % n, true
	}
	if j < 0 || j >= n {
		return 0, false
	}
	return j, true
}

// mirrorOpposite repositions the control on the far side of juncture j so it
// opposes the control at moved: anti-parallel through j, keeping its own
// distance under [Smooth] and adopting the moved control's distance under
// [Symmetric]. Junctures on the far side are left alone; only controls are
// repositioned implicitly.
func (c *PointChain) mirrorOpposite(j, moved int) {
	var dir int
	if prev, ok := c.neighbor(j, -1); ok && prev == moved {
		dir = +1
	} else if next, ok := c.neighbor(j, +1); ok && next == moved {
		dir = -1
	} else {
		return
	}
	opp, ok := c.neighbor(j, dir)
	if !ok || opp == moved || c.IsJuncture(opp) {
		return
	}
	pj := c.pts[j]
	v := pj.Sub(c.pts[moved])
	mag := v.Hypot()
	if mag < coincidentEpsilon {
		c.pts[opp] = pj
		return
	}
	u := v.Mul(1.0 / mag)
	var dist float64
	switch c.conts[j] {
	case Smooth:
		dist = c.pts[opp].Sub(pj).Hypot()
	case Symmetric:
		dist = mag
	default:
		return
	}
	c.pts[opp] = pj.Translate(u.Mul(dist))
}
