package spline

// Continuity is the constraint between a knot's two handles.
type Continuity int

const (
	// Smooth keeps the handles colinear with the knot; each handle keeps its
	// own distance from the knot.
	Smooth Continuity = iota
	// Symmetric keeps the handles colinear and at equal distance from the
	// knot.
	Symmetric
	// Corner leaves the handles fully independent.
	Corner
)

func (c Continuity) String() string {
	switch c {
	case Smooth:
		return "Smooth"
	case Symmetric:
		return "Symmetric"
	case Corner:
		return "Corner"
	default:
		return "invalid"
	}
}

// Handles closer to the knot than this are treated as coincident with it.
const coincidentEpsilon = 1e-12

// alignHandles re-establishes the continuity invariant on k by adjusting
// HandlePrev to oppose HandleNext. Every mutation that moves a handle or
// changes the continuity value funnels through here; the invariant is not
// self-maintaining.
//
// Under Corner the handles are left untouched. If HandleNext coincides with
// the knot, HandlePrev collapses onto the knot as well.
func alignHandles(k *Knot) {
	if k.Cont == Corner {
		return
	}
	next := k.HandleNext.Sub(k.Pos)
	mag := next.Hypot()
	if mag < coincidentEpsilon {
		k.HandlePrev = k.Pos
		return
	}
	dir := next.Mul(1.0 / mag)
	switch k.Cont {
	case Smooth:
		// Keep the existing HandlePrev magnitude, flip its direction to be
		// anti-parallel with HandleNext.
		prevMag := k.HandlePrev.Sub(k.Pos).Hypot()
		k.HandlePrev = k.Pos.Translate(dir.Mul(-prevMag))
	case Symmetric:
		k.HandlePrev = k.Pos.Translate(dir.Mul(-mag))
	}
}

// alignHandlesReverse is alignHandles with the roles swapped: HandleNext is
// re-derived from HandlePrev. Used when a drag moved HandlePrev and the other
// handle must follow.
func alignHandlesReverse(k *Knot) {
	if k.Cont == Corner {
		return
	}
	prev := k.HandlePrev.Sub(k.Pos)
	mag := prev.Hypot()
	if mag < coincidentEpsilon {
		k.HandleNext = k.Pos
		return
	}
	dir := prev.Mul(1.0 / mag)
	switch k.Cont {
	case Smooth:
		nextMag := k.HandleNext.Sub(k.Pos).Hypot()
		k.HandleNext = k.Pos.Translate(dir.Mul(-nextMag))
	case Symmetric:
		k.HandleNext = k.Pos.Translate(dir.Mul(-mag))
	}
}
