// Package spline is a geometric kernel for editing chained cubic Bézier
// splines: knots with paired handles and continuity constraints, curve
// evaluation and adaptive tessellation, least-squares fitting of freehand
// point sequences, and a flat, topology-aware point chain for interactive
// editing.
//
// # Representations
//
// The package maintains two views of the same geometry.
//
// [Spline] is the canonical explicit-handle form: an ordered sequence of
// [Knot] values, where segment i is the cubic between knots i and i+1. Each
// knot carries a [Continuity] constraint relating its two handles; every
// mutation that moves a handle or changes the constraint re-establishes the
// invariant before returning.
//
// [PointChain] is the flat editing form: an ordered point sequence whose
// on-curve ("juncture") and off-curve ("control") roles are resolved per
// point from a stored tri-state and a global default. Chains may close into a
// loop; the closing span wraps through index 0 by modulo indexing rather
// than any duplicated buffer. Spans between junctures are evaluated as
// variable-degree Bézier curves with [EvalBezIndexed].
//
// Both views funnel their continuity repair through the same vector math, so
// they cannot drift apart.
//
// # Operations
//
//   - De Casteljau evaluation (see [CubicBez.Eval] and [EvalBez])
//   - Adaptive tessellation to polylines (see [Spline.Flatten])
//   - Least-squares curve fitting of point sequences (see [FitPoints])
//   - Chain editing: place, close, reopen, toggle, drag, delete (see [PointChain])
//
// The kernel consumes and produces in-memory numeric data only. Rendering,
// export, and input handling are collaborators that call into it; coordinate
// units are their contract, not this package's.
//
// All operations are synchronous and terminating, with bounded recursion.
// The package is silent by default; see [SetLogger].
//
// # Literature
//
// This package makes use of the following ideas:
//   - [A Primer on Bézier Curves]
//   - An Algorithm for Automatically Fitting Digitized Curves, Philip J.
//     Schneider, in Graphics Gems (1990)
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
package spline
