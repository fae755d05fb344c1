package spline

import "errors"

// The kernel's failure taxonomy. All errors are reported synchronously at the
// point of detection; operations that fail leave their inputs unmodified.
var (
	// ErrOutOfBounds reports an index outside [0, len).
	ErrOutOfBounds = errors.New("spline: index out of bounds")
	// ErrInsufficientData reports fewer than two knots or sample points where
	// evaluation or fitting needs at least one segment.
	ErrInsufficientData = errors.New("spline: not enough points")
	// ErrInvalidArgument reports a numeric argument outside its domain, such
	// as a non-positive tolerance or step count.
	ErrInvalidArgument = errors.New("spline: argument must be positive")
)
