package smith

import "errors"

var (
	// ErrShape reports an input array with an unsupported shape.
	ErrShape = errors.New("smith: invalid shape")
	// ErrSizeMismatch reports real and imaginary arrays of different lengths.
	ErrSizeMismatch = errors.New("smith: size mismatch")
	// ErrArgument reports a wrong number or kind of arguments.
	ErrArgument = errors.New("smith: invalid argument")
	// ErrUnsupportedPathKind reports a path tag the transform cannot handle.
	ErrUnsupportedPathKind = errors.New("smith: unsupported path kind")
	// ErrPrecondition reports invalid configuration or tick sets.
	ErrPrecondition = errors.New("smith: precondition violated")
	// ErrUnreachable reports a rotation destination off the |Γ| circle.
	ErrUnreachable = errors.New("smith: destination not reachable")
)
