package lattice

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates non-positive rows or columns, or a cell
	// count that does not fit the 32-bit addressing used for sampling.
	ErrInvalidDimensions = errors.New("lattice: rows and columns must be > 0")

	// ErrNoSource indicates a thermal fill was requested without a generator.
	ErrNoSource = errors.New("lattice: thermal state needs a random source")
)

// UnknownStateError reports an InitialState name that GeneratorFor does not
// recognise.
type UnknownStateError struct {
	State string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("lattice: unknown initial state %q (want up, down or thermal)", e.State)
}
