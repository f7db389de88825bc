package experiment

import "errors"

var (
	// ErrNegativeTemperature rejects a whole run when any temperature is
	// negative or NaN. Zero is allowed and runs at the clamped beta.
	ErrNegativeTemperature = errors.New("experiment: temperature must be >= 0")

	// ErrArrayInit wraps lattice construction failures.
	ErrArrayInit = errors.New("experiment: cannot initialize lattice")

	ErrInvalidSweeps = errors.New("experiment: sweep counts must be >= 0")
)
