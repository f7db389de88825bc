// Package lattice provides the periodic two-dimensional spin container used by
// the Monte Carlo engine.
//
// A [Lattice] stores one spin per cell in row-major order and wraps every
// coordinate onto the torus, so neighbours of edge cells are always defined:
//
//	l, _ := lattice.New[int8, float64](32, 32, lattice.AllUp[int8]())
//	l.Flip(-1, 0) // same cell as (31, 0)
//
// # Type Parameters
//
// S is the stored spin representation (a small signed integer) and P the
// representation used for observables (a float). Conversion from S to P is
// the only arithmetic crossing between the two.
//
// # Thread Safety
//
// A Lattice is owned by exactly one simulation context and is NOT safe for
// concurrent use.
package lattice
