package lattice

import (
	"fmt"
	"math"
)

// Lattice is a rows x columns torus of spins.
type Lattice[S Spin, P Observable] struct {
	data    []S
	rows    int
	columns int
	size    int
}

// New allocates a lattice and fills it cell by cell with gen.
func New[S Spin, P Observable](rows, columns int, gen Generator[S]) (*Lattice[S, P], error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, columns)
	}
	if int64(rows)*int64(columns) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %dx%d cells exceed 32-bit addressing", ErrInvalidDimensions, rows, columns)
	}

	size := rows * columns
	l := &Lattice[S, P]{
		data:    make([]S, size),
		rows:    rows,
		columns: columns,
		size:    size,
	}
	l.Reset(gen)
	return l, nil
}

func (l *Lattice[S, P]) Rows() int    { return l.rows }
func (l *Lattice[S, P]) Columns() int { return l.columns }

// Shape returns (rows, columns).
func (l *Lattice[S, P]) Shape() (int, int) { return l.rows, l.columns }

// Len is the total number of spins.
func (l *Lattice[S, P]) Len() int { return l.size }

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func (l *Lattice[S, P]) index(i, j int) int {
	return wrap(i, l.rows)*l.columns + wrap(j, l.columns)
}

// At returns the spin at (i, j) after wrapping both coordinates.
func (l *Lattice[S, P]) At(i, j int) S {
	return l.data[l.index(i, j)]
}

// Observable returns At(i, j) converted to P.
func (l *Lattice[S, P]) Observable(i, j int) P {
	return P(l.data[l.index(i, j)])
}

func (l *Lattice[S, P]) Set(i, j int, v S) {
	l.data[l.index(i, j)] = v
}

// Flip negates the spin at (i, j) and returns its new value.
func (l *Lattice[S, P]) Flip(i, j int) S {
	idx := l.index(i, j)
	l.data[idx] = -l.data[idx]
	return l.data[idx]
}

// Reset refills every cell in place with gen.
func (l *Lattice[S, P]) Reset(gen Generator[S]) {
	for i := range l.data {
		l.data[i] = gen()
	}
}

// Sum recomputes the total spin. O(N); the engine keeps a running total
// instead of calling this per step.
func (l *Lattice[S, P]) Sum() P {
	var sum P
	for _, s := range l.data {
		sum += P(s)
	}
	return sum
}

// SampleCell draws a uniformly random cell.
func (l *Lattice[S, P]) SampleCell(rng IntSource) (int, int) {
	x := int(rng.IntRange(0, int32(l.size)))
	return x / l.columns, x % l.columns
}

// Row returns a copy of row i (wrapped).
func (l *Lattice[S, P]) Row(i int) []S {
	start := wrap(i, l.rows) * l.columns
	row := make([]S, l.columns)
	copy(row, l.data[start:start+l.columns])
	return row
}

// Clone returns an independent copy.
func (l *Lattice[S, P]) Clone() *Lattice[S, P] {
	c := *l
	c.data = make([]S, len(l.data))
	copy(c.data, l.data)
	return &c
}
