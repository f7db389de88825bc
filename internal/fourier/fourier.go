// Package fourier computes the two lowest spatial Fourier modes of a spin
// field, the inputs of the second-moment correlation length estimate.
package fourier

import (
	"math"

	"github.com/san-kum/isingsim/internal/lattice"
)

// Transformer holds the kernel table exp(i·q·x), q = 2π/Lx, for one lattice
// width. It is read-only after construction and may be shared.
type Transformer[S lattice.Spin, P lattice.Observable] struct {
	kernel []complex128
	width  int
}

func NewTransformer[S lattice.Spin, P lattice.Observable](width int) *Transformer[S, P] {
	q := Wavenumber(width)
	kernel := make([]complex128, width)
	for x := range kernel {
		angle := q * float64(x)
		kernel[x] = complex(math.Cos(angle), math.Sin(angle))
	}
	return &Transformer[S, P]{kernel: kernel, width: width}
}

// Wavenumber is the first nonzero momentum 2π/width.
func Wavenumber(width int) float64 {
	return 2 * math.Pi / float64(width)
}

func (t *Transformer[S, P]) Width() int { return t.width }

// Transform returns the zero mode S0 and the first nonzero mode Sq along the
// columns, both scaled by 1/sqrt(Lx·Ly). The lattice width must match the
// table; a mismatch panics.
func (t *Transformer[S, P]) Transform(l *lattice.Lattice[S, P]) (P, complex128) {
	rows, columns := l.Shape()
	if columns != t.width {
		panic("fourier: lattice width does not match kernel table")
	}

	var (
		zero  float64
		first complex128
	)
	for i := 0; i < rows; i++ {
		for j := 0; j < columns; j++ {
			s := float64(l.At(i, j))
			zero += s
			first += complex(s, 0) * t.kernel[j]
		}
	}

	norm := 1 / math.Sqrt(float64(rows*columns))
	return P(zero * norm), first * complex(norm, 0)
}

// Power returns the squared magnitudes accumulated as S(q0) and S(q1).
func (t *Transformer[S, P]) Power(l *lattice.Lattice[S, P]) (P, P) {
	s0, sq := t.Transform(l)
	return s0 * s0, P(real(sq)*real(sq) + imag(sq)*imag(sq))
}
