// Package metropolis implements single-spin-flip Metropolis sampling of the
// nearest-neighbour Ising model on a periodic lattice.
package metropolis

import (
	"math"

	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/rng"
)

// MaxBeta stands in for 1/T when T <= 0.
const MaxBeta = 1e6

// Fluctuation is the (spin, energy) change produced by one or more proposals.
type Fluctuation[P lattice.Observable] struct {
	Spin   P
	Energy P
}

func (f Fluctuation[P]) Add(o Fluctuation[P]) Fluctuation[P] {
	return Fluctuation[P]{Spin: f.Spin + o.Spin, Energy: f.Energy + o.Energy}
}

// DeltaEnergy is the energy change of flipping (i, j):
// 2·s·(J·Σneighbours − h).
func DeltaEnergy[S lattice.Spin, P lattice.Observable](l *lattice.Lattice[S, P], i, j int, coupling, field P) P {
	vertical := l.Observable(i-1, j) + l.Observable(i+1, j)
	horizontal := l.Observable(i, j+1) + l.Observable(i, j-1)
	s := l.Observable(i, j)

	return 2 * s * (coupling*(vertical+horizontal) - field)
}

func Beta[P lattice.Observable](temp P) P {
	if temp > 0 {
		return 1 / temp
	}
	return MaxBeta
}

// Accept applies the Metropolis rule. Downhill moves never consume a draw.
func Accept[P lattice.Observable](temp, deltaEnergy P, src lattice.FloatSource) bool {
	if deltaEnergy < 0 {
		return true
	}
	return src.FloatRange(0, 1) < math.Exp(float64(-Beta(temp)*deltaEnergy))
}

// Propose picks one random cell and flips it if accepted. A rejected
// proposal returns the zero Fluctuation.
func Propose[S lattice.Spin, P lattice.Observable](l *lattice.Lattice[S, P], src rng.Source, temp, coupling, field P) Fluctuation[P] {
	i, j := l.SampleCell(src)
	dE := DeltaEnergy(l, i, j, coupling, field)

	if !Accept(temp, dE, src) {
		return Fluctuation[P]{}
	}
	s := P(l.Flip(i, j))
	return Fluctuation[P]{Spin: 2 * s, Energy: dE}
}

// Sweep performs Len() independent proposals. Cells are drawn with
// replacement, so a sweep does not guarantee every cell is visited.
func Sweep[S lattice.Spin, P lattice.Observable](l *lattice.Lattice[S, P], src rng.Source, temp, coupling, field P) Fluctuation[P] {
	var total Fluctuation[P]
	for n := 0; n < l.Len(); n++ {
		total = total.Add(Propose(l, src, temp, coupling, field))
	}
	return total
}

// TotalEnergy recomputes the Hamiltonian in O(N), counting each bond once
// through the (i+1, j) and (i, j+1) neighbours only.
func TotalEnergy[S lattice.Spin, P lattice.Observable](l *lattice.Lattice[S, P], coupling, field P) P {
	var energy P
	for i := 0; i < l.Rows(); i++ {
		for j := 0; j < l.Columns(); j++ {
			s := l.Observable(i, j)
			bonds := l.Observable(i+1, j) + l.Observable(i, j+1)
			energy += -s * (coupling*bonds - field)
		}
	}
	return energy
}
