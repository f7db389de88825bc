package experiment

import (
	"time"

	"github.com/san-kum/isingsim/internal/lattice"
)

// Results holds the raw moments collected at one temperature. Spin and
// energy moments are totals over the lattice, not per-site values.
type Results[P lattice.Observable] struct {
	Temperature      P
	AbsMagnetization P // <|S|>
	MagnetizationSq  P // <S²>
	Energy           P // <E>
	EnergySq         P // <E²>
	StructureQ0      P // <|σ(0)|²>, zero unless enabled
	StructureQ1      P // <|σ(q)|²>, zero unless enabled
	Samples          int
	Elapsed          time.Duration
}

// Accumulator keeps online means over a known number of samples: every
// observation is divided by that count as it is added, so the values are
// valid to read at any time.
type Accumulator[P lattice.Observable] struct {
	scale   P
	samples int
	res     Results[P]
}

func NewAccumulator[P lattice.Observable](samples int) *Accumulator[P] {
	a := &Accumulator[P]{samples: samples}
	if samples > 0 {
		a.scale = 1 / P(samples)
	}
	return a
}

func (a *Accumulator[P]) Observe(spin, energy P) {
	abs := spin
	if abs < 0 {
		abs = -abs
	}
	a.res.AbsMagnetization += abs * a.scale
	a.res.MagnetizationSq += spin * spin * a.scale
	a.res.Energy += energy * a.scale
	a.res.EnergySq += energy * energy * a.scale
}

// ObserveModes folds the squared Fourier modes.
func (a *Accumulator[P]) ObserveModes(q0, q1 P) {
	a.res.StructureQ0 += q0 * a.scale
	a.res.StructureQ1 += q1 * a.scale
}

func (a *Accumulator[P]) Results() Results[P] {
	r := a.res
	r.Samples = a.samples
	return r
}
