package metropolis

import (
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/rng"
)

// Chain is one simulation context: a lattice, its generator and the running
// spin and energy totals kept up to date from sweep fluctuations.
type Chain[S lattice.Spin, P lattice.Observable] struct {
	lat      *lattice.Lattice[S, P]
	src      rng.Source
	coupling P
	field    P
	spin     P
	energy   P
	sweeps   int
}

func NewChain[S lattice.Spin, P lattice.Observable](l *lattice.Lattice[S, P], src rng.Source, coupling, field P) *Chain[S, P] {
	c := &Chain[S, P]{lat: l, src: src, coupling: coupling, field: field}
	c.Resync()
	return c
}

// Sweep runs one sweep at temp. Changing coupling or field recomputes the
// energy total first, since earlier fluctuations were measured under the old
// Hamiltonian.
func (c *Chain[S, P]) Sweep(temp, coupling, field P) Fluctuation[P] {
	if coupling != c.coupling || field != c.field {
		c.coupling, c.field = coupling, field
		c.energy = TotalEnergy(c.lat, coupling, field)
	}

	f := Sweep(c.lat, c.src, temp, coupling, field)
	c.spin += f.Spin
	c.energy += f.Energy
	c.sweeps++
	return f
}

// Resync replaces the running totals with full recomputations.
func (c *Chain[S, P]) Resync() {
	c.spin = c.lat.Sum()
	c.energy = TotalEnergy(c.lat, c.coupling, c.field)
}

// Reset refills the lattice and resyncs.
func (c *Chain[S, P]) Reset(gen lattice.Generator[S]) {
	c.lat.Reset(gen)
	c.sweeps = 0
	c.Resync()
}

func (c *Chain[S, P]) Lattice() *lattice.Lattice[S, P] { return c.lat }
func (c *Chain[S, P]) Source() rng.Source               { return c.src }
func (c *Chain[S, P]) SpinSum() P                       { return c.spin }
func (c *Chain[S, P]) Energy() P                        { return c.energy }
func (c *Chain[S, P]) Sweeps() int                      { return c.sweeps }

// Magnetization is the spin sum per site.
func (c *Chain[S, P]) Magnetization() P {
	return c.spin / P(c.lat.Len())
}

func (c *Chain[S, P]) EnergyDensity() P {
	return c.energy / P(c.lat.Len())
}
