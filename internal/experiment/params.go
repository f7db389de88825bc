package experiment

import (
	"fmt"
	"math"
	"runtime"

	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/rng"
)

// Params is the immutable input of one run.
type Params[P lattice.Observable] struct {
	Temperatures         []P
	Coupling             P
	Field                P
	ThermalizationSweeps int
	MeasurementSweeps    int
	// MeasureEvery folds observables on every k-th measurement sweep. Values
	// below 1 mean every sweep.
	MeasureEvery    int
	StructureFactor bool
	// ResyncEvery recomputes the running totals every n measurement sweeps.
	// Zero disables it.
	ResyncEvery int
	// Workers bounds the number of temperatures simulated at once. Zero
	// means runtime.NumCPU().
	Workers int
	// Seed gives context i the seed Seed+i. Zero seeds every context from
	// OS entropy.
	Seed         uint64
	RNG          rng.Kind
	InitialState lattice.InitialState
}

// Validate checks the whole parameter set before any work starts.
func (p Params[P]) Validate() error {
	for i, t := range p.Temperatures {
		if t < 0 || math.IsNaN(float64(t)) {
			return fmt.Errorf("%w: got %v at index %d", ErrNegativeTemperature, t, i)
		}
	}
	if p.ThermalizationSweeps < 0 || p.MeasurementSweeps < 0 || p.ResyncEvery < 0 {
		return fmt.Errorf("%w: thermalization=%d measurement=%d resync=%d",
			ErrInvalidSweeps, p.ThermalizationSweeps, p.MeasurementSweeps, p.ResyncEvery)
	}
	if err := rng.Validate(p.RNG); err != nil {
		return err
	}
	if _, err := lattice.GeneratorFor[int8](p.InitialState, rng.OS{}); err != nil {
		return err
	}
	return nil
}

func (p Params[P]) withDefaults() Params[P] {
	if p.MeasureEvery < 1 {
		p.MeasureEvery = 1
	}
	if p.Workers <= 0 {
		p.Workers = runtime.NumCPU()
	}
	if p.RNG == "" {
		p.RNG = rng.DefaultKind
	}
	return p
}

// Samples is the number of measurement sweeps that fold observables,
// ceil(MeasurementSweeps / MeasureEvery).
func (p Params[P]) Samples() int {
	every := max(p.MeasureEvery, 1)
	return (p.MeasurementSweeps + every - 1) / every
}

func (p Params[P]) seedFor(idx int) uint64 {
	if p.Seed == 0 {
		return 0
	}
	return p.Seed + uint64(idx)
}
