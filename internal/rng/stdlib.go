package rng

import "math/rand/v2"

// PCG wraps a seeded math/rand/v2 PCG.
type PCG struct {
	r *rand.Rand
}

func NewPCG(seed uint64) *PCG {
	return &PCG{r: rand.New(rand.NewPCG(seed, seed^zeroSeed))}
}

func (p *PCG) Uint64() uint64 { return p.r.Uint64() }

func (p *PCG) IntRange(low, high int32) int32 {
	if high <= low {
		return low
	}
	return low + p.r.Int32N(high-low)
}

func (p *PCG) FloatRange(low, high float64) float64 {
	return low + (high-low)*p.r.Float64()
}

// OS draws from the runtime's OS-seeded ChaCha8 generator. It cannot be
// seeded and is therefore never reproducible.
type OS struct{}

func (OS) Uint64() uint64 { return rand.Uint64() }

func (OS) IntRange(low, high int32) int32 {
	if high <= low {
		return low
	}
	return low + rand.Int32N(high-low)
}

func (OS) FloatRange(low, high float64) float64 {
	return low + (high-low)*rand.Float64()
}
