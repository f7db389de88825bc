package rng

// Fixed replays a fixed sequence of draws, cycling when exhausted. Ints are
// reduced modulo the requested span; Floats are unit values mapped onto the
// requested range. It exists for tests that need to force a code path.
type Fixed struct {
	Ints   []int32
	Floats []float64
	ni, nf int
}

func (f *Fixed) IntRange(low, high int32) int32 {
	if high <= low || len(f.Ints) == 0 {
		return low
	}
	v := f.Ints[f.ni%len(f.Ints)]
	f.ni++
	return intRange(uint64(uint32(v)), low, high)
}

func (f *Fixed) FloatRange(low, high float64) float64 {
	if len(f.Floats) == 0 {
		return low
	}
	v := f.Floats[f.nf%len(f.Floats)]
	f.nf++
	return low + (high-low)*v
}
