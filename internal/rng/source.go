package rng

// Source is the capability the simulation needs from a generator.
type Source interface {
	IntRange(low, high int32) int32
	FloatRange(low, high float64) float64
}

// Generator produces raw 64-bit words. Every generator in this package
// implements it; the *FromSeed constructors expand a single seed into full
// state through one.
type Generator interface {
	Uint64() uint64
}

var (
	_ Generator = (*Xorshift64)(nil)
	_ Generator = (*Xoroshiro128Plus)(nil)
	_ Generator = (*Xoshiro256Plus)(nil)
	_ Generator = (*Xoshiro256PlusPlus)(nil)
	_ Generator = (*PCG)(nil)
	_ Generator = OS{}
)

// intRange maps the low 32 bits of u onto [low, high). An empty range yields low.
func intRange(u uint64, low, high int32) int32 {
	if high <= low {
		return low
	}
	span := uint32(int64(high) - int64(low))
	return int32(int64(low) + int64(uint32(u)%span))
}

// unitFloat64 keeps the top 53 bits (float64 mantissa width).
func unitFloat64(u uint64) float64 {
	return float64(u>>11) / (1 << 53)
}

func floatRange(u uint64, low, high float64) float64 {
	return low + (high-low)*unitFloat64(u)
}
