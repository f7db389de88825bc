// Package rng provides the random number sources used by lattice sampling and
// Metropolis acceptance.
//
// Every source satisfies [Source], which exposes exactly two draws: a uniform
// int32 in [low, high) and a uniform float64 in [low, high). The xorshift
// family ([Xorshift64], [Xoroshiro128Plus], [Xoshiro256Plus],
// [Xoshiro256PlusPlus]) is hand-rolled; [PCG] and [OS] wrap math/rand/v2.
//
// Seeded generators are bit-for-bit reproducible:
//
//	a := rng.NewXoshiro256PlusPlus(1, 2, 3, 4)
//	b := rng.NewXoshiro256PlusPlus(1, 2, 3, 4)
//	// a.Uint64() == b.Uint64() for every call
//
// Generators are NOT safe for concurrent use; give each goroutine its own.
package rng
