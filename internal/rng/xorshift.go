package rng

import "math/bits"

// Reference: https://prng.di.unimi.it/ and https://en.wikipedia.org/wiki/Xorshift.
// All arithmetic wraps at 64 bits.

// Xorshift64 is Marsaglia's 13/7/17 xorshift.
type Xorshift64 struct {
	state uint64
}

// Xoroshiro128Plus is xoroshiro128+ (24, 16, 37).
type Xoroshiro128Plus struct {
	state [2]uint64
}

// Xoshiro256Plus is xoshiro256+.
type Xoshiro256Plus struct {
	state [4]uint64
}

// Xoshiro256PlusPlus is xoshiro256++, the default generator.
type Xoshiro256PlusPlus struct {
	state [4]uint64
}

// zeroSeed replaces an all-zero xorshift state, which is a fixed point.
const zeroSeed = 0x9e3779b97f4a7c15

// NewXorshift64 seeds the generator and discards one output.
func NewXorshift64(seed uint64) *Xorshift64 {
	if seed == 0 {
		seed = zeroSeed
	}
	x := &Xorshift64{state: seed}
	x.Uint64()
	return x
}

func NewXoroshiro128Plus(s0, s1 uint64) *Xoroshiro128Plus {
	if s0|s1 == 0 {
		s0 = zeroSeed
	}
	x := &Xoroshiro128Plus{state: [2]uint64{s0, s1}}
	x.Uint64()
	return x
}

func NewXoshiro256Plus(s0, s1, s2, s3 uint64) *Xoshiro256Plus {
	if s0|s1|s2|s3 == 0 {
		s0 = zeroSeed
	}
	x := &Xoshiro256Plus{state: [4]uint64{s0, s1, s2, s3}}
	x.Uint64()
	return x
}

func NewXoshiro256PlusPlus(s0, s1, s2, s3 uint64) *Xoshiro256PlusPlus {
	if s0|s1|s2|s3 == 0 {
		s0 = zeroSeed
	}
	x := &Xoshiro256PlusPlus{state: [4]uint64{s0, s1, s2, s3}}
	x.Uint64()
	return x
}

func (x *Xorshift64) Uint64() uint64 {
	s := x.state
	s ^= s << 13
	s ^= s >> 7
	s ^= s << 17
	x.state = s
	return s
}

func (x *Xoroshiro128Plus) Uint64() uint64 {
	s0, s1 := x.state[0], x.state[1]
	result := s0 + s1

	s1 ^= s0
	x.state[0] = bits.RotateLeft64(s0, 24) ^ s1 ^ (s1 << 16)
	x.state[1] = bits.RotateLeft64(s1, 37)
	return result
}

func (x *Xoshiro256Plus) Uint64() uint64 {
	s := &x.state
	result := s[0] + s[3]
	step256(s)
	return result
}

func (x *Xoshiro256PlusPlus) Uint64() uint64 {
	s := &x.state
	result := bits.RotateLeft64(s[0]+s[3], 23) + s[0]
	step256(s)
	return result
}

// step256 is the state transition shared by the xoshiro256 variants.
func step256(s *[4]uint64) {
	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t
	s[3] = bits.RotateLeft64(s[3], 45)
}

func (x *Xorshift64) IntRange(low, high int32) int32 { return intRange(x.Uint64(), low, high) }
func (x *Xorshift64) FloatRange(low, high float64) float64 {
	return floatRange(x.Uint64(), low, high)
}

func (x *Xoroshiro128Plus) IntRange(low, high int32) int32 { return intRange(x.Uint64(), low, high) }
func (x *Xoroshiro128Plus) FloatRange(low, high float64) float64 {
	return floatRange(x.Uint64(), low, high)
}

func (x *Xoshiro256Plus) IntRange(low, high int32) int32 { return intRange(x.Uint64(), low, high) }
func (x *Xoshiro256Plus) FloatRange(low, high float64) float64 {
	return floatRange(x.Uint64(), low, high)
}

func (x *Xoshiro256PlusPlus) IntRange(low, high int32) int32 {
	return intRange(x.Uint64(), low, high)
}
func (x *Xoshiro256PlusPlus) FloatRange(low, high float64) float64 {
	return floatRange(x.Uint64(), low, high)
}
