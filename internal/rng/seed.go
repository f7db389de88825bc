package rng

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// OSSeed reads one word from the operating system entropy pool. It falls
// back to ClockSeed if the pool cannot be read.
func OSSeed() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return ClockSeed()
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// ClockSeed derives a seed from the wall clock, for sandboxes where OS
// entropy is unavailable or undesirable.
func ClockSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// expand draws n state words from g.
func expand(g Generator, n int) []uint64 {
	words := make([]uint64, n)
	for i := range words {
		words[i] = g.Uint64()
	}
	return words
}

func Xoroshiro128PlusFromSeed(seed uint64) *Xoroshiro128Plus {
	w := expand(NewXorshift64(seed), 2)
	return NewXoroshiro128Plus(w[0], w[1])
}

func Xoshiro256PlusFromSeed(seed uint64) *Xoshiro256Plus {
	w := expand(NewXorshift64(seed), 4)
	return NewXoshiro256Plus(w[0], w[1], w[2], w[3])
}

func Xoshiro256PlusPlusFromSeed(seed uint64) *Xoshiro256PlusPlus {
	w := expand(NewXorshift64(seed), 4)
	return NewXoshiro256PlusPlus(w[0], w[1], w[2], w[3])
}
