package rng

import (
	"errors"
	"fmt"
	"sort"
)

// Kind names a generator so it can be picked from config or flags.
type Kind string

const (
	KindXorshift64         Kind = "xorshift64"
	KindXoroshiro128Plus   Kind = "xoroshiro128p"
	KindXoshiro256Plus     Kind = "xoshiro256p"
	KindXoshiro256PlusPlus Kind = "xoshiro256pp"
	KindPCG                Kind = "pcg"
	KindOS                 Kind = "os"

	DefaultKind = KindXoshiro256PlusPlus
)

var ErrUnknownKind = errors.New("rng: unknown generator kind")

var factories = map[Kind]func(seed uint64) Source{
	KindXorshift64:         func(seed uint64) Source { return NewXorshift64(seed) },
	KindXoroshiro128Plus:   func(seed uint64) Source { return Xoroshiro128PlusFromSeed(seed) },
	KindXoshiro256Plus:     func(seed uint64) Source { return Xoshiro256PlusFromSeed(seed) },
	KindXoshiro256PlusPlus: func(seed uint64) Source { return Xoshiro256PlusPlusFromSeed(seed) },
	KindPCG:                func(seed uint64) Source { return NewPCG(seed) },
	KindOS:                 func(uint64) Source { return OS{} },
}

// Validate reports whether kind names a registered generator. The empty
// kind selects DefaultKind.
func Validate(kind Kind) error {
	if kind == "" {
		return nil
	}
	if _, ok := factories[kind]; !ok {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownKind, kind, Kinds())
	}
	return nil
}

// New builds a generator of the given kind. A zero seed draws one from the
// OS entropy pool.
func New(kind Kind, seed uint64) (Source, error) {
	if kind == "" {
		kind = DefaultKind
	}
	if err := Validate(kind); err != nil {
		return nil, err
	}
	fn := factories[kind]
	if seed == 0 {
		seed = OSSeed()
	}
	return fn(seed), nil
}

// Kinds lists registered generator kinds in sorted order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
