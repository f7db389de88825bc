package lattice

// Spin is the set of stored spin representations.
type Spin interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Observable is the set of representations used for energies, magnetizations
// and running averages.
type Observable interface {
	~float32 | ~float64
}

// IntSource draws uniform integers in [low, high).
type IntSource interface {
	IntRange(low, high int32) int32
}

// FloatSource draws uniform floats in [low, high).
type FloatSource interface {
	FloatRange(low, high float64) float64
}

// Generator produces the initial value of one cell. It is invoked once per
// cell in row-major order.
type Generator[S Spin] func() S

func Up[S Spin]() S   { return S(1) }
func Down[S Spin]() S { return S(-1) }

// AllUp fills every cell with +1.
func AllUp[S Spin]() Generator[S] {
	return func() S { return Up[S]() }
}

// AllDown fills every cell with -1.
func AllDown[S Spin]() Generator[S] {
	return func() S { return Down[S]() }
}

// Thermal fills cells with independent ±1 values of equal probability,
// i.e. the infinite temperature state.
func Thermal[S Spin](rng FloatSource) Generator[S] {
	return func() S {
		if rng.FloatRange(0, 1) < 0.5 {
			return Up[S]()
		}
		return Down[S]()
	}
}

// InitialState names a fill policy so it can be chosen from configuration.
type InitialState string

const (
	StateUp      InitialState = "up"
	StateDown    InitialState = "down"
	StateThermal InitialState = "thermal"
)

// GeneratorFor resolves a named fill policy. Thermal states draw from rng.
func GeneratorFor[S Spin](state InitialState, rng FloatSource) (Generator[S], error) {
	switch state {
	case StateUp, "":
		return AllUp[S](), nil
	case StateDown:
		return AllDown[S](), nil
	case StateThermal:
		if rng == nil {
			return nil, ErrNoSource
		}
		return Thermal[S](rng), nil
	default:
		return nil, &UnknownStateError{State: string(state)}
	}
}
