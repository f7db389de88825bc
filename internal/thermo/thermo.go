// Package thermo turns raw Monte Carlo moments into per-site thermodynamic
// observables.
package thermo

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/fourier"
	"github.com/san-kum/isingsim/internal/lattice"
)

var (
	ErrUnknownQuantity = errors.New("thermo: unknown quantity")
	ErrEmpty           = errors.New("thermo: no observables")
)

type Observables struct {
	Temperature       float64
	EnergyDensity     float64
	Magnetization     float64
	SpecificHeat      float64
	Susceptibility    float64
	CorrelationLength float64
}

// Derive computes per-site observables for a rows x columns lattice.
// Fluctuation quantities are zero at T <= 0.
func Derive[P lattice.Observable](r experiment.Results[P], rows, columns int) Observables {
	n := float64(rows * columns)
	t := float64(r.Temperature)
	e, e2 := float64(r.Energy), float64(r.EnergySq)
	m, m2 := float64(r.AbsMagnetization), float64(r.MagnetizationSq)

	o := Observables{
		Temperature:   t,
		EnergyDensity: e / n,
		Magnetization: m / n,
	}
	if t > 0 {
		o.SpecificHeat = (e2 - e*e) / (t * t * n)
		o.Susceptibility = (m2 - m*m) / (t * n)
	}
	o.CorrelationLength = CorrelationLength(float64(r.StructureQ0), float64(r.StructureQ1), columns)
	return o
}

func DeriveAll[P lattice.Observable](rs []experiment.Results[P], rows, columns int) []Observables {
	out := make([]Observables, len(rs))
	for i, r := range rs {
		out[i] = Derive(r, rows, columns)
	}
	return out
}

// CorrelationLength is the second-moment estimate
// sqrt(S(0)/S(q) - 1) / (2 sin(q/2)) with q = 2π/width. It returns zero when
// the ratio is undefined or below one.
func CorrelationLength(s0, sq float64, width int) float64 {
	if sq <= 0 || width < 2 {
		return 0
	}
	ratio := s0/sq - 1
	if ratio <= 0 {
		return 0
	}
	q := fourier.Wavenumber(width)
	return math.Sqrt(ratio) / (2 * math.Sin(q/2))
}

type Quantity string

const (
	QuantityEnergy            Quantity = "energy_density"
	QuantityMagnetization     Quantity = "magnetisation"
	QuantitySpecificHeat      Quantity = "specific_heat"
	QuantitySusceptibility    Quantity = "susceptibility"
	QuantityCorrelationLength Quantity = "correlation_length"
)

// Quantities lists every plottable column in table order.
func Quantities() []Quantity {
	return []Quantity{
		QuantityEnergy,
		QuantityMagnetization,
		QuantitySpecificHeat,
		QuantitySusceptibility,
		QuantityCorrelationLength,
	}
}

func (o Observables) Value(q Quantity) (float64, error) {
	switch q {
	case QuantityEnergy:
		return o.EnergyDensity, nil
	case QuantityMagnetization:
		return o.Magnetization, nil
	case QuantitySpecificHeat:
		return o.SpecificHeat, nil
	case QuantitySusceptibility:
		return o.Susceptibility, nil
	case QuantityCorrelationLength:
		return o.CorrelationLength, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownQuantity, q)
	}
}

// Series extracts one quantity and the matching temperatures.
func Series(obs []Observables, q Quantity) (temps, values []float64, err error) {
	temps = make([]float64, len(obs))
	values = make([]float64, len(obs))
	for i, o := range obs {
		v, err := o.Value(q)
		if err != nil {
			return nil, nil, err
		}
		temps[i], values[i] = o.Temperature, v
	}
	return temps, values, nil
}

// PeakTemperature returns the temperature at which q is largest. On a finite
// lattice the specific heat and susceptibility peaks estimate the
// pseudo-critical temperature.
func PeakTemperature(obs []Observables, q Quantity) (float64, error) {
	if len(obs) == 0 {
		return 0, ErrEmpty
	}
	temps, values, err := Series(obs, q)
	if err != nil {
		return 0, err
	}
	return temps[floats.MaxIdx(values)], nil
}
