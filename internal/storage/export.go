package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/isingsim/internal/thermo"
)

type ExportData struct {
	Run          RunMetadata   `json:"run"`
	Observables  []Observation `json:"observables"`
	PeakHeat     float64       `json:"peak_specific_heat_temperature"`
	PeakSuscept  float64       `json:"peak_susceptibility_temperature"`
	Temperatures int           `json:"temperatures"`
}

type Observation struct {
	Temperature       float64 `json:"temperature"`
	EnergyDensity     float64 `json:"energy_density"`
	Magnetization     float64 `json:"magnetisation"`
	SpecificHeat      float64 `json:"specific_heat"`
	Susceptibility    float64 `json:"susceptibility"`
	CorrelationLength float64 `json:"correlation_length,omitempty"`
}

// ExportJSON writes a run and its observables as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, obs []thermo.Observables) error {
	data := ExportData{
		Run:          meta,
		Observables:  make([]Observation, len(obs)),
		Temperatures: len(obs),
	}
	for i, o := range obs {
		data.Observables[i] = Observation(o)
	}
	data.PeakHeat, _ = thermo.PeakTemperature(obs, thermo.QuantitySpecificHeat)
	data.PeakSuscept, _ = thermo.PeakTemperature(obs, thermo.QuantitySusceptibility)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
