// Package scenario runs the same temperature sweep over a list of lattice
// sizes, the usual input of a finite-size scaling analysis.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/isingsim/internal/config"
	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/thermo"
)

var (
	ErrNoSizes       = errors.New("scenario: no lattice sizes")
	ErrUnknownPreset = errors.New("scenario: unknown preset")
)

// Scenario is a base configuration, taken from a preset and/or overridden
// inline, and the sizes to run it on.
type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Preset      string    `yaml:"preset"`
	Config      yaml.Node `yaml:"config"`
	Sizes       []Size    `yaml:"sizes"`
}

type Size struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Rows, s.Columns) }

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if len(sc.Sizes) == 0 {
		return nil, ErrNoSizes
	}
	return &sc, nil
}

// Base resolves the configuration shared by every size.
func (sc *Scenario) Base() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if sc.Preset != "" {
		if cfg = config.GetPreset(sc.Preset); cfg == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, sc.Preset)
		}
	}
	if !sc.Config.IsZero() {
		if err := sc.Config.Decode(cfg); err != nil {
			return nil, fmt.Errorf("scenario config: %w", err)
		}
	}
	return cfg, nil
}

// SizeResult is the outcome of one lattice size.
type SizeResult struct {
	Size        Size
	Params      experiment.Params[float64]
	Results     []experiment.Results[float64]
	Observables []thermo.Observables
	Elapsed     time.Duration
}

// Run executes the scenario size by size. Each size uses the runner's full
// worker pool. sink, if set, is called after every size and may abort the
// scenario by returning an error.
func Run(ctx context.Context, sc *Scenario, runner *experiment.Runner[int8, float64], log logrus.FieldLogger, sink func(SizeResult) error) ([]SizeResult, error) {
	base, err := sc.Base()
	if err != nil {
		return nil, err
	}

	out := make([]SizeResult, 0, len(sc.Sizes))
	for i, size := range sc.Sizes {
		log.WithFields(logrus.Fields{"step": i + 1, "of": len(sc.Sizes), "size": size}).Info("running size")

		cfg := *base
		cfg.Rows, cfg.Columns = size.Rows, size.Columns
		params, err := cfg.Params(log)
		if err != nil {
			return out, fmt.Errorf("size %s: %w", size, err)
		}

		start := time.Now()
		results, err := runner.Run(ctx, size.Rows, size.Columns, params)
		if err != nil {
			return out, fmt.Errorf("size %s: %w", size, err)
		}

		res := SizeResult{
			Size:        size,
			Params:      params,
			Results:     results,
			Observables: thermo.DeriveAll(results, size.Rows, size.Columns),
			Elapsed:     time.Since(start),
		}
		if sink != nil {
			if err := sink(res); err != nil {
				return out, err
			}
		}
		out = append(out, res)
	}
	return out, nil
}

// Peak is the pseudo-critical temperature estimate of one size.
type Peak struct {
	Size           Size
	SpecificHeat   float64
	Susceptibility float64
}

func Peaks(results []SizeResult) []Peak {
	peaks := make([]Peak, 0, len(results))
	for _, r := range results {
		p := Peak{Size: r.Size}
		p.SpecificHeat, _ = thermo.PeakTemperature(r.Observables, thermo.QuantitySpecificHeat)
		p.Susceptibility, _ = thermo.PeakTemperature(r.Observables, thermo.QuantitySusceptibility)
		peaks = append(peaks, p)
	}
	return peaks
}
