package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/rng"
)

const (
	DefaultRows                 = 32
	DefaultColumns              = 32
	DefaultCoupling             = 1.0
	DefaultThermalizationSweeps = 1000
	DefaultMeasurementSweeps    = 1000
	DefaultMeasureEvery         = 1

	// MinimumTemperature replaces zero, negative and NaN temperatures.
	MinimumTemperature = 1e-6

	// MaxRangeValues bounds the length of a temperature range.
	MaxRangeValues = 1_000_000
)

var (
	ErrInvalidRange  = errors.New("config: invalid temperature range")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

type Config struct {
	Rows                 int          `yaml:"rows"`
	Columns              int          `yaml:"columns"`
	Temperatures         []float64    `yaml:"temperatures,omitempty"`
	TemperatureRange     *RangeConfig `yaml:"temperature_range,omitempty"`
	Coupling             float64      `yaml:"coupling"`
	Field                float64      `yaml:"field"`
	ThermalizationSweeps int          `yaml:"thermalization_sweeps"`
	MeasurementSweeps    int          `yaml:"measurement_sweeps"`
	MeasureEvery         int          `yaml:"measure_every"`
	StructureFactor      bool         `yaml:"structure_factor"`
	ResyncEvery          int          `yaml:"resync_every"`
	Workers              int          `yaml:"workers"`
	Seed                 uint64       `yaml:"seed"`
	RNG                  string       `yaml:"rng"`
	InitialState         string       `yaml:"initial_state"`
}

// RangeConfig describes Arange(Start, Stop, Step).
type RangeConfig struct {
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Step  float64 `yaml:"step"`
}

func DefaultConfig() *Config {
	return &Config{
		Rows:                 DefaultRows,
		Columns:              DefaultColumns,
		TemperatureRange:     &RangeConfig{Start: 1.0, Stop: 4.0, Step: 0.1},
		Coupling:             DefaultCoupling,
		ThermalizationSweeps: DefaultThermalizationSweeps,
		MeasurementSweeps:    DefaultMeasurementSweeps,
		MeasureEvery:         DefaultMeasureEvery,
		RNG:                  string(rng.DefaultKind),
		InitialState:         string(lattice.StateUp),
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver applies the file at path on top of a copy of base, so keys
// missing from the file keep the base values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if base.TemperatureRange != nil {
		r := *base.TemperatureRange
		cfg.TemperatureRange = &r
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks value ranges. Temperatures are not checked here; they are
// clamped by Params.
func (c *Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Columns <= 0:
		return fmt.Errorf("%w: lattice must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Rows, c.Columns)
	case c.ThermalizationSweeps < 0 || c.MeasurementSweeps < 0:
		return fmt.Errorf("%w: sweep counts must be >= 0", ErrInvalidConfig)
	case c.MeasureEvery < 0 || c.ResyncEvery < 0 || c.Workers < 0:
		return fmt.Errorf("%w: measure_every, resync_every and workers must be >= 0", ErrInvalidConfig)
	case len(c.Temperatures) == 0 && c.TemperatureRange == nil:
		return fmt.Errorf("%w: no temperatures or temperature_range", ErrInvalidConfig)
	}
	if err := rng.Validate(rng.Kind(c.RNG)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := lattice.GeneratorFor[int8](lattice.InitialState(c.InitialState), rng.OS{}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ResolveTemperatures returns the explicit list if set, otherwise the range.
func (c *Config) ResolveTemperatures() ([]float64, error) {
	if len(c.Temperatures) > 0 {
		return append([]float64(nil), c.Temperatures...), nil
	}
	if c.TemperatureRange == nil {
		return nil, fmt.Errorf("%w: no temperatures configured", ErrInvalidConfig)
	}
	r := c.TemperatureRange
	return Arange(r.Start, r.Stop, r.Step)
}

// Params validates the config and builds experiment parameters, clamping
// non-positive temperatures to MinimumTemperature.
func (c *Config) Params(log logrus.FieldLogger) (experiment.Params[float64], error) {
	if err := c.Validate(); err != nil {
		return experiment.Params[float64]{}, err
	}
	temps, err := c.ResolveTemperatures()
	if err != nil {
		return experiment.Params[float64]{}, err
	}

	return experiment.Params[float64]{
		Temperatures:         ClampTemperatures(temps, log),
		Coupling:             c.Coupling,
		Field:                c.Field,
		ThermalizationSweeps: c.ThermalizationSweeps,
		MeasurementSweeps:    c.MeasurementSweeps,
		MeasureEvery:         c.MeasureEvery,
		StructureFactor:      c.StructureFactor,
		ResyncEvery:          c.ResyncEvery,
		Workers:              c.Workers,
		Seed:                 c.Seed,
		RNG:                  rng.Kind(c.RNG),
		InitialState:         lattice.InitialState(c.InitialState),
	}, nil
}

// Arange yields start, start+step, ... for round(|stop-start|/|step|) values.
// All bounds must be finite, the step nonzero and pointing from start
// towards stop, and the result at most MaxRangeValues long.
func Arange(start, stop, step float64) ([]float64, error) {
	for _, v := range []float64{start, stop, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: start %v, stop %v and step %v must be finite", ErrInvalidRange, start, stop, step)
		}
	}
	if step == 0 {
		return nil, fmt.Errorf("%w: step must be nonzero", ErrInvalidRange)
	}
	if start == stop {
		return []float64{}, nil
	}
	if (stop > start) != (step > 0) {
		return nil, fmt.Errorf("%w: step %v does not lead from %v to %v", ErrInvalidRange, step, start, stop)
	}

	count := math.Round(math.Abs((stop - start) / step))
	if count > MaxRangeValues || math.IsInf(count, 0) {
		return nil, fmt.Errorf("%w: %g values exceed the limit of %d", ErrInvalidRange, count, MaxRangeValues)
	}
	n := int(count)
	values := make([]float64, n)
	for i := range values {
		values[i] = start + step*float64(i)
	}
	return values, nil
}

// ClampTemperatures returns a copy with zero, negative and NaN entries
// replaced by MinimumTemperature, warning once per replaced entry.
func ClampTemperatures(temps []float64, log logrus.FieldLogger) []float64 {
	out := make([]float64, len(temps))
	for i, t := range temps {
		if t > 0 {
			out[i] = t
			continue
		}
		if log != nil {
			log.WithFields(logrus.Fields{"index": i, "temperature": t}).
				Warnf("temperature clamped to %g", MinimumTemperature)
		}
		out[i] = MinimumTemperature
	}
	return out
}
