package config

import "sort"

var Presets = map[string]*Config{
	"quick": {
		Rows:                 16,
		Columns:              16,
		Coupling:             1,
		TemperatureRange:     &RangeConfig{Start: 1.0, Stop: 4.0, Step: 0.25},
		ThermalizationSweeps: 200,
		MeasurementSweeps:    200,
		MeasureEvery:         1,
	},
	"critical": {
		Rows:                 32,
		Columns:              32,
		Coupling:             1,
		TemperatureRange:     &RangeConfig{Start: 2.0, Stop: 2.6, Step: 0.02},
		ThermalizationSweeps: 2000,
		MeasurementSweeps:    5000,
		MeasureEvery:         2,
		StructureFactor:      true,
	},
	"phase": {
		Rows:                 32,
		Columns:              32,
		Coupling:             1,
		TemperatureRange:     &RangeConfig{Start: 0.5, Stop: 5.0, Step: 0.1},
		ThermalizationSweeps: 1000,
		MeasurementSweeps:    2000,
		MeasureEvery:         1,
	},
	"large": {
		Rows:                 128,
		Columns:              128,
		Coupling:             1,
		TemperatureRange:     &RangeConfig{Start: 1.5, Stop: 3.5, Step: 0.1},
		ThermalizationSweeps: 2000,
		MeasurementSweeps:    2000,
		MeasureEvery:         4,
		StructureFactor:      true,
		ResyncEvery:          500,
	},
	"antiferro": {
		Rows:                 10,
		Columns:              10,
		Coupling:             -1,
		Temperatures:         []float64{2.0},
		ThermalizationSweeps: 1000,
		MeasurementSweeps:    1000,
		MeasureEvery:         1,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Temperatures = append([]float64(nil), p.Temperatures...)
	if p.TemperatureRange != nil {
		r := *p.TemperatureRange
		cfg.TemperatureRange = &r
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
