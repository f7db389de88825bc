package config

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/rng"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Rows <= 0 || cfg.Columns <= 0 {
		t.Error("lattice should be non-empty")
	}
	temps, err := cfg.ResolveTemperatures()
	if err != nil {
		t.Fatal(err)
	}
	if len(temps) != 30 {
		t.Errorf("expected 30 temperatures, got %d", len(temps))
	}
}

func TestArange(t *testing.T) {
	tests := []struct {
		name              string
		start, stop, step float64
		want              []float64
	}{
		{"ascending", 1, 2, 0.25, []float64{1, 1.25, 1.5, 1.75}},
		{"descending", 3, 1, -0.5, []float64{3, 2.5, 2, 1.5}},
		{"rounded count", 0, 1, 0.3, []float64{0, 0.3, 0.6}},
		{"empty", 2, 2, 0.1, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Arange(tt.start, tt.stop, tt.step)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("value %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestArangeErrors(t *testing.T) {
	tests := []struct {
		name              string
		start, stop, step float64
	}{
		{"zero step", 1, 2, 0},
		{"wrong sign up", 1, 2, -0.1},
		{"wrong sign down", 2, 1, 0.1},
		{"nan step", 1, 2, math.NaN()},
		{"nan start", math.NaN(), 1, 0.1},
		{"infinite stop", 0, math.Inf(1), 1},
		{"infinite start", math.Inf(-1), 0, 1},
		{"infinite step", 0, 1, math.Inf(1)},
		{"too many values", 0, 1, 1e-15},
		{"just over the limit", 0, MaxRangeValues + 1, 1},
	}
	for _, tt := range tests {
		if _, err := Arange(tt.start, tt.stop, tt.step); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("%s: expected ErrInvalidRange, got %v", tt.name, err)
		}
	}
}

func TestArangeAtLimit(t *testing.T) {
	values, err := Arange(0, MaxRangeValues, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != MaxRangeValues {
		t.Errorf("len = %d, want %d", len(values), MaxRangeValues)
	}
}

func TestParamsRejectsInfiniteRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inf.yaml")
	data := "temperature_range:\n  start: 1\n  stop: .inf\n  step: 0.5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.Params(nil); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestClampTemperatures(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	in := []float64{0, 1.5, -2, math.NaN()}
	got := ClampTemperatures(in, log)

	want := []float64{MinimumTemperature, 1.5, MinimumTemperature, MinimumTemperature}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if in[0] != 0 {
		t.Error("input slice was modified")
	}
	if n := strings.Count(buf.String(), "clamped"); n != 3 {
		t.Errorf("expected 3 warnings, got %d", n)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rows", func(c *Config) { c.Rows = 0 }},
		{"negative sweeps", func(c *Config) { c.MeasurementSweeps = -1 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
		{"no temperatures", func(c *Config) { c.TemperatureRange = nil }},
		{"unknown rng", func(c *Config) { c.RNG = "lcg" }},
		{"unknown state", func(c *Config) { c.InitialState = "sideways" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestUnknownRNGWrapsKindError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RNG = "lcg"
	if err := cfg.Validate(); !errors.Is(err, rng.ErrUnknownKind) {
		t.Errorf("expected wrapped ErrUnknownKind, got %v", err)
	}
}

func TestParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Temperatures = []float64{0, 2.5}
	cfg.Seed = 7
	cfg.StructureFactor = true

	p, err := cfg.Params(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Temperatures) != 2 || p.Temperatures[0] != MinimumTemperature || p.Temperatures[1] != 2.5 {
		t.Errorf("unexpected temperatures %v", p.Temperatures)
	}
	if p.Seed != 7 || !p.StructureFactor || p.Coupling != DefaultCoupling {
		t.Errorf("fields not carried over: %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("clamped params rejected: %v", err)
	}
	if errors.Is(p.Validate(), experiment.ErrNegativeTemperature) {
		t.Error("clamping should prevent negative temperature errors")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ising.yaml")

	cfg := DefaultConfig()
	cfg.Rows, cfg.Columns = 12, 20
	cfg.Temperatures = []float64{1.0, 2.269}
	cfg.TemperatureRange = nil
	cfg.Field = 0.1
	cfg.RNG = string(rng.KindXorshift64)

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Rows != 12 || loaded.Columns != 20 || loaded.Field != 0.1 || loaded.RNG != "xorshift64" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
	temps, _ := loaded.ResolveTemperatures()
	if len(temps) != 2 || temps[1] != 2.269 {
		t.Errorf("explicit temperatures lost: %v", temps)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("rows: 8\ncoupling: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rows != 8 || cfg.Coupling != -1 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Columns != DefaultColumns || cfg.MeasurementSweeps != DefaultMeasurementSweeps {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("measurement_sweeps: 50\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("critical")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MeasurementSweeps != 50 || !cfg.StructureFactor || cfg.MeasureEvery != 2 {
		t.Errorf("preset not kept under file values: %+v", cfg)
	}
	if base.MeasurementSweeps != 5000 {
		t.Error("LoadOver modified its base")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("rows: [1, 2"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("antiferro")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Coupling != -1 || cfg.Rows != 10 {
		t.Errorf("unexpected preset %+v", cfg)
	}

	cfg.Temperatures[0] = 99
	if Presets["antiferro"].Temperatures[0] != 2.0 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}
