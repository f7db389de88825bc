package experiment

import (
	"math"
	"testing"
)

func TestAccumulatorMeans(t *testing.T) {
	acc := NewAccumulator[float64](4)
	for _, v := range [][2]float64{{2, -8}, {-4, -6}, {0, -4}, {2, -2}} {
		acc.Observe(v[0], v[1])
	}
	acc.ObserveModes(1, 3)

	r := acc.Results()
	checks := []struct {
		name      string
		got, want float64
	}{
		{"<|S|>", r.AbsMagnetization, 2},
		{"<S²>", r.MagnetizationSq, 6},
		{"<E>", r.Energy, -5},
		{"<E²>", r.EnergySq, 30},
		{"S(q0)", r.StructureQ0, 0.25},
		{"S(q1)", r.StructureQ1, 0.75},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-12 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if r.Samples != 4 {
		t.Errorf("samples = %d, want 4", r.Samples)
	}
}

func TestAccumulatorReadableMidway(t *testing.T) {
	acc := NewAccumulator[float32](2)
	acc.Observe(4, -10)
	if got := acc.Results().Energy; got != -5 {
		t.Errorf("partial mean = %v, want -5", got)
	}
}

func TestAccumulatorNoSamples(t *testing.T) {
	acc := NewAccumulator[float64](0)
	acc.Observe(3, 3)
	if r := acc.Results(); r.Energy != 0 || r.AbsMagnetization != 0 {
		t.Errorf("expected zero moments, got %+v", r)
	}
}

func TestSamples(t *testing.T) {
	tests := []struct {
		sweeps, every, want int
	}{
		{10, 1, 10},
		{10, 3, 4},
		{9, 3, 3},
		{0, 5, 0},
		{7, 0, 7},
		{5, 10, 1},
	}
	for _, tt := range tests {
		p := Params[float64]{MeasurementSweeps: tt.sweeps, MeasureEvery: tt.every}
		if got := p.Samples(); got != tt.want {
			t.Errorf("Samples(%d, every %d) = %d, want %d", tt.sweeps, tt.every, got, tt.want)
		}
	}
}

func TestSeedFor(t *testing.T) {
	p := Params[float64]{Seed: 100}
	if p.seedFor(0) != 100 || p.seedFor(3) != 103 {
		t.Error("seed should be offset by context index")
	}
	if (Params[float64]{}).seedFor(5) != 0 {
		t.Error("zero seed should stay zero for OS seeding")
	}
}

func TestWithDefaults(t *testing.T) {
	p := Params[float64]{}.withDefaults()
	if p.MeasureEvery != 1 || p.Workers < 1 || p.RNG == "" {
		t.Errorf("unexpected defaults: %+v", p)
	}
}
