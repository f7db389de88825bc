package lattice

import (
	"errors"
	"strings"
	"testing"
)

type seqInts struct {
	vals []int32
	i    int
}

func (s *seqInts) IntRange(low, high int32) int32 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return low + v%(high-low)
}

type constFloat float64

func (c constFloat) FloatRange(low, high float64) float64 {
	return low + (high-low)*float64(c)
}

// counting fills cells with a distinct value per cell so wrapped lookups can
// be told apart.
func counting() Generator[int16] {
	n := int16(0)
	return func() int16 {
		n++
		return n
	}
}

func TestNewInvalidDimensions(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"zero rows", 0, 4},
		{"zero columns", 4, 0},
		{"negative rows", -2, 4},
		{"both negative", -2, -4},
		{"overflow", 1 << 16, 1 << 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New[int8, float64](tt.rows, tt.cols, AllUp[int8]())
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("expected ErrInvalidDimensions, got %v", err)
			}
		})
	}
}

func TestNewFillsRowMajor(t *testing.T) {
	l, err := New[int16, float64](3, 4, counting())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	if l.Len() != 12 {
		t.Errorf("expected 12 cells, got %d", l.Len())
	}
	if l.At(0, 0) != 1 || l.At(0, 3) != 4 || l.At(1, 0) != 5 || l.At(2, 3) != 12 {
		t.Errorf("unexpected row-major layout: row0=%v row1=%v", l.Row(0), l.Row(1))
	}
}

func TestPeriodicWraparound(t *testing.T) {
	rows, cols := 3, 5
	l, err := New[int16, float64](rows, cols, counting())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	for i := -7; i <= 7; i++ {
		for j := -11; j <= 11; j++ {
			want := l.At(i, j)
			for k := -3; k <= 3; k++ {
				if got := l.At(i+k*rows, j); got != want {
					t.Fatalf("At(%d,%d)=%d, At(%d,%d)=%d", i, j, want, i+k*rows, j, got)
				}
				if got := l.At(i, j+k*cols); got != want {
					t.Fatalf("At(%d,%d)=%d, At(%d,%d)=%d", i, j, want, i, j+k*cols, got)
				}
			}
		}
	}

	if l.At(-1, -1) != l.At(rows-1, cols-1) {
		t.Error("(-1,-1) should wrap to the last cell")
	}
}

func TestFlipAndSet(t *testing.T) {
	l, _ := New[int8, float64](4, 4, AllUp[int8]())

	if v := l.Flip(-1, 4); v != -1 {
		t.Errorf("expected flipped spin -1, got %d", v)
	}
	if l.At(3, 0) != -1 {
		t.Error("flip did not land on wrapped cell (3,0)")
	}
	if l.Sum() != 14 {
		t.Errorf("expected sum 14, got %f", l.Sum())
	}

	l.Set(5, 5, -1)
	if l.At(1, 1) != -1 {
		t.Error("set did not land on wrapped cell (1,1)")
	}
	if l.Sum() != 12 {
		t.Errorf("expected sum 12, got %f", l.Sum())
	}
}

func TestReset(t *testing.T) {
	l, _ := New[int8, float32](5, 7, AllUp[int8]())
	l.Reset(AllDown[int8]())

	if rows, cols := l.Shape(); rows != 5 || cols != 7 {
		t.Errorf("reset changed shape to %dx%d", rows, cols)
	}
	if l.Sum() != -35 {
		t.Errorf("expected sum -35, got %f", l.Sum())
	}
}

func TestSampleCell(t *testing.T) {
	l, _ := New[int8, float64](3, 4, AllUp[int8]())
	src := &seqInts{vals: []int32{0, 5, 11, 13}}

	want := [][2]int{{0, 0}, {1, 1}, {2, 3}, {0, 1}}
	for _, w := range want {
		i, j := l.SampleCell(src)
		if i != w[0] || j != w[1] {
			t.Errorf("expected (%d,%d), got (%d,%d)", w[0], w[1], i, j)
		}
	}
}

func TestThermal(t *testing.T) {
	up := Thermal[int8](constFloat(0.1))
	down := Thermal[int8](constFloat(0.9))

	if up() != 1 {
		t.Error("draw below 0.5 should give spin up")
	}
	if down() != -1 {
		t.Error("draw above 0.5 should give spin down")
	}
}

func TestGeneratorFor(t *testing.T) {
	gen, err := GeneratorFor[int8](StateDown, nil)
	if err != nil || gen() != -1 {
		t.Errorf("down state: got err=%v", err)
	}

	if _, err := GeneratorFor[int8](StateThermal, nil); !errors.Is(err, ErrNoSource) {
		t.Errorf("expected ErrNoSource, got %v", err)
	}

	var unknown *UnknownStateError
	if _, err := GeneratorFor[int8]("sideways", nil); !errors.As(err, &unknown) {
		t.Errorf("expected UnknownStateError, got %v", err)
	} else if unknown.State != "sideways" || !strings.Contains(unknown.Error(), `"sideways"`) {
		t.Errorf("error does not name the state: %v", unknown)
	}
}

func TestClone(t *testing.T) {
	l, _ := New[int8, float64](2, 2, AllUp[int8]())
	c := l.Clone()
	c.Flip(0, 0)

	if l.At(0, 0) != 1 {
		t.Error("clone shares storage with original")
	}
}
