package timeseries

import (
	"strings"
	"testing"
)

func mustSeries(t *testing.T, times, values []float64) *Series {
	t.Helper()
	s, err := New(times, values)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		times  []float64
		values []float64
	}{
		{"length mismatch", []float64{0, 1, 2}, []float64{0, 1}},
		{"single point", []float64{0}, []float64{1}},
		{"empty", nil, nil},
		{"not increasing", []float64{0, 2, 2}, []float64{0, 1, 2}},
		{"decreasing", []float64{0, 2, 1}, []float64{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.times, tt.values); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestInteriorInterpolation(t *testing.T) {
	s := mustSeries(t, []float64{0, 10}, []float64{0, 10})

	v, err := s.ValueAt(5, Error)
	if err != nil {
		t.Fatalf("ValueAt failed: %v", err)
	}
	if v != 5 {
		t.Errorf("midpoint: expected 5, got %v", v)
	}

	v, _ = s.ValueAt(2.5, Clamp)
	if v != 2.5 {
		t.Errorf("quarter point: expected 2.5, got %v", v)
	}
}

func TestEndpointsExact(t *testing.T) {
	s := mustSeries(t, []float64{0, 10}, []float64{1, 3})

	// Exact boundary queries are in-range in every mode, including Error.
	for _, mode := range []Extrapolation{Clamp, Zero, Error} {
		v, err := s.ValueAt(0, mode)
		if err != nil {
			t.Fatalf("mode %v at start: %v", mode, err)
		}
		if v != 1 {
			t.Errorf("mode %v at start: expected 1, got %v", mode, v)
		}
		v, err = s.ValueAt(10, mode)
		if err != nil {
			t.Fatalf("mode %v at end: %v", mode, err)
		}
		if v != 3 {
			t.Errorf("mode %v at end: expected 3, got %v", mode, v)
		}
	}
}

func TestExtrapolationModes(t *testing.T) {
	s := mustSeries(t, []float64{0, 10}, []float64{1, 3})

	tests := []struct {
		t    float64
		mode Extrapolation
		want float64
	}{
		{-1, Clamp, 1},
		{11, Clamp, 3},
		{-1, Zero, 0},
		{11, Zero, 0},
	}
	for _, tt := range tests {
		v, err := s.ValueAt(tt.t, tt.mode)
		if err != nil {
			t.Fatalf("ValueAt(%v, %v): %v", tt.t, tt.mode, err)
		}
		if v != tt.want {
			t.Errorf("ValueAt(%v, %v): expected %v, got %v", tt.t, tt.mode, tt.want, v)
		}
	}

	if _, err := s.ValueAt(-1, Error); err == nil {
		t.Error("expected error before start")
	} else if !strings.Contains(err.Error(), "before") {
		t.Errorf("error should name the exceeded bound: %v", err)
	}
	if _, err := s.ValueAt(11, Error); err == nil {
		t.Error("expected error after end")
	} else if !strings.Contains(err.Error(), "after") {
		t.Errorf("error should name the exceeded bound: %v", err)
	}
}

func TestBinarySearchBracket(t *testing.T) {
	times := make([]float64, 100)
	values := make([]float64, 100)
	for i := range times {
		times[i] = float64(i)
		values[i] = 2 * float64(i)
	}
	s := mustSeries(t, times, values)

	for _, q := range []float64{0.5, 33.25, 50, 98.75} {
		v, err := s.ValueAt(q, Error)
		if err != nil {
			t.Fatalf("ValueAt(%v): %v", q, err)
		}
		if v != 2*q {
			t.Errorf("ValueAt(%v): expected %v, got %v", q, 2*q, v)
		}
	}
}

func TestImmutableAfterNew(t *testing.T) {
	times := []float64{0, 10}
	values := []float64{1, 3}
	s := mustSeries(t, times, values)

	times[0] = 100
	values[0] = 100

	v, err := s.ValueAt(0, Error)
	if err != nil {
		t.Fatalf("ValueAt failed: %v", err)
	}
	if v != 1 {
		t.Errorf("series should copy its inputs: expected 1, got %v", v)
	}
}

func TestParseExtrapolation(t *testing.T) {
	for s, want := range map[string]Extrapolation{"clamp": Clamp, "zero": Zero, "error": Error} {
		got, err := ParseExtrapolation(s)
		if err != nil {
			t.Fatalf("ParseExtrapolation(%q): %v", s, err)
		}
		if got != want {
			t.Errorf("ParseExtrapolation(%q): expected %v, got %v", s, want, got)
		}
	}
	if _, err := ParseExtrapolation("wrap"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
