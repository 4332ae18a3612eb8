// Package timeseries provides piecewise-linear interpolation over a
// strictly increasing time grid, used to turn sampled weather columns
// into continuous functions of time.
package timeseries

import "fmt"

// Extrapolation selects the behavior of ValueAt outside the grid span.
type Extrapolation int

const (
	// Clamp returns the nearest endpoint value.
	Clamp Extrapolation = iota
	// Zero returns 0.
	Zero
	// Error fails, naming the bound that was exceeded.
	Error
)

func (e Extrapolation) String() string {
	switch e {
	case Clamp:
		return "clamp"
	case Zero:
		return "zero"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// ParseExtrapolation maps a config string to an Extrapolation mode.
func ParseExtrapolation(s string) (Extrapolation, error) {
	switch s {
	case "clamp":
		return Clamp, nil
	case "zero":
		return Zero, nil
	case "error":
		return Error, nil
	default:
		return Clamp, fmt.Errorf("invalid extrapolation mode: %q (expected clamp, zero or error)", s)
	}
}

// Series is an immutable sampled signal. Times are strictly increasing
// seconds; Values holds the sample at each time.
type Series struct {
	times  []float64
	values []float64
}

// New validates and copies the grid. It fails if the slices differ in
// length, hold fewer than two points, or times are not strictly
// increasing.
func New(times, values []float64) (*Series, error) {
	if len(times) != len(values) {
		return nil, fmt.Errorf("times and values must have the same length, got %d and %d",
			len(times), len(values))
	}
	if len(times) < 2 {
		return nil, fmt.Errorf("series must have at least 2 points, got %d", len(times))
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, fmt.Errorf("times must be strictly increasing, got %v after %v at index %d",
				times[i], times[i-1], i)
		}
	}
	s := &Series{
		times:  make([]float64, len(times)),
		values: make([]float64, len(values)),
	}
	copy(s.times, times)
	copy(s.values, values)
	return s, nil
}

// Len returns the number of grid points.
func (s *Series) Len() int { return len(s.times) }

// Span returns the first and last grid times.
func (s *Series) Span() (float64, float64) {
	return s.times[0], s.times[len(s.times)-1]
}

// ValueAt returns the linearly interpolated value at t. Queries exactly
// on either boundary are in-range and return the stored value; beyond
// the boundaries the mode decides.
func (s *Series) ValueAt(t float64, mode Extrapolation) (float64, error) {
	first, last := s.times[0], s.times[len(s.times)-1]

	if t < first || t > last {
		switch mode {
		case Clamp:
			if t < first {
				return s.values[0], nil
			}
			return s.values[len(s.values)-1], nil
		case Zero:
			return 0, nil
		default:
			if t < first {
				return 0, fmt.Errorf("t=%v is before series start %v", t, first)
			}
			return 0, fmt.Errorf("t=%v is after series end %v", t, last)
		}
	}

	if t == first {
		return s.values[0], nil
	}
	if t == last {
		return s.values[len(s.values)-1], nil
	}

	// Binary search for the bracket: times[lo] <= t <= times[hi], hi-lo == 1.
	lo, hi := 0, len(s.times)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if s.times[mid] <= t {
			lo = mid
		} else {
			hi = mid
		}
	}

	t0, t1 := s.times[lo], s.times[hi]
	v0, v1 := s.values[lo], s.values[hi]
	alpha := (t - t0) / (t1 - t0)
	return v0 + alpha*(v1-v0), nil
}
