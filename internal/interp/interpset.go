package interp

import (
	"math"
	"sort"
)

// InterpSet is a sorted {x -> y} mapping with linear interpolation inside
// the domain and nearest-endpoint outside it (spec §4.2). Used for antenna
// and target tabulations (file antennas, FileTarget azimuth/elevation
// tables).
type InterpSet struct {
	xs []float64
	ys []float64
}

// NewInterpSet builds an InterpSet, sorting samples by x.
func NewInterpSet() *InterpSet {
	return &InterpSet{}
}

// Add inserts one (x, y) sample.
func (s *InterpSet) Add(x, y float64) {
	i := sort.SearchFloat64s(s.xs, x)
	s.xs = append(s.xs, 0)
	copy(s.xs[i+1:], s.xs[i:])
	s.xs[i] = x
	s.ys = append(s.ys, 0)
	copy(s.ys[i+1:], s.ys[i:])
	s.ys[i] = y
}

// Value returns the linearly interpolated y at x, clamped to the nearest
// endpoint outside the domain.
func (s *InterpSet) Value(x float64) float64 {
	n := len(s.xs)
	if n == 0 {
		return 0
	}
	if n == 1 || x <= s.xs[0] {
		return s.ys[0]
	}
	if x >= s.xs[n-1] {
		return s.ys[n-1]
	}
	i := sort.SearchFloat64s(s.xs, x)
	if s.xs[i] == x {
		return s.ys[i]
	}
	// i is the first index with xs[i] > x, so bracket is [i-1, i].
	x0, x1 := s.xs[i-1], s.xs[i]
	y0, y1 := s.ys[i-1], s.ys[i]
	w := (x - x0) / (x1 - x0)
	return y0*(1-w) + y1*w
}

// Max returns the maximum |y| across all samples.
func (s *InterpSet) Max() float64 {
	m := 0.0
	for _, y := range s.ys {
		if a := math.Abs(y); a > m {
			m = a
		}
	}
	return m
}

// Divide scales every y by 1/a.
func (s *InterpSet) Divide(a float64) {
	if a == 0 {
		return
	}
	for i := range s.ys {
		s.ys[i] /= a
	}
}

// Len returns the number of samples.
func (s *InterpSet) Len() int { return len(s.xs) }
