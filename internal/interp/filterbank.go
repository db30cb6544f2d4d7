// Package interp implements the Kaiser-windowed sinc fractional-delay
// filter bank and 1-D sample-set interpolators used for antenna/target
// gain tabulations (spec.md §4.2, component C2).
package interp

import (
	"fmt"
	"math"
	"sync"
)

// ErrFilterOutOfRange is raised when GetFilter is asked for a fractional
// delay outside [-1, 1] (spec §4.2/§7: "programmer error, aborts").
var ErrFilterOutOfRange = fmt.Errorf("interp: fractional delay out of range [-1, 1]")

const (
	beta       = 5.0  // Kaiser window parameter
	bankRows   = 1000 // number of fractional-delay rows in the bank
	bankHalf   = 500
)

// FilterBank is the process-wide Kaiser-sinc filter bank (spec §4.2
// "process-wide singleton, built lazily on first use"). This kernel builds
// one lazily-initialised, immutable FilterBank per filterLength value via
// NewFilterBank, memoised by Get in a mutex-guarded package-level cache;
// callers hold the returned FilterBank and pass it by reference.
type FilterBank struct {
	length int
	alpha  int
	rows   [][]float64
}

var (
	banksMu sync.Mutex
	banks   = map[int]*FilterBank{}
)

// Get returns the shared FilterBank for the given tap count, building it on
// first use and caching it for subsequent calls (spec §4.2 "built lazily on
// first use"; §9 recommends a lazily-initialised immutable value, not a
// rebuild-per-simulation).
func Get(filterLength int) *FilterBank {
	banksMu.Lock()
	defer banksMu.Unlock()
	if fb, ok := banks[filterLength]; ok {
		return fb
	}
	fb := NewFilterBank(filterLength)
	banks[filterLength] = fb
	return fb
}

// NewFilterBank builds a filter bank directly, bypassing the shared cache.
// Exposed for tests; production code should prefer Get.
func NewFilterBank(filterLength int) *FilterBank {
	alpha := filterLength / 2
	i0Beta := besselI0(beta)

	rows := make([][]float64, bankRows)
	for i := 0; i < bankRows; i++ {
		delta := float64(i-bankHalf) / float64(bankHalf)
		row := make([]float64, filterLength)
		for t := 0; t < filterLength; t++ {
			j := float64(t-alpha) - delta
			row[t] = kaiserWindow(float64(t)-delta, alpha, i0Beta) * sincC(j)
		}
		rows[i] = row
	}
	return &FilterBank{length: filterLength, alpha: alpha, rows: rows}
}

// kaiserWindow evaluates w(x) = I0(beta*sqrt(1-((x-alpha)/alpha)^2)) / I0(beta)
// for x in [0, 2*alpha], 0 outside (spec §4.2).
func kaiserWindow(x float64, alpha int, i0Beta float64) float64 {
	a := float64(alpha)
	if x < 0 || x > 2*a {
		return 0
	}
	r := (x - a) / a
	arg := 1 - r*r
	if arg < 0 {
		arg = 0
	}
	return besselI0(beta*math.Sqrt(arg)) / i0Beta
}

// sincC is the normalised ideal-sinc filter sin(pi*x)/(pi*x), sinc(0)=1
// (spec §4.2).
func sincC(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// GetFilter returns the filter row for fractional delay delta, where
// row = floor((delta+1)*500) (spec §4.2). delta outside [-1,1] is a fatal
// programmer error (spec §7).
func (fb *FilterBank) GetFilter(delta float64) ([]float64, error) {
	if delta < -1 || delta > 1 {
		return nil, fmt.Errorf("%w: delta=%g", ErrFilterOutOfRange, delta)
	}
	idx := int(math.Floor((delta + 1) * float64(bankHalf)))
	if idx < 0 {
		idx = 0
	}
	if idx >= bankRows {
		idx = bankRows - 1
	}
	return fb.rows[idx], nil
}

// Length returns the number of taps per row.
func (fb *FilterBank) Length() int { return fb.length }
