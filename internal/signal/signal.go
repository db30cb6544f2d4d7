// Package signal implements the oversampled baseband waveform store and the
// per-interaction renderer (spec.md §4.5, component C5).
package signal

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/banshee-data/fers/internal/interp"
)

// InterpPoint is the sampled propagation state at one instant during a
// pulse (spec §3).
type InterpPoint struct {
	Power            float64
	Time             float64
	Delay            float64
	DopplerFactor    float64
	Phase            float64
	NoiseTemperature float64
}

// Signal stores an oversampled complex baseband vector, its sample rate,
// and renders InterpPoint sequences into a baseband waveform (spec §3/§4.5).
type Signal struct {
	data []complex128
	rate float64
}

// Load stores data upsampled by ratio, designed with a Blackman-windowed
// sinc FIR of length 2*filterLength+1 for cutoff 1/ratio (spec §4.5
// "Signal.load"). ratio == 1 stores data unchanged at sampleRate.
func Load(data []complex128, sampleRate float64, ratio, filterLength int) (*Signal, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: Load called with empty data")
	}
	if ratio < 1 {
		return nil, fmt.Errorf("signal: Load called with ratio < 1")
	}
	if ratio == 1 {
		out := make([]complex128, len(data))
		copy(out, data)
		return &Signal{data: out, rate: sampleRate}, nil
	}
	taps := blackmanSincLowpass(2*filterLength+1, 1.0/float64(ratio))
	upsampled := upsample(data, ratio, taps)
	return &Signal{data: upsampled, rate: sampleRate * float64(ratio)}, nil
}

// blackmanSincLowpass designs an odd-length lowpass FIR: a sinc kernel at
// the given normalised cutoff (fraction of Nyquist) windowed by a Blackman
// window, used both for C5's oversample-on-load FIR and C7's downsample FIR
// (spec §4.5, §4.7.f — "same family as upsampler").
func blackmanSincLowpass(n int, cutoff float64) []float64 {
	if n%2 == 0 {
		n++
	}
	taps := make([]float64, n)
	m := n - 1
	sum := 0.0
	for i := 0; i < n; i++ {
		x := float64(i) - float64(m)/2
		var s float64
		if x == 0 {
			s = cutoff
		} else {
			s = math.Sin(math.Pi*cutoff*x) / (math.Pi * x)
		}
		w := 0.42 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(m)) + 0.08*math.Cos(4*math.Pi*float64(i)/float64(m))
		taps[i] = s * w
		sum += taps[i]
	}
	if sum != 0 {
		for i := range taps {
			taps[i] /= sum
		}
	}
	return taps
}

// upsample inserts (ratio-1) zeros between each input sample and applies
// the lowpass FIR (classic zero-stuff + filter interpolation).
func upsample(data []complex128, ratio int, taps []float64) []complex128 {
	n := len(data)
	stuffed := make([]complex128, n*ratio)
	for i, d := range data {
		stuffed[i*ratio] = d * complex(float64(ratio), 0)
	}
	return convolveSame(stuffed, taps)
}

// downsample applies the lowpass FIR then decimates by ratio (spec §4.7.f).
func downsample(data []complex128, ratio int, taps []float64) []complex128 {
	filtered := convolveSame(data, taps)
	out := make([]complex128, (len(data)+ratio-1)/ratio)
	for i := range out {
		idx := i * ratio
		if idx < len(filtered) {
			out[i] = filtered[idx]
		}
	}
	return out
}

// Downsample re-exports downsample for C7's use.
func Downsample(data []complex128, ratio, filterLength int) []complex128 {
	if ratio <= 1 {
		out := make([]complex128, len(data))
		copy(out, data)
		return out
	}
	taps := blackmanSincLowpass(2*filterLength+1, 1.0/float64(ratio))
	return downsample(data, ratio, taps)
}

func convolveSame(data []complex128, taps []float64) []complex128 {
	n := len(data)
	m := len(taps)
	half := m / 2
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		var acc complex128
		for j := 0; j < m; j++ {
			k := i + j - half
			if k >= 0 && k < n {
				acc += data[k] * complex(taps[j], 0)
			}
		}
		out[i] = acc
	}
	return out
}

// Len returns the stored sample count.
func (s *Signal) Len() int { return len(s.data) }

// Rate returns the stored sample rate.
func (s *Signal) Rate() float64 { return s.rate }

// Render implements spec §4.5 step-by-step: for each output sample n, find
// the bracketing InterpPoint pair, blend amplitude/phase/delay, split the
// fractional delay into an integer unwrap and a filter-bank fractional
// part, and accumulate the filtered, phase-rotated contribution. The
// output has the same length as the stored data.
func (s *Signal) Render(points []InterpPoint, fb *interp.FilterBank, fracWinDelay float64) ([]complex128, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("signal: Render called with no InterpPoints")
	}
	size := len(s.data)
	out := make([]complex128, size)
	startTime := points[0].Time
	startDelaySamples := math.Round(s.rate * points[0].Delay)
	filterLen := fb.Length()
	half := filterLen / 2

	iter, next := 0, 0
	if len(points) > 1 {
		next = 1
	}

	for n := 0; n < size; n++ {
		tn := startTime + float64(n)/s.rate
		for next < len(points)-1 && points[next].Time < tn {
			iter = next
			next++
		}
		var bw float64
		if iter != next {
			bw = (tn - points[iter].Time) / (points[next].Time - points[iter].Time)
			if bw < 0 {
				bw = 0
			}
			if bw > 1 {
				bw = 1
			}
		}
		a := lerp(math.Sqrt(math.Max(points[iter].Power, 0)), math.Sqrt(math.Max(points[next].Power, 0)), bw)
		phi := lerp(points[iter].Phase, points[next].Phase, bw)
		delay := lerp(points[iter].Delay, points[next].Delay, bw)
		d := -(delay*s.rate - startDelaySamples + fracWinDelay)
		k := math.Floor(d)
		delta := d - k

		h, err := fb.GetFilter(delta)
		if err != nil {
			return nil, err
		}

		var acc complex128
		for j := -half; j < filterLen-half; j++ {
			idx := n + j + int(k)
			if idx < 0 || idx >= size {
				continue
			}
			acc += s.data[idx] * complex(h[j+half], 0)
		}
		rot := cmplx.Rect(1, phi)
		out[n] = rot * complex(a, 0) * acc
	}
	return out, nil
}

func lerp(a, b, w float64) float64 { return a*(1-w) + b*w }
