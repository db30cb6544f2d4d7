package recv

import (
	"math"
	"math/cmplx"
	"runtime"
	"sort"
	"sync"

	"github.com/banshee-data/fers/internal/config"
	"github.com/banshee-data/fers/internal/interp"
	"github.com/banshee-data/fers/internal/rng"
	"github.com/banshee-data/fers/internal/signal"
	"github.com/banshee-data/fers/internal/world"
)

// Assembler runs component C7 over one receiver at a time.
type Assembler struct {
	Params     *config.GlobalParams
	FilterBank *interp.FilterBank
}

// New builds an Assembler, resolving the shared Kaiser-sinc filter bank for
// the configured tap length (spec §4.2 "built lazily on first use").
func New(params *config.GlobalParams) *Assembler {
	return &Assembler{Params: params, FilterBank: interp.Get(params.RenderFilterLength)}
}

// AssembleReceiver carves a receiver's accumulated responses into
// fixed-PRF windows and renders each one (spec §4.7).
func (a *Assembler) AssembleReceiver(rx *world.Receiver) ([]Window, error) {
	responses := rx.Responses()
	sort.Slice(responses, func(i, j int) bool { return responses[i].StartTime() < responses[j].StartTime() })

	rateEff := a.Params.EffectiveRate()
	oversample := a.Params.OversampleRatio
	duration := a.Params.EndTime - a.Params.StartTime
	nWindows := int(math.Ceil(duration * rx.WindowPRF))
	if nWindows < 0 {
		nWindows = 0
	}

	windows := make([]Window, nWindows)
	for w := 0; w < nWindows; w++ {
		win, err := a.assembleWindow(rx, responses, w, rateEff, oversample)
		if err != nil {
			return nil, err
		}
		windows[w] = win
	}
	return windows, nil
}

// assembleWindow implements spec §4.7 steps a-i for one window index.
func (a *Assembler) assembleWindow(rx *world.Receiver, responses []*world.Response, w int, rateEff float64, oversample int) (Window, error) {
	size := int(math.Ceil(rx.WindowLength * rateEff))
	buf := make([]complex128, size)

	if rx.NoiseTempRx > 0 {
		power := a.Params.KBoltzmann * rx.NoiseTempRx * (rateEff / 2)
		sigma := math.Sqrt(power / 2)
		stream := rx.WGNStream()
		for i := range buf {
			re, im := rng.GaussianPair(stream, sigma)
			buf[i] += complex(re, im)
		}
	}

	phaseNoise, carrier := a.generatePhaseNoise(rx, size, rateEff)

	rawStart := float64(w)/rx.WindowPRF + rx.WindowSkip + phaseNoise[0]/(2*math.Pi*carrier)
	snapped := math.Round(rawStart*rateEff) / rateEff
	fracWinDelay := rawStart*rateEff - math.Round(rawStart*rateEff)
	windowStart := snapped

	if err := a.superposeResponses(buf, responses, windowStart, rx.WindowLength, rateEff, fracWinDelay); err != nil {
		return Window{}, err
	}

	downsampled := signal.Downsample(buf, oversample, a.Params.RenderFilterLength)
	applyPhaseNoise(downsampled, phaseNoise)

	fullscale, err := quantise(downsampled, a.Params.ADCBits)
	if err != nil {
		return Window{}, err
	}

	return Window{
		Index:     w,
		StartTime: windowStart,
		Rate:      a.Params.Rate,
		Fullscale: fullscale,
		IQ:        downsampled,
	}, nil
}

// applyPhaseNoise multiplies each post-downsample sample by
// exp(i*phaseNoise[n]), indexed linearly by n (spec §4.7.g; matches
// addPhaseNoiseToWindow in the original receiver_export.cpp, which runs
// over new_size after downsample() has already shrunk the window — no
// stride by the oversample ratio).
func applyPhaseNoise(downsampled []complex128, phaseNoise []float64) {
	for n := range downsampled {
		srcIdx := n
		if srcIdx >= len(phaseNoise) {
			srcIdx = len(phaseNoise) - 1
		}
		downsampled[n] *= cmplx.Rect(1, phaseNoise[srcIdx])
	}
}

// generatePhaseNoise draws size samples from the receiver's timing source,
// then advances it past this window per spec §4.7.c. A disabled/absent
// timing source yields all-zero phase with unity carrier.
func (a *Assembler) generatePhaseNoise(rx *world.Receiver, size int, rateEff float64) ([]float64, float64) {
	timing := rx.Timing()
	phase := make([]float64, size)
	if timing == nil || !timing.Enabled() {
		return phase, 1
	}
	for i := range phase {
		phase[i] = timing.NextSample()
	}
	if timing.SyncOnPulse() {
		skip := int(math.Floor(rateEff * rx.WindowSkip))
		timing.Reset()
		timing.Skip(skip)
	} else {
		skip := int(math.Floor(rateEff/rx.WindowPRF - rateEff*rx.WindowLength))
		if skip > 0 {
			timing.Skip(skip)
		}
	}
	return phase, timing.Frequency()
}

// superposeResponses renders every response overlapping
// [windowStart, windowStart+windowLength] and accumulates it into buf at its
// sample offset, parallelised across responses with per-goroutine local
// buffers merged under a mutex (spec §4.7.e/§5).
func (a *Assembler) superposeResponses(buf []complex128, responses []*world.Response, windowStart, windowLength, rateEff, fracWinDelay float64) error {
	windowEnd := windowStart + windowLength

	workers := a.Params.RenderThreads
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, resp := range responses {
		if resp.EndTime() < windowStart || resp.StartTime() > windowEnd {
			continue
		}
		resp := resp
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			chunk, err := resp.Wave.Render(resp.Points, a.FilterBank, fracWinDelay)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			offset := int(math.Round(rateEff * (resp.StartTime() - windowStart)))

			mu.Lock()
			for i, v := range chunk {
				idx := offset + i
				if idx < 0 || idx >= len(buf) {
					continue
				}
				buf[idx] += v
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	return firstErr
}

// quantise implements spec §4.7.h: find M = max(|re|,|im|) across the
// window; if ADCBits > 0, snap every component to a level/levels grid
// clamped to [-1,1]; else normalise by M when M > 0. Returns the fullscale
// value M.
func quantise(data []complex128, adcBits int) (float64, error) {
	m := 0.0
	for _, v := range data {
		re, im := real(v), imag(v)
		if math.IsNaN(re) || math.IsNaN(im) {
			return 0, ErrNumericalError
		}
		if math.Abs(re) > m {
			m = math.Abs(re)
		}
		if math.Abs(im) > m {
			m = math.Abs(im)
		}
	}
	if m == 0 {
		return 0, nil
	}
	if adcBits > 0 {
		levels := math.Exp2(float64(adcBits - 1))
		for i, v := range data {
			re := clamp(math.Floor(levels*real(v)/m)/levels, -1, 1)
			im := clamp(math.Floor(levels*imag(v)/m)/levels, -1, 1)
			if math.IsNaN(re) || math.IsNaN(im) {
				return 0, ErrNumericalError
			}
			data[i] = complex(re, im)
		}
		return m, nil
	}
	for i, v := range data {
		data[i] = complex(real(v)/m, imag(v)/m)
	}
	return m, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
