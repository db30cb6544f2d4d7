package sim

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/banshee-data/fers/internal/config"
	"github.com/banshee-data/fers/internal/geom"
	"github.com/banshee-data/fers/internal/logx"
	"github.com/banshee-data/fers/internal/signal"
	"github.com/banshee-data/fers/internal/world"
)

// Scheduler runs component C6 over a prepared World: for every ordered
// (transmitter, receiver) pair it enumerates pulses, samples bistatic and
// direct-path propagation geometry, and appends the resulting Responses to
// each receiver (spec §4.6).
type Scheduler struct {
	World  *world.World
	Params *config.GlobalParams
}

// New constructs a Scheduler over a World that has already had Prepare
// called on it.
func New(w *world.World, params *config.GlobalParams) *Scheduler {
	return &Scheduler{World: w, Params: params}
}

type pairJob struct {
	txIdx, rxIdx int
}

// Run executes phase P1 (spec §5): pairs are enumerated and dispatched to a
// worker pool bounded by Params.RenderThreads (0 means CPU count); each
// worker runs a pair to completion. The first fatal error observed aborts
// the whole run — peers check a process-wide flag between work items and
// return early (spec §7), mirroring the teacher's sweep runner's
// single-assignment "already running" guard in spirit: a fatal condition
// claims the run's outcome the same way an already-started sweep claims the
// runner's exclusivity.
func (s *Scheduler) Run() error {
	txs := s.World.Transmitters
	rxs := s.World.Receivers
	if len(txs) == 0 || len(rxs) == 0 {
		return nil
	}

	jobs := make(chan pairJob, len(txs)*len(rxs))
	for ti := range txs {
		for ri := range rxs {
			jobs <- pairJob{txIdx: ti, rxIdx: ri}
		}
	}
	close(jobs)

	workers := s.Params.RenderThreads
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(txs)*len(rxs) {
		workers = len(txs) * len(rxs)
	}
	if workers < 1 {
		workers = 1
	}

	var (
		wg      sync.WaitGroup
		abort   atomic.Bool
		errMu   sync.Mutex
		firstErr error
	)

	runID := uuid.New().String()

	for wkr := 0; wkr < workers; wkr++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if abort.Load() {
					return
				}
				tx := txs[job.txIdx]
				rx := rxs[job.rxIdx]
				if err := s.runPair(tx, rx, job.rxIdx); err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					errMu.Unlock()
					abort.Store(true)
					logx.Logf("sim: run %s: pair %s/%s failed: %v", runID, tx.Name, rx.Name, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	return firstErr
}

// runPair enumerates pulses for one (tx, rx) pair and samples every target's
// bistatic response plus, when applicable, the direct-path response (spec
// §4.6).
func (s *Scheduler) runPair(tx *world.Transmitter, rx *world.Receiver, rxIdx int) error {
	rate := s.Params.EffectiveRate()
	start, end := s.Params.StartTime, s.Params.EndTime
	c := s.Params.C

	n := tx.PulseCount(start, end, rate)
	prf := tx.SnappedPRF(rate)

	for i := 0; i < n; i++ {
		var tau0 float64
		if tx.ModeKind != world.CW {
			tau0 = float64(i) / prf
		}

		for _, target := range s.World.Targets {
			resp, err := s.sampleBistatic(tx, rx, target, tau0, c)
			if err != nil {
				return err
			}
			rx.AddResponse(resp)
		}

		if !rx.HasFlag(world.FlagNoDirect) && !tx.IsMonostatic(rxIdx) {
			resp, err := s.sampleDirect(tx, rx, tau0, c)
			if err != nil {
				return err
			}
			rx.AddResponse(resp)
		}
	}
	return nil
}

// sampleBistatic implements spec §4.6's "Bistatic response sampling" for one
// pulse against one target.
func (s *Scheduler) sampleBistatic(tx *world.Transmitter, rx *world.Receiver, target *world.Target, tau0, c float64) (*world.Response, error) {
	wave := tx.Wave
	dt := 1 / s.Params.CWSampleRate
	lengthSteps := int(math.Ceil(wave.Length / dt))

	resp := world.NewResponse(tx, wave)

	for k := 0; k <= lengthSteps; k++ {
		tk := tau0 + float64(k)*dt

		pT := tx.Position(tk)
		pR := rx.Position(tk)
		pX := target.Position(tk)

		uTX := pX.Sub(pT)
		uRX := pX.Sub(pR)
		rT := uTX.Length()
		rR := uRX.Length()
		if rT <= geom.EPSILON || rR <= geom.EPSILON {
			return nil, ErrRangeError
		}

		delay := (rT + rR) / c

		sigma := target.RCS(uTX, uRX, tk)

		wavelength := c / wave.Carrier
		gT := tx.Antenna.Gain(uTX, tx.Rotation(tk), wavelength)
		gR := rx.Antenna.Gain(uRX, rx.Rotation(tk+delay), wavelength)

		power := gT * gR * sigma / (4 * math.Pi)
		if !rx.HasFlag(world.FlagNoPropLoss) {
			power *= (wavelength * wavelength) / (16 * math.Pi * math.Pi * rT * rT * rR * rR)
		}

		phase := -delay * 2 * math.Pi * wave.Carrier

		pT2 := tx.Position(tk + dt)
		pR2 := rx.Position(tk + dt)
		pX2 := target.Position(tk + dt)
		rT2 := pX2.Sub(pT2).Length()
		rR2 := pX2.Sub(pR2).Length()
		if rT2 <= geom.EPSILON || rR2 <= geom.EPSILON {
			return nil, ErrRangeError
		}
		vR := (rR2 - rR) / dt
		vT := (rT2 - rT) / dt
		doppler := math.Sqrt((1+vR/c)/(1-vR/c)) * math.Sqrt((1+vT/c)/(1-vT/c))

		noiseTemp := rx.NoiseTemperature(rx.Rotation(tk + delay))

		resp.Append(signal.InterpPoint{
			Power:            power,
			Time:             tk + delay,
			Delay:            delay,
			DopplerFactor:    doppler,
			Phase:            phase,
			NoiseTemperature: noiseTemp,
		})
	}

	return resp, nil
}

// sampleDirect implements spec §4.6's "Direct response sampling": the
// transmitter-to-receiver one-way path, skipped for monostatic pairs and
// when the receiver carries FLAG_NODIRECT.
func (s *Scheduler) sampleDirect(tx *world.Transmitter, rx *world.Receiver, tau0, c float64) (*world.Response, error) {
	wave := tx.Wave
	dt := 1 / s.Params.CWSampleRate
	lengthSteps := int(math.Ceil(wave.Length / dt))

	resp := world.NewResponse(tx, wave)

	for k := 0; k <= lengthSteps; k++ {
		tk := tau0 + float64(k)*dt

		pT := tx.Position(tk)
		pR := rx.Position(tk)
		u := pR.Sub(pT)
		r := u.Length()
		if r <= geom.EPSILON {
			return nil, ErrRangeError
		}

		delay := r / c
		wavelength := c / wave.Carrier
		gT := tx.Antenna.Gain(u, tx.Rotation(tk), wavelength)
		gR := rx.Antenna.Gain(u.Scale(-1), rx.Rotation(tk+delay), wavelength)

		power := gT * gR * wavelength * wavelength / (4 * math.Pi)
		if !rx.HasFlag(world.FlagNoPropLoss) {
			power /= 4 * math.Pi * r * r
		}

		phase := -delay * 2 * math.Pi * wave.Carrier

		pT2 := tx.Position(tk + dt)
		pR2 := rx.Position(tk + dt)
		r2 := pR2.Sub(pT2).Length()
		if r2 <= geom.EPSILON {
			return nil, ErrRangeError
		}
		delta := (r2 - r) / dt
		doppler := (c + delta) / (c - delta)

		noiseTemp := rx.NoiseTemperature(rx.Rotation(tk + delay))

		resp.Append(signal.InterpPoint{
			Power:            power,
			Time:             tk + delay,
			Delay:            delay,
			DopplerFactor:    doppler,
			Phase:            phase,
			NoiseTemperature: noiseTemp,
		})
	}

	return resp, nil
}
