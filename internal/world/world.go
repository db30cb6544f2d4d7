package world

import (
	"fmt"

	"github.com/banshee-data/fers/internal/antenna"
	"github.com/banshee-data/fers/internal/config"
	"github.com/banshee-data/fers/internal/logx"
	"github.com/banshee-data/fers/internal/signal"
)

// ErrDuplicateName is returned when adding to a name-keyed collection
// (antennas, pulses, timings) under a name already present (spec §3 "Name
// uniqueness within each keyed collection is required; duplicate-add
// fails").
var ErrDuplicateName = fmt.Errorf("world: duplicate name")

// World holds the owned collections that make up a fully built scenario
// (spec §3/§6). Populated by an external parser (out of scope here); the
// kernel only consumes it.
type World struct {
	Platforms    []*Platform
	Transmitters []*Transmitter
	Receivers    []*Receiver
	Targets      []*Target

	antennas map[string]*antenna.Antenna
	pulses   map[string]*signal.RadarSignal
	timings  map[string]*TimingSpec

	Params *config.GlobalParams
}

// New constructs an empty World.
func New(params *config.GlobalParams) *World {
	return &World{
		antennas: map[string]*antenna.Antenna{},
		pulses:   map[string]*signal.RadarSignal{},
		timings:  map[string]*TimingSpec{},
		Params:   params,
	}
}

// AddAntenna registers a named antenna. Fails on a duplicate name; an
// efficiency above 1 is logged and accepted (spec §7 non-fatal).
func (w *World) AddAntenna(name string, a *antenna.Antenna) error {
	if _, ok := w.antennas[name]; ok {
		return fmt.Errorf("%w: antenna %q", ErrDuplicateName, name)
	}
	if a.Eta > 1 {
		logx.Logf("world: antenna %q has efficiency %g > 1", name, a.Eta)
	}
	w.antennas[name] = a
	return nil
}

// Antenna looks up a registered antenna by name.
func (w *World) Antenna(name string) (*antenna.Antenna, bool) {
	a, ok := w.antennas[name]
	return a, ok
}

// AddPulse registers a named waveform. Fails on a duplicate name.
func (w *World) AddPulse(name string, rs *signal.RadarSignal) error {
	if _, ok := w.pulses[name]; ok {
		return fmt.Errorf("%w: pulse %q", ErrDuplicateName, name)
	}
	w.pulses[name] = rs
	return nil
}

// Pulse looks up a registered waveform by name.
func (w *World) Pulse(name string) (*signal.RadarSignal, bool) {
	p, ok := w.pulses[name]
	return p, ok
}

// AddTiming registers a named timing spec. Fails on a duplicate name.
func (w *World) AddTiming(name string, ts *TimingSpec) error {
	if _, ok := w.timings[name]; ok {
		return fmt.Errorf("%w: timing %q", ErrDuplicateName, name)
	}
	w.timings[name] = ts
	return nil
}

// Timing looks up a registered timing spec by name.
func (w *World) Timing(name string) (*TimingSpec, bool) {
	t, ok := w.timings[name]
	return t, ok
}

// AddPlatform appends a platform.
func (w *World) AddPlatform(p *Platform) { w.Platforms = append(w.Platforms, p) }

// AddTransmitter appends a transmitter.
func (w *World) AddTransmitter(tx *Transmitter) { w.Transmitters = append(w.Transmitters, tx) }

// AddReceiver appends a receiver.
func (w *World) AddReceiver(rx *Receiver) { w.Receivers = append(w.Receivers, rx) }

// AddTarget appends a target.
func (w *World) AddTarget(t *Target) { w.Targets = append(w.Targets, t) }

// Prepare binds every object's independent RNG stream and clock-model
// generator from the world's global seed (spec §9 "Per-object RNGs").
// Must run once, after the scenario is fully populated and before the
// scheduler runs (spec §6 "Global parameters must be set before the
// scheduler runs").
func (w *World) Prepare() error {
	rate := w.Params.EffectiveRate()
	for _, tx := range w.Transmitters {
		if tx.TimingName != "" {
			spec, ok := w.timings[tx.TimingName]
			if !ok {
				return fmt.Errorf("world: transmitter %q references unknown timing %q", tx.Name, tx.TimingName)
			}
			tx.BindTiming(spec, w.Params.Seed, rate)
		}
	}
	for _, rx := range w.Receivers {
		if rx.NoiseTempRx < 0 {
			return fmt.Errorf("world: receiver %q has negative noise temperature", rx.Name)
		}
		if rx.TimingName != "" {
			spec, ok := w.timings[rx.TimingName]
			if !ok {
				return fmt.Errorf("world: receiver %q references unknown timing %q", rx.Name, rx.TimingName)
			}
			rx.BindTiming(spec, w.Params.Seed, rate)
		}
		rx.BindWGN(w.Params.Seed)
	}
	for _, t := range w.Targets {
		t.BindRNG(w.Params.Seed)
	}
	return nil
}
