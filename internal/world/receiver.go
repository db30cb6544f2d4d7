package world

import (
	"math/rand"
	"sync"

	"github.com/banshee-data/fers/internal/antenna"
	"github.com/banshee-data/fers/internal/clock"
	"github.com/banshee-data/fers/internal/geom"
	"github.com/banshee-data/fers/internal/rng"
)

// Flag is a Receiver behaviour bit (spec §3).
type Flag int

const (
	FlagNoDirect Flag = 1 << iota
	FlagNoPropLoss
)

// Receiver adds noise temperature, window parameters, timing, flags, an
// optional attached Transmitter, and an append-only response list to
// Object (spec §3).
type Receiver struct {
	Object

	NoiseTempRx float64 // T_rx >= 0

	WindowLength float64 // W_L
	WindowPRF    float64 // W_PRF
	WindowSkip   float64 // W_S

	Antenna *antenna.Antenna

	TimingName string
	timing     *clock.ClockModelGenerator

	Flags Flag

	// AttachedTransmitter, when >= 0, is the index of this receiver's
	// monostatic Transmitter (spec §9 non-owning handle).
	AttachedTransmitter int

	mu        sync.Mutex
	responses []*Response

	wgnStream *rand.Rand
}

// NewReceiver constructs a Receiver with no attached transmitter.
func NewReceiver(name string, platform *Platform) *Receiver {
	return &Receiver{Object: Object{Name: name, Platform: platform}, AttachedTransmitter: -1}
}

// BindTiming instantiates this receiver's own clock-model generator.
func (rx *Receiver) BindTiming(spec *TimingSpec, globalSeed int64, rate float64) {
	rx.timing = spec.Instantiate(globalSeed, "rx:"+rx.Name, rate)
}

// Timing returns the bound clock-model generator.
func (rx *Receiver) Timing() *clock.ClockModelGenerator { return rx.timing }

// BindWGN instantiates this receiver's own white-Gaussian-noise generator
// (spec §9 per-object RNGs).
func (rx *Receiver) BindWGN(globalSeed int64) {
	rx.wgnStream = rng.ForObject(globalSeed, "rx-wgn:"+rx.Name)
}

// WGNStream returns the receiver's own noise generator.
func (rx *Receiver) WGNStream() *rand.Rand { return rx.wgnStream }

// HasFlag reports whether f is set.
func (rx *Receiver) HasFlag(f Flag) bool { return rx.Flags&f != 0 }

// NoiseTemperature returns the arrival noise temperature. None of
// spec.md's Antenna variants carry a direction-dependent noise pattern, so
// this reduces to the receiver's scalar bias; direction is accepted to
// keep the call site stable if a future antenna variant adds one.
func (rx *Receiver) NoiseTemperature(direction geom.Vec3) float64 {
	return rx.NoiseTempRx
}

// AddResponse appends a completed Response. Safe for concurrent callers
// across P1 pair-workers (spec §5 "guarded by a per-receiver mutex on
// addResponse").
func (rx *Receiver) AddResponse(r *Response) {
	rx.mu.Lock()
	defer rx.mu.Unlock()
	rx.responses = append(rx.responses, r)
}

// Responses returns a snapshot slice of accumulated responses. Callers
// must not mutate the result.
func (rx *Receiver) Responses() []*Response {
	rx.mu.Lock()
	defer rx.mu.Unlock()
	out := make([]*Response, len(rx.responses))
	copy(out, rx.responses)
	return out
}
