package world

import (
	"math"

	"github.com/banshee-data/fers/internal/antenna"
	"github.com/banshee-data/fers/internal/clock"
	"github.com/banshee-data/fers/internal/signal"
)

// Mode selects a Transmitter's operating mode (spec §3).
type Mode int

const (
	Pulsed Mode = iota
	CW
)

// Transmitter adds mode, PRF, bound waveform/timing, and an optional
// attached Receiver (monostatic) to Object (spec §3).
type Transmitter struct {
	Object

	ModeKind Mode
	PRFReq   float64 // requested PRF, before sample-grid snapping

	Antenna *antenna.Antenna
	Wave    *signal.RadarSignal

	TimingName string
	timing     *clock.ClockModelGenerator

	// AttachedReceiver, when >= 0, is the index of the Receiver this
	// Transmitter shares a monostatic platform with (spec §9: stored as
	// a non-owning handle rather than a raw back-pointer).
	AttachedReceiver int
}

// NewTransmitter constructs a Transmitter with no attached receiver.
func NewTransmitter(name string, platform *Platform) *Transmitter {
	return &Transmitter{Object: Object{Name: name, Platform: platform}, AttachedReceiver: -1}
}

// BindTiming instantiates this transmitter's own clock-model generator from
// the named TimingSpec (spec §9 per-object RNGs/timing sources).
func (tx *Transmitter) BindTiming(spec *TimingSpec, globalSeed int64, rate float64) {
	tx.timing = spec.Instantiate(globalSeed, "tx:"+tx.Name, rate)
}

// Timing returns the bound clock-model generator.
func (tx *Transmitter) Timing() *clock.ClockModelGenerator { return tx.timing }

// SnappedPRF returns the effective PRF after snapping the requested value
// to an integer number of samples per period at rate*oversample: the
// samples-per-period count is rounded down, with a minimum of 1 (spec §8
// scenario 3).
func (tx *Transmitter) SnappedPRF(effectiveRate float64) float64 {
	if tx.PRFReq <= 0 {
		return 0
	}
	samplesPerPeriod := math.Floor(effectiveRate / tx.PRFReq)
	if samplesPerPeriod < 1 {
		samplesPerPeriod = 1
	}
	return 1 / (samplesPerPeriod / effectiveRate)
}

// PulseCount returns the number of pulses emitted over [startTime,
// endTime]: ceil((end-start)*PRF) for Pulsed transmitters, 1 for CW (spec
// §4.6, §8 "N_pulses" and CW boundary behaviour).
//
// Grounded on the legacy schedule_period.cpp's pulse-count formula (see
// SPEC_FULL.md §C): a CW transmitter always schedules exactly one period
// spanning the whole simulation, which the kernel mirrors by returning 1
// regardless of duration.
func (tx *Transmitter) PulseCount(startTime, endTime, effectiveRate float64) int {
	if tx.ModeKind == CW {
		return 1
	}
	prf := tx.SnappedPRF(effectiveRate)
	if prf <= 0 {
		return 0
	}
	n := math.Ceil((endTime - startTime) * prf)
	if n < 0 {
		n = 0
	}
	return int(n)
}

// IsMonostatic reports whether rx is this transmitter's attached receiver.
func (tx *Transmitter) IsMonostatic(rxIndex int) bool {
	return tx.AttachedReceiver >= 0 && tx.AttachedReceiver == rxIndex
}
