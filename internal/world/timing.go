package world

import (
	"github.com/banshee-data/fers/internal/clock"
	"github.com/banshee-data/fers/internal/rng"
)

// TimingSpec is the named, shared clock-model template referenced by
// Transmitters and Receivers (spec §3 "Timing source"). Loaded once at
// scenario build and immutable thereafter; each bound Transmitter/Receiver
// instantiates its own independent ClockModelGenerator from this template
// at simulation start (spec §9 "Per-object RNGs": every timing source owns
// an independent generator seeded from the global seed plus an
// object-stable salt, so reproducibility never depends on pair order).
type TimingSpec struct {
	Name string

	Branches []clock.Branch

	// DeltaFreq/DeltaPhase are fixed constant offsets; the StdDev fields,
	// when > 0, additionally draw one Gaussian-random sample per bound
	// object at construction and add it to the constant (spec §3).
	DeltaFreq        float64
	DeltaPhase       float64
	DeltaFreqStdDev  float64
	DeltaPhaseStdDev float64

	NominalFreq float64
	SyncOnPulse bool
	BranchDepth int // number of f^alpha branches per MultirateGenerator
}

// Instantiate builds a fresh ClockModelGenerator for one bound object
// (identified by objectName) at the given sample rate, deriving its seed
// from globalSeed plus an object+timing-stable salt.
func (ts *TimingSpec) Instantiate(globalSeed int64, objectName string, rate float64) *clock.ClockModelGenerator {
	salt := rng.ForObject(globalSeed, objectName+":"+ts.Name+":offsets")
	df := ts.DeltaFreq
	if ts.DeltaFreqStdDev > 0 {
		df += salt.NormFloat64() * ts.DeltaFreqStdDev
	}
	dphi := ts.DeltaPhase
	if ts.DeltaPhaseStdDev > 0 {
		dphi += salt.NormFloat64() * ts.DeltaPhaseStdDev
	}
	seed := globalSeed + rng.SaltName(objectName+":"+ts.Name+":stream")
	depth := ts.BranchDepth
	if depth <= 0 {
		depth = 3
	}
	return clock.NewClockModelGenerator(ts.Branches, df, dphi, ts.NominalFreq, rate, seed, depth, ts.SyncOnPulse)
}
