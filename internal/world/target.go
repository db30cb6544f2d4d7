package world

import (
	"math"
	"math/rand"

	"github.com/banshee-data/fers/internal/geom"
	"github.com/banshee-data/fers/internal/interp"
	"github.com/banshee-data/fers/internal/rng"
)

// TargetKind distinguishes the two Target variants (spec §3).
type TargetKind int

const (
	IsoTarget TargetKind = iota
	FileTarget
)

// FluctuationKind selects a Target's RCS fluctuation model (spec §3).
type FluctuationKind int

const (
	FluctuationNone FluctuationKind = iota
	FluctuationGamma
)

// Target is a scatterer: either a constant-RCS IsoTarget or a
// FileTarget with azimuth/elevation-tabulated sigma, optionally modulated
// by a fluctuation model (spec §3).
type Target struct {
	Object
	Kind TargetKind

	RCS0 float64 // IsoTarget constant RCS

	AzTable *interp.InterpSet // FileTarget sigma_az(theta_az)
	ElTable *interp.InterpSet // FileTarget sigma_el(theta_el)

	Fluctuation  FluctuationKind
	FluctuationK float64 // gamma shape parameter

	rngStream *rand.Rand
}

// BindRNG instantiates this target's own independent RCS-fluctuation
// generator (spec §9 per-object RNGs). Called once by World.Prepare.
func (t *Target) BindRNG(globalSeed int64) {
	t.rngStream = rng.ForObject(globalSeed, "target:"+t.Name)
}

// RCS evaluates the bistatic RCS at time t given the unit vectors from
// transmitter and receiver toward this target (spec §4.6):
//
//	FileTarget transforms the bistatic-bisector angle into the target's
//	body frame by subtracting the target's rotation at t, then looks up
//	az and el independently, returning sqrt(sigma_az * sigma_el); the
//	fluctuation model, if any, multiplies the result.
func (t *Target) RCS(uTX, uRX geom.Vec3, tm float64) float64 {
	base := t.RCS0
	if t.Kind == FileTarget {
		bisector := uTX.Unit().Add(uRX.Unit())
		sph := geom.NewSVec3FromVec3(bisector)
		bodyAz, bodyEl := t.Platform.Orientation(tm)
		az := sph.Azimuth - bodyAz
		el := sph.Elevation - bodyEl
		sigAz := t.AzTable.Value(math.Abs(az))
		sigEl := t.ElTable.Value(math.Abs(el))
		product := sigAz * sigEl
		if product < 0 {
			product = 0
		}
		base = math.Sqrt(product)
	}
	return base * t.fluctuationMultiplier()
}

func (t *Target) fluctuationMultiplier() float64 {
	switch t.Fluctuation {
	case FluctuationGamma:
		if t.rngStream == nil {
			return 1.0
		}
		return rng.GammaFluctuation(t.rngStream, t.FluctuationK)
	default:
		return 1.0
	}
}
