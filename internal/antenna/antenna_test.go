package antenna

import (
	"math"
	"testing"

	"github.com/banshee-data/fers/internal/geom"
	"github.com/stretchr/testify/require"
)

func TestIsotropicGain(t *testing.T) {
	a := &Antenna{Kind: Isotropic, Eta: 0.9}
	g := a.Gain(geom.Vec3{X: 1}, geom.Vec3{Y: 1}, 0.1)
	require.Equal(t, 0.9, g)
}

func TestSincGainAtBoresight(t *testing.T) {
	a := &Antenna{Kind: Sinc, Eta: 1, SincAlpha: 1, SincBeta: 1, SincGamma: 2}
	g := a.Gain(geom.Vec3{X: 1}, geom.Vec3{X: 1}, 0.1)
	require.InDelta(t, 1.0, g, 1e-6)
}

func TestGaussianGainNonNegativeAndFinite(t *testing.T) {
	a := &Antenna{Kind: Gaussian, Eta: 1, AzScale: 2, ElScale: 3}
	for _, ang := range []geom.Vec3{{X: 1}, {X: 1, Y: 0.3}, {X: 0, Y: 1, Z: 1}} {
		g := a.Gain(ang, geom.Vec3{X: 1}, 0.1)
		require.GreaterOrEqual(t, g, 0.0)
		require.False(t, math.IsNaN(g))
	}
}

func TestGaussianGainIgnoresEfficiency(t *testing.T) {
	angle := geom.Vec3{X: 1, Y: 0.3}
	ref := geom.Vec3{X: 1}

	full := &Antenna{Kind: Gaussian, Eta: 1, AzScale: 2, ElScale: 3}
	half := &Antenna{Kind: Gaussian, Eta: 0.5, AzScale: 2, ElScale: 3}

	require.InDelta(t, full.Gain(angle, ref, 0.1), half.Gain(angle, ref, 0.1), 1e-12)
}

func TestParabolicGainAtBoresight(t *testing.T) {
	a := &Antenna{Kind: Parabolic, Eta: 1, Diameter: 1}
	g := a.Gain(geom.Vec3{X: 1}, geom.Vec3{X: 1}, 0.03)
	ge := math.Pow(math.Pi*1/0.03, 2)
	require.InDelta(t, ge, g, 1e-6)
}

func TestTable2DWrap(t *testing.T) {
	tbl := &Table2D{AzCount: 2, ElCount: 2, Values: []float64{1, 2, 3, 4}}
	require.InDelta(t, 1, tbl.At(0, 0), 1e-9)
	// wrap: u=1.0 should equal u=0 due to wrap-around indexing
	require.InDelta(t, tbl.At(0, 0), tbl.At(1.0, 0), 1e-9)
}
