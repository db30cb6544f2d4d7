package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSVec3RoundTrip(t *testing.T) {
	v := Vec3{X: 3, Y: -4, Z: 5}
	s := NewSVec3FromVec3(v)
	back := s.ToVec3()
	require.InDelta(t, v.X, back.X, 1e-9)
	require.InDelta(t, v.Y, back.Y, 1e-9)
	require.InDelta(t, v.Z, back.Z, 1e-9)
}

func TestPathLinear(t *testing.T) {
	p := NewPath(Linear)
	p.Add(Coord{Pos: Vec3{X: 0}, T: 0})
	p.Add(Coord{Pos: Vec3{X: 10}, T: 1})
	p.Finalise()

	cases := []struct {
		t    float64
		want Vec3
	}{
		{0.5, Vec3{X: 5}},
		{-1, Vec3{X: 0}}, // clamp before domain
		{2, Vec3{X: 10}}, // clamp after domain
	}
	for _, c := range cases {
		if diff := cmp.Diff(c.want, p.Position(c.t)); diff != "" {
			t.Errorf("Position(%v) mismatch (-want +got):\n%s", c.t, diff)
		}
	}
}

func TestPathCubicFidelity(t *testing.T) {
	// Scenario 4 from spec.md §8.
	p := NewPath(Cubic)
	knots := []Coord{
		{Pos: Vec3{X: 0, Y: 0, Z: 0}, T: 0},
		{Pos: Vec3{X: 10, Y: 0, Z: 0}, T: 1},
		{Pos: Vec3{X: 20, Y: 10, Z: 0}, T: 2},
		{Pos: Vec3{X: 30, Y: 0, Z: 0}, T: 3},
	}
	for _, k := range knots {
		p.Add(k)
	}
	p.Finalise()

	for _, k := range knots {
		got := p.Position(k.T)
		require.InDelta(t, k.Pos.X, got.X, 1e-9)
		require.InDelta(t, k.Pos.Y, got.Y, 1e-9)
		require.InDelta(t, k.Pos.Z, got.Z, 1e-9)
	}

	mid := p.Position(0.5)
	require.GreaterOrEqual(t, mid.X, knots[0].Pos.X)
	require.LessOrEqual(t, mid.X, knots[1].Pos.X)
}

func TestRotationPathConstant(t *testing.T) {
	rp := NewRotationPath(Constant)
	rp.SetConstant(RotationCoord{Azimuth: 0, Elevation: 0, T: 0}, RotationRate{Azimuth: 1, Elevation: 2})
	az, el := rp.Position(1)
	require.InDelta(t, math.Mod(1, 2*math.Pi), az, 1e-9)
	require.InDelta(t, math.Mod(2, 2*math.Pi), el, 1e-9)
}

func TestAngleBetween(t *testing.T) {
	a := Vec3{X: 1}
	b := Vec3{X: 1}
	require.InDelta(t, 0, AngleBetween(a, b), 1e-9)

	c := Vec3{Y: 1}
	require.InDelta(t, math.Pi/2, AngleBetween(a, c), 1e-9)
}
