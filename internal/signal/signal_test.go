package signal

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/banshee-data/fers/internal/interp"
	"github.com/stretchr/testify/require"
)

func TestLoadNoOversample(t *testing.T) {
	data := []complex128{1, 2, 3, 4}
	s, err := Load(data, 1e6, 1, 33)
	require.NoError(t, err)
	require.Equal(t, len(data), s.Len())
	require.Equal(t, 1e6, s.Rate())
}

func TestRenderSinglePointNoDelay(t *testing.T) {
	data := make([]complex128, 64)
	for i := range data {
		data[i] = complex(float64(i%5), 0)
	}
	s, err := Load(data, 1e6, 1, 33)
	require.NoError(t, err)

	fb := interp.Get(33)
	pt := InterpPoint{Power: 4, Time: 0, Delay: 0, DopplerFactor: 1, Phase: math.Pi / 4, NoiseTemperature: 0}
	out, err := s.Render([]InterpPoint{pt}, fb, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), len(out))

	expectedAmp := math.Sqrt(4.0)
	rot := cmplx.Rect(1, math.Pi/4)
	// Middle samples, away from filter edge effects, should match
	// exp(i*phi)*sqrt(P)*data[n] closely since delay=0 => zero
	// fractional/integer shift.
	for n := 20; n < 40; n++ {
		want := rot * complex(expectedAmp, 0) * data[n]
		require.InDelta(t, real(want), real(out[n]), 1e-6)
		require.InDelta(t, imag(want), imag(out[n]), 1e-6)
	}
}

func TestRadarSignalRenderScalesByPower(t *testing.T) {
	data := make([]complex128, 64)
	for i := range data {
		data[i] = complex(1, 0)
	}
	s, err := Load(data, 1e6, 1, 33)
	require.NoError(t, err)
	rs, err := NewRadarSignal("pulse", 9, 1e9, 1e-6, s)
	require.NoError(t, err)

	fb := interp.Get(33)
	pt := InterpPoint{Power: 1, Time: 0, Delay: 0, DopplerFactor: 1, Phase: 0}
	out, err := rs.Render([]InterpPoint{pt}, fb, 0)
	require.NoError(t, err)
	require.InDelta(t, 3.0, real(out[30]), 1e-6)
}

func TestNoEmptySignal(t *testing.T) {
	_, err := Load(nil, 1e6, 1, 33)
	require.Error(t, err)
}
