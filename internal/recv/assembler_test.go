package recv

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/fers/internal/config"
	"github.com/banshee-data/fers/internal/world"
)

// TestPhaseNoiseDisabledZeroWindow implements spec.md §8 concrete scenario
// 5: a disabled timing source plus no responses and T_rx=0 yields an
// identically-zero quantised window.
func TestPhaseNoiseDisabledZeroWindow(t *testing.T) {
	params := config.DefaultGlobalParams()
	params.Rate = 1e6
	params.StartTime = 0
	params.EndTime = 1

	w := world.New(params)
	plat := &world.Platform{Name: "p"}

	ts := &world.TimingSpec{Name: "disabled"}
	require.NoError(t, w.AddTiming("disabled", ts))

	rx := world.NewReceiver("rx1", plat)
	rx.NoiseTempRx = 0
	rx.WindowLength = 1e-4
	rx.WindowPRF = 10
	rx.WindowSkip = 0
	rx.TimingName = "disabled"
	w.AddReceiver(rx)

	require.NoError(t, w.Prepare())
	require.False(t, rx.Timing().Enabled())
	require.Equal(t, 0.0, rx.Timing().NextSample())
	require.Equal(t, 1.0, rx.Timing().Frequency())

	asm := New(params)
	windows, err := asm.AssembleReceiver(rx)
	require.NoError(t, err)
	require.NotEmpty(t, windows)
	for _, win := range windows {
		require.Equal(t, 0.0, win.Fullscale)
		for _, v := range win.IQ {
			require.Equal(t, complex(0, 0), v)
		}
	}
}

// TestQuantisationGridAndFullscale implements spec.md §8 concrete scenario
// 6.
func TestQuantisationGridAndFullscale(t *testing.T) {
	data := []complex128{
		complex(0.7, 0.8),
		complex(-0.7, -0.3),
		complex(0.1, 0.8),
		complex(0, 0),
	}
	fullscale, err := quantise(data, 8)
	require.NoError(t, err)
	require.InDelta(t, 0.8, fullscale, 1e-12)

	for _, v := range data {
		re, im := real(v), imag(v)
		require.LessOrEqual(t, math.Abs(re), 1.0)
		require.LessOrEqual(t, math.Abs(im), 1.0)

		reLevel := re * 128
		imLevel := im * 128
		require.InDelta(t, math.Round(reLevel), reLevel, 1e-9)
		require.InDelta(t, math.Round(imLevel), imLevel, 1e-9)
	}
}

// TestQuantisationZeroWindowStaysZero covers the M=0 guard: no division by
// zero, fullscale reported as 0.
func TestQuantisationZeroWindowStaysZero(t *testing.T) {
	data := []complex128{0, 0, 0}
	fullscale, err := quantise(data, 8)
	require.NoError(t, err)
	require.Equal(t, 0.0, fullscale)
	for _, v := range data {
		require.Equal(t, complex(0, 0), v)
	}
}

// TestQuantisationNaNIsFatal covers spec §7 "Numerical error".
func TestQuantisationNaNIsFatal(t *testing.T) {
	data := []complex128{complex(math.NaN(), 0)}
	_, err := quantise(data, 0)
	require.ErrorIs(t, err, ErrNumericalError)
}

// TestApplyPhaseNoiseIndexesLinearly covers spec §4.7.g: phaseNoise[n]
// applies to the post-downsample sample at the same index n, with no
// stride by the oversample ratio (regression guard: an earlier version of
// this code incorrectly computed srcIdx as n*oversampleRatio).
func TestApplyPhaseNoiseIndexesLinearly(t *testing.T) {
	downsampled := []complex128{complex(1, 0), complex(1, 0), complex(1, 0), complex(1, 0)}
	phaseNoise := make([]float64, len(downsampled)*4) // oversampled, 4x longer than downsampled
	for i := range phaseNoise {
		phaseNoise[i] = float64(i) * 0.01
	}

	applyPhaseNoise(downsampled, phaseNoise)

	for n, v := range downsampled {
		want := cmplx.Rect(1, phaseNoise[n])
		require.InDelta(t, real(want), real(v), 1e-9)
		require.InDelta(t, imag(want), imag(v), 1e-9)
	}
}
