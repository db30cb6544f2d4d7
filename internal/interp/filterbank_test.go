package interp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterBankRowsFiniteEnergy(t *testing.T) {
	fb := NewFilterBank(33)
	for i := -1000; i <= 1000; i += 137 {
		delta := float64(i) / 1000.0
		row, err := fb.GetFilter(delta)
		require.NoError(t, err)
		energy := 0.0
		for _, h := range row {
			require.False(t, math.IsNaN(h))
			energy += h * h
		}
		require.True(t, math.IsInf(energy, 0) == false)
	}
}

func TestFilterBankZeroDelaySymmetric(t *testing.T) {
	fb := NewFilterBank(33)
	row, err := fb.GetFilter(0)
	require.NoError(t, err)
	n := len(row)
	for i := 0; i < n/2; i++ {
		require.InDelta(t, row[i], row[n-1-i], 1e-9)
	}
}

func TestFilterBankOutOfRange(t *testing.T) {
	fb := NewFilterBank(33)
	_, err := fb.GetFilter(1.5)
	require.ErrorIs(t, err, ErrFilterOutOfRange)
	_, err = fb.GetFilter(-1.5)
	require.ErrorIs(t, err, ErrFilterOutOfRange)
}

func TestGetCaches(t *testing.T) {
	a := Get(33)
	b := Get(33)
	require.Same(t, a, b)
}

func TestInterpSetLinear(t *testing.T) {
	s := NewInterpSet()
	s.Add(0, 0)
	s.Add(1, 10)
	require.InDelta(t, 5, s.Value(0.5), 1e-9)
	require.InDelta(t, 0, s.Value(-1), 1e-9)
	require.InDelta(t, 10, s.Value(2), 1e-9)
}

func TestInterpSetMaxDivide(t *testing.T) {
	s := NewInterpSet()
	s.Add(0, -4)
	s.Add(1, 2)
	require.Equal(t, 4.0, s.Max())
	s.Divide(2)
	require.InDelta(t, -2, s.Value(0), 1e-9)
}
