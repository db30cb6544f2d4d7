package rng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForObjectDeterministic(t *testing.T) {
	r1 := ForObject(42, "target-a")
	r2 := ForObject(42, "target-a")
	require.Equal(t, r1.Float64(), r2.Float64())
}

func TestForObjectDiffersByName(t *testing.T) {
	r1 := ForObject(42, "target-a")
	r2 := ForObject(42, "target-b")
	require.NotEqual(t, r1.Float64(), r2.Float64())
}

func TestGammaFluctuationNonNegative(t *testing.T) {
	r := ForObject(1, "x")
	for i := 0; i < 100; i++ {
		v := GammaFluctuation(r, 2.0)
		require.GreaterOrEqual(t, v, 0.0)
	}
}
