package world

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/fers/internal/antenna"
	"github.com/banshee-data/fers/internal/config"
	"github.com/banshee-data/fers/internal/geom"
	"github.com/banshee-data/fers/internal/signal"
)

func straightPlatform(name string) *Platform {
	motion := geom.NewPath(geom.Linear)
	motion.Add(geom.Coord{Pos: geom.Vec3{X: 0, Y: 0, Z: 0}, T: 0})
	motion.Add(geom.Coord{Pos: geom.Vec3{X: 100, Y: 0, Z: 0}, T: 10})
	motion.Finalise()

	rot := geom.NewRotationPath(geom.Static)
	rot.Add(geom.RotationCoord{Azimuth: 0, Elevation: 0, T: 0})
	rot.Finalise()

	return &Platform{Name: name, Motion: motion, Rotation: rot}
}

func TestWorldAddAntennaDuplicateFails(t *testing.T) {
	w := New(config.DefaultGlobalParams())
	iso := &antenna.Antenna{Kind: antenna.Isotropic, Eta: 1}

	require.NoError(t, w.AddAntenna("a1", iso))
	err := w.AddAntenna("a1", iso)
	require.ErrorIs(t, err, ErrDuplicateName)

	got, ok := w.Antenna("a1")
	require.True(t, ok)
	require.Same(t, iso, got)
}

func TestWorldAddPulseAndTimingDuplicateFails(t *testing.T) {
	w := New(config.DefaultGlobalParams())

	ts := &TimingSpec{Name: "clock1", NominalFreq: 10e9}
	require.NoError(t, w.AddTiming("clock1", ts))
	require.ErrorIs(t, w.AddTiming("clock1", ts), ErrDuplicateName)

	got, ok := w.Timing("clock1")
	require.True(t, ok)
	require.Same(t, ts, got)

	sig, err := signal.Load([]complex128{1, 1, 1, 1}, 1e6, 1, 33)
	require.NoError(t, err)
	rs, err := signal.NewRadarSignal("pulse1", 1, 1e9, 1e-6, sig)
	require.NoError(t, err)
	require.NoError(t, w.AddPulse("pulse1", rs))
	require.ErrorIs(t, w.AddPulse("pulse1", rs), ErrDuplicateName)

	gotPulse, ok := w.Pulse("pulse1")
	require.True(t, ok)
	require.Same(t, rs, gotPulse)
}

func TestWorldPrepareBindsTimingAndRNG(t *testing.T) {
	w := New(config.DefaultGlobalParams())
	w.Params.Seed = 42

	plat := straightPlatform("plat1")
	w.AddPlatform(plat)

	ts := &TimingSpec{Name: "clk", NominalFreq: 10e9}
	require.NoError(t, w.AddTiming("clk", ts))

	tx := NewTransmitter("tx1", plat)
	tx.TimingName = "clk"
	w.AddTransmitter(tx)

	rx := NewReceiver("rx1", plat)
	rx.TimingName = "clk"
	rx.NoiseTempRx = 290
	w.AddReceiver(rx)

	target := &Target{Object: Object{Name: "t1", Platform: plat}, Kind: IsoTarget, RCS0: 1}
	w.AddTarget(target)

	require.NoError(t, w.Prepare())

	require.NotNil(t, tx.Timing())
	require.NotNil(t, rx.Timing())
	require.NotNil(t, rx.WGNStream())
	require.NotNil(t, target.rngStream)
}

func TestWorldPrepareUnknownTimingFails(t *testing.T) {
	w := New(config.DefaultGlobalParams())
	plat := straightPlatform("plat1")
	w.AddPlatform(plat)

	tx := NewTransmitter("tx1", plat)
	tx.TimingName = "missing"
	w.AddTransmitter(tx)

	err := w.Prepare()
	require.Error(t, err)
}

func TestWorldPrepareNegativeNoiseTempFails(t *testing.T) {
	w := New(config.DefaultGlobalParams())
	plat := straightPlatform("plat1")
	w.AddPlatform(plat)

	rx := NewReceiver("rx1", plat)
	rx.NoiseTempRx = -1
	w.AddReceiver(rx)

	err := w.Prepare()
	require.Error(t, err)
}
