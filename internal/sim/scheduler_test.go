package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/fers/internal/antenna"
	"github.com/banshee-data/fers/internal/config"
	"github.com/banshee-data/fers/internal/geom"
	"github.com/banshee-data/fers/internal/signal"
	"github.com/banshee-data/fers/internal/world"
)

func staticPlatform(name string, pos geom.Vec3) *world.Platform {
	motion := geom.NewPath(geom.Static)
	motion.Add(geom.Coord{Pos: pos, T: 0})
	motion.Finalise()

	rot := geom.NewRotationPath(geom.Static)
	rot.Add(geom.RotationCoord{Azimuth: 0, Elevation: 0, T: 0})
	rot.Finalise()

	return &world.Platform{Name: name, Motion: motion, Rotation: rot}
}

func isoAntenna() *antenna.Antenna {
	return &antenna.Antenna{Kind: antenna.Isotropic, Eta: 1}
}

func buildPulse(t *testing.T, carrier, power, length, rate float64) *signal.RadarSignal {
	n := 64
	data := make([]complex128, n)
	for i := range data {
		data[i] = complex(1, 0)
	}
	sig, err := signal.Load(data, rate, 1, 33)
	require.NoError(t, err)
	rs, err := signal.NewRadarSignal("pulse", power, carrier, length, sig)
	require.NoError(t, err)
	return rs
}

// TestScenario1SinglePointScattererStationary implements spec.md §8
// "Concrete scenarios" #1.
func TestScenario1SinglePointScattererStationary(t *testing.T) {
	params := config.DefaultGlobalParams()
	params.C = 3e8
	params.Rate = 10e6
	params.CWSampleRate = 10e6
	params.StartTime = 0
	params.EndTime = 1e-6

	w := world.New(params)

	txPlat := staticPlatform("txplat", geom.Vec3{X: 0, Y: 0, Z: 0})
	rxPlat := staticPlatform("rxplat", geom.Vec3{X: 1000, Y: 0, Z: 0})
	tgtPlat := staticPlatform("tgtplat", geom.Vec3{X: 500, Y: 0, Z: 0})
	w.AddPlatform(txPlat)
	w.AddPlatform(rxPlat)
	w.AddPlatform(tgtPlat)

	wave := buildPulse(t, 1e9, 1, 1e-6, 10e6)

	tx := world.NewTransmitter("tx1", txPlat)
	tx.ModeKind = world.Pulsed
	tx.PRFReq = 1000
	tx.Antenna = isoAntenna()
	tx.Wave = wave
	w.AddTransmitter(tx)

	rx := world.NewReceiver("rx1", rxPlat)
	rx.Antenna = isoAntenna()
	rx.NoiseTempRx = 0
	// Suppress the direct T->R path so the only response is the scatterer's.
	rx.Flags = world.FlagNoDirect
	w.AddReceiver(rx)

	target := &world.Target{Object: world.Object{Name: "tgt1", Platform: tgtPlat}, Kind: world.IsoTarget, RCS0: 1}
	w.AddTarget(target)

	require.NoError(t, w.Prepare())

	sched := New(w, params)
	require.NoError(t, sched.Run())

	responses := rx.Responses()
	require.Len(t, responses, 1)
	resp := responses[0]
	require.NotEmpty(t, resp.Points)

	wavelength := params.C / wave.Carrier
	expectedDelay := (500.0 + 500.0) / params.C
	expectedPower := 1 * 1 * 1 / (4 * math.Pi) * (wavelength * wavelength) / (16 * math.Pi * math.Pi * 500 * 500 * 500 * 500)

	for _, p := range resp.Points {
		require.InDelta(t, expectedDelay, p.Delay, 1e-12)
		require.InDelta(t, expectedPower, p.Power, expectedPower*1e-9)
		require.InDelta(t, 1.0, p.DopplerFactor, 1e-9)
	}
}

// TestScenario2DopplerRadialMotion implements spec.md §8 scenario 2.
func TestScenario2DopplerRadialMotion(t *testing.T) {
	params := config.DefaultGlobalParams()
	params.C = 3e8
	params.Rate = 1e6
	params.CWSampleRate = 1e6
	params.StartTime = 0
	params.EndTime = 1e-6

	w := world.New(params)

	originPlat := staticPlatform("origin", geom.Vec3{X: 0, Y: 0, Z: 0})
	w.AddPlatform(originPlat)

	movingMotion := geom.NewPath(geom.Linear)
	movingMotion.Add(geom.Coord{Pos: geom.Vec3{X: 1000, Y: 0, Z: 0}, T: 0})
	movingMotion.Add(geom.Coord{Pos: geom.Vec3{X: 1000 + 150, Y: 0, Z: 0}, T: 1})
	movingMotion.Finalise()
	movingRot := geom.NewRotationPath(geom.Static)
	movingRot.Add(geom.RotationCoord{Azimuth: 0, Elevation: 0, T: 0})
	movingRot.Finalise()
	movingPlat := &world.Platform{Name: "movingplat", Motion: movingMotion, Rotation: movingRot}
	w.AddPlatform(movingPlat)

	wave := buildPulse(t, 1e9, 1, 1e-7, 1e6)

	tx := world.NewTransmitter("tx1", originPlat)
	tx.ModeKind = world.Pulsed
	tx.PRFReq = 1000
	tx.Antenna = isoAntenna()
	tx.Wave = wave
	tx.AttachedReceiver = 0
	w.AddTransmitter(tx)

	rx := world.NewReceiver("rx1", originPlat)
	rx.Antenna = isoAntenna()
	rx.Flags = world.FlagNoDirect
	w.AddReceiver(rx)

	target := &world.Target{Object: world.Object{Name: "tgt1", Platform: movingPlat}, Kind: world.IsoTarget, RCS0: 1}
	w.AddTarget(target)

	require.NoError(t, w.Prepare())

	sched := New(w, params)
	require.NoError(t, sched.Run())

	responses := rx.Responses()
	require.Len(t, responses, 1)

	// R is collocated with T, so both radial velocities equal the
	// target's outward speed relative to the shared origin.
	oneWay := math.Sqrt((1 + 150/params.C) / (1 - 150/params.C))
	expectedD := oneWay * oneWay
	for _, p := range responses[0].Points {
		require.InDelta(t, expectedD, p.DopplerFactor, expectedD*1e-6)
	}
}

// TestScenario3PRFSnapping implements spec.md §8 scenario 3.
func TestScenario3PRFSnapping(t *testing.T) {
	params := config.DefaultGlobalParams()
	params.Rate = 10e6
	params.OversampleRatio = 2
	params.StartTime = 0
	params.EndTime = 1

	w := world.New(params)
	plat := staticPlatform("plat", geom.Vec3{})
	w.AddPlatform(plat)

	tx := world.NewTransmitter("tx1", plat)
	tx.ModeKind = world.Pulsed
	tx.PRFReq = 997
	w.AddTransmitter(tx)

	rate := params.EffectiveRate()
	samplesPerPeriod := math.Floor(rate / 997)
	expectedPRF := 1 / (samplesPerPeriod / rate)

	require.InDelta(t, expectedPRF, tx.SnappedPRF(rate), 1e-9)

	expectedN := int(math.Ceil(1.0 * expectedPRF))
	require.Equal(t, expectedN, tx.PulseCount(params.StartTime, params.EndTime, rate))
}

// TestCWProducesExactlyOnePulse covers the boundary behaviour from spec.md
// §8 "CW mode produces exactly one pulse regardless of duration".
func TestCWProducesExactlyOnePulse(t *testing.T) {
	params := config.DefaultGlobalParams()
	params.Rate = 1e6
	params.StartTime = 0
	params.EndTime = 100

	tx := world.NewTransmitter("tx1", staticPlatform("p", geom.Vec3{}))
	tx.ModeKind = world.CW
	tx.PRFReq = 1000
	require.Equal(t, 1, tx.PulseCount(params.StartTime, params.EndTime, params.EffectiveRate()))
}

// TestZeroDurationYieldsNoPulses covers spec.md §8 "for endTime=startTime,
// zero pulses emitted".
func TestZeroDurationYieldsNoPulses(t *testing.T) {
	tx := world.NewTransmitter("tx1", staticPlatform("p", geom.Vec3{}))
	tx.ModeKind = world.Pulsed
	tx.PRFReq = 1000
	require.Equal(t, 0, tx.PulseCount(5, 5, 1e6))
}

// TestRangeErrorAborts verifies a coincident transmitter/target pair fails
// the pair with ErrRangeError (spec §7).
func TestRangeErrorAborts(t *testing.T) {
	params := config.DefaultGlobalParams()
	params.Rate = 1e6
	params.CWSampleRate = 1e6
	params.StartTime = 0
	params.EndTime = 1e-6

	w := world.New(params)
	plat := staticPlatform("plat", geom.Vec3{X: 0, Y: 0, Z: 0})
	w.AddPlatform(plat)

	wave := buildPulse(t, 1e9, 1, 1e-6, 1e6)

	tx := world.NewTransmitter("tx1", plat)
	tx.ModeKind = world.Pulsed
	tx.PRFReq = 1000
	tx.Antenna = isoAntenna()
	tx.Wave = wave
	w.AddTransmitter(tx)

	rx := world.NewReceiver("rx1", staticPlatform("rxplat", geom.Vec3{X: 1000, Y: 0, Z: 0}))
	rx.Antenna = isoAntenna()
	rx.Flags = world.FlagNoDirect
	w.AddReceiver(rx)

	// Target coincides exactly with the transmitter's platform.
	target := &world.Target{Object: world.Object{Name: "tgt1", Platform: plat}, Kind: world.IsoTarget, RCS0: 1}
	w.AddTarget(target)

	require.NoError(t, w.Prepare())

	sched := New(w, params)
	err := sched.Run()
	require.ErrorIs(t, err, ErrRangeError)
}
