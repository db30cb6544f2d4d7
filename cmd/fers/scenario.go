package main

// This file is a minimal JSON scenario loader for exercising the kernel
// end-to-end (running the scheduler, assembling windows, writing exports).
// It is NOT the production scenario parser described in spec.md §6 (the
// real XML/JSON script format, with its full platform/path/pulse/antenna
// vocabulary, is external tooling outside this kernel's scope) — this
// loader only covers a flat subset: static or two-point linear platforms,
// isotropic antennas, and single-tone pulses, enough to drive a demo run.

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/banshee-data/fers/internal/antenna"
	"github.com/banshee-data/fers/internal/config"
	"github.com/banshee-data/fers/internal/geom"
	"github.com/banshee-data/fers/internal/signal"
	"github.com/banshee-data/fers/internal/world"
)

type demoVec3 struct {
	X, Y, Z float64
}

func (v demoVec3) toVec3() geom.Vec3 { return geom.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

type demoMotion struct {
	Type  string   `json:"type"` // "static" or "linear"
	Pos   demoVec3 `json:"position"`
	Start demoVec3 `json:"start"`
	End   demoVec3 `json:"end"`
	T0    float64  `json:"t0"`
	T1    float64  `json:"t1"`
}

type demoPlatform struct {
	Name   string     `json:"name"`
	Motion demoMotion `json:"motion"`
}

type demoAntenna struct {
	Name string  `json:"name"`
	Eta  float64 `json:"eta"`
}

type demoPulse struct {
	Name    string `json:"name"`
	Power   float64 `json:"power"`
	Carrier float64 `json:"carrier"`
	Length  float64 `json:"length"`
	Rate    float64 `json:"rate"`
	Samples int     `json:"samples"` // count of unit-amplitude samples to synthesise
}

type demoTransmitter struct {
	Name     string  `json:"name"`
	Platform string  `json:"platform"`
	Antenna  string  `json:"antenna"`
	Pulse    string  `json:"pulse"`
	Mode     string  `json:"mode"` // "pulsed" or "cw"
	PRF      float64 `json:"prf"`
}

type demoReceiver struct {
	Name         string  `json:"name"`
	Platform     string  `json:"platform"`
	Antenna      string  `json:"antenna"`
	NoiseTempRx  float64 `json:"noise_temp"`
	WindowLength float64 `json:"window_length"`
	WindowPRF    float64 `json:"window_prf"`
	WindowSkip   float64 `json:"window_skip"`
	NoDirect     bool    `json:"no_direct"`
	NoPropLoss   bool    `json:"no_prop_loss"`
}

type demoTarget struct {
	Name     string  `json:"name"`
	Platform string  `json:"platform"`
	RCS      float64 `json:"rcs"`
}

type demoScenario struct {
	Params       *config.GlobalParams `json:"params"`
	Platforms    []demoPlatform       `json:"platforms"`
	Antennas     []demoAntenna        `json:"antennas"`
	Pulses       []demoPulse          `json:"pulses"`
	Transmitters []demoTransmitter    `json:"transmitters"`
	Receivers    []demoReceiver       `json:"receivers"`
	Targets      []demoTarget         `json:"targets"`
}

// loadScenario reads a demo JSON scenario file and builds a ready-to-run
// World plus its GlobalParams. Unrecognised platform/antenna/pulse names
// referenced by a transmitter, receiver, or target are a fatal load error.
func loadScenario(path string) (*world.World, *config.GlobalParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading scenario file %q: %w", path, err)
	}

	var doc demoScenario
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing scenario file %q: %w", path, err)
	}

	params := doc.Params
	if params == nil {
		params = config.DefaultGlobalParams()
	}
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}

	w := world.New(params)

	platforms := map[string]*world.Platform{}
	for _, dp := range doc.Platforms {
		plat, err := buildPlatform(dp)
		if err != nil {
			return nil, nil, err
		}
		platforms[dp.Name] = plat
		w.AddPlatform(plat)
	}

	for _, da := range doc.Antennas {
		a := &antenna.Antenna{Kind: antenna.Isotropic, Eta: da.Eta}
		if a.Eta == 0 {
			a.Eta = 1
		}
		if err := w.AddAntenna(da.Name, a); err != nil {
			return nil, nil, err
		}
	}

	for _, dp := range doc.Pulses {
		rs, err := buildPulse(dp)
		if err != nil {
			return nil, nil, err
		}
		if err := w.AddPulse(dp.Name, rs); err != nil {
			return nil, nil, err
		}
	}

	for _, dt := range doc.Transmitters {
		plat, ok := platforms[dt.Platform]
		if !ok {
			return nil, nil, fmt.Errorf("scenario: transmitter %q references unknown platform %q", dt.Name, dt.Platform)
		}
		ant, ok := w.Antenna(dt.Antenna)
		if !ok {
			return nil, nil, fmt.Errorf("scenario: transmitter %q references unknown antenna %q", dt.Name, dt.Antenna)
		}
		wave, ok := w.Pulse(dt.Pulse)
		if !ok {
			return nil, nil, fmt.Errorf("scenario: transmitter %q references unknown pulse %q", dt.Name, dt.Pulse)
		}
		tx := world.NewTransmitter(dt.Name, plat)
		tx.Antenna = ant
		tx.Wave = wave
		tx.PRFReq = dt.PRF
		if dt.Mode == "cw" {
			tx.ModeKind = world.CW
		} else {
			tx.ModeKind = world.Pulsed
		}
		w.AddTransmitter(tx)
	}

	for _, dr := range doc.Receivers {
		plat, ok := platforms[dr.Platform]
		if !ok {
			return nil, nil, fmt.Errorf("scenario: receiver %q references unknown platform %q", dr.Name, dr.Platform)
		}
		ant, ok := w.Antenna(dr.Antenna)
		if !ok {
			return nil, nil, fmt.Errorf("scenario: receiver %q references unknown antenna %q", dr.Name, dr.Antenna)
		}
		rx := world.NewReceiver(dr.Name, plat)
		rx.Antenna = ant
		rx.NoiseTempRx = dr.NoiseTempRx
		rx.WindowLength = dr.WindowLength
		rx.WindowPRF = dr.WindowPRF
		rx.WindowSkip = dr.WindowSkip
		if dr.NoDirect {
			rx.Flags |= world.FlagNoDirect
		}
		if dr.NoPropLoss {
			rx.Flags |= world.FlagNoPropLoss
		}
		w.AddReceiver(rx)
	}

	for _, dt := range doc.Targets {
		plat, ok := platforms[dt.Platform]
		if !ok {
			return nil, nil, fmt.Errorf("scenario: target %q references unknown platform %q", dt.Name, dt.Platform)
		}
		t := &world.Target{Object: world.Object{Name: dt.Name, Platform: plat}, Kind: world.IsoTarget, RCS0: dt.RCS}
		w.AddTarget(t)
	}

	return w, params, nil
}

func buildPlatform(dp demoPlatform) (*world.Platform, error) {
	motion := geom.NewPath(geom.Static)
	rotation := geom.NewRotationPath(geom.Static)
	rotation.Add(geom.RotationCoord{Azimuth: 0, Elevation: 0, T: 0})

	switch dp.Motion.Type {
	case "", "static":
		motion.Add(geom.Coord{Pos: dp.Motion.Pos.toVec3(), T: 0})
	case "linear":
		motion = geom.NewPath(geom.Linear)
		motion.Add(geom.Coord{Pos: dp.Motion.Start.toVec3(), T: dp.Motion.T0})
		motion.Add(geom.Coord{Pos: dp.Motion.End.toVec3(), T: dp.Motion.T1})
	default:
		return nil, fmt.Errorf("scenario: platform %q has unknown motion type %q", dp.Name, dp.Motion.Type)
	}
	motion.Finalise()
	rotation.Finalise()

	return &world.Platform{Name: dp.Name, Motion: motion, Rotation: rotation}, nil
}

func buildPulse(dp demoPulse) (*signal.RadarSignal, error) {
	n := dp.Samples
	if n <= 0 {
		n = 64
	}
	data := make([]complex128, n)
	for i := range data {
		data[i] = complex(1, 0)
	}
	rate := dp.Rate
	if rate <= 0 {
		rate = 1e6
	}
	sig, err := signal.Load(data, rate, 1, 33)
	if err != nil {
		return nil, fmt.Errorf("scenario: building pulse %q: %w", dp.Name, err)
	}
	rs, err := signal.NewRadarSignal(dp.Name, dp.Power, dp.Carrier, dp.Length, sig)
	if err != nil {
		return nil, fmt.Errorf("scenario: building pulse %q: %w", dp.Name, err)
	}
	return rs, nil
}
