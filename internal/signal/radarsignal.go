package signal

import (
	"fmt"
	"math"

	"github.com/banshee-data/fers/internal/interp"
)

// RadarSignal is a named pulse waveform bound to a Transmitter (spec §3):
// name, global power P, carrier frequency, pulse length, and the
// oversampled baseband Signal.
type RadarSignal struct {
	Name    string
	Power   float64
	Carrier float64
	Length  float64
	Sig     *Signal
}

// NewRadarSignal validates the spec §3 invariant ("signal is non-empty")
// and wraps it.
func NewRadarSignal(name string, power, carrier, length float64, sig *Signal) (*RadarSignal, error) {
	if sig == nil || sig.Len() == 0 {
		return nil, fmt.Errorf("signal: RadarSignal %q has empty signal", name)
	}
	return &RadarSignal{Name: name, Power: power, Carrier: carrier, Length: length, Sig: sig}, nil
}

// Render delegates to Signal.Render then scales by sqrt(Power) (spec
// §4.5 "RadarSignal.render").
func (rs *RadarSignal) Render(points []InterpPoint, fb *interp.FilterBank, fracWinDelay float64) ([]complex128, error) {
	out, err := rs.Sig.Render(points, fb, fracWinDelay)
	if err != nil {
		return nil, err
	}
	scale := math.Sqrt(rs.Power)
	for i := range out {
		out[i] *= complex(scale, 0)
	}
	return out, nil
}
