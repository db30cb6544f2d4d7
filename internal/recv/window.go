// Package recv implements the reception-window assembler (component C7,
// spec.md §4.7): for each receiver, it sorts accumulated Responses, carves
// the simulation interval into fixed-PRF windows, superposes every
// overlapping response's rendered chunk (component C5) into each window,
// mixes in thermal noise and the receiver's own clock-model phase noise
// (component C4), downsamples back to the base rate, and quantises.
//
// Throughout §4.7 the spec uses a bare "rate" symbol for sample-domain
// quantities (window size, noise power, phase-noise skip counts, time
// snapping) that are all computed in the same oversampled domain the
// pre-downsample window buffer lives in; this package resolves that bare
// "rate" consistently as config.GlobalParams.EffectiveRate() everywhere
// except the final emitted Window.Rate and the §4.7.f downsample call,
// which operate at the post-downsample base rate — the same resolution
// already adopted for the Kaiser-sinc filter bank's tap-range notation.
package recv

import "fmt"

// ErrNumericalError is fatal: a NaN surfaced in an IQ sample during
// quantisation (spec §7 "Numerical error").
var ErrNumericalError = fmt.Errorf("recv: numerical error: NaN in IQ sample")

// Window is one completed reception window, ready for the external
// serialiser (spec §6 "Binary output format").
type Window struct {
	Index     int
	StartTime float64
	Rate      float64
	Fullscale float64
	IQ        []complex128
}
