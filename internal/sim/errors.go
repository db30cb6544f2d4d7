// Package sim implements the simulation scheduler (component C6,
// spec.md §4.6): per-pair pulse enumeration, propagation-geometry
// sampling, and response accumulation, run in parallel across
// transmitter x receiver pairs (spec §5).
package sim

import "fmt"

// Fatal error kinds (spec §7). All abort the simulation; none are locally
// recovered.
var (
	// ErrRangeError is raised when two objects fall within geom.EPSILON of
	// each other at a sampled instant — the bistatic geometry is singular.
	ErrRangeError = fmt.Errorf("sim: range error: objects coincide")

	// ErrConfiguration is the sentinel for setup-time contract violations.
	// No function in this module returns it: World.Prepare reports an
	// unknown timing name or a negative noise temperature with its own
	// errors, and duplicate names wrap world.ErrDuplicateName.
	ErrConfiguration = fmt.Errorf("sim: configuration error")
)
