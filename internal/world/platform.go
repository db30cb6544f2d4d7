// Package world holds the scenario data model (spec.md §3): platforms,
// transmitters, receivers, targets, antennas, pulses, timings, and the
// global parameter set, plus the Response type produced by the simulation
// scheduler (component C6) and consumed by the reception-window assembler
// (component C7).
//
// Per spec §9 Design Notes, cyclic "attached" Transmitter<->Receiver
// back-references are modeled as non-owning handles (indices into the
// World's slices) rather than raw pointers, keeping the object graph
// acyclic by ownership.
package world

import "github.com/banshee-data/fers/internal/geom"

// Platform is a named holder of one motion Path and one RotationPath
// (spec §3).
type Platform struct {
	Name     string
	Motion   *geom.Path
	Rotation *geom.RotationPath
}

// Position delegates to the motion path.
func (p *Platform) Position(t float64) geom.Vec3 { return p.Motion.Position(t) }

// Orientation delegates to the rotation path, returning azimuth/elevation.
func (p *Platform) Orientation(t float64) (azimuth, elevation float64) {
	return p.Rotation.Position(t)
}

// RotationVec returns the platform's boresight direction at t as a unit
// Vec3 — the form spec §4.6 passes as an antenna "refangle" argument
// (e.g. "T.rotation(t_k)").
func (p *Platform) RotationVec(t float64) geom.Vec3 {
	az, el := p.Orientation(t)
	return geom.SVec3{Length: 1, Azimuth: az, Elevation: el}.ToVec3()
}
