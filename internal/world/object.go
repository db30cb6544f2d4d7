package world

import "github.com/banshee-data/fers/internal/geom"

// Object is the common platform back-reference and name shared by Radar
// (Transmitter/Receiver) and Target (spec §3).
type Object struct {
	Name     string
	Platform *Platform
}

// Position delegates to the owning platform's motion path.
func (o *Object) Position(t float64) geom.Vec3 { return o.Platform.Position(t) }

// Rotation delegates to the owning platform's rotation path, returned as a
// unit direction vector (spec §4.6).
func (o *Object) Rotation(t float64) geom.Vec3 { return o.Platform.RotationVec(t) }
