// Package geom implements 3-D vector algebra and time-indexed motion and
// rotation paths (spec.md §3 "Vec3 / SVec3", "Coord / RotationCoord",
// "Path / RotationPath"; component C1).
package geom

import "math"

// EPSILON is double machine epsilon, used throughout the kernel for
// range/zero-distance checks (spec §3).
const EPSILON = 2.220446049250313e-16

// Vec3 is a rectangular 3-vector (spec §3).
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the component-wise difference.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the scalar (inner) product.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Length returns the Euclidean norm.
func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Unit returns v normalised to unit length. The zero vector maps to itself.
func (v Vec3) Unit() Vec3 {
	l := v.Length()
	if l <= EPSILON {
		return v
	}
	return v.Scale(1 / l)
}

// SVec3 is the spherical counterpart of Vec3: length, azimuth (measured
// counter-clockwise from +X in the XY-plane, radians) and elevation
// (inclination above the XY-plane, radians) (spec §3).
type SVec3 struct {
	Length    float64
	Azimuth   float64
	Elevation float64
}

// NewSVec3FromVec3 converts a rectangular vector to spherical form. Round
// trip holds to within EPSILON*length (spec §3, §8).
func NewSVec3FromVec3(v Vec3) SVec3 {
	length := v.Length()
	if length <= EPSILON {
		return SVec3{}
	}
	az := math.Atan2(v.Y, v.X)
	if az < 0 {
		az += 2 * math.Pi
	}
	el := math.Asin(clamp(v.Z/length, -1, 1))
	return SVec3{Length: length, Azimuth: az, Elevation: el}
}

// ToVec3 converts back to rectangular form.
func (s SVec3) ToVec3() Vec3 {
	cosEl := math.Cos(s.Elevation)
	return Vec3{
		X: s.Length * cosEl * math.Cos(s.Azimuth),
		Y: s.Length * cosEl * math.Sin(s.Azimuth),
		Z: s.Length * math.Sin(s.Elevation),
	}
}

// Add adds two spherical vectors component-wise, reducing azimuth to
// [0, 2*pi) and elevation to [-pi, pi] (spec §3).
func (s SVec3) Add(o SVec3) SVec3 {
	return SVec3{
		Length:    s.Length + o.Length,
		Azimuth:   wrapAzimuth(s.Azimuth + o.Azimuth),
		Elevation: wrapElevation(s.Elevation + o.Elevation),
	}
}

// Sub subtracts two spherical vectors component-wise, with the same
// normalisation as Add.
func (s SVec3) Sub(o SVec3) SVec3 {
	return SVec3{
		Length:    s.Length - o.Length,
		Azimuth:   wrapAzimuth(s.Azimuth - o.Azimuth),
		Elevation: wrapElevation(s.Elevation - o.Elevation),
	}
}

func wrapAzimuth(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func wrapElevation(e float64) float64 {
	e = math.Mod(e+math.Pi, 2*math.Pi)
	if e < 0 {
		e += 2 * math.Pi
	}
	return e - math.Pi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AngleBetween returns arccos(unit(a).unit(b)) in radians (spec §4.3).
func AngleBetween(a, b Vec3) float64 {
	ua, ub := a.Unit(), b.Unit()
	d := clamp(ua.Dot(ub), -1, 1)
	return math.Acos(d)
}
