// Package antenna implements the polymorphic gain(angle, refangle,
// wavelength) capability for every antenna variant in spec.md §3/§4.3
// (component C3).
//
// spec.md §9 Design Notes recommends a tagged variant over the upstream
// source's virtual-dispatch hierarchy, to keep the hot path monomorphic —
// mirrored here as a Kind-tagged struct matched in Gain, in the same spirit
// as bfix-antgen/lib/antenna.go's flat antenna-parameter struct.
package antenna

import (
	"math"
	"math/cmplx"

	"github.com/banshee-data/fers/internal/geom"
	"github.com/banshee-data/fers/internal/interp"
)

// Kind identifies which gain formula an Antenna evaluates.
type Kind int

const (
	Isotropic Kind = iota
	Sinc
	Gaussian
	SquareHorn
	Parabolic
	File
	XML
)

// Antenna carries a Kind tag plus every variant's parameters (spec §3).
// Every antenna carries an efficiency factor Eta in (0, <=1 typical], by
// which every variant's gain except Gaussian's is multiplied (see Gain).
// Constructed at scenario load and
// immutable thereafter; shared by reference across every Response that
// touches its owning Transmitter/Receiver.
type Antenna struct {
	Kind Kind
	Eta  float64

	// Sinc
	SincAlpha, SincBeta, SincGamma float64

	// Gaussian
	AzScale, ElScale float64

	// SquareHorn
	Dimension float64

	// Parabolic
	Diameter float64

	// File (2-D azimuth x elevation table, azimuth-major)
	FileTable *Table2D

	// XML (two 1-D axes plus peak gain)
	XMLAzimuth   *interp.InterpSet
	XMLElevation *interp.InterpSet
	XMLPeakGain  float64
}

// Table2D is a 2-D azimuth x elevation gain table, azimuth-major, queried
// with bilinear interpolation over normalised [0,1]^2 coordinates with
// wrap-around indexing (spec §4.3 "File").
type Table2D struct {
	AzCount, ElCount int
	Values           []float64 // row-major: az*ElCount + el
}

// At samples the table bilinearly at normalised (u, v) in [0,1]^2, wrapping
// around at the edges.
func (t *Table2D) At(u, v float64) float64 {
	if t.AzCount == 0 || t.ElCount == 0 {
		return 0
	}
	fu := u * float64(t.AzCount)
	fv := v * float64(t.ElCount)
	a0 := wrapIndex(int(math.Floor(fu)), t.AzCount)
	e0 := wrapIndex(int(math.Floor(fv)), t.ElCount)
	a1 := wrapIndex(a0+1, t.AzCount)
	e1 := wrapIndex(e0+1, t.ElCount)
	wa := fu - math.Floor(fu)
	we := fv - math.Floor(fv)

	v00 := t.at(a0, e0)
	v01 := t.at(a0, e1)
	v10 := t.at(a1, e0)
	v11 := t.at(a1, e1)
	return v00*(1-wa)*(1-we) + v10*wa*(1-we) + v01*(1-wa)*we + v11*wa*we
}

func (t *Table2D) at(a, e int) float64 { return t.Values[a*t.ElCount+e] }

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Gain evaluates G(angle, refangle, wavelength) per spec §4.3, multiplying
// by Eta for every variant except Gaussian, which spec §4.3 and the
// original implementation both omit it from.
func (a *Antenna) Gain(angle, refangle geom.Vec3, wavelength float64) float64 {
	switch a.Kind {
	case Isotropic:
		return a.Eta
	case Sinc:
		theta := geom.AngleBetween(angle, refangle)
		x := a.SincBeta * theta
		base := complex(a.SincAlpha, 0) * cmplx.Pow(complex(sincC(x), 0), complex(a.SincGamma, 0))
		return cmplx.Abs(base) * a.Eta
	case Gaussian:
		// Unlike every other variant, Gaussian's gain has no efficiency
		// factor in either spec.md §4.3 or the original Gaussian::getGain().
		sa := geom.NewSVec3FromVec3(angle)
		sr := geom.NewSVec3FromVec3(refangle)
		d := sa.Sub(sr)
		return math.Exp(-d.Azimuth*d.Azimuth*a.AzScale) * math.Exp(-d.Elevation*d.Elevation*a.ElScale)
	case SquareHorn:
		theta := geom.AngleBetween(angle, refangle)
		ge := 4 * math.Pi * a.Dimension * a.Dimension / (wavelength * wavelength)
		x := math.Pi * a.Dimension * math.Sin(theta) / wavelength
		return ge * sincC(x) * sincC(x) * a.Eta
	case Parabolic:
		theta := geom.AngleBetween(angle, refangle)
		ge := math.Pow(math.Pi*a.Diameter/wavelength, 2)
		x := math.Pi * a.Diameter * math.Sin(theta) / wavelength
		if x == 0 {
			return ge * a.Eta
		}
		j := besselJ1(x)
		r := 2 * j / x
		return ge * r * r * a.Eta
	case File:
		sa := geom.NewSVec3FromVec3(angle)
		sr := geom.NewSVec3FromVec3(refangle)
		d := sa.Sub(sr)
		u := normaliseAngle(d.Azimuth)
		v := normaliseAngle(d.Elevation)
		return a.FileTable.At(u, v) * a.Eta
	case XML:
		sa := geom.NewSVec3FromVec3(angle)
		sr := geom.NewSVec3FromVec3(refangle)
		d := sa.Sub(sr)
		g := a.XMLAzimuth.Value(math.Abs(d.Azimuth)) * a.XMLElevation.Value(math.Abs(d.Elevation))
		return g * a.XMLPeakGain * a.Eta
	default:
		return 0
	}
}

// sincC is the sinc used by antenna gain: sin(x)/(x+EPSILON), with the
// x == 0 limit taken as 1 (spec §4.3, distinct from interp's normalised
// sinc). The Sinc variant raises it to a possibly non-integer power in
// complex arithmetic, so a negative sincC never yields NaN.
func sincC(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / (x + geom.EPSILON)
}

// normaliseAngle maps a signed radian angle to [0,1) for table lookups.
func normaliseAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a / (2 * math.Pi)
}

// besselJ1 evaluates the Bessel function of the first kind, order one,
// using the standard rational-approximation split (Abramowitz & Stegun
// §9.4), the same family of approximation the spec already asks for I0.
func besselJ1(x float64) float64 {
	ax := math.Abs(x)
	if ax < 8.0 {
		y := x * x
		p1 := x * (72362614232.0 + y*(-7895059235.0+y*(242396853.1+y*(-2972611.439+y*(15704.48260+y*(-30.16036606))))))
		p2 := 144725228442.0 + y*(2300535178.0+y*(18583304.74+y*(99447.43394+y*(376.9991397+y*1.0))))
		return p1 / p2
	}
	z := 8.0 / ax
	y := z * z
	xx := ax - 2.356194491
	p1 := 1.0 + y*(0.183105e-2+y*(-0.3516396496e-4+y*(0.2457520174e-5+y*(-0.240337019e-6))))
	p2 := 0.04687499995 + y*(-0.2002690873e-3+y*(0.8449199096e-5+y*(-0.88228987e-6+y*0.105787412e-6)))
	res := math.Sqrt(0.636619772/ax) * (math.Cos(xx)*p1 - z*math.Sin(xx)*p2)
	if x < 0 {
		res = -res
	}
	return res
}
