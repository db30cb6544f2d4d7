package geom

import (
	"fmt"
	"math"
	"sort"
)

// Interpolation selects how Path/RotationPath blend between coordinates
// (spec §3 Path / RotationPath).
type Interpolation int

const (
	Static Interpolation = iota
	Linear
	Cubic
	// Constant is RotationPath-only: fixed azimuth-rate/elevation-rate
	// extrapolation from a single start coordinate.
	Constant
)

// Coord is a single motion sample (spec §3 "Coord").
type Coord struct {
	Pos Vec3
	T   float64
}

// Path is an immutable-after-finalisation, time-ordered sequence of
// position samples plus an interpolation mode (spec §3/§4.1).
type Path struct {
	coords   []Coord
	mode     Interpolation
	final    bool
	second   []Vec3 // cubic-spline second derivatives, one per coord
}

// NewPath constructs an empty path with the given interpolation mode.
func NewPath(mode Interpolation) *Path {
	return &Path{mode: mode}
}

// Add appends a coordinate. Must be called before Finalise.
func (p *Path) Add(c Coord) {
	if p.final {
		panic("geom: Add called on a finalised Path")
	}
	p.coords = append(p.coords, c)
}

// Finalise sorts coordinates by time and, for Cubic mode, computes the
// natural-spline second derivatives (Press et al., zero-curvature
// endpoints) once. Idempotent.
func (p *Path) Finalise() {
	if p.final {
		return
	}
	sort.Slice(p.coords, func(i, j int) bool { return p.coords[i].T < p.coords[j].T })
	if p.mode == Cubic && len(p.coords) >= 2 {
		p.second = naturalSplineSecondDerivatives(p.coords)
	}
	p.final = true
}

// Position evaluates the path at time t (spec §4.1). Out-of-domain queries
// clamp to the nearest endpoint. Querying before Finalise is a programmer
// error.
func (p *Path) Position(t float64) Vec3 {
	if !p.final {
		panic("geom: Position called before Finalise")
	}
	if len(p.coords) == 0 {
		return Vec3{}
	}
	if len(p.coords) == 1 {
		return p.coords[0].Pos
	}
	if t <= p.coords[0].T {
		return p.coords[0].Pos
	}
	last := len(p.coords) - 1
	if t >= p.coords[last].T {
		return p.coords[last].Pos
	}

	i := bracket(p.coords, t)
	switch p.mode {
	case Static:
		return p.coords[0].Pos
	case Cubic:
		return p.cubicAt(i, t)
	default: // Linear
		return p.linearAt(i, t)
	}
}

func (p *Path) linearAt(i int, t float64) Vec3 {
	a, b := p.coords[i], p.coords[i+1]
	w := (t - a.T) / (b.T - a.T)
	return a.Pos.Scale(1 - w).Add(b.Pos.Scale(w))
}

func (p *Path) cubicAt(i int, t float64) Vec3 {
	a, b := p.coords[i], p.coords[i+1]
	h := b.T - a.T
	aw := (b.T - t) / h
	bw := (t - a.T) / h
	sa, sb := p.second[i], p.second[i+1]

	out := Vec3{}
	c := h * h / 6
	out.X = aw*a.Pos.X + bw*b.Pos.X + ((aw*aw*aw-aw)*sa.X+(bw*bw*bw-bw)*sb.X)*c
	out.Y = aw*a.Pos.Y + bw*b.Pos.Y + ((aw*aw*aw-aw)*sa.Y+(bw*bw*bw-bw)*sb.Y)*c
	out.Z = aw*a.Pos.Z + bw*b.Pos.Z + ((aw*aw*aw-aw)*sa.Z+(bw*bw*bw-bw)*sb.Z)*c
	return out
}

// bracket finds i such that coords[i].T <= t < coords[i+1].T via binary
// search. Callers guarantee t is within the interior of the domain.
func bracket(coords []Coord, t float64) int {
	lo, hi := 0, len(coords)-2
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if coords[mid].T <= t {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// naturalSplineSecondDerivatives implements the tridiagonal forward sweep
// and back-substitution from Press et al. "Numerical Recipes", with
// zero-curvature (natural) boundary conditions, applied independently per
// axis (spec §4.1).
func naturalSplineSecondDerivatives(coords []Coord) []Vec3 {
	n := len(coords)
	second := make([]Vec3, n)

	for axis := 0; axis < 3; axis++ {
		get := func(c Coord) float64 {
			switch axis {
			case 0:
				return c.Pos.X
			case 1:
				return c.Pos.Y
			default:
				return c.Pos.Z
			}
		}
		set := func(v *Vec3, val float64) {
			switch axis {
			case 0:
				v.X = val
			case 1:
				v.Y = val
			default:
				v.Z = val
			}
		}

		y2 := make([]float64, n)
		uu := make([]float64, n)
		y2[0], uu[0] = 0, 0
		for i := 1; i < n-1; i++ {
			sig := (coords[i].T - coords[i-1].T) / (coords[i+1].T - coords[i-1].T)
			p := sig*y2[i-1] + 2
			y2[i] = (sig - 1) / p
			d := (get(coords[i+1])-get(coords[i]))/(coords[i+1].T-coords[i].T) -
				(get(coords[i])-get(coords[i-1]))/(coords[i].T-coords[i-1].T)
			uu[i] = (6*d/(coords[i+1].T-coords[i-1].T) - sig*uu[i-1]) / p
		}
		y2[n-1] = 0
		for k := n - 2; k >= 0; k-- {
			y2[k] = y2[k]*y2[k+1] + uu[k]
		}
		for i := 0; i < n; i++ {
			set(&second[i], y2[i])
		}
	}
	return second
}

// RotationCoord is a single orientation sample (spec §3).
type RotationCoord struct {
	Azimuth, Elevation float64
	T                  float64
}

// RotationRate is used by Constant-mode RotationPath: fixed per-second
// azimuth/elevation rates applied from a start coordinate.
type RotationRate struct {
	Azimuth, Elevation float64
}

// RotationPath mirrors Path but over orientation samples, with an extra
// Constant mode for fixed-rate rotation (spec §3/§4.1).
type RotationPath struct {
	coords []RotationCoord
	mode   Interpolation
	final  bool
	second []struct{ Az, El float64 }

	// Constant-mode-only fields.
	start RotationCoord
	rate  RotationRate
}

// NewRotationPath constructs an empty rotation path.
func NewRotationPath(mode Interpolation) *RotationPath {
	return &RotationPath{mode: mode}
}

// SetConstant configures Constant mode: start coordinate and per-second
// rates. Only meaningful when mode == Constant.
func (p *RotationPath) SetConstant(start RotationCoord, rate RotationRate) {
	p.start = start
	p.rate = rate
}

// Add appends a rotation coordinate. Must be called before Finalise.
func (p *RotationPath) Add(c RotationCoord) {
	if p.final {
		panic("geom: Add called on a finalised RotationPath")
	}
	p.coords = append(p.coords, c)
}

// Finalise sorts by time and, for Cubic mode, precomputes second
// derivatives per axis.
func (p *RotationPath) Finalise() {
	if p.final {
		return
	}
	sort.Slice(p.coords, func(i, j int) bool { return p.coords[i].T < p.coords[j].T })
	if p.mode == Cubic && len(p.coords) >= 2 {
		p.second = rotationSplineSecondDerivatives(p.coords)
	}
	p.final = true
}

// Position evaluates azimuth/elevation at time t (spec §4.1).
//
// CONSTANT mode applies `mod 2*pi` to elevation too, which the upstream
// source does and which is almost certainly a bug (elevation should live in
// [-pi/2, pi/2]) — preserved here for parity per spec.md §9 Design Notes /
// Open Questions; do not "fix" this without revisiting that decision.
func (p *RotationPath) Position(t float64) (azimuth, elevation float64) {
	if p.mode == Constant {
		az := math.Mod(p.start.Azimuth+p.rate.Azimuth*t, 2*math.Pi)
		el := math.Mod(p.start.Elevation+p.rate.Elevation*t, 2*math.Pi)
		return az, el
	}
	if !p.final {
		panic("geom: Position called before Finalise")
	}
	if len(p.coords) == 0 {
		return 0, 0
	}
	if len(p.coords) == 1 {
		return p.coords[0].Azimuth, p.coords[0].Elevation
	}
	if t <= p.coords[0].T {
		return p.coords[0].Azimuth, p.coords[0].Elevation
	}
	last := len(p.coords) - 1
	if t >= p.coords[last].T {
		return p.coords[last].Azimuth, p.coords[last].Elevation
	}

	i := bracketRotation(p.coords, t)
	switch p.mode {
	case Static:
		return p.coords[0].Azimuth, p.coords[0].Elevation
	case Cubic:
		return p.cubicRotationAt(i, t)
	default:
		a, b := p.coords[i], p.coords[i+1]
		w := (t - a.T) / (b.T - a.T)
		return a.Azimuth*(1-w) + b.Azimuth*w, a.Elevation*(1-w) + b.Elevation*w
	}
}

func bracketRotation(coords []RotationCoord, t float64) int {
	lo, hi := 0, len(coords)-2
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if coords[mid].T <= t {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (p *RotationPath) cubicRotationAt(i int, t float64) (float64, float64) {
	a, b := p.coords[i], p.coords[i+1]
	h := b.T - a.T
	aw := (b.T - t) / h
	bw := (t - a.T) / h
	sa, sb := p.second[i], p.second[i+1]
	c := h * h / 6
	az := aw*a.Azimuth + bw*b.Azimuth + ((aw*aw*aw-aw)*sa.Az+(bw*bw*bw-bw)*sb.Az)*c
	el := aw*a.Elevation + bw*b.Elevation + ((aw*aw*aw-aw)*sa.El+(bw*bw*bw-bw)*sb.El)*c
	return az, el
}

func rotationSplineSecondDerivatives(coords []RotationCoord) []struct{ Az, El float64 } {
	n := len(coords)
	out := make([]struct{ Az, El float64 }, n)

	solve := func(get func(RotationCoord) float64) []float64 {
		y2 := make([]float64, n)
		uu := make([]float64, n)
		for i := 1; i < n-1; i++ {
			sig := (coords[i].T - coords[i-1].T) / (coords[i+1].T - coords[i-1].T)
			p := sig*y2[i-1] + 2
			y2[i] = (sig - 1) / p
			d := (get(coords[i+1])-get(coords[i]))/(coords[i+1].T-coords[i].T) -
				(get(coords[i])-get(coords[i-1]))/(coords[i].T-coords[i-1].T)
			uu[i] = (6*d/(coords[i+1].T-coords[i-1].T) - sig*uu[i-1]) / p
		}
		for k := n - 2; k >= 0; k-- {
			y2[k] = y2[k]*y2[k+1] + uu[k]
		}
		return y2
	}

	azs := solve(func(c RotationCoord) float64 { return c.Azimuth })
	els := solve(func(c RotationCoord) float64 { return c.Elevation })
	for i := range out {
		out[i].Az = azs[i]
		out[i].El = els[i]
	}
	return out
}

// String renders a Coord for diagnostics.
func (c Coord) String() string {
	return fmt.Sprintf("Coord{pos=(%.6g,%.6g,%.6g), t=%.9g}", c.Pos.X, c.Pos.Y, c.Pos.Z, c.T)
}
