// Package clock implements the multi-rate 1/f^alpha clock/phase-noise
// model tree (spec.md §4.4, component C4).
package clock

import "math/rand"

// fAlphaBranch is one branch of a power-law noise generator tree. Each
// branch decomposes its exponent alpha into an integer integrator count and
// a fractional shaping exponent (spec §4.4), and — except for the bottom
// branch — draws its raw samples from the decade-upsampled output of its
// predecessor rather than from its own white-noise source.
type fAlphaBranch struct {
	fint     int
	ffrac    float64
	highpass bool

	predecessor *fAlphaBranch
	rng         *rand.Rand

	// Decade upsampler state (predecessor's samples arrive 10x slower).
	counter     int
	lastBase    float64
	nextBase    float64
	haveBase    bool

	// Shaping filter state: a single-pole IIR approximating |f|^ffrac.
	shapeState float64

	// Integrator chain state, one accumulator per integration stage.
	integState []float64

	// High-pass (DC-removal) state, used only by the top branch.
	hpPrevIn, hpPrevOut float64

	offset     float64
	haveOffset bool
}

// newFAlphaBranch builds one branch. predecessor is nil for the bottom
// branch, which draws directly from rng.
func newFAlphaBranch(alpha float64, predecessor *fAlphaBranch, rng *rand.Rand, highpass bool) *fAlphaBranch {
	fint := int(floorDiv(2-alpha, 2))
	ffrac := (2-alpha)/2 - float64(fint)
	return &fAlphaBranch{
		fint:        fint,
		ffrac:       ffrac,
		highpass:    highpass,
		predecessor: predecessor,
		rng:         rng,
		integState:  make([]float64, maxInt(fint, 0)),
	}
}

func floorDiv(a, b float64) float64 {
	q := a / b
	f := float64(int64(q))
	if q < 0 && f != q {
		f--
	}
	return f
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// rawSample returns the next raw (unshaped) input sample for this branch:
// a unit-variance white Gaussian draw for the bottom branch, or a
// decade-upsampled sample from the predecessor otherwise (spec §4.4).
func (b *fAlphaBranch) rawSample() float64 {
	if b.predecessor == nil {
		return b.rng.NormFloat64()
	}
	if !b.haveBase {
		b.nextBase = b.predecessor.getSample()
		b.lastBase = b.nextBase
		b.haveBase = true
	}
	if b.counter == 0 {
		b.lastBase = b.nextBase
		b.nextBase = b.predecessor.getSample()
	}
	frac := float64(b.counter) / 10.0
	out := b.lastBase*(1-frac) + b.nextBase*frac
	b.counter = (b.counter + 1) % 10
	return out
}

// getSample returns the next shaped-and-upsampled sample. The first output
// is cached as "offset"; the cached value is not added to or subtracted
// from any later output.
func (b *fAlphaBranch) getSample() float64 {
	x := b.rawSample()

	// Shape filter: single-pole IIR approximating |f|^ffrac spectral
	// shaping. The exact upstream filter design is not specified beyond
	// "approximates"; this uses a leak coefficient derived from ffrac so
	// ffrac==0 is the identity pass-through.
	leak := 0.5 * b.ffrac
	b.shapeState = leak*b.shapeState + (1-leak)*x
	y := b.shapeState

	for i := 0; i < b.fint; i++ {
		b.integState[i] += y
		y = b.integState[i]
	}

	if b.highpass {
		out := y - b.hpPrevIn + 0.995*b.hpPrevOut
		b.hpPrevIn = y
		b.hpPrevOut = out
		y = out
	}

	if !b.haveOffset {
		b.offset = y
		b.haveOffset = true
	}
	return y
}

// flush resets the upsampler/shaping/integrator state of this branch and
// every predecessor, but keeps the cached offset sample. Output after a
// flush restarts from the cleared filter state; it is not made
// phase-continuous with the output before the flush.
func (b *fAlphaBranch) flush() {
	b.counter = 0
	b.haveBase = false
	b.shapeState = 0
	for i := range b.integState {
		b.integState[i] = 0
	}
	b.hpPrevIn, b.hpPrevOut = 0, 0
	if b.predecessor != nil {
		b.predecessor.flush()
	}
}

// reset clears all state including the cached offset, equivalent to
// constructing a fresh branch with the same rng.
func (b *fAlphaBranch) reset() {
	b.flush()
	b.haveOffset = false
	b.offset = 0
	if b.predecessor != nil {
		b.predecessor.reset()
	}
}
