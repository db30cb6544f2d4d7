package clock

import (
	"math"
	"math/rand"
)

// MultirateGenerator owns a chain of B f^alpha branches for one power-law
// exponent and applies a global output scale (spec §4.4).
//
// The upstream source has two divergent formulas for this scale between
// source files ("* 2.0" in one); spec.md §9 Design Notes adopts the newer
// 10^((alpha-2)*2) form and flags it for validation against measured PSDs.
// That is the form implemented here.
type MultirateGenerator struct {
	alpha    float64
	branches []*fAlphaBranch
	scale    float64
	seed     int64
}

// NewMultirateGenerator builds a B-branch chain for exponent alpha, seeded
// from seed. The top (last-constructed) branch applies the DC-removing
// high-pass filter.
func NewMultirateGenerator(alpha float64, branches int, seed int64) *MultirateGenerator {
	if branches < 1 {
		branches = 1
	}
	rng := rand.New(rand.NewSource(seed))
	var chain []*fAlphaBranch
	var prev *fAlphaBranch
	for i := 0; i < branches; i++ {
		top := i == branches-1
		br := newFAlphaBranch(alpha, prev, rng, top)
		chain = append(chain, br)
		prev = br
	}
	return &MultirateGenerator{
		alpha:    alpha,
		branches: chain,
		scale:    math.Pow(10, (alpha-2)*2),
		seed:     seed,
	}
}

// GetSample returns the next scaled sample from the top branch of the
// chain.
func (m *MultirateGenerator) GetSample() float64 {
	top := m.branches[len(m.branches)-1]
	return top.getSample() * m.scale
}

// Reset rebuilds the generator's random stream and all branch state from
// the same seed, so that `Reset(); for k<N { GetSample() }` reproduces the
// output of a freshly constructed generator with the same seed (spec §8
// invariants).
func (m *MultirateGenerator) Reset() {
	rng := rand.New(rand.NewSource(m.seed))
	for _, b := range m.branches {
		b.rng = rng
		b.reset()
	}
}

// SkipSamples advances the generator by n samples without materialising
// them, reducing work by 10^k (k = floor(log10(n))-1) by advancing the
// deepest reachable branch directly and flushing shallower branches (spec
// §4.4).
func (m *MultirateGenerator) SkipSamples(n int) {
	if n <= 0 {
		return
	}
	k := 0
	if n >= 10 {
		k = int(math.Floor(math.Log10(float64(n)))) - 1
		if k < 0 {
			k = 0
		}
	}
	depth := len(m.branches) - 1 - k
	if depth < 0 {
		depth = 0
	}
	if depth >= len(m.branches) {
		depth = len(m.branches) - 1
	}

	deep := m.branches[depth]
	reduced := n
	for i := depth; i < len(m.branches)-1; i++ {
		reduced /= 10
	}
	if reduced < 1 {
		reduced = 1
	}
	for i := 0; i < reduced; i++ {
		deep.getSample()
	}
	for i := depth + 1; i < len(m.branches); i++ {
		m.branches[i].flush()
	}
}
