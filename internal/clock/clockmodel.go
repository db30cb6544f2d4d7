package clock

import "math"

// Branch is one (alpha, weight) entry in a timing source's noise spec
// (spec §3 Timing source).
type Branch struct {
	Alpha  float64
	Weight float64
}

// magnitudeCorrection returns the canonical per-exponent magnitude
// correction from spec §4.4: 10^{1.225, 0.25, -0.25, -0.5, -1} for
// alpha in {2, 1, 0, -1, -2}, unity otherwise.
func magnitudeCorrection(alpha float64) float64 {
	switch alpha {
	case 2:
		return math.Pow(10, 1.225)
	case 1:
		return math.Pow(10, 0.25)
	case 0:
		return math.Pow(10, -0.25)
	case -1:
		return math.Pow(10, -0.5)
	case -2:
		return math.Pow(10, -1)
	default:
		return 1
	}
}

// ClockModelGenerator is a timing source's clock model: a chain of
// MultirateGenerators, one per noise branch, plus a constant frequency
// offset and phase offset (spec §3/§4.4).
type ClockModelGenerator struct {
	generators []*MultirateGenerator
	weights    []float64
	corrs      []float64

	deltaFreq  float64
	deltaPhase float64
	nominal    float64
	rate       float64

	syncOnPulse bool

	n int64

	enabled bool
}

// NewClockModelGenerator builds a clock model from its branch list and
// offsets (spec §3). When branches is empty and both offsets are zero, the
// model is disabled: NextSample always returns 0 and Frequency returns 1
// (spec §3/§8 scenario 5).
func NewClockModelGenerator(branches []Branch, deltaFreq, deltaPhase, nominalFreq, rate float64, seed int64, branchDepth int, syncOnPulse bool) *ClockModelGenerator {
	c := &ClockModelGenerator{
		deltaFreq:   deltaFreq,
		deltaPhase:  deltaPhase,
		nominal:     nominalFreq,
		rate:        rate,
		syncOnPulse: syncOnPulse,
	}
	if len(branches) == 0 && deltaFreq == 0 && deltaPhase == 0 {
		c.enabled = false
		return c
	}
	c.enabled = true
	for i, b := range branches {
		c.generators = append(c.generators, NewMultirateGenerator(b.Alpha, branchDepth, seed+int64(i)*7919))
		c.weights = append(c.weights, b.Weight)
		c.corrs = append(c.corrs, magnitudeCorrection(b.Alpha))
	}
	return c
}

// Enabled reports whether this clock model carries any noise or offset.
func (c *ClockModelGenerator) Enabled() bool { return c.enabled }

// NextSample returns the next phase sample (spec §4.4 "Output = sum w_i *
// gen_i(n) + Δφ + ramp(n)"). Disabled models always return 0.
func (c *ClockModelGenerator) NextSample() float64 {
	if !c.enabled {
		c.n++
		return 0
	}
	sum := 0.0
	for i, g := range c.generators {
		sum += c.weights[i] * c.corrs[i] * g.GetSample()
	}
	ramp := 2 * math.Pi * c.deltaFreq * float64(c.n) / c.rate
	c.n++
	return sum + c.deltaPhase + ramp
}

// Frequency returns the clock's nominal frequency, used as the reception
// window's carrier (spec §4.7). A disabled model's frequency is 1 (the
// multiplicative identity, spec §3).
func (c *ClockModelGenerator) Frequency() float64 {
	if !c.enabled {
		return 1
	}
	return c.nominal
}

// SyncOnPulse reports whether window skip uses reset+skip-to-window-start
// semantics rather than continuous skip (spec §4.7.c).
func (c *ClockModelGenerator) SyncOnPulse() bool { return c.syncOnPulse }

// Skip advances the underlying generators by n samples without
// materialising them (spec §4.4/§9 "skipping, not drawing, preserves
// reproducibility").
func (c *ClockModelGenerator) Skip(n int) {
	if !c.enabled {
		c.n += int64(n)
		return
	}
	for _, g := range c.generators {
		g.SkipSamples(n)
	}
	c.n += int64(n)
}

// Reset rewinds every underlying generator's RNG stream and the sample
// counter, for sync-on-pulse window boundaries (spec §4.7.c).
func (c *ClockModelGenerator) Reset() {
	c.n = 0
	for _, g := range c.generators {
		g.Reset()
	}
}
