// Package config holds the process-wide, read-only simulation parameters
// (spec.md §3 "Global parameters"). It mirrors the shape of the teacher's
// internal/config.TuningConfig: a JSON-loadable struct with a constructor
// supplying defaults, set once at scenario load and never mutated again.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Errors returned while loading or validating GlobalParams.
var (
	ErrBadExtension    = fmt.Errorf("config file must have .json extension")
	ErrInvalidOversample = fmt.Errorf("oversample ratio must be >= 1")
	ErrInvalidInterval = fmt.Errorf("simulation end must not precede start")
)

// ExportFlags selects which external serialisers receive output (spec §3,
// §6). The serialisers themselves are external collaborators; these flags
// only gate whether the kernel hands a receiver's data to each one.
type ExportFlags struct {
	XML    bool `json:"xml"`
	CSV    bool `json:"csv"`
	Binary bool `json:"binary"`
}

// GlobalParams is the process-wide configuration described in spec.md §3.
// Lifecycle: constructed once during scenario load (DefaultGlobalParams or
// LoadGlobalParams), then passed by reference, read-only, into the
// scheduler and renderer for the remainder of the run.
type GlobalParams struct {
	// C is the propagation speed in m/s.
	C float64 `json:"c"`
	// KBoltzmann is Boltzmann's constant, used for thermal noise power.
	KBoltzmann float64 `json:"k_boltzmann"`

	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`

	// Rate is the baseband render sample rate in Hz.
	Rate float64 `json:"rate"`
	// CWSampleRate is the sampling rate used while walking a pulse's
	// duration during propagation-geometry sampling (spec §4.6).
	CWSampleRate float64 `json:"cw_sample_rate"`

	// OversampleRatio must be >= 1; the effective render rate is
	// Rate * OversampleRatio.
	OversampleRatio int `json:"oversample_ratio"`

	// RenderFilterLength is the Kaiser-sinc filter bank tap count
	// (spec §4.2); default 33.
	RenderFilterLength int `json:"render_filter_length"`

	// ADCBits is the quantisation depth; 0 disables quantisation.
	ADCBits int `json:"adc_bits"`

	// Seed is the global random seed. Per-object generators derive their
	// own stream from Seed plus an object-stable salt (spec §9).
	Seed int64 `json:"seed"`

	// RenderThreads bounds the worker pool used by C6/C7. 0 means "use
	// the host CPU count".
	RenderThreads int `json:"render_threads"`

	Export ExportFlags `json:"export"`
}

// DefaultGlobalParams returns the spec.md §3 defaults. Callers overwrite
// fields as the scenario dictates before the scheduler ever reads them.
func DefaultGlobalParams() *GlobalParams {
	return &GlobalParams{
		C:                  299792458,
		KBoltzmann:         1.3806503e-23,
		Rate:               1e6,
		CWSampleRate:       1e6,
		OversampleRatio:    1,
		RenderFilterLength: 33,
		ADCBits:            0,
		Seed:               0,
		RenderThreads:      0,
		Export:             ExportFlags{},
	}
}

// LoadGlobalParams reads a JSON file of overrides on top of
// DefaultGlobalParams. Fields omitted from the file keep their defaults.
func LoadGlobalParams(path string) (*GlobalParams, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("%w: got %q", ErrBadExtension, ext)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("reading global params file %q: %w", cleanPath, err)
	}
	p := DefaultGlobalParams()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing global params file %q: %w", cleanPath, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the invariants spec.md requires before the scheduler may
// run (spec §7 "Configuration error").
func (p *GlobalParams) Validate() error {
	if p.OversampleRatio < 1 {
		return ErrInvalidOversample
	}
	if p.EndTime < p.StartTime {
		return ErrInvalidInterval
	}
	if p.RenderFilterLength <= 0 {
		p.RenderFilterLength = 33
	}
	return nil
}

// EffectiveRate is the render rate after oversampling (spec §3 RadarSignal
// invariant: rate == input_rate * oversampleRatio).
func (p *GlobalParams) EffectiveRate() float64 {
	return p.Rate * float64(p.OversampleRatio)
}
