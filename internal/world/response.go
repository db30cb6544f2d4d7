package world

import (
	"fmt"

	"github.com/banshee-data/fers/internal/signal"
)

// Response is a time-ordered InterpPoint sequence produced for one
// (transmitter, waveform) interaction (spec §3). Invariants: Points is
// non-empty after construction; points are appended in non-decreasing time
// order — a violation is a programmer error (spec §3/§7) and panics rather
// than silently re-sorting, grounded on the legacy response.cpp's
// append-time assertion (SPEC_FULL.md §C).
type Response struct {
	Transmitter *Transmitter
	Wave        *signal.RadarSignal
	Points      []signal.InterpPoint
}

// NewResponse constructs an empty Response for the given transmitter/wave
// pair.
func NewResponse(tx *Transmitter, wave *signal.RadarSignal) *Response {
	return &Response{Transmitter: tx, Wave: wave}
}

// Append adds a point, enforcing the non-decreasing-time invariant.
func (r *Response) Append(p signal.InterpPoint) {
	if n := len(r.Points); n > 0 && p.Time < r.Points[n-1].Time {
		panic(fmt.Sprintf("world: Response.Append time went backwards: %g < %g", p.Time, r.Points[n-1].Time))
	}
	r.Points = append(r.Points, p)
}

// StartTime returns the first point's time. Panics if empty.
func (r *Response) StartTime() float64 { return r.Points[0].Time }

// EndTime returns the last point's time. Panics if empty.
func (r *Response) EndTime() float64 { return r.Points[len(r.Points)-1].Time }
