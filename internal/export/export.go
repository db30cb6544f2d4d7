// Package export writes a receiver's accumulated responses and assembled
// reception windows to the external serialiser contracts described in
// spec.md §6 ("External interfaces"): CSV, XML, and a binary IQ format.
// The formats themselves are contract-only per the spec's Non-goals — this
// package emits data that satisfies each contract's field layout, not a
// byte-for-byte HDF5 or schema-validated XML writer.
package export

import (
	"fmt"

	"github.com/banshee-data/fers/internal/config"
	"github.com/banshee-data/fers/internal/logx"
	"github.com/banshee-data/fers/internal/recv"
	"github.com/banshee-data/fers/internal/world"
)

// dopplerHz converts a response point's dimensionless Doppler factor into a
// frequency shift (spec §6 "doppler_hz = carrier * (D - 1)").
func dopplerHz(carrier, dopplerFactor float64) float64 {
	return carrier * (dopplerFactor - 1)
}

// Receiver writes every enabled format for one receiver, given its
// assembled windows (possibly empty). dir is the output directory.
func Receiver(dir string, rx *world.Receiver, windows []recv.Window, flags config.ExportFlags) error {
	responses := rx.Responses()

	isCWOnly := true
	for _, r := range responses {
		if r.Transmitter.ModeKind != world.CW {
			isCWOnly = false
			break
		}
	}
	if len(responses) == 0 && isCWOnly {
		logx.Logf("export: receiver %q has no responses under CW; skipping export (spec §7 non-fatal)", rx.Name)
		return nil
	}

	if flags.CSV {
		if err := WriteCSV(dir, rx, responses); err != nil {
			return fmt.Errorf("export: CSV for receiver %q: %w", rx.Name, err)
		}
	}
	if flags.XML {
		if err := WriteXML(dir, rx, responses); err != nil {
			return fmt.Errorf("export: XML for receiver %q: %w", rx.Name, err)
		}
	}
	if flags.Binary {
		if err := WriteBinary(dir, rx, windows); err != nil {
			return fmt.Errorf("export: binary for receiver %q: %w", rx.Name, err)
		}
	}
	return nil
}
