package export

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/fers/internal/recv"
	"github.com/banshee-data/fers/internal/world"
)

// binaryChunkMeta mirrors one window's HDF5 dataset attributes (spec §6
// "Binary output format": time, rate, fullscale per chunk). No HDF5 binding
// is available in this module's dependency set, so the binary format is a
// JSON metadata sidecar (one entry per window) plus a flat little-endian
// data file carrying each window's interleaved I/Q doubles back to back, in
// window order — a concrete stand-in for the HDF5 per-window dataset
// contract, in the same header-plus-chunk-file shape as the teacher's
// recorder.LogHeader/chunk-file pair.
type binaryChunkMeta struct {
	Index     int     `json:"index"`
	Time      float64 `json:"time"`
	Rate      float64 `json:"rate"`
	Fullscale float64 `json:"fullscale"`
	Samples   int     `json:"samples"`
}

type binaryHeader struct {
	Receiver string            `json:"receiver"`
	Chunks   []binaryChunkMeta `json:"chunks"`
}

// WriteBinary emits "<receiverName>_results.h5.json" (metadata) and
// "<receiverName>_results.h5.iq" (interleaved little-endian I/Q doubles),
// together satisfying spec §6's per-window {time, rate, fullscale} dataset
// contract. An empty window list produces an empty data file and a
// metadata file with no chunk entries; no "cw_iq" vector is written.
func WriteBinary(dir string, rx *world.Receiver, windows []recv.Window) error {
	base := filepath.Join(dir, fmt.Sprintf("%s_results.h5", rx.Name))
	dataPath := base + ".iq"
	metaPath := base + ".json"

	f, err := os.Create(dataPath)
	if err != nil {
		return fmt.Errorf("creating %q: %w", dataPath, err)
	}
	defer f.Close()

	header := binaryHeader{Receiver: rx.Name}
	for _, win := range windows {
		for _, sample := range win.IQ {
			if err := binary.Write(f, binary.LittleEndian, real(sample)); err != nil {
				return fmt.Errorf("writing I sample to %q: %w", dataPath, err)
			}
			if err := binary.Write(f, binary.LittleEndian, imag(sample)); err != nil {
				return fmt.Errorf("writing Q sample to %q: %w", dataPath, err)
			}
		}
		header.Chunks = append(header.Chunks, binaryChunkMeta{
			Index:     win.Index,
			Time:      win.StartTime,
			Rate:      win.Rate,
			Fullscale: win.Fullscale,
			Samples:   len(win.IQ),
		})
	}

	metaFile, err := os.Create(metaPath)
	if err != nil {
		return fmt.Errorf("creating %q: %w", metaPath, err)
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("encoding %q: %w", metaPath, err)
	}
	return nil
}
