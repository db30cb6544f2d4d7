package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/banshee-data/fers/internal/world"
)

// WriteCSV emits one "<receiverName>_results_<transmitterName>.csv" per
// contributing transmitter (spec §6 "CSV output"): columns time, power,
// phase, doppler_hz, rows in response order then point order.
func WriteCSV(dir string, rx *world.Receiver, responses []*world.Response) error {
	byTx := map[string][]*world.Response{}
	var order []string
	for _, r := range responses {
		name := r.Transmitter.Name
		if _, ok := byTx[name]; !ok {
			order = append(order, name)
		}
		byTx[name] = append(byTx[name], r)
	}

	for _, txName := range order {
		path := filepath.Join(dir, fmt.Sprintf("%s_results_%s.csv", rx.Name, txName))
		if err := writeCSVFile(path, byTx[txName]); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVFile(path string, responses []*world.Response) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	for _, r := range responses {
		carrier := r.Wave.Carrier
		for _, p := range r.Points {
			row := []string{
				formatFloat(p.Time),
				formatFloat(p.Power),
				formatFloat(p.Phase),
				formatFloat(dopplerHz(carrier, p.DopplerFactor)),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("writing row to %q: %w", path, err)
			}
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}
