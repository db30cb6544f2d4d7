package export

import (
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/banshee-data/fers/internal/world"
)

type xmlInterpolationPoint struct {
	Time             string `xml:"time"`
	Amplitude        string `xml:"amplitude"`
	Phase            string `xml:"phase"`
	Doppler          string `xml:"doppler"`
	Power            string `xml:"power"`
	IAmplitude       string `xml:"Iamplitude"`
	QAmplitude       string `xml:"Qamplitude"`
	NoiseTemperature string `xml:"noise_temperature"`
	PhaseDeg         string `xml:"phasedeg"`
}

type xmlResponse struct {
	Transmitter string                  `xml:"transmitter,attr"`
	Start       string                  `xml:"start"`
	Name        string                  `xml:"name"`
	Points      []xmlInterpolationPoint `xml:"InterpolationPoint"`
}

type xmlReceiver struct {
	XMLName   xml.Name      `xml:"receiver"`
	Responses []xmlResponse `xml:"Response"`
}

// WriteXML emits "<receiverName>_results.xml": a <receiver> root with one
// <Response transmitter="..."> per response, each carrying its sampled
// InterpolationPoints (spec §6 "XML output"). All floats are formatted to
// 10 significant digits.
func WriteXML(dir string, rx *world.Receiver, responses []*world.Response) error {
	doc := xmlReceiver{}
	for _, r := range responses {
		carrier := r.Wave.Carrier
		pSignal := r.Wave.Power
		xr := xmlResponse{
			Transmitter: r.Transmitter.Name,
			Start:       formatFloat(r.StartTime()),
			Name:        r.Wave.Name,
		}
		for _, p := range r.Points {
			amplitude := math.Sqrt(p.Power * pSignal)
			xr.Points = append(xr.Points, xmlInterpolationPoint{
				Time:             formatFloat(p.Time),
				Amplitude:        formatFloat(amplitude),
				Phase:            formatFloat(p.Phase),
				Doppler:          formatFloat(dopplerHz(carrier, p.DopplerFactor)),
				Power:            formatFloat(p.Power),
				IAmplitude:       formatFloat(amplitude * math.Cos(p.Phase)),
				QAmplitude:       formatFloat(amplitude * math.Sin(p.Phase)),
				NoiseTemperature: formatFloat(p.NoiseTemperature),
				PhaseDeg:         formatFloat(p.Phase * 180 / math.Pi),
			})
		}
		doc.Responses = append(doc.Responses, xr)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_results.xml", rx.Name))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()

	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding %q: %w", path, err)
	}
	return nil
}
