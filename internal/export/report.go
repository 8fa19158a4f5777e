package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/casim/internal/runner"
)

// Report is the JSON summary of one run. It records what was observed, not
// the grid itself.
type Report struct {
	Rule         string               `json:"rule"`
	Neighborhood string               `json:"neighborhood"`
	Width        int                  `json:"width"`
	Height       int                  `json:"height"`
	Seed         int64                `json:"seed"`
	Steps        int                  `json:"steps"`
	Generation   int                  `json:"generation"`
	Stable       bool                 `json:"stable"`
	StableAt     int                  `json:"stable_at"`
	Series       map[string][]float64 `json:"series"`
	Metrics      map[string]float64   `json:"metrics"`
}

func NewReport(rule, neighborhood string, width, height int, seed int64, result *runner.Result) Report {
	r := Report{
		Rule:         rule,
		Neighborhood: neighborhood,
		Width:        width,
		Height:       height,
		Seed:         seed,
		Series:       map[string][]float64{},
		Metrics:      map[string]float64{},
	}
	if result == nil {
		return r
	}
	r.Steps = result.Steps
	r.Generation = result.Generation
	r.Stable = result.Stable
	if result.Stable {
		r.StableAt = result.StableAt
	}
	for k, v := range result.Series {
		r.Series[k] = v
	}
	for k, v := range result.Metrics {
		r.Metrics[k] = v
	}
	return r
}

func WriteJSON(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// ExportJSON writes report to path, or to stdout when path is "-".
func ExportJSON(path string, report Report) error {
	if path == "-" {
		return WriteJSON(os.Stdout, report)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, report)
}

// WriteFile writes an SVG document produced by GridToSVG or SeriesToSVG.
func WriteFile(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0o644)
}
