package renderer

import (
	"encoding/json"
	"io"

	"github.com/etnz/betboard"
)

// PieChart is the data of one pie chart, ready for a charting library.
type PieChart struct {
	Title     string    `json:"title"`
	Dimension string    `json:"dimension"`
	Labels    []string  `json:"labels"`
	Values    []float64 `json:"values"`
	Total     float64   `json:"total"`
	Currency  string    `json:"currency"`
}

// Dashboard is the JSON document of a report.
type Dashboard struct {
	Ledger        string                        `json:"ledger,omitempty"`
	Mode          string                        `json:"mode"`
	Total         float64                       `json:"total"`
	Currency      string                        `json:"currency"`
	Distributions map[string]map[string]float64 `json:"distributions"`
	Charts        []PieChart                    `json:"charts"`
	Breakdowns    []PieChart                    `json:"breakdowns,omitempty"`
}

// PieCharts returns one chart per pie of the report, then one per bucket breakdown.
func PieCharts(r *betboard.Report) []PieChart {
	charts := make([]PieChart, 0, len(r.Pies)+len(r.Breakdowns))
	for _, p := range r.Pies {
		charts = append(charts, chartOf(p))
	}
	for _, p := range r.Breakdowns {
		charts = append(charts, chartOf(p))
	}
	return charts
}

// NewDashboard converts the report for JSON encoding.
func NewDashboard(r *betboard.Report) Dashboard {
	d := Dashboard{
		Ledger:        r.Ledger,
		Mode:          r.Mode.String(),
		Total:         r.Total,
		Currency:      Currency,
		Distributions: map[string]map[string]float64{},
	}
	for _, dim := range betboard.Dimensions {
		if dim == betboard.ByBucket && !r.HasBuckets {
			continue
		}
		d.Distributions[dim.String()] = r.Distributions.Get(dim).Map()
	}
	for _, p := range r.Pies {
		d.Charts = append(d.Charts, chartOf(p))
	}
	for _, p := range r.Breakdowns {
		d.Breakdowns = append(d.Breakdowns, chartOf(p))
	}
	return d
}

// PieJSON writes the report as an indented JSON Dashboard.
func PieJSON(w io.Writer, r *betboard.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDashboard(r))
}

func chartOf(p betboard.Pie) PieChart {
	return PieChart{
		Title:     p.Title,
		Dimension: p.Dimension,
		Labels:    p.Slices.Labels(),
		Values:    p.Slices.Values(),
		Total:     p.Total(),
		Currency:  Currency,
	}
}
