package betboard

import (
	"context"
	"fmt"
)

// DefaultBreakdownBuckets are the buckets whose assets get their own pie.
var DefaultBreakdownBuckets = []string{"Long-Term", "Speculative"}

// ReportOptions controls how distributions are turned into pies.
type ReportOptions struct {
	Threshold float64 // share under which entries are folded into Other
	Detailed  bool    // do not fold the asset pie
	Policy    Policy
	// Buckets to break down by asset. Buckets without positive value are skipped.
	BreakdownBuckets []string
}

// DefaultReportOptions returns the options used by the dashboard.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		Threshold:        DefaultThreshold,
		Policy:           RespectExistingOther,
		BreakdownBuckets: DefaultBreakdownBuckets,
	}
}

// Pie is one chart ready for rendering.
type Pie struct {
	Title     string        `json:"title"`
	Dimension string        `json:"dimension"`
	Threshold float64       `json:"threshold"`
	Slices    Slices        `json:"slices"`
	Source    *Distribution `json:"-"`
}

// Total returns the value represented by the pie.
func (p Pie) Total() float64 { return p.Slices.Total() }

// Report is the full set of distributions and pies of a ledger, computed once.
type Report struct {
	Ledger     string
	Mode       Mode
	HasBuckets bool
	Total      float64

	Distributions Distributions
	Pies          []Pie // asset, category, then bucket when the ledger has buckets
	Breakdowns    []Pie // per-bucket asset pies
}

// NewReport values the ledger rows once and derives every distribution and pie from those values.
func NewReport(ctx context.Context, l *Ledger, v Valuer, opts ReportOptions) (*Report, error) {
	rows := l.Rows()
	values, err := v.Valuate(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("valuing ledger %q: %w", l.Name(), err)
	}
	return buildReport(l.Name(), l.Mode(), rows, values, opts), nil
}

func buildReport(name string, mode Mode, rows []LedgerRow, values []float64, opts ReportOptions) *Report {
	r := &Report{
		Ledger:        name,
		Mode:          mode,
		HasBuckets:    HasBuckets(rows),
		Distributions: AggregateAll(rows, values),
	}
	r.Total = Combine(r.Distributions.Asset, 0, opts.Policy).Total()

	for _, dim := range Dimensions {
		if dim == ByBucket && !r.HasBuckets {
			continue
		}
		threshold := opts.Threshold
		if dim == ByAsset && opts.Detailed {
			threshold = 0
		}
		d := r.Distributions.Get(dim)
		r.Pies = append(r.Pies, Pie{
			Title:     dim.Title(),
			Dimension: dim.String(),
			Threshold: threshold,
			Slices:    Combine(d, threshold, opts.Policy),
			Source:    d,
		})
	}

	if r.HasBuckets {
		_, breakdown := BucketBreakdown(rows, values)
		for _, b := range opts.BreakdownBuckets {
			d, ok := breakdown[b]
			if !ok {
				continue
			}
			slices := Combine(d, opts.Threshold, opts.Policy)
			if len(slices) == 0 {
				continue
			}
			r.Breakdowns = append(r.Breakdowns, Pie{
				Title:     b,
				Dimension: ByAsset.String(),
				Threshold: opts.Threshold,
				Slices:    slices,
				Source:    d,
			})
		}
	}
	return r
}

// Pie returns the pie along dim, if present.
func (r *Report) Pie(dim Dimension) (Pie, bool) {
	for _, p := range r.Pies {
		if p.Dimension == dim.String() {
			return p, true
		}
	}
	return Pie{}, false
}
