package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/betboard"
	md "github.com/nao1215/markdown"
)

// EmptyState is printed instead of a table for a distribution without positive value.
const EmptyState = "_No positive holdings._"

// ReportMarkdown renders the report distributions and their pie slices.
func ReportMarkdown(r *betboard.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := "Portfolio Dashboard"
	if r.Ledger != "" {
		title = fmt.Sprintf("Portfolio Dashboard: %s", r.Ledger)
	}
	doc.H1(title)
	doc.PlainText(fmt.Sprintf("Total value: **%s** (%s prices)", Money(r.Total), r.Mode))

	for _, dim := range betboard.Dimensions {
		if dim == betboard.ByBucket && !r.HasBuckets {
			continue
		}
		doc.H2(dim.Title())
		entries := sorted(r.Distributions.Get(dim))
		if len(entries) == 0 {
			doc.PlainText(EmptyState)
			continue
		}
		total := entries.Total()
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{cell(e.Label), Money(e.Value), Share(e.Value, total)})
		}
		doc.Table(md.TableSet{
			Header: []string{heading(dim), "Value", "Share"},
			Rows:   rows,
		})
	}

	doc.H2("Pie slices")
	for _, p := range r.Pies {
		pieSection(doc, p.Title, p)
	}
	for _, p := range r.Breakdowns {
		pieSection(doc, fmt.Sprintf("%s Breakdown", p.Title), p)
	}

	return doc.String()
}

func pieSection(doc *md.Markdown, title string, p betboard.Pie) {
	doc.H3(title)
	if len(p.Slices) == 0 {
		doc.PlainText(EmptyState)
		return
	}
	total := p.Total()
	rows := make([][]string, 0, len(p.Slices))
	for _, s := range p.Slices {
		rows = append(rows, []string{cell(s.Label), Money(s.Value), Share(s.Value, total)})
	}
	doc.Table(md.TableSet{
		Header: []string{"Slice", "Value", "Percent"},
		Rows:   rows,
	})
}

// SlicesMarkdown renders a single set of slices as a table.
func SlicesMarkdown(title string, slices betboard.Slices) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	pieSection(doc, title, betboard.Pie{Title: title, Slices: slices})
	return doc.String()
}
