package renderer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/etnz/betboard"
)

// PlainText writes the raw distributions in ledger order, one "label value" line per entry.
//
// Buckets are listed only when the ledger has some.
func PlainText(w io.Writer, r *betboard.Report) {
	fmt.Fprintln(w, "ASSETS")
	writeEntries(w, r.Distributions.Asset)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "CATEGORIES")
	writeEntries(w, r.Distributions.Category)

	ConditionalBlock(w, func(w io.Writer) bool {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "BUCKETS")
		writeEntries(w, r.Distributions.Bucket)
		return r.HasBuckets
	})
}

// SlicesText writes one "label value percent" line per slice.
func SlicesText(w io.Writer, slices betboard.Slices) {
	total := slices.Total()
	for _, s := range slices {
		fmt.Fprintf(w, "%s %s %s\n", s.Label, strconv.FormatFloat(s.Value, 'f', -1, 64), Share(s.Value, total))
	}
}

func writeEntries(w io.Writer, d *betboard.Distribution) {
	for _, label := range d.Labels() {
		fmt.Fprintf(w, "%s %s\n", label, strconv.FormatFloat(d.Value(label), 'f', -1, 64))
	}
}
