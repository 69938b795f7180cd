package renderer

import (
	"bytes"
	"io"
	"strings"

	"github.com/etnz/betboard"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

func percent(value, total float64) float64 { return betboard.Percent(value, total) }

// heading is the column name of a dimension, e.g. "Asset".
func heading(dim betboard.Dimension) string {
	s := dim.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// sorted returns the positive entries of d by decreasing value, without folding.
func sorted(d *betboard.Distribution) betboard.Slices {
	return betboard.Combine(d, 0, betboard.RespectExistingOther)
}

// cell escapes the characters that would break a markdown table cell.
func cell(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
