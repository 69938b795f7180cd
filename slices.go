package betboard

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// OtherLabel is the label of the slice collecting small entries.
const OtherLabel = "Other"

// DefaultThreshold is the share of the total under which an entry is folded into Other.
const DefaultThreshold = 0.02

// Policy tells Combine what to do with labels that already look like "other".
type Policy int

const (
	// RespectExistingOther folds small entries into the first label containing
	// "other" (case-insensitive) instead of creating a new Other slice.
	RespectExistingOther Policy = iota
	// NewOther treats other-like labels as any other entry and always folds
	// small entries into a slice labeled Other.
	NewOther
)

func (p Policy) String() string {
	if p == NewOther {
		return "new"
	}
	return "respect"
}

// ParsePolicy parses "respect" or "new".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "respect", "":
		return RespectExistingOther, nil
	case "new":
		return NewOther, nil
	}
	return 0, fmt.Errorf("unknown policy %q, want respect or new", s)
}

// IsOtherLabel reports whether label contains "other", ignoring case and surrounding spaces.
func IsOtherLabel(label string) bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(label)), "other")
}

// Slice is one entry of a pie chart.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Slices is an ordered list of pie slices, largest first.
type Slices []Slice

// Total returns the sum of the slice values.
func (s Slices) Total() float64 { return floats.Sum(s.Values()) }

// Labels returns the slice labels in order.
func (s Slices) Labels() []string {
	labels := make([]string, len(s))
	for i, e := range s {
		labels[i] = e.Label
	}
	return labels
}

// Values returns the slice values in order.
func (s Slices) Values() []float64 {
	values := make([]float64, len(s))
	for i, e := range s {
		values[i] = e.Value
	}
	return values
}

// Fractions returns each slice share of the total, in [0,1].
func (s Slices) Fractions() []float64 {
	total := s.Total()
	fractions := make([]float64, len(s))
	if total <= 0 {
		return fractions
	}
	for i, e := range s {
		fractions[i] = e.Value / total
	}
	return fractions
}

// Percent returns value as a percentage of total, 0 when total is not positive.
func Percent(value, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * value / total
}

// Combine turns d into pie slices.
//
// Entries that are not positive are dropped. When threshold is positive, every
// entry worth less than threshold × total is folded into a single remainder
// slice. With RespectExistingOther the remainder goes into the first label of d
// containing "other"; if that label was itself small it comes back carrying
// the whole remainder. Otherwise the remainder is a new slice labeled Other.
//
// The result is sorted by decreasing value; ties keep the order of d. The sum
// of the slices is the sum of the positive entries of d.
func Combine(d *Distribution, threshold float64, policy Policy) Slices {
	var items Slices
	for _, label := range d.labels {
		v := d.values[label]
		if v > 0 && !math.IsInf(v, 1) {
			items = append(items, Slice{label, v})
		}
	}
	total := items.Total()
	if total <= 0 {
		return Slices{}
	}

	// threshold 0 is the detailed view: nothing is small.
	if threshold <= 0 || math.IsNaN(threshold) {
		sortSlices(items)
		return items
	}

	target := -1
	if policy == RespectExistingOther {
		for i, it := range items {
			if IsOtherLabel(it.Label) {
				target = i
				break
			}
		}
	}

	var (
		large    Slices
		smallSum float64
		kept     = -1 // index of the target in large
	)
	for i, it := range items {
		if it.Value/total < threshold {
			smallSum += it.Value
			continue
		}
		if i == target {
			kept = len(large)
		}
		large = append(large, it)
	}

	if smallSum > 0 {
		switch {
		case kept >= 0:
			large[kept].Value += smallSum
		case target >= 0:
			large = append(large, Slice{items[target].Label, smallSum})
		default:
			large = addTo(large, OtherLabel, smallSum)
		}
	}
	sortSlices(large)
	return large
}

// addTo adds v to the slice labeled label, appending it if missing.
func addTo(s Slices, label string, v float64) Slices {
	for i := range s {
		if s[i].Label == label {
			s[i].Value += v
			return s
		}
	}
	return append(s, Slice{label, v})
}

func sortSlices(s Slices) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Value > s[j].Value })
}
