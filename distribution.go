package betboard

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Dimension selects the label a row is grouped under.
type Dimension int

const (
	ByAsset Dimension = iota
	ByCategory
	ByBucket
)

// Dimensions lists all dimensions in display order.
var Dimensions = []Dimension{ByAsset, ByCategory, ByBucket}

func (d Dimension) String() string {
	switch d {
	case ByAsset:
		return "asset"
	case ByCategory:
		return "category"
	case ByBucket:
		return "bucket"
	default:
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
}

// Title is the chart title for the dimension, e.g. "Asset Distribution".
func (d Dimension) Title() string {
	s := d.String()
	return strings.ToUpper(s[:1]) + s[1:] + " Distribution"
}

// ParseDimension parses "asset", "category" or "bucket" (case-insensitive, plural accepted).
func ParseDimension(s string) (Dimension, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "asset":
		return ByAsset, nil
	case "category", "categorie":
		return ByCategory, nil
	case "bucket":
		return ByBucket, nil
	}
	return 0, fmt.Errorf("unknown dimension %q, want asset, category or bucket", s)
}

// Label returns the group label of r along d, with the row defaults applied.
func (d Dimension) Label(r LedgerRow) string {
	switch d {
	case ByCategory:
		return r.CategoryLabel()
	case ByBucket:
		return r.BucketLabel()
	default:
		return r.Asset
	}
}

// Distribution maps labels to accumulated values.
//
// Labels keep the order they were first added in. Labels are compared
// exactly: "cash" and "Cash" are two entries.
type Distribution struct {
	labels []string
	values map[string]float64
}

// NewDistribution returns an empty distribution.
func NewDistribution() *Distribution {
	return &Distribution{values: make(map[string]float64)}
}

// DistributionOf builds a distribution from alternating label, value pairs, in order.
// It is meant for tests and fixtures.
func DistributionOf(pairs ...any) *Distribution {
	d := NewDistribution()
	for i := 0; i+1 < len(pairs); i += 2 {
		label, _ := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case float64:
			d.Add(label, v)
		case int:
			d.Add(label, float64(v))
		}
	}
	return d
}

// Add accumulates v into label.
func (d *Distribution) Add(label string, v float64) {
	if _, ok := d.values[label]; !ok {
		d.labels = append(d.labels, label)
	}
	d.values[label] += finite(v)
}

// Len returns the number of labels.
func (d *Distribution) Len() int { return len(d.labels) }

// Labels returns the labels in insertion order.
func (d *Distribution) Labels() []string {
	labels := make([]string, len(d.labels))
	copy(labels, d.labels)
	return labels
}

// Value returns the value accumulated under label.
func (d *Distribution) Value(label string) float64 { return d.values[label] }

// Has reports whether label was ever added.
func (d *Distribution) Has(label string) bool {
	_, ok := d.values[label]
	return ok
}

// Total returns the sum of all values.
func (d *Distribution) Total() float64 {
	values := make([]float64, 0, len(d.labels))
	for _, l := range d.labels {
		values = append(values, d.values[l])
	}
	return floats.Sum(values)
}

// Map returns a copy of the distribution as a plain map.
func (d *Distribution) Map() map[string]float64 {
	m := make(map[string]float64, len(d.values))
	for k, v := range d.values {
		m[k] = v
	}
	return m
}

// Aggregate sums values into groups along dim. values[i] is the value of rows[i].
func Aggregate(rows []LedgerRow, values []float64, dim Dimension) *Distribution {
	d := NewDistribution()
	for i, r := range rows {
		var v float64
		if i < len(values) {
			v = values[i]
		}
		d.Add(dim.Label(r), v)
	}
	return d
}

// Distributions holds the three aggregations of a single row set.
type Distributions struct {
	Asset    *Distribution
	Category *Distribution
	Bucket   *Distribution
}

// Get returns the distribution along dim.
func (ds Distributions) Get(dim Dimension) *Distribution {
	switch dim {
	case ByCategory:
		return ds.Category
	case ByBucket:
		return ds.Bucket
	default:
		return ds.Asset
	}
}

// AggregateAll computes the three distributions from one value vector, so each row is valued only once.
func AggregateAll(rows []LedgerRow, values []float64) Distributions {
	return Distributions{
		Asset:    Aggregate(rows, values, ByAsset),
		Category: Aggregate(rows, values, ByCategory),
		Bucket:   Aggregate(rows, values, ByBucket),
	}
}

// BucketBreakdown returns, for each bucket, the distribution of its rows by asset.
// Buckets are returned in first-seen order.
func BucketBreakdown(rows []LedgerRow, values []float64) ([]string, map[string]*Distribution) {
	var order []string
	byBucket := make(map[string]*Distribution)
	for i, r := range rows {
		b := r.BucketLabel()
		d, ok := byBucket[b]
		if !ok {
			d = NewDistribution()
			byBucket[b] = d
			order = append(order, b)
		}
		var v float64
		if i < len(values) {
			v = values[i]
		}
		d.Add(r.Asset, v)
	}
	return order, byBucket
}
