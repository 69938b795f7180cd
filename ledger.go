package betboard

import "strings"

const (
	// Uncategorized is the category of rows with no category.
	Uncategorized = "Uncategorized"
	// Unbucketed is the bucket of rows with no bucket.
	Unbucketed = "Unbucketed"
)

// Mode selects how a ledger row is turned into a monetary value.
type Mode int

const (
	// Live values rows as quantity times a resolved market price.
	Live Mode = iota
	// Simple values rows with the amount already present in the ledger.
	Simple
)

func (m Mode) String() string {
	switch m {
	case Live:
		return "live"
	case Simple:
		return "simple"
	default:
		return "unknown"
	}
}

// ParseMode parses "live" or "simple" (case-insensitive).
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "live", "":
		return Live, true
	case "simple":
		return Simple, true
	}
	return Live, false
}

// LedgerRow is one holding of the ledger.
//
// Rows are built once by a loader and never modified afterwards.
type LedgerRow struct {
	Asset       string
	Ticker      string
	Quantity    float64
	Category    string
	Bucket      string
	Amount      float64 // current value in USD, simple mode only
	AvgBuyPrice float64
}

// TickerOrAsset returns the symbol used for price lookup: the ticker, or the asset when there is no ticker.
func (r LedgerRow) TickerOrAsset() string {
	if r.Ticker != "" {
		return r.Ticker
	}
	return r.Asset
}

// CategoryLabel returns the category, or Uncategorized.
func (r LedgerRow) CategoryLabel() string {
	if r.Category != "" {
		return r.Category
	}
	return Uncategorized
}

// BucketLabel returns the bucket, or Unbucketed.
func (r LedgerRow) BucketLabel() string {
	if r.Bucket != "" {
		return r.Bucket
	}
	return Unbucketed
}

// Ledger is an ordered, read-only list of rows together with the schema they were read from.
type Ledger struct {
	name string
	mode Mode
	rows []LedgerRow
}

// NewLedger returns a ledger over a copy of rows.
func NewLedger(mode Mode, rows ...LedgerRow) *Ledger {
	l := &Ledger{mode: mode, rows: make([]LedgerRow, len(rows))}
	copy(l.rows, rows)
	return l
}

// Name is the ledger name, usually the base name of the file it was read from.
func (l *Ledger) Name() string { return l.name }

// Mode reports the schema the ledger was read with.
func (l *Ledger) Mode() Mode { return l.mode }

// Len returns the number of rows.
func (l *Ledger) Len() int { return len(l.rows) }

// Rows returns a copy of the rows in ledger order.
func (l *Ledger) Rows() []LedgerRow {
	rows := make([]LedgerRow, len(l.rows))
	copy(rows, l.rows)
	return rows
}

// HasBuckets reports whether at least one row carries a bucket.
func (l *Ledger) HasBuckets() bool { return HasBuckets(l.rows) }

// HasBuckets reports whether at least one row carries a bucket.
func HasBuckets(rows []LedgerRow) bool {
	for _, r := range rows {
		if r.Bucket != "" {
			return true
		}
	}
	return false
}
