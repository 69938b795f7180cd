package betboard

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// column aliases, lower-case
var (
	colAsset       = []string{"asset"}
	colTicker      = []string{"ticker"}
	colQuantity    = []string{"quantity"}
	colCategory    = []string{"category"}
	colBucket      = []string{"bucket"}
	colAmount      = []string{"amount"}
	colAvgBuyPrice = []string{"avg buy price", "avg_buy_price", "avgbuyprice"}
)

// OpenLedger reads a ledger file. CSV and XLSX files are supported.
func OpenLedger(path string, mode Mode) (*Ledger, error) {
	var (
		l   *Ledger
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		l, err = readLedger(f, mode)
		if err != nil {
			return nil, fmt.Errorf("reading ledger %q: %w", path, err)
		}
	case ".xlsx":
		l, err = LoadWorkbook(path, "", mode)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	l.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return l, nil
}

// LoadLedger reads a full ledger: Asset,Ticker,Quantity,Category[,Bucket][,Avg Buy Price].
//
// Missing columns are not an error: their values fall back to the row defaults.
func LoadLedger(r io.Reader) (*Ledger, error) { return readLedger(r, Live) }

// LoadSimpleLedger reads a simple ledger: Asset,Category,Amount[,Bucket].
//
// Headers are matched case-insensitively. A file without Amount but with Quantity
// and Avg Buy Price gets Amount = Quantity × Avg Buy Price. Any other missing
// header is a *SchemaError.
func LoadSimpleLedger(r io.Reader) (*Ledger, error) { return readLedger(r, Simple) }

// LoadWorkbook reads a ledger from a sheet of an XLSX workbook. An empty sheet name selects the first sheet.
func LoadWorkbook(path, sheet string, mode Mode) (*Ledger, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %q: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %q: %w", sheet, path, err)
	}
	l, err := decodeLedger(records, mode)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %q: %w", path, err)
	}
	return l, nil
}

func readLedger(r io.Reader, mode Mode) (*Ledger, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return decodeLedger(records, mode)
}

func decodeLedger(records [][]string, mode Mode) (*Ledger, error) {
	records = dropBlank(records)
	if len(records) == 0 {
		return nil, ErrEmptyLedger
	}
	h := newHeader(records[0])

	synthesize := false
	if mode == Simple {
		var missing []string
		for _, col := range [][]string{colAsset, colCategory, colAmount} {
			if !h.has(col) {
				missing = append(missing, col[0])
			}
		}
		// an amount can be rebuilt from the cost basis, never from live prices.
		if len(missing) == 1 && missing[0] == colAmount[0] && h.has(colQuantity) && h.has(colAvgBuyPrice) {
			missing, synthesize = nil, true
		}
		if len(missing) > 0 {
			return nil, &SchemaError{
				Schema:   "simple",
				Required: []string{"Asset", "Category", "Amount"},
				Missing:  missing,
				Found:    h.names,
			}
		}
	}

	l := &Ledger{mode: mode, rows: make([]LedgerRow, 0, len(records)-1)}
	for _, rec := range records[1:] {
		row := LedgerRow{
			Asset:       h.get(rec, colAsset),
			Ticker:      h.get(rec, colTicker),
			Quantity:    parseQuantity(h.get(rec, colQuantity)),
			Category:    h.get(rec, colCategory),
			Bucket:      strings.TrimSpace(h.get(rec, colBucket)),
			AvgBuyPrice: ParseNumber(h.get(rec, colAvgBuyPrice)),
		}
		if mode == Simple {
			row.Amount = ParseNumber(h.get(rec, colAmount))
			if synthesize {
				row.Amount = mul(row.Quantity, row.AvgBuyPrice)
			}
		}
		l.rows = append(l.rows, row)
	}
	return l, nil
}

// header maps lower-case trimmed column names to their index.
type header struct {
	names []string
	index map[string]int
}

func newHeader(record []string) header {
	h := header{names: make([]string, len(record)), index: make(map[string]int)}
	for i, name := range record {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		h.names[i] = name
		key := strings.ToLower(name)
		if _, exists := h.index[key]; !exists {
			h.index[key] = i
		}
	}
	return h
}

func (h header) lookup(aliases []string) (int, bool) {
	for _, a := range aliases {
		if i, ok := h.index[a]; ok {
			return i, true
		}
	}
	return 0, false
}

func (h header) has(aliases []string) bool {
	_, ok := h.lookup(aliases)
	return ok
}

// get returns the trimmed cell, or "" when the column or the cell is missing.
func (h header) get(rec []string, aliases []string) string {
	i, ok := h.lookup(aliases)
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func dropBlank(records [][]string) [][]string {
	out := records[:0]
	for _, rec := range records {
		for _, cell := range rec {
			if strings.TrimSpace(cell) != "" {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
