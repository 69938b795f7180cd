package betboard

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadLedger(t *testing.T) {
	input := `Asset,Ticker,Quantity,Category,Bucket
Bitcoin,$BTC,"1,5",Crypto,Speculative
Apple,AAPL,10,Equity, Long-Term
Cash,,500,,

Ether,ETH,-2,Crypto,
`
	l, err := LoadLedger(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Live, l.Mode())
	require.Equal(t, 4, l.Len())

	rows := l.Rows()
	assert.Equal(t, LedgerRow{Asset: "Bitcoin", Ticker: "$BTC", Quantity: 15, Category: "Crypto", Bucket: "Speculative"}, rows[0])
	assert.Equal(t, "Long-Term", rows[1].Bucket)
	assert.Equal(t, "Cash", rows[2].TickerOrAsset())
	assert.Equal(t, Uncategorized, rows[2].CategoryLabel())
	assert.Equal(t, Unbucketed, rows[2].BucketLabel())
	assert.Equal(t, 0.0, rows[3].Quantity, "negative quantities are clamped")
	assert.True(t, l.HasBuckets())
}

func TestLoadLedger_MissingColumnsUseDefaults(t *testing.T) {
	l, err := LoadLedger(strings.NewReader("ASSET,quantity\nGold,3\n"))
	require.NoError(t, err)
	rows := l.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Gold", rows[0].TickerOrAsset())
	assert.Equal(t, 3.0, rows[0].Quantity)
	assert.Equal(t, Uncategorized, rows[0].CategoryLabel())
	assert.False(t, l.HasBuckets())
}

func TestLoadSimpleLedger(t *testing.T) {
	input := "\ufeffasset, CATEGORY ,Amount\nAAPL,Equity,\"1,200\"\nCash,Cash,300\nJunk,Misc,n/a\n"
	l, err := LoadSimpleLedger(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Simple, l.Mode())
	rows := l.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, 1200.0, rows[0].Amount)
	assert.Equal(t, 300.0, rows[1].Amount)
	assert.Equal(t, 0.0, rows[2].Amount)
}

func TestLoadSimpleLedger_SynthesizesAmount(t *testing.T) {
	input := "Asset,Category,Quantity,Avg Buy Price\nAAPL,Equity,10,150.5\n"
	l, err := LoadSimpleLedger(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1505.0, l.Rows()[0].Amount)
}

func TestLoadSimpleLedger_SchemaError(t *testing.T) {
	_, err := LoadSimpleLedger(strings.NewReader("Asset,Ticker,Quantity\nAAPL,AAPL,1\n"))
	require.Error(t, err)

	var schema *SchemaError
	require.True(t, errors.As(err, &schema))
	assert.ErrorIs(t, err, ErrMissingHeaders)
	assert.Equal(t, []string{"category", "amount"}, schema.Missing)
	assert.Equal(t, []string{"Asset", "Ticker", "Quantity"}, schema.Found)
	assert.Equal(t,
		"simple ledger must contain headers: Asset, Category, Amount. Missing: category, amount. Found: [Asset, Ticker, Quantity]",
		err.Error())
}

func TestLoadLedger_Empty(t *testing.T) {
	for _, input := range []string{"", "\n\n", " , ,\n"} {
		_, err := LoadLedger(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrEmptyLedger, "input %q", input)
	}
	// a header alone is an empty but valid ledger
	l, err := LoadSimpleLedger(strings.NewReader("Asset,Category,Amount\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestOpenLedger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Portfolio.csv")
	require.NoError(t, os.WriteFile(path, []byte("Asset,Category,Amount\nAAPL,Equity,10\n"), 0o644))

	l, err := OpenLedger(path, Simple)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", l.Name())
	assert.Equal(t, 1, l.Len())

	_, err = OpenLedger(filepath.Join(dir, "ledger.json"), Live)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = OpenLedger(filepath.Join(dir, "missing.csv"), Live)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenLedger_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdings.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]any{
		{"Asset", "Ticker", "Quantity", "Category", "Bucket"},
		{"Bitcoin", "BTC", 2, "Crypto", "Speculative"},
		{"Cash", "", "1,000", "Cash", ""},
	}
	for i, row := range cells {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	l, err := OpenLedger(path, Live)
	require.NoError(t, err)
	assert.Equal(t, "holdings", l.Name())
	rows := l.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, 2.0, rows[0].Quantity)
	assert.Equal(t, 1000.0, rows[1].Quantity)
	assert.Equal(t, "Speculative", rows[0].Bucket)
}

func TestLedger_RowsIsACopy(t *testing.T) {
	l := NewLedger(Live, LedgerRow{Asset: "A", Quantity: 1})
	rows := l.Rows()
	rows[0].Quantity = 99
	assert.Equal(t, 1.0, l.Rows()[0].Quantity)
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("SIMPLE")
	assert.True(t, ok)
	assert.Equal(t, Simple, m)
	m, ok = ParseMode("")
	assert.True(t, ok)
	assert.Equal(t, Live, m)
	_, ok = ParseMode("offline")
	assert.False(t, ok)
	assert.Equal(t, "simple", Simple.String())
}
