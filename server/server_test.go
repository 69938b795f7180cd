package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/betboard"
	"github.com/etnz/betboard/price"
	"github.com/etnz/betboard/renderer"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedPrices answers from a map and never touches the network.
type fixedPrices map[string]float64

func (p fixedPrices) Resolve(_ context.Context, ticker, _ string) float64 { return p[ticker] }

func (p fixedPrices) Lookup(_ context.Context, ticker, asset string) price.Quote {
	q := price.Quote{Ticker: ticker, Asset: asset, Symbol: price.Normalize(ticker), Reason: price.NoData}
	if v, ok := p[ticker]; ok {
		q.Price, q.Source, q.Reason = v, "fixed", price.Resolved
	}
	return q
}

func newTestServer(t *testing.T, ledger string, mode betboard.Mode) *httptest.Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte(ledger), 0o644))

	s := New(Config{
		Ledger:  path,
		Mode:    mode,
		Options: betboard.DefaultReportOptions(),
		Prices:  fixedPrices{"BTC": 30000, "AAPL": 100},
		Log:     zerolog.Nop(),
	})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

const liveLedger = `Asset,Ticker,Quantity,Category,Bucket
BTC,BTC,1,Crypto,Speculative
BTC,BTC,1,Crypto,Speculative
Apple,AAPL,1,Equity,Long-Term
`

func TestHealth(t *testing.T) {
	srv := newTestServer(t, liveLedger, betboard.Live)
	var body map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/healthz", &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReport(t *testing.T) {
	srv := newTestServer(t, liveLedger, betboard.Live)

	var d renderer.Dashboard
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/v1/report", &d))
	assert.Equal(t, "live", d.Mode)
	assert.Equal(t, 60100.0, d.Total)
	assert.Equal(t, map[string]float64{"BTC": 60000, "Apple": 100}, d.Distributions["asset"])
	require.Len(t, d.Charts, 3)
	// Apple is under 2% of the total
	assert.Equal(t, []string{"BTC", "Other"}, d.Charts[0].Labels)
}

func TestReport_QueryOverrides(t *testing.T) {
	srv := newTestServer(t, liveLedger, betboard.Live)

	var d renderer.Dashboard
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/v1/report?detailed=true&threshold=0.5", &d))
	assert.Equal(t, []string{"BTC", "Apple"}, d.Charts[0].Labels)
	assert.Equal(t, []string{"Crypto", "Other"}, d.Charts[1].Labels)
}

func TestReport_BadQuery(t *testing.T) {
	srv := newTestServer(t, liveLedger, betboard.Live)
	for _, q := range []string{"threshold=1", "threshold=abc", "detailed=maybe", "policy=merge", "format=xml"} {
		var body map[string]string
		assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/v1/report?"+q, &body), q)
		assert.NotEmpty(t, body["error"], q)
	}
}

func TestReport_HTML(t *testing.T) {
	srv := newTestServer(t, liveLedger, betboard.Live)
	resp, err := http.Get(srv.URL + "/api/v1/report?format=html")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
}

func TestReport_SchemaError(t *testing.T) {
	srv := newTestServer(t, "Asset,Ticker,Quantity\nBTC,BTC,1\n", betboard.Simple)
	var body map[string]string
	assert.Equal(t, http.StatusUnprocessableEntity, getJSON(t, srv.URL+"/api/v1/report", &body))
	assert.Contains(t, body["error"], "Missing: category, amount")
}

func TestReport_MissingLedger(t *testing.T) {
	s := New(Config{Ledger: filepath.Join(t.TempDir(), "gone.csv"), Prices: fixedPrices{}, Log: zerolog.Nop()})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	var body map[string]string
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/v1/report", &body))
}

func TestPrice(t *testing.T) {
	srv := newTestServer(t, liveLedger, betboard.Live)

	var q struct {
		Symbol string  `json:"symbol"`
		Asset  string  `json:"asset"`
		Price  float64 `json:"price"`
		Reason string  `json:"reason"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/v1/price/BTC?asset=Bitcoin", &q))
	assert.Equal(t, 30000.0, q.Price)
	assert.Equal(t, "Bitcoin", q.Asset)
	assert.Equal(t, "resolved", q.Reason)

	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/v1/price/ZZZ", &q))
	assert.Equal(t, 0.0, q.Price)
	assert.Equal(t, "ZZZ", q.Asset)
	assert.Equal(t, "no-data", q.Reason)
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, liveLedger, betboard.Live)
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
