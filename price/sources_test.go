package price

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinGecko_Price(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		switch r.URL.Query().Get("ids") {
		case "bitcoin":
			fmt.Fprint(w, `{"bitcoin":{"usd":30000}}`)
		case "ethereum":
			fmt.Fprint(w, `{"ethereum":{}}`)
		case "usd-coin":
			fmt.Fprint(w, `{"usd-coin":{"usd":"1.0001"}}`)
		default:
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}
	}))
	defer srv.Close()

	cg := NewCoinGecko(srv.URL, srv.Client(), map[string]string{"usdc": "usd-coin", "sol": "solana"})

	p, err := cg.Price(context.Background(), "btc")
	require.NoError(t, err)
	assert.Equal(t, 30000.0, p)

	p, err = cg.Price(context.Background(), "USDC")
	require.NoError(t, err)
	assert.InDelta(t, 1.0001, p, 1e-9)

	_, err = cg.Price(context.Background(), "ETH")
	assert.ErrorIs(t, err, ErrNoData)

	_, err = cg.Price(context.Background(), "SOL")
	require.Error(t, err)
	assert.Equal(t, Unreachable, classify(err))
}

func TestCoinGecko_UnknownSymbolSkipsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL)
	}))
	defer srv.Close()

	_, err := NewCoinGecko(srv.URL, srv.Client(), nil).Price(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestQuoteEndpoint_Price(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("symbols") {
		case "AAPL":
			fmt.Fprint(w, `{"quoteResponse":{"result":[{"symbol":"AAPL","regularMarketPrice":189.3}],"error":null}}`)
		case "BRK.B":
			fmt.Fprint(w, `{"quoteResponse":{"result":[{"symbol":"BRK.B","regularMarketPrice":"1,234.5"}]}}`)
		case "NONE":
			fmt.Fprint(w, `{"quoteResponse":{"result":[],"error":null}}`)
		case "NOPRICE":
			fmt.Fprint(w, `{"quoteResponse":{"result":[{"symbol":"NOPRICE"}]}}`)
		default:
			fmt.Fprint(w, `<html>not json</html>`)
		}
	}))
	defer srv.Close()

	q := NewQuoteEndpoint(srv.URL, srv.Client())
	tests := []struct {
		symbol string
		want   float64
		reason Reason
	}{
		{"AAPL", 189.3, Resolved},
		{"BRK.B", 1234.5, Resolved},
		{"NONE", 0, NoData},
		{"NOPRICE", 0, NoData},
		{"HTML", 0, Malformed},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			p, err := q.Price(context.Background(), tt.symbol)
			assert.Equal(t, tt.reason, classify(err), "err = %v", err)
			assert.InDelta(t, tt.want, p, 1e-9)
		})
	}
}

func TestYahooHistory_Price(t *testing.T) {
	y := &YahooHistory{closes: func(symbol string) ([]float64, error) {
		switch symbol {
		case "AAPL":
			return []float64{187, 188.5, 189.25}, nil
		case "EMPTY":
			return nil, nil
		default:
			return nil, errors.New("404 Not Found")
		}
	}}

	p, err := y.Price(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 189.25, p)

	_, err = y.Price(context.Background(), "EMPTY")
	assert.ErrorIs(t, err, ErrNoData)

	_, err = y.Price(context.Background(), "ZZZZ")
	assert.Equal(t, Unreachable, classify(err))
}

func TestYahooHistory_AbandonedAtDeadline(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	y := &YahooHistory{closes: func(string) ([]float64, error) {
		<-release
		return []float64{1}, nil
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := y.Price(ctx, "SLOW")
	assert.Equal(t, Timeout, classify(err))
}

func TestChain_CryptoFallsBackToQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cg/simple/price":
			http.Error(w, "down", http.StatusServiceUnavailable)
		case "/quote":
			fmt.Fprint(w, `{"quoteResponse":{"result":[{"regularMarketPrice":64000}]}}`)
		}
	}))
	defer srv.Close()

	history := &YahooHistory{closes: func(string) ([]float64, error) { return nil, errors.New("blocked") }}
	r := New(WithSources(
		NewCoinGecko(srv.URL+"/cg", srv.Client(), nil),
		history,
		NewQuoteEndpoint(srv.URL+"/quote", srv.Client()),
	))

	q := r.Lookup(context.Background(), "$BTC", "Bitcoin")
	assert.Equal(t, 64000.0, q.Price)
	assert.Equal(t, "yahoo-quote", q.Source)
	require.Len(t, q.Attempts, 3)
	assert.Equal(t, "coingecko", q.Attempts[0].Source)
	assert.Equal(t, Unreachable, q.Attempts[0].Reason)
	assert.Equal(t, Unreachable, q.Attempts[1].Reason)
}

func TestNew_DefaultChain(t *testing.T) {
	r := New()
	var names []string
	for _, s := range r.Sources() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"coingecko", "yahoo-history", "yahoo-quote"}, names)
}
