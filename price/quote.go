package price

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultQuoteURL is the Yahoo Finance quote endpoint.
const DefaultQuoteURL = "https://query1.finance.yahoo.com/v7/finance/quote"

// QuoteEndpoint is the last-resort source: a plain HTTP market quote endpoint.
type QuoteEndpoint struct {
	base   string
	client *http.Client
}

// NewQuoteEndpoint returns the quote source. Empty arguments select the defaults.
func NewQuoteEndpoint(base string, client *http.Client) *QuoteEndpoint {
	if base == "" {
		base = DefaultQuoteURL
	}
	return &QuoteEndpoint{base: strings.TrimRight(base, "/"), client: defaultClient(client)}
}

func (*QuoteEndpoint) Name() string { return "yahoo-quote" }

/*
	{
	  "quoteResponse": {
	    "result": [
	      {"symbol": "AAPL", "regularMarketPrice": 189.3}
	    ],
	    "error": null
	  }
	}
*/
func (q *QuoteEndpoint) Price(ctx context.Context, symbol string) (float64, error) {
	addr := q.base + "?symbols=" + url.QueryEscape(symbol)

	var jobj any
	if err := jwget(ctx, q.client, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}
	return jsonFloat(jobj, "$.quoteResponse.result[0].regularMarketPrice")
}
