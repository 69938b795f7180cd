package price

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultCoinGeckoURL is the public CoinGecko API root.
const DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

// DefaultCryptoIDs maps crypto symbols to CoinGecko coin ids.
var DefaultCryptoIDs = map[string]string{
	"BTC": "bitcoin",
	"ETH": "ethereum",
}

// CoinGecko is the spot price source for the crypto symbols of its id table.
type CoinGecko struct {
	base   string
	client *http.Client
	ids    map[string]string
}

// NewCoinGecko returns a CoinGecko source. Empty arguments select the defaults;
// ids is merged over DefaultCryptoIDs, keys are symbols (case-insensitive).
func NewCoinGecko(base string, client *http.Client, ids map[string]string) *CoinGecko {
	if base == "" {
		base = DefaultCoinGeckoURL
	}
	table := make(map[string]string, len(DefaultCryptoIDs)+len(ids))
	for k, v := range DefaultCryptoIDs {
		table[k] = v
	}
	for k, v := range ids {
		table[strings.ToUpper(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return &CoinGecko{base: strings.TrimRight(base, "/"), client: defaultClient(client), ids: table}
}

func (*CoinGecko) Name() string { return "coingecko" }

// ID returns the CoinGecko id of symbol.
func (c *CoinGecko) ID(symbol string) (string, bool) {
	id, ok := c.ids[strings.ToUpper(symbol)]
	return id, ok && id != ""
}

/*
	{
	  "bitcoin": {
	    "usd": 67187.34
	  }
	}
*/
func (c *CoinGecko) Price(ctx context.Context, symbol string) (float64, error) {
	id, ok := c.ID(symbol)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a known crypto symbol", ErrUnsupported, symbol)
	}
	addr := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", c.base, url.QueryEscape(id))

	var jobj any
	if err := jwget(ctx, c.client, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error retrieving %q: %w", id, err)
	}
	return jsonFloat(jobj, fmt.Sprintf("$[%q].usd", id))
}
