package betboard

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// PriceResolver returns the USD unit price of a holding.
//
// Implementations never fail: an unknown price is 0.
type PriceResolver interface {
	Resolve(ctx context.Context, ticker, asset string) float64
}

// Valuer computes the monetary value of every row of a ledger.
type Valuer interface {
	// Valuate returns one finite value per row, in row order.
	Valuate(ctx context.Context, rows []LedgerRow) ([]float64, error)
}

// SimpleValuer values rows with their Amount. It never touches the network.
type SimpleValuer struct{}

func (SimpleValuer) Valuate(_ context.Context, rows []LedgerRow) ([]float64, error) {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = finite(r.Amount)
	}
	return values, nil
}

// LiveValuer values rows as quantity × resolved price.
//
// Each distinct (ticker, asset) pair is resolved once per call, and the price is
// shared by all the rows holding it.
type LiveValuer struct {
	resolver    PriceResolver
	concurrency int
	log         zerolog.Logger
}

// LiveOption configures a LiveValuer.
type LiveOption func(*LiveValuer)

// WithConcurrency sets how many distinct prices are resolved at the same time. Default is 1.
func WithConcurrency(n int) LiveOption {
	return func(v *LiveValuer) {
		if n > 0 {
			v.concurrency = n
		}
	}
}

// WithLogger sets the logger used to trace resolved prices.
func WithLogger(log zerolog.Logger) LiveOption {
	return func(v *LiveValuer) { v.log = log.With().Str("component", "valuer").Logger() }
}

// NewLiveValuer returns a Valuer pricing rows with resolver.
func NewLiveValuer(resolver PriceResolver, opts ...LiveOption) *LiveValuer {
	v := &LiveValuer{resolver: resolver, concurrency: 1, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type priceKey struct{ ticker, asset string }

func (v *LiveValuer) Valuate(ctx context.Context, rows []LedgerRow) ([]float64, error) {
	// distinct keys in first-seen order
	slot := make(map[priceKey]int)
	var keys []priceKey
	for _, r := range rows {
		k := priceKey{r.TickerOrAsset(), r.Asset}
		if _, ok := slot[k]; !ok {
			slot[k] = len(keys)
			keys = append(keys, k)
		}
	}

	prices := make([]float64, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for i, k := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := finite(v.resolver.Resolve(gctx, k.ticker, k.asset))
			if p < 0 {
				p = 0
			}
			prices[i] = p
			v.log.Debug().Str("ticker", k.ticker).Str("asset", k.asset).Float64("price", p).Msg("price")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = mul(r.Quantity, prices[slot[priceKey{r.TickerOrAsset(), r.Asset}]])
	}
	return values, nil
}

// ValuerFor returns the Valuer for mode. The resolver is only used in Live mode.
func ValuerFor(mode Mode, resolver PriceResolver, opts ...LiveOption) Valuer {
	if mode == Simple {
		return SimpleValuer{}
	}
	return NewLiveValuer(resolver, opts...)
}
