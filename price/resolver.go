// Package price resolves the USD unit price of a holding.
//
// A Resolver asks an ordered chain of sources and returns the first usable
// price. It never fails: when every source fails the price is 0, and the
// reasons are kept in the Quote for logging.
package price

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds every source call.
const DefaultTimeout = 5 * time.Second

// Source is an external price service.
type Source interface {
	Name() string
	// Price returns the latest USD price of symbol. Failures wrap ErrUnsupported,
	// ErrMalformed or ErrNoData when they are not transport errors.
	Price(ctx context.Context, symbol string) (float64, error)
}

// Resolver resolves prices through a chain of sources, first success wins.
type Resolver struct {
	sources []Source
	timeout time.Duration
	log     zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSources replaces the default chain.
func WithSources(sources ...Source) Option {
	return func(r *Resolver) { r.sources = sources }
}

// WithTimeout sets the per-source timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger failures are reported to, at debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Resolver) { r.log = log.With().Str("component", "price").Logger() }
}

// New returns a Resolver. Without WithSources the chain is CoinGecko for known
// crypto symbols, then Yahoo daily history, then the Yahoo quote endpoint.
func New(opts ...Option) *Resolver {
	r := &Resolver{timeout: DefaultTimeout, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.sources == nil {
		r.sources = []Source{
			NewCoinGecko("", nil, nil),
			NewYahooHistory(),
			NewQuoteEndpoint("", nil),
		}
	}
	return r
}

// Sources returns the chain, in order.
func (r *Resolver) Sources() []Source { return r.sources }

// Resolve returns the USD price of the holding, 0 when unknown.
func (r *Resolver) Resolve(ctx context.Context, ticker, asset string) float64 {
	return r.Lookup(ctx, ticker, asset).Price
}

// Lookup resolves the price and reports how it was obtained.
func (r *Resolver) Lookup(ctx context.Context, ticker, asset string) Quote {
	q := Quote{Ticker: ticker, Asset: asset, Symbol: Normalize(ticker)}

	if strings.EqualFold(strings.TrimSpace(asset), "CASH") {
		q.Price, q.Reason = 1, Cash
		return q
	}
	if isPlaceholder(asset) || isPlaceholder(q.Symbol) {
		q.Reason = Placeholder
		return q
	}
	if q.Symbol == "" {
		q.Reason = NoData
		return q
	}

	q.Reason = NoData
	for _, src := range r.sources {
		o := r.ask(ctx, src, q.Symbol)
		q.Attempts = append(q.Attempts, o)
		if o.OK() {
			q.Price, q.Source, q.Reason = o.Price, o.Source, o.Reason
			return q
		}
		if o.Reason != Unsupported {
			r.log.Debug().Err(o.Err).Str("source", o.Source).Str("symbol", q.Symbol).Stringer("reason", o.Reason).Msg("price lookup failed")
			q.Reason = o.Reason
		}
	}
	r.log.Info().Str("ticker", ticker).Str("asset", asset).Stringer("reason", q.Reason).Msg("no price found, using 0")
	return q
}

// ask calls one source within the timeout and turns its answer into an Outcome.
func (r *Resolver) ask(ctx context.Context, src Source, symbol string) (o Outcome) {
	o.Source = src.Name()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	defer func() {
		// a misbehaving source must not break the valuation
		if p := recover(); p != nil {
			o.Price, o.Reason, o.Err = 0, Malformed, fmt.Errorf("%s panicked: %v", o.Source, p)
		}
	}()

	p, err := src.Price(ctx, symbol)
	if err != nil {
		o.Reason, o.Err = classify(err), err
		return o
	}
	if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
		o.Reason, o.Err = NoData, fmt.Errorf("%w: %v", ErrNoData, p)
		return o
	}
	o.Price, o.Reason = p, Resolved
	return o
}

// Normalize strips a leading "$" and surrounding spaces from a ticker.
func Normalize(ticker string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(ticker), "$"))
}

func isPlaceholder(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), "other")
}

// Func adapts a plain function to the resolver interface used for valuation.
type Func func(ticker, asset string) float64

func (f Func) Resolve(_ context.Context, ticker, asset string) float64 { return f(ticker, asset) }
