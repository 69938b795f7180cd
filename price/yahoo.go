package price

import (
	"context"
	"fmt"

	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
)

// YahooHistory is the general market-data source: the latest daily close on Yahoo Finance.
type YahooHistory struct {
	closes func(symbol string) ([]float64, error)
}

// NewYahooHistory returns the Yahoo daily history source.
func NewYahooHistory() *YahooHistory {
	return &YahooHistory{closes: dailyCloses}
}

func (*YahooHistory) Name() string { return "yahoo-history" }

func (y *YahooHistory) Price(ctx context.Context, symbol string) (float64, error) {
	type result struct {
		closes []float64
		err    error
	}
	// the client has no context support, so the call is abandoned at the deadline.
	done := make(chan result, 1)
	go func() {
		closes, err := y.closes(symbol)
		done <- result{closes, err}
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return 0, fmt.Errorf("error retrieving history of %q: %w", symbol, res.err)
		}
		if len(res.closes) == 0 {
			return 0, fmt.Errorf("%w: empty history for %q", ErrNoData, symbol)
		}
		return res.closes[len(res.closes)-1], nil
	}
}

// dailyCloses returns the closes of the last trading day, oldest first.
func dailyCloses(symbol string) ([]float64, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	bars, err := t.History(models.HistoryParams{
		Period:   "1d",
		Interval: "1d",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get historical prices: %w", err)
	}
	closes := make([]float64, 0, len(bars))
	for _, bar := range bars {
		closes = append(closes, bar.Close)
	}
	return closes, nil
}
