package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/betboard/renderer"
	"github.com/google/subcommands"
)

type priceCmd struct {
	asset string
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "resolve the USD price of a ticker" }
func (*priceCmd) Usage() string {
	return `bb price [-asset <label>] <ticker>

  Resolves a price through the configured sources and prints every attempt.
  An unresolved price is 0.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "Asset label, defaults to the ticker")
}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one ticker")
		return subcommands.ExitUsageError
	}
	ticker := f.Arg(0)
	asset := c.asset
	if asset == "" {
		asset = ticker
	}

	cfg, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	q := newResolver(cfg, log).Lookup(ctx, ticker, asset)
	source := q.Source
	if source == "" {
		source = q.Reason.String()
	}
	fmt.Fprintf(stdout, "%s %s (%s)\n", q.Symbol, renderer.Money(q.Price), source)
	for _, a := range q.Attempts {
		if msg := a.Error(); msg != "" {
			fmt.Fprintf(stdout, "  %-14s %-12s %s\n", a.Source, a.Reason, msg)
			continue
		}
		fmt.Fprintf(stdout, "  %-14s %s\n", a.Source, a.Reason)
	}
	return subcommands.ExitSuccess
}
