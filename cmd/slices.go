package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/betboard"
	"github.com/etnz/betboard/renderer"
	"github.com/google/subcommands"
)

// slicesCmd holds the flags for the 'slices' subcommand.
type slicesCmd struct {
	by        string
	simple    bool
	threshold float64
	policy    string
	markdown  bool
}

func (*slicesCmd) Name() string     { return "slices" }
func (*slicesCmd) Synopsis() string { return "print the pie slices of one dimension" }
func (*slicesCmd) Usage() string {
	return `bb slices [-by asset|category|bucket] [-simple] [-t <threshold>] [-policy respect|new] [-md] <ledger>

  Prints one "label value percent" line per slice, largest first.
`
}

func (c *slicesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.by, "by", "asset", "Dimension: asset, category or bucket")
	f.BoolVar(&c.simple, "simple", false, "Ledger holds current amounts, no price lookup")
	f.Float64Var(&c.threshold, "t", betboard.DefaultThreshold, "Share under which slices are folded into Other")
	f.StringVar(&c.policy, "policy", "respect", "Where small slices go: respect or new")
	f.BoolVar(&c.markdown, "md", false, "Print a markdown table")
}

func (c *slicesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, ok := ledgerArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	dim, err := betboard.ParseDimension(c.by)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	policy, err := betboard.ParsePolicy(c.policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	threshold := cfg.Threshold
	if isSet(f, "t") {
		threshold = c.threshold
	}

	ledger, err := betboard.OpenLedger(path, ledgerMode(f, c.simple, cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	rows := ledger.Rows()
	valuer := betboard.ValuerFor(ledger.Mode(), newResolver(cfg, log),
		betboard.WithConcurrency(cfg.Concurrency),
		betboard.WithLogger(log),
	)
	values, err := valuer.Valuate(ctx, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	slices := betboard.Combine(betboard.Aggregate(rows, values, dim), threshold, policy)
	if c.markdown {
		fmt.Fprint(stdout, renderer.SlicesMarkdown(dim.Title(), slices))
		return subcommands.ExitSuccess
	}
	renderer.SlicesText(stdout, slices)
	return subcommands.ExitSuccess
}
