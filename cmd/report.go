package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/betboard"
	"github.com/etnz/betboard/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	simple    bool
	detailed  bool
	threshold float64
	policy    string
	format    string
	output    string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the asset, category and bucket distributions of a ledger" }
func (*reportCmd) Usage() string {
	return `bb report [-simple] [-detailed] [-t <threshold>] [-policy respect|new] [-format md|text|html|json] [-o <file|dir>] <ledger>

  Values every holding of the ledger (live prices, or the Amount column with
  -simple), aggregates the values by asset, category and bucket, and folds the
  slices under the threshold into "Other".

  With -format html and a directory for -o, the page is written to
  <dir>/Portfolio-YYYY-MM-DD.html.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.simple, "simple", false, "Ledger holds current amounts (Asset,Category,Amount[,Bucket]), no price lookup")
	f.BoolVar(&c.detailed, "detailed", false, "Do not fold small assets into Other on the asset chart")
	f.Float64Var(&c.threshold, "t", betboard.DefaultThreshold, "Share under which slices are folded into Other")
	f.StringVar(&c.policy, "policy", "respect", "Where small slices go: respect an existing other-like slice, or a new Other")
	f.StringVar(&c.format, "format", "md", "Output format: md, text, html or json")
	f.StringVar(&c.output, "o", "", "Output file or directory, stdout by default")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, ok := ledgerArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	switch c.format {
	case "md", "text", "html", "json":
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}

	cfg, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	opts := cfg.ReportOptions()
	if isSet(f, "t") {
		opts.Threshold = c.threshold
	}
	if isSet(f, "detailed") {
		opts.Detailed = c.detailed
	}
	if opts.Policy, err = betboard.ParsePolicy(c.policy); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if opts.Threshold < 0 || opts.Threshold >= 1 {
		fmt.Fprintf(os.Stderr, "Error: threshold must be in [0, 1), got %v\n", opts.Threshold)
		return subcommands.ExitUsageError
	}

	ledger, err := betboard.OpenLedger(path, ledgerMode(f, c.simple, cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	valuer := betboard.ValuerFor(ledger.Mode(), newResolver(cfg, log),
		betboard.WithConcurrency(cfg.Concurrency),
		betboard.WithLogger(log),
	)
	report, err := betboard.NewReport(ctx, ledger, valuer, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var b bytes.Buffer
	switch c.format {
	case "md":
		if c.output == "" {
			printMarkdown(renderer.ReportMarkdown(report))
			return subcommands.ExitSuccess
		}
		b.WriteString(renderer.ReportMarkdown(report))
	case "text":
		renderer.PlainText(&b, report)
	case "json":
		err = renderer.PieJSON(&b, report)
	case "html":
		var page []byte
		page, err = renderer.ReportHTML(report)
		b.Write(page)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering the report: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.output == "" {
		stdout.Write(b.Bytes())
		return subcommands.ExitSuccess
	}
	dst, err := outputPath(c.output, c.format, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(dst, b.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report %q: %v\n", dst, err)
		return subcommands.ExitFailure
	}
	log.Info().Str("file", dst).Msg("report written")
	return subcommands.ExitSuccess
}

// outputPath resolves -o: a directory gets a date-stamped Portfolio file inside it.
func outputPath(output, format string, now time.Time) (string, error) {
	info, err := os.Stat(output)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return output, nil
	case err != nil:
		return "", err
	case !info.IsDir():
		return output, nil
	}
	ext := map[string]string{"md": ".md", "text": ".txt", "html": ".html", "json": ".json"}[format]
	return filepath.Join(output, fmt.Sprintf("Portfolio-%s%s", now.Format("2006-01-02"), ext)), nil
}
