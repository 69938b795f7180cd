package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/betboard/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	listen string
	simple bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the dashboard of a ledger over HTTP" }
func (*serveCmd) Usage() string {
	return `bb serve [-listen <addr>] [-simple] <ledger>

  Serves GET /api/v1/report, GET /api/v1/price/{ticker} and GET /healthz.
  The ledger is read again on every report request.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.listen, "listen", "", "Address to listen on, defaults to the configured one (:8080)")
	f.BoolVar(&c.simple, "simple", false, "Ledger holds current amounts, no price lookup")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, ok := ledgerArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	cfg, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	addr := cfg.Listen
	if c.listen != "" {
		addr = c.listen
	}

	srv := server.New(server.Config{
		Addr:        addr,
		Ledger:      path,
		Mode:        ledgerMode(f, c.simple, cfg),
		Options:     cfg.ReportOptions(),
		Prices:      newResolver(cfg, log),
		Concurrency: cfg.Concurrency,
		Log:         log,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err = <-errc:
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err = srv.Shutdown(shutdown)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
