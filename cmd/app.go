// Package cmd implements the bb command line.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/betboard"
	"github.com/etnz/betboard/config"
	"github.com/etnz/betboard/logger"
	"github.com/etnz/betboard/price"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "dashboard")
	c.Register(&slicesCmd{}, "dashboard")
	c.Register(&serveCmd{}, "dashboard")
	c.Register(&priceCmd{}, "prices")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a YAML configuration file")
var verbose = flag.Bool("v", false, "Log price lookups and requests to stderr")

// stdout receives the reports, logs go to stderr.
var stdout io.Writer = os.Stdout

// setup loads and validates the configuration and builds the logger.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), err
	}
	level := cfg.LogLevel
	if *verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Level: level, Pretty: true})
	logger.SetGlobalLogger(log)
	return cfg, log, nil
}

// newResolver returns the price chain configured by cfg.
func newResolver(cfg *config.Config, log zerolog.Logger) *price.Resolver {
	return price.New(
		price.WithSources(cfg.Sources()...),
		price.WithTimeout(cfg.Timeout),
		price.WithLogger(log),
	)
}

// ledgerArg returns the single ledger path of the command line.
func ledgerArg(f *flag.FlagSet) (string, bool) {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one ledger file")
		return "", false
	}
	return f.Arg(0), true
}

// isSet reports whether the flag name was given on the command line.
func isSet(f *flag.FlagSet, name string) bool {
	set := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// ledgerMode returns the mode requested by the -simple flag, or the configured one.
func ledgerMode(f *flag.FlagSet, simple bool, cfg *config.Config) betboard.Mode {
	if isSet(f, "simple") {
		if simple {
			return betboard.Simple
		}
		return betboard.Live
	}
	return cfg.LedgerMode()
}
