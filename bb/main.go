// Command bb renders the asset, category and bucket distributions of a portfolio ledger.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/betboard/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion().Complete("bb")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command line for shell completion (COMP_LINE).
func completion() *complete.Command {
	ledgers := predict.Or(predict.Files("*.csv"), predict.Files("*.xlsx"))
	policy := predict.Set{"respect", "new"}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"v":      predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"report": {
				Flags: map[string]complete.Predictor{
					"simple":   predict.Nothing,
					"detailed": predict.Nothing,
					"t":        predict.Something,
					"policy":   policy,
					"format":   predict.Set{"md", "text", "html", "json"},
					"o":        predict.Files("*"),
				},
				Args: ledgers,
			},
			"slices": {
				Flags: map[string]complete.Predictor{
					"by":     predict.Set{"asset", "category", "bucket"},
					"simple": predict.Nothing,
					"t":      predict.Something,
					"policy": policy,
					"md":     predict.Nothing,
				},
				Args: ledgers,
			},
			"serve": {
				Flags: map[string]complete.Predictor{
					"listen": predict.Something,
					"simple": predict.Nothing,
				},
				Args: ledgers,
			},
			"price": {
				Flags: map[string]complete.Predictor{"asset": predict.Something},
				Args:  predict.Something,
			},
			"help": {Args: predict.Set{"report", "slices", "serve", "price"}},
		},
	}
}
