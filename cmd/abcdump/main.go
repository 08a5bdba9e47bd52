// Command abcdump prints the object and property tree of an Alembic archive.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-alembic/alembic"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var opts dumpOptions
	var verbose bool

	flagSet := pflag.NewFlagSet("abcdump", pflag.ContinueOnError)
	flagSet.BoolVarP(&opts.properties, "properties", "p", false, "list the properties of every object")
	flagSet.BoolVarP(&opts.schemas, "schemas", "s", false, "summarize transform and mesh schemas")
	flagSet.IntVar(&opts.maxDepth, "max-depth", 20, "do not descend below this many levels")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log archive decoding to stderr")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	args := flagSet.Args()
	if len(args) != 1 {
		printHelp(flagSet)
		return fmt.Errorf("expected one archive path, got %d arguments", len(args))
	}

	logger := zap.NewNop()
	if verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
	}

	a, err := alembic.Open(args[0], alembic.WithLogger(logger))
	if err != nil {
		return err
	}
	defer a.Close()

	return dump(os.Stdout, a, opts)
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `abcdump prints the contents of an Alembic (Ogawa) archive.

Usage:
  abcdump [flags] <file.abc>

Flags:
%s`, flagSet.FlagUsages())
}
