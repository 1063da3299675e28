// Package cmd implements the numerik command line.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// rootOptions are the global flags shared by every subcommand
type rootOptions struct {
	cfgFile  string
	logLevel string
	verbose  bool
	output   string
}

// NewRootCmd builds the numerik command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "numerik",
		Short: "numerik - canonical decimal calculator",
		Long: `numerik evaluates decimal arithmetic with explicit null handling,
fixed-scale rounding and an auditable accumulator.

Commands:
  eval      - evaluate an arithmetic expression
  reduce    - sum, product, depercent or blend a list of operands
  quotient  - divide or take the remainder at a given scale
  format    - render a value (plain, dress, percent, pattern)
  acc       - run an accumulator program and journal it
  codec     - encode and decode combinatorial identifiers
  journal   - list, show and prune journaled runs
  serve     - start the HTTP API
  repl      - interactive calculator`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: ~/.numerik/config.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides log.level)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format: text, json or yaml")

	rootCmd.AddCommand(
		newEvalCmd(opts),
		newReduceCmd(opts),
		newQuotientCmd(opts),
		newFormatCmd(opts),
		newAccCmd(opts),
		newCodecCmd(opts),
		newJournalCmd(opts),
		newServeCmd(opts),
		newReplCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line and reports a failure on stderr
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}
