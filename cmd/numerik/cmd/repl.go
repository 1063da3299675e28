package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/numerik/internal/tui/calculator"
)

func newReplCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "repl",
		Aliases: []string{"tui", "calc"},
		Short:   "Start the interactive calculator",
		Long: `Starts the interactive calculator.

Type an expression and press enter. Commands:
  :acc     start an accumulator program, one instruction per line
  :end     run and journal the program
  :log     toggle audit log lines
  :clear   clear the scrollback
  :q       quit

Keys:
  Up/Down     input history
  PgUp/PgDn   scroll
  Ctrl+C      quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stderr belongs to the terminal UI; log.file still receives entries
			a, err := opts.open(openOptions{withJournal: true, logOutput: io.Discard})
			if err != nil {
				return err
			}
			defer a.Close()

			return calculator.Run(a.svc)
		},
	}
}
