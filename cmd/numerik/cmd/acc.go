package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/numerik/internal/calc"
)

func newAccCmd(opts *rootOptions) *cobra.Command {
	var (
		showLog   bool
		noJournal bool
	)

	cmd := &cobra.Command{
		Use:   "acc [instruction]...",
		Short: "Run an accumulator program",
		Long: `Runs accumulator instructions, one per argument, or the program read
from stdin when no argument is given. Instructions are separated by
newlines or ';', '#' starts a comment.

  add a b ...     sub ...     mul ...     depercent ...
  div x [scale [mode]]        divpct x [scale [mode]]
  rdiv x [...]    rdivpct x [...]         mod x    rmod x
  neg             abs         clear       scale s [mode]

The run is saved to the journal unless --no-journal is given.

Examples:
  numerik acc "add 10 x 5" "div 4" neg     # -3.75
  echo "add 100; mul 1.19" | numerik acc --log`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, "\n")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(data)
			}

			program, err := calc.ParseProgram(text)
			if err != nil {
				return err
			}
			program.Origin = "cli"

			a, err := opts.open(openOptions{withJournal: !noJournal})
			if err != nil {
				return err
			}
			defer a.Close()

			run := a.svc.Run
			if noJournal {
				run = a.svc.Preview
			}
			result, err := run(cmd.Context(), program)
			if err != nil {
				return err
			}

			var b strings.Builder
			if showLog {
				for _, line := range result.Log {
					fmt.Fprintf(&b, "  %s\n", line)
				}
			}
			b.WriteString(result.Value)
			if result.ID != "" && opts.verbose {
				fmt.Fprintf(&b, "\njournal: %s", result.ID)
			}
			return printValue(cmd.OutOrStdout(), opts.output, result, b.String())
		},
	}
	cmd.Flags().BoolVar(&showLog, "log", false, "print the audit log before the value")
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, "do not save the run")
	return cmd
}
