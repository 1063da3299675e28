package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/numerik/foundation/core/log"
	"github.com/msto63/numerik/foundation/utils/stringx"
	"github.com/msto63/numerik/foundation/utils/timex"
	"github.com/msto63/numerik/internal/journal"
)

func newJournalCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "journal",
		Aliases: []string{"runs"},
		Short:   "Inspect journaled accumulator runs",
		Long: `Lists, shows, deletes and prunes the accumulator runs saved by
"numerik acc", the REPL and the HTTP API.

Examples:
  numerik journal list --since 24h
  numerik journal show 6f1c...
  numerik journal prune --older-than 720h`,
	}
	cmd.AddCommand(
		newJournalListCmd(opts),
		newJournalShowCmd(opts),
		newJournalDeleteCmd(opts),
		newJournalPruneCmd(opts),
	)
	return cmd
}

// openJournal opens the app and fails when the journal is disabled
func (o *rootOptions) openJournal() (*app, error) {
	a, err := o.open(openOptions{withJournal: true})
	if err != nil {
		return nil, err
	}
	if err := a.requireJournal(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func newJournalListCmd(opts *rootOptions) *cobra.Command {
	var (
		list  journal.ListOptions
		since string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if list.Since, err = timex.ParseSince(since, time.Now()); err != nil {
				return err
			}

			a, err := opts.openJournal()
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.store.List(cmd.Context(), list)
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), opts.output, entries, renderEntries(entries, time.Now()))
		},
	}
	cmd.Flags().StringVar(&list.Source, "source", "", "only runs from cli, http, repl or api")
	cmd.Flags().StringVar(&since, "since", "", "only runs after this time or within this duration (24h, 7d)")
	cmd.Flags().IntVar(&list.Limit, "limit", 20, "maximum number of runs (0 for all)")
	cmd.Flags().IntVar(&list.Offset, "offset", 0, "skip this many runs")
	return cmd
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))

// valueWidth caps the value column of the run table
const valueWidth = 32

func renderEntries(entries []*journal.Entry, now time.Time) string {
	if len(entries) == 0 {
		return "no runs"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "WHEN", "SOURCE", "STEPS", "VALUE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, e := range entries {
		steps := strings.Count(e.Program, "\n")
		t.Row(shortID(e.ID), humanize.RelTime(e.CreatedAt, now, "ago", "from now"), e.Source, humanize.Comma(int64(steps)), stringx.Truncate(e.Value, valueWidth))
	}
	return t.String() + "\n" + fmt.Sprintf("%s run(s)", humanize.Comma(int64(len(entries))))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func newJournalShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a run with its program and audit log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openJournal()
			if err != nil {
				return err
			}
			defer a.Close()

			entry, err := a.store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), opts.output, entry, renderEntry(entry))
		},
	}
}

func renderEntry(e *journal.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "id:       %s\n", e.ID)
	fmt.Fprintf(&b, "created:  %s (%s)\n", e.CreatedAt.Local().Format(time.DateTime), humanize.Time(e.CreatedAt))
	fmt.Fprintf(&b, "source:   %s\n", e.Source)
	if e.RequestID != "" {
		fmt.Fprintf(&b, "request:  %s\n", e.RequestID)
	}
	fmt.Fprintf(&b, "scale:    %d (%s)\n", e.Scale, e.RoundingMode)
	fmt.Fprintf(&b, "value:    %s\n", e.Value)
	b.WriteString("\nprogram:\n")
	for _, line := range strings.Split(strings.TrimSuffix(e.Program, "\n"), "\n") {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	b.WriteString("\nlog:\n")
	for _, line := range e.Log {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func newJournalDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a run",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openJournal()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), opts.output, map[string]string{"deleted": args[0]}, "deleted "+args[0])
		},
	}
}

func newJournalPruneCmd(opts *rootOptions) *cobra.Command {
	var olderThan string

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete runs older than a duration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			age, err := timex.ParseDuration(olderThan)
			if err != nil {
				return fmt.Errorf("--older-than: %w", err)
			}
			if age <= 0 {
				return fmt.Errorf("--older-than must be positive, got %s", olderThan)
			}

			a, err := opts.openJournal()
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.store.Prune(cmd.Context(), age)
			if err != nil {
				return err
			}
			a.logger.Info("journal pruned", mdwlog.Int64("runs", n), mdwlog.Duration("older_than", age))
			return printValue(cmd.OutOrStdout(), opts.output, map[string]int64{"pruned": n},
				fmt.Sprintf("pruned %s run(s)", humanize.Comma(n)))
		},
	}
	cmd.Flags().StringVar(&olderThan, "older-than", "30d", "age of the runs to delete (720h, 30d, 4w)")
	return cmd
}
