package commands

import (
	"context"
	"time"

	"codeberg.org/mutker/hwcaps/internal/printer"
	"github.com/spf13/cobra"
)

func newJournalCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent hardware writes",
		Args:  cobra.NoArgs,
		RunE: run(func(a *app, _ []string) error {
			if !a.cfg.Journal {
				printer.Warning("journal is disabled; enable it with --journal or journal = true\n")
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			entries, err := a.journal.Entries(ctx, limit)
			if err != nil {
				return err
			}
			for _, e := range entries {
				status := "ok"
				if !e.Success {
					status = "failed"
				}
				printer.Printf("%s  %-24s %-22s %-6s %v\n",
					e.Timestamp.Local().Format(time.RFC3339), e.Feature.Short(), e.Operation, status, e.Value)
			}
			return nil
		}),
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show, 0 for all")

	return cmd
}
