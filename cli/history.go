package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sentinelharness/config"
	"sentinelharness/journal"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent verdicts from the run journal",
	Long: `List the most recent recorded verdicts, newest first.

Requires JOURNALPATH to be configured; runs executed without a journal
leave no history.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		if cfg.JournalPath == "" {
			return fmt.Errorf("no journal configured: set JOURNALPATH")
		}

		db, err := journal.Open(cfg.JournalPath)
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := db.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no recorded verdicts")
			return nil
		}

		for _, e := range entries {
			status := "FAIL"
			if e.Pass {
				status = "OK"
			}
			fmt.Printf("%s  %-4s  %-8s  %-40s  %s\n",
				e.CreatedAt.Format("2006-01-02 15:04:05"),
				status,
				e.Stage,
				e.Case,
				e.Duration)
			if e.Diag != "" {
				fmt.Printf("\t%s\n", e.Diag)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum entries to show")
	rootCmd.AddCommand(historyCmd)
}
