package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sentinelharness/config"
	"sentinelharness/engine"
	"sentinelharness/harness"
	"sentinelharness/journal"
	"sentinelharness/logger"
	"sentinelharness/model"
	"sentinelharness/notify"
)

var (
	suitePath   string
	skipPrelude bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the differential test suite",
	Long: `Run every test case in order, aborting on the first failure.

Exit status is 0 when the whole suite passes and 1 on any failure:
prelude build failure, packaging failure, an execution failure of
either engine, or an output mismatch.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		if suitePath != "" {
			cfg.SuitePath = suitePath
		}
		if skipPrelude {
			cfg.PreludeCmd = ""
		}

		log, err := logger.New(cfg.Environment)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer log.Sync()

		client, err := engine.NewDockerClient()
		if err != nil {
			return err
		}
		ctx := context.Background()
		if err := client.Ping(ctx); err != nil {
			return err
		}

		suite := &harness.Suite{
			Client: client,
			Config: cfg,
			Log:    log,
		}

		if cfg.JournalPath != "" {
			db, err := journal.Open(cfg.JournalPath)
			if err != nil {
				return err
			}
			defer db.Close()
			suite.Journal = db
		}

		if cfg.NatsURL != "" {
			pub, err := notify.Connect(cfg.NatsURL)
			if err != nil {
				return err
			}
			defer pub.Close()
			suite.Notify = pub
		}

		var cases []model.TestCase
		if cfg.SuitePath != "" {
			cases, err = harness.LoadSuite(cfg.SuitePath)
			if err != nil {
				return err
			}
		} else {
			cases = harness.DefaultSuite()
		}

		if err := suite.Run(ctx, cases); err != nil {
			return err
		}
		log.Info("suite passed", zap.Int("cases", len(cases)))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&suitePath, "suite", "", "YAML suite file (default: built-in suite)")
	runCmd.Flags().BoolVar(&skipPrelude, "skip-prelude", false, "skip the candidate runtime build step")
	rootCmd.AddCommand(runCmd)
}
