package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/exit-readiness/internal/config"
)

// cfg is populated before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "exit-readiness",
	Short: "Score how ready a small business is to be sold",
	Long: "Turns an owner's questionnaire answers into five category scores and a weighted readiness level, " +
		"then ranks focus areas, pulls owner insights, and profiles answer sentiment. " +
		"Assessments can be scored one at a time, batch-scored from CSV, and kept in Postgres or SQLite.",
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = zap.L().Sync()
	},
}

// loadRuntime reads configuration and installs the global logger shared by
// every subcommand.
func loadRuntime(cmd *cobra.Command, _ []string) error {
	c, err := config.Load()
	if err != nil {
		return eris.Wrap(err, "load config")
	}
	if err := config.InitLogger(c.Log); err != nil {
		return eris.Wrap(err, "init logger")
	}
	cfg = c

	zap.L().Debug("exit-readiness: runtime ready",
		zap.String("command", cmd.Name()),
		zap.String("store_driver", cfg.Store.Driver),
	)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
