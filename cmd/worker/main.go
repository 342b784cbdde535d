package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mentormap/mentormap-backend/config"
	"github.com/mentormap/mentormap-backend/internal/logging"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "worker",
	Short: "MentorMap maintenance tasks",
	Long: `Operational commands run next to the API server.

  worker migrate                 create or update the database schema
  worker seed-tags tags.yaml     load the tag catalog from a YAML file`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Read()
		if cfg.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}

		var err error
		logger, err = logging.New(cfg.App.Environment, cfg.App.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedTagsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
