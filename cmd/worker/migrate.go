package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mentormap/mentormap-backend/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the tags, profiles, questions and responses tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := db.Open(ctx, &cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := pool.Migrate(ctx); err != nil {
			return err
		}

		logger.Info("schema up to date", zap.Int("statements", len(db.Schema)))
		return nil
	},
}
