package main

import (
	"fmt"

	"github.com/examprep/selection/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back schema migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.Up), string(database.Down)},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		dir := database.Up
		if len(args) == 1 {
			dir = database.Direction(args[0])
		}

		version, err := database.Migrate(cfg.Database, dir)
		if err != nil {
			return err
		}
		log.Info("migrations applied", "direction", dir, "version", version)
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
		return nil
	},
}
