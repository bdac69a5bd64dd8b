package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Recompute a learner's knowledge profiles from their responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt64("user")
		if userID <= 0 {
			return errors.New("--user must be a positive user ID")
		}

		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		a, err := newApp(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.updater.Recompute(cmd.Context(), userID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated %d profiles for user %d\n", n, userID)
		return nil
	},
}

func init() {
	recomputeCmd.Flags().Int64("user", 0, "User ID to recompute")
}
