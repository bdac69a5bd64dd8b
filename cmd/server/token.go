package main

import (
	"errors"
	"fmt"

	"github.com/examprep/selection/internal/auth"
	"github.com/spf13/cobra"
)

// tokenCmd mints a bearer token for local testing against the API.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a signed bearer token for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt64("user")
		if userID <= 0 {
			return errors.New("--user must be a positive user ID")
		}

		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}

		signed, err := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL).Generate(userID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), signed)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Int64("user", 0, "User ID to embed in the token")
}
