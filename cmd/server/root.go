package main

import (
	"fmt"

	"github.com/examprep/selection/internal/config"
	"github.com/examprep/selection/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Adaptive content-selection service",
	Long:          "Ranks a learner's weakest knowledge categories and serves practice items for them.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides CONFIG_PATH)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(recomputeCmd)
	rootCmd.AddCommand(tokenCmd)
}

// setup loads configuration and builds the logger shared by every command.
func setup(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level, cfg.Log.Redact)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}
