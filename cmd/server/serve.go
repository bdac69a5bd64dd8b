package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/examprep/selection/internal/auth"
	"github.com/examprep/selection/internal/database"
	"github.com/examprep/selection/internal/selection"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the selection HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Bool("migrate", true, "Apply pending schema migrations before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
		version, err := database.Migrate(cfg.Database, database.Up)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("schema up to date", "version", version)
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	handler := selection.NewHandler(a.service, log.With("component", "http"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newRouter(handler, tokens, cfg.Server.AllowedOrigins, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
