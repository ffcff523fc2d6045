package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"batchprint/internal/config"
	"batchprint/internal/daemon"
	"batchprint/internal/ledger"
	"batchprint/internal/logging"
	"batchprint/internal/supervisor"
)

func newRunCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the hot folder pipeline in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runService(cmd.Context(), *configFlag)
		},
	}
}

// runService runs the daemon until SIGINT or SIGTERM.
func runService(parent context.Context, configPath string) error {
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, path, exists, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !exists {
		return fmt.Errorf("no configuration found at %s (run `batchprint config init` first)", path)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	journal, err := ledger.Open(cfg.LedgerPath())
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}

	d, err := daemon.New(cfg, journal, supervisor.New(cfg, journal, logger), logger)
	if err != nil {
		_ = journal.Close()
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		return err
	}

	logger.Info("batchprint running", logging.String("config", path))
	<-ctx.Done()
	logger.Info("batchprint shutting down")
	return nil
}
