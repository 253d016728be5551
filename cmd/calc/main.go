package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/terminal"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "calc:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Logs would corrupt the raw terminal, so they go to a file or nowhere.
	if cfg.LogFile != "" {
		if err := observability.InitLogger(cfg.LogFile); err != nil {
			return err
		}
		defer observability.SyncLogger()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	release, err := terminal.Acquire(os.Stdin)
	if err != nil {
		return err
	}
	defer func() {
		if err := release(); err != nil {
			observability.Logger.Warn("terminal not restored", zap.Error(err))
		}
	}()

	observability.Logger.Info("keypad started")
	return terminal.Run(ctx, os.Stdin, os.Stdout, observability.Logger)
}
