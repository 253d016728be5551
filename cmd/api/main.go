package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/server"

	"go.uber.org/zap"
)

func main() {

	ctx := context.Background()

	// Config
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	if cfg.LogFile != "" {
		err = observability.InitLogger(cfg.LogFile)
	} else {
		err = observability.InitLogger()
	}
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	if cfg.ExportLogs {
		logShutdown, err := observability.InitLogging(ctx)
		if err != nil {
			panic(err)
		}
		defer logShutdown(ctx)
	}

	// Tracing
	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		panic(err)
	}
	defer traceShutdown(ctx)

	// Metrics
	metricShutdown, err := initMetrics(ctx)
	if err != nil {
		panic(err)
	}
	defer metricShutdown(ctx)

	// Router
	sessions := calculator.NewSessionStore(cfg.SessionTTL)
	router := server.NewRouter(sessions)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.Addr),
			zap.Duration("session_ttl", cfg.SessionTTL),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	waitForShutdown(srv, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Warn("server shutdown incomplete", zap.Error(err))
	}
	observability.Logger.Info("server stopped")
}
