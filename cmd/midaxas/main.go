package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"midaxas/internal/cli"
	"midaxas/internal/gate"
	apphttp "midaxas/internal/http"
	applog "midaxas/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	records, settings, err := cli.OpenStores(cfg, logger)
	if err != nil {
		logger.Error("Failed to open data files", "error", err, "data_dir", cfg.DataDir)
		os.Exit(1)
	}

	srv := apphttp.NewServer(
		"127.0.0.1:"+cfg.Port,
		records,
		settings,
		gate.New(cfg.PINAttempts),
		cfg,
		applog.New(applog.Config{Component: applog.ComponentApp, Handler: logger.Handler()}),
	)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting midaxas server",
			"addr", srv.Addr,
			"transactions_file", cfg.TransactionsPath(),
			"settings_file", cfg.SettingsPath(),
			"pin_required", settings.HasPIN())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
