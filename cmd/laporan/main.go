package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"
	_ "time/tzdata"

	"laporan/internal/amqp"
	"laporan/internal/backend"
	"laporan/internal/cache"
	"laporan/internal/cli"
	"laporan/internal/core"
	apphttp "laporan/internal/http"
	"laporan/internal/log"
	"laporan/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(cli.SetupLogger(slog.LevelInfo))
	logger := cli.SetupLogger(cfg.Level())

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger.WithComponent(log.ComponentLedger).Logger).
		CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize ledger backend", "error", err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}

	snapshot := cache.NewSnapshot[[]core.Transaction](1, cfg.CacheTTL)
	cacheManager := cache.NewManager(logger.WithComponent(log.ComponentCache).Logger)
	cacheManager.Register(snapshot)
	cacheManager.StartCleanup(cfg.CacheTTL)

	srv, err := apphttp.NewServer(apphttp.Options{
		Addr:     ":" + cfg.Port,
		Reader:   res.Reader,
		Snapshot: snapshot,
		Ready:    res.Ping,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("Failed to create HTTP server", "error", err)
		os.Exit(1)
	}
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cacheManager.Stop()
		if err := res.Close(); err != nil {
			logger.Error("Backend cleanup error", "error", err)
		}
	})

	reloader, _ := res.Reader.(worker.Reloader)
	refresher := worker.NewRefreshWorker(snapshot, reloader, logger.WithComponent(log.ComponentWorker).Logger)

	if cfg.AMQPURL != "" {
		go func() {
			err := amqp.Listen(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, refresher.HandleLedgerChanged)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Ledger change listener stopped", "error", err)
			}
		}()
		logger.Info("Listening for ledger changes", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		go func() {
			_ = refresher.PeriodicRefresh(ctx, cfg.CacheTTL)
		}()
	}

	logger.Info("Starting laporan server",
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend,
		"timezone", cfg.Timezone)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
