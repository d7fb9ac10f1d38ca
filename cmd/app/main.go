package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"books_api/internal/config"
	"books_api/internal/httpapi"
	"books_api/internal/logging"
	"books_api/internal/network"
	"books_api/internal/service"
	"books_api/internal/telegram"
)

func main() {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Store: built-in catalog or HTML file
	seed, err := loadSeed(cfg.SeedHTML)
	if err != nil {
		logger.Fatal("seed", zap.Error(err))
	}

	store, closeStore, err := openStore(ctx, cfg, seed, logger)
	if err != nil {
		logger.Fatal("store", zap.Error(err))
	}
	defer closeStore()

	// 3. Business logic
	catalog := service.NewCatalog(store, logger)

	// 4. HTTP API
	ln, err := network.Listen(cfg.HTTPAddr, cfg.MaxConnections)
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}

	api := httpapi.New(catalog, logger)
	srv := &http.Server{
		Handler:           api.Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http api listening", zap.String("addr", ln.Addr().String()), zap.Int("max_connections", cfg.MaxConnections))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http api", zap.Error(err))
			stop()
		}
	}()

	// 5. Bot (optional)
	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, catalog, logger)
		if err != nil {
			logger.Error("telegram bot disabled", zap.Error(err))
		} else {
			go bot.Start(ctx)
		}
	}

	<-ctx.Done()
	logger.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", zap.Error(err))
	}
	logger.Info("stopped")
}
