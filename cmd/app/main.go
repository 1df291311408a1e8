package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lunareth/FarfinderBot_Go/internal/announce"
	"github.com/lunareth/FarfinderBot_Go/internal/config"
	"github.com/lunareth/FarfinderBot_Go/internal/database"
	"github.com/lunareth/FarfinderBot_Go/internal/ledger"
	"github.com/lunareth/FarfinderBot_Go/internal/registry"
	"github.com/lunareth/FarfinderBot_Go/internal/server"
	"github.com/lunareth/FarfinderBot_Go/internal/shop"
	"github.com/lunareth/FarfinderBot_Go/internal/store"
	"github.com/lunareth/FarfinderBot_Go/internal/store/postgres"
	"github.com/lunareth/FarfinderBot_Go/internal/transfer"
)

const (
	profileCacheSize = 1024
	profileCacheTTL  = 5 * time.Minute
	shutdownTimeout  = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)

	connString := cfg.GetDBConnString()
	if err := database.Migrate(connString); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := database.NewPool(ctx, connString)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	defaults := store.Defaults{
		Pool:    cfg.PoolDefaults,
		Catalog: cfg.ShopCatalog,
	}
	st := store.NewCached(postgres.New(dbPool, defaults), profileCacheSize, profileCacheTTL)

	var announcer announce.Announcer = announce.Nop{}
	if cfg.AnnounceURL != "" {
		announcer = announce.NewWebhook(cfg.AnnounceURL)
	}

	charAllow := ledger.NewAllowlist(cfg.CharacterResources...)
	poolAllow := ledger.NewAllowlist(cfg.PoolResources...)

	registryService := registry.NewService(st, announcer, charAllow)
	transferService := transfer.NewService(st, charAllow, poolAllow)
	shopService := shop.NewService(st, charAllow)

	srv := server.NewServer(cfg.Port, cfg.APIKey, dbPool, registryService, transferService, shopService)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
