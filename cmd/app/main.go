package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/osse101/PirotRaffle_Go/docs"
	"github.com/osse101/PirotRaffle_Go/internal/bootstrap"
	"github.com/osse101/PirotRaffle_Go/internal/config"
	"github.com/osse101/PirotRaffle_Go/internal/handler"
	"github.com/osse101/PirotRaffle_Go/internal/scheduler"
	"github.com/osse101/PirotRaffle_Go/internal/server"
	"github.com/osse101/PirotRaffle_Go/internal/sse"
	"github.com/osse101/PirotRaffle_Go/internal/worker"
)

const shutdownTimeout = 30 * time.Second

// @title Pirot Raffle API
// @version 1.0
// @description Timed PIROT prize raffle: contribute, track odds, follow draws.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.ValidateEnv(); err != nil {
		log.Fatalf("Environment check failed: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}
	defer logFile.Close()

	for _, warning := range config.EnvWarnings() {
		slog.Warn("Configuration warning", "warning", warning)
	}

	if err := run(cfg); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		return err
	}

	balances, err := bootstrap.InitializeLedger(cfg)
	if err != nil {
		return err
	}

	catalog, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	hub := sse.NewHub()
	settlementWorker := worker.NewSettlementWorker(pool, balances, publisher, worker.SettlementConfig{
		Timeout: cfg.RaffleSettlementTimeout,
	})

	raffleService, err := bootstrap.InitializeRaffle(ctx, cfg, bootstrap.RaffleDependencies{
		Storage:  storage,
		Catalog:  catalog,
		Balances: balances,
		Bus:      publisher,
	})
	if err != nil {
		return err
	}
	// Start schedules the cycle that is open now; later cycles are picked up
	// from rollover events
	raffleWorker := worker.NewRaffleWorker(raffleService)

	handlers, err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:         eventBus,
		Pool:             pool,
		Hub:              hub,
		RaffleWorker:     raffleWorker,
		SettlementWorker: settlementWorker,
		Config:           cfg,
	})
	if err != nil {
		return err
	}

	pool.Start()
	hub.Start()
	raffleWorker.Start()

	readiness := map[string]handler.Pinger{}
	var snapshotStore scheduler.SnapshotStore
	cron := scheduler.New(pool)
	if storage.Raffle != nil {
		readiness["database"] = storage.Raffle
		snapshotStore = storage.Raffle
		if err := cron.Schedule(cfg.RaffleSnapshotCron, bootstrap.JobNameSnapshot,
			scheduler.NewSnapshotJob(raffleService, storage.Raffle, 0)); err != nil {
			return err
		}
	}
	cron.Start()

	srv := server.NewServer(server.Options{
		Port:               cfg.Port,
		APIKey:             cfg.APIKey,
		TrustedProxies:     cfg.TrustedProxies,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	}, raffleService, hub, readiness)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case runErr = <-serverErr:
		slog.Error("Server failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          cron,
		RaffleWorker:       raffleWorker,
		RaffleService:      raffleService,
		SnapshotStore:      snapshotStore,
		Pool:               pool,
		ResilientPublisher: publisher,
		RedisClient:        handlers.RedisClient,
		Storage:            storage,
	})

	return runErr
}
