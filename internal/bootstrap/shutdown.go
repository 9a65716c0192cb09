package bootstrap

import (
	"context"
	"log/slog"

	"github.com/go-redis/redis/v8"

	"github.com/osse101/PirotRaffle_Go/internal/event"
	"github.com/osse101/PirotRaffle_Go/internal/raffle"
	"github.com/osse101/PirotRaffle_Go/internal/scheduler"
	"github.com/osse101/PirotRaffle_Go/internal/server"
	"github.com/osse101/PirotRaffle_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	RaffleWorker       *worker.RaffleWorker
	RaffleService      raffle.Service
	SnapshotStore      scheduler.SnapshotStore
	Pool               *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	RedisClient        *redis.Client
	Storage            *Storage
}

// GracefulShutdown stops the application in dependency order:
//  1. HTTP server and SSE streams (no new contributions)
//  2. cron and draw timers (no new draws)
//  3. raffle engine (drain in-flight entries and draws), then a final snapshot
//  4. worker pool (finish queued settlements and notifications)
//  5. event publisher, then external clients
//
// Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.RaffleWorker != nil {
		shutdownComponent(ctx, ComponentNameRaffleWorker, c.RaffleWorker)
	}

	if c.RaffleService != nil {
		shutdownComponent(ctx, ComponentNameRaffle, c.RaffleService)
		if c.SnapshotStore != nil {
			saveFinalSnapshot(ctx, c.RaffleService, c.SnapshotStore)
		}
	}

	if c.Pool != nil {
		c.Pool.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			slog.Error(LogMsgRedisCloseFailed, "error", err)
		}
	}
	c.Storage.Close()

	slog.Info(LogMsgServerStopped)
}

func saveFinalSnapshot(ctx context.Context, svc raffle.Service, store scheduler.SnapshotStore) {
	snap := svc.Snapshot(ctx)
	data, err := raffle.MarshalSnapshot(snap)
	if err == nil {
		err = store.SaveSnapshot(ctx, snap.TakenAt, data)
	}
	if err != nil {
		slog.Error(LogMsgFinalSnapshotFailed, "error", err)
		return
	}
	slog.Info(LogMsgFinalSnapshotSaved, "bytes", len(data))
}

type shutdownable interface {
	Shutdown(context.Context) error
}

func shutdownComponent(ctx context.Context, name string, s shutdownable) {
	if err := s.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgComponentShutdownFailed, "error", err)
	}
}
