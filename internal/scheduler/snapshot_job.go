package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/PirotRaffle_Go/internal/logger"
	"github.com/osse101/PirotRaffle_Go/internal/raffle"
)

// SnapshotStore persists serialized raffle state
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, takenAt time.Time, data []byte) error
}

// SnapshotPruner is implemented by stores that can drop old snapshots
type SnapshotPruner interface {
	PruneSnapshots(ctx context.Context, keep int) (int64, error)
}

// SnapshotJob captures the engine state and writes it to the store
type SnapshotJob struct {
	service raffle.Service
	store   SnapshotStore
	keep    int
}

// NewSnapshotJob creates a SnapshotJob. keep <= 0 uses DefaultSnapshotKeep.
func NewSnapshotJob(service raffle.Service, store SnapshotStore, keep int) *SnapshotJob {
	if keep <= 0 {
		keep = DefaultSnapshotKeep
	}
	return &SnapshotJob{service: service, store: store, keep: keep}
}

// Process implements worker.Job
func (j *SnapshotJob) Process(ctx context.Context) error {
	snap := j.service.Snapshot(ctx)
	data, err := raffle.MarshalSnapshot(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextEncodeSnapshot, err)
	}
	if err := j.store.SaveSnapshot(ctx, snap.TakenAt, data); err != nil {
		return fmt.Errorf("%s: %w", ErrContextSaveSnapshot, err)
	}

	log := logger.FromContext(ctx)
	log.Info(LogMsgSnapshotSaved,
		"cycle_id", snap.Cycle.ID,
		"entries", len(snap.Cycle.Entries),
		"history", len(snap.History),
		"bytes", len(data))

	if pruner, ok := j.store.(SnapshotPruner); ok {
		removed, err := pruner.PruneSnapshots(ctx, j.keep)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextPruneSnapshots, err)
		}
		if removed > 0 {
			log.Debug(LogMsgSnapshotPrune, "removed", removed)
		}
	}
	return nil
}
