package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
)

// Raffle defines the data access required by the raffle service
type Raffle interface {
	// SaveCycle upserts the cycle header (entries are stored separately)
	SaveCycle(ctx context.Context, cycle *domain.Cycle) error
	InsertEntry(ctx context.Context, entry domain.Entry) error
	ListWinners(ctx context.Context, limit int) ([]domain.WinnerRecord, error)
	// ListEntries returns a cycle's entries in commit order
	ListEntries(ctx context.Context, cycleID uuid.UUID) ([]domain.Entry, error)
	// CycleFinished reports whether the cycle was marked closed or has a winner
	CycleFinished(ctx context.Context, cycleID uuid.UUID) (bool, error)
	// MaxCycleNumber returns the highest stored cycle number, 0 when none
	MaxCycleNumber(ctx context.Context) (int64, error)

	SaveSnapshot(ctx context.Context, takenAt time.Time, data []byte) error
	// LatestSnapshot returns nil, nil when no snapshot has been stored
	LatestSnapshot(ctx context.Context) ([]byte, error)

	// Transaction support
	BeginRaffleTx(ctx context.Context) (RaffleTx, error)
}

// RaffleTx groups the writes that finalize a draw so they commit atomically
type RaffleTx interface {
	Tx

	MarkCycleClosed(ctx context.Context, cycle *domain.Cycle, closedAt time.Time) error
	InsertWinner(ctx context.Context, winner domain.WinnerRecord) error
}
