package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/repository"
)

const upsertCycleSQL = `
INSERT INTO raffle_cycles (cycle_id, cycle_number, state, prize_id, prize_name, prize_value, token_kind, pool_total, opened_at, deadline, closed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (cycle_id) DO UPDATE SET
    state = EXCLUDED.state,
    pool_total = EXCLUDED.pool_total,
    closed_at = EXCLUDED.closed_at`

const selectWinnerColumns = `cycle_id, cycle_number, participant, prize_id, prize_name, token_kind, pool_total, drawn_at`

// RaffleRepository implements repository.Raffle for PostgreSQL
type RaffleRepository struct {
	db *pgxpool.Pool
}

// NewRaffleRepository creates a new RaffleRepository
func NewRaffleRepository(db *pgxpool.Pool) *RaffleRepository {
	return &RaffleRepository{db: db}
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func upsertCycle(ctx context.Context, q querier, cycle *domain.Cycle, state string, closedAt *time.Time) error {
	_, err := q.Exec(ctx, upsertCycleSQL,
		cycle.ID,
		cycle.Number,
		state,
		cycle.Prize.ID,
		cycle.Prize.Name,
		cycle.Prize.Value,
		string(cycle.Prize.TokenKind),
		cycle.PoolTotal,
		cycle.OpenedAt,
		cycle.Deadline,
		closedAt,
	)
	return err
}

// SaveCycle upserts the cycle header
func (r *RaffleRepository) SaveCycle(ctx context.Context, cycle *domain.Cycle) error {
	if err := upsertCycle(ctx, r.db, cycle, string(cycle.State), nil); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveCycle, err)
	}
	return nil
}

// InsertEntry records one accepted contribution
func (r *RaffleRepository) InsertEntry(ctx context.Context, entry domain.Entry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO raffle_entries (entry_id, cycle_id, participant, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.CycleID, entry.Participant, entry.Amount, entry.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return fmt.Errorf("%w: duplicate entry %s", domain.ErrInvalidInput, entry.ID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertEntry, err)
	}
	return nil
}

// ListWinners returns the most recent winners, oldest first. limit <= 0 returns all.
func (r *RaffleRepository) ListWinners(ctx context.Context, limit int) ([]domain.WinnerRecord, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if limit <= 0 {
		rows, err = r.db.Query(ctx, `SELECT `+selectWinnerColumns+` FROM raffle_winners ORDER BY cycle_number ASC`)
	} else {
		rows, err = r.db.Query(ctx, `
			SELECT `+selectWinnerColumns+` FROM (
				SELECT `+selectWinnerColumns+` FROM raffle_winners ORDER BY cycle_number DESC LIMIT $1
			) recent ORDER BY cycle_number ASC`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListWinners, err)
	}
	defer rows.Close()

	winners := []domain.WinnerRecord{}
	for rows.Next() {
		var (
			w    domain.WinnerRecord
			kind string
		)
		if err := rows.Scan(&w.CycleID, &w.CycleNumber, &w.Participant, &w.PrizeID, &w.PrizeName, &kind, &w.PoolTotal, &w.DrawnAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListWinners, err)
		}
		w.TokenKind = domain.TokenKind(kind)
		winners = append(winners, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListWinners, err)
	}
	return winners, nil
}

// ListEntries returns the stored entries of one cycle, oldest first
func (r *RaffleRepository) ListEntries(ctx context.Context, cycleID uuid.UUID) ([]domain.Entry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT entry_id, cycle_id, participant, amount, created_at
		FROM raffle_entries WHERE cycle_id = $1
		ORDER BY created_at ASC, entry_id ASC`, cycleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEntries, err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.CycleID, &e.Participant, &e.Amount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEntries, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEntries, err)
	}
	return entries, nil
}

// CycleFinished reports whether a cycle was closed or already has a winner
func (r *RaffleRepository) CycleFinished(ctx context.Context, cycleID uuid.UUID) (bool, error) {
	var finished bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM raffle_cycles WHERE cycle_id = $1 AND closed_at IS NOT NULL)
		    OR EXISTS (SELECT 1 FROM raffle_winners WHERE cycle_id = $1)`, cycleID).Scan(&finished)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToReadCycle, err)
	}
	return finished, nil
}

// MaxCycleNumber returns the highest cycle number ever stored, or 0
func (r *RaffleRepository) MaxCycleNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(cycle_number), 0) FROM raffle_cycles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToReadCycle, err)
	}
	return n, nil
}

// SaveSnapshot stores a serialized raffle state
func (r *RaffleRepository) SaveSnapshot(ctx context.Context, takenAt time.Time, data []byte) error {
	_, err := r.db.Exec(ctx, `INSERT INTO raffle_snapshots (taken_at, data) VALUES ($1, $2)`, takenAt, data)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveSnapshot, err)
	}
	return nil
}

// LatestSnapshot returns the newest stored snapshot, or nil when there is none
func (r *RaffleRepository) LatestSnapshot(ctx context.Context) ([]byte, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM raffle_snapshots ORDER BY taken_at DESC, snapshot_id DESC LIMIT 1`).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadSnapshot, err)
	}
	return data, nil
}

// PruneSnapshots keeps the newest keep snapshots and deletes the rest
func (r *RaffleRepository) PruneSnapshots(ctx context.Context, keep int) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM raffle_snapshots WHERE snapshot_id NOT IN (
			SELECT snapshot_id FROM raffle_snapshots ORDER BY taken_at DESC, snapshot_id DESC LIMIT $1
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToPruneSnapshots, err)
	}
	return tag.RowsAffected(), nil
}

// BeginRaffleTx starts a transaction for finalizing a draw
func (r *RaffleRepository) BeginRaffleTx(ctx context.Context) (repository.RaffleTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginRaffleTransaction, err)
	}
	return &raffleTx{tx: tx}, nil
}

// Ping reports whether the database is reachable
func (r *RaffleRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// raffleTx implements repository.RaffleTx
type raffleTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *raffleTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *raffleTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// MarkCycleClosed writes the final pool and closing time. The row is created
// if the cycle header was never stored.
func (t *raffleTx) MarkCycleClosed(ctx context.Context, cycle *domain.Cycle, closedAt time.Time) error {
	if err := upsertCycle(ctx, t.tx, cycle, CycleStateClosed, &closedAt); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCloseCycle, err)
	}
	return nil
}

// InsertWinner appends to the winner history
func (t *raffleTx) InsertWinner(ctx context.Context, w domain.WinnerRecord) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO raffle_winners (`+selectWinnerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		w.CycleID, w.CycleNumber, w.Participant, w.PrizeID, w.PrizeName, string(w.TokenKind), w.PoolTotal, w.DrawnAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return fmt.Errorf("%w: cycle %s already has a winner", domain.ErrInvalidInput, w.CycleID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertWinner, err)
	}
	return nil
}
