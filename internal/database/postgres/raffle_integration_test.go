package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/raffle"
	"github.com/osse101/PirotRaffle_Go/internal/repository"
)

func testCycle(number int64) *domain.Cycle {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Cycle{
		ID:       uuid.New(),
		Number:   number,
		State:    domain.CycleStateOpen,
		Prize:    raffle.DefaultPrizes()[0],
		Entries:  []domain.Entry{},
		OpenedAt: now,
		Deadline: now.Add(30 * time.Minute),
	}
}

func TestRaffleRepository_CycleEntriesAndWinner(t *testing.T) {
	pool := requireDB(t)
	resetTables(t, pool)
	repo := NewRaffleRepository(pool)
	ctx := context.Background()

	cycle := testCycle(1)
	require.NoError(t, repo.SaveCycle(ctx, cycle))
	require.NoError(t, repo.SaveCycle(ctx, cycle), "save is an upsert")

	entry := domain.Entry{ID: uuid.New(), CycleID: cycle.ID, Participant: "alice", Amount: 5, CreatedAt: time.Now()}
	require.NoError(t, repo.InsertEntry(ctx, entry))
	err := repo.InsertEntry(ctx, entry)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cycle.PoolTotal = 5
	winner := domain.WinnerRecord{
		CycleID:     cycle.ID,
		CycleNumber: cycle.Number,
		Participant: "alice",
		PrizeID:     cycle.Prize.ID,
		PrizeName:   cycle.Prize.Name,
		TokenKind:   cycle.Prize.TokenKind,
		PoolTotal:   5,
		DrawnAt:     time.Now().UTC().Truncate(time.Microsecond),
	}

	tx, err := repo.BeginRaffleTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.MarkCycleClosed(ctx, cycle, time.Now()))
	require.NoError(t, tx.InsertWinner(ctx, winner))
	require.NoError(t, tx.Commit(ctx))
	repository.SafeRollback(ctx, tx)

	var state string
	var pool64 int64
	err = pool.QueryRow(ctx, `SELECT state, pool_total FROM raffle_cycles WHERE cycle_id = $1`, cycle.ID).Scan(&state, &pool64)
	require.NoError(t, err)
	assert.Equal(t, CycleStateClosed, state)
	assert.Equal(t, int64(5), pool64)

	winners, err := repo.ListWinners(ctx, 0)
	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.Equal(t, winner.Participant, winners[0].Participant)
	assert.Equal(t, winner.TokenKind, winners[0].TokenKind)
	assert.True(t, winner.DrawnAt.Equal(winners[0].DrawnAt))
}

func TestRaffleRepository_RollbackDiscardsDraw(t *testing.T) {
	pool := requireDB(t)
	resetTables(t, pool)
	repo := NewRaffleRepository(pool)
	ctx := context.Background()

	cycle := testCycle(1)
	tx, err := repo.BeginRaffleTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.MarkCycleClosed(ctx, cycle, time.Now()), "closing creates a missing header")
	require.NoError(t, tx.Rollback(ctx))

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM raffle_cycles`).Scan(&count))
	assert.Zero(t, count)
}

func TestRaffleRepository_ListWinnersLimitKeepsNewest(t *testing.T) {
	pool := requireDB(t)
	resetTables(t, pool)
	repo := NewRaffleRepository(pool)
	ctx := context.Background()

	for n := int64(1); n <= 4; n++ {
		cycle := testCycle(n)
		cycle.PoolTotal = n
		tx, err := repo.BeginRaffleTx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.MarkCycleClosed(ctx, cycle, time.Now()))
		require.NoError(t, tx.InsertWinner(ctx, domain.WinnerRecord{
			CycleID: cycle.ID, CycleNumber: n, Participant: "p", PrizeID: cycle.Prize.ID,
			PrizeName: cycle.Prize.Name, TokenKind: cycle.Prize.TokenKind, PoolTotal: n, DrawnAt: time.Now(),
		}))
		require.NoError(t, tx.Commit(ctx))
	}

	winners, err := repo.ListWinners(ctx, 2)
	require.NoError(t, err)
	require.Len(t, winners, 2)
	assert.Equal(t, int64(3), winners[0].CycleNumber)
	assert.Equal(t, int64(4), winners[1].CycleNumber)
}

func TestRaffleRepository_Snapshots(t *testing.T) {
	pool := requireDB(t)
	resetTables(t, pool)
	repo := NewRaffleRepository(pool)
	ctx := context.Background()

	data, err := repo.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	base := time.Now()
	for i := 0; i < 3; i++ {
		payload := []byte(`{"version":"1.0","n":` + string(rune('0'+i)) + `}`)
		require.NoError(t, repo.SaveSnapshot(ctx, base.Add(time.Duration(i)*time.Second), payload))
	}

	data, err = repo.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.0","n":2}`, string(data))

	removed, err := repo.PruneSnapshots(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
}

func TestRaffleRepository_RecoveryQueries(t *testing.T) {
	pool := requireDB(t)
	resetTables(t, pool)
	repo := NewRaffleRepository(pool)
	ctx := context.Background()

	n, err := repo.MaxCycleNumber(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	closed := testCycle(3)
	open := testCycle(7)
	require.NoError(t, repo.SaveCycle(ctx, closed))
	require.NoError(t, repo.SaveCycle(ctx, open))

	tx, err := repo.BeginRaffleTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.MarkCycleClosed(ctx, closed, time.Now()))
	require.NoError(t, tx.Commit(ctx))

	n, err = repo.MaxCycleNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	finished, err := repo.CycleFinished(ctx, closed.ID)
	require.NoError(t, err)
	assert.True(t, finished)
	finished, err = repo.CycleFinished(ctx, open.ID)
	require.NoError(t, err)
	assert.False(t, finished)
	finished, err = repo.CycleFinished(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, finished, "an unknown cycle is not finished")

	base := time.Now().UTC().Truncate(time.Microsecond)
	second := domain.Entry{ID: uuid.New(), CycleID: open.ID, Participant: "bob", Amount: 4, CreatedAt: base.Add(time.Second)}
	first := domain.Entry{ID: uuid.New(), CycleID: open.ID, Participant: "alice", Amount: 2, CreatedAt: base}
	require.NoError(t, repo.InsertEntry(ctx, second))
	require.NoError(t, repo.InsertEntry(ctx, first))
	require.NoError(t, repo.InsertEntry(ctx, domain.Entry{ID: uuid.New(), CycleID: closed.ID, Participant: "carol", Amount: 1, CreatedAt: base}))

	entries, err := repo.ListEntries(ctx, open.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, second.ID, entries[1].ID)
	assert.Equal(t, int64(4), entries[1].Amount)
}
