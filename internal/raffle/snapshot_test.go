package raffle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/event"
)

func populatedService(t *testing.T) *service {
	t.Helper()
	svc := newTestService(t, nil, richBalances("A", "B"), nil, Config{Random: fixedRoll(0)})
	ctx := context.Background()

	_, err := svc.Enter(ctx, "A", 3)
	require.NoError(t, err)
	_, err = svc.CloseCycle(ctx, uuid.Nil)
	require.NoError(t, err)

	// Second cycle carries the 10-value parrot, cap 7
	_, err = svc.Enter(ctx, "A", 2)
	require.NoError(t, err)
	_, err = svc.Enter(ctx, "B", 5)
	require.NoError(t, err)
	return svc
}

func TestSnapshot_RoundTrip(t *testing.T) {
	svc := populatedService(t)
	snap := svc.Snapshot(context.Background())

	data, err := MarshalSnapshot(snap)
	require.NoError(t, err)

	restored, err := UnmarshalSnapshot(data)
	require.NoError(t, err)

	assert.Equal(t, snap.Cycle.ID, restored.Cycle.ID)
	assert.Equal(t, snap.Cycle.PoolTotal, restored.Cycle.PoolTotal)
	require.Len(t, restored.Cycle.Entries, 2)
	for i := range snap.Cycle.Entries {
		assert.Equal(t, snap.Cycle.Entries[i].Participant, restored.Cycle.Entries[i].Participant)
		assert.Equal(t, snap.Cycle.Entries[i].Amount, restored.Cycle.Entries[i].Amount)
		assert.True(t, snap.Cycle.Entries[i].Share.Equal(restored.Cycle.Entries[i].Share))
	}
	require.Len(t, restored.History, 1)
	assert.Equal(t, snap.History[0].Participant, restored.History[0].Participant)
	assert.Equal(t, snap.History[0].CycleID, restored.History[0].CycleID)
}

func TestRestoreService_ResumesCycle(t *testing.T) {
	svc := populatedService(t)
	snap := svc.Snapshot(context.Background())
	snap.Cycle.State = domain.CycleStateDrawing

	restoredSvc, err := RestoreService(snap, nil, newTestCatalog(t), richBalances("A", "B"), nil, Config{})
	require.NoError(t, err)
	ctx := context.Background()

	cycle := restoredSvc.CurrentCycle(ctx)
	assert.Equal(t, domain.CycleStateOpen, cycle.State, "a cycle captured mid-draw is reopened")
	assert.Equal(t, int64(7), cycle.PoolTotal)
	assert.Len(t, restoredSvc.History(ctx, 0), 1)

	// Caps carry over: A has 2 of 7
	_, err = restoredSvc.Enter(ctx, "A", 6)
	assert.ErrorIs(t, err, domain.ErrCapExceeded)
	_, err = restoredSvc.Enter(ctx, "A", 5)
	assert.NoError(t, err)
}

func TestRestoreService_DrawnCycleIsNotResumed(t *testing.T) {
	snap := populatedService(t).Snapshot(context.Background())
	drawn := domain.WinnerRecord{
		CycleID:     snap.Cycle.ID,
		CycleNumber: snap.Cycle.Number,
		Participant: "B",
		PrizeID:     snap.Cycle.Prize.ID,
		PoolTotal:   snap.Cycle.PoolTotal,
	}

	repo := new(MockRepository)
	repo.On("ListWinners", mock.Anything, 0).Return(append(append([]domain.WinnerRecord{}, snap.History...), drawn), nil)
	repo.On("CycleFinished", mock.Anything, snap.Cycle.ID).Return(true, nil)
	// The cycle opened after that draw was stored before the crash
	repo.On("MaxCycleNumber", mock.Anything).Return(snap.Cycle.Number+1, nil)
	repo.On("SaveCycle", mock.Anything, mock.Anything).Return(nil)
	repo.On("BeginRaffleTx", mock.Anything).Return(nil, errors.New("database unavailable"))

	bus, rec := newEventRecorder()
	svc, err := RestoreService(snap, repo, newTestCatalog(t), richBalances("A", "B"), bus, Config{})
	require.NoError(t, err)
	ctx := context.Background()

	cycle := svc.CurrentCycle(ctx)
	assert.NotEqual(t, snap.Cycle.ID, cycle.ID)
	assert.Equal(t, snap.Cycle.Number+2, cycle.Number)
	assert.Empty(t, cycle.Entries)
	assert.Zero(t, cycle.PoolTotal)
	assert.NotEqual(t, snap.Cycle.Prize.ID, cycle.Prize.ID)

	history := svc.History(ctx, 0)
	require.Len(t, history, 2)
	assert.Equal(t, "B", history[0].Participant)
	repo.AssertNotCalled(t, "ListEntries", mock.Anything, mock.Anything)

	// Closing the fresh cycle cannot produce a second winner for the drawn one
	result, err := svc.CloseCycle(ctx, uuid.Nil)
	require.NoError(t, err)
	assert.Nil(t, result.Winner)
	assert.Equal(t, []event.Type{event.RaffleCycleRolledOver}, rec.types())
}

func TestRestoreService_RecoversEntriesCommittedAfterSnapshot(t *testing.T) {
	snap := populatedService(t).Snapshot(context.Background())
	late := domain.Entry{
		ID:          uuid.New(),
		CycleID:     snap.Cycle.ID,
		Participant: "B",
		Amount:      2,
		CreatedAt:   snap.TakenAt.Add(time.Minute),
	}
	stored := append(append([]domain.Entry{}, snap.Cycle.Entries...), late)

	repo := new(MockRepository)
	repo.On("ListWinners", mock.Anything, 0).Return([]domain.WinnerRecord{}, nil)
	repo.On("CycleFinished", mock.Anything, snap.Cycle.ID).Return(false, nil)
	repo.On("MaxCycleNumber", mock.Anything).Return(snap.Cycle.Number, nil)
	repo.On("ListEntries", mock.Anything, snap.Cycle.ID).Return(stored, nil)
	repo.On("SaveCycle", mock.Anything, mock.Anything).Return(nil)

	svc, err := RestoreService(snap, repo, newTestCatalog(t), richBalances("A", "B"), nil, Config{})
	require.NoError(t, err)
	ctx := context.Background()

	cycle := svc.CurrentCycle(ctx)
	assert.Equal(t, snap.Cycle.ID, cycle.ID)
	require.Len(t, cycle.Entries, 3)
	assert.Equal(t, late.ID, cycle.Entries[2].ID)
	assert.Equal(t, int64(9), cycle.PoolTotal)
	assert.True(t, PoolConsistent(cycle))
	assert.Len(t, svc.History(ctx, 0), 1, "snapshot history is kept when the store has none")

	// B now holds the whole 7 cap
	_, err = svc.Enter(ctx, "B", 1)
	assert.ErrorIs(t, err, domain.ErrCapExceeded)
}

func TestRestoreService_StoreReadFailure(t *testing.T) {
	snap := populatedService(t).Snapshot(context.Background())
	repo := new(MockRepository)
	repo.On("ListWinners", mock.Anything, 0).Return([]domain.WinnerRecord{}, nil)
	repo.On("CycleFinished", mock.Anything, snap.Cycle.ID).Return(false, errors.New("connection reset"))

	_, err := RestoreService(snap, repo, newTestCatalog(t), richBalances(), nil, Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrContextLoadCycles)
}

func TestSnapshot_Validate(t *testing.T) {
	valid := func() *Snapshot {
		return &Snapshot{
			Version: SnapshotVersion,
			TakenAt: time.Now(),
			Cycle: &domain.Cycle{
				ID:        uuid.New(),
				Number:    1,
				State:     domain.CycleStateOpen,
				Prize:     testPrizes()[1],
				Entries:   []domain.Entry{{ID: uuid.New(), Participant: "A", Amount: 4}},
				PoolTotal: 4,
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Snapshot)
		valid  bool
	}{
		{"valid", func(*Snapshot) {}, true},
		{"missing cycle", func(s *Snapshot) { s.Cycle = nil }, false},
		{"wrong version", func(s *Snapshot) { s.Version = "0.9" }, false},
		{"no prize", func(s *Snapshot) { s.Cycle.Prize = domain.Prize{} }, false},
		{"pool mismatch", func(s *Snapshot) { s.Cycle.PoolTotal = 5 }, false},
		{"non-positive entry", func(s *Snapshot) { s.Cycle.Entries[0].Amount = 0; s.Cycle.PoolTotal = 0 }, false},
		{"over cap", func(s *Snapshot) { s.Cycle.Entries[0].Amount = 8; s.Cycle.PoolTotal = 8 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := s.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrSnapshotInvalid)
			}
		})
	}
}

func TestUnmarshalSnapshot_Malformed(t *testing.T) {
	_, err := UnmarshalSnapshot([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrContextDecodeSnapshot)

	_, err = UnmarshalSnapshot([]byte(`{"version":"1.0"}`))
	assert.ErrorIs(t, err, domain.ErrSnapshotInvalid)
}
