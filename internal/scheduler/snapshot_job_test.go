package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/raffle"
)

type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) SaveSnapshot(ctx context.Context, takenAt time.Time, data []byte) error {
	args := m.Called(ctx, takenAt, data)
	return args.Error(0)
}

func (m *MockSnapshotStore) PruneSnapshots(ctx context.Context, keep int) (int64, error) {
	args := m.Called(ctx, keep)
	return args.Get(0).(int64), args.Error(1)
}

type memoryBalances map[string]int64

func (b memoryBalances) BalanceOf(ctx context.Context, participant string, kind domain.TokenKind) (int64, error) {
	return b[participant], nil
}

func newService(t *testing.T) raffle.Service {
	t.Helper()
	catalog, err := raffle.NewStaticCatalog(raffle.DefaultPrizes(), nil)
	require.NoError(t, err)
	svc, err := raffle.NewService(nil, catalog, memoryBalances{"alice": 100}, nil, raffle.Config{})
	require.NoError(t, err)
	_, err = svc.Enter(context.Background(), "alice", 1)
	require.NoError(t, err)
	return svc
}

func TestSnapshotJob_SavesDecodableSnapshot(t *testing.T) {
	svc := newService(t)
	store := new(MockSnapshotStore)

	var saved []byte
	store.On("SaveSnapshot", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(2).([]byte) }).Return(nil)
	store.On("PruneSnapshots", mock.Anything, 5).Return(int64(2), nil)

	require.NoError(t, NewSnapshotJob(svc, store, 5).Process(context.Background()))

	snap, err := raffle.UnmarshalSnapshot(saved)
	require.NoError(t, err)
	assert.Equal(t, svc.CurrentCycle(context.Background()).ID, snap.Cycle.ID)
	assert.Equal(t, int64(1), snap.Cycle.PoolTotal)
	store.AssertExpectations(t)
}

func TestSnapshotJob_SaveFailure(t *testing.T) {
	store := new(MockSnapshotStore)
	store.On("SaveSnapshot", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	err := NewSnapshotJob(newService(t), store, 0).Process(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrContextSaveSnapshot)
	store.AssertNotCalled(t, "PruneSnapshots", mock.Anything, mock.Anything)
}
