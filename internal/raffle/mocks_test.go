package raffle

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/event"
	"github.com/osse101/PirotRaffle_Go/internal/repository"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveCycle(ctx context.Context, cycle *domain.Cycle) error {
	args := m.Called(ctx, cycle)
	return args.Error(0)
}

func (m *MockRepository) InsertEntry(ctx context.Context, entry domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRepository) ListWinners(ctx context.Context, limit int) ([]domain.WinnerRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WinnerRecord), args.Error(1)
}

func (m *MockRepository) ListEntries(ctx context.Context, cycleID uuid.UUID) ([]domain.Entry, error) {
	args := m.Called(ctx, cycleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockRepository) CycleFinished(ctx context.Context, cycleID uuid.UUID) (bool, error) {
	args := m.Called(ctx, cycleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) MaxCycleNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) SaveSnapshot(ctx context.Context, takenAt time.Time, data []byte) error {
	args := m.Called(ctx, takenAt, data)
	return args.Error(0)
}

func (m *MockRepository) LatestSnapshot(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRepository) BeginRaffleTx(ctx context.Context) (repository.RaffleTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.RaffleTx), args.Error(1)
}

// MockRaffleTx
type MockRaffleTx struct {
	mock.Mock
}

func (m *MockRaffleTx) MarkCycleClosed(ctx context.Context, cycle *domain.Cycle, closedAt time.Time) error {
	args := m.Called(ctx, cycle, closedAt)
	return args.Error(0)
}

func (m *MockRaffleTx) InsertWinner(ctx context.Context, winner domain.WinnerRecord) error {
	args := m.Called(ctx, winner)
	return args.Error(0)
}

func (m *MockRaffleTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRaffleTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockBalanceReader
type MockBalanceReader struct {
	mock.Mock
}

func (m *MockBalanceReader) BalanceOf(ctx context.Context, participant string, kind domain.TokenKind) (int64, error) {
	args := m.Called(ctx, participant, kind)
	return args.Get(0).(int64), args.Error(1)
}

// staticBalances is a fixed balance table; unknown participants hold 0
type staticBalances map[string]int64

func (b staticBalances) BalanceOf(ctx context.Context, participant string, kind domain.TokenKind) (int64, error) {
	return b[participant], nil
}

// balanceFunc adapts a function to BalanceReader
type balanceFunc func(ctx context.Context, participant string) (int64, error)

func (f balanceFunc) BalanceOf(ctx context.Context, participant string, kind domain.TokenKind) (int64, error) {
	return f(ctx, participant)
}

// fixedRoll always returns v clamped to n-1
func fixedRoll(v int64) RandomSource {
	return RandomFunc(func(n int64) (int64, error) {
		if v >= n {
			return n - 1, nil
		}
		return v, nil
	})
}

// eventRecorder captures everything published on a MemoryBus
type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func newEventRecorder() (*event.MemoryBus, *eventRecorder) {
	bus := event.NewMemoryBus()
	rec := &eventRecorder{}
	for _, t := range []event.Type{event.RaffleEntryAccepted, event.RaffleCycleDrawn, event.RaffleCycleRolledOver} {
		bus.Subscribe(t, rec.handle)
	}
	return bus, rec
}

func (r *eventRecorder) handle(ctx context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *eventRecorder) types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
