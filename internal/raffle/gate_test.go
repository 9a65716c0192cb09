package raffle

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
)

func TestValidateContribution(t *testing.T) {
	open := func() *domain.Cycle {
		c := &domain.Cycle{State: domain.CycleStateOpen, Prize: domain.Prize{Value: 100}}
		_ = appendEntry(c, domain.Entry{Participant: "A", Amount: 30})
		return c
	}

	tests := []struct {
		name   string
		cycle  func() *domain.Cycle
		amount int64
		want   error
	}{
		{"within cap", open, 10, nil},
		{"exactly at cap", open, 40, nil},
		{"over cap", open, 41, domain.ErrCapExceeded},
		{"zero", open, 0, domain.ErrInvalidAmount},
		{"negative", open, -1, domain.ErrInvalidAmount},
		{"drawing", func() *domain.Cycle {
			c := open()
			c.State = domain.CycleStateDrawing
			return c
		}, 1, domain.ErrCycleNotOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContribution(tt.cycle(), "A", tt.amount)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestCheckBalance(t *testing.T) {
	t.Run("sufficient", func(t *testing.T) {
		balance, err := checkBalance(context.Background(), staticBalances{"A": 10}, "A", 10, time.Second)
		assert.NoError(t, err)
		assert.Equal(t, int64(10), balance)
	})

	t.Run("insufficient", func(t *testing.T) {
		_, err := checkBalance(context.Background(), staticBalances{"A": 9}, "A", 10, time.Second)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	})

	t.Run("reader error fails closed", func(t *testing.T) {
		reader := new(MockBalanceReader)
		reader.On("BalanceOf", mock.Anything, "A", domain.TokenPirot).Return(int64(0), errors.New("rpc down"))

		_, err := checkBalance(context.Background(), reader, "A", 1, time.Second)

		assert.ErrorIs(t, err, domain.ErrLedgerUnavailable)
		reader.AssertExpectations(t)
	})

	t.Run("unreadable participant is invalid input", func(t *testing.T) {
		reader := new(MockBalanceReader)
		reader.On("BalanceOf", mock.Anything, "pirata", domain.TokenPirot).
			Return(int64(0), fmt.Errorf("%w: not an address", domain.ErrInvalidInput))

		_, err := checkBalance(context.Background(), reader, "pirata", 1, time.Second)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.NotErrorIs(t, err, domain.ErrLedgerUnavailable)
	})

	t.Run("reader deadline error maps to timeout", func(t *testing.T) {
		reader := new(MockBalanceReader)
		reader.On("BalanceOf", mock.Anything, "A", domain.TokenPirot).Return(int64(0), context.DeadlineExceeded)

		_, err := checkBalance(context.Background(), reader, "A", 1, time.Second)

		assert.ErrorIs(t, err, domain.ErrTimeout)
	})

	t.Run("reader ignoring its context still times out", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		reader := balanceFunc(func(ctx context.Context, participant string) (int64, error) {
			<-release
			return 100, nil
		})

		start := time.Now()
		_, err := checkBalance(context.Background(), reader, "A", 1, 30*time.Millisecond)

		assert.ErrorIs(t, err, domain.ErrTimeout)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("caller cancellation is reported as such", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		reader := balanceFunc(func(rctx context.Context, participant string) (int64, error) {
			cancel()
			<-rctx.Done()
			return 0, rctx.Err()
		})

		_, err := checkBalance(ctx, reader, "A", 1, time.Second)

		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, domain.ErrTimeout)
	})

	t.Run("no reader configured", func(t *testing.T) {
		_, err := checkBalance(context.Background(), nil, "A", 1, time.Second)
		assert.ErrorIs(t, err, domain.ErrLedgerUnavailable)
	})
}

func TestRejectionReason(t *testing.T) {
	assert.Equal(t, "cap_exceeded", rejectionReason(domain.ErrCapExceeded))
	assert.Equal(t, "timeout", rejectionReason(domain.ErrTimeout))
	assert.Equal(t, "cancelled", rejectionReason(context.Canceled))
	assert.Equal(t, "invalid_input", rejectionReason(domain.ErrInvalidInput))
	assert.Equal(t, "internal", rejectionReason(errors.New("boom")))
}
