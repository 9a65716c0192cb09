package raffle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/metrics"
)

// BalanceReader is the read side of the external ledger
type BalanceReader interface {
	BalanceOf(ctx context.Context, participant string, kind domain.TokenKind) (int64, error)
}

// Settler transfers won prizes on the external ledger
type Settler interface {
	Credit(ctx context.Context, participant string, kind domain.TokenKind, amount int64) error
}

// validateContribution checks the in-memory preconditions of a submission.
// Must be called with the cycle lock held.
func validateContribution(c *domain.Cycle, participant string, amount int64) error {
	if c.State != domain.CycleStateOpen {
		return fmt.Errorf("%w: cycle %d is %s", domain.ErrCycleNotOpen, c.Number, c.State)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}
	existing := c.ParticipantTotal(participant)
	if limit := c.Prize.Cap(); existing+amount > limit {
		return fmt.Errorf("%w: %d already contributed, %d requested, cap %d", domain.ErrCapExceeded, existing, amount, limit)
	}
	return nil
}

type balanceResult struct {
	balance int64
	err     error
}

// checkBalance asks the external ledger whether participant can cover
// required PIROT and returns the balance it read. The lookup runs in its own
// goroutine so a reader that ignores its context still cannot hold the caller
// past timeout. Any failure to obtain an answer rejects the submission.
func checkBalance(ctx context.Context, reader BalanceReader, participant string, required int64, timeout time.Duration) (int64, error) {
	if reader == nil {
		return 0, fmt.Errorf("%w: no balance reader configured", domain.ErrLedgerUnavailable)
	}

	start := time.Now()
	defer func() { metrics.BalanceCheckLatency.Observe(time.Since(start).Seconds()) }()

	bctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results := make(chan balanceResult, 1)
	go func() {
		balance, err := reader.BalanceOf(bctx, participant, domain.TokenPirot)
		results <- balanceResult{balance: balance, err: err}
	}()

	var res balanceResult
	select {
	case res = <-results:
	case <-bctx.Done():
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("%w: %s exceeded %s", domain.ErrTimeout, ErrContextBalanceCheck, timeout)
	}

	if res.err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		switch {
		case errors.Is(res.err, context.DeadlineExceeded), errors.Is(res.err, domain.ErrTimeout):
			return 0, fmt.Errorf("%w: %s: %w", domain.ErrTimeout, ErrContextBalanceCheck, res.err)
		case errors.Is(res.err, domain.ErrInvalidInput):
			// The ledger answered: the participant is not an account it knows how to read
			return 0, fmt.Errorf("%s: %w", ErrContextBalanceCheck, res.err)
		}
		return 0, fmt.Errorf("%w: %s: %w", domain.ErrLedgerUnavailable, ErrContextBalanceCheck, res.err)
	}

	if err := coversBalance(res.balance, required); err != nil {
		return 0, err
	}
	return res.balance, nil
}

// coversBalance rejects a requirement above the balance read from the ledger
func coversBalance(balance, required int64) error {
	if balance < required {
		return fmt.Errorf("%w: balance %d, required %d", domain.ErrInsufficientBalance, balance, required)
	}
	return nil
}

// rejectionReason maps a gate error to a bounded metrics label
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrParticipantRequired):
		return "participant_required"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrCapExceeded):
		return "cap_exceeded"
	case errors.Is(err, domain.ErrCycleNotOpen):
		return "cycle_not_open"
	case errors.Is(err, domain.ErrTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrLedgerUnavailable):
		return "ledger_unavailable"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}
