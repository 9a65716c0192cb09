package raffle

import (
	"fmt"
	"time"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/utils"
)

// RandomSource yields uniform values in [0, n)
type RandomSource interface {
	Int63n(n int64) (int64, error)
}

// RandomFunc adapts a function to RandomSource
type RandomFunc func(n int64) (int64, error)

// Int63n implements RandomSource
func (f RandomFunc) Int63n(n int64) (int64, error) { return f(n) }

// CryptoRandom is the default RandomSource backed by crypto/rand
var CryptoRandom RandomSource = RandomFunc(utils.SecureInt63n)

// Draw selects a winner by weighted cumulative sampling. It returns ok=false
// when the cycle has no entries, which is a valid outcome rather than an error.
func Draw(c *domain.Cycle, rng RandomSource, now time.Time) (*domain.WinnerRecord, bool, error) {
	if len(c.Entries) == 0 {
		return nil, false, nil
	}

	pool := sumEntries(c.Entries)
	if pool <= 0 {
		// Unreachable while the gate rejects non-positive amounts
		pool = 1
	}

	roll, err := rng.Int63n(pool)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", ErrContextDrawRandom, err)
	}

	winner := c.Entries[selectWinner(c.Entries, roll)]
	return &domain.WinnerRecord{
		CycleID:     c.ID,
		CycleNumber: c.Number,
		Participant: winner.Participant,
		PrizeID:     c.Prize.ID,
		PrizeName:   c.Prize.Name,
		TokenKind:   c.Prize.TokenKind,
		PoolTotal:   pool,
		DrawnAt:     now,
	}, true, nil
}

// selectWinner walks entries in insertion order and returns the index of the
// first whose running total exceeds roll. Each entry therefore owns the
// half-open interval [cumulative-amount, cumulative) of the pool. If the walk
// finds nothing the last entry wins.
func selectWinner(entries []domain.Entry, roll int64) int {
	var cumulative int64
	for i, e := range entries {
		cumulative += e.Amount
		if cumulative > roll {
			return i
		}
	}
	return len(entries) - 1
}
