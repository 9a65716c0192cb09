package raffle

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
)

// appendEntry records an accepted contribution. The pool total moves in the
// same step as the entry list so the two can never disagree.
func appendEntry(c *domain.Cycle, e domain.Entry) error {
	if e.Amount <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidAmount, e.Amount)
	}
	e.Share = decimal.Zero
	c.Entries = append(c.Entries, e)
	c.PoolTotal += e.Amount
	return nil
}

// sumEntries recomputes the pool from scratch
func sumEntries(entries []domain.Entry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Amount
	}
	return total
}

// PoolConsistent reports whether the cycle's pool total equals the sum of its entries
func PoolConsistent(c *domain.Cycle) bool {
	return c.PoolTotal == sumEntries(c.Entries)
}
