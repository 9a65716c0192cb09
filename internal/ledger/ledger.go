// Package ledger provides the external token ledger used by the raffle: an
// in-memory demo ledger, a read-only EVM JSON-RPC reader and a caching layer.
package ledger

import (
	"context"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
)

// Reader reports token balances
type Reader interface {
	BalanceOf(ctx context.Context, participant string, kind domain.TokenKind) (int64, error)
}

// Writer moves tokens to a participant
type Writer interface {
	Credit(ctx context.Context, participant string, kind domain.TokenKind, amount int64) error
}

// Ledger is a balance source that can also settle prizes
type Ledger interface {
	Reader
	Writer
}
