package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
)

// MemoryLedger keeps balances in process. Used for demos and tests.
type MemoryLedger struct {
	mu       sync.RWMutex
	balances map[string]map[domain.TokenKind]int64
}

// NewMemoryLedger creates a ledger with the given PIROT balances
func NewMemoryLedger(seed map[string]int64) *MemoryLedger {
	l := &MemoryLedger{balances: make(map[string]map[domain.TokenKind]int64)}
	for participant, amount := range seed {
		l.account(participant)[domain.TokenPirot] = amount
	}
	return l
}

// account must be called with mu held for writing
func (l *MemoryLedger) account(participant string) map[domain.TokenKind]int64 {
	acct, ok := l.balances[participant]
	if !ok {
		acct = make(map[domain.TokenKind]int64)
		l.balances[participant] = acct
	}
	return acct
}

// BalanceOf returns 0 for unknown participants
func (l *MemoryLedger) BalanceOf(ctx context.Context, participant string, kind domain.TokenKind) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[participant][kind], nil
}

// Credit adds amount of kind to participant
func (l *MemoryLedger) Credit(ctx context.Context, participant string, kind domain.TokenKind, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.account(participant)[kind] += amount
	return nil
}

// ParseSeed reads "participant:amount,participant:amount" into a balance table
func ParseSeed(raw string) (map[string]int64, error) {
	seed := make(map[string]int64)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idx := strings.LastIndex(pair, ":")
		if idx <= 0 || idx == len(pair)-1 {
			return nil, fmt.Errorf("%s: %q", ErrContextParseSeed, pair)
		}
		participant := strings.TrimSpace(pair[:idx])
		amount, err := strconv.ParseInt(strings.TrimSpace(pair[idx+1:]), 10, 64)
		if err != nil || amount < 0 {
			return nil, fmt.Errorf("%s: %q", ErrContextParseSeed, pair)
		}
		seed[participant] = amount
	}
	return seed, nil
}
