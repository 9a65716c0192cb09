package ledger

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/logger"
)

// CacheSchemaVersion invalidates cached balances when the entry layout changes
const CacheSchemaVersion = "1.0"

type cachedBalance struct {
	Version  string
	Balance  int64
	CachedAt time.Time
}

// CachedLedger fronts a slow ledger with a short-lived LRU of balances.
// Credits pass through and invalidate the participant's entry.
type CachedLedger struct {
	next Ledger
	lru  *expirable.LRU[string, *cachedBalance]
}

// NewCachedLedger wraps next. Non-positive size or ttl use the defaults.
func NewCachedLedger(next Ledger, size int, ttl time.Duration) *CachedLedger {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedLedger{
		next: next,
		lru:  expirable.NewLRU[string, *cachedBalance](size, nil, ttl),
	}
}

func cacheKey(participant string, kind domain.TokenKind) string {
	return string(kind) + ":" + participant
}

// BalanceOf implements Reader. Errors are never cached.
func (c *CachedLedger) BalanceOf(ctx context.Context, participant string, kind domain.TokenKind) (int64, error) {
	key := cacheKey(participant, kind)
	if entry, ok := c.lru.Get(key); ok {
		if entry.Version == CacheSchemaVersion {
			logger.FromContext(ctx).Debug(LogMsgBalanceCacheHit, "participant", participant, "kind", kind)
			return entry.Balance, nil
		}
		c.lru.Remove(key)
	}

	balance, err := c.next.BalanceOf(ctx, participant, kind)
	if err != nil {
		return 0, err
	}
	c.lru.Add(key, &cachedBalance{Version: CacheSchemaVersion, Balance: balance, CachedAt: time.Now()})
	logger.FromContext(ctx).Debug(LogMsgBalanceFetched, "participant", participant, "kind", kind, "balance", balance)
	return balance, nil
}

// Credit implements Writer
func (c *CachedLedger) Credit(ctx context.Context, participant string, kind domain.TokenKind, amount int64) error {
	err := c.next.Credit(ctx, participant, kind, amount)
	c.Invalidate(participant, kind)
	if err == nil {
		logger.FromContext(ctx).Info(LogMsgLedgerCredited, "participant", participant, "kind", kind, "amount", amount)
	}
	return err
}

// Invalidate drops one cached balance
func (c *CachedLedger) Invalidate(participant string, kind domain.TokenKind) {
	c.lru.Remove(cacheKey(participant, kind))
}

// Len reports the number of cached balances
func (c *CachedLedger) Len() int {
	return c.lru.Len()
}
