package ledger

import "time"

// ERC-1155 balanceOf(address,uint256) selector
const balanceOfSelector = "0x00fdd58e"

// DefaultRPCTimeout bounds a single JSON-RPC round trip when the caller sets no deadline
const DefaultRPCTimeout = 15 * time.Second

// DefaultCacheTTL and DefaultCacheSize size the balance cache
const (
	DefaultCacheTTL  = 10 * time.Second
	DefaultCacheSize = 1024
)

// DefaultTokenIDs maps token kinds to their ERC-1155 ids on the game contract
var DefaultTokenIDs = map[string]int64{
	"PIROT":       0,
	"LORO_ROJO":   1,
	"LORO_MORADO": 2,
}

const (
	ErrContextRPCRequest = "ledger rpc request failed"
	ErrContextRPCDecode  = "ledger rpc response invalid"
	ErrContextParseSeed  = "invalid ledger seed"
	ErrContextReadOnly   = "rpc ledger is read-only"
)

const (
	LogMsgBalanceCacheHit = "Balance served from cache"
	LogMsgBalanceFetched  = "Balance fetched from ledger"
	LogMsgRPCError        = "Ledger RPC returned an error"
	LogMsgLedgerCredited  = "Ledger credited"
	LogMsgLedgerSeeded    = "Demo ledger seeded"
)
