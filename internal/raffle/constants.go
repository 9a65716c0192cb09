package raffle

import "time"

// ============================================================================
// Cycle Timing
// ============================================================================

// DefaultCycleDuration is the countdown from cycle open to draw
const DefaultCycleDuration = 1800 * time.Second

// DefaultBalanceCheckTimeout bounds the external balance lookup
const DefaultBalanceCheckTimeout = 60 * time.Second

// DefaultPersistTimeout bounds each repository write made by the engine
const DefaultPersistTimeout = 5 * time.Second

// ============================================================================
// Probability
// ============================================================================

// ShareDisplayPlaces is the number of decimal places shares are rounded to
// when presented (4 places of a percentage)
const ShareDisplayPlaces = 4

// PercentScale converts a ratio into a percentage
const PercentScale = 100

// ============================================================================
// Snapshot
// ============================================================================

// SnapshotVersion is the schema version of serialized raffle state
const SnapshotVersion = "1.0"

// ============================================================================
// Error Contexts
// ============================================================================

const (
	ErrContextBalanceCheck   = "balance check"
	ErrContextPersistEntry   = "failed to persist entry"
	ErrContextPersistDraw    = "failed to persist draw"
	ErrContextPersistCycle   = "failed to persist cycle"
	ErrContextSelectPrize    = "failed to select prize"
	ErrContextDrawRandom     = "failed to draw random value"
	ErrContextLoadHistory    = "failed to load winner history"
	ErrContextLoadCycles     = "failed to read stored cycles"
	ErrContextLoadEntries    = "failed to load stored entries"
	ErrContextDecodeSnapshot = "failed to decode snapshot"
	ErrContextCatalogSchema  = "failed to compile catalog schema"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEntryAccepted        = "Raffle entry accepted"
	LogMsgEntryRejected        = "Raffle entry rejected"
	LogMsgCycleOpened          = "Raffle cycle opened"
	LogMsgCycleDrawn           = "Raffle cycle drawn"
	LogMsgCycleEmpty           = "Raffle cycle closed without entries"
	LogMsgDrawFailed           = "Raffle draw failed, rolling over without winner"
	LogMsgPersistFailed        = "Raffle persistence failed"
	LogMsgPrizeSelectFailed    = "Prize selection failed, keeping current prize"
	LogMsgEventBusNil          = "Event bus is nil, skipping publish"
	LogMsgPublishFailed        = "Failed to publish raffle event"
	LogMsgRestoredFromSnapshot = "Raffle state restored from snapshot"
	LogMsgSnapshotCycleDrawn   = "Snapshot cycle was already drawn, opening a fresh cycle"
	LogMsgEntriesRecovered     = "Recovered entries committed after the snapshot"
	LogMsgShutdownWaiting      = "Waiting for raffle background work to finish"
)
