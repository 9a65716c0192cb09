package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	// LogMsgWorkerJobFailed is logged when a worker fails to process a job
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerQueueFull = "Worker queue full, job dropped"
)

// ============================================================================
// Raffle Worker
// ============================================================================

// Log messages for raffle draw scheduling
const (
	LogMsgSchedulingDraw      = "Scheduling raffle draw"
	LogMsgExecutingDraw       = "Executing scheduled raffle draw"
	LogMsgDrawSkippedStale    = "Scheduled draw skipped, cycle already closed"
	LogMsgFailedToExecuteDraw = "Failed to execute raffle draw"
	LogMsgRolloverPayloadBad  = "Ignoring rollover event with unexpected payload"
)

// RaffleWorkerName labels raffle worker shutdown logs
const RaffleWorkerName = "raffle worker"

// Timer-driven worker shutdown
const (
	LogMsgWorkerStopping    = "Stopping worker"
	LogMsgTimersCancelled   = "Cancelled pending timers"
	LogMsgWorkerStopped     = "Worker stopped"
	LogMsgWorkerStopTimeout = "Worker stop timed out, in-flight work abandoned"
)

// ============================================================================
// Settlement
// ============================================================================

const (
	// DefaultSettlementTimeout bounds one credit attempt on the ledger
	DefaultSettlementTimeout = 30 * time.Second
	// DefaultSettlementAttempts is how often a credit is tried before giving up
	DefaultSettlementAttempts = 3
	// DefaultSettlementBackoff is the delay before the second attempt; it doubles after
	DefaultSettlementBackoff = 2 * time.Second
	// PrizeUnits is the number of prize tokens credited to a winner
	PrizeUnits = 1
)

// Log messages for settlement operations
const (
	LogMsgSettlementQueued     = "Settlement queued"
	LogMsgSettlementSucceeded  = "Prize settled"
	LogMsgSettlementRetrying   = "Settlement attempt failed, retrying"
	LogMsgSettlementGaveUp     = "Settlement failed after all attempts"
	LogMsgSettlementNotQueued  = "Settlement could not be queued"
	LogMsgDrawnPayloadBad      = "Ignoring drawn event with unexpected payload"
	LogMsgSettledPublishFailed = "Failed to publish settlement event"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
