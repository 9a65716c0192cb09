package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for session log files
	LogFilePermission = 0644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "raffle_%s.log"

	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older session logs kept next to the new one
	LogFileRetentionCount = 9
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting Pirot raffle"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgDeadLettersPending             = "Undelivered raffle events found in dead-letter file"
	LogMsgDeadLettersUnreadable          = "Could not read dead-letter file"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Component Initialization
// =============================================================================

const (
	LogMsgDatabaseDisabled   = "Database disabled, raffle state is memory-only"
	LogMsgDatabaseConnected  = "Database connected"
	LogMsgMigrationsApplied  = "Database migrations applied"
	LogMsgLedgerInitialized  = "Ledger initialized"
	LogMsgCatalogLoaded      = "Prize catalog loaded"
	LogMsgRaffleRestored     = "Raffle restored from snapshot"
	LogMsgRaffleStarted      = "Raffle started with a fresh cycle"
	LogMsgSnapshotLoadFailed = "Stored snapshot unusable, starting fresh"

	ErrMsgFailedConnectDB     = "failed to connect to database"
	ErrMsgFailedMigrate       = "failed to apply migrations"
	ErrMsgFailedParseSeed     = "failed to parse ledger seed"
	ErrMsgFailedCreateLedger  = "failed to create ledger"
	ErrMsgFailedLoadCatalog   = "failed to load prize catalog"
	ErrMsgFailedStartRaffle   = "failed to start raffle"
	ErrMsgFailedLoadSnapshot  = "failed to load latest snapshot"
	ErrMsgFailedScheduleJob   = "failed to schedule job"
	ErrMsgFailedCreateDiscord = "failed to create discord notifier"
)

// Scheduled job names
const (
	JobNameSnapshot = "raffle_snapshot"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgNotifiersRegistered        = "Notifiers registered"
	LogMsgSSESubscriberRegistered    = "SSE subscriber registered"
	LogMsgWorkersSubscribed          = "Raffle workers subscribed"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgRedisCloseFailed           = "Redis client close failed"
	LogMsgFinalSnapshotFailed        = "Final snapshot failed"
	LogMsgFinalSnapshotSaved         = "Final snapshot saved"

	// Component names for shutdown logging
	ComponentNameRaffle       = "raffle"
	ComponentNameRaffleWorker = "raffle worker"
)

// Shutdown log message format (component name will be prepended)
const (
	LogMsgComponentShutdownFailed = " shutdown failed"
)
