package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// CycleStateClosed is the stored state of a drawn cycle. The engine itself
// only ever holds OPEN and DRAWING cycles.
const CycleStateClosed = "CLOSED"

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginRaffleTransaction = "failed to begin raffle transaction"
)

// Error Messages - Raffle Operations
const (
	ErrMsgFailedToSaveCycle      = "failed to save raffle cycle"
	ErrMsgFailedToCloseCycle     = "failed to close raffle cycle"
	ErrMsgFailedToInsertEntry    = "failed to insert raffle entry"
	ErrMsgFailedToInsertWinner   = "failed to insert raffle winner"
	ErrMsgFailedToListWinners    = "failed to list raffle winners"
	ErrMsgFailedToListEntries    = "failed to list raffle entries"
	ErrMsgFailedToReadCycle      = "failed to read raffle cycle"
	ErrMsgFailedToSaveSnapshot   = "failed to save raffle snapshot"
	ErrMsgFailedToLoadSnapshot   = "failed to load raffle snapshot"
	ErrMsgFailedToPruneSnapshots = "failed to prune raffle snapshots"
)
