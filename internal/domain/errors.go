package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Contribution errors
	ErrMsgInvalidAmount        = "invalid amount"
	ErrMsgInsufficientBalance  = "insufficient balance"
	ErrMsgCapExceeded          = "contribution cap exceeded"
	ErrMsgParticipantRequired  = "participant is required"
	ErrMsgCycleNotOpen         = "raffle cycle is not open"
	ErrMsgTimeout              = "operation timed out"
	ErrMsgLedgerUnavailable    = "external ledger unavailable"
	ErrMsgPrizeCatalogEmpty    = "prize catalog is empty"
	ErrMsgPrizeNotFound        = "prize not found"
	ErrMsgSnapshotInvalid      = "invalid raffle snapshot"
	ErrMsgSettlementFailed     = "settlement failed"
	ErrMsgUnsupportedTokenKind = "unsupported token kind"

	// Database/System errors
	ErrMsgDatabaseError = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidAmount        = errors.New(ErrMsgInvalidAmount)
	ErrInsufficientBalance  = errors.New(ErrMsgInsufficientBalance)
	ErrCapExceeded          = errors.New(ErrMsgCapExceeded)
	ErrParticipantRequired  = errors.New(ErrMsgParticipantRequired)
	ErrCycleNotOpen         = errors.New(ErrMsgCycleNotOpen)
	ErrTimeout              = errors.New(ErrMsgTimeout)
	ErrLedgerUnavailable    = errors.New(ErrMsgLedgerUnavailable)
	ErrPrizeCatalogEmpty    = errors.New(ErrMsgPrizeCatalogEmpty)
	ErrPrizeNotFound        = errors.New(ErrMsgPrizeNotFound)
	ErrSnapshotInvalid      = errors.New(ErrMsgSnapshotInvalid)
	ErrSettlementFailed     = errors.New(ErrMsgSettlementFailed)
	ErrUnsupportedTokenKind = errors.New(ErrMsgUnsupportedTokenKind)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
	ErrInvalidInput  = errors.New(ErrMsgInvalidInput)
)
