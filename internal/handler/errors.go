package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"

	// Raffle operation error messages
	ErrMsgEnterFailed    = "Failed to enter raffle"
	ErrMsgDrawFailed     = "Failed to execute draw"
	ErrMsgSnapshotFailed = "Failed to build snapshot"
)

// Success messages for API responses
const (
	MsgEntryAccepted = "Entry accepted"
	MsgDrawExecuted  = "Draw executed"
	MsgNoEntries     = "No entries this cycle; prize rotated"
)

// Log messages
const (
	LogMsgEnterRejected     = "Raffle entry rejected"
	LogMsgEnterAccepted     = "Raffle entry accepted"
	LogMsgAdminDraw         = "Admin triggered early draw"
	LogMsgAdminDrawFailed   = "Admin draw failed"
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteBufferFailed = "Failed to write response buffer"
)

// Query parameters and limits
const (
	QueryParamParticipant = "participant"
	QueryParamLimit       = "limit"

	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100

	ReadinessTimeoutSeconds = 2
)
