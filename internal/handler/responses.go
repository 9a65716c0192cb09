package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response. Code is a stable
// machine-readable tag the frontend keys its messages on.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteBufferFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// respondServiceError logs and maps a service error onto the response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, code, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName, "error", err)
	} else {
		log.Info(opName, "error", err, "code", code)
	}
	respondError(w, status, code, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgInvalidAmountError  = "Amount must be a positive whole number of PIROT"
	ErrMsgInsufficientBalance = "Not enough PIROT in your wallet"
	ErrMsgCapExceededError    = "That contribution would exceed the 70% cap for this prize"
	ErrMsgCycleNotOpenError   = "The draw is in progress. Try again in a moment"
	ErrMsgTimeoutError        = "Balance check timed out. Nothing was charged, try again"
	ErrMsgLedgerUnavailable   = "Wallet balances are unavailable right now"
	ErrMsgParticipantRequired = "Participant is required"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
)

// Machine-readable error codes
const (
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeCapExceeded         = "CAP_EXCEEDED"
	CodeCycleNotOpen        = "CYCLE_NOT_OPEN"
	CodeTimeout             = "TIMEOUT"
	CodeLedgerUnavailable   = "LEDGER_UNAVAILABLE"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeInternal            = "INTERNAL"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act upon
func mapServiceErrorToUserMessage(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, CodeInternal, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, CodeInvalidAmount, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity, CodeInsufficientBalance, ErrMsgInsufficientBalance
	case errors.Is(err, domain.ErrCapExceeded):
		return http.StatusUnprocessableEntity, CodeCapExceeded, ErrMsgCapExceededError
	case errors.Is(err, domain.ErrCycleNotOpen):
		return http.StatusConflict, CodeCycleNotOpen, ErrMsgCycleNotOpenError
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout, CodeTimeout, ErrMsgTimeoutError
	case errors.Is(err, domain.ErrLedgerUnavailable):
		return http.StatusServiceUnavailable, CodeLedgerUnavailable, ErrMsgLedgerUnavailable
	case errors.Is(err, domain.ErrParticipantRequired):
		return http.StatusBadRequest, CodeInvalidInput, ErrMsgParticipantRequired
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidInput, ErrMsgInvalidInputError
	}
	return http.StatusInternalServerError, CodeInternal, ErrMsgGenericServerError
}
