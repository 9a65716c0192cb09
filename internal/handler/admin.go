package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/osse101/PirotRaffle_Go/internal/logger"
	"github.com/osse101/PirotRaffle_Go/internal/raffle"
)

// AdminRaffleHandler serves owner-only raffle operations
type AdminRaffleHandler struct {
	service raffle.Service
}

// NewAdminRaffleHandler creates a new AdminRaffleHandler
func NewAdminRaffleHandler(service raffle.Service) *AdminRaffleHandler {
	return &AdminRaffleHandler{service: service}
}

// DrawResponse reports the outcome of an early draw
type DrawResponse struct {
	Message string             `json:"message"`
	Result  *raffle.DrawResult `json:"result"`
}

// HandleDraw closes the open cycle immediately
// @Summary Execute draw now
// @Description Owner-only early execution of the current cycle's draw
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} DrawResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/raffle/admin/draw [post]
func (h *AdminRaffleHandler) HandleDraw(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Info(LogMsgAdminDraw)

	result, err := h.service.CloseCycle(r.Context(), uuid.Nil)
	if err != nil {
		respondServiceError(w, r, LogMsgAdminDrawFailed, err)
		return
	}

	msg := MsgDrawExecuted
	if result.Winner == nil {
		msg = MsgNoEntries
	}
	respondJSON(w, http.StatusOK, DrawResponse{Message: msg, Result: result})
}

// HandleSnapshot returns the serialized raffle state
// @Summary Raffle snapshot
// @Description Active cycle and complete winner history as a restorable document
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} raffle.Snapshot
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/raffle/admin/snapshot [get]
func (h *AdminRaffleHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Snapshot(r.Context())
	if err := snap.Validate(); err != nil {
		respondServiceError(w, r, ErrMsgSnapshotFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}
