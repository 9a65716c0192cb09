package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/logger"
	"github.com/osse101/PirotRaffle_Go/internal/raffle"
)

// RaffleHandler serves the public raffle API
type RaffleHandler struct {
	service raffle.Service
	now     func() time.Time
}

// NewRaffleHandler creates a new RaffleHandler
func NewRaffleHandler(service raffle.Service) *RaffleHandler {
	return &RaffleHandler{service: service, now: time.Now}
}

// PrizeView is a prize together with its per-participant contribution cap
type PrizeView struct {
	domain.Prize
	Cap int64 `json:"cap"`
}

func newPrizeView(p domain.Prize) PrizeView {
	return PrizeView{Prize: p, Cap: p.Cap()}
}

// StateResponse is the live view of the open cycle
type StateResponse struct {
	CycleID          string                     `json:"cycle_id"`
	CycleNumber      int64                      `json:"cycle_number"`
	State            domain.CycleState          `json:"state"`
	Prize            PrizeView                  `json:"prize"`
	PoolTotal        int64                      `json:"pool_total"`
	EntryCount       int                        `json:"entry_count"`
	Deadline         time.Time                  `json:"deadline"`
	SecondsRemaining int64                      `json:"seconds_remaining"`
	Entries          []domain.Entry             `json:"entries"`
	Chances          []domain.ParticipantChance `json:"chances"`
}

// HandleGetState returns the open cycle
// @Summary Current raffle state
// @Description Active prize, pool total, countdown, entries and per-participant win chances
// @Tags raffle
// @Produce json
// @Success 200 {object} StateResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/raffle/state [get]
func (h *RaffleHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	cycle := h.service.CurrentCycle(r.Context())
	if cycle == nil {
		respondError(w, http.StatusServiceUnavailable, CodeInternal, ErrMsgGenericServerError)
		return
	}

	remaining := int64(math.Ceil(cycle.Deadline.Sub(h.now()).Seconds()))
	if remaining < 0 {
		remaining = 0
	}
	entries := cycle.Entries
	if entries == nil {
		entries = []domain.Entry{}
	}
	// Derived from the same copy as entries so both describe one cycle
	chances := raffle.Chances(cycle)
	if chances == nil {
		chances = []domain.ParticipantChance{}
	}

	respondJSON(w, http.StatusOK, StateResponse{
		CycleID:          cycle.ID.String(),
		CycleNumber:      cycle.Number,
		State:            cycle.State,
		Prize:            newPrizeView(cycle.Prize),
		PoolTotal:        cycle.PoolTotal,
		EntryCount:       len(cycle.Entries),
		Deadline:         cycle.Deadline,
		SecondsRemaining: remaining,
		Entries:          entries,
		Chances:          chances,
	})
}

// EnterRequest is a contribution submission. Amount is accepted as a JSON
// number or a numeric string.
type EnterRequest struct {
	Participant string          `json:"participant" validate:"required,max=64,participant"`
	Amount      json.RawMessage `json:"amount" validate:"required" swaggertype:"string" example:"25"`
}

// EnterResponse confirms an accepted entry
type EnterResponse struct {
	Message string                   `json:"message"`
	Entry   *domain.Entry            `json:"entry"`
	Chance  domain.ParticipantChance `json:"chance"`
}

// HandleEnter commits a contribution to the open cycle
// @Summary Enter the raffle
// @Description Contribute PIROT to the current prize pool. Rejected when the amount is not a positive integer, the wallet balance is short, the 70% cap would be exceeded, the draw is running, or the balance check times out.
// @Tags raffle
// @Accept json
// @Produce json
// @Param request body EnterRequest true "Contribution"
// @Success 201 {object} EnterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Router /api/v1/raffle/enter [post]
func (h *RaffleHandler) HandleEnter(w http.ResponseWriter, r *http.Request) {
	var req EnterRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Enter raffle"); err != nil {
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondServiceError(w, r, LogMsgEnterRejected, err)
		return
	}

	entry, err := h.service.Enter(r.Context(), req.Participant, amount)
	if err != nil {
		respondServiceError(w, r, LogMsgEnterRejected, err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgEnterAccepted,
		"participant", entry.Participant, "amount", entry.Amount, "cycle_id", entry.CycleID)

	respondJSON(w, http.StatusCreated, EnterResponse{
		Message: MsgEntryAccepted,
		Entry:   entry,
		Chance:  h.service.Chance(r.Context(), entry.Participant),
	})
}

// parseAmount accepts 25 or "25". Anything that is not a base-10 integer is
// an invalid amount, including 2.5, 1e3 and "".
func parseAmount(raw json.RawMessage) (int64, error) {
	s := string(bytes.TrimSpace(raw))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var unquoted string
		if err := json.Unmarshal([]byte(s), &unquoted); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
		}
		s = unquoted
	}
	amount, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidAmount, s)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}
	return amount, nil
}

// HandleGetHistory returns past winners
// @Summary Winner history
// @Description Most recent winners first
// @Tags raffle
// @Produce json
// @Param limit query int false "Max records (default 20, max 100)"
// @Success 200 {array} domain.WinnerRecord
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/raffle/history [get]
func (h *RaffleHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, DefaultHistoryLimit, MaxHistoryLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidInput, ErrMsgInvalidLimit)
		return
	}
	history := h.service.History(r.Context(), limit)
	if history == nil {
		history = []domain.WinnerRecord{}
	}
	respondJSON(w, http.StatusOK, history)
}

// HandleGetChance returns one participant's aggregate win share
// @Summary Participant chance
// @Tags raffle
// @Produce json
// @Param participant query string true "Wallet address or handle"
// @Success 200 {object} domain.ParticipantChance
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/raffle/chance [get]
func (h *RaffleHandler) HandleGetChance(w http.ResponseWriter, r *http.Request) {
	participant, ok := GetQueryParam(r, w, QueryParamParticipant)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.service.Chance(r.Context(), participant))
}

// HandleGetPrizes lists the prize catalog
// @Summary Prize catalog
// @Tags raffle
// @Produce json
// @Success 200 {array} PrizeView
// @Router /api/v1/raffle/prizes [get]
func (h *RaffleHandler) HandleGetPrizes(w http.ResponseWriter, r *http.Request) {
	prizes := h.service.Prizes()
	views := make([]PrizeView, 0, len(prizes))
	for _, p := range prizes {
		views = append(views, newPrizeView(p))
	}
	respondJSON(w, http.StatusOK, views)
}
