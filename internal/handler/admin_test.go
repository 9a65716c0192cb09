package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/raffle"
	"github.com/osse101/PirotRaffle_Go/mocks"
)

func TestHandleAdminDraw(t *testing.T) {
	closed := &domain.Cycle{ID: uuid.New(), Number: 4, Prize: testPrize}
	next := &domain.Cycle{ID: uuid.New(), Number: 5, Prize: raffle.DefaultPrizes()[1]}

	tests := []struct {
		name           string
		result         *raffle.DrawResult
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Winner",
			result: &raffle.DrawResult{
				Closed: closed,
				Winner: &domain.WinnerRecord{CycleID: closed.ID, CycleNumber: 4, Participant: "alice"},
				Next:   next,
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgDrawExecuted,
		},
		{
			name:           "No Entries",
			result:         &raffle.DrawResult{Closed: closed, Next: next},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgNoEntries,
		},
		{
			name:           "Draw Already Running",
			err:            domain.ErrCycleNotOpen,
			expectedStatus: http.StatusConflict,
			expectedBody:   CodeCycleNotOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockRaffleService(t)
			svc.On("CloseCycle", mock.Anything, uuid.Nil).Return(tt.result, tt.err)

			rec := httptest.NewRecorder()
			NewAdminRaffleHandler(svc).HandleDraw(rec, httptest.NewRequest(http.MethodPost, "/admin/draw", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleAdminSnapshot(t *testing.T) {
	t.Run("Valid Snapshot", func(t *testing.T) {
		snap := &raffle.Snapshot{
			Version: raffle.SnapshotVersion,
			TakenAt: time.Now().UTC(),
			Cycle: &domain.Cycle{
				ID: uuid.New(), Number: 2, State: domain.CycleStateOpen, Prize: testPrize, PoolTotal: 3,
				Entries: []domain.Entry{{ID: uuid.New(), Participant: "alice", Amount: 3}},
			},
			History: []domain.WinnerRecord{{CycleNumber: 1, Participant: "bob"}},
		}
		svc := mocks.NewMockRaffleService(t)
		svc.On("Snapshot", mock.Anything).Return(snap)

		rec := httptest.NewRecorder()
		NewAdminRaffleHandler(svc).HandleSnapshot(rec, httptest.NewRequest(http.MethodGet, "/admin/snapshot", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		restored, err := raffle.UnmarshalSnapshot(rec.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, int64(3), restored.Cycle.PoolTotal)
		assert.Len(t, restored.History, 1)
	})

	t.Run("Inconsistent Snapshot", func(t *testing.T) {
		svc := mocks.NewMockRaffleService(t)
		svc.On("Snapshot", mock.Anything).Return(&raffle.Snapshot{Version: raffle.SnapshotVersion})

		rec := httptest.NewRecorder()
		NewAdminRaffleHandler(svc).HandleSnapshot(rec, httptest.NewRequest(http.MethodGet, "/admin/snapshot", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, CodeInternal, resp.Code)
	})
}
