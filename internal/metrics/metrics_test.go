package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/event"
)

func TestEventMetricsCollector_EntryAccepted(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	entriesBefore := testutil.ToFloat64(EntriesAccepted)
	tokensBefore := testutil.ToFloat64(TokensContributed)
	publishedBefore := testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.RaffleEntryAccepted)))

	entry := domain.Entry{ID: uuid.New(), CycleID: uuid.New(), Participant: "alice", Amount: 3, CreatedAt: time.Now()}
	require.NoError(t, bus.Publish(context.Background(), event.NewEntryAcceptedEvent(entry, 1, 9, "33.33")))

	assert.Equal(t, entriesBefore+1, testutil.ToFloat64(EntriesAccepted))
	assert.Equal(t, tokensBefore+3, testutil.ToFloat64(TokensContributed))
	assert.Equal(t, float64(9), testutil.ToFloat64(PoolTotal))
	assert.Equal(t, publishedBefore+1, testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.RaffleEntryAccepted))))
}

func TestEventMetricsCollector_CycleOutcomes(t *testing.T) {
	collector := NewEventMetricsCollector()
	ctx := context.Background()
	next := &domain.Cycle{ID: uuid.New(), Number: 2, Deadline: time.Now().Add(time.Hour)}

	winnersBefore := testutil.ToFloat64(CyclesClosed.WithLabelValues(OutcomeWinner))
	emptyBefore := testutil.ToFloat64(CyclesClosed.WithLabelValues(OutcomeNoEntries))

	require.NoError(t, collector.HandleEvent(ctx, event.NewCycleDrawnEvent(domain.WinnerRecord{Participant: "bob"}, 2)))
	require.NoError(t, collector.HandleEvent(ctx, event.NewCycleRolledOverEvent(uuid.New(), next, true)))
	assert.Equal(t, winnersBefore+1, testutil.ToFloat64(CyclesClosed.WithLabelValues(OutcomeWinner)))
	assert.Equal(t, emptyBefore, testutil.ToFloat64(CyclesClosed.WithLabelValues(OutcomeNoEntries)))
	assert.Equal(t, float64(0), testutil.ToFloat64(PoolTotal))

	require.NoError(t, collector.HandleEvent(ctx, event.NewCycleRolledOverEvent(uuid.New(), next, false)))
	assert.Equal(t, emptyBefore+1, testutil.ToFloat64(CyclesClosed.WithLabelValues(OutcomeNoEntries)))
}

func TestEventMetricsCollector_BadPayloadIsIgnored(t *testing.T) {
	before := testutil.ToFloat64(EntriesAccepted)

	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{
		Type:    event.RaffleEntryAccepted,
		Payload: "not a payload",
	})

	require.NoError(t, err)
	assert.Equal(t, before, testutil.ToFloat64(EntriesAccepted))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/v1/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/things/{id}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/things/"+id, nil))
	}

	assert.Equal(t, before+3, testutil.ToFloat64(counter))
	assert.Equal(t, float64(0), testutil.ToFloat64(HTTPRequestsInFlight))
}
