package metrics

import (
	"context"

	"github.com/osse101/PirotRaffle_Go/internal/event"
	"github.com/osse101/PirotRaffle_Go/internal/logger"
)

// EventMetricsCollector subscribes to raffle events and records business metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all raffle events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.RaffleEntryAccepted,
		event.RaffleCycleDrawn,
		event.RaffleCycleRolledOver,
		event.RaffleSettled,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent updates metrics from an event
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.RaffleEntryAccepted:
		payload, err := event.DecodePayload[event.EntryAcceptedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
			return nil
		}
		EntriesAccepted.Inc()
		TokensContributed.Add(float64(payload.Amount))
		PoolTotal.Set(float64(payload.PoolTotal))

	case event.RaffleCycleDrawn:
		CyclesClosed.WithLabelValues(OutcomeWinner).Inc()

	case event.RaffleCycleRolledOver:
		payload, err := event.DecodePayload[event.CycleRolledOverPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
			return nil
		}
		if !payload.HadWinner {
			CyclesClosed.WithLabelValues(OutcomeNoEntries).Inc()
		}
		PoolTotal.Set(0)
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
