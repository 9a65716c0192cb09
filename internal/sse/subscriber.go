package sse

import (
	"context"

	"github.com/osse101/PirotRaffle_Go/internal/event"
	"github.com/osse101/PirotRaffle_Go/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers handlers for the raffle event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.RaffleEntryAccepted, s.handleEntryAccepted)
	s.bus.Subscribe(event.RaffleCycleDrawn, s.handleCycleDrawn)
	s.bus.Subscribe(event.RaffleCycleRolledOver, s.handleRolledOver)
	s.bus.Subscribe(event.RaffleSettled, s.handleSettled)

	logger.FromContext(context.Background()).Info(LogMsgSubscriberReady,
		"types", []string{EventTypeEntry, EventTypeDrawn, EventTypeCycleOpened, EventTypeSettled})
}

func (s *Subscriber) handleEntryAccepted(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.EntryAcceptedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPayloadInvalid, "event_type", evt.Type, "error", err)
		return nil
	}
	s.send(ctx, EventTypeEntry, EntryPayload{
		CycleNumber: p.CycleNumber,
		Participant: p.Participant,
		Amount:      p.Amount,
		PoolTotal:   p.PoolTotal,
		Share:       p.Share,
	})
	return nil
}

func (s *Subscriber) handleCycleDrawn(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.CycleDrawnPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPayloadInvalid, "event_type", evt.Type, "error", err)
		return nil
	}
	s.send(ctx, EventTypeDrawn, DrawnPayload{
		CycleNumber: p.Winner.CycleNumber,
		Winner:      p.Winner.Participant,
		PrizeID:     p.Winner.PrizeID,
		PrizeName:   p.Winner.PrizeName,
		PoolTotal:   p.Winner.PoolTotal,
		EntryCount:  p.EntryCount,
	})
	return nil
}

func (s *Subscriber) handleRolledOver(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.CycleRolledOverPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPayloadInvalid, "event_type", evt.Type, "error", err)
		return nil
	}
	s.send(ctx, EventTypeCycleOpened, CycleOpenedPayload{
		CycleID:     p.CycleID,
		CycleNumber: p.CycleNumber,
		PrizeID:     p.Prize.ID,
		PrizeName:   p.Prize.Name,
		Rarity:      string(p.Prize.Rarity),
		Cap:         p.Prize.Cap(),
		Deadline:    p.Deadline,
		HadWinner:   p.HadWinner,
	})
	return nil
}

func (s *Subscriber) handleSettled(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.SettledPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPayloadInvalid, "event_type", evt.Type, "error", err)
		return nil
	}
	s.send(ctx, EventTypeSettled, SettledPayload{
		Participant: p.Participant,
		TokenKind:   p.TokenKind,
		Amount:      p.Amount,
	})
	return nil
}

func (s *Subscriber) send(ctx context.Context, eventType string, payload interface{}) {
	if s.hub.Broadcast(eventType, payload) {
		logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", eventType)
	}
}
