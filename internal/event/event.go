package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Raffle event types
const (
	RaffleEntryAccepted   Type = "raffle.entry_accepted"
	RaffleCycleDrawn      Type = "raffle.cycle_drawn"
	RaffleCycleRolledOver Type = "raffle.cycle_rolled_over"
	RaffleSettled         Type = "raffle.settled"
)

// EntryAcceptedPayloadV1 is emitted after a contribution is committed
type EntryAcceptedPayloadV1 struct {
	EntryID     string `json:"entry_id"`
	CycleID     string `json:"cycle_id"`
	CycleNumber int64  `json:"cycle_number"`
	Participant string `json:"participant"`
	Amount      int64  `json:"amount"`
	PoolTotal   int64  `json:"pool_total"`
	Share       string `json:"share"` // participant aggregate share, fixed-point percent
	Timestamp   int64  `json:"timestamp"`
}

// CycleDrawnPayloadV1 carries the winner of a completed draw
type CycleDrawnPayloadV1 struct {
	Winner     domain.WinnerRecord `json:"winner"`
	EntryCount int                 `json:"entry_count"`
}

// CycleRolledOverPayloadV1 announces a freshly opened cycle
type CycleRolledOverPayloadV1 struct {
	PreviousCycleID string       `json:"previous_cycle_id"`
	CycleID         string       `json:"cycle_id"`
	CycleNumber     int64        `json:"cycle_number"`
	Prize           domain.Prize `json:"prize"`
	Deadline        time.Time    `json:"deadline"`
	HadWinner       bool         `json:"had_winner"`
}

// SettledPayloadV1 reports that a winner's prize was credited
type SettledPayloadV1 struct {
	CycleID     string `json:"cycle_id"`
	Participant string `json:"participant"`
	TokenKind   string `json:"token_kind"`
	Amount      int64  `json:"amount"`
}

// NewEntryAcceptedEvent creates a versioned entry accepted event
func NewEntryAcceptedEvent(entry domain.Entry, cycleNumber, poolTotal int64, share string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RaffleEntryAccepted,
		Payload: EntryAcceptedPayloadV1{
			EntryID:     entry.ID.String(),
			CycleID:     entry.CycleID.String(),
			CycleNumber: cycleNumber,
			Participant: entry.Participant,
			Amount:      entry.Amount,
			PoolTotal:   poolTotal,
			Share:       share,
			Timestamp:   entry.CreatedAt.Unix(),
		},
	}
}

// NewCycleDrawnEvent creates a versioned cycle drawn event
func NewCycleDrawnEvent(winner domain.WinnerRecord, entryCount int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RaffleCycleDrawn,
		Payload: CycleDrawnPayloadV1{Winner: winner, EntryCount: entryCount},
	}
}

// NewCycleRolledOverEvent creates a versioned rollover event
func NewCycleRolledOverEvent(previousID uuid.UUID, next *domain.Cycle, hadWinner bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RaffleCycleRolledOver,
		Payload: CycleRolledOverPayloadV1{
			PreviousCycleID: previousID.String(),
			CycleID:         next.ID.String(),
			CycleNumber:     next.Number,
			Prize:           next.Prize,
			Deadline:        next.Deadline,
			HadWinner:       hadWinner,
		},
	}
}

// NewSettledEvent creates a versioned settlement event
func NewSettledEvent(winner domain.WinnerRecord, amount int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RaffleSettled,
		Payload: SettledPayloadV1{
			CycleID:     winner.CycleID.String(),
			Participant: winner.Participant,
			TokenKind:   string(winner.TokenKind),
			Amount:      amount,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// PublishError lists the subscribers that failed to handle one event.
// Failed holds positions in the subscription order for the event type.
type PublishError struct {
	Type   Type
	Failed []int
	Errs   []error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf(LogMsgHandlerErrorFormat, len(e.Errs), e.Type, e.Errs)
}

func (e *PublishError) Unwrap() []error {
	return e.Errs
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	return b.deliver(ctx, event, nil)
}

// Redeliver runs only the subscribers at the given positions. Subscriptions
// are append-only, so positions from an earlier PublishError stay valid.
func (b *MemoryBus) Redeliver(ctx context.Context, event Event, targets []int) error {
	if len(targets) == 0 {
		return nil
	}
	return b.deliver(ctx, event, targets)
}

func (b *MemoryBus) deliver(ctx context.Context, event Event, targets []int) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	if targets == nil {
		targets = make([]int, len(handlers))
		for i := range handlers {
			targets[i] = i
		}
	}

	// Handlers run synchronously; slow sinks hand work to the worker pool.
	var perr *PublishError
	for _, i := range targets {
		if i < 0 || i >= len(handlers) {
			continue
		}
		if err := handlers[i](ctx, event); err != nil {
			if perr == nil {
				perr = &PublishError{Type: event.Type}
			}
			perr.Failed = append(perr.Failed, i)
			perr.Errs = append(perr.Errs, err)
		}
	}

	if perr != nil {
		return perr
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
