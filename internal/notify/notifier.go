// Package notify fans raffle events out to external channels. Deliveries run
// on the worker pool so a slow sink never holds up the engine's publish.
package notify

import (
	"context"

	"github.com/osse101/PirotRaffle_Go/internal/event"
	"github.com/osse101/PirotRaffle_Go/internal/logger"
	"github.com/osse101/PirotRaffle_Go/internal/worker"
)

// Notifier delivers an event to one external sink
type Notifier interface {
	Name() string
	// Accepts reports whether the sink wants this event type
	Accepts(t event.Type) bool
	Notify(ctx context.Context, evt event.Event) error
}

// Enqueuer is the part of worker.Pool the dispatcher needs
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Dispatcher subscribes to raffle events and queues one delivery job per
// interested notifier
type Dispatcher struct {
	queue     Enqueuer
	notifiers []Notifier
}

// NewDispatcher creates a dispatcher over the given notifiers; nil entries are skipped
func NewDispatcher(queue Enqueuer, notifiers ...Notifier) *Dispatcher {
	d := &Dispatcher{queue: queue}
	for _, n := range notifiers {
		if n != nil {
			d.notifiers = append(d.notifiers, n)
		}
	}
	return d
}

// Notifiers returns the attached sinks
func (d *Dispatcher) Notifiers() []Notifier {
	return d.notifiers
}

// Register subscribes the dispatcher to every raffle event
func (d *Dispatcher) Register(bus event.Bus) {
	for _, t := range []event.Type{
		event.RaffleEntryAccepted,
		event.RaffleCycleDrawn,
		event.RaffleCycleRolledOver,
		event.RaffleSettled,
	} {
		bus.Subscribe(t, d.handle)
	}
	for _, n := range d.notifiers {
		logger.FromContext(context.Background()).Info(LogMsgNotifierAttached, "notifier", n.Name())
	}
}

func (d *Dispatcher) handle(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)
	for _, n := range d.notifiers {
		if !n.Accepts(evt.Type) {
			continue
		}
		job := &deliveryJob{notifier: n, evt: evt}
		if !d.queue.TryEnqueue(job) {
			log.Warn(LogMsgNotifyDropped, "notifier", n.Name(), "event_type", evt.Type)
			continue
		}
		log.Debug(LogMsgNotifyQueued, "notifier", n.Name(), "event_type", evt.Type)
	}
	return nil
}

// deliveryJob runs one notifier for one event on the pool
type deliveryJob struct {
	notifier Notifier
	evt      event.Event
}

// Process implements worker.Job
func (j *deliveryJob) Process(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultNotifyTimeout)
	defer cancel()

	log := logger.FromContext(ctx)
	if err := j.notifier.Notify(ctx, j.evt); err != nil {
		log.Warn(LogMsgNotifyFailed, "notifier", j.notifier.Name(), "event_type", j.evt.Type, "error", err)
		return err
	}
	log.Debug(LogMsgNotifySent, "notifier", j.notifier.Name(), "event_type", j.evt.Type)
	return nil
}
