package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/PirotRaffle_Go/internal/logger"
)

type retryEntry struct {
	event   Event
	attempt int
	lastErr error
	// targets narrows a retry to the subscribers that failed; nil means all
	targets []int
}

// Redeliverer is implemented by buses that can re-run a subset of subscribers
type Redeliverer interface {
	Redeliver(ctx context.Context, event Event, targets []int) error
}

// failedTargets extracts the failing subscriber positions from a publish error
func failedTargets(err error) []int {
	var perr *PublishError
	if errors.As(err, &perr) {
		return perr.Failed
	}
	return nil
}

// ResilientPublisher wraps a Bus with an async retry queue and a dead-letter file.
// It satisfies Bus so services can publish through it transparently.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	if maxRetries <= 0 {
		maxRetries = RetryMaxAttempts
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	rp.wg.Add(1)
	go rp.retryWorker()

	return rp, nil
}

// Publish implements Bus. Failures are retried in the background, never surfaced.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe delegates to the wrapped bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

// PublishWithRetry publishes immediately and queues a retry on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err)

	p.enqueue(retryEntry{event: event, attempt: 1, lastErr: err, targets: failedTargets(err)})
}

// deliver re-runs only the failed subscribers when the bus supports it
func (p *ResilientPublisher) deliver(ctx context.Context, entry *retryEntry) error {
	var err error
	if r, ok := p.bus.(Redeliverer); ok && entry.targets != nil {
		err = r.Redeliver(ctx, entry.event, entry.targets)
	} else {
		err = p.bus.Publish(ctx, entry.event)
	}
	if err != nil {
		entry.lastErr = err
		if targets := failedTargets(err); targets != nil {
			entry.targets = targets
		}
	}
	return err
}

func (p *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case p.retryQueue <- entry:
	default:
		logger.FromContext(context.Background()).Error(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		p.writeDeadLetter(entry)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.shutdown:
			p.drain()
			return
		case entry := <-p.retryQueue:
			p.retry(entry)
		}
	}
}

func (p *ResilientPublisher) retry(entry retryEntry) {
	timer := time.NewTimer(CalculateRetryDelay(p.retryDelay, entry.attempt))
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-p.shutdown:
		// Last chance before the worker drains and exits
	}

	log := logger.FromContext(context.Background())
	err := p.deliver(context.Background(), &entry)
	if err == nil {
		log.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		return
	}

	if entry.attempt >= p.maxRetries {
		log.Error(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempt+1)
		p.writeDeadLetter(entry)
		return
	}

	log.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)
	entry.attempt++

	select {
	case <-p.shutdown:
		p.writeDeadLetter(entry)
	default:
		p.enqueue(entry)
	}
}

func (p *ResilientPublisher) drain() {
	for {
		select {
		case entry := <-p.retryQueue:
			if err := p.deliver(context.Background(), &entry); err != nil {
				logger.FromContext(context.Background()).Warn(LogMsgEventDroppedShutdown, "event_type", entry.event.Type)
				p.writeDeadLetter(entry)
			}
		default:
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if p.deadLetter == nil {
		return
	}
	if err := p.deadLetter.Write(entry.event, entry.attempt, entry.lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops the retry worker after draining pending retries
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.closeOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	if p.deadLetter != nil {
		return p.deadLetter.Close()
	}
	return nil
}
