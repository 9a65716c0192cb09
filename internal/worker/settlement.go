package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/event"
	"github.com/osse101/PirotRaffle_Go/internal/logger"
	"github.com/osse101/PirotRaffle_Go/internal/metrics"
	"github.com/osse101/PirotRaffle_Go/internal/raffle"
)

// SettlementConfig tunes prize crediting; zero values use the defaults
type SettlementConfig struct {
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
}

func (c SettlementConfig) withDefaults() SettlementConfig {
	if c.Timeout <= 0 {
		c.Timeout = DefaultSettlementTimeout
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultSettlementAttempts
	}
	if c.Backoff <= 0 {
		c.Backoff = DefaultSettlementBackoff
	}
	return c
}

// SettlementJob credits one prize to a winner, retrying transient failures
type SettlementJob struct {
	Winner  domain.WinnerRecord
	settler raffle.Settler
	bus     event.Bus
	cfg     SettlementConfig
}

// Process implements Job
func (j *SettlementJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx).With("cycle_id", j.Winner.CycleID, "participant", j.Winner.Participant)

	var lastErr error
	delay := j.cfg.Backoff
retry:
	for attempt := 1; attempt <= j.cfg.MaxAttempts; attempt++ {
		actx, cancel := context.WithTimeout(ctx, j.cfg.Timeout)
		lastErr = j.settler.Credit(actx, j.Winner.Participant, j.Winner.TokenKind, PrizeUnits)
		cancel()

		if lastErr == nil {
			metrics.Settlements.WithLabelValues(metrics.ResultSuccess).Inc()
			log.Info(LogMsgSettlementSucceeded, "prize", j.Winner.PrizeID, "attempt", attempt)
			if j.bus != nil {
				if err := j.bus.Publish(ctx, event.NewSettledEvent(j.Winner, PrizeUnits)); err != nil {
					log.Warn(LogMsgSettledPublishFailed, "error", err)
				}
			}
			return nil
		}

		if attempt == j.cfg.MaxAttempts {
			break
		}
		log.Warn(LogMsgSettlementRetrying, "attempt", attempt, "delay", delay, "error", lastErr)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			lastErr = ctx.Err()
			break retry
		}
		delay *= 2
	}

	metrics.Settlements.WithLabelValues(metrics.ResultFailure).Inc()
	log.Error(LogMsgSettlementGaveUp, "prize", j.Winner.PrizeID, "error", lastErr)
	return fmt.Errorf("%w: %s for cycle %s: %w", domain.ErrSettlementFailed, j.Winner.Participant, j.Winner.CycleID, lastErr)
}

// SettlementWorker turns drawn events into settlement jobs on the pool. The
// engine has already committed the winner by then, so a failed credit never
// rolls back the draw.
type SettlementWorker struct {
	pool    *Pool
	settler raffle.Settler
	bus     event.Bus
	cfg     SettlementConfig
}

// NewSettlementWorker creates a new SettlementWorker
func NewSettlementWorker(pool *Pool, settler raffle.Settler, bus event.Bus, cfg SettlementConfig) *SettlementWorker {
	return &SettlementWorker{
		pool:    pool,
		settler: settler,
		bus:     bus,
		cfg:     cfg.withDefaults(),
	}
}

// Subscribe subscribes the worker to drawn events
func (w *SettlementWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.RaffleCycleDrawn, w.handleCycleDrawn)
}

func (w *SettlementWorker) handleCycleDrawn(ctx context.Context, e event.Event) error {
	log := logger.FromContext(ctx)
	payload, err := event.DecodePayload[event.CycleDrawnPayloadV1](e.Payload)
	if err != nil {
		log.Warn(LogMsgDrawnPayloadBad, "error", err)
		return nil
	}

	job := w.NewJob(payload.Winner)
	if !w.pool.TryEnqueue(job) {
		metrics.Settlements.WithLabelValues(metrics.ResultFailure).Inc()
		log.Error(LogMsgSettlementNotQueued, "cycle_id", payload.Winner.CycleID, "participant", payload.Winner.Participant)
		return fmt.Errorf("%w: queue unavailable", domain.ErrSettlementFailed)
	}
	log.Info(LogMsgSettlementQueued, "cycle_id", payload.Winner.CycleID, "participant", payload.Winner.Participant)
	return nil
}

// NewJob builds the settlement job for a winner
func (w *SettlementWorker) NewJob(winner domain.WinnerRecord) *SettlementJob {
	return &SettlementJob{Winner: winner, settler: w.settler, bus: w.bus, cfg: w.cfg}
}
