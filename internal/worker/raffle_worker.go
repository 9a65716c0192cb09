package worker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/event"
	"github.com/osse101/PirotRaffle_Go/internal/logger"
	"github.com/osse101/PirotRaffle_Go/internal/raffle"
)

// RaffleWorker closes each cycle when its countdown expires. The countdown
// uses time.AfterFunc on the monotonic clock, so wall-clock jumps do not move
// a draw.
type RaffleWorker struct {
	timers  timerRegistry
	service raffle.Service
}

// NewRaffleWorker creates a new RaffleWorker
func NewRaffleWorker(service raffle.Service) *RaffleWorker {
	return &RaffleWorker{service: service, timers: newTimerRegistry()}
}

// Start schedules the draw of the cycle that is open right now
func (w *RaffleWorker) Start() {
	cycle := w.service.CurrentCycle(context.Background())
	if cycle != nil && cycle.State == domain.CycleStateOpen {
		w.scheduleDraw(cycle.ID, cycle.Deadline)
	}
}

// Subscribe subscribes the worker to rollover events so draws triggered
// elsewhere (admin, restore) keep the countdown chain going
func (w *RaffleWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.RaffleCycleRolledOver, w.handleRolledOver)
}

func (w *RaffleWorker) handleRolledOver(ctx context.Context, e event.Event) error {
	payload, err := event.DecodePayload[event.CycleRolledOverPayloadV1](e.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgRolloverPayloadBad, "error", err)
		return nil
	}
	if prev, err := uuid.Parse(payload.PreviousCycleID); err == nil {
		w.timers.disarm(prev)
	}
	next, err := uuid.Parse(payload.CycleID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgRolloverPayloadBad, "error", err)
		return nil
	}
	w.scheduleDraw(next, payload.Deadline)
	return nil
}

func (w *RaffleWorker) scheduleDraw(cycleID uuid.UUID, deadline time.Time) {
	if w.timers.closing() {
		return
	}
	duration := time.Until(deadline)

	log := logger.FromContext(context.Background())
	log.Info(LogMsgSchedulingDraw, "cycle_id", cycleID, "duration", duration)

	// Deadline already passed (restored from an old snapshot): draw now
	if duration <= 0 {
		w.executeDraw(cycleID)
		return
	}

	timer := time.AfterFunc(duration, func() {
		if w.timers.closing() {
			return
		}
		w.timers.forget(cycleID)
		w.executeDraw(cycleID)
	})
	w.timers.arm(cycleID, timer)
}

// executeDraw closes the cycle in a tracked goroutine
func (w *RaffleWorker) executeDraw(cycleID uuid.UUID) {
	w.timers.inFlight.Add(1)
	go func() {
		defer w.timers.inFlight.Done()

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		log := logger.FromContext(ctx)
		log.Info(LogMsgExecutingDraw, "cycle_id", cycleID)

		result, err := w.service.CloseCycle(ctx, cycleID)
		if err != nil {
			if errors.Is(err, domain.ErrCycleNotOpen) {
				log.Debug(LogMsgDrawSkippedStale, "cycle_id", cycleID, "error", err)
				return
			}
			log.Error(LogMsgFailedToExecuteDraw, "cycle_id", cycleID, "error", err)
			return
		}

		// The rollover event usually does this too; scheduling is idempotent per cycle
		if result.Next != nil {
			w.scheduleDraw(result.Next.ID, result.Next.Deadline)
		}
	}()
}

// Pending reports how many draws are waiting on a timer
func (w *RaffleWorker) Pending() int {
	return w.timers.count()
}

// Shutdown cancels pending draws and waits for any draw in progress
func (w *RaffleWorker) Shutdown(ctx context.Context) error {
	return w.timers.close(ctx, RaffleWorkerName)
}
