package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PirotRaffle_Go/internal/logger"
)

// timerRegistry tracks one pending timer per cycle and the goroutines those
// timers start, so a worker can cancel and drain them on shutdown
type timerRegistry struct {
	mu       sync.Mutex
	timers   map[uuid.UUID]*time.Timer
	done     chan struct{}
	stopped  bool
	inFlight sync.WaitGroup
}

func newTimerRegistry() timerRegistry {
	return timerRegistry{
		timers: make(map[uuid.UUID]*time.Timer),
		done:   make(chan struct{}),
	}
}

// arm stores t for id, stopping any timer it replaces. After close it stops t
// and returns false.
func (r *timerRegistry) arm(id uuid.UUID, t *time.Timer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		t.Stop()
		return false
	}
	if old := r.timers[id]; old != nil && old != t {
		old.Stop()
	}
	r.timers[id] = t
	return true
}

// disarm stops and forgets the timer for id, if any
func (r *timerRegistry) disarm(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t := r.timers[id]; t != nil {
		t.Stop()
		delete(r.timers, id)
	}
}

// forget drops id after its timer has fired
func (r *timerRegistry) forget(id uuid.UUID) {
	r.mu.Lock()
	delete(r.timers, id)
	r.mu.Unlock()
}

func (r *timerRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

func (r *timerRegistry) closing() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// close cancels every pending timer then waits for in-flight work or ctx
func (r *timerRegistry) close(ctx context.Context, name string) error {
	log := logger.FromContext(ctx).With("worker", name)
	log.Info(LogMsgWorkerStopping)

	r.mu.Lock()
	if !r.stopped {
		r.stopped = true
		close(r.done)
	}
	cancelled := len(r.timers)
	for id, t := range r.timers {
		t.Stop()
		delete(r.timers, id)
	}
	r.mu.Unlock()
	if cancelled > 0 {
		log.Info(LogMsgTimersCancelled, "count", cancelled)
	}

	drained := make(chan struct{})
	go func() {
		r.inFlight.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		log.Info(LogMsgWorkerStopped)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgWorkerStopTimeout)
		return ctx.Err()
	}
}
