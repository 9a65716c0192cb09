package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/osse101/PirotRaffle_Go/internal/logger"
	"github.com/osse101/PirotRaffle_Go/internal/worker"
)

// Scheduler enqueues jobs onto the worker pool on cron schedules
type Scheduler struct {
	workerPool *worker.Pool
	cron       *cron.Cron
}

// New creates a new scheduler. Nothing runs until Start.
func New(pool *worker.Pool) *Scheduler {
	cl := cronLogger{log: slog.Default().With("component", "scheduler")}
	return &Scheduler{
		workerPool: pool,
		cron:       cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl))),
	}
}

// Schedule registers job under a cron spec ("@every 5m", "*/10 * * * *").
// A tick that finds the pool queue full is skipped rather than blocking.
func (s *Scheduler) Schedule(spec string, name string, job worker.Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		if !s.workerPool.TryEnqueue(job) {
			logger.FromContext(context.Background()).Warn(LogMsgTickSkipped, "job", name)
		}
	})
	if err != nil {
		return err
	}
	logger.FromContext(context.Background()).Info(LogMsgJobScheduled, "job", name, "spec", spec)
	return nil
}

// Start starts the cron loop
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the cron loop and waits for in-flight ticks
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// cronLogger routes cron's own logs through slog
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
