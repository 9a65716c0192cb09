package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/PirotRaffle_Go/internal/config"
	"github.com/osse101/PirotRaffle_Go/internal/event"
)

// InitializeEventSystem returns the bus handlers subscribe on and the
// publisher the raffle engine writes to
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	retries, delay, dlPath := cfg.EventMaxRetries, cfg.EventRetryDelay, cfg.EventDeadLetterPath
	if retries == 0 {
		retries = EventDefaultMaxRetries
	}
	if delay == 0 {
		delay = EventDefaultRetryDelay
	}
	if dlPath == "" {
		dlPath = EventDefaultDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(dlPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	// Leftovers from earlier runs are only reported; replay is manual
	if pending, err := event.ReadDeadLetters(dlPath); err != nil {
		slog.Warn(LogMsgDeadLettersUnreadable, "path", dlPath, "error", err)
	} else if len(pending) > 0 {
		slog.Warn(LogMsgDeadLettersPending, "path", dlPath, "count", len(pending))
	}

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, retries, delay, dlPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized, "max_retries", retries, "retry_delay", delay, "deadletter_path", dlPath)
	return bus, publisher, nil
}
