package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"

	"github.com/osse101/PirotRaffle_Go/internal/config"
	"github.com/osse101/PirotRaffle_Go/internal/event"
	"github.com/osse101/PirotRaffle_Go/internal/metrics"
	"github.com/osse101/PirotRaffle_Go/internal/notify"
	"github.com/osse101/PirotRaffle_Go/internal/sse"
	"github.com/osse101/PirotRaffle_Go/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus         event.Bus
	Pool             *worker.Pool
	Hub              *sse.Hub
	RaffleWorker     *worker.RaffleWorker
	SettlementWorker *worker.SettlementWorker
	Config           *config.Config
}

// EventHandlers reports what RegisterEventHandlers attached that needs closing
type EventHandlers struct {
	Dispatcher  *notify.Dispatcher
	RedisClient *redis.Client
}

// RegisterEventHandlers subscribes every raffle event consumer to the bus:
// the draw scheduler and settlement, metrics, SSE fan-out and the external
// notifiers (Discord webhook, Redis pub/sub) that are configured.
func RegisterEventHandlers(deps EventHandlerDependencies) (*EventHandlers, error) {
	deps.RaffleWorker.Subscribe(deps.EventBus)
	deps.SettlementWorker.Subscribe(deps.EventBus)
	slog.Info(LogMsgWorkersSubscribed)

	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
		slog.Info(LogMsgSSESubscriberRegistered)
	}

	out := &EventHandlers{}
	var notifiers []notify.Notifier
	cfg := deps.Config
	if cfg.DiscordWebhookID != "" && cfg.DiscordWebhookToken != "" {
		discord, err := notify.NewDiscordNotifier(cfg.DiscordWebhookID, cfg.DiscordWebhookToken)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDiscord, err)
		}
		notifiers = append(notifiers, discord)
	}
	if cfg.RedisAddr != "" {
		publisher, client := notify.NewRedisPublisher(cfg.RedisAddr, cfg.RedisChannel)
		out.RedisClient = client
		notifiers = append(notifiers, publisher)
	}

	out.Dispatcher = notify.NewDispatcher(deps.Pool, notifiers...)
	out.Dispatcher.Register(deps.EventBus)
	slog.Info(LogMsgNotifiersRegistered, "count", len(notifiers))

	return out, nil
}
