package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/osse101/PirotRaffle_Go/internal/event"
)

// RedisClient is the slice of *redis.Client used for publishing
type RedisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher mirrors every raffle event onto a Redis pub/sub channel so
// other services (bots, overlays) can follow the game
type RedisPublisher struct {
	client  RedisClient
	channel string
}

// NewRedisPublisher connects to addr lazily; the first publish dials
func NewRedisPublisher(addr, channel string) (*RedisPublisher, *redis.Client) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return NewRedisPublisherWithClient(client, channel), client
}

// NewRedisPublisherWithClient wraps an existing client
func NewRedisPublisherWithClient(client RedisClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Name implements Notifier
func (p *RedisPublisher) Name() string { return "redis" }

// Accepts implements Notifier
func (p *RedisPublisher) Accepts(event.Type) bool { return true }

// Notify implements Notifier
func (p *RedisPublisher) Notify(ctx context.Context, evt event.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextEncodeEvent, err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrContextRedisPublish, err)
	}
	return nil
}
