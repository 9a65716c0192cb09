package notify

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/event"
	"github.com/osse101/PirotRaffle_Go/internal/raffle"
	"github.com/osse101/PirotRaffle_Go/internal/worker"
)

// MockWebhookExecutor
type MockWebhookExecutor struct {
	mock.Mock
}

func (m *MockWebhookExecutor) WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(webhookID, token, wait, data)
	return nil, args.Error(0)
}

// MockRedisClient
type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	args := m.Called(ctx, channel, message)
	cmd := redis.NewIntCmd(ctx)
	if err := args.Error(0); err != nil {
		cmd.SetErr(err)
	} else {
		cmd.SetVal(1)
	}
	return cmd
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
	accepts map[event.Type]bool
}

func (m *MockNotifier) Name() string { return "mock" }

func (m *MockNotifier) Accepts(t event.Type) bool { return m.accepts[t] }

func (m *MockNotifier) Notify(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

type rejectingQueue struct{}

func (rejectingQueue) TryEnqueue(worker.Job) bool { return false }

func drawnEvent() event.Event {
	return event.NewCycleDrawnEvent(domain.WinnerRecord{
		CycleID:     uuid.New(),
		CycleNumber: 12,
		Participant: "0x1234567890abcdef1234567890abcdef12345678",
		PrizeID:     "loro-rojo",
		PrizeName:   "Loro Pirata Rojo",
		TokenKind:   domain.TokenLoroRojo,
		PoolTotal:   9,
		DrawnAt:     time.Now(),
	}, 3)
}

func rolledEvent(hadWinner bool) event.Event {
	next := &domain.Cycle{
		ID:       uuid.New(),
		Number:   13,
		Prize:    raffle.DefaultPrizes()[1],
		Deadline: time.Now().Add(30 * time.Minute),
	}
	return event.NewCycleRolledOverEvent(uuid.New(), next, hadWinner)
}

func TestDiscordNotifier_WinnerEmbed(t *testing.T) {
	client := new(MockWebhookExecutor)
	client.On("WebhookExecute", "hook", "secret", false, mock.MatchedBy(func(p *discordgo.WebhookParams) bool {
		if len(p.Embeds) != 1 {
			return false
		}
		e := p.Embeds[0]
		return e.Color == ColorWinner &&
			strings.Contains(e.Description, "0x1234...5678") &&
			strings.Contains(e.Description, "Loro Pirata Rojo") &&
			strings.Contains(e.Description, "#12")
	})).Return(nil)

	n := NewDiscordNotifierWithClient(client, "hook", "secret")
	require.NoError(t, n.Notify(context.Background(), drawnEvent()))
	client.AssertExpectations(t)
}

func TestDiscordNotifier_RolloverEmbed(t *testing.T) {
	client := new(MockWebhookExecutor)
	client.On("WebhookExecute", "hook", "secret", false, mock.MatchedBy(func(p *discordgo.WebhookParams) bool {
		e := p.Embeds[0]
		return e.Color == ColorNoWinner &&
			strings.Contains(e.Description, "Loro Pirata Morado") &&
			strings.Contains(e.Description, "Legendario") &&
			e.Fields[0].Value == "3 PIROT"
	})).Return(nil)

	n := NewDiscordNotifierWithClient(client, "hook", "secret")
	require.NoError(t, n.Notify(context.Background(), rolledEvent(false)))
	client.AssertExpectations(t)
}

func TestDiscordNotifier_AcceptsAndErrors(t *testing.T) {
	client := new(MockWebhookExecutor)
	client.On("WebhookExecute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("429"))
	n := NewDiscordNotifierWithClient(client, "hook", "secret")

	assert.False(t, n.Accepts(event.RaffleEntryAccepted))
	assert.True(t, n.Accepts(event.RaffleCycleDrawn))

	err := n.Notify(context.Background(), drawnEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrContextDiscordWebhook)

	// Unhandled types are a no-op
	assert.NoError(t, n.Notify(context.Background(), event.Event{Type: event.RaffleSettled}))
}

func TestRedisPublisher_PublishesJSON(t *testing.T) {
	client := new(MockRedisClient)
	client.On("Publish", mock.Anything, "raffle", mock.MatchedBy(func(msg interface{}) bool {
		data, ok := msg.([]byte)
		if !ok {
			return false
		}
		var decoded map[string]interface{}
		return json.Unmarshal(data, &decoded) == nil && decoded["type"] == string(event.RaffleCycleDrawn)
	})).Return(nil)

	p := NewRedisPublisherWithClient(client, "raffle")
	assert.True(t, p.Accepts(event.RaffleEntryAccepted))
	require.NoError(t, p.Notify(context.Background(), drawnEvent()))
	client.AssertExpectations(t)
}

func TestRedisPublisher_Error(t *testing.T) {
	client := new(MockRedisClient)
	client.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	err := NewRedisPublisherWithClient(client, "raffle").Notify(context.Background(), drawnEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrContextRedisPublish)
}

func TestDispatcher_QueuesInterestedNotifiers(t *testing.T) {
	pool := worker.NewPool(1, 8)
	pool.Start()
	defer pool.Stop()

	delivered := make(chan event.Type, 4)
	interested := &MockNotifier{accepts: map[event.Type]bool{event.RaffleCycleDrawn: true}}
	interested.On("Notify", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { delivered <- args.Get(1).(event.Event).Type }).
		Return(nil)
	bored := &MockNotifier{accepts: map[event.Type]bool{}}

	bus := event.NewMemoryBus()
	d := NewDispatcher(pool, interested, bored, nil)
	d.Register(bus)
	assert.Len(t, d.Notifiers(), 2)

	require.NoError(t, bus.Publish(context.Background(), drawnEvent()))
	require.NoError(t, bus.Publish(context.Background(), rolledEvent(true)))

	select {
	case got := <-delivered:
		assert.Equal(t, event.RaffleCycleDrawn, got)
	case <-time.After(time.Second):
		t.Fatal("notification not delivered")
	}
	bored.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestDispatcher_FullQueueNeverFailsPublish(t *testing.T) {
	n := &MockNotifier{accepts: map[event.Type]bool{event.RaffleCycleDrawn: true}}
	bus := event.NewMemoryBus()
	NewDispatcher(rejectingQueue{}, n).Register(bus)

	assert.NoError(t, bus.Publish(context.Background(), drawnEvent()))
	n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "0xabcd...7890", shortAddress("0xabcdef0000000000000000000000000000007890"))
	assert.Equal(t, "alice", shortAddress("alice"))
}
