package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Event types for SSE
const (
	// EventTypeEntry is sent when a contribution is accepted into the pool
	EventTypeEntry = "raffle.entry"

	// EventTypeDrawn is sent when a winner has been picked
	EventTypeDrawn = "raffle.drawn"

	// EventTypeCycleOpened is sent when a fresh cycle opens with a new prize
	EventTypeCycleOpened = "raffle.cycle_opened"

	// EventTypeSettled is sent once a winner's prize is credited
	EventTypeSettled = "raffle.settled"

	// EventTypeConnected is the first frame written to a new client
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Query parameter selecting event types
const QueryParamTypes = "types"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgBroadcastDropped   = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgPayloadInvalid     = "Invalid raffle event payload for SSE"
	LogMsgSubscriberReady    = "SSE subscriber registered for event types"

	ErrMsgStreamingNotSupported = "streaming not supported"
)
