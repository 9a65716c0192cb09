package notify

import "time"

// DefaultNotifyTimeout bounds one delivery to an external sink
const DefaultNotifyTimeout = 10 * time.Second

// Embed colours
const (
	ColorWinner   = 0xf1c40f // Gold
	ColorNoWinner = 0x95a5a6 // Grey
	ColorNewCycle = 0x3498db // Blue
)

const (
	DiscordUsername = "Pirot Raffle"
	FooterText      = "Pirot Raffle"
)

const (
	LogMsgNotifyQueued     = "Notification queued"
	LogMsgNotifyDropped    = "Notification dropped, worker queue full"
	LogMsgNotifyFailed     = "Notification delivery failed"
	LogMsgNotifySent       = "Notification delivered"
	LogMsgNotifierAttached = "Notifier attached"
)

const (
	ErrContextDiscordWebhook = "discord webhook failed"
	ErrContextRedisPublish   = "redis publish failed"
	ErrContextEncodeEvent    = "failed to encode event"
)
