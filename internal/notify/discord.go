package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PirotRaffle_Go/internal/event"
	"github.com/osse101/PirotRaffle_Go/internal/raffle"
)

// WebhookExecutor is the slice of discordgo.Session used for webhooks
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier posts draw results and new cycles to a Discord channel webhook
type DiscordNotifier struct {
	client    WebhookExecutor
	webhookID string
	token     string
}

// NewDiscordNotifier creates a notifier using a token-less discordgo session;
// webhook calls authenticate with the webhook token alone.
func NewDiscordNotifier(webhookID, token string) (*DiscordNotifier, error) {
	session, err := discordgo.New("")
	if err != nil {
		return nil, err
	}
	return NewDiscordNotifierWithClient(session, webhookID, token), nil
}

// NewDiscordNotifierWithClient creates a notifier over an existing client
func NewDiscordNotifierWithClient(client WebhookExecutor, webhookID, token string) *DiscordNotifier {
	return &DiscordNotifier{client: client, webhookID: webhookID, token: token}
}

// Name implements Notifier
func (n *DiscordNotifier) Name() string { return "discord" }

// Accepts implements Notifier. Entries are too chatty for a channel.
func (n *DiscordNotifier) Accepts(t event.Type) bool {
	return t == event.RaffleCycleDrawn || t == event.RaffleCycleRolledOver
}

// Notify implements Notifier
func (n *DiscordNotifier) Notify(ctx context.Context, evt event.Event) error {
	embed, err := buildEmbed(evt)
	if err != nil || embed == nil {
		return err
	}
	_, err = n.client.WebhookExecute(n.webhookID, n.token, false, &discordgo.WebhookParams{
		Username: DiscordUsername,
		Embeds:   []*discordgo.MessageEmbed{embed},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextDiscordWebhook, err)
	}
	return nil
}

func buildEmbed(evt event.Event) (*discordgo.MessageEmbed, error) {
	switch evt.Type {
	case event.RaffleCycleDrawn:
		p, err := event.DecodePayload[event.CycleDrawnPayloadV1](evt.Payload)
		if err != nil {
			return nil, err
		}
		w := p.Winner
		return &discordgo.MessageEmbed{
			Title:       "🦜 ¡Tenemos ganador!",
			Description: fmt.Sprintf("**%s** gana el **%s** del sorteo #%d", shortAddress(w.Participant), w.PrizeName, w.CycleNumber),
			Color:       ColorWinner,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Bote", Value: fmt.Sprintf("%d PIROT", w.PoolTotal), Inline: true},
				{Name: "Participaciones", Value: fmt.Sprintf("%d", p.EntryCount), Inline: true},
			},
			Timestamp: w.DrawnAt.UTC().Format(time.RFC3339),
			Footer:    &discordgo.MessageEmbedFooter{Text: FooterText},
		}, nil

	case event.RaffleCycleRolledOver:
		p, err := event.DecodePayload[event.CycleRolledOverPayloadV1](evt.Payload)
		if err != nil {
			return nil, err
		}
		color := ColorNewCycle
		if !p.HadWinner {
			color = ColorNoWinner
		}
		return &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("Sorteo #%d abierto", p.CycleNumber),
			Description: fmt.Sprintf("Premio: **%s** (%s)", p.Prize.Name, raffle.DisplayRarity(p.Prize.Rarity)),
			Color:       color,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Aporte máximo", Value: fmt.Sprintf("%d PIROT", p.Prize.Cap()), Inline: true},
				{Name: "Cierra", Value: fmt.Sprintf("<t:%d:R>", p.Deadline.Unix()), Inline: true},
			},
			Footer: &discordgo.MessageEmbedFooter{Text: FooterText},
		}, nil
	}
	return nil, nil
}

// shortAddress renders 0x1234...abcd for wallet addresses
func shortAddress(s string) string {
	if len(s) == 42 && s[:2] == "0x" {
		return s[:6] + "..." + s[len(s)-4:]
	}
	return s
}
