// Package webhook is the delivery layer of the bridge. Relayed messages
// are always posted through channel webhooks, never through the bot's
// own identity, so the destination shows the original author's name and
// avatar and the bridge can recognize its own traffic by webhook ID.
package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/KartoffelChipss/bifrost/internal/core/errors"
	"github.com/KartoffelChipss/bifrost/internal/discord"
	"github.com/KartoffelChipss/bifrost/internal/fluxer"
	"github.com/KartoffelChipss/bifrost/internal/links"
	"github.com/KartoffelChipss/bifrost/internal/platform/observability"
	"github.com/KartoffelChipss/bifrost/internal/transform"
)

type DiscordAPI interface {
	CreateWebhook(ctx context.Context, channelID, name string) (*discord.Webhook, error)
	FetchWebhook(ctx context.Context, id, token string) (*discord.Webhook, error)
	ExecuteWebhook(ctx context.Context, id, token string, payload discord.WebhookPayload) (*discord.Message, error)
	EditWebhookMessage(ctx context.Context, id, token, messageID string, payload discord.WebhookPayload) error
	DeleteWebhookMessage(ctx context.Context, id, token, messageID string) error
}

type FluxerAPI interface {
	CreateWebhook(ctx context.Context, channelID, name string) (*fluxer.Webhook, error)
	FetchWebhook(ctx context.Context, id, token string) (*fluxer.Webhook, error)
	ExecuteWebhook(ctx context.Context, id, token string, payload fluxer.WebhookPayload) (*fluxer.Message, error)
	EditWebhookMessage(ctx context.Context, id, token, messageID string, payload fluxer.WebhookPayload) error
	DeleteWebhookMessage(ctx context.Context, id, token, messageID string) error
}

// Service routes webhook operations to the right platform API and maps
// platform failures onto the bridge error taxonomy.
type Service struct {
	discord DiscordAPI
	fluxer  FluxerAPI
	logger  zerolog.Logger
}

func NewService(discordAPI DiscordAPI, fluxerAPI FluxerAPI, logger zerolog.Logger) *Service {
	return &Service{
		discord: discordAPI,
		fluxer:  fluxerAPI,
		logger:  logger.With().Str("component", "webhook_service").Logger(),
	}
}

const (
	opCreate = "create"
	opFetch  = "fetch"
	opSend   = "send"
	opEdit   = "edit"
	opDelete = "delete"
)

func observe(side links.Side, operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	observability.WebhookRequests.WithLabelValues(side.String(), operation, status).Inc()
	observability.WebhookRequestDuration.WithLabelValues(side.String(), operation).Observe(time.Since(start).Seconds())
}

// Create provisions a new webhook in the given channel. Creation is not
// idempotent here; callers must not re-invoke it for an existing link.
func (s *Service) Create(ctx context.Context, side links.Side, channelID, name string) (links.Webhook, error) {
	start := time.Now()

	var (
		webhook links.Webhook
		err     error
	)

	switch side {
	case links.SideDiscord:
		var created *discord.Webhook

		created, err = s.discord.CreateWebhook(ctx, channelID, name)
		if err == nil {
			webhook = links.Webhook{ID: created.ID, Token: created.Token}
		}
	case links.SideFluxer:
		var created *fluxer.Webhook

		created, err = s.fluxer.CreateWebhook(ctx, channelID, name)
		if err == nil {
			webhook = links.Webhook{ID: created.ID, Token: created.Token}
		}
	default:
		err = fmt.Errorf("unknown side %q", side)
	}

	observe(side, opCreate, start, err)

	if err != nil {
		return links.Webhook{}, fmt.Errorf("create %s webhook: %w: %w", side, apperrors.ErrWebhookUnavailable, err)
	}

	return webhook, nil
}

// Get verifies the stored credentials still resolve to a live webhook.
func (s *Service) Get(ctx context.Context, side links.Side, webhook links.Webhook) (links.Webhook, error) {
	start := time.Now()

	var (
		id    string
		token string
		err   error
	)

	switch side {
	case links.SideDiscord:
		var fetched *discord.Webhook

		fetched, err = s.discord.FetchWebhook(ctx, webhook.ID, webhook.Token)
		if err == nil && fetched != nil {
			id, token = fetched.ID, fetched.Token
		}
	case links.SideFluxer:
		var fetched *fluxer.Webhook

		fetched, err = s.fluxer.FetchWebhook(ctx, webhook.ID, webhook.Token)
		if err == nil && fetched != nil {
			id, token = fetched.ID, fetched.Token
		}
	default:
		err = fmt.Errorf("unknown side %q", side)
	}

	observe(side, opFetch, start, err)

	if err != nil {
		return links.Webhook{}, fmt.Errorf("fetch %s webhook: %w: %w", side, apperrors.ErrWebhookUnavailable, err)
	}

	if id == "" {
		return links.Webhook{}, fmt.Errorf("fetch %s webhook %s: %w", side, webhook.ID, apperrors.ErrWebhookUnavailable)
	}

	return links.Webhook{ID: id, Token: token}, nil
}

// Send posts the payload through the destination webhook and returns the
// created message ID.
func (s *Service) Send(ctx context.Context, side links.Side, webhook links.Webhook, msg transform.WebhookMessage) (string, error) {
	start := time.Now()

	var (
		messageID string
		err       error
	)

	switch side {
	case links.SideDiscord:
		var sent *discord.Message

		sent, err = s.discord.ExecuteWebhook(ctx, webhook.ID, webhook.Token, discordPayload(msg))
		if err == nil {
			messageID = sent.ID
		}
	case links.SideFluxer:
		var sent *fluxer.Message

		sent, err = s.fluxer.ExecuteWebhook(ctx, webhook.ID, webhook.Token, fluxerPayload(msg))
		if err == nil {
			messageID = sent.ID
		}
	default:
		err = fmt.Errorf("unknown side %q", side)
	}

	observe(side, opSend, start, err)

	if err != nil {
		return "", fmt.Errorf("send via %s webhook: %w: %w", side, apperrors.ErrRelayDeliveryFailed, err)
	}

	return messageID, nil
}

// Edit rewrites a previously relayed message in place.
func (s *Service) Edit(ctx context.Context, side links.Side, webhook links.Webhook, messageID string, msg transform.WebhookMessage) error {
	start := time.Now()

	var err error

	switch side {
	case links.SideDiscord:
		err = s.discord.EditWebhookMessage(ctx, webhook.ID, webhook.Token, messageID, discordPayload(msg))
	case links.SideFluxer:
		err = s.fluxer.EditWebhookMessage(ctx, webhook.ID, webhook.Token, messageID, fluxerPayload(msg))
	default:
		err = fmt.Errorf("unknown side %q", side)
	}

	observe(side, opEdit, start, err)

	if err != nil {
		return fmt.Errorf("edit via %s webhook: %w: %w", side, apperrors.ErrRelayDeliveryFailed, err)
	}

	return nil
}

// Delete removes a previously relayed message.
func (s *Service) Delete(ctx context.Context, side links.Side, webhook links.Webhook, messageID string) error {
	start := time.Now()

	var err error

	switch side {
	case links.SideDiscord:
		err = s.discord.DeleteWebhookMessage(ctx, webhook.ID, webhook.Token, messageID)
	case links.SideFluxer:
		err = s.fluxer.DeleteWebhookMessage(ctx, webhook.ID, webhook.Token, messageID)
	default:
		err = fmt.Errorf("unknown side %q", side)
	}

	observe(side, opDelete, start, err)

	if err != nil {
		return fmt.Errorf("delete via %s webhook: %w: %w", side, apperrors.ErrRelayDeliveryFailed, err)
	}

	return nil
}
