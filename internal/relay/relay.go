// Package relay orchestrates the per-direction message flow: resolve the
// channel link, transform, deliver through the destination webhook and
// record the message pairing. It is state-free; all failures after link
// resolution are logged and absorbed so the event loop never dies.
package relay

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/KartoffelChipss/bifrost/internal/links"
	"github.com/KartoffelChipss/bifrost/internal/platform/observability"
	"github.com/KartoffelChipss/bifrost/internal/transform"
)

// LinkStore is the slice of the link service the relay consumes.
type LinkStore interface {
	GetChannelLink(ctx context.Context, side links.Side, channelID string) (*links.ChannelLink, error)
	GetChannelLinkByID(ctx context.Context, id string) (*links.ChannelLink, error)
	CreateMessageLink(ctx context.Context, guildLinkID, channelLinkID, discordMessageID, fluxerMessageID string) (*links.MessageLink, error)
	GetMessageLink(ctx context.Context, side links.Side, messageID string) (*links.MessageLink, error)
	DeleteMessageLink(ctx context.Context, id string) error
}

// WebhookSender is the slice of the webhook service the relay consumes.
type WebhookSender interface {
	Send(ctx context.Context, side links.Side, webhook links.Webhook, msg transform.WebhookMessage) (string, error)
	Edit(ctx context.Context, side links.Side, webhook links.Webhook, messageID string, msg transform.WebhookMessage) error
	Delete(ctx context.Context, side links.Side, webhook links.Webhook, messageID string) error
}

// Inbound is one platform event already lifted out of its native shape.
// WebhookID is set when the message was authored by a webhook.
type Inbound struct {
	MessageID string
	ChannelID string
	WebhookID string
	Message   transform.WebhookMessage
}

const (
	dropReasonOwnWebhook = "own_webhook"
	dropReasonNoWebhook  = "no_webhook"

	statusOK       = "ok"
	statusError    = "error"
	statusUnpaired = "unpaired"
)

// Relay forwards messages arriving on one platform into the linked
// channel on the other. One instance serves one direction.
type Relay struct {
	source    links.Side
	store     LinkStore
	webhooks  WebhookSender
	logger    zerolog.Logger
	direction string
}

func New(source links.Side, store LinkStore, webhooks WebhookSender, logger zerolog.Logger) *Relay {
	direction := source.String() + "_to_" + source.Other().String()

	return &Relay{
		source:    source,
		store:     store,
		webhooks:  webhooks,
		logger:    logger.With().Str("component", "relay").Str("direction", direction).Logger(),
		direction: direction,
	}
}

// HandleCreate relays one inbound message. Delivery is at most once:
// failures are logged, never queued or retried.
func (r *Relay) HandleCreate(ctx context.Context, in Inbound) {
	link, err := r.store.GetChannelLink(ctx, r.source, in.ChannelID)
	if err != nil {
		r.logger.Error().Err(err).Str("channel_id", in.ChannelID).Msg("channel link lookup failed")

		return
	}

	if link == nil {
		return
	}

	// A message authored by the link's own webhook is our own relayed
	// traffic coming back; relaying it again would loop forever.
	if in.WebhookID != "" && in.WebhookID == link.WebhookFor(r.source).ID {
		observability.MessagesDropped.WithLabelValues(r.source.String(), dropReasonOwnWebhook).Inc()

		return
	}

	dest := r.source.Other()

	webhook := link.WebhookFor(dest)
	if !webhook.Valid() {
		observability.MessagesDropped.WithLabelValues(r.source.String(), dropReasonNoWebhook).Inc()
		r.logger.Warn().Str("channel_link_id", link.ID).Msg("no destination webhook, message not relayed")

		return
	}

	destID, err := r.webhooks.Send(ctx, dest, webhook, in.Message)
	if err != nil {
		observability.MessagesRelayed.WithLabelValues(r.direction, statusError).Inc()
		r.logger.Error().Err(err).Str("message_id", in.MessageID).Msg("relay delivery failed")

		return
	}

	discordID, fluxerID := r.pairIDs(in.MessageID, destID)

	// Delivered but unpaired: edits and deletes will not propagate for
	// this message, so it is not counted as a healthy relay.
	if _, err := r.store.CreateMessageLink(ctx, link.GuildLinkID, link.ID, discordID, fluxerID); err != nil {
		observability.MessagesRelayed.WithLabelValues(r.direction, statusUnpaired).Inc()
		r.logger.Error().Err(err).Str("message_id", in.MessageID).Msg("message link creation failed")

		return
	}

	observability.MessagesRelayed.WithLabelValues(r.direction, statusOK).Inc()
}

// HandleUpdate propagates an edit to the counterpart message. Messages
// relayed before the bridge knew them (no message link) are ignored.
func (r *Relay) HandleUpdate(ctx context.Context, in Inbound) {
	messageLink, err := r.store.GetMessageLink(ctx, r.source, in.MessageID)
	if err != nil {
		r.logger.Error().Err(err).Str("message_id", in.MessageID).Msg("message link lookup failed")

		return
	}

	if messageLink == nil {
		return
	}

	link, err := r.store.GetChannelLinkByID(ctx, messageLink.ChannelLinkID)
	if err != nil || link == nil {
		r.logger.Error().Err(err).Str("channel_link_id", messageLink.ChannelLinkID).Msg("channel link lookup failed")

		return
	}

	// An update authored by the link's own webhook is the edit we just
	// propagated coming back; editing the counterpart again would
	// ping-pong forever.
	if in.WebhookID != "" && in.WebhookID == link.WebhookFor(r.source).ID {
		observability.MessagesDropped.WithLabelValues(r.source.String(), dropReasonOwnWebhook).Inc()

		return
	}

	dest := r.source.Other()

	webhook := link.WebhookFor(dest)
	if !webhook.Valid() {
		return
	}

	if err := r.webhooks.Edit(ctx, dest, webhook, messageLink.MessageID(dest), in.Message); err != nil {
		observability.EditsRelayed.WithLabelValues(r.direction, statusError).Inc()
		r.logger.Warn().Err(err).Str("message_id", in.MessageID).Msg("edit propagation failed")

		return
	}

	observability.EditsRelayed.WithLabelValues(r.direction, statusOK).Inc()
}

// HandleDelete removes the counterpart of a deleted message. The message
// link row goes first so a failed remote delete cannot leave a dangling
// pairing.
func (r *Relay) HandleDelete(ctx context.Context, messageID string) {
	messageLink, err := r.store.GetMessageLink(ctx, r.source, messageID)
	if err != nil {
		r.logger.Error().Err(err).Str("message_id", messageID).Msg("message link lookup failed")

		return
	}

	if messageLink == nil {
		return
	}

	if err := r.store.DeleteMessageLink(ctx, messageLink.ID); err != nil {
		r.logger.Error().Err(err).Str("message_link_id", messageLink.ID).Msg("message link deletion failed")

		return
	}

	link, err := r.store.GetChannelLinkByID(ctx, messageLink.ChannelLinkID)
	if err != nil || link == nil {
		r.logger.Error().Err(err).Str("channel_link_id", messageLink.ChannelLinkID).Msg("channel link lookup failed")

		return
	}

	dest := r.source.Other()

	webhook := link.WebhookFor(dest)
	if !webhook.Valid() {
		return
	}

	if err := r.webhooks.Delete(ctx, dest, webhook, messageLink.MessageID(dest)); err != nil {
		observability.DeletesRelayed.WithLabelValues(r.direction, statusError).Inc()
		r.logger.Warn().Err(err).Str("message_id", messageID).Msg("delete propagation failed")

		return
	}

	observability.DeletesRelayed.WithLabelValues(r.direction, statusOK).Inc()
}

func (r *Relay) pairIDs(sourceID, destID string) (discordID, fluxerID string) {
	if r.source == links.SideDiscord {
		return sourceID, destID
	}

	return destID, sourceID
}
