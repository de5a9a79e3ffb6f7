package discord

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// Gateway event names.
const (
	EventReady         = "READY"
	EventGuildCreate   = "GUILD_CREATE"
	EventMessageCreate = "MESSAGE_CREATE"
	EventMessageUpdate = "MESSAGE_UPDATE"
	EventMessageDelete = "MESSAGE_DELETE"
)

type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type guildCreate struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Roles    []Role    `json:"roles"`
	Channels []Channel `json:"channels"`
}

// MessageDelete is the payload of a deletion event; only IDs survive.
type MessageDelete struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	GuildID   string `json:"guild_id"`
}

type EventHandlers struct {
	OnReady         func(ctx context.Context)
	OnMessageCreate func(ctx context.Context, msg *Message)
	OnMessageUpdate func(ctx context.Context, msg *Message)
	OnMessageDelete func(ctx context.Context, del *MessageDelete)
}

// Dispatcher decodes raw gateway events into native shapes, keeps the
// client's name caches warm and forwards to the registered handlers.
type Dispatcher struct {
	client   *Client
	handlers EventHandlers
	logger   zerolog.Logger
}

func NewDispatcher(client *Client, handlers EventHandlers, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		client:   client,
		handlers: handlers,
		logger:   logger.With().Str("component", "discord_events").Logger(),
	}
}

func (d *Dispatcher) HandleEvent(ctx context.Context, event string, data json.RawMessage) {
	switch event {
	case EventReady:
		d.logger.Info().Msg("connected")

		if d.handlers.OnReady != nil {
			d.handlers.OnReady(ctx)
		}
	case EventGuildCreate:
		var guild guildCreate

		if err := json.Unmarshal(data, &guild); err != nil {
			d.logger.Warn().Err(err).Msg("bad guild create payload")

			return
		}

		for _, role := range guild.Roles {
			d.client.RememberRole(role.ID, role.Name)
		}

		for _, channel := range guild.Channels {
			d.client.RememberChannel(channel.ID, channel.Name)
		}
	case EventMessageCreate, EventMessageUpdate:
		var msg Message

		if err := json.Unmarshal(data, &msg); err != nil {
			d.logger.Warn().Err(err).Msg("bad message payload")

			return
		}

		if msg.Author.ID != "" {
			d.client.RememberUser(msg.Author.ID, msg.Author.Username)
		}

		if event == EventMessageCreate && d.handlers.OnMessageCreate != nil {
			d.handlers.OnMessageCreate(ctx, &msg)
		}

		if event == EventMessageUpdate && d.handlers.OnMessageUpdate != nil {
			d.handlers.OnMessageUpdate(ctx, &msg)
		}
	case EventMessageDelete:
		var del MessageDelete

		if err := json.Unmarshal(data, &del); err != nil {
			d.logger.Warn().Err(err).Msg("bad message delete payload")

			return
		}

		if d.handlers.OnMessageDelete != nil {
			d.handlers.OnMessageDelete(ctx, &del)
		}
	}
}
