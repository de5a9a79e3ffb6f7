package app

import (
	"context"

	"github.com/KartoffelChipss/bifrost/internal/bot"
	"github.com/KartoffelChipss/bifrost/internal/discord"
	"github.com/KartoffelChipss/bifrost/internal/fluxer"
	"github.com/KartoffelChipss/bifrost/internal/links"
	"github.com/KartoffelChipss/bifrost/internal/relay"
)

// discordDispatcher builds the event pipeline for the Discord gateway:
// commands first, everything else through the relay.
func (a *App) discordDispatcher() *discord.Dispatcher {
	return discord.NewDispatcher(a.discordClient, discord.EventHandlers{
		OnMessageCreate: func(ctx context.Context, msg *discord.Message) {
			if msg.WebhookID == "" {
				req := &bot.Request{
					Side:      links.SideDiscord,
					GuildID:   msg.GuildID,
					ChannelID: msg.ChannelID,
					AuthorID:  msg.Author.ID,
					CanManage: msg.CanManageChannels(),
				}

				if reply, handled := a.discordRouter.Dispatch(ctx, msg.Content, req); handled {
					if _, err := a.discordClient.CreateMessage(ctx, msg.ChannelID, reply); err != nil {
						a.logger.Warn().Err(err).Str("channel_id", msg.ChannelID).Msg("command reply failed")
					}

					return
				}
			}

			a.discordRelay.HandleCreate(ctx, relay.Inbound{
				MessageID: msg.ID,
				ChannelID: msg.ChannelID,
				WebhookID: msg.WebhookID,
				Message:   a.discordTransformer.Transform(msg),
			})
		},
		OnMessageUpdate: func(ctx context.Context, msg *discord.Message) {
			a.discordRelay.HandleUpdate(ctx, relay.Inbound{
				MessageID: msg.ID,
				ChannelID: msg.ChannelID,
				WebhookID: msg.WebhookID,
				Message:   a.discordTransformer.Transform(msg),
			})
		},
		OnMessageDelete: func(ctx context.Context, del *discord.MessageDelete) {
			a.discordRelay.HandleDelete(ctx, del.ID)
		},
	}, *a.logger)
}

func (a *App) fluxerDispatcher() *fluxer.Dispatcher {
	return fluxer.NewDispatcher(a.fluxerClient, fluxer.EventHandlers{
		OnMessageCreate: func(ctx context.Context, msg *fluxer.Message) {
			if msg.WebhookID == "" {
				req := &bot.Request{
					Side:      links.SideFluxer,
					GuildID:   msg.GuildID,
					ChannelID: msg.ChannelID,
					AuthorID:  msg.Author.ID,
					CanManage: msg.CanManageChannels(),
				}

				if reply, handled := a.fluxerRouter.Dispatch(ctx, msg.Content, req); handled {
					if _, err := a.fluxerClient.CreateMessage(ctx, msg.ChannelID, reply); err != nil {
						a.logger.Warn().Err(err).Str("channel_id", msg.ChannelID).Msg("command reply failed")
					}

					return
				}
			}

			a.fluxerRelay.HandleCreate(ctx, relay.Inbound{
				MessageID: msg.ID,
				ChannelID: msg.ChannelID,
				WebhookID: msg.WebhookID,
				Message:   a.fluxerTransformer.Transform(msg),
			})
		},
		OnMessageUpdate: func(ctx context.Context, msg *fluxer.Message) {
			a.fluxerRelay.HandleUpdate(ctx, relay.Inbound{
				MessageID: msg.ID,
				ChannelID: msg.ChannelID,
				WebhookID: msg.WebhookID,
				Message:   a.fluxerTransformer.Transform(msg),
			})
		},
		OnMessageDelete: func(ctx context.Context, del *fluxer.MessageDelete) {
			a.fluxerRelay.HandleDelete(ctx, del.ID)
		},
	}, *a.logger)
}
