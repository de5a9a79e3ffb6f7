package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/KartoffelChipss/bifrost/internal/core/errors"
	"github.com/KartoffelChipss/bifrost/internal/links"
	"github.com/KartoffelChipss/bifrost/internal/transform"
)

const permissionDenied = "You need the `Manage Channels` permission to use this command."

func sideName(side links.Side) string {
	switch side {
	case links.SideDiscord:
		return "Discord"
	case links.SideFluxer:
		return "Fluxer"
	default:
		return string(side)
	}
}

func (r *Router) handleHelp(_ context.Context, req *Request) string {
	return helpMessage(r.prefix, req.Side)
}

func (r *Router) handlePing(_ context.Context, _ *Request) string {
	return "Pong!"
}

func (r *Router) handleLinkGuild(ctx context.Context, req *Request) string {
	if !req.CanManage {
		return permissionDenied
	}

	if len(req.Args) < 1 || strings.EqualFold(req.Args[0], "help") {
		return commandUsage(r.prefix, req.Command, req.Side)
	}

	other := req.Side.Other()
	otherGuildID := req.Args[0]

	if err := r.resolver.GuildExists(ctx, other, otherGuildID); err != nil {
		r.logger.Warn().Err(err).Str("guild_id", otherGuildID).Msg("guild lookup failed")

		return fmt.Sprintf("Could not find %s guild `%s`.", sideName(other), otherGuildID)
	}

	discordGuildID, fluxerGuildID := req.GuildID, otherGuildID
	if req.Side == links.SideFluxer {
		discordGuildID, fluxerGuildID = otherGuildID, req.GuildID
	}

	link, err := r.service.CreateGuildLink(ctx, discordGuildID, fluxerGuildID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyLinked) {
			return "One of the guilds is already linked."
		}

		r.logger.Error().Err(err).Msg("guild link creation failed")

		return "Failed to create guild link."
	}

	return fmt.Sprintf("Successfully linked this guild with %s guild `%s`. Link ID: `%s`", sideName(other), otherGuildID, link.ID)
}

func (r *Router) handleUnlinkGuild(ctx context.Context, req *Request) string {
	if !req.CanManage {
		return permissionDenied
	}

	if err := r.service.RemoveGuildLink(ctx, req.Side, req.GuildID); err != nil {
		if errors.Is(err, apperrors.ErrNotLinked) {
			return "This guild is not linked."
		}

		r.logger.Error().Err(err).Msg("guild unlink failed")

		return "Failed to unlink guild."
	}

	return "Successfully unlinked this guild. All channel links were removed as well."
}

func (r *Router) handleLinkChannel(ctx context.Context, req *Request) string {
	if !req.CanManage {
		return permissionDenied
	}

	if len(req.Args) < 1 || strings.EqualFold(req.Args[0], "help") {
		return commandUsage(r.prefix, req.Command, req.Side)
	}

	other := req.Side.Other()
	otherChannelID := req.Args[0]

	if err := r.resolver.ChannelExists(ctx, other, otherChannelID); err != nil {
		r.logger.Warn().Err(err).Str("channel_id", otherChannelID).Msg("channel lookup failed")

		return fmt.Sprintf("Could not find %s channel `%s`.", sideName(other), otherChannelID)
	}

	guildLink, err := r.service.GetGuildLink(ctx, req.Side, req.GuildID)
	if err != nil {
		r.logger.Error().Err(err).Msg("guild link lookup failed")

		return "Failed to look up the guild link."
	}

	if guildLink == nil {
		return fmt.Sprintf("This guild is not linked. Use `%s%s` first.", r.prefix, CmdLinkGuild)
	}

	ownWebhook, ok := r.provisionWebhook(ctx, req.Side, req.ChannelID)
	if !ok {
		return fmt.Sprintf("Failed to create the %s webhook.", sideName(req.Side))
	}

	otherWebhook, ok := r.provisionWebhook(ctx, other, otherChannelID)
	if !ok {
		return fmt.Sprintf("Failed to create the %s webhook.", sideName(other))
	}

	params := links.CreateChannelLinkParams{GuildLinkID: guildLink.ID}

	if req.Side == links.SideDiscord {
		params.DiscordChannelID, params.FluxerChannelID = req.ChannelID, otherChannelID
		params.DiscordWebhook, params.FluxerWebhook = ownWebhook, otherWebhook
	} else {
		params.DiscordChannelID, params.FluxerChannelID = otherChannelID, req.ChannelID
		params.DiscordWebhook, params.FluxerWebhook = otherWebhook, ownWebhook
	}

	link, err := r.service.CreateChannelLink(ctx, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyLinked) {
			return "One of the channels is already linked."
		}

		r.logger.Error().Err(err).Msg("channel link creation failed")

		return "Failed to create channel link."
	}

	return fmt.Sprintf("Successfully linked this channel to %s channel `%s`. Link ID: `%s`", sideName(other), otherChannelID, link.ShortID)
}

// provisionWebhook creates a delivery webhook. When partial links are
// allowed, a creation failure degrades the link to one direction
// instead of aborting it.
func (r *Router) provisionWebhook(ctx context.Context, side links.Side, channelID string) (links.Webhook, bool) {
	webhook, err := r.webhooks.Create(ctx, side, channelID, transform.RandomWebhookName())
	if err == nil {
		return webhook, true
	}

	if r.allowPartialLinks {
		r.logger.Warn().Err(err).Str("channel_id", channelID).Msg("webhook creation failed, creating partial link")

		return links.Webhook{}, true
	}

	r.logger.Error().Err(err).Str("channel_id", channelID).Msg("webhook creation failed")

	return links.Webhook{}, false
}

func (r *Router) handleListChannels(ctx context.Context, req *Request) string {
	channelLinks, err := r.service.ListChannelLinks(ctx, req.Side, req.GuildID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotLinked) {
			return "This guild is not linked."
		}

		r.logger.Error().Err(err).Msg("channel link listing failed")

		return "Failed to list channel links."
	}

	if len(channelLinks) == 0 {
		return "No channel links found for this guild."
	}

	var b strings.Builder

	b.WriteString("**Linked Channels:**\n")

	for _, link := range channelLinks {
		fmt.Fprintf(&b, "- <#%s> <-> `%s` (Link ID: `%s`)\n",
			link.ChannelID(req.Side), link.ChannelID(req.Side.Other()), link.ShortID)
	}

	return strings.TrimRight(b.String(), "\n")
}

func (r *Router) handleUnlinkChannel(ctx context.Context, req *Request) string {
	if !req.CanManage {
		return permissionDenied
	}

	if len(req.Args) < 1 || strings.EqualFold(req.Args[0], "help") {
		return commandUsage(r.prefix, req.Command, req.Side)
	}

	shortID := req.Args[0]

	link, err := r.service.RemoveChannelLink(ctx, req.Side, req.GuildID, shortID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotLinked):
			return "This guild is not linked."
		case errors.Is(err, apperrors.ErrLinkNotFound):
			return fmt.Sprintf("No channel link with ID `%s` was found.", shortID)
		}

		r.logger.Error().Err(err).Msg("channel unlink failed")

		return "Failed to unlink channel."
	}

	return fmt.Sprintf("Successfully removed channel link `%s` (<#%s>).", link.ShortID, link.ChannelID(req.Side))
}
