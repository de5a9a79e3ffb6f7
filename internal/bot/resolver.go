package bot

import (
	"context"
	"fmt"

	apperrors "github.com/KartoffelChipss/bifrost/internal/core/errors"
	"github.com/KartoffelChipss/bifrost/internal/discord"
	"github.com/KartoffelChipss/bifrost/internal/fluxer"
	"github.com/KartoffelChipss/bifrost/internal/links"
)

type discordFetcher interface {
	FetchGuild(ctx context.Context, guildID string) (*discord.Guild, error)
	FetchChannel(ctx context.Context, channelID string) (*discord.Channel, error)
}

type fluxerFetcher interface {
	FetchGuild(ctx context.Context, guildID string) (*fluxer.Guild, error)
	FetchChannel(ctx context.Context, channelID string) (*fluxer.Channel, error)
}

// BridgeResolver answers existence checks against both platforms. A
// lookup miss or API failure surfaces as ErrPlatformFetchFailed.
type BridgeResolver struct {
	discord discordFetcher
	fluxer  fluxerFetcher
}

func NewBridgeResolver(discordClient discordFetcher, fluxerClient fluxerFetcher) *BridgeResolver {
	return &BridgeResolver{discord: discordClient, fluxer: fluxerClient}
}

func (r *BridgeResolver) GuildExists(ctx context.Context, side links.Side, guildID string) error {
	switch side {
	case links.SideDiscord:
		guild, err := r.discord.FetchGuild(ctx, guildID)
		if err != nil {
			return fmt.Errorf("fetch discord guild: %w: %w", apperrors.ErrPlatformFetchFailed, err)
		}

		if guild == nil {
			return fmt.Errorf("discord guild %s: %w", guildID, apperrors.ErrPlatformFetchFailed)
		}
	case links.SideFluxer:
		guild, err := r.fluxer.FetchGuild(ctx, guildID)
		if err != nil {
			return fmt.Errorf("fetch fluxer guild: %w: %w", apperrors.ErrPlatformFetchFailed, err)
		}

		if guild == nil {
			return fmt.Errorf("fluxer guild %s: %w", guildID, apperrors.ErrPlatformFetchFailed)
		}
	default:
		return fmt.Errorf("unknown side %q", side)
	}

	return nil
}

func (r *BridgeResolver) ChannelExists(ctx context.Context, side links.Side, channelID string) error {
	switch side {
	case links.SideDiscord:
		channel, err := r.discord.FetchChannel(ctx, channelID)
		if err != nil {
			return fmt.Errorf("fetch discord channel: %w: %w", apperrors.ErrPlatformFetchFailed, err)
		}

		if channel == nil {
			return fmt.Errorf("discord channel %s: %w", channelID, apperrors.ErrPlatformFetchFailed)
		}
	case links.SideFluxer:
		channel, err := r.fluxer.FetchChannel(ctx, channelID)
		if err != nil {
			return fmt.Errorf("fetch fluxer channel: %w: %w", apperrors.ErrPlatformFetchFailed, err)
		}

		if channel == nil {
			return fmt.Errorf("fluxer channel %s: %w", channelID, apperrors.ErrPlatformFetchFailed)
		}
	default:
		return fmt.Errorf("unknown side %q", side)
	}

	return nil
}
