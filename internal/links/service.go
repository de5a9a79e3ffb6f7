package links

import (
	"context"
	"fmt"

	apperrors "github.com/KartoffelChipss/bifrost/internal/core/errors"
)

// shortIDAttempts bounds regeneration when a generated short ID collides
// within the guild link.
const shortIDAttempts = 3

// Service is the domain authority over link lifecycle. It is the sole
// writer of link state; all lookups are side-agnostic so one relay
// implementation can serve both directions.
type Service struct {
	guilds   GuildLinkRepository
	channels ChannelLinkRepository
	messages MessageLinkRepository
}

// NewService creates a link service over the given repositories.
func NewService(guilds GuildLinkRepository, channels ChannelLinkRepository, messages MessageLinkRepository) *Service {
	return &Service{
		guilds:   guilds,
		channels: channels,
		messages: messages,
	}
}

// GetGuildLink returns the guild link for the guild on the given side, or
// (nil, nil) when the guild is not linked.
func (s *Service) GetGuildLink(ctx context.Context, side Side, guildID string) (*GuildLink, error) {
	link, err := s.guilds.GetGuildLinkByGuildID(ctx, side, guildID)
	if err != nil {
		return nil, fmt.Errorf("get guild link: %w", err)
	}

	return link, nil
}

// CreateGuildLink pairs a Discord guild with a Fluxer guild. Fails with
// ErrAlreadyLinked when either guild already has a link. A true race
// between two creates is resolved by the store's uniqueness constraint,
// surfaced as the same error to the loser.
func (s *Service) CreateGuildLink(ctx context.Context, discordGuildID, fluxerGuildID string) (*GuildLink, error) {
	existing, err := s.guilds.GetGuildLinkByGuildID(ctx, SideDiscord, discordGuildID)
	if err != nil {
		return nil, fmt.Errorf("check discord guild link: %w", err)
	}

	if existing != nil {
		return nil, fmt.Errorf("discord guild %s: %w", discordGuildID, apperrors.ErrAlreadyLinked)
	}

	existing, err = s.guilds.GetGuildLinkByGuildID(ctx, SideFluxer, fluxerGuildID)
	if err != nil {
		return nil, fmt.Errorf("check fluxer guild link: %w", err)
	}

	if existing != nil {
		return nil, fmt.Errorf("fluxer guild %s: %w", fluxerGuildID, apperrors.ErrAlreadyLinked)
	}

	link, err := s.guilds.CreateGuildLink(ctx, discordGuildID, fluxerGuildID)
	if err != nil {
		return nil, fmt.Errorf("create guild link: %w", err)
	}

	return link, nil
}

// RemoveGuildLink deletes the guild link for the guild on the given side
// together with all of its channel and message links. Fails with
// ErrNotLinked when the guild has no link.
//
// Children are removed through their repositories rather than relying on
// the store's cascade alone so the caching decorators can invalidate
// every affected key.
func (s *Service) RemoveGuildLink(ctx context.Context, side Side, guildID string) error {
	link, err := s.guilds.GetGuildLinkByGuildID(ctx, side, guildID)
	if err != nil {
		return fmt.Errorf("get guild link: %w", err)
	}

	if link == nil {
		return apperrors.ErrNotLinked
	}

	if err := s.messages.DeleteMessageLinksByGuildLink(ctx, link.ID); err != nil {
		return fmt.Errorf("delete message links: %w", err)
	}

	if err := s.channels.DeleteChannelLinksByGuildLink(ctx, link.ID); err != nil {
		return fmt.Errorf("delete channel links: %w", err)
	}

	if err := s.guilds.DeleteGuildLink(ctx, link.ID); err != nil {
		return fmt.Errorf("delete guild link: %w", err)
	}

	return nil
}

// CreateChannelLink pairs two channels under an existing guild link.
// Fails with ErrAlreadyLinked when either channel is already linked.
// A unique-within-guild short ID is generated for the new link.
func (s *Service) CreateChannelLink(ctx context.Context, params CreateChannelLinkParams) (*ChannelLink, error) {
	existing, err := s.channels.GetChannelLinkByChannelID(ctx, SideDiscord, params.DiscordChannelID)
	if err != nil {
		return nil, fmt.Errorf("check discord channel link: %w", err)
	}

	if existing != nil {
		return nil, fmt.Errorf("discord channel %s: %w", params.DiscordChannelID, apperrors.ErrAlreadyLinked)
	}

	existing, err = s.channels.GetChannelLinkByChannelID(ctx, SideFluxer, params.FluxerChannelID)
	if err != nil {
		return nil, fmt.Errorf("check fluxer channel link: %w", err)
	}

	if existing != nil {
		return nil, fmt.Errorf("fluxer channel %s: %w", params.FluxerChannelID, apperrors.ErrAlreadyLinked)
	}

	if params.ShortID == "" {
		params.ShortID, err = s.uniqueShortID(ctx, params.GuildLinkID)
		if err != nil {
			return nil, err
		}
	}

	link, err := s.channels.CreateChannelLink(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create channel link: %w", err)
	}

	return link, nil
}

func (s *Service) uniqueShortID(ctx context.Context, guildLinkID string) (string, error) {
	for i := 0; i < shortIDAttempts; i++ {
		shortID, err := NewShortID()
		if err != nil {
			return "", fmt.Errorf("generate short id: %w", err)
		}

		taken, err := s.channels.GetChannelLinkByShortID(ctx, guildLinkID, shortID)
		if err != nil {
			return "", fmt.Errorf("check short id: %w", err)
		}

		if taken == nil {
			return shortID, nil
		}
	}

	return "", fmt.Errorf("short id generation: %w", apperrors.ErrAlreadyLinked)
}

// RemoveChannelLink resolves the guild link for the guild on the given
// side, then the channel link by its short ID, and deletes it together
// with its message links. Fails with ErrNotLinked when the guild has no
// link and ErrLinkNotFound when the short ID does not match.
func (s *Service) RemoveChannelLink(ctx context.Context, side Side, guildID, shortID string) (*ChannelLink, error) {
	guildLink, err := s.guilds.GetGuildLinkByGuildID(ctx, side, guildID)
	if err != nil {
		return nil, fmt.Errorf("get guild link: %w", err)
	}

	if guildLink == nil {
		return nil, apperrors.ErrNotLinked
	}

	link, err := s.channels.GetChannelLinkByShortID(ctx, guildLink.ID, shortID)
	if err != nil {
		return nil, fmt.Errorf("get channel link: %w", err)
	}

	if link == nil {
		return nil, fmt.Errorf("channel link %s: %w", shortID, apperrors.ErrLinkNotFound)
	}

	if err := s.messages.DeleteMessageLinksByChannelLink(ctx, link.ID); err != nil {
		return nil, fmt.Errorf("delete message links: %w", err)
	}

	if err := s.channels.DeleteChannelLink(ctx, link.ID); err != nil {
		return nil, fmt.Errorf("delete channel link: %w", err)
	}

	return link, nil
}

// ListChannelLinks returns all channel links of the guild on the given
// side. Fails with ErrNotLinked when the guild has no link.
func (s *Service) ListChannelLinks(ctx context.Context, side Side, guildID string) ([]*ChannelLink, error) {
	guildLink, err := s.guilds.GetGuildLinkByGuildID(ctx, side, guildID)
	if err != nil {
		return nil, fmt.Errorf("get guild link: %w", err)
	}

	if guildLink == nil {
		return nil, apperrors.ErrNotLinked
	}

	all, err := s.channels.ListChannelLinksByGuildLink(ctx, guildLink.ID)
	if err != nil {
		return nil, fmt.Errorf("list channel links: %w", err)
	}

	return all, nil
}

// GetChannelLink returns the channel link for the channel on the given
// side, or (nil, nil) when the channel is not bridged.
func (s *Service) GetChannelLink(ctx context.Context, side Side, channelID string) (*ChannelLink, error) {
	link, err := s.channels.GetChannelLinkByChannelID(ctx, side, channelID)
	if err != nil {
		return nil, fmt.Errorf("get channel link: %w", err)
	}

	return link, nil
}

// GetChannelLinkByID returns a channel link by its primary key.
func (s *Service) GetChannelLinkByID(ctx context.Context, id string) (*ChannelLink, error) {
	link, err := s.channels.GetChannelLinkByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get channel link by id: %w", err)
	}

	return link, nil
}

// CreateMessageLink records the pairing of a relayed message's two
// platform IDs.
func (s *Service) CreateMessageLink(ctx context.Context, guildLinkID, channelLinkID, discordMessageID, fluxerMessageID string) (*MessageLink, error) {
	link, err := s.messages.CreateMessageLink(ctx, guildLinkID, channelLinkID, discordMessageID, fluxerMessageID)
	if err != nil {
		return nil, fmt.Errorf("create message link: %w", err)
	}

	return link, nil
}

// GetMessageLink returns the message link for the message on the given
// side, or (nil, nil) when the message was never relayed.
func (s *Service) GetMessageLink(ctx context.Context, side Side, messageID string) (*MessageLink, error) {
	link, err := s.messages.GetMessageLinkByMessageID(ctx, side, messageID)
	if err != nil {
		return nil, fmt.Errorf("get message link: %w", err)
	}

	return link, nil
}

// DeleteMessageLink removes a message link by its primary key.
func (s *Service) DeleteMessageLink(ctx context.Context, id string) error {
	if err := s.messages.DeleteMessageLink(ctx, id); err != nil {
		return fmt.Errorf("delete message link: %w", err)
	}

	return nil
}
