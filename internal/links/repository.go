package links

import "context"

// GuildLinkRepository persists guild links. Lookups return (nil, nil) on
// a miss; uniqueness violations on create surface as ErrAlreadyLinked.
type GuildLinkRepository interface {
	CreateGuildLink(ctx context.Context, discordGuildID, fluxerGuildID string) (*GuildLink, error)
	GetGuildLinkByID(ctx context.Context, id string) (*GuildLink, error)
	GetGuildLinkByGuildID(ctx context.Context, side Side, guildID string) (*GuildLink, error)
	DeleteGuildLink(ctx context.Context, id string) error
}

// CreateChannelLinkParams carries everything needed to create a channel
// link. Webhook credentials may be empty when partial links are allowed.
type CreateChannelLinkParams struct {
	GuildLinkID      string
	DiscordChannelID string
	FluxerChannelID  string
	DiscordWebhook   Webhook
	FluxerWebhook    Webhook
	ShortID          string
}

// ChannelLinkRepository persists channel links.
type ChannelLinkRepository interface {
	CreateChannelLink(ctx context.Context, params CreateChannelLinkParams) (*ChannelLink, error)
	GetChannelLinkByID(ctx context.Context, id string) (*ChannelLink, error)
	GetChannelLinkByChannelID(ctx context.Context, side Side, channelID string) (*ChannelLink, error)
	GetChannelLinkByShortID(ctx context.Context, guildLinkID, shortID string) (*ChannelLink, error)
	ListChannelLinksByGuildLink(ctx context.Context, guildLinkID string) ([]*ChannelLink, error)
	DeleteChannelLink(ctx context.Context, id string) error
	DeleteChannelLinksByGuildLink(ctx context.Context, guildLinkID string) error
}

// MessageLinkRepository persists message links. This is the highest-churn
// repository, one row per relayed message.
type MessageLinkRepository interface {
	CreateMessageLink(ctx context.Context, guildLinkID, channelLinkID, discordMessageID, fluxerMessageID string) (*MessageLink, error)
	GetMessageLinkByID(ctx context.Context, id string) (*MessageLink, error)
	GetMessageLinkByMessageID(ctx context.Context, side Side, messageID string) (*MessageLink, error)
	DeleteMessageLink(ctx context.Context, id string) error
	DeleteMessageLinksByChannelLink(ctx context.Context, channelLinkID string) error
	DeleteMessageLinksByGuildLink(ctx context.Context, guildLinkID string) error
}
