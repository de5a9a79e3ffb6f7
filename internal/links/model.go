// Package links owns the entity-link data model and the link lifecycle
// service. A GuildLink pairs one Discord guild with one Fluxer guild,
// a ChannelLink pairs one channel on each side and carries the webhook
// credentials used for delivery in both directions, and a MessageLink
// pairs the two platform message IDs of a relayed message so edits and
// deletions can be propagated.
//
// All mutation of link state flows through Service; repositories and
// their caching decorators hold no business logic beyond CRUD and
// uniqueness lookups.
package links

import "time"

// Side identifies one of the two bridged platforms.
type Side string

const (
	SideDiscord Side = "discord"
	SideFluxer  Side = "fluxer"
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideDiscord {
		return SideFluxer
	}

	return SideDiscord
}

// String implements fmt.Stringer.
func (s Side) String() string { return string(s) }

// Webhook holds the credentials of a per-channel webhook on one platform.
type Webhook struct {
	ID    string
	Token string
}

// Valid reports whether the credentials are usable for delivery. Partial
// channel links created without a webhook on one side store empty
// credentials.
func (w Webhook) Valid() bool { return w.ID != "" && w.Token != "" }

// GuildLink is a 1:1 pairing of a Discord guild and a Fluxer guild.
type GuildLink struct {
	ID             string
	DiscordGuildID string
	FluxerGuildID  string
	CreatedAt      time.Time
}

// GuildID returns the guild ID on the given side.
func (l *GuildLink) GuildID(side Side) string {
	if side == SideDiscord {
		return l.DiscordGuildID
	}

	return l.FluxerGuildID
}

// ChannelLink is a 1:1 pairing of a Discord channel and a Fluxer channel
// under a guild link. ShortID is a compact human-typable identifier,
// unique within the guild link, used by unlink commands.
type ChannelLink struct {
	ID               string
	GuildLinkID      string
	DiscordChannelID string
	FluxerChannelID  string
	DiscordWebhook   Webhook
	FluxerWebhook    Webhook
	ShortID          string
	CreatedAt        time.Time
}

// ChannelID returns the channel ID on the given side.
func (l *ChannelLink) ChannelID(side Side) string {
	if side == SideDiscord {
		return l.DiscordChannelID
	}

	return l.FluxerChannelID
}

// WebhookFor returns the webhook credentials used to post into the given
// side's channel.
func (l *ChannelLink) WebhookFor(side Side) Webhook {
	if side == SideDiscord {
		return l.DiscordWebhook
	}

	return l.FluxerWebhook
}

// MessageLink pairs the two platform-specific IDs of one relayed message.
type MessageLink struct {
	ID               string
	GuildLinkID      string
	ChannelLinkID    string
	DiscordMessageID string
	FluxerMessageID  string
	CreatedAt        time.Time
}

// MessageID returns the message ID on the given side.
func (l *MessageLink) MessageID(side Side) string {
	if side == SideDiscord {
		return l.DiscordMessageID
	}

	return l.FluxerMessageID
}
