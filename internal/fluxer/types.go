// Package fluxer holds the wire shapes and the narrow REST client for
// the Fluxer side of the bridge.
package fluxer

import "time"

type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Bot       bool   `json:"bot"`
}

type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Channel struct {
	ID      string `json:"id"`
	GuildID string `json:"guild_id"`
	Name    string `json:"name"`
	Type    int    `json:"type"`
}

// AttachmentFlagSpoiler marks an attachment hidden behind a spoiler
// overlay.
const AttachmentFlagSpoiler = 1 << 3

type Attachment struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Flags    int    `json:"flags"`
}

func (a Attachment) Spoiler() bool {
	return a.Flags&AttachmentFlagSpoiler != 0
}

type Sticker struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Animated bool   `json:"animated"`
}

type Poll struct {
	Question  string     `json:"question"`
	Answers   []string   `json:"answers"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Color       int          `json:"color,omitempty"`
	Timestamp   *time.Time   `json:"timestamp,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
	Image       *EmbedMedia  `json:"image,omitempty"`
	Thumbnail   *EmbedMedia  `json:"thumbnail,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedAuthor struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedMedia struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// PermissionManageChannels gates the link management commands.
const PermissionManageChannels = 1 << 4

// Member carries the author's guild-level permission bitset.
type Member struct {
	Permissions int64 `json:"permissions"`
}

type Message struct {
	ID          string       `json:"id"`
	ChannelID   string       `json:"channel_id"`
	GuildID     string       `json:"guild_id"`
	Content     string       `json:"content"`
	Author      User         `json:"author"`
	Member      *Member      `json:"member"`
	WebhookID   string       `json:"webhook_id"`
	Attachments []Attachment `json:"attachments"`
	Stickers    []Sticker    `json:"stickers"`
	Poll        *Poll        `json:"poll"`
	Embeds      []Embed      `json:"embeds"`
}

// CanManageChannels reports whether the author may manage links.
func (m *Message) CanManageChannels() bool {
	return m.Member != nil && m.Member.Permissions&PermissionManageChannels != 0
}

type Webhook struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}
