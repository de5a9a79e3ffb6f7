// Package discord holds the wire shapes and the narrow REST client for
// the Discord side of the bridge. Only the parts of the platform API the
// relay actually touches are modelled here.
package discord

import (
	"fmt"
	"strings"
	"time"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Bot      bool   `json:"bot"`
}

// AvatarURL returns the CDN URL for the user's avatar, or an empty string
// when none is set.
func (u User) AvatarURL() string {
	if u.Avatar == "" {
		return ""
	}

	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", u.ID, u.Avatar)
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

type Attachment struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

const spoilerPrefix = "SPOILER_"

// Spoiler attachments are marked by a filename prefix on this platform.
func (a Attachment) Spoiler() bool {
	return strings.HasPrefix(a.Filename, spoilerPrefix)
}

type Sticker struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FormatType int    `json:"format_type"`
}

type PollMedia struct {
	Text string `json:"text"`
}

type PollAnswer struct {
	AnswerID  int       `json:"answer_id"`
	PollMedia PollMedia `json:"poll_media"`
}

type Poll struct {
	Question PollMedia    `json:"question"`
	Answers  []PollAnswer `json:"answers"`
	Expiry   *time.Time   `json:"expiry"`
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

// Member carries the author's guild-level permission set. The API
// serializes the bitset as a decimal string.
type Member struct {
	Permissions int64 `json:"permissions,string"`
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
	Stickers    []Sticker    `json:"sticker_items"`
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
