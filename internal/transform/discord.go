package transform

import (
	"github.com/KartoffelChipss/bifrost/internal/discord"
	"github.com/KartoffelChipss/bifrost/internal/links"
)

const stickerRenderSize = 160

// NameSource is the local-cache lookup surface both platform clients
// expose for mention sanitization.
type NameSource interface {
	UserName(id string) (string, bool)
	RoleName(id string) (string, bool)
	ChannelName(id string) (string, bool)
}

// DiscordTransformer converts native Discord messages into the neutral
// webhook payload delivered to the Fluxer side.
type DiscordTransformer struct {
	names NameSource
}

func NewDiscordTransformer(names NameSource) *DiscordTransformer {
	return &DiscordTransformer{names: names}
}

func (t *DiscordTransformer) Transform(msg *discord.Message) WebhookMessage {
	content := SanitizeMentions(msg.Content, MentionResolver{
		User:    t.names.UserName,
		Role:    t.names.RoleName,
		Channel: t.names.ChannelName,
	})

	var attachments []Attachment

	for _, a := range msg.Attachments {
		if a.URL == "" {
			continue
		}

		name := a.Filename
		if name == "" {
			name = "attachment"
		}

		attachments = append(attachments, Attachment{URL: a.URL, Name: name, Spoiler: a.Spoiler()})
	}

	for _, s := range msg.Stickers {
		attachments = append(attachments, Attachment{
			URL:  DiscordStickerURL(s.ID, stickerRenderSize),
			Name: s.Name + "." + StickerExtension(s.FormatType),
		})
	}

	if poll := pollFromDiscord(msg.Poll); poll.Complete() {
		content = PollMessage(links.SideDiscord, poll)
	}

	var embeds []Embed

	for _, e := range msg.Embeds {
		if converted := embedFromDiscord(e); converted.Valid() {
			embeds = append(embeds, converted)
		}
	}

	return WebhookMessage{
		Content:     content,
		Username:    msg.Author.Username,
		AvatarURL:   msg.Author.AvatarURL(),
		Attachments: attachments,
		Embeds:      embeds,
	}
}

func pollFromDiscord(p *discord.Poll) *Poll {
	if p == nil {
		return nil
	}

	poll := &Poll{Question: p.Question.Text}

	if p.Expiry != nil {
		poll.ExpiresAt = *p.Expiry
	}

	for _, answer := range p.Answers {
		poll.Answers = append(poll.Answers, answer.PollMedia.Text)
	}

	return poll
}

func embedFromDiscord(e discord.Embed) Embed {
	embed := Embed{
		Title:       e.Title,
		Description: e.Description,
		URL:         e.URL,
		Color:       e.Color,
		Timestamp:   e.Timestamp,
	}

	for _, f := range e.Fields {
		embed.Fields = append(embed.Fields, EmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}

	if e.Footer != nil {
		embed.Footer = &EmbedFooter{Text: e.Footer.Text, IconURL: e.Footer.IconURL}
	}

	if e.Author != nil {
		embed.Author = &EmbedAuthor{Name: e.Author.Name, URL: e.Author.URL, IconURL: e.Author.IconURL}
	}

	if e.Image != nil {
		embed.Image = &EmbedMedia{URL: e.Image.URL, Width: e.Image.Width, Height: e.Image.Height}
	}

	if e.Thumbnail != nil {
		embed.Thumbnail = &EmbedMedia{URL: e.Thumbnail.URL, Width: e.Thumbnail.Width, Height: e.Thumbnail.Height}
	}

	return embed
}

// ToDiscord re-serializes the neutral embed into the Discord wire shape.
func (e Embed) ToDiscord() discord.Embed {
	embed := discord.Embed{
		Title:       e.Title,
		Description: e.Description,
		URL:         e.URL,
		Color:       e.Color,
		Timestamp:   e.Timestamp,
	}

	for _, f := range e.Fields {
		embed.Fields = append(embed.Fields, discord.EmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}

	if e.Footer != nil {
		embed.Footer = &discord.EmbedFooter{Text: e.Footer.Text, IconURL: e.Footer.IconURL}
	}

	if e.Author != nil {
		embed.Author = &discord.EmbedAuthor{Name: e.Author.Name, URL: e.Author.URL, IconURL: e.Author.IconURL}
	}

	if e.Image != nil {
		embed.Image = &discord.EmbedMedia{URL: e.Image.URL, Width: e.Image.Width, Height: e.Image.Height}
	}

	if e.Thumbnail != nil {
		embed.Thumbnail = &discord.EmbedMedia{URL: e.Thumbnail.URL, Width: e.Thumbnail.Width, Height: e.Thumbnail.Height}
	}

	return embed
}
