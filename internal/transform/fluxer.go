package transform

import (
	"github.com/KartoffelChipss/bifrost/internal/fluxer"
	"github.com/KartoffelChipss/bifrost/internal/links"
)

// FluxerTransformer converts native Fluxer messages into the neutral
// webhook payload delivered to the Discord side. Because Discord markup
// re-triggers notifications, every @ in the sanitized content is broken
// with a zero-width space.
type FluxerTransformer struct {
	names NameSource
}

func NewFluxerTransformer(names NameSource) *FluxerTransformer {
	return &FluxerTransformer{names: names}
}

func (t *FluxerTransformer) Transform(msg *fluxer.Message) WebhookMessage {
	content := BreakMentions(SanitizeMentions(msg.Content, MentionResolver{
		User:    t.names.UserName,
		Role:    t.names.RoleName,
		Channel: t.names.ChannelName,
	}))

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
			URL:  FluxerStickerURL(s.ID, s.Animated, stickerRenderSize),
			Name: s.Name + ".webp",
		})
	}

	// Poll text replaces the content after mention breaking, so it gets
	// its own escaping to keep @everyone in a question from pinging.
	if poll := pollFromFluxer(msg.Poll); poll.Complete() {
		content = EscapeMentions(PollMessage(links.SideFluxer, poll))
	}

	var embeds []Embed

	for _, e := range msg.Embeds {
		if converted := embedFromFluxer(e); converted.Valid() {
			embeds = append(embeds, converted)
		}
	}

	return WebhookMessage{
		Content:     content,
		Username:    msg.Author.Username,
		AvatarURL:   msg.Author.AvatarURL,
		Attachments: attachments,
		Embeds:      embeds,
	}
}

func pollFromFluxer(p *fluxer.Poll) *Poll {
	if p == nil {
		return nil
	}

	poll := &Poll{Question: p.Question, Answers: p.Answers}

	if p.ExpiresAt != nil {
		poll.ExpiresAt = *p.ExpiresAt
	}

	return poll
}

func embedFromFluxer(e fluxer.Embed) Embed {
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

// ToFluxer re-serializes the neutral embed into the Fluxer wire shape.
func (e Embed) ToFluxer() fluxer.Embed {
	embed := fluxer.Embed{
		Title:       e.Title,
		Description: e.Description,
		URL:         e.URL,
		Color:       e.Color,
		Timestamp:   e.Timestamp,
	}

	for _, f := range e.Fields {
		embed.Fields = append(embed.Fields, fluxer.EmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}

	if e.Footer != nil {
		embed.Footer = &fluxer.EmbedFooter{Text: e.Footer.Text, IconURL: e.Footer.IconURL}
	}

	if e.Author != nil {
		embed.Author = &fluxer.EmbedAuthor{Name: e.Author.Name, URL: e.Author.URL, IconURL: e.Author.IconURL}
	}

	if e.Image != nil {
		embed.Image = &fluxer.EmbedMedia{URL: e.Image.URL, Width: e.Image.Width, Height: e.Image.Height}
	}

	if e.Thumbnail != nil {
		embed.Thumbnail = &fluxer.EmbedMedia{URL: e.Thumbnail.URL, Width: e.Thumbnail.Width, Height: e.Thumbnail.Height}
	}

	return embed
}
