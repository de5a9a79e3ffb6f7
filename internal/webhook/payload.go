package webhook

import (
	"github.com/KartoffelChipss/bifrost/internal/discord"
	"github.com/KartoffelChipss/bifrost/internal/fluxer"
	"github.com/KartoffelChipss/bifrost/internal/transform"
)

// discordPayload serializes the neutral message into the Discord webhook
// wire shape. Spoilers travel as a filename prefix on this platform.
func discordPayload(msg transform.WebhookMessage) discord.WebhookPayload {
	payload := discord.WebhookPayload{
		Content:   msg.Content,
		Username:  msg.Username,
		AvatarURL: msg.AvatarURL,
	}

	for _, a := range msg.Attachments {
		name := a.Name
		if a.Spoiler {
			name = "SPOILER_" + name
		}

		payload.Attachments = append(payload.Attachments, discord.WebhookAttachment{URL: a.URL, Filename: name})
	}

	for _, e := range msg.Embeds {
		payload.Embeds = append(payload.Embeds, e.ToDiscord())
	}

	return payload
}

// fluxerPayload serializes the neutral message into the Fluxer webhook
// wire shape. Spoilers travel as an attachment flag on this platform.
func fluxerPayload(msg transform.WebhookMessage) fluxer.WebhookPayload {
	payload := fluxer.WebhookPayload{
		Content:   msg.Content,
		Username:  msg.Username,
		AvatarURL: msg.AvatarURL,
	}

	for i, a := range msg.Attachments {
		payload.Files = append(payload.Files, fluxer.WebhookFile{URL: a.URL, Filename: a.Name})

		attachment := fluxer.WebhookAttachment{ID: i, Filename: a.Name}
		if a.Spoiler {
			attachment.Flags = fluxer.AttachmentFlagSpoiler
		}

		payload.Attachments = append(payload.Attachments, attachment)
	}

	for _, e := range msg.Embeds {
		payload.Embeds = append(payload.Embeds, e.ToFluxer())
	}

	return payload
}
