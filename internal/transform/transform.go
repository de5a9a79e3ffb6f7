// Package transform converts platform-native messages into the neutral
// payload shape delivered through webhooks. Transformers are pure
// functions of their input: mention IDs are resolved through caller
// supplied lookups against the client's local cache, never the network.
package transform

// Attachment is a single file reference carried across the bridge by URL.
type Attachment struct {
	URL     string
	Name    string
	Spoiler bool
}

// WebhookMessage is the platform-neutral payload accepted by the webhook
// delivery layer on either side.
type WebhookMessage struct {
	Content     string
	Username    string
	AvatarURL   string
	Attachments []Attachment
	Embeds      []Embed
}
