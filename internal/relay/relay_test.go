package relay

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KartoffelChipss/bifrost/internal/links"
	"github.com/KartoffelChipss/bifrost/internal/platform/observability"
	"github.com/KartoffelChipss/bifrost/internal/transform"
)

type fakeStore struct {
	channelLinks []*links.ChannelLink
	messageLinks map[string]*links.MessageLink

	createErr    error
	createdPairs [][2]string
	deletedLinks []string
}

func newFakeStore(channelLinks ...*links.ChannelLink) *fakeStore {
	return &fakeStore{
		channelLinks: channelLinks,
		messageLinks: make(map[string]*links.MessageLink),
	}
}

func (f *fakeStore) GetChannelLink(_ context.Context, side links.Side, channelID string) (*links.ChannelLink, error) {
	for _, link := range f.channelLinks {
		if link.ChannelID(side) == channelID {
			return link, nil
		}
	}

	return nil, nil
}

func (f *fakeStore) GetChannelLinkByID(_ context.Context, id string) (*links.ChannelLink, error) {
	for _, link := range f.channelLinks {
		if link.ID == id {
			return link, nil
		}
	}

	return nil, nil
}

func (f *fakeStore) CreateMessageLink(_ context.Context, guildLinkID, channelLinkID, discordMessageID, fluxerMessageID string) (*links.MessageLink, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	link := &links.MessageLink{
		ID:               "ml-" + discordMessageID,
		GuildLinkID:      guildLinkID,
		ChannelLinkID:    channelLinkID,
		DiscordMessageID: discordMessageID,
		FluxerMessageID:  fluxerMessageID,
	}

	f.messageLinks[link.ID] = link
	f.createdPairs = append(f.createdPairs, [2]string{discordMessageID, fluxerMessageID})

	return link, nil
}

func (f *fakeStore) GetMessageLink(_ context.Context, side links.Side, messageID string) (*links.MessageLink, error) {
	for _, link := range f.messageLinks {
		if link.MessageID(side) == messageID {
			return link, nil
		}
	}

	return nil, nil
}

func (f *fakeStore) DeleteMessageLink(_ context.Context, id string) error {
	delete(f.messageLinks, id)
	f.deletedLinks = append(f.deletedLinks, id)

	return nil
}

type sentMessage struct {
	side    links.Side
	webhook links.Webhook
	msg     transform.WebhookMessage
}

type fakeSender struct {
	nextID  string
	sendErr error

	sent    []sentMessage
	edited  []string
	deleted []string
}

func (f *fakeSender) Send(_ context.Context, side links.Side, webhook links.Webhook, msg transform.WebhookMessage) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}

	f.sent = append(f.sent, sentMessage{side: side, webhook: webhook, msg: msg})

	return f.nextID, nil
}

func (f *fakeSender) Edit(_ context.Context, _ links.Side, _ links.Webhook, messageID string, _ transform.WebhookMessage) error {
	f.edited = append(f.edited, messageID)

	return nil
}

func (f *fakeSender) Delete(_ context.Context, _ links.Side, _ links.Webhook, messageID string) error {
	f.deleted = append(f.deleted, messageID)

	return nil
}

func testChannelLink() *links.ChannelLink {
	return &links.ChannelLink{
		ID:               "cl-1",
		GuildLinkID:      "gl-1",
		DiscordChannelID: "dch-1",
		FluxerChannelID:  "fch-1",
		DiscordWebhook:   links.Webhook{ID: "dwh-1", Token: "dtok"},
		FluxerWebhook:    links.Webhook{ID: "fwh-1", Token: "ftok"},
		ShortID:          "abc123",
	}
}

func TestHandleCreateRelaysAndRecordsLink(t *testing.T) {
	store := newFakeStore(testChannelLink())
	sender := &fakeSender{nextID: "fmsg-1"}
	r := New(links.SideDiscord, store, sender, zerolog.Nop())

	r.HandleCreate(context.Background(), Inbound{
		MessageID: "dmsg-1",
		ChannelID: "dch-1",
		Message: transform.WebhookMessage{
			Content:     "hi",
			Attachments: []transform.Attachment{{URL: "https://cdn.example/f.png", Name: "f.png"}},
		},
	})

	require.Len(t, sender.sent, 1)
	assert.Equal(t, links.SideFluxer, sender.sent[0].side)
	assert.Equal(t, links.Webhook{ID: "fwh-1", Token: "ftok"}, sender.sent[0].webhook)
	assert.Equal(t, "hi", sender.sent[0].msg.Content)

	require.Len(t, store.createdPairs, 1)
	assert.Equal(t, [2]string{"dmsg-1", "fmsg-1"}, store.createdPairs[0])
}

func TestHandleCreatePairsIDsForFluxerSource(t *testing.T) {
	store := newFakeStore(testChannelLink())
	sender := &fakeSender{nextID: "dmsg-9"}
	r := New(links.SideFluxer, store, sender, zerolog.Nop())

	r.HandleCreate(context.Background(), Inbound{
		MessageID: "fmsg-9",
		ChannelID: "fch-1",
		Message:   transform.WebhookMessage{Content: "hi"},
	})

	require.Len(t, store.createdPairs, 1)
	assert.Equal(t, [2]string{"dmsg-9", "fmsg-9"}, store.createdPairs[0])
}

func TestHandleCreateDropsOwnWebhookTraffic(t *testing.T) {
	store := newFakeStore(testChannelLink())
	sender := &fakeSender{nextID: "never"}
	r := New(links.SideDiscord, store, sender, zerolog.Nop())

	r.HandleCreate(context.Background(), Inbound{
		MessageID: "dmsg-2",
		ChannelID: "dch-1",
		WebhookID: "dwh-1",
		Message:   transform.WebhookMessage{Content: "echo"},
	})

	assert.Empty(t, sender.sent)
	assert.Empty(t, store.createdPairs)
}

func TestHandleCreateForeignWebhookStillRelayed(t *testing.T) {
	store := newFakeStore(testChannelLink())
	sender := &fakeSender{nextID: "fmsg-3"}
	r := New(links.SideDiscord, store, sender, zerolog.Nop())

	r.HandleCreate(context.Background(), Inbound{
		MessageID: "dmsg-3",
		ChannelID: "dch-1",
		WebhookID: "some-other-webhook",
		Message:   transform.WebhookMessage{Content: "hi"},
	})

	assert.Len(t, sender.sent, 1)
}

func TestHandleCreateUnlinkedChannelNoop(t *testing.T) {
	store := newFakeStore(testChannelLink())
	sender := &fakeSender{nextID: "never"}
	r := New(links.SideDiscord, store, sender, zerolog.Nop())

	r.HandleCreate(context.Background(), Inbound{MessageID: "m", ChannelID: "unrelated"})

	assert.Empty(t, sender.sent)
}

func TestHandleCreateMissingDestinationWebhook(t *testing.T) {
	link := testChannelLink()
	link.FluxerWebhook = links.Webhook{}

	store := newFakeStore(link)
	sender := &fakeSender{nextID: "never"}
	r := New(links.SideDiscord, store, sender, zerolog.Nop())

	r.HandleCreate(context.Background(), Inbound{MessageID: "m", ChannelID: "dch-1"})

	assert.Empty(t, sender.sent)
	assert.Empty(t, store.createdPairs)
}

func TestHandleCreateSendFailureLeavesNoLink(t *testing.T) {
	store := newFakeStore(testChannelLink())
	sender := &fakeSender{sendErr: assert.AnError}
	r := New(links.SideDiscord, store, sender, zerolog.Nop())

	r.HandleCreate(context.Background(), Inbound{MessageID: "m", ChannelID: "dch-1"})

	assert.Empty(t, store.createdPairs)
}

func TestHandleDeletePropagates(t *testing.T) {
	store := newFakeStore(testChannelLink())
	store.messageLinks["ml-1"] = &links.MessageLink{
		ID:               "ml-1",
		GuildLinkID:      "gl-1",
		ChannelLinkID:    "cl-1",
		DiscordMessageID: "dmsg-1",
		FluxerMessageID:  "fmsg-1",
	}

	sender := &fakeSender{}
	r := New(links.SideDiscord, store, sender, zerolog.Nop())

	r.HandleDelete(context.Background(), "dmsg-1")

	assert.Equal(t, []string{"ml-1"}, store.deletedLinks)
	assert.Equal(t, []string{"fmsg-1"}, sender.deleted)
}

func TestHandleDeleteUnknownMessageNoop(t *testing.T) {
	store := newFakeStore(testChannelLink())
	sender := &fakeSender{}
	r := New(links.SideDiscord, store, sender, zerolog.Nop())

	r.HandleDelete(context.Background(), "never-seen")

	assert.Empty(t, store.deletedLinks)
	assert.Empty(t, sender.deleted)
}

func TestHandleUpdatePropagatesEdit(t *testing.T) {
	store := newFakeStore(testChannelLink())
	store.messageLinks["ml-1"] = &links.MessageLink{
		ID:               "ml-1",
		GuildLinkID:      "gl-1",
		ChannelLinkID:    "cl-1",
		DiscordMessageID: "dmsg-1",
		FluxerMessageID:  "fmsg-1",
	}

	sender := &fakeSender{}
	r := New(links.SideFluxer, store, sender, zerolog.Nop())

	r.HandleUpdate(context.Background(), Inbound{
		MessageID: "fmsg-1",
		ChannelID: "fch-1",
		Message:   transform.WebhookMessage{Content: "edited"},
	})

	assert.Equal(t, []string{"dmsg-1"}, sender.edited)
}

func TestHandleUpdateDropsOwnWebhookEdit(t *testing.T) {
	store := newFakeStore(testChannelLink())
	store.messageLinks["ml-1"] = &links.MessageLink{
		ID:               "ml-1",
		GuildLinkID:      "gl-1",
		ChannelLinkID:    "cl-1",
		DiscordMessageID: "dmsg-1",
		FluxerMessageID:  "fmsg-1",
	}

	sender := &fakeSender{}
	r := New(links.SideFluxer, store, sender, zerolog.Nop())

	// The edit the bridge performed on the Fluxer copy comes back as an
	// update authored by the link's own webhook. It must not be edited
	// back onto the Discord original.
	r.HandleUpdate(context.Background(), Inbound{
		MessageID: "fmsg-1",
		ChannelID: "fch-1",
		WebhookID: "fwh-1",
		Message:   transform.WebhookMessage{Content: "echoed edit"},
	})

	assert.Empty(t, sender.edited)
}

func TestHandleUpdateForeignWebhookStillPropagated(t *testing.T) {
	store := newFakeStore(testChannelLink())
	store.messageLinks["ml-1"] = &links.MessageLink{
		ID:               "ml-1",
		GuildLinkID:      "gl-1",
		ChannelLinkID:    "cl-1",
		DiscordMessageID: "dmsg-1",
		FluxerMessageID:  "fmsg-1",
	}

	sender := &fakeSender{}
	r := New(links.SideFluxer, store, sender, zerolog.Nop())

	r.HandleUpdate(context.Background(), Inbound{
		MessageID: "fmsg-1",
		ChannelID: "fch-1",
		WebhookID: "some-other-webhook",
		Message:   transform.WebhookMessage{Content: "edited"},
	})

	assert.Equal(t, []string{"dmsg-1"}, sender.edited)
}

func TestHandleCreateUnpairedDeliveryNotCountedHealthy(t *testing.T) {
	store := newFakeStore(testChannelLink())
	store.createErr = assert.AnError

	sender := &fakeSender{nextID: "fmsg-1"}
	r := New(links.SideDiscord, store, sender, zerolog.Nop())

	direction := links.SideDiscord.String() + "_to_" + links.SideFluxer.String()
	okBefore := testutil.ToFloat64(observability.MessagesRelayed.WithLabelValues(direction, statusOK))
	unpairedBefore := testutil.ToFloat64(observability.MessagesRelayed.WithLabelValues(direction, statusUnpaired))

	r.HandleCreate(context.Background(), Inbound{
		MessageID: "dmsg-1",
		ChannelID: "dch-1",
		Message:   transform.WebhookMessage{Content: "hi"},
	})

	require.Len(t, sender.sent, 1)
	assert.Equal(t, okBefore, testutil.ToFloat64(observability.MessagesRelayed.WithLabelValues(direction, statusOK)))
	assert.Equal(t, unpairedBefore+1, testutil.ToFloat64(observability.MessagesRelayed.WithLabelValues(direction, statusUnpaired)))
}

func TestHandleUpdateUnknownMessageNoop(t *testing.T) {
	store := newFakeStore(testChannelLink())
	sender := &fakeSender{}
	r := New(links.SideDiscord, store, sender, zerolog.Nop())

	r.HandleUpdate(context.Background(), Inbound{MessageID: "never-seen"})

	assert.Empty(t, sender.edited)
}
