package discord

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherMessageCreate(t *testing.T) {
	client := NewClient("http://example.invalid", "token", 5, zerolog.Nop())

	var got *Message

	d := NewDispatcher(client, EventHandlers{
		OnMessageCreate: func(_ context.Context, msg *Message) { got = msg },
	}, zerolog.Nop())

	raw := `{
		"id": "m1",
		"channel_id": "c1",
		"guild_id": "g1",
		"content": "hello",
		"author": {"id": "u1", "username": "alice"},
		"member": {"permissions": "16"},
		"webhook_id": ""
	}`

	d.HandleEvent(context.Background(), EventMessageCreate, json.RawMessage(raw))

	require.NotNil(t, got)
	assert.Equal(t, "m1", got.ID)
	assert.Equal(t, "hello", got.Content)
	assert.True(t, got.CanManageChannels())

	// The author's name is warmed into the client cache for mention
	// resolution.
	name, ok := client.UserName("u1")
	require.True(t, ok)
	assert.Equal(t, "alice", name)
}

func TestDispatcherGuildCreateWarmsCaches(t *testing.T) {
	client := NewClient("http://example.invalid", "token", 5, zerolog.Nop())
	d := NewDispatcher(client, EventHandlers{}, zerolog.Nop())

	raw := `{
		"id": "g1",
		"name": "guild",
		"roles": [{"id": "r1", "name": "mods"}],
		"channels": [{"id": "c1", "name": "general"}]
	}`

	d.HandleEvent(context.Background(), EventGuildCreate, json.RawMessage(raw))

	role, ok := client.RoleName("r1")
	require.True(t, ok)
	assert.Equal(t, "mods", role)

	channel, ok := client.ChannelName("c1")
	require.True(t, ok)
	assert.Equal(t, "general", channel)
}

func TestDispatcherMessageDelete(t *testing.T) {
	client := NewClient("http://example.invalid", "token", 5, zerolog.Nop())

	var got *MessageDelete

	d := NewDispatcher(client, EventHandlers{
		OnMessageDelete: func(_ context.Context, del *MessageDelete) { got = del },
	}, zerolog.Nop())

	d.HandleEvent(context.Background(), EventMessageDelete, json.RawMessage(`{"id": "m1", "channel_id": "c1"}`))

	require.NotNil(t, got)
	assert.Equal(t, "m1", got.ID)
}

func TestDispatcherMalformedPayloadIgnored(t *testing.T) {
	client := NewClient("http://example.invalid", "token", 5, zerolog.Nop())

	called := false

	d := NewDispatcher(client, EventHandlers{
		OnMessageCreate: func(_ context.Context, _ *Message) { called = true },
	}, zerolog.Nop())

	d.HandleEvent(context.Background(), EventMessageCreate, json.RawMessage(`not json`))

	assert.False(t, called)
}

func TestCanManageChannels(t *testing.T) {
	tests := []struct {
		name   string
		member *Member
		want   bool
	}{
		{name: "no member", member: nil, want: false},
		{name: "manage channels bit set", member: &Member{Permissions: PermissionManageChannels}, want: true},
		{name: "other bits only", member: &Member{Permissions: 1 << 3}, want: false},
		{name: "admin style bitset", member: &Member{Permissions: (1 << 4) | (1 << 10)}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := &Message{Member: tt.member}

			assert.Equal(t, tt.want, msg.CanManageChannels())
		})
	}
}

func TestAttachmentSpoiler(t *testing.T) {
	assert.True(t, Attachment{Filename: "SPOILER_cat.png"}.Spoiler())
	assert.False(t, Attachment{Filename: "cat.png"}.Spoiler())
}

func TestUserAvatarURL(t *testing.T) {
	assert.Equal(t, "https://cdn.discordapp.com/avatars/u1/abc.png", User{ID: "u1", Avatar: "abc"}.AvatarURL())
	assert.Empty(t, User{ID: "u1"}.AvatarURL())
}
