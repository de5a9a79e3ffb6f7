package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KartoffelChipss/bifrost/internal/discord"
	"github.com/KartoffelChipss/bifrost/internal/fluxer"
)

type fakeNames struct {
	users    map[string]string
	roles    map[string]string
	channels map[string]string
}

func (f fakeNames) UserName(id string) (string, bool) {
	name, ok := f.users[id]

	return name, ok
}

func (f fakeNames) RoleName(id string) (string, bool) {
	name, ok := f.roles[id]

	return name, ok
}

func (f fakeNames) ChannelName(id string) (string, bool) {
	name, ok := f.channels[id]

	return name, ok
}

func TestDiscordTransformer(t *testing.T) {
	tr := NewDiscordTransformer(fakeNames{
		users: map[string]string{"123": "alice"},
	})

	msg := &discord.Message{
		ID:      "m1",
		Content: "hi <@123>",
		Author:  discord.User{ID: "u1", Username: "alice", Avatar: "abc"},
		Attachments: []discord.Attachment{
			{ID: "a1", URL: "https://cdn.example/file.png", Filename: "SPOILER_file.png"},
			{ID: "a2", URL: "", Filename: "dropped.png"},
		},
		Stickers: []discord.Sticker{
			{ID: "s1", Name: "wave", FormatType: StickerFormatGIF},
		},
	}

	out := tr.Transform(msg)

	assert.Equal(t, "hi @alice", out.Content)
	assert.Equal(t, "alice", out.Username)
	assert.Equal(t, "https://cdn.discordapp.com/avatars/u1/abc.png", out.AvatarURL)

	require.Len(t, out.Attachments, 2)
	assert.True(t, out.Attachments[0].Spoiler)
	assert.Equal(t, "SPOILER_file.png", out.Attachments[0].Name)
	assert.Equal(t, "wave.gif", out.Attachments[1].Name)
	assert.Equal(t, DiscordStickerURL("s1", stickerRenderSize), out.Attachments[1].URL)
}

func TestDiscordTransformerPollReplacesContent(t *testing.T) {
	tr := NewDiscordTransformer(fakeNames{})
	expiry := time.Now().Add(time.Hour)

	msg := &discord.Message{
		Content: "original text",
		Author:  discord.User{Username: "bob"},
		Poll: &discord.Poll{
			Question: discord.PollMedia{Text: "Pizza?"},
			Answers: []discord.PollAnswer{
				{AnswerID: 1, PollMedia: discord.PollMedia{Text: "Yes"}},
				{AnswerID: 2, PollMedia: discord.PollMedia{Text: "No"}},
			},
			Expiry: &expiry,
		},
	}

	out := tr.Transform(msg)

	assert.NotContains(t, out.Content, "original text")
	assert.Contains(t, out.Content, "`[DISCORD POLL]`")
	assert.Contains(t, out.Content, "1. Yes")
	assert.Contains(t, out.Content, "2. No")
}

func TestDiscordTransformerIncompletePollIgnored(t *testing.T) {
	tr := NewDiscordTransformer(fakeNames{})

	msg := &discord.Message{
		Content: "original text",
		Author:  discord.User{Username: "bob"},
		Poll: &discord.Poll{
			Question: discord.PollMedia{Text: "Pizza?"},
		},
	}

	out := tr.Transform(msg)

	assert.Equal(t, "original text", out.Content)
}

func TestFluxerTransformerBreaksMentions(t *testing.T) {
	tr := NewFluxerTransformer(fakeNames{
		users: map[string]string{"9": "carol"},
	})

	msg := &fluxer.Message{
		Content: "hey <@9>",
		Author:  fluxer.User{Username: "carol", AvatarURL: "https://cdn.fluxer.app/a.png"},
	}

	out := tr.Transform(msg)

	assert.Equal(t, "hey @​carol", out.Content)
	assert.Equal(t, "https://cdn.fluxer.app/a.png", out.AvatarURL)
}

func TestFluxerTransformerStickersAndSpoilers(t *testing.T) {
	tr := NewFluxerTransformer(fakeNames{})

	msg := &fluxer.Message{
		Author: fluxer.User{Username: "carol"},
		Attachments: []fluxer.Attachment{
			{ID: "a1", URL: "https://cdn.fluxer.app/f.png", Filename: "f.png", Flags: fluxer.AttachmentFlagSpoiler},
		},
		Stickers: []fluxer.Sticker{
			{ID: "s1", Name: "dance", Animated: true},
		},
	}

	out := tr.Transform(msg)

	require.Len(t, out.Attachments, 2)
	assert.True(t, out.Attachments[0].Spoiler)
	assert.Equal(t, "dance.webp", out.Attachments[1].Name)
	assert.Equal(t, FluxerStickerURL("s1", true, stickerRenderSize), out.Attachments[1].URL)
}

func TestFluxerTransformerPollEscapesMentions(t *testing.T) {
	tr := NewFluxerTransformer(fakeNames{})
	expiry := time.Now().Add(time.Hour)

	msg := &fluxer.Message{
		Content: "ignored",
		Author:  fluxer.User{Username: "carol"},
		Poll: &fluxer.Poll{
			Question:  "ping @everyone?",
			Answers:   []string{"Yes"},
			ExpiresAt: &expiry,
		},
	}

	out := tr.Transform(msg)

	assert.Contains(t, out.Content, "`[FLUXER POLL]`")
	assert.Contains(t, out.Content, "`@everyone`")
	assert.NotContains(t, out.Content, "ignored")
}

func TestEmbedRoundTrip(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	native := discord.Embed{
		Title:       "title",
		Description: "desc",
		URL:         "https://example.com",
		Color:       0xFF0000,
		Timestamp:   &ts,
		Fields:      []discord.EmbedField{{Name: "f", Value: "v", Inline: true}},
		Footer:      &discord.EmbedFooter{Text: "foot", IconURL: "https://example.com/i.png"},
		Author:      &discord.EmbedAuthor{Name: "auth"},
		Image:       &discord.EmbedMedia{URL: "https://example.com/img.png", Width: 10, Height: 20},
	}

	neutral := embedFromDiscord(native)
	require.True(t, neutral.Valid())

	back := neutral.ToFluxer()
	assert.Equal(t, "title", back.Title)
	assert.Equal(t, "desc", back.Description)
	require.Len(t, back.Fields, 1)
	assert.True(t, back.Fields[0].Inline)
	require.NotNil(t, back.Footer)
	assert.Equal(t, "foot", back.Footer.Text)
	require.NotNil(t, back.Image)
	assert.Equal(t, 20, back.Image.Height)
}

func TestEmptyEmbedRejected(t *testing.T) {
	assert.False(t, embedFromDiscord(discord.Embed{}).Valid())
	assert.False(t, embedFromFluxer(fluxer.Embed{}).Valid())
}
