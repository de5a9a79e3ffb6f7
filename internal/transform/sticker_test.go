package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStickerExtension(t *testing.T) {
	tests := []struct {
		format int
		want   string
	}{
		{StickerFormatPNG, "png"},
		{StickerFormatAPNG, "png"},
		{StickerFormatLottie, "json"},
		{StickerFormatGIF, "gif"},
		{99, "png"},
		{0, "png"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StickerExtension(tt.format))
	}
}

func TestStickerURLs(t *testing.T) {
	assert.Equal(t,
		"https://media.discordapp.net/stickers/42.webp?size=160&quality=lossless",
		DiscordStickerURL("42", 160))
	assert.Equal(t,
		"https://media.discordapp.net/stickers/42.webp?size=320&quality=lossless",
		DiscordStickerURL("42", 0))
	assert.Equal(t,
		"https://fluxerusercontent.com/stickers/42?size=160&animated=true",
		FluxerStickerURL("42", true, 160))
	assert.Equal(t,
		"https://fluxerusercontent.com/stickers/42?size=320&animated=false",
		FluxerStickerURL("42", false, 0))
}
