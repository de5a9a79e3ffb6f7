package transform

import "fmt"

const defaultStickerSize = 320

// Discord sticker format codes as sent on the wire.
const (
	StickerFormatPNG    = 1
	StickerFormatAPNG   = 2
	StickerFormatLottie = 3
	StickerFormatGIF    = 4
)

// StickerExtension maps a Discord sticker format code to a filename
// extension. Unknown formats fall back to png.
func StickerExtension(format int) string {
	switch format {
	case StickerFormatPNG, StickerFormatAPNG:
		return "png"
	case StickerFormatLottie:
		return "json"
	case StickerFormatGIF:
		return "gif"
	default:
		return "png"
	}
}

// DiscordStickerURL builds the CDN URL for a Discord sticker.
func DiscordStickerURL(id string, size int) string {
	if size <= 0 {
		size = defaultStickerSize
	}

	return fmt.Sprintf("https://media.discordapp.net/stickers/%s.webp?size=%d&quality=lossless", id, size)
}

// FluxerStickerURL builds the CDN URL for a Fluxer sticker.
func FluxerStickerURL(id string, animated bool, size int) string {
	if size <= 0 {
		size = defaultStickerSize
	}

	return fmt.Sprintf("https://fluxerusercontent.com/stickers/%s?size=%d&animated=%t", id, size, animated)
}
