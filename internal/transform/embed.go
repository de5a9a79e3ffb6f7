package transform

import "time"

// Embed is the platform-neutral rich embed value object. Optional parts
// are pointers so absent sections stay absent on re-serialization.
type Embed struct {
	Title       string
	Description string
	URL         string
	Color       int
	Timestamp   *time.Time
	Fields      []EmbedField
	Footer      *EmbedFooter
	Author      *EmbedAuthor
	Image       *EmbedMedia
	Thumbnail   *EmbedMedia
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

type EmbedFooter struct {
	Text    string
	IconURL string
}

type EmbedAuthor struct {
	Name    string
	URL     string
	IconURL string
}

type EmbedMedia struct {
	URL    string
	Width  int
	Height int
}

// Valid reports whether the embed carries any renderable content.
// Malformed or empty embeds are rejected by omission, never by erroring.
func (e Embed) Valid() bool {
	return e.Title != "" || e.Description != "" || len(e.Fields) > 0 ||
		e.Image != nil || e.Thumbnail != nil || e.Author != nil || e.Footer != nil
}
