package transform

import (
	"fmt"
	"strings"
	"time"

	"github.com/KartoffelChipss/bifrost/internal/links"
)

// Poll is the platform-neutral view of a native poll. It is considered
// complete when the question, at least one answer and the expiry are all
// present; incomplete polls are ignored by the transformers.
type Poll struct {
	Question  string
	Answers   []string
	ExpiresAt time.Time
}

// Complete reports whether the poll carries enough structure to render.
func (p *Poll) Complete() bool {
	if p == nil || p.Question == "" || p.ExpiresAt.IsZero() {
		return false
	}

	for _, answer := range p.Answers {
		if answer != "" {
			return true
		}
	}

	return false
}

func sideDisplayName(side links.Side) string {
	switch side {
	case links.SideDiscord:
		return "Discord"
	case links.SideFluxer:
		return "Fluxer"
	default:
		return string(side)
	}
}

// PollMessage renders a complete poll as the text block that replaces the
// message content on the destination side. Voting stays on the origin
// platform, so the block says so.
func PollMessage(origin links.Side, poll *Poll) string {
	var options []string

	index := 0

	for _, answer := range poll.Answers {
		if answer == "" {
			continue
		}

		index++

		options = append(options, fmt.Sprintf("%d. %s", index, answer))
	}

	name := sideDisplayName(origin)

	return fmt.Sprintf("`[%s POLL]`\n**%s**\n%s\n-# Poll ends at: <t:%d:R>\n-# This poll was created on %s and can only be voted on there.",
		strings.ToUpper(name), poll.Question, strings.Join(options, "\n"), poll.ExpiresAt.Unix(), name)
}
