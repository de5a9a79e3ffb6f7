package transform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KartoffelChipss/bifrost/internal/links"
)

func TestPollComplete(t *testing.T) {
	expiry := time.Now().Add(time.Hour)

	tests := []struct {
		name string
		poll *Poll
		want bool
	}{
		{"nil poll", nil, false},
		{"complete", &Poll{Question: "Pizza?", Answers: []string{"Yes", "No"}, ExpiresAt: expiry}, true},
		{"empty question", &Poll{Answers: []string{"Yes"}, ExpiresAt: expiry}, false},
		{"no answers", &Poll{Question: "Pizza?", ExpiresAt: expiry}, false},
		{"only empty answers", &Poll{Question: "Pizza?", Answers: []string{"", ""}, ExpiresAt: expiry}, false},
		{"no expiry", &Poll{Question: "Pizza?", Answers: []string{"Yes"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.poll.Complete())
		})
	}
}

func TestPollMessage(t *testing.T) {
	expiry := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	got := PollMessage(links.SideDiscord, &Poll{
		Question:  "Pizza?",
		Answers:   []string{"Yes", "No"},
		ExpiresAt: expiry,
	})

	assert.Contains(t, got, "`[DISCORD POLL]`")
	assert.Contains(t, got, "**Pizza?**")
	assert.Contains(t, got, "1. Yes")
	assert.Contains(t, got, "2. No")
	assert.Contains(t, got, fmt.Sprintf("<t:%d:R>", expiry.Unix()))
	assert.Contains(t, got, "created on Discord")
}

func TestPollMessageSkipsEmptyAnswers(t *testing.T) {
	got := PollMessage(links.SideFluxer, &Poll{
		Question:  "Soup?",
		Answers:   []string{"Yes", "", "Maybe"},
		ExpiresAt: time.Now().Add(time.Hour),
	})

	assert.Contains(t, got, "`[FLUXER POLL]`")
	assert.Contains(t, got, "1. Yes")
	assert.Contains(t, got, "2. Maybe")
	assert.NotContains(t, got, "3.")
}
