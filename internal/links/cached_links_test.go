package links

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedGuildLinksServesSecondReadFromCache(t *testing.T) {
	ctx := context.Background()
	repo := &memGuildRepo{}
	cached := NewCachedGuildLinks(repo, 0)

	created, err := cached.CreateGuildLink(ctx, "dg1", "fg1")
	require.NoError(t, err)

	before := repo.gets

	// The create primed all three lookup paths; with the backing store
	// failing, every read must still be served from the cache.
	repo.err = errors.New("store down")

	byID, err := cached.GetGuildLinkByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byDiscord, err := cached.GetGuildLinkByGuildID(ctx, SideDiscord, "dg1")
	require.NoError(t, err)
	assert.Equal(t, created, byDiscord)

	byFluxer, err := cached.GetGuildLinkByGuildID(ctx, SideFluxer, "fg1")
	require.NoError(t, err)
	assert.Equal(t, created, byFluxer)

	assert.Equal(t, before, repo.gets)
}

func TestCachedGuildLinksMissFallsThrough(t *testing.T) {
	ctx := context.Background()
	repo := &memGuildRepo{}

	seed, err := repo.CreateGuildLink(ctx, "dg1", "fg1")
	require.NoError(t, err)

	cached := NewCachedGuildLinks(repo, 0)

	link, err := cached.GetGuildLinkByGuildID(ctx, SideDiscord, "dg1")
	require.NoError(t, err)
	require.Equal(t, seed, link)

	// The miss primed every key; repeating any lookup stays cached.
	before := repo.gets

	_, err = cached.GetGuildLinkByID(ctx, seed.ID)
	require.NoError(t, err)
	assert.Equal(t, before, repo.gets)
}

func TestCachedGuildLinksDeleteInvalidates(t *testing.T) {
	ctx := context.Background()
	repo := &memGuildRepo{}
	cached := NewCachedGuildLinks(repo, 0)

	created, err := cached.CreateGuildLink(ctx, "dg1", "fg1")
	require.NoError(t, err)

	require.NoError(t, cached.DeleteGuildLink(ctx, created.ID))

	link, err := cached.GetGuildLinkByGuildID(ctx, SideDiscord, "dg1")
	require.NoError(t, err)
	assert.Nil(t, link)
}

func TestCachedChannelLinksListInvalidation(t *testing.T) {
	ctx := context.Background()
	repo := &memChannelRepo{}
	cached := NewCachedChannelLinks(repo, 0)

	first, err := cached.CreateChannelLink(ctx, CreateChannelLinkParams{
		GuildLinkID:      "gl1",
		DiscordChannelID: "dc1",
		FluxerChannelID:  "fc1",
		ShortID:          "aaa",
	})
	require.NoError(t, err)

	all, err := cached.ListChannelLinksByGuildLink(ctx, "gl1")
	require.NoError(t, err)
	require.Len(t, all, 1)

	// A new link must expire the cached per-guild list.
	_, err = cached.CreateChannelLink(ctx, CreateChannelLinkParams{
		GuildLinkID:      "gl1",
		DiscordChannelID: "dc2",
		FluxerChannelID:  "fc2",
		ShortID:          "bbb",
	})
	require.NoError(t, err)

	all, err = cached.ListChannelLinksByGuildLink(ctx, "gl1")
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Deletion expires both the entry keys and the list.
	require.NoError(t, cached.DeleteChannelLink(ctx, first.ID))

	all, err = cached.ListChannelLinksByGuildLink(ctx, "gl1")
	require.NoError(t, err)
	require.Len(t, all, 1)

	gone, err := cached.GetChannelLinkByChannelID(ctx, SideDiscord, "dc1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCachedChannelLinksShortIDLookup(t *testing.T) {
	ctx := context.Background()
	repo := &memChannelRepo{}
	cached := NewCachedChannelLinks(repo, 0)

	created, err := cached.CreateChannelLink(ctx, CreateChannelLinkParams{
		GuildLinkID:      "gl1",
		DiscordChannelID: "dc1",
		FluxerChannelID:  "fc1",
		ShortID:          "aaa",
	})
	require.NoError(t, err)

	before := repo.gets

	link, err := cached.GetChannelLinkByShortID(ctx, "gl1", "aaa")
	require.NoError(t, err)
	assert.Equal(t, created, link)
	assert.Equal(t, before, repo.gets)

	// Same short ID under another guild link is a different key.
	other, err := cached.GetChannelLinkByShortID(ctx, "gl2", "aaa")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestCachedMessageLinksAliasEviction(t *testing.T) {
	ctx := context.Background()
	repo := &memMessageRepo{}
	cached := NewCachedMessageLinks(repo, 1)

	first, err := cached.CreateMessageLink(ctx, "gl1", "cl1", "dm1", "fm1")
	require.NoError(t, err)

	// Capacity one: the second create evicts the first entry and both of
	// its aliases.
	_, err = cached.CreateMessageLink(ctx, "gl1", "cl1", "dm2", "fm2")
	require.NoError(t, err)

	before := repo.gets

	link, err := cached.GetMessageLinkByMessageID(ctx, SideDiscord, "dm1")
	require.NoError(t, err)
	require.Equal(t, first.ID, link.ID)
	assert.Greater(t, repo.gets, before)

	// The fall-through re-primed the entry.
	before = repo.gets

	_, err = cached.GetMessageLinkByMessageID(ctx, SideFluxer, "fm1")
	require.NoError(t, err)
	assert.Equal(t, before, repo.gets)
}

func TestCachedMessageLinksDelete(t *testing.T) {
	ctx := context.Background()
	repo := &memMessageRepo{}
	cached := NewCachedMessageLinks(repo, 0)

	created, err := cached.CreateMessageLink(ctx, "gl1", "cl1", "dm1", "fm1")
	require.NoError(t, err)

	require.NoError(t, cached.DeleteMessageLink(ctx, created.ID))

	link, err := cached.GetMessageLinkByMessageID(ctx, SideDiscord, "dm1")
	require.NoError(t, err)
	assert.Nil(t, link)
}

func TestCachedMessageLinksDeleteByChannelLink(t *testing.T) {
	ctx := context.Background()
	repo := &memMessageRepo{}
	cached := NewCachedMessageLinks(repo, 0)

	_, err := cached.CreateMessageLink(ctx, "gl1", "cl1", "dm1", "fm1")
	require.NoError(t, err)

	_, err = cached.CreateMessageLink(ctx, "gl1", "cl2", "dm2", "fm2")
	require.NoError(t, err)

	require.NoError(t, cached.DeleteMessageLinksByChannelLink(ctx, "cl1"))

	gone, err := cached.GetMessageLinkByMessageID(ctx, SideFluxer, "fm1")
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := cached.GetMessageLinkByMessageID(ctx, SideFluxer, "fm2")
	require.NoError(t, err)
	require.NotNil(t, kept)
}

func TestCachedMessageLinksDeleteByGuildLink(t *testing.T) {
	ctx := context.Background()
	repo := &memMessageRepo{}
	cached := NewCachedMessageLinks(repo, 0)

	_, err := cached.CreateMessageLink(ctx, "gl1", "cl1", "dm1", "fm1")
	require.NoError(t, err)

	_, err = cached.CreateMessageLink(ctx, "gl2", "cl2", "dm2", "fm2")
	require.NoError(t, err)

	require.NoError(t, cached.DeleteMessageLinksByGuildLink(ctx, "gl1"))

	gone, err := cached.GetMessageLinkByMessageID(ctx, SideDiscord, "dm1")
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := cached.GetMessageLinkByMessageID(ctx, SideDiscord, "dm2")
	require.NoError(t, err)
	require.NotNil(t, kept)
}
