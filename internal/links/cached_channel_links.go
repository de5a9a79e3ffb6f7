package links

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/KartoffelChipss/bifrost/internal/platform/observability"
)

const channelCacheEntity = "channel_link"

// CachedChannelLinks wraps a ChannelLinkRepository with a read-through
// cache. A channel link is cached under its ID, both platform channel
// IDs and its (guild link, short ID) pair; the per-guild "all links"
// list is cached separately and invalidated on any membership change.
type CachedChannelLinks struct {
	repo  ChannelLinkRepository
	cache *expirable.LRU[string, *ChannelLink]
	lists *expirable.LRU[string, []*ChannelLink]
}

// NewCachedChannelLinks creates a caching decorator around repo. A zero
// TTL disables expiry.
func NewCachedChannelLinks(repo ChannelLinkRepository, ttl time.Duration) *CachedChannelLinks {
	return &CachedChannelLinks{
		repo:  repo,
		cache: expirable.NewLRU[string, *ChannelLink](0, nil, ttl),
		lists: expirable.NewLRU[string, []*ChannelLink](0, nil, ttl),
	}
}

func channelIDKey(id string) string { return "id:" + id }

func channelSideKey(side Side, cid string) string { return string(side) + ":" + cid }

func channelShortKey(guildLinkID, shortID string) string {
	return "guild:" + guildLinkID + ":short:" + shortID
}

func (c *CachedChannelLinks) prime(link *ChannelLink) {
	c.cache.Add(channelIDKey(link.ID), link)
	c.cache.Add(channelSideKey(SideDiscord, link.DiscordChannelID), link)
	c.cache.Add(channelSideKey(SideFluxer, link.FluxerChannelID), link)
	c.cache.Add(channelShortKey(link.GuildLinkID, link.ShortID), link)
}

func (c *CachedChannelLinks) invalidate(link *ChannelLink) {
	c.cache.Remove(channelIDKey(link.ID))
	c.cache.Remove(channelSideKey(SideDiscord, link.DiscordChannelID))
	c.cache.Remove(channelSideKey(SideFluxer, link.FluxerChannelID))
	c.cache.Remove(channelShortKey(link.GuildLinkID, link.ShortID))
}

func (c *CachedChannelLinks) CreateChannelLink(ctx context.Context, params CreateChannelLinkParams) (*ChannelLink, error) {
	created, err := c.repo.CreateChannelLink(ctx, params)
	if err != nil {
		return nil, err
	}

	c.prime(created)
	c.lists.Remove(created.GuildLinkID)

	return created, nil
}

func (c *CachedChannelLinks) GetChannelLinkByID(ctx context.Context, id string) (*ChannelLink, error) {
	return c.lookup(ctx, channelIDKey(id), func() (*ChannelLink, error) {
		return c.repo.GetChannelLinkByID(ctx, id)
	})
}

func (c *CachedChannelLinks) GetChannelLinkByChannelID(ctx context.Context, side Side, channelID string) (*ChannelLink, error) {
	return c.lookup(ctx, channelSideKey(side, channelID), func() (*ChannelLink, error) {
		return c.repo.GetChannelLinkByChannelID(ctx, side, channelID)
	})
}

func (c *CachedChannelLinks) GetChannelLinkByShortID(ctx context.Context, guildLinkID, shortID string) (*ChannelLink, error) {
	return c.lookup(ctx, channelShortKey(guildLinkID, shortID), func() (*ChannelLink, error) {
		return c.repo.GetChannelLinkByShortID(ctx, guildLinkID, shortID)
	})
}

func (c *CachedChannelLinks) lookup(_ context.Context, key string, fetch func() (*ChannelLink, error)) (*ChannelLink, error) {
	if link, ok := c.cache.Get(key); ok {
		observability.CacheHits.WithLabelValues(channelCacheEntity).Inc()

		return link, nil
	}

	observability.CacheMisses.WithLabelValues(channelCacheEntity).Inc()

	link, err := fetch()
	if err != nil || link == nil {
		return link, err
	}

	c.prime(link)

	return link, nil
}

func (c *CachedChannelLinks) ListChannelLinksByGuildLink(ctx context.Context, guildLinkID string) ([]*ChannelLink, error) {
	if all, ok := c.lists.Get(guildLinkID); ok {
		observability.CacheHits.WithLabelValues(channelCacheEntity).Inc()

		return all, nil
	}

	observability.CacheMisses.WithLabelValues(channelCacheEntity).Inc()

	all, err := c.repo.ListChannelLinksByGuildLink(ctx, guildLinkID)
	if err != nil {
		return nil, err
	}

	c.lists.Add(guildLinkID, all)

	return all, nil
}

func (c *CachedChannelLinks) DeleteChannelLink(ctx context.Context, id string) error {
	existing, err := c.repo.GetChannelLinkByID(ctx, id)
	if err != nil {
		return err
	}

	if err := c.repo.DeleteChannelLink(ctx, id); err != nil {
		return err
	}

	if existing != nil {
		c.invalidate(existing)
		c.lists.Remove(existing.GuildLinkID)
	}

	return nil
}

func (c *CachedChannelLinks) DeleteChannelLinksByGuildLink(ctx context.Context, guildLinkID string) error {
	existing, err := c.repo.ListChannelLinksByGuildLink(ctx, guildLinkID)
	if err != nil {
		return err
	}

	if err := c.repo.DeleteChannelLinksByGuildLink(ctx, guildLinkID); err != nil {
		return err
	}

	for _, link := range existing {
		c.invalidate(link)
	}

	c.lists.Remove(guildLinkID)

	return nil
}
