package links

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/KartoffelChipss/bifrost/internal/platform/observability"
)

const guildCacheEntity = "guild_link"

// CachedGuildLinks wraps a GuildLinkRepository with a read-through cache
// keyed by every lookup path: the link ID and both platform guild IDs.
// Guild count is small and bounded by platform limits, so the cache is
// unbounded; a zero TTL disables expiry entirely.
//
// The cache is advisory: every mutation goes to the backing repository
// first and correctness holds when the decorator is skipped.
type CachedGuildLinks struct {
	repo  GuildLinkRepository
	cache *expirable.LRU[string, *GuildLink]
}

// NewCachedGuildLinks creates a caching decorator around repo.
func NewCachedGuildLinks(repo GuildLinkRepository, ttl time.Duration) *CachedGuildLinks {
	return &CachedGuildLinks{
		repo:  repo,
		cache: expirable.NewLRU[string, *GuildLink](0, nil, ttl),
	}
}

func guildIDKey(id string) string { return "id:" + id }

func guildSideKey(side Side, gid string) string { return string(side) + ":" + gid }

func (c *CachedGuildLinks) prime(link *GuildLink) {
	c.cache.Add(guildIDKey(link.ID), link)
	c.cache.Add(guildSideKey(SideDiscord, link.DiscordGuildID), link)
	c.cache.Add(guildSideKey(SideFluxer, link.FluxerGuildID), link)
}

func (c *CachedGuildLinks) invalidate(link *GuildLink) {
	c.cache.Remove(guildIDKey(link.ID))
	c.cache.Remove(guildSideKey(SideDiscord, link.DiscordGuildID))
	c.cache.Remove(guildSideKey(SideFluxer, link.FluxerGuildID))
}

func (c *CachedGuildLinks) CreateGuildLink(ctx context.Context, discordGuildID, fluxerGuildID string) (*GuildLink, error) {
	created, err := c.repo.CreateGuildLink(ctx, discordGuildID, fluxerGuildID)
	if err != nil {
		return nil, err
	}

	c.prime(created)

	return created, nil
}

func (c *CachedGuildLinks) GetGuildLinkByID(ctx context.Context, id string) (*GuildLink, error) {
	if link, ok := c.cache.Get(guildIDKey(id)); ok {
		observability.CacheHits.WithLabelValues(guildCacheEntity).Inc()

		return link, nil
	}

	observability.CacheMisses.WithLabelValues(guildCacheEntity).Inc()

	link, err := c.repo.GetGuildLinkByID(ctx, id)
	if err != nil || link == nil {
		return link, err
	}

	c.prime(link)

	return link, nil
}

func (c *CachedGuildLinks) GetGuildLinkByGuildID(ctx context.Context, side Side, guildID string) (*GuildLink, error) {
	if link, ok := c.cache.Get(guildSideKey(side, guildID)); ok {
		observability.CacheHits.WithLabelValues(guildCacheEntity).Inc()

		return link, nil
	}

	observability.CacheMisses.WithLabelValues(guildCacheEntity).Inc()

	link, err := c.repo.GetGuildLinkByGuildID(ctx, side, guildID)
	if err != nil || link == nil {
		return link, err
	}

	c.prime(link)

	return link, nil
}

func (c *CachedGuildLinks) DeleteGuildLink(ctx context.Context, id string) error {
	existing, err := c.repo.GetGuildLinkByID(ctx, id)
	if err != nil {
		return err
	}

	if err := c.repo.DeleteGuildLink(ctx, id); err != nil {
		return err
	}

	if existing != nil {
		c.invalidate(existing)
	}

	return nil
}
