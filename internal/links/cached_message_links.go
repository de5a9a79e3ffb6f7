package links

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/KartoffelChipss/bifrost/internal/platform/observability"
)

const (
	messageCacheEntity = "message_link"

	// DefaultMessageLinkCacheSize bounds the message link cache. Message
	// volume is unbounded over time, so this cache evicts least recently
	// used entries instead of relying on TTLs.
	DefaultMessageLinkCacheSize = 15000
)

// CachedMessageLinks wraps a MessageLinkRepository with a fixed-capacity
// LRU cache. The entry is stored once under the link ID; the per-side
// message ID keys are aliases resolved through side maps, so evicting an
// entry drops every alias with it. An evicted alias falls through to the
// backing repository on the next lookup.
type CachedMessageLinks struct {
	repo MessageLinkRepository

	mu      sync.Mutex
	byID    *lru.Cache[string, *MessageLink]
	discord map[string]string
	fluxer  map[string]string
}

// NewCachedMessageLinks creates a caching decorator around repo with the
// given capacity; capacity <= 0 uses DefaultMessageLinkCacheSize.
func NewCachedMessageLinks(repo MessageLinkRepository, capacity int) *CachedMessageLinks {
	if capacity <= 0 {
		capacity = DefaultMessageLinkCacheSize
	}

	c := &CachedMessageLinks{
		repo:    repo,
		discord: make(map[string]string),
		fluxer:  make(map[string]string),
	}

	// The eviction callback runs on the goroutine that triggered the
	// eviction, which already holds c.mu.
	c.byID, _ = lru.NewWithEvict(capacity, func(_ string, link *MessageLink) {
		delete(c.discord, link.DiscordMessageID)
		delete(c.fluxer, link.FluxerMessageID)
	})

	return c
}

func (c *CachedMessageLinks) prime(link *MessageLink) {
	c.byID.Add(link.ID, link)
	c.discord[link.DiscordMessageID] = link.ID
	c.fluxer[link.FluxerMessageID] = link.ID
}

func (c *CachedMessageLinks) drop(link *MessageLink) {
	delete(c.discord, link.DiscordMessageID)
	delete(c.fluxer, link.FluxerMessageID)
	c.byID.Remove(link.ID)
}

func (c *CachedMessageLinks) CreateMessageLink(ctx context.Context, guildLinkID, channelLinkID, discordMessageID, fluxerMessageID string) (*MessageLink, error) {
	created, err := c.repo.CreateMessageLink(ctx, guildLinkID, channelLinkID, discordMessageID, fluxerMessageID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.prime(created)
	c.mu.Unlock()

	return created, nil
}

func (c *CachedMessageLinks) GetMessageLinkByID(ctx context.Context, id string) (*MessageLink, error) {
	c.mu.Lock()
	link, ok := c.byID.Get(id)
	c.mu.Unlock()

	if ok {
		observability.CacheHits.WithLabelValues(messageCacheEntity).Inc()

		return link, nil
	}

	observability.CacheMisses.WithLabelValues(messageCacheEntity).Inc()

	link, err := c.repo.GetMessageLinkByID(ctx, id)
	if err != nil || link == nil {
		return link, err
	}

	c.mu.Lock()
	c.prime(link)
	c.mu.Unlock()

	return link, nil
}

func (c *CachedMessageLinks) GetMessageLinkByMessageID(ctx context.Context, side Side, messageID string) (*MessageLink, error) {
	c.mu.Lock()

	var (
		link *MessageLink
		ok   bool
	)

	if id, aliased := c.alias(side)[messageID]; aliased {
		link, ok = c.byID.Get(id)
	}

	c.mu.Unlock()

	if ok {
		observability.CacheHits.WithLabelValues(messageCacheEntity).Inc()

		return link, nil
	}

	observability.CacheMisses.WithLabelValues(messageCacheEntity).Inc()

	link, err := c.repo.GetMessageLinkByMessageID(ctx, side, messageID)
	if err != nil || link == nil {
		return link, err
	}

	c.mu.Lock()
	c.prime(link)
	c.mu.Unlock()

	return link, nil
}

func (c *CachedMessageLinks) alias(side Side) map[string]string {
	if side == SideDiscord {
		return c.discord
	}

	return c.fluxer
}

func (c *CachedMessageLinks) DeleteMessageLink(ctx context.Context, id string) error {
	existing, err := c.repo.GetMessageLinkByID(ctx, id)
	if err != nil {
		return err
	}

	if err := c.repo.DeleteMessageLink(ctx, id); err != nil {
		return err
	}

	if existing != nil {
		c.mu.Lock()
		c.drop(existing)
		c.mu.Unlock()
	}

	return nil
}

func (c *CachedMessageLinks) DeleteMessageLinksByChannelLink(ctx context.Context, channelLinkID string) error {
	if err := c.repo.DeleteMessageLinksByChannelLink(ctx, channelLinkID); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range c.byID.Keys() {
		if link, ok := c.byID.Peek(id); ok && link.ChannelLinkID == channelLinkID {
			c.drop(link)
		}
	}

	return nil
}

func (c *CachedMessageLinks) DeleteMessageLinksByGuildLink(ctx context.Context, guildLinkID string) error {
	if err := c.repo.DeleteMessageLinksByGuildLink(ctx, guildLinkID); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range c.byID.Keys() {
		if link, ok := c.byID.Peek(id); ok && link.GuildLinkID == guildLinkID {
			c.drop(link)
		}
	}

	return nil
}
