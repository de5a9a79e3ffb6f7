// Package app wires the bridge together: storage, link service with its
// caching decorators, platform clients, relays, command routers and the
// observability surface. Run blocks on both gateway connections.
package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rs/zerolog"

	"github.com/KartoffelChipss/bifrost/internal/bot"
	"github.com/KartoffelChipss/bifrost/internal/discord"
	"github.com/KartoffelChipss/bifrost/internal/fluxer"
	"github.com/KartoffelChipss/bifrost/internal/gateway"
	"github.com/KartoffelChipss/bifrost/internal/links"
	"github.com/KartoffelChipss/bifrost/internal/platform/config"
	"github.com/KartoffelChipss/bifrost/internal/platform/observability"
	"github.com/KartoffelChipss/bifrost/internal/relay"
	db "github.com/KartoffelChipss/bifrost/internal/storage"
	"github.com/KartoffelChipss/bifrost/internal/transform"
	"github.com/KartoffelChipss/bifrost/internal/webhook"
)

// App holds the wired bridge components.
type App struct {
	cfg    *config.Config
	db     *db.DB
	logger *zerolog.Logger

	discordClient *discord.Client
	fluxerClient  *fluxer.Client

	service  *links.Service
	webhooks *webhook.Service

	discordRelay *relay.Relay
	fluxerRelay  *relay.Relay

	discordRouter *bot.Router
	fluxerRouter  *bot.Router

	discordTransformer *transform.DiscordTransformer
	fluxerTransformer  *transform.FluxerTransformer
}

// New builds the full component graph. Nothing touches the network until
// Run is called.
func New(cfg *config.Config, database *db.DB, logger *zerolog.Logger) *App {
	a := &App{cfg: cfg, db: database, logger: logger}

	a.discordClient = discord.NewClient(cfg.DiscordAPIBase, cfg.DiscordBotToken, cfg.WebhookRPS, *logger)
	a.fluxerClient = fluxer.NewClient(cfg.FluxerAPIBase, cfg.FluxerBotToken, cfg.WebhookRPS, *logger)

	a.service = links.NewService(a.repositories())
	a.webhooks = webhook.NewService(a.discordClient, a.fluxerClient, *logger)

	a.discordTransformer = transform.NewDiscordTransformer(a.discordClient)
	a.fluxerTransformer = transform.NewFluxerTransformer(a.fluxerClient)

	a.discordRelay = relay.New(links.SideDiscord, a.service, a.webhooks, *logger)
	a.fluxerRelay = relay.New(links.SideFluxer, a.service, a.webhooks, *logger)

	resolver := bot.NewBridgeResolver(a.discordClient, a.fluxerClient)

	a.discordRouter = newRouter(cfg, a.service, a.webhooks, resolver, *logger)
	a.fluxerRouter = newRouter(cfg, a.service, a.webhooks, resolver, *logger)

	return a
}

func newRouter(cfg *config.Config, service *links.Service, webhooks *webhook.Service, resolver *bot.BridgeResolver, logger zerolog.Logger) *bot.Router {
	return bot.NewRouter(bot.RouterConfig{
		Prefix:            cfg.CommandPrefix,
		Service:           service,
		Webhooks:          webhooks,
		Resolver:          resolver,
		AllowPartialLinks: cfg.AllowPartialLinks,
		Logger:            logger,
	})
}

// repositories returns the three link repositories, wrapped in their
// caching decorators unless caching is disabled. The decorators are
// advisory; the service works identically against the bare store.
func (a *App) repositories() (links.GuildLinkRepository, links.ChannelLinkRepository, links.MessageLinkRepository) {
	if !a.cfg.CacheEnabled {
		return a.db, a.db, a.db
	}

	return links.NewCachedGuildLinks(a.db, a.cfg.LinkCacheTTL),
		links.NewCachedChannelLinks(a.db, a.cfg.LinkCacheTTL),
		links.NewCachedMessageLinks(a.db, a.cfg.MessageLinkCacheSize)
}

// StartHealthServer starts the liveness, readiness and metrics endpoints.
func (a *App) StartHealthServer(ctx context.Context) error {
	return observability.NewServer(a.db, a.cfg.HealthPort, a.logger).Start(ctx)
}

// Run connects both gateways and blocks until the context is cancelled.
// Health pushers run alongside when configured.
func (a *App) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	discordGateway := gateway.New(gateway.Config{
		Name:    links.SideDiscord.String(),
		URL:     a.cfg.DiscordGatewayURL,
		Token:   a.cfg.DiscordBotToken,
		Intents: a.cfg.GatewayIntents,
		OnEvent: a.discordDispatcher().HandleEvent,
		Logger:  *a.logger,
	})

	fluxerGateway := gateway.New(gateway.Config{
		Name:    links.SideFluxer.String(),
		URL:     a.cfg.FluxerGatewayURL,
		Token:   a.cfg.FluxerBotToken,
		Intents: a.cfg.GatewayIntents,
		OnEvent: a.fluxerDispatcher().HandleEvent,
		Logger:  *a.logger,
	})

	group.Go(func() error { return discordGateway.Run(ctx) })
	group.Go(func() error { return fluxerGateway.Run(ctx) })

	a.startHealthPushers(ctx, group)

	return group.Wait()
}

func (a *App) startHealthPushers(ctx context.Context, group *errgroup.Group) {
	probe := func(ctx context.Context) error {
		return a.db.Ping(ctx)
	}

	discordPusher := observability.NewHealthPusher(links.SideDiscord.String(), a.cfg.DiscordHealthPushURL, probe, a.logger)
	fluxerPusher := observability.NewHealthPusher(links.SideFluxer.String(), a.cfg.FluxerHealthPushURL, probe, a.logger)

	group.Go(func() error { return discordPusher.Run(ctx, a.cfg.HealthPushInterval) })
	group.Go(func() error { return fluxerPusher.Run(ctx, a.cfg.HealthPushInterval) })
}
