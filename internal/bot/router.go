package bot

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/KartoffelChipss/bifrost/internal/links"
	"github.com/KartoffelChipss/bifrost/internal/platform/observability"
)

// LinkService is the slice of the link service the command layer uses.
type LinkService interface {
	GetGuildLink(ctx context.Context, side links.Side, guildID string) (*links.GuildLink, error)
	CreateGuildLink(ctx context.Context, discordGuildID, fluxerGuildID string) (*links.GuildLink, error)
	RemoveGuildLink(ctx context.Context, side links.Side, guildID string) error
	CreateChannelLink(ctx context.Context, params links.CreateChannelLinkParams) (*links.ChannelLink, error)
	RemoveChannelLink(ctx context.Context, side links.Side, guildID, shortID string) (*links.ChannelLink, error)
	ListChannelLinks(ctx context.Context, side links.Side, guildID string) ([]*links.ChannelLink, error)
}

// WebhookCreator provisions delivery webhooks during channel linking.
type WebhookCreator interface {
	Create(ctx context.Context, side links.Side, channelID, name string) (links.Webhook, error)
}

// EntityResolver verifies that the counterpart guild or channel exists
// before a link is created.
type EntityResolver interface {
	GuildExists(ctx context.Context, side links.Side, guildID string) error
	ChannelExists(ctx context.Context, side links.Side, channelID string) error
}

// Request carries one inbound command with everything the handlers need
// already lifted out of the native event: IDs, arguments and the
// platform's own permission verdict.
type Request struct {
	Side      links.Side
	GuildID   string
	ChannelID string
	AuthorID  string
	CanManage bool
	Command   string
	Args      []string
}

type handlerFunc func(ctx context.Context, req *Request) string

// Router dispatches parsed commands to their handlers. The handler map
// is built once and never mutated afterwards.
type Router struct {
	prefix            string
	service           LinkService
	webhooks          WebhookCreator
	resolver          EntityResolver
	allowPartialLinks bool
	logger            zerolog.Logger
	handlers          map[string]handlerFunc
}

type RouterConfig struct {
	Prefix            string
	Service           LinkService
	Webhooks          WebhookCreator
	Resolver          EntityResolver
	AllowPartialLinks bool
	Logger            zerolog.Logger
}

func NewRouter(cfg RouterConfig) *Router {
	r := &Router{
		prefix:            cfg.Prefix,
		service:           cfg.Service,
		webhooks:          cfg.Webhooks,
		resolver:          cfg.Resolver,
		allowPartialLinks: cfg.AllowPartialLinks,
		logger:            cfg.Logger.With().Str("component", "command_router").Logger(),
	}

	r.handlers = map[string]handlerFunc{
		CmdHelp:          r.handleHelp,
		CmdPing:          r.handlePing,
		CmdLinkGuild:     r.handleLinkGuild,
		CmdUnlinkGuild:   r.handleUnlinkGuild,
		CmdLinkChannel:   r.handleLinkChannel,
		CmdListChannels:  r.handleListChannels,
		CmdUnlinkChannel: r.handleUnlinkChannel,
	}

	return r
}

// Prefix returns the configured command prefix.
func (r *Router) Prefix() string {
	return r.prefix
}

// Dispatch parses the content and runs the matching handler. It returns
// the reply text and whether the message was a known command.
func (r *Router) Dispatch(ctx context.Context, content string, req *Request) (string, bool) {
	command, args, ok := ParseCommand(content, r.prefix)
	if !ok {
		return "", false
	}

	handler, ok := r.handlers[command]
	if !ok {
		return "", false
	}

	req.Command = command
	req.Args = args

	observability.CommandsHandled.WithLabelValues(req.Side.String(), command).Inc()

	return handler(ctx, req), true
}
