// Package config loads the bridge configuration from environment
// variables, optionally seeded from a .env file.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"local"`
	PostgresDSN string `env:"POSTGRES_DSN,required"`

	DiscordBotToken   string `env:"DISCORD_BOT_TOKEN,required"`
	FluxerBotToken    string `env:"FLUXER_BOT_TOKEN,required"`
	DiscordAPIBase    string `env:"DISCORD_API_BASE" envDefault:"https://discord.com/api/v10"`
	FluxerAPIBase     string `env:"FLUXER_API_BASE" envDefault:"https://api.fluxer.app/v1"`
	DiscordGatewayURL string `env:"DISCORD_GATEWAY_URL" envDefault:"wss://gateway.discord.gg/?v=10&encoding=json"`
	FluxerGatewayURL  string `env:"FLUXER_GATEWAY_URL" envDefault:"wss://gateway.fluxer.app/?encoding=json"`
	// Guilds, guild messages and message content.
	GatewayIntents int `env:"GATEWAY_INTENTS" envDefault:"33281"`

	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"!"`

	// AllowPartialLinks keeps channel links usable when webhook creation
	// succeeded on only one side; relaying toward the webhook-less side is
	// skipped with a log line instead of failing the link.
	AllowPartialLinks bool `env:"ALLOW_PARTIAL_LINKS" envDefault:"false"`

	CacheEnabled         bool          `env:"CACHE_ENABLED" envDefault:"true"`
	LinkCacheTTL         time.Duration `env:"LINK_CACHE_TTL" envDefault:"0"`
	MessageLinkCacheSize int           `env:"MESSAGE_LINK_CACHE_SIZE" envDefault:"15000"`

	WebhookRPS float64 `env:"WEBHOOK_RPS" envDefault:"5"`

	HealthPort           int           `env:"HEALTH_PORT" envDefault:"8080"`
	DiscordHealthPushURL string        `env:"DISCORD_HEALTH_PUSH_URL"`
	FluxerHealthPushURL  string        `env:"FLUXER_HEALTH_PUSH_URL"`
	HealthPushInterval   time.Duration `env:"HEALTH_PUSH_INTERVAL" envDefault:"60s"`

	DBMaxConnections    int32         `env:"DB_MAX_CONNECTIONS" envDefault:"25"`
	DBMinConnections    int32         `env:"DB_MIN_CONNECTIONS" envDefault:"5"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
