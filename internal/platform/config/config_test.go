package config

import (
	"os"
	"testing"
	"time"
)

// Test environment variable keys.
const (
	testEnvPostgresDSN     = "POSTGRES_DSN"
	testEnvDiscordBotToken = "DISCORD_BOT_TOKEN"
	testEnvFluxerBotToken  = "FLUXER_BOT_TOKEN"
)

// Test values.
const (
	testPostgresDSN     = "postgres://localhost/test"
	testDiscordBotToken = "discord-token"
	testFluxerBotToken  = "fluxer-token"
	testErrLoad         = "Load() error = %v"
)

func setRequiredEnvVars(t *testing.T) {
	t.Helper()

	t.Setenv(testEnvPostgresDSN, testPostgresDSN)
	t.Setenv(testEnvDiscordBotToken, testDiscordBotToken)
	t.Setenv(testEnvFluxerBotToken, testFluxerBotToken)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv(testEnvPostgresDSN)
	os.Unsetenv(testEnvDiscordBotToken)
	os.Unsetenv(testEnvFluxerBotToken)

	_, err := Load()
	if err == nil {
		t.Error("expected error for missing required env vars")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf(testErrLoad, err)
	}

	if cfg.CommandPrefix != "!" {
		t.Errorf("CommandPrefix = %q, want %q", cfg.CommandPrefix, "!")
	}

	if cfg.MessageLinkCacheSize != 15000 {
		t.Errorf("MessageLinkCacheSize = %d, want 15000", cfg.MessageLinkCacheSize)
	}

	if !cfg.CacheEnabled {
		t.Error("CacheEnabled = false, want true")
	}

	if cfg.AllowPartialLinks {
		t.Error("AllowPartialLinks = true, want false")
	}

	if cfg.HealthPushInterval != time.Minute {
		t.Errorf("HealthPushInterval = %v, want 1m", cfg.HealthPushInterval)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("COMMAND_PREFIX", "?")
	t.Setenv("MESSAGE_LINK_CACHE_SIZE", "100")
	t.Setenv("CACHE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf(testErrLoad, err)
	}

	if cfg.CommandPrefix != "?" {
		t.Errorf("CommandPrefix = %q, want %q", cfg.CommandPrefix, "?")
	}

	if cfg.MessageLinkCacheSize != 100 {
		t.Errorf("MessageLinkCacheSize = %d, want 100", cfg.MessageLinkCacheSize)
	}

	if cfg.CacheEnabled {
		t.Error("CacheEnabled = true, want false")
	}
}
