package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	requestTimeout = 15 * time.Second
	maxErrorBody   = 512
)

// Client is a minimal REST client for the platform API. It also keeps a
// small local cache of entity names fed by gateway traffic so mention
// sanitization never needs a network round trip.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	logger  zerolog.Logger

	mu       sync.RWMutex
	users    map[string]string
	roles    map[string]string
	channels map[string]string
}

func NewClient(baseURL, token string, rps float64, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		token:    token,
		http:     &http.Client{Timeout: requestTimeout},
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
		logger:   logger.With().Str("component", "discord_client").Logger(),
		users:    make(map[string]string),
		roles:    make(map[string]string),
		channels: make(map[string]string),
	}
}

// do performs one API request. A 404 is reported as found=false instead
// of an error so fetches can treat absence as data.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("encode request body: %w", err)
		}

		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bot "+c.token)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return false, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, snippet)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("decode response: %w", err)
		}
	}

	return true, nil
}

func (c *Client) FetchGuild(ctx context.Context, guildID string) (*Guild, error) {
	var guild Guild

	found, err := c.do(ctx, http.MethodGet, "/guilds/"+guildID, nil, &guild)
	if err != nil || !found {
		return nil, err
	}

	return &guild, nil
}

func (c *Client) FetchChannel(ctx context.Context, channelID string) (*Channel, error) {
	var channel Channel

	found, err := c.do(ctx, http.MethodGet, "/channels/"+channelID, nil, &channel)
	if err != nil || !found {
		return nil, err
	}

	c.RememberChannel(channel.ID, channel.Name)

	return &channel, nil
}

func (c *Client) FetchMessage(ctx context.Context, channelID, messageID string) (*Message, error) {
	var message Message

	found, err := c.do(ctx, http.MethodGet, "/channels/"+channelID+"/messages/"+messageID, nil, &message)
	if err != nil || !found {
		return nil, err
	}

	return &message, nil
}

// CreateMessage posts a plain text message under the bot's own identity.
// Command replies use this; relayed traffic never does.
func (c *Client) CreateMessage(ctx context.Context, channelID, content string) (*Message, error) {
	var message Message

	payload := map[string]string{"content": content}

	found, err := c.do(ctx, http.MethodPost, "/channels/"+channelID+"/messages", payload, &message)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, fmt.Errorf("create message: channel %s not found", channelID)
	}

	return &message, nil
}

func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	found, err := c.do(ctx, http.MethodDelete, "/channels/"+channelID+"/messages/"+messageID, nil, nil)
	if err != nil {
		return err
	}

	if !found {
		c.logger.Debug().Str("message_id", messageID).Msg("message already gone")
	}

	return nil
}

func (c *Client) CreateWebhook(ctx context.Context, channelID, name string) (*Webhook, error) {
	var webhook Webhook

	payload := map[string]string{"name": name}

	found, err := c.do(ctx, http.MethodPost, "/channels/"+channelID+"/webhooks", payload, &webhook)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, fmt.Errorf("create webhook: channel %s not found", channelID)
	}

	return &webhook, nil
}

func (c *Client) FetchWebhook(ctx context.Context, id, token string) (*Webhook, error) {
	var webhook Webhook

	found, err := c.do(ctx, http.MethodGet, "/webhooks/"+id+"/"+token, nil, &webhook)
	if err != nil || !found {
		return nil, err
	}

	return &webhook, nil
}

// WebhookPayload is the wire shape accepted by webhook execution.
type WebhookPayload struct {
	Content     string              `json:"content,omitempty"`
	Username    string              `json:"username,omitempty"`
	AvatarURL   string              `json:"avatar_url,omitempty"`
	Embeds      []Embed             `json:"embeds,omitempty"`
	Attachments []WebhookAttachment `json:"attachments,omitempty"`
}

type WebhookAttachment struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

func (c *Client) ExecuteWebhook(ctx context.Context, id, token string, payload WebhookPayload) (*Message, error) {
	var message Message

	found, err := c.do(ctx, http.MethodPost, "/webhooks/"+id+"/"+token+"?wait=true", payload, &message)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, fmt.Errorf("execute webhook: webhook %s not found", id)
	}

	return &message, nil
}

func (c *Client) EditWebhookMessage(ctx context.Context, id, token, messageID string, payload WebhookPayload) error {
	found, err := c.do(ctx, http.MethodPatch, "/webhooks/"+id+"/"+token+"/messages/"+messageID, payload, nil)
	if err != nil {
		return err
	}

	if !found {
		return fmt.Errorf("edit webhook message: message %s not found", messageID)
	}

	return nil
}

func (c *Client) DeleteWebhookMessage(ctx context.Context, id, token, messageID string) error {
	if _, err := c.do(ctx, http.MethodDelete, "/webhooks/"+id+"/"+token+"/messages/"+messageID, nil, nil); err != nil {
		return err
	}

	return nil
}

func (c *Client) RememberUser(id, name string) {
	c.mu.Lock()
	c.users[id] = name
	c.mu.Unlock()
}

func (c *Client) RememberRole(id, name string) {
	c.mu.Lock()
	c.roles[id] = name
	c.mu.Unlock()
}

func (c *Client) RememberChannel(id, name string) {
	c.mu.Lock()
	c.channels[id] = name
	c.mu.Unlock()
}

func (c *Client) UserName(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	name, ok := c.users[id]

	return name, ok
}

func (c *Client) RoleName(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	name, ok := c.roles[id]

	return name, ok
}

func (c *Client) ChannelName(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	name, ok := c.channels[id]

	return name, ok
}
