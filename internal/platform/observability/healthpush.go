package observability

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/KartoffelChipss/bifrost/internal/platform/worker"
)

const (
	pushTimeout      = 10 * time.Second
	logFieldPlatform = "platform"
)

// HealthStatus is the result of one connectivity probe.
type HealthStatus struct {
	Healthy bool
	Message string
}

// Probe checks one platform's connectivity. A nil error means healthy.
type Probe func(ctx context.Context) error

// HealthPusher periodically probes one platform and pushes the result to
// a configured URL as GET query parameters (status=up|down, msg=...).
// An empty push URL disables pushing; probe results are still logged.
type HealthPusher struct {
	platform string
	pushURL  string
	probe    Probe
	client   *http.Client
	logger   *zerolog.Logger
}

// NewHealthPusher creates a pusher for one platform.
func NewHealthPusher(platform, pushURL string, probe Probe, logger *zerolog.Logger) *HealthPusher {
	return &HealthPusher{
		platform: platform,
		pushURL:  pushURL,
		probe:    probe,
		client:   &http.Client{Timeout: pushTimeout},
		logger:   logger,
	}
}

// Run pushes health status at the given interval until ctx is canceled.
func (p *HealthPusher) Run(ctx context.Context, interval time.Duration) error {
	return worker.TickerLoop(ctx, worker.TickerConfig{
		Name:       fmt.Sprintf("health-push-%s", p.platform),
		Interval:   interval,
		OnTick:     func(ctx context.Context) { p.PushOnce(ctx) },
		RunOnStart: true,
		Logger:     p.logger,
	})
}

// PushOnce probes the platform and pushes the result once.
func (p *HealthPusher) PushOnce(ctx context.Context) {
	status := p.check(ctx)

	if status.Healthy {
		p.logger.Info().Str(logFieldPlatform, p.platform).Msg("health status: UP")
		HealthPushes.WithLabelValues(p.platform, "up").Inc()
	} else {
		p.logger.Warn().Str(logFieldPlatform, p.platform).Str("reason", status.Message).Msg("health status: DOWN")
		HealthPushes.WithLabelValues(p.platform, "down").Inc()
	}

	if p.pushURL == "" {
		return
	}

	if err := p.push(ctx, status); err != nil {
		p.logger.Warn().Err(err).Str(logFieldPlatform, p.platform).Msg("health push failed")
	}
}

func (p *HealthPusher) check(ctx context.Context) HealthStatus {
	if p.probe == nil {
		return HealthStatus{Healthy: false, Message: "no probe configured"}
	}

	if err := p.probe(ctx); err != nil {
		return HealthStatus{Healthy: false, Message: err.Error()}
	}

	return HealthStatus{Healthy: true}
}

func (p *HealthPusher) push(ctx context.Context, status HealthStatus) error {
	u, err := url.Parse(p.pushURL)
	if err != nil {
		return fmt.Errorf("parse push url: %w", err)
	}

	q := u.Query()
	if status.Healthy {
		q.Set("status", "up")
	} else {
		q.Set("status", "down")
	}

	if status.Message != "" {
		q.Set("msg", status.Message)
	}

	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("push health status: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("push health status: HTTP %d", resp.StatusCode)
	}

	return nil
}
