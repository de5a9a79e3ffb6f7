package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_messages_relayed_total",
		Help: "The total number of relayed messages",
	}, []string{"direction", "status"})

	EditsRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_edits_relayed_total",
		Help: "The total number of relayed message edits",
	}, []string{"direction", "status"})

	DeletesRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_deletes_relayed_total",
		Help: "The total number of relayed message deletions",
	}, []string{"direction", "status"})

	MessagesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_messages_dropped_total",
		Help: "The total number of inbound messages dropped before relaying",
	}, []string{"side", "reason"})

	CommandsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_commands_handled_total",
		Help: "The total number of chat commands handled",
	}, []string{"side", "command"})

	WebhookRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_webhook_requests_total",
		Help: "The total number of webhook API requests",
	}, []string{"platform", "operation", "status"})

	WebhookRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bridge_webhook_request_duration_seconds",
		Help:    "Duration of webhook API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"platform", "operation"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_link_cache_hits_total",
		Help: "The total number of link cache hits",
	}, []string{"entity"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_link_cache_misses_total",
		Help: "The total number of link cache misses",
	}, []string{"entity"})

	HealthPushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_health_pushes_total",
		Help: "The total number of health status pushes",
	}, []string{"platform", "status"})
)
