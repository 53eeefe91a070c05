package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedRequests counts feed reads by feed kind (global, following, user, liked).
	FeedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "savora_feed_requests_total",
		Help: "Total number of feed requests by feed kind",
	}, []string{"feed"})

	// FeedLatency records feed assembly latency by feed kind.
	FeedLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "savora_feed_latency_seconds",
		Help:    "Feed assembly latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"feed"})

	// LikeToggles counts like toggles by resulting action (like, unlike).
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "savora_like_toggles_total",
		Help: "Total number of like toggles by resulting action",
	}, []string{"action"})

	// FollowToggles counts follow toggles by resulting action (follow, unfollow).
	FollowToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "savora_follow_toggles_total",
		Help: "Total number of follow toggles by resulting action",
	}, []string{"action"})

	// CommentsCreated counts comments persisted on posts.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "savora_comments_created_total",
		Help: "Total number of comments created",
	})

	// NotificationsCreated counts notifications persisted by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "savora_notifications_created_total",
		Help: "Total number of notifications created by type",
	}, []string{"type"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "savora_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "savora_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// MediaUploads counts media store uploads by outcome.
	MediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "savora_media_uploads_total",
		Help: "Total number of media uploads by outcome",
	}, []string{"status"})

	// WebSocketConnectionsTotal is the gauge of active WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "savora_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to slow clients.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "savora_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// ObserveFeed records one feed request and its latency.
func ObserveFeed(feed string, start time.Time) {
	FeedRequests.WithLabelValues(feed).Inc()
	FeedLatency.WithLabelValues(feed).Observe(time.Since(start).Seconds())
}
