package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TeamsCreated counts teams created since process start.
	TeamsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foilctf_total_teams_created",
		Help: "Total number of teams created",
	})

	// ActiveFriendRequests tracks pending friend requests.
	ActiveFriendRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "foilctf_active_friend_requests",
		Help: "Number of pending friend requests",
	})

	// ActiveTeamJoinRequests tracks pending team join requests.
	ActiveTeamJoinRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "foilctf_active_team_join_requests",
		Help: "Number of pending team join requests",
	})

	// NotificationsFannedOut counts notification recipient rows written.
	NotificationsFannedOut = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foilctf_notifications_fanned_out_total",
		Help: "Total number of notification recipient rows written",
	})

	// NotificationPublishFailures counts best-effort publish failures.
	NotificationPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foilctf_notification_publish_failures_total",
		Help: "Total number of failed notification publishes",
	})

	// InvariantViolations counts violations found by the consistency audit.
	InvariantViolations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foilctf_invariant_violations_total",
		Help: "Consistency violations found by the audit, by kind",
	}, []string{"kind"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foilctf_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records transaction latency by operation.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "foilctf_database_query_latency_seconds",
		Help:    "Database transaction latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// TrackQuery returns a function that records latency when called (e.g. defer).
func TrackQuery(operation string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
