package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bitmentor_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bitmentor_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Domain metrics
	UsersRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bitmentor_users_registered_total",
			Help: "Total number of registered users",
		},
	)

	Enrollments = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bitmentor_enrollments_total",
			Help: "Total number of new course enrollments",
		},
	)

	TestScores = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bitmentor_test_score_percent",
			Help:    "Distribution of mock test scores by course",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"course_id"},
	)

	ForumPosts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bitmentor_forum_posts_total",
			Help: "Total number of forum threads and replies",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(UsersRegistered)
	prometheus.MustRegister(Enrollments)
	prometheus.MustRegister(TestScores)
	prometheus.MustRegister(ForumPosts)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
