// Package observability holds the Prometheus instruments for the service.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	usersRegisteredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "directory",
		Name:      "users_registered_total",
		Help:      "Number of new users created (idempotent re-registrations excluded).",
	})
	exercisesCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "log",
		Name:      "exercises_created_total",
		Help:      "Number of exercise records persisted.",
	})
	exercisePersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "exercise_tracker",
		Subsystem: "log",
		Name:      "last_exercise_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent exercise persisted.",
	})
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "exercise_tracker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and status class.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status_class"})
)

func init() {
	prometheus.MustRegister(usersRegisteredTotal, exercisesCreatedTotal, exercisePersistGauge, requestDuration)
}

// RecordUserRegistered counts a freshly created user.
func RecordUserRegistered() {
	usersRegisteredTotal.Inc()
}

// RecordExercisePersisted counts a persisted exercise and updates the
// persistence watermark gauge.
func RecordExercisePersisted(ts time.Time) {
	exercisesCreatedTotal.Inc()
	if ts.IsZero() {
		return
	}
	exercisePersistGauge.Set(float64(ts.Unix()))
}

// ObserveRequest records one HTTP request.
func ObserveRequest(method string, status int, elapsed time.Duration) {
	class := "2xx"
	switch {
	case status >= 500:
		class = "5xx"
	case status >= 400:
		class = "4xx"
	case status >= 300:
		class = "3xx"
	}
	requestDuration.WithLabelValues(method, class).Observe(elapsed.Seconds())
}
