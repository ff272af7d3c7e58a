// Package metrics defines and registers all custom Prometheus metrics for
// the portal gateway. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// LoginsTotal counts login attempts submitted through the portal.
// Label:
//   - result: "success", "rejected" (service refused), or "error" (transport)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "rejected", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// SessionRestoresTotal counts startup session restores.
// Label:
//   - result: "restored" or "unauthenticated"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of startup session restore attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts logout activations. Logout cannot fail, so the
// counter is unlabelled.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logouts.",
	},
)

// AuthRequestDuration measures how long calls to the authentication service
// take, end to end.
// Label:
//   - operation: "login", "register", or "restore"
var AuthRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_request_duration_seconds",
		Help:      "Duration of authentication service calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)
