// Package metrics defines and registers all custom Prometheus metrics for the
// cafe gateway. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gateway"

// BackendCallsTotal counts outbound backend RPC calls.
// Labels:
//   - service: "core", "review", or "reservation"
//   - op: the remote operation name (e.g. "GetCafes")
//   - outcome: "ok" or the BackendError kind ("timeout", "unreachable", …)
var BackendCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_calls_total",
		Help:      "Total number of backend RPC calls, by service, operation, and outcome.",
	},
	[]string{"service", "op", "outcome"},
)

// BackendCallDuration measures how long a single backend call takes,
// including calls that end in a timeout.
var BackendCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_call_duration_seconds",
		Help:      "Duration of backend RPC calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"service"},
)

// DegradedSectionsTotal counts composite sections that fell back to their
// empty default because a best-effort backend call failed.
// Labels:
//   - operation: the composite operation (e.g. "profile_bundle")
//   - section: the degraded section (e.g. "reviews")
var DegradedSectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "degraded_sections_total",
		Help:      "Total number of composite sections served degraded.",
	},
	[]string{"operation", "section"},
)

// LoginsTotal counts authentication attempts.
// Label:
//   - outcome: "success", "failure", or "backend_error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)
