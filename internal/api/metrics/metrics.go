// Package metrics defines and registers all custom Prometheus metrics for
// the auth gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at init via promauto;
// the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "authgw"

// LoginAttemptsTotal counts provider-chain authentications.
// Labels:
//   - provider: chain member that settled the attempt ("local", "directory",
//     or "" when no provider applied)
//   - outcome: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total provider-chain authentication attempts by provider and outcome.",
	},
	[]string{"provider", "outcome"},
)

// AuthorizationDenialsTotal counts authenticated requests rejected by the
// authorization policy.
// Label:
//   - rule: name of the policy rule that denied the request
var AuthorizationDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denials_total",
		Help:      "Total requests denied for insufficient authority, by policy rule.",
	},
	[]string{"rule"},
)

// SessionsIssuedTotal counts sessions registered after a fresh login on a
// session-enabled route group.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total sessions issued.",
	},
)

// SessionsEvictedTotal counts sessions pushed out by the per-principal
// concurrent-session cap.
var SessionsEvictedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_evicted_total",
		Help:      "Total sessions evicted by the concurrent-session cap.",
	},
)

// AuditDroppedTotal counts audit events dropped because the dispatcher
// queue was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total audit events dropped due to a full dispatcher queue.",
	},
)
