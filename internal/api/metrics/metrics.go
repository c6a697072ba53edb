// Package metrics defines and registers all custom Prometheus metrics for the
// rental-marketplace API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry via
// promauto at package load; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// AuthzDecisionsTotal counts decision-engine verdicts.
// Labels:
//   - mode: the enforcement mode of the route (e.g. "admin", "customer")
//   - verdict: "allow" or "deny"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of access decisions, by enforcement mode and verdict.",
	},
	[]string{"mode", "verdict"},
)

// LoginsTotal counts sessions opened.
// Label:
//   - kind: "password", "google", "register", "admin_register", or "admin"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of sessions opened, by login kind.",
	},
	[]string{"kind"},
)

// SubmissionsTotal counts support submissions.
// Labels:
//   - resource: "refund", "inquiry", or "feedback"
//   - linked: "true" when the record was linked to a principal at creation
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of support submissions, by resource and linkage result.",
	},
	[]string{"resource", "linked"},
)

// ReconciliationsTotal counts documents linked to a principal by email
// reconciliation.
// Label:
//   - resource: "refund", "inquiry", or "feedback"
var ReconciliationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconciliations_total",
		Help:      "Total number of submissions linked to a user by email reconciliation, by resource.",
	},
	[]string{"resource"},
)

// ReconcileQueueDepth tracks events pending in each reconciliation worker.
// Label:
//   - worker_id: numeric worker index ("0", "1", ...)
var ReconcileQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reconcile_queue_depth",
		Help:      "Current number of jobs pending in each reconciliation worker channel.",
	},
	[]string{"worker_id"},
)
