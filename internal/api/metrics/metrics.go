// Package metrics defines and registers all custom Prometheus metrics for
// the catalog platform. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthDecisionsTotal counts gatekeeper decisions at every enforcement point.
// Labels:
//   - outcome: "allow" or "deny"
//   - reason: deny reason ("missing_token", "expired", ...); "none" on allow
var AuthDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_decisions_total",
		Help:      "Total number of authorization decisions, by outcome and deny reason.",
	},
	[]string{"outcome", "reason"},
)

// ── Identity metrics ──────────────────────────────────────────────────────────

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "success" or "failure"
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
//   - result: "success" or "failure"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// AuditEventsTotal counts auth events persisted to the audit trail.
// Labels:
//   - action: "login", "register", "deactivate"
//   - result: "success" or "failure"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of auth events written to the audit trail.",
	},
	[]string{"action", "result"},
)

// AuditQueueDepth tracks the number of auth events waiting in each worker
// channel of the audit dispatcher.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of auth events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
