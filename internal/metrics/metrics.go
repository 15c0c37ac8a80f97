// Package metrics defines the custom Prometheus metrics of the mitra auth API.
// It is the single source of truth for metric names, labels and help strings.
//
// Call Register once at startup, before the HTTP server starts, with the
// registry that backs the /metrics endpoint.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mitra"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "forbidden" or "error"
var LoginAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_login_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PasswordRehashTotal counts lazy migrations of legacy password hashes.
// Label:
//   - result: "migrated" or "failed"
var PasswordRehashTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_password_rehash_total",
		Help:      "Total number of legacy password hashes re-hashed on login.",
	},
	[]string{"result"},
)

// GateRejectionsTotal counts requests refused by the access control gate.
// Label:
//   - reason: "missing_token", "invalid_token", "subject_not_found",
//     "deactivated" or "forbidden"
var GateRejectionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_gate_rejections_total",
		Help:      "Total number of requests rejected by the access control gate.",
	},
	[]string{"reason"},
)

// ── Partner metrics ───────────────────────────────────────────────────────────

// RoleTransitionsTotal counts committed role transitions driven by partner writes.
// Label:
//   - transition: "promote_mitra", "demote_customer", "attach_staff" or "detach_staff"
var RoleTransitionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "partner_role_transitions_total",
		Help:      "Total number of user role transitions committed with a partner write.",
	},
	[]string{"transition"},
)

// ── Worker pool metrics ───────────────────────────────────────────────────────

// HashPoolQueueDepth tracks password hashing jobs waiting for a worker.
var HashPoolQueueDepth = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hash_pool_queue_depth",
		Help:      "Current number of password hashing jobs waiting for a worker.",
	},
)

var collectors = []prometheus.Collector{
	LoginAttemptsTotal,
	PasswordRehashTotal,
	GateRejectionsTotal,
	RoleTransitionsTotal,
	HashPoolQueueDepth,
}

// Register adds every metric to reg. Metrics already present in reg are skipped,
// so Register may be called once per registry.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
