// Package metrics defines and registers all custom Prometheus metrics for the
// librarydesk console. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// via promauto; the /metrics endpoint exposes them together with the echo
// request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "librarydesk"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts round trips to the library REST backend.
// Labels:
//   - resource: the wrapped resource (e.g. "books", "fines")
//   - method: HTTP verb
//   - outcome: "ok", "4xx", "5xx", "transport" or "malformed"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the library backend.",
	},
	[]string{"resource", "method", "outcome"},
)

// BackendRequestDuration measures backend round-trip latency.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests issued to the library backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource", "method"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - portal: "general" or "admin"
//   - result: "ok", "denied", "invalid" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by portal and result.",
	},
	[]string{"portal", "result"},
)

// ── Journal metrics ───────────────────────────────────────────────────────────

// JournalQueueDepth tracks entries waiting in each journal worker channel.
var JournalQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "journal_queue_depth",
		Help:      "Current number of activity entries pending in each journal worker channel.",
	},
	[]string{"worker_id"},
)

// JournalWritesTotal counts journal writes.
// Label:
//   - result: "ok", "error" or "dropped"
var JournalWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "journal_writes_total",
		Help:      "Total number of activity journal writes, by result.",
	},
	[]string{"result"},
)
