// Package metrics defines and registers all custom Prometheus metrics for the
// user platform. It is the single source of truth for metric names, labels,
// and help strings; the echoprometheus middleware adds the generic HTTP
// request metrics on top.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userplatform"

// ── Gateway proxy metrics ─────────────────────────────────────────────────────

// ProxyRequestsTotal counts requests relayed to backend services.
// Labels:
//   - route: the gateway route (e.g. "/user", "/upload")
//   - code: the upstream HTTP status relayed to the client, or "unavailable"
var ProxyRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proxy_requests_total",
		Help:      "Total number of requests proxied to backend services.",
	},
	[]string{"route", "code"},
)

// ProxyUpstreamDuration measures the round-trip time of one upstream call,
// retries included.
var ProxyUpstreamDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "proxy_upstream_duration_seconds",
		Help:      "Duration of proxied upstream calls, including retries.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)

// ── Bulk import metrics ───────────────────────────────────────────────────────

// ImportJobsTotal counts import jobs by outcome.
// Label:
//   - result: "accepted" (enqueued), "completed", or "failed"
var ImportJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_jobs_total",
		Help:      "Total number of bulk import jobs, by result.",
	},
	[]string{"result"},
)

// ImportRowsTotal counts individual rows handled by the worker.
// Label:
//   - result: "processed" or "skipped" (idempotency hit)
var ImportRowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_rows_total",
		Help:      "Total number of import rows handled, by result.",
	},
	[]string{"result"},
)

// ImportQueueDepth tracks the number of jobs waiting on the import queue,
// sampled by the worker between jobs.
var ImportQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "import_queue_depth",
		Help:      "Current number of jobs pending on the bulk import queue.",
	},
)
