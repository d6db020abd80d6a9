// Package metrics defines and registers all custom Prometheus metrics for the
// technotes API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "technotes"

// ── Write metrics ─────────────────────────────────────────────────────────────

// WritesTotal counts successful mutating operations.
// Labels:
//   - entity: "user" or "note"
//   - op: "create", "update" or "delete"
var WritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "writes_total",
		Help:      "Total number of successful create/update/delete operations.",
	},
	[]string{"entity", "op"},
)

// RejectionsTotal counts mutating operations refused by a business rule.
// Labels:
//   - entity: "user" or "note"
//   - reason: "validation", "not_found", "duplicate", "has_notes"
var RejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rejections_total",
		Help:      "Total number of write requests rejected by validation or integrity checks.",
	},
	[]string{"entity", "reason"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// UsernameCacheTotal counts owner lookups during note listing.
// Label:
//   - result: "hit", "miss" or "error"
var UsernameCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "username_cache_total",
		Help:      "Total number of username cache lookups, labelled by result.",
	},
	[]string{"result"},
)
