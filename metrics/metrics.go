// Package metrics exposes the agent's own Prometheus collectors. Collectors
// register once at package load; callers just record.
package metrics

import (
	"time"

	"github.com/kvistad/hostmon/status"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hostmon",
		Subsystem: "checks",
		Name:      "total",
		Help:      "Check cycles executed, by monitor, kind, and resulting state.",
	}, []string{"monitor", "kind", "state"})

	checkDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hostmon",
		Subsystem: "checks",
		Name:      "duration_seconds",
		Help:      "Duration of check cycles, by monitor and kind.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"monitor", "kind"})

	storeOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hostmon",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Persistence operations attempted, by operation and result.",
	}, []string{"operation", "result"})
)

// RecordCheck counts one completed check cycle and its duration.
func RecordCheck(monitor, kind string, st status.Status, elapsed time.Duration) {
	checksTotal.WithLabelValues(monitor, kind, st.State.String()).Inc()
	checkDuration.WithLabelValues(monitor, kind).Observe(elapsed.Seconds())
}

// RecordStore counts one persistence attempt.
func RecordStore(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	storeOpsTotal.WithLabelValues(operation, result).Inc()
}
