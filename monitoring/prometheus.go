package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements Metrics using Prometheus collectors,
// following the teacher's NewPrometheusMetrics shape exactly: all
// metrics are created and registered eagerly against reg, and a
// duplicate-registration error panics rather than being swallowed.
//
// Metrics exposed (spec §10):
//   - summon_recompositions_total{root}
//   - summon_composable_failures_total{call_site}
//   - summon_callback_registrations_total
//   - summon_render_duration_seconds
//   - summon_slot_table_size
type PrometheusMetrics struct {
	recompositions        *prometheus.CounterVec
	composableFailures    *prometheus.CounterVec
	callbackRegistrations prometheus.Counter
	renderDuration        prometheus.Histogram
	slotTableSize         prometheus.Histogram
}

// NewPrometheusMetrics creates and registers all summon_* collectors
// against reg. Panics on duplicate registration (fail fast at
// startup), matching the teacher's NewPrometheusMetrics.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	recompositions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summon_recompositions_total",
			Help: "Total number of composition passes (initial run plus recomposition ticks), partitioned by render root.",
		},
		[]string{"root"},
	)

	composableFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summon_composable_failures_total",
			Help: "Total number of composable-body failures, partitioned by call site.",
		},
		[]string{"call_site"},
	)

	callbackRegistrations := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "summon_callback_registrations_total",
			Help: "Total number of callback registrations across all render roots.",
		},
	)

	renderDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summon_render_duration_seconds",
			Help:    "Histogram of full render-root durations, in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	slotTableSize := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summon_slot_table_size",
			Help:    "Histogram of slot table sizes per render root at close.",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512},
		},
	)

	reg.MustRegister(recompositions)
	reg.MustRegister(composableFailures)
	reg.MustRegister(callbackRegistrations)
	reg.MustRegister(renderDuration)
	reg.MustRegister(slotTableSize)

	return &PrometheusMetrics{
		recompositions:        recompositions,
		composableFailures:    composableFailures,
		callbackRegistrations: callbackRegistrations,
		renderDuration:        renderDuration,
		slotTableSize:         slotTableSize,
	}
}

// RecordRecomposition increments summon_recompositions_total for root.
func (pm *PrometheusMetrics) RecordRecomposition(root string) {
	pm.recompositions.WithLabelValues(root).Inc()
}

// RecordComposableFailure increments summon_composable_failures_total
// for the composable call site where a body panicked or returned an
// error (spec §7).
func (pm *PrometheusMetrics) RecordComposableFailure(callSite string) {
	pm.composableFailures.WithLabelValues(callSite).Inc()
}

// RecordCallbackRegistration increments
// summon_callback_registrations_total once per callback.Registry.Register call.
func (pm *PrometheusMetrics) RecordCallbackRegistration() {
	pm.callbackRegistrations.Inc()
}

// RecordRenderDuration observes d against summon_render_duration_seconds.
func (pm *PrometheusMetrics) RecordRenderDuration(d time.Duration) {
	pm.renderDuration.Observe(d.Seconds())
}

// RecordSlotTableSize observes size against summon_slot_table_size.
func (pm *PrometheusMetrics) RecordSlotTableSize(size int) {
	pm.slotTableSize.Observe(float64(size))
}
