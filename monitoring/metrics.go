// Package monitoring implements the metrics side of spec §10's ambient
// stack: a small Metrics interface plus a Prometheus-backed
// implementation, adapted from the teacher's
// pkg/bubbly/monitoring/prometheus.go (struct of CounterVec/Histogram
// fields registered against a caller-supplied prometheus.Registerer,
// panicking on duplicate registration so misconfiguration fails fast
// at startup).
//
// Generalized from the teacher's composable-creation/cache-hit metrics
// to this module's own five named metrics (recompositions, composable
// failures, callback registrations, render duration, slot table size),
// all prefixed "summon_" in place of the teacher's "bubblyui_".
package monitoring

import "time"

// Metrics is the pluggable metrics sink. A nil Metrics is never passed
// around; Noop is the harmless default, matching observability.Noop.
type Metrics interface {
	RecordRecomposition(root string)
	RecordComposableFailure(callSite string)
	RecordCallbackRegistration()
	RecordRenderDuration(d time.Duration)
	RecordSlotTableSize(size int)
}

// Noop discards every recorded metric.
type Noop struct{}

func (Noop) RecordRecomposition(string)         {}
func (Noop) RecordComposableFailure(string)     {}
func (Noop) RecordCallbackRegistration()        {}
func (Noop) RecordRenderDuration(time.Duration) {}
func (Noop) RecordSlotTableSize(int)            {}
