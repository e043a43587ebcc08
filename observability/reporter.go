// Package observability implements the error-reporting side of spec
// §7's error-handling design: composable-body failures, sanitizer
// concerns, and recomposition-deadline warnings are reportable events,
// not just slog lines, for callers who want them centralized (Sentry,
// a metrics pipeline, etc.).
//
// Grounded on the teacher's pkg/bubbly/observability package: the
// ErrorReporter interface + ConsoleReporter/SentryReporter pair,
// generalized from Bubbletea's "handler panic in a component event"
// failure model to this module's three §7 non-fatal failure kinds.
package observability

import "time"

// Kind classifies which spec §7 non-fatal failure a Context describes.
type Kind int

const (
	ComposableFailure Kind = iota
	SanitizerConcern
	RecompositionDeadline
)

func (k Kind) String() string {
	switch k {
	case ComposableFailure:
		return "composable_failure"
	case SanitizerConcern:
		return "sanitizer_concern"
	case RecompositionDeadline:
		return "recomposition_deadline"
	default:
		return "unknown"
	}
}

// Context carries the structured fields attached to a reported event.
type Context struct {
	RootID    string
	ScopeID   uint64
	Site      string
	Kind      Kind
	Timestamp time.Time
	Tags      map[string]string
	Extra     map[string]any
}

// Reporter is the pluggable error-reporting sink (spec §7 is silent on
// a specific destination; this is the seam implementations wire a
// concrete backend into).
type Reporter interface {
	Report(err error, ctx Context)
	Flush(timeout time.Duration) error
}

// Noop discards every report. It is the default when no reporter is
// configured, matching the teacher's pattern of a harmless zero-value
// default (teacher: ConsoleReporter with verbose=false serves a similar
// role, but this module's default does not even write to stderr, since
// recompose.Root already logs via slog independently).
type Noop struct{}

func (Noop) Report(error, Context)     {}
func (Noop) Flush(time.Duration) error { return nil }
