package observability

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryOption configures the underlying sentry.ClientOptions, mirroring
// the teacher's pkg/bubbly/observability SentryOption shape.
type SentryOption func(*sentry.ClientOptions)

// WithBeforeSend installs a BeforeSend hook, letting callers filter or
// redact events before they leave the process.
func WithBeforeSend(fn func(*sentry.Event, *sentry.EventHint) *sentry.Event) SentryOption {
	return func(o *sentry.ClientOptions) { o.BeforeSend = fn }
}

// WithDebug enables Sentry's own debug logging.
func WithDebug(debug bool) SentryOption {
	return func(o *sentry.ClientOptions) { o.Debug = debug }
}

// WithEnvironment tags every event with environment.
func WithEnvironment(environment string) SentryOption {
	return func(o *sentry.ClientOptions) { o.Environment = environment }
}

// WithRelease tags every event with a release identifier (e.g. the
// render-root trace id's build, or a deployment version).
func WithRelease(release string) SentryOption {
	return func(o *sentry.ClientOptions) { o.Release = release }
}

// SentryReporter sends reported failures to Sentry via its Hub API.
// An empty DSN is allowed and disables sending (useful in tests),
// exactly as in the teacher's NewSentryReporter.
type SentryReporter struct {
	hub *sentry.Hub
}

// NewSentryReporter initializes the Sentry SDK with dsn and opts and
// returns a Reporter backed by the current hub.
func NewSentryReporter(dsn string, opts ...SentryOption) (*SentryReporter, error) {
	clientOpts := sentry.ClientOptions{Dsn: dsn}
	for _, opt := range opts {
		opt(&clientOpts)
	}
	if err := sentry.Init(clientOpts); err != nil {
		return nil, fmt.Errorf("observability: init sentry: %w", err)
	}
	return &SentryReporter{hub: sentry.CurrentHub()}, nil
}

// Report sends err to Sentry with ctx's fields attached as tags/extras.
func (r *SentryReporter) Report(err error, ctx Context) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("root_id", ctx.RootID)
		scope.SetTag("site", ctx.Site)
		scope.SetTag("kind", ctx.Kind.String())
		for k, v := range ctx.Tags {
			scope.SetTag(k, v)
		}
		scope.SetExtra("scope_id", ctx.ScopeID)
		for k, v := range ctx.Extra {
			scope.SetExtra(k, v)
		}
		r.hub.CaptureException(err)
	})
}

// Flush blocks until pending events are sent or timeout elapses.
// sentry.Flush reports success via a bool; this method always returns
// nil for interface compatibility, matching the teacher's own
// Flush(timeout) (pkg/bubbly/observability/sentry_reporter.go).
func (r *SentryReporter) Flush(timeout time.Duration) error {
	sentry.Flush(timeout)
	return nil
}
