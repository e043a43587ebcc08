// Package recompose implements the recomposer (spec component C3): the
// state machine that owns one render root's composer, renderer
// context, and callback registry, drives the initial composition pass,
// and (for interactive use beyond SSR) drains invalidations in
// ancestor-first order.
//
// Grounded on the teacher's pkg/bubbly/runner.go for the
// functional-options entry-point shape (here: Root construction options
// rather than RunOption/tea.ProgramOption) and pkg/core/update_queue.go
// for the ancestor-first scheduling idiom, generalized from Bubbletea's
// single always-running TUI loop to SSR's single-pass-then-flush
// lifecycle (spec §4.3).
package recompose

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/codeyousef/summon-sub017/ambient"
	"github.com/codeyousef/summon-sub017/callback"
	"github.com/codeyousef/summon-sub017/compose"
	"github.com/codeyousef/summon-sub017/monitoring"
	"github.com/codeyousef/summon-sub017/observability"
	"github.com/codeyousef/summon-sub017/render"
	"github.com/google/uuid"
)

// State is the recomposer's lifecycle state (spec §4.3).
type State int

const (
	Idle State = iota
	Composing
	Flushing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Composing:
		return "composing"
	case Flushing:
		return "flushing"
	default:
		return "unknown"
	}
}

// Root owns everything scoped to one render root: the composer, the
// renderer context, the callback registry, and the invalidation queue
// that lets interactive callers re-run parts of the tree after the
// initial pass.
type Root struct {
	id       string
	composer *compose.Composer
	renderer *render.R
	registry *callback.Registry
	queue    *invalidationQueue
	log      *slog.Logger
	reporter observability.Reporter
	metrics  monitoring.Metrics
	tickDeadline int

	state State
	root  *compose.Scope
}

// Option configures a new Root.
type Option func(*rootConfig)

type rootConfig struct {
	debug      bool
	logger     *slog.Logger
	reporter   observability.Reporter
	metrics    monitoring.Metrics
	tickDeadline int
}

// defaultRecompositionDeadline is the implementation-defined N of spec
// §7's "Recomposition deadline exceeded" condition: the maximum number
// of invalidations a single RunRecompositionTick call will drain before
// cutting off, used when WithRecompositionDeadline is not supplied.
const defaultRecompositionDeadline = 1000

// WithDebug enables renderer debug mode (fallback elements and
// diagnostic comments carry extra detail).
func WithDebug() Option { return func(c *rootConfig) { c.debug = true } }

// WithLogger overrides the default logger (os.Stderr, text handler).
func WithLogger(l *slog.Logger) Option { return func(c *rootConfig) { c.logger = l } }

// WithReporter wires an observability.Reporter so composable-body
// failures (§7) are forwarded beyond the slog line. Defaults to
// observability.Noop.
func WithReporter(r observability.Reporter) Option {
	return func(c *rootConfig) { c.reporter = r }
}

// WithMetrics wires a monitoring.Metrics sink. Defaults to monitoring.Noop.
func WithMetrics(m monitoring.Metrics) Option {
	return func(c *rootConfig) { c.metrics = m }
}

// WithRecompositionDeadline overrides the number of invalidations a
// single RunRecompositionTick call will drain before cutting off (spec
// §7 "Recomposition deadline exceeded": "drained more than N
// invalidations without convergence — cut off and emit a warning").
// n <= 0 is treated as "use the default".
func WithRecompositionDeadline(n int) Option {
	return func(c *rootConfig) { c.tickDeadline = n }
}

// NewRoot constructs a fresh Root, ready for exactly one call to Run
// (spec §5: "each must have its own renderer-context and composer
// instances").
func NewRoot(opts ...Option) *Root {
	cfg := rootConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	if cfg.reporter == nil {
		cfg.reporter = observability.Noop{}
	}
	if cfg.metrics == nil {
		cfg.metrics = monitoring.Noop{}
	}
	if cfg.tickDeadline <= 0 {
		cfg.tickDeadline = defaultRecompositionDeadline
	}

	id := uuid.NewString()
	r := &Root{
		id:           id,
		renderer:     render.New(cfg.debug),
		registry:     callback.New(),
		queue:        newInvalidationQueue(),
		log:          cfg.logger.With("root_id", id),
		reporter:     cfg.reporter,
		metrics:      cfg.metrics,
		tickDeadline: cfg.tickDeadline,
		state:        Idle,
	}
	r.composer = compose.New(r.enqueueInvalidation)
	return r
}

// ID returns this root's trace id (used as the root_id log field and in
// reported observability contexts).
func (r *Root) ID() string { return r.id }

// State reports the recomposer's current lifecycle state.
func (r *Root) State() State { return r.state }

// Renderer exposes the renderer context, for callers assembling output
// after Run returns (e.g. the hydration packager).
func (r *Root) Renderer() *render.R { return r.renderer }

// Registry exposes the callback registry.
func (r *Root) Registry() *callback.Registry { return r.registry }

func (r *Root) enqueueInvalidation(scope *compose.Scope) {
	r.queue.enqueue(scope)
}

// Invalidate enqueues scope for recomposition (spec: `invalidate(scope)`
// — "Idle → upon invalidate(scope): moves scope into queue").
func (r *Root) Invalidate(scope *compose.Scope) {
	r.enqueueInvalidation(scope)
}

// PendingInvalidations reports how many distinct scopes are queued.
func (r *Root) PendingInvalidations() int { return r.queue.len() }

// Run performs the initial composition pass (Idle → Composing), then
// flushes (Composing → Flushing → Idle), per spec §4.3. f is the root
// composable body; it receives the root compose.Scope and is expected
// to read CurrentRenderer/CurrentComposer/CurrentRegistry via this
// package rather than any global.
func (r *Root) Run(f func(scope *compose.Scope)) {
	start := time.Now()
	r.state = Composing
	scope := r.composer.OpenScope(nil, compose.Site("root"))
	r.root = scope

	ambient.Provide(scope, RendererKey, r.renderer, func() {
		ambient.Provide(scope, ComposerKey, r.composer, func() {
			ambient.Provide(scope, RegistryKey, r.registry, func() {
				r.runScopeSafely(scope, func() { f(scope) })
			})
		})
	})

	staleChildren, _ := r.composer.CloseScope(scope)
	r.state = Flushing
	for _, c := range staleChildren {
		r.composer.Dispose(c)
	}
	r.state = Idle

	r.metrics.RecordRecomposition(r.id)
	r.metrics.RecordSlotTableSize(scope.TreeSlotCount())
	// Registry has no registration-event hook of its own, so this
	// approximates one RecordCallbackRegistration per entry present at
	// the end of the pass; fine for SSR's single Run call, but would
	// double-count entries already present across repeated
	// RunRecompositionTick calls.
	for range r.registry.Ordered() {
		r.metrics.RecordCallbackRegistration()
	}
	r.metrics.RecordRenderDuration(time.Since(start))
}

// RunRecompositionTick drains the invalidation queue, re-running each
// still-live scope's composable body (spec: `run_recomposition_tick()`
// — "drain the queue; for each unique scope still live, re-run its
// composable body... scopes whose parent has been disposed are
// discarded"). body is supplied by the caller because the recomposer
// itself has no reference to "the composable that produced this scope"
// — only the application knows that.
//
// Drains until the queue is empty or r.tickDeadline invalidations have
// been processed, whichever comes first (spec line 94: "the tick
// drains until the queue is empty or a deadline is reached
// (implementation-defined)"). Hitting the deadline is the §7
// "Recomposition deadline exceeded" condition — a self- or mutually-
// invalidating cycle never converges otherwise — and is reported via
// WithRecompositionDeadline's configured limit, logged at Warn and
// forwarded to the observability.Reporter; the queue is left non-empty
// and the output still reflects the last completed pass.
//
// For SSR, one call to Run is sufficient and this is never invoked
// (spec §4.3 design note); it exists for interactive/recomposition use
// beyond the core SSR contract.
func (r *Root) RunRecompositionTick(body func(scope *compose.Scope)) {
	r.metrics.RecordRecomposition(r.id)
	r.composer.ResetUsed()
	processed := 0
	for {
		if processed >= r.tickDeadline {
			r.log.Warn("recomposition deadline exceeded",
				"invalidations", processed, "deadline", r.tickDeadline, "pending", r.queue.len())
			r.reporter.Report(deadlineExceeded{processed}, observability.Context{
				RootID: r.id,
				Kind:   observability.RecompositionDeadline,
			})
			return
		}
		scope, ok := r.queue.dequeue()
		if !ok {
			return
		}
		if !scope.Live() {
			continue
		}
		r.runScopeSafely(scope, func() { body(scope) })
		processed++
	}
}

// deadlineExceeded adapts a recomposition-deadline cutoff to an error
// for Reporter.Report.
type deadlineExceeded struct{ processed int }

func (d deadlineExceeded) Error() string {
	return fmt.Sprintf("recomposition deadline exceeded after %d invalidations", d.processed)
}

// runScopeSafely executes body, converting a panic into the spec §4.3
// failure semantics: "an exception escaping a composable aborts the
// current scope; the renderer emits a fallback element... logs the
// error, continues the parent." Effects registered by the aborted body
// are not rolled back: whatever it queued on scope still fires when
// scope is closed, and child scopes it had already closed have
// committed theirs. Run's own CloseScope/Dispose walk still runs,
// pruning children the aborted body did not reopen this pass.
func (r *Root) runScopeSafely(scope *compose.Scope, body func()) {
	defer func() {
		if rec := recover(); rec != nil {
			site := string(scope.Site())
			r.log.Error("composable body panicked",
				"scope_id", scope.ID(), "site", site, "panic", fmt.Sprint(rec))
			r.metrics.RecordComposableFailure(site)
			r.reporter.Report(panicValue{rec}, observability.Context{
				RootID: r.id,
				Site:   site,
				Kind:   observability.ComposableFailure,
			})
			r.renderer.RenderFallback(fmt.Sprint(rec))
		}
	}()
	body()
}

// panicValue adapts a recovered panic value to an error for Reporter.Report.
type panicValue struct{ v any }

func (p panicValue) Error() string { return fmt.Sprint(p.v) }

