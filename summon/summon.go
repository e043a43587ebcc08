// Package summon is the module's public entry point (spec §6 "SSR
// entry points"): render, render_hydrated, render_chunks, wired on top
// of compose, render, callback, hydrate, and recompose.
//
// Grounded on the teacher's pkg/bubbly/runner.go: a functional-options
// Run(component, opts...) that builds a config struct then executes —
// here Render/RenderHydrated/RenderChunks play Run's role and Option
// plays RunOption's, generalized from "launch a TUI program" to
// "execute one SSR pass and return its string output".
package summon

import (
	"fmt"
	"log/slog"

	"github.com/codeyousef/summon-sub017/compose"
	"github.com/codeyousef/summon-sub017/hydrate"
	"github.com/codeyousef/summon-sub017/monitoring"
	"github.com/codeyousef/summon-sub017/observability"
	"github.com/codeyousef/summon-sub017/recompose"
)

// Body is the function signature every render entry point accepts: the
// root composable, receiving the recomposer-assigned root scope so it
// can open children and read ambient context (spec GLOSSARY
// "Composable").
type Body func(scope *compose.Scope)

// config collects the options every entry point shares.
type config struct {
	debug         bool
	logger        *slog.Logger
	document      bool
	bootstrapOpts []hydrate.BootstrapOption
	reporter      observability.Reporter
	metrics       monitoring.Metrics
	tickDeadline  int
}

// Option configures a render entry point.
type Option func(*config)

// WithDebug enables renderer debug mode (composable-body failures
// attach their error message as a data attribute, per spec §7).
func WithDebug() Option { return func(c *config) { c.debug = true } }

// WithLogger overrides the default structured logger.
func WithLogger(l *slog.Logger) Option { return func(c *config) { c.logger = l } }

// WithDocument switches from fragment rendering (default) to full
// document rendering: `<!doctype html>` plus `<html>`/`<head>`/`<body>`
// wrapping, with head elements inserted between `<head>` tags (spec §6
// "HTML output").
func WithDocument() Option { return func(c *config) { c.document = true } }

// WithBootstrapPath overrides the hydration bootstrap script's src
// (spec §6 "Static assets": name stability is the contract, hosting
// path is the caller's choice).
func WithBootstrapPath(path string) Option {
	return func(c *config) { c.bootstrapOpts = append(c.bootstrapOpts, hydrate.WithBootstrapPath(path)) }
}

// WithInlineBootstrap inlines the bootstrap script instead of
// referencing a path.
func WithInlineBootstrap(js string) Option {
	return func(c *config) { c.bootstrapOpts = append(c.bootstrapOpts, hydrate.WithInlineBootstrap(js)) }
}

// WithReporter wires an observability.Reporter so composable-body
// failures (§7) reach a destination beyond the structured log line.
func WithReporter(r observability.Reporter) Option {
	return func(c *config) { c.reporter = r }
}

// WithMetrics wires a monitoring.Metrics sink (spec §10).
func WithMetrics(m monitoring.Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithRecompositionDeadline overrides the number of invalidations a
// single recomposition tick will drain before cutting off (spec §7
// "Recomposition deadline exceeded", SPEC_FULL.md §10
// "recomposition-tick deadline").
func WithRecompositionDeadline(n int) Option {
	return func(c *config) { c.tickDeadline = n }
}

func resolve(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func rootOptions(c config) []recompose.Option {
	var opts []recompose.Option
	if c.debug {
		opts = append(opts, recompose.WithDebug())
	}
	if c.logger != nil {
		opts = append(opts, recompose.WithLogger(c.logger))
	}
	if c.reporter != nil {
		opts = append(opts, recompose.WithReporter(c.reporter))
	}
	if c.metrics != nil {
		opts = append(opts, recompose.WithMetrics(c.metrics))
	}
	if c.tickDeadline != 0 {
		opts = append(opts, recompose.WithRecompositionDeadline(c.tickDeadline))
	}
	return opts
}

// Render performs one SSR pass of f and returns the plain HTML body,
// with no hydration payload (spec §6: `render(f) -> String`).
func Render(f Body, opts ...Option) string {
	c := resolve(opts)
	root := recompose.NewRoot(rootOptions(c)...)
	root.Run(f)
	out := assemble(root, "", c)
	// No hydration marker is emitted for the plain variant, so nothing in
	// the registry is ever read by a caller — clear it immediately (spec
	// §4.7 invariant ii / §8 testable property 1: "registry.size() == 0
	// immediately after R returns").
	root.Registry().Clear()
	return out
}

// RenderHydrated performs one SSR pass of f and returns HTML plus the
// hydration marker and bootstrap include (spec §6: `render_hydrated(f)
// -> String`).
func RenderHydrated(f Body, opts ...Option) (string, error) {
	c := resolve(opts)
	root := recompose.NewRoot(rootOptions(c)...)
	root.Run(f)

	payload, err := hydrate.Emit(root.Registry(), c.bootstrapOpts...)
	if err != nil {
		root.Registry().Clear()
		return "", fmt.Errorf("summon: render hydrated: %w", err)
	}
	out := assemble(root, payload, c)
	// The registry has now been fully serialized into the marker; the
	// spec's "empty between roots" invariant still applies once flushing
	// completes.
	root.Registry().Clear()
	return out, nil
}

// assemble wires the renderer's body, the hydration payload (if any),
// and the deferred head elements into final output, honoring
// WithDocument (spec §6 "HTML output").
func assemble(root *recompose.Root, hydrationPayload string, c config) string {
	r := root.Renderer()
	body := r.Body() + hydrationPayload
	head := r.HeadElements()

	if !c.document {
		// Fragment rendering: no doctype/html/head/body wrapping (spec
		// §6), but head elements still must precede body content (spec
		// §4.6 deferred-head drain contract) — the caller is expected to
		// place them appropriately if assembling a full page itself.
		var out string
		for _, h := range head {
			out += h
		}
		return out + body
	}

	var out string
	out = "<!doctype html><html><head>"
	for _, h := range head {
		out += h
	}
	out += "</head><body>" + body + "</body></html>"
	return out
}
