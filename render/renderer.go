// Package render implements the platform renderer / HTML emitter (spec
// component C6): an append-only HTML buffer with element nesting,
// attribute/style serialization, and deferred head-element injection.
//
// Grounded on the teacher's pkg/bubbly/render_context.go: a pooled
// strings.Builder reused per render, and the exact anti-pattern named
// in spec §9 ("globally-mutable current renderer") in
// pkg/bubbly/render.go's package-level `defaultRenderer`. This package
// deliberately has no package-level renderer variable: every R is
// constructed fresh per render root and threaded explicitly (held by
// recompose.Root and read back out through ambient.Key[*R] when a
// composable needs it), which is how this module satisfies §5's
// "a process-wide global for 'current renderer' is prohibited".
package render

import (
	"fmt"
	"html"
	"strings"
	"sync"
)

var builderPool = sync.Pool{
	New: func() any { return &strings.Builder{} },
}

// R is the per-render-root renderer context (spec §3 "Renderer
// context"). It is not safe for concurrent use by more than one
// composition pass; each render root owns exactly one R.
type R struct {
	buf   *strings.Builder
	head  []string
	stack []string

	inForm bool

	debug bool
}

// New returns a fresh renderer context with an empty buffer and
// element stack (spec §3 invariant i: "element stack is empty on root
// entry and exit").
func New(debug bool) *R {
	return &R{
		buf:   builderPool.Get().(*strings.Builder),
		debug: debug,
	}
}

// Release returns the pooled builder. Call exactly once, after the
// root's output has been fully read out via Body().
func (r *R) Release() {
	if r.buf == nil {
		return
	}
	r.buf.Reset()
	builderPool.Put(r.buf)
	r.buf = nil
}

// StackDepth reports how many elements are currently open — used by
// callers to assert the root-entry/root-exit invariant in tests.
func (r *R) StackDepth() int { return len(r.stack) }

// InForm reports whether a form scope is currently open (spec §4.6
// form-scope state machine).
func (r *R) InForm() bool { return r.inForm }

// Body returns the main buffer's contents so far.
func (r *R) Body() string {
	return r.buf.String()
}

// HeadElements returns the deferred head-element fragments in
// registration order (spec §4.6 "Deferred-head drain").
func (r *R) HeadElements() []string {
	return append([]string(nil), r.head...)
}

// raw appends s to the main buffer verbatim — used only by the op
// implementations in ops.go, never exported.
func (r *R) raw(s string) { r.buf.WriteString(s) }

func (r *R) pushTag(tag string) { r.stack = append(r.stack, tag) }

func (r *R) popTag() (string, bool) {
	if len(r.stack) == 0 {
		return "", false
	}
	tag := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	return tag, true
}

// runContent executes content between an already-written opening tag
// and the closing tag its caller is about to emit, pushing/popping tag
// onto the element stack around the call (spec §3 "element stack").
//
// Spec §4.6 failure semantics: "content closures that throw abort the
// current element, emit a closing tag for it, and propagate nothing
// (the composer records the failure)." Without a recover here, a panic
// inside content would unwind straight past the caller's closing-tag
// write and surface at recompose.runScopeSafely's whole-scope
// granularity instead, leaving the already-buffered opening tag
// unclosed. runContent recovers at the element itself so the caller's
// closing tag always gets written, and records the failure as a debug
// comment rather than re-raising, per the "propagate nothing" clause.
func (r *R) runContent(tag string, content func()) {
	if content == nil {
		return
	}
	r.pushTag(tag)
	defer r.popTag()
	defer func() {
		if rec := recover(); rec != nil {
			if r.debug {
				r.buf.WriteString(`<!-- content panicked in <`)
				r.buf.WriteString(tag)
				r.buf.WriteString(`>: `)
				r.buf.WriteString(escapeText(fmt.Sprint(rec)))
				r.buf.WriteString(` -->`)
			}
		}
	}()
	content()
}

// RenderFallback emits the empty, debug-attributed container the spec
// requires when a composable body's panic is caught (spec §4.3: "the
// renderer emits a fallback element (an empty container with a debug
// attribute)"). The failing content is never appended — only the
// fallback marker is.
func (r *R) RenderFallback(reason string) {
	r.buf.WriteString(`<div data-summon-error="true"`)
	if r.debug {
		r.buf.WriteString(` data-summon-error-reason="`)
		r.buf.WriteString(escapeAttr(reason))
		r.buf.WriteByte('"')
	}
	r.buf.WriteString("></div>")
}

// RenderHeadElement appends raw HTML to the deferred head list (spec:
// render_head_element(raw_html)).
func (r *R) RenderHeadElement(rawHTML string) {
	r.head = append(r.head, rawHTML)
}

// RenderGlobalStyle appends a <style> element to the deferred head
// list (spec: render_global_style(css)).
func (r *R) RenderGlobalStyle(css string) {
	r.head = append(r.head, "<style>"+css+"</style>")
}

// escapeText HTML-escapes text content (spec §8 testable property 6).
func escapeText(s string) string {
	return html.EscapeString(s)
}

// escapeAttr HTML-attribute-escapes a value (spec §4.6: "&, <, \", '").
func escapeAttr(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		`"`, "&#34;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}

func (r *R) writeAttrs(m Modifier) {
	m.attrs.each(func(k, v string) {
		r.buf.WriteByte(' ')
		r.buf.WriteString(k)
		r.buf.WriteString(`="`)
		r.buf.WriteString(escapeAttr(v))
		r.buf.WriteByte('"')
	})
	if style := m.styleAttr(); style != "" {
		r.buf.WriteString(` style="`)
		r.buf.WriteString(escapeAttr(style))
		r.buf.WriteByte('"')
	}
}
