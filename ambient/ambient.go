// Package ambient provides type-safe keys over compose.Scope's
// provide/inject mechanism (spec component C5, context registry).
//
// Grounded on the teacher's pkg/bubbly/provide_inject.go: a generic
// Key[T] wrapping a string so InjectTyped returns T directly instead of
// any, with the same "nearest provider wins" ancestor walk. The
// mandatory "current renderer" / "current composer" keys spec §4.5
// calls out both live in the recompose package (the one package that
// already depends on compose, render, and callback together), each
// declared with this package's Key[T] — there is deliberately no
// global variable anywhere in the module.
package ambient

import "github.com/codeyousef/summon-sub017/compose"

// Key is a type-safe provide/inject key.
type Key[T any] struct{ name string }

// NewKey creates a typed key. name should be unique within the
// application (dotted or slash namespacing is conventional).
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Provide stores value under key for the duration of block, then
// restores whatever the scope had previously provided for this key.
func Provide[T any](scope *compose.Scope, key Key[T], value T, block func()) {
	scope.Provide(key.name, value, block)
}

// Inject returns the nearest ancestor-provided value for key, or def.
func Inject[T any](scope *compose.Scope, key Key[T], def T) T {
	v := scope.Current(key.name, def)
	t, ok := v.(T)
	if !ok {
		return def
	}
	return t
}
