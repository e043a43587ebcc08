package effect

import (
	"context"

	"github.com/codeyousef/summon-sub017/compose"
)

// Launch registers a launch-effect (spec §4.4): after the composition
// pass commits, if keys changed relative to the prior pass (or the
// registration is new), the prior task is cancelled and body is started
// on its own goroutine. Cancelled again on scope disposal. The start is
// queued on the EffectSlot's Pending field and fired by
// compose.Composer.CloseScope, like Side.
//
// Concurrency contract (spec §4.4, §5): the body is scheduled, not
// awaited — SSR ignores pending launch-effects, matching vango's Effect
// model where run() only tracks dependencies synchronously and any
// actual async work happens in a goroutine outside the render path.
func Launch(scope *compose.Scope, keys []any, body func(ctx context.Context)) {
	es := compose.RegisterEffect(scope, compose.LaunchEffect, compose.HashDeps(keys...))
	task, _ := es.Handle.(*Task)
	if task == nil {
		task = &Task{}
		es.Handle = task
	}
	if es.Changed {
		es.Pending = func() { task.start(body) }
	}
}

// DisposableEffect registers an acquire/release pair keyed on keys
// (spec §4.4 disposable-effect): on commit, if keys changed, the prior
// release runs, then body() runs and its returned Cleanup is stored.
// On scope disposal, the stored Cleanup runs.
func DisposableEffect(scope *compose.Scope, keys []any, body func() Cleanup) {
	es := compose.RegisterEffect(scope, compose.DisposableEffect, compose.HashDeps(keys...))
	d, _ := es.Handle.(*Disposable)
	if d == nil {
		d = &Disposable{}
		es.Handle = d
	}
	if es.Changed {
		es.Pending = func() { d.acquire(body) }
	}
}

// Side registers a side-effect (spec §4.4): runs body unconditionally
// after every commit, in registration order within the scope, with no
// cleanup. compose.RegisterEffect always reports SideEffect
// registrations as Changed, so Side always queues a run.
//
// body does not run inline here. Spec §4.4 places side-effect timing
// after the renderer has finished emitting for this scope — later than
// the composable's own execution — so body is stashed on the
// EffectSlot's Pending field and fired by compose.Composer.CloseScope
// once this scope's pass is closed.
func Side(scope *compose.Scope, body func()) {
	es := compose.RegisterEffect(scope, compose.SideEffect, 0)
	es.Pending = body
}
