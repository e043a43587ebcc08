// Package effect implements the effect scheduler (spec component C4):
// side-effect lifecycles run against composition entries and exits.
//
// Grounded on two teacher sources: vango's Effect (other_examples vango
// effect.go) for the run/dispose/cancellation shape, and the teacher's
// own pkg/core/effect_scheduling.go for running registered effects on a
// dedicated goroutine after a composition pass commits. Positional
// identity (which registration is "the same effect instance" across
// recompositions) is delegated entirely to compose.RegisterEffect;
// this package only interprets the Changed flag it returns.
package effect

import (
	"context"
	"sync"
)

// Cleanup is returned by a disposable-effect body and run before the
// next acquire or on disposal.
type Cleanup func()

// Task is the handle stored in a compose.EffectSlot for a launch-effect
// registration. It is safe to Dispose multiple times.
type Task struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Dispose cancels the task's context if running. Implements the
// disposer interface compose.Scope uses for stale-slot cleanup.
func (t *Task) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// start launches body on its own goroutine with a cancellable context,
// replacing any previously running task.
func (t *Task) start(body func(ctx context.Context)) {
	t.Dispose()
	ctx, cancel := context.WithCancel(context.Background())
	t.mu.Lock()
	t.cancel = cancel
	done := make(chan struct{})
	t.done = done
	t.mu.Unlock()

	go func() {
		defer close(done)
		body(ctx)
	}()
}

// Disposable is the handle stored for a disposable-effect registration.
type Disposable struct {
	dispose Cleanup
}

// Dispose runs the stored release function, if any, exactly once per
// acquire (acquiring again first replaces it via acquire).
func (d *Disposable) Dispose() {
	if d.dispose != nil {
		fn := d.dispose
		d.dispose = nil
		fn()
	}
}

func (d *Disposable) acquire(body func() Cleanup) {
	d.Dispose()
	d.dispose = body()
}
