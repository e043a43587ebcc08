// Package compose implements the composer and slot table (spec
// component C2): positional memoization of remembered values and
// effects across recompositions.
//
// Grounded on the teacher's pkg/core/update_queue.go (positional
// re-render identity) and, more directly, on vango's Owner
// (other_examples vango owner.go) for the parent/child scope tree and
// hook-slot storage model — generalized from vango's single hookSlots
// slice per owner to the spec's remember/register_effect contract.
package compose

import "sync"

// Composer owns the root scope tree for one composition (render root)
// and tracks which scopes have been visited ("composed") during the
// current pass, per spec §4.2 mark_used.
type Composer struct {
	mu   sync.Mutex
	root *Scope
	used map[uint64]bool
}

// New creates a Composer with a fresh root scope. onInvalidate is called
// whenever a cell write invalidates a scope somewhere in this composer's
// tree; the recompose package supplies it to feed its invalidation queue.
func New(onInvalidate func(*Scope)) *Composer {
	return &Composer{
		root: newRootScope(onInvalidate),
		used: make(map[uint64]bool),
	}
}

// Root returns the composer's root scope.
func (c *Composer) Root() *Scope { return c.root }

// OpenScope allocates or reuses a child scope of parent for site (spec:
// open_scope(call_site_id, parent_scope) -> C). Passing a nil parent
// opens (resets) the composer's root scope itself, used when beginning
// a fresh composition pass over the whole tree.
func (c *Composer) OpenScope(parent *Scope, site Site) *Scope {
	if parent == nil {
		c.root.beginPass()
		return c.root
	}
	child := parent.openChild(site)
	child.beginPass()
	return child
}

// CloseScope advances past bookkeeping for scope (spec: close_scope(C)):
// slots beyond the cursor are disposed here, then pending effect bodies
// fire. Stale children are returned but not disposed, so the caller
// (recompose) can Dispose them outside of any lock it might be holding;
// the disposed stale slots are returned for inspection only.
func (c *Composer) CloseScope(scope *Scope) (staleChildren []*Scope, staleSlots []slot) {
	staleChildren, staleSlots = scope.endPass()
	disposeSlots(staleSlots)
	scope.firePendingSideEffects()
	return staleChildren, staleSlots
}

// Dispose tears down a scope and everything beneath it, running each
// slot's disposal hook exactly once.
func (c *Composer) Dispose(scope *Scope) {
	scope.dispose()
}

// MarkUsed records that scope took part in the current pass (spec:
// mark_used(scope C) — idempotent; added to a "composed this pass" set).
func (c *Composer) MarkUsed(scope *Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.used[scope.ID()] = true
}

// Used reports whether scope was marked used during the current pass.
func (c *Composer) Used(scope *Scope) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used[scope.ID()]
}

// ResetUsed clears the "composed this pass" set, called once per tick
// before walking the invalidation queue.
func (c *Composer) ResetUsed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.used = make(map[uint64]bool)
}

// Remember is the generic form of spec §4.2 remember(key_hash, producer).
// At scope's current cursor: if the slot is empty or its stored hash
// differs from hash, producer runs and the result (plus hash) is stored;
// otherwise the stored value is returned as-is. Either way the cursor
// advances by one.
//
// Go has no generic methods, so Remember is a free function taking the
// scope explicitly rather than compose.Scope.Remember[V](...).
func Remember[V any](scope *Scope, hash keyHash, produce func() V) V {
	scope.mu.Lock()
	idx := scope.cursor
	scope.cursor++

	if idx < len(scope.slots) {
		sl := &scope.slots[idx]
		if sl.tag == slotValue && sl.hash == hash {
			v, _ := sl.value.(V)
			scope.mu.Unlock()
			return v
		}
		// Stale or key changed: dispose old payload before overwriting.
		stale := *sl
		scope.mu.Unlock()
		disposeSlots([]slot{stale})
		v := produce()
		scope.mu.Lock()
		scope.slots[idx] = slot{tag: slotValue, hash: hash, value: v}
		scope.mu.Unlock()
		return v
	}

	scope.mu.Unlock()
	v := produce()
	scope.mu.Lock()
	scope.slots = append(scope.slots, slot{tag: slotValue, hash: hash, value: v})
	scope.mu.Unlock()
	return v
}

// RegisterEffect is spec §4.2 register_effect(kind, key_hash, payload):
// at the current cursor, allocate or reuse the positional EffectSlot
// for an effect registration, reporting whether its key changed versus
// the prior pass. The effect scheduler (package effect) uses Changed to
// decide whether to cancel/restart (launch), dispose/reacquire
// (disposable), or simply run again (side).
func RegisterEffect(scope *Scope, kind EffectKind, hash keyHash) *EffectSlot {
	scope.mu.Lock()
	defer scope.mu.Unlock()

	idx := scope.cursor
	scope.cursor++

	if idx < len(scope.slots) {
		sl := &scope.slots[idx]
		if sl.tag == slotEffect {
			changed := sl.effect.Kind != kind || sl.effect.Hash != hash || kind == SideEffect
			sl.effect.Changed = changed
			sl.effect.Hash = hash
			sl.effect.Kind = kind
			scope.touched = append(scope.touched, sl.effect)
			return sl.effect
		}
	}

	es := &EffectSlot{Kind: kind, Hash: hash, Changed: true}
	newSlot := slot{tag: slotEffect, hash: hash, effect: es}
	if idx < len(scope.slots) {
		scope.slots[idx] = newSlot
	} else {
		scope.slots = append(scope.slots, newSlot)
	}
	scope.touched = append(scope.touched, es)
	return es
}
