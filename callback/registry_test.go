package callback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister_IDsAreMonotonicPerRoot(t *testing.T) {
	r := New()
	id0 := r.Register(Navigate("/a"))
	id1 := r.Register(Navigate("/b"))
	assert.Equal(t, "cb-0", id0)
	assert.Equal(t, "cb-1", id1)
	assert.Equal(t, 2, r.Size())
}

func TestClear_EmptiesEntriesButNotCounter(t *testing.T) {
	r := New()
	r.Register(Navigate("/a"))
	r.Clear()
	assert.Equal(t, 0, r.Size())

	id := r.Register(Navigate("/b"))
	assert.Equal(t, "cb-1", id, "ids are never reused even after Clear")
}

func TestLookup_MissingIDReturnsFalse(t *testing.T) {
	r := New()
	_, ok := r.Lookup("cb-0")
	assert.False(t, ok)

	id := r.Register(ToggleVisibility("panel"))
	action, ok := r.Lookup(id)
	assert.True(t, ok)
	assert.Equal(t, KindToggleVisibility, action.Kind)
	assert.Equal(t, "panel", action.TargetID)
}

func TestOrdered_PreservesRegistrationOrder(t *testing.T) {
	r := New()
	r.Register(Navigate("/a"))
	r.Register(Navigate("/b"))
	r.Register(Navigate("/c"))

	entries := r.Ordered()
	assert.Equal(t, []string{"cb-0", "cb-1", "cb-2"}, []string{entries[0].ID, entries[1].ID, entries[2].ID})
}
