package hydrate

import (
	"testing"

	"github.com/codeyousef/summon-sub017/callback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalOrdered_PreservesInsertionOrderBeyondTen(t *testing.T) {
	reg := callback.New()
	for i := 0; i < 12; i++ {
		reg.Register(callback.Navigate("/page"))
	}
	out, err := MarshalOrdered(reg)
	require.NoError(t, err)

	idx2 := indexOf(out, `"cb-2"`)
	idx10 := indexOf(out, `"cb-10"`)
	require.GreaterOrEqual(t, idx2, 0)
	require.GreaterOrEqual(t, idx10, 0)
	assert.Less(t, idx2, idx10, "cb-2 must serialize before cb-10 despite lexicographic sort placing it after")
}

func TestMarshalOrdered_EncodesEachActionKind(t *testing.T) {
	reg := callback.New()
	reg.Register(callback.Navigate("/home"))
	reg.Register(callback.ServerRPC("/api/save", map[string]any{"x": 1}))
	reg.Register(callback.ToggleVisibility("panel-1"))
	reg.Register(callback.UserClosure(func() error { return nil }))

	out, err := MarshalOrdered(reg)
	require.NoError(t, err)

	assert.Contains(t, out, `"kind":"nav"`)
	assert.Contains(t, out, `"url":"/home"`)
	assert.Contains(t, out, `"kind":"rpc"`)
	assert.Contains(t, out, `"endpoint":"/api/save"`)
	assert.Contains(t, out, `"kind":"toggle"`)
	assert.Contains(t, out, `"targetId":"panel-1"`)
	assert.Contains(t, out, `"kind":"user"`)
	assert.Contains(t, out, `"id":"cb-3"`)
}

func TestMarshalOrdered_S6HydrationMarkerShape(t *testing.T) {
	reg := callback.New()
	reg.Register(callback.UserClosure(func() error { return nil }))

	out, err := MarshalOrdered(reg)
	require.NoError(t, err)
	assert.Equal(t, `{"cb-0":{"kind":"user","id":"cb-0"}}`, out)
}

func TestEmit_ProducesMarkerAndBootstrapScript(t *testing.T) {
	reg := callback.New()
	reg.Register(callback.Navigate("/x"))

	out, err := Emit(reg)
	require.NoError(t, err)

	assert.Contains(t, out, `id="summon-hydration-data"`)
	assert.Contains(t, out, `type="application/json"`)
	assert.Contains(t, out, `src="/summon-hydration.js"`)
}

func TestEmit_WithInlineBootstrap(t *testing.T) {
	reg := callback.New()
	out, err := Emit(reg, WithInlineBootstrap("console.log('hi')"))
	require.NoError(t, err)
	assert.Contains(t, out, "console.log('hi')")
	assert.NotContains(t, out, "src=")
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
