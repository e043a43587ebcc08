package summon

import (
	"fmt"
	"strings"
	"testing"

	"github.com/codeyousef/summon-sub017/callback"
	"github.com/codeyousef/summon-sub017/compose"
	"github.com/codeyousef/summon-sub017/recompose"
	"github.com/codeyousef/summon-sub017/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterBody(n int) Body {
	return func(scope *compose.Scope) {
		r := recompose.CurrentRenderer(scope)
		reg := recompose.CurrentRegistry(scope)
		r.RenderColumn(render.NewModifier(), func() {
			r.RenderText(fmt.Sprintf("Count: %d", n), render.NewModifier())
			r.RenderButton(reg, callback.UserClosure(func() error { return nil }), render.NewModifier(), func() {
				r.RenderText("inc", render.NewModifier())
			})
		})
	}
}

func TestS1_CounterRender(t *testing.T) {
	out := Render(counterBody(3))

	assert.True(t, strings.Contains(out, "<span>Count: 3</span>"))
	assert.True(t, strings.Contains(out, `<button type="button" data-summon-click="cb-0"><span>inc</span></button>`))

	idxSpan := strings.Index(out, "<span>Count: 3</span>")
	idxButton := strings.Index(out, "<button")
	assert.Less(t, idxSpan, idxButton, "text must appear before button, matching source order")
}

func TestS2_FormScope(t *testing.T) {
	out := Render(func(scope *compose.Scope) {
		r := recompose.CurrentRenderer(scope)
		reg := recompose.CurrentRegistry(scope)
		r.RenderForm(reg, callback.UserClosure(func() error { return nil }), render.NewModifier(), func() {
			r.RenderTextField(reg, "", callback.UserClosure(func() error { return nil }), render.NewModifier(), "q", "", "")
			r.RenderButton(reg, callback.UserClosure(func() error { return nil }), render.NewModifier(), func() {
				r.RenderText("go", render.NewModifier())
			})
		})
	})

	assert.Contains(t, out, `<form action="" method="post"`)
	assert.Contains(t, out, `<input type="text" name="q" value=""`)
	assert.Contains(t, out, `type="submit"`)
}

func TestS3_HeadDrainPlacesTitleBeforeBody(t *testing.T) {
	out := Render(func(scope *compose.Scope) {
		r := recompose.CurrentRenderer(scope)
		r.RenderHeadElement("<title>My Page</title>")
		r.RenderText("hello", render.NewModifier())
	}, WithDocument())

	idxHead := strings.Index(out, "<title>My Page</title>")
	idxBody := strings.Index(out, "hello")
	require.GreaterOrEqual(t, idxHead, 0)
	require.GreaterOrEqual(t, idxBody, 0)
	assert.Less(t, idxHead, idxBody)
	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
}

func TestS6_HydrationMarker(t *testing.T) {
	out, err := RenderHydrated(func(scope *compose.Scope) {
		r := recompose.CurrentRenderer(scope)
		reg := recompose.CurrentRegistry(scope)
		r.RenderButton(reg, callback.UserClosure(func() error { return nil }), render.NewModifier(), func() {
			r.RenderText("go", render.NewModifier())
		})
	})
	require.NoError(t, err)

	assert.Contains(t, out, `id="summon-hydration-data"`)
	assert.Contains(t, out, `{"cb-0":{"kind":"user","id":"cb-0"}}`)
}

func TestTestableProperty1_RegistryEmptyAfterRootReturns(t *testing.T) {
	// Render clears its root's registry before returning (spec §4.7
	// invariant ii / §8 testable property 1); a second, independent
	// Render call must start its own registry from cb-0 with no
	// carry-over from the first.
	var firstReg *callback.Registry
	Render(func(scope *compose.Scope) {
		reg := recompose.CurrentRegistry(scope)
		firstReg = reg
		r := recompose.CurrentRenderer(scope)
		r.RenderButton(reg, callback.UserClosure(func() error { return nil }), render.NewModifier(), func() {})
	})
	require.NotNil(t, firstReg)
	assert.Equal(t, 0, firstReg.Size())

	out := Render(func(scope *compose.Scope) {
		r := recompose.CurrentRenderer(scope)
		rreg := recompose.CurrentRegistry(scope)
		r.RenderButton(rreg, callback.UserClosure(func() error { return nil }), render.NewModifier(), func() {})
	})
	assert.Contains(t, out, `data-summon-click="cb-0"`)
}

func TestRenderChunks_ReassemblesToFullOutput(t *testing.T) {
	full := Render(counterBody(5))

	var rebuilt strings.Builder
	for chunk := range RenderChunks(counterBody(5), 8) {
		rebuilt.WriteString(chunk)
	}
	assert.Equal(t, full, rebuilt.String())
}
