package render

import (
	"strings"
	"testing"

	"github.com/codeyousef/summon-sub017/callback"
	"github.com/stretchr/testify/assert"
)

func TestRenderText_EscapesHTML(t *testing.T) {
	r := New(false)
	r.RenderText(`<b>&"'`, NewModifier())
	assert.Contains(t, r.Body(), "&lt;b&gt;&amp;")
	assert.NotContains(t, r.Body(), "<b>")
}

func TestRenderButton_TypeButtonOutsideForm(t *testing.T) {
	reg := callback.New()
	r := New(false)

	r.RenderButton(reg, callback.UserClosure(func() error { return nil }), NewModifier(), func() {
		r.RenderText("inc", NewModifier())
	})
	assert.Contains(t, r.Body(), `type="button"`)
	assert.Contains(t, r.Body(), `data-summon-click="cb-0"`)
	assert.Equal(t, 1, reg.Size())
}

func TestRenderForm_ButtonInsideIsSubmit(t *testing.T) {
	reg := callback.New()
	r := New(false)

	r.RenderForm(reg, callback.UserClosure(func() error { return nil }), NewModifier(), func() {
		r.RenderTextField(reg, "", callback.UserClosure(func() error { return nil }), NewModifier(), "q", "", "")
		r.RenderButton(reg, callback.UserClosure(func() error { return nil }), NewModifier(), func() {
			r.RenderText("go", NewModifier())
		})
	})

	body := r.Body()
	assert.Contains(t, body, `<form action="" method="post"`)
	assert.Contains(t, body, `name="q"`)
	assert.Contains(t, body, `type="submit"`)
	assert.False(t, r.InForm(), "form scope must close after RenderForm returns")
}

func TestRenderForm_RejectsNesting(t *testing.T) {
	reg := callback.New()
	r := New(false)

	r.RenderForm(reg, callback.UserClosure(func() error { return nil }), NewModifier(), func() {
		r.RenderForm(reg, callback.UserClosure(func() error { return nil }), NewModifier(), func() {
			r.RenderText("never", NewModifier())
		})
	})

	assert.Contains(t, r.Body(), "nested <form> rejected")
	assert.NotContains(t, r.Body(), "never")
}

func TestRenderColumn_PanicInContentStillClosesTag(t *testing.T) {
	r := New(true)

	assert.NotPanics(t, func() {
		r.RenderColumn(NewModifier(), func() {
			r.RenderText("x", NewModifier())
			panic("oops")
		})
	})

	body := r.Body()
	assert.Contains(t, body, "<div")
	assert.True(t, strings.HasSuffix(body, "</div>"), "the opened <div> must still be closed after a panic in content")
	assert.Contains(t, body, "content panicked")
	assert.Equal(t, 0, r.StackDepth(), "the element stack must unwind even when content panics")
}

func TestRenderButton_PanicInContentStillClosesTag(t *testing.T) {
	reg := callback.New()
	r := New(false)

	r.RenderButton(reg, callback.UserClosure(func() error { return nil }), NewModifier(), func() {
		panic("boom")
	})

	body := r.Body()
	assert.True(t, strings.HasSuffix(body, "</button>"))
}

func TestRenderForm_PanicInContentStillClosesFormScope(t *testing.T) {
	reg := callback.New()
	r := New(false)

	r.RenderForm(reg, callback.UserClosure(func() error { return nil }), NewModifier(), func() {
		panic("boom")
	})

	assert.True(t, strings.HasSuffix(r.Body(), "</form>"))
	assert.False(t, r.InForm(), "a panic inside form content must not leave the form scope wedged open")
}

func TestHeadElements_DeferredUntilDrain(t *testing.T) {
	r := New(false)
	r.RenderGlobalStyle("body{color:red}")
	r.RenderText("hello", NewModifier())

	assert.NotContains(t, r.Body(), "<style>")
	assert.Len(t, r.HeadElements(), 1)
	assert.Contains(t, r.HeadElements()[0], "<style>body{color:red}</style>")
}

func TestSanitize_StripsScriptKeepsSafeContent(t *testing.T) {
	out := Sanitize(`<p>ok</p><script>alert(1)</script>`)
	assert.Contains(t, out, "<p>ok</p>")
	assert.NotContains(t, out, "<script>")
}

func TestSanitize_StripsEventHandlerAttribute(t *testing.T) {
	out := Sanitize(`<p>hi</p><img src=x onerror=js>`)
	assert.Contains(t, out, "<p>hi</p>")
	assert.Contains(t, out, "<img")
	assert.NotContains(t, out, "onerror")
}

func TestSanitize_StripsJavascriptURL(t *testing.T) {
	out := Sanitize(`<a href="javascript:alert(1)">x</a>`)
	assert.NotContains(t, out, "javascript:")
}

func TestModifier_StyleOrderAndOverride(t *testing.T) {
	m := NewModifier().Style("color", "red").Style("fontSize", "12px").Style("color", "blue")
	assert.Equal(t, "color:blue;font-size:12px;", m.styleAttr())
}

func TestRenderCanvas_UnitlessDimensions(t *testing.T) {
	r := New(false)
	r.RenderCanvas(640, 480, NewModifier())
	assert.Contains(t, r.Body(), `width="640" height="480"`)
}
