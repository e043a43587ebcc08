package render

import (
	"fmt"
	"strconv"

	"github.com/codeyousef/summon-sub017/callback"
)

// Direction selects the flex-direction for container ops.
type Direction string

const (
	DirectionColumn Direction = "column"
	DirectionRow    Direction = "row"
)

// RenderText emits <span>…</span> (or another tag via the reserved
// "tag" attribute), HTML-escaping s (spec: render_text(s, modifier)).
func (r *R) RenderText(s string, m Modifier) {
	tag := "span"
	if t, ok := m.attrs.vals["tag"]; ok && t != "" {
		tag = t
	}
	r.buf.WriteByte('<')
	r.buf.WriteString(tag)
	r.writeAttrsExcept(m, "tag")
	r.buf.WriteByte('>')
	r.buf.WriteString(escapeText(s))
	r.buf.WriteString("</")
	r.buf.WriteString(tag)
	r.buf.WriteByte('>')
}

func (r *R) writeAttrsExcept(m Modifier, except string) {
	m.attrs.each(func(k, v string) {
		if k == except {
			return
		}
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

// RenderButton emits <button>, registering onClick in reg and attaching
// its id as data-summon-click. type=submit is implied inside an open
// form scope, else type=button (spec: render_button(on_click, modifier,
// content)).
func (r *R) RenderButton(reg *callback.Registry, onClick callback.Action, m Modifier, content func()) {
	id := reg.Register(onClick)
	btnType := "button"
	if r.inForm {
		btnType = "submit"
	}
	r.buf.WriteString(`<button type="`)
	r.buf.WriteString(btnType)
	r.buf.WriteString(`" data-summon-click="`)
	r.buf.WriteString(id)
	r.buf.WriteByte('"')
	r.writeAttrs(m)
	r.buf.WriteByte('>')
	r.runContent("button", content)
	r.buf.WriteString("</button>")
}

// container emits a <div> with a display-mode style applied, used by
// RenderBox/Column/Row/Grid/Card (spec: render_box / render_column /
// render_row / render_grid / render_card).
func (r *R) container(display string, extra func(m Modifier) Modifier, m Modifier, content func()) {
	m = extra(m)
	r.buf.WriteString("<div")
	r.writeAttrs(m)
	r.buf.WriteByte('>')
	r.runContent("div", content)
	r.buf.WriteString("</div>")
}

func (r *R) RenderBox(m Modifier, content func()) {
	r.container("block", func(m Modifier) Modifier { return m.Style("display", "block") }, m, content)
}

func (r *R) RenderColumn(m Modifier, content func()) {
	r.container("flex", func(m Modifier) Modifier {
		return m.Style("display", "flex").Style("flex-direction", "column")
	}, m, content)
}

func (r *R) RenderRow(m Modifier, content func()) {
	r.container("flex", func(m Modifier) Modifier {
		return m.Style("display", "flex").Style("flex-direction", "row")
	}, m, content)
}

func (r *R) RenderGrid(m Modifier, content func()) {
	r.container("grid", func(m Modifier) Modifier {
		return m.Style("display", "grid")
	}, m, content)
}

func (r *R) RenderCard(m Modifier, content func()) {
	r.container("block", func(m Modifier) Modifier {
		return m.Style("display", "block").Attr("class", "summon-card")
	}, m, content)
}

// RenderForm opens a form scope, registers onSubmit, runs content, then
// closes the scope (spec: render_form(on_submit, modifier, content)).
// Nested forms are forbidden: a debug comment is emitted and content is
// not entered for the nested call (spec §4.6).
func (r *R) RenderForm(reg *callback.Registry, onSubmit callback.Action, m Modifier, content func()) {
	if r.inForm {
		r.buf.WriteString("<!-- nested <form> rejected -->")
		return
	}
	id := reg.Register(onSubmit)
	r.inForm = true
	r.buf.WriteString(`<form action="" method="post" data-summon-submit="`)
	r.buf.WriteString(id)
	r.buf.WriteByte('"')
	r.writeAttrs(m)
	r.buf.WriteByte('>')
	r.runContent("form", content)
	r.buf.WriteString("</form>")
	r.inForm = false
}

// RenderTextField emits <input>; name is always present (required for
// form submission) (spec: render_text_field(value, on_value_change,
// modifier, name, placeholder, type)).
func (r *R) RenderTextField(reg *callback.Registry, value string, onValueChange callback.Action, m Modifier, name, placeholder, inputType string) {
	if inputType == "" {
		inputType = "text"
	}
	id := reg.Register(onValueChange)
	r.buf.WriteString(`<input type="`)
	r.buf.WriteString(escapeAttr(inputType))
	r.buf.WriteString(`" name="`)
	r.buf.WriteString(escapeAttr(name))
	r.buf.WriteString(`" value="`)
	r.buf.WriteString(escapeAttr(value))
	r.buf.WriteByte('"')
	if placeholder != "" {
		r.buf.WriteString(` placeholder="`)
		r.buf.WriteString(escapeAttr(placeholder))
		r.buf.WriteByte('"')
	}
	r.buf.WriteString(` data-summon-change="`)
	r.buf.WriteString(id)
	r.buf.WriteByte('"')
	r.writeAttrs(m)
	r.buf.WriteString(" />")
}

// RenderCanvas emits <canvas> with exact, unit-less integer width/height
// attributes (spec: render_canvas(width, height, modifier)).
func (r *R) RenderCanvas(width, height int, m Modifier) {
	r.buf.WriteString(`<canvas width="`)
	r.buf.WriteString(strconv.Itoa(width))
	r.buf.WriteString(`" height="`)
	r.buf.WriteString(strconv.Itoa(height))
	r.buf.WriteByte('"')
	r.writeAttrs(m)
	r.buf.WriteString("></canvas>")
}

// ScriptTag describes a <script> emission; exactly one of Src or Inline
// must be set (spec: render_script_tag).
type ScriptTag struct {
	Src    string
	Inline string
	Async  bool
	Defer  bool
	Type   string
}

// RenderScriptTag emits <script>; async/defer attributes only appear
// when true.
func (r *R) RenderScriptTag(s ScriptTag, m Modifier) {
	r.buf.WriteString("<script")
	if s.Src != "" {
		r.buf.WriteString(` src="`)
		r.buf.WriteString(escapeAttr(s.Src))
		r.buf.WriteByte('"')
	}
	if s.Type != "" {
		r.buf.WriteString(` type="`)
		r.buf.WriteString(escapeAttr(s.Type))
		r.buf.WriteByte('"')
	}
	if s.Async {
		r.buf.WriteString(" async")
	}
	if s.Defer {
		r.buf.WriteString(" defer")
	}
	r.writeAttrs(m)
	r.buf.WriteByte('>')
	if s.Src == "" {
		r.buf.WriteString(s.Inline)
	}
	r.buf.WriteString("</script>")
}

// RenderHTML emits a <div> wrapping either sanitized or raw HTML (spec:
// render_html(raw, sanitize, modifier)).
func (r *R) RenderHTML(raw string, sanitize bool, m Modifier) {
	r.buf.WriteString("<div")
	r.writeAttrs(m)
	r.buf.WriteByte('>')
	if sanitize {
		r.buf.WriteString(Sanitize(raw))
	} else {
		r.buf.WriteString(raw)
	}
	r.buf.WriteString("</div>")
}

// RenderRawHTML emits fragments verbatim, never sanitized; intended for
// trusted inline scripts and shader canvases (spec: render_raw_html).
func (r *R) RenderRawHTML(fragments ...string) {
	for _, f := range fragments {
		r.buf.WriteString(f)
	}
}

// MenuItem is one entry of a RenderMenuBar menu.
type MenuItem struct {
	Label  string
	Action callback.Action
}

// Menu is a top-level dropdown in a RenderMenuBar.
type Menu struct {
	Label string
	Items []MenuItem
}

// RenderMenuBar emits a <nav> of hover/click-activated dropdowns, with
// action dispatch via callback ids (spec: render_menu_bar(menus,
// modifier)).
func (r *R) RenderMenuBar(reg *callback.Registry, menus []Menu, m Modifier) {
	r.buf.WriteString("<nav")
	r.writeAttrs(m)
	r.buf.WriteString(` class="summon-menu-bar">`)
	for _, menu := range menus {
		r.buf.WriteString(`<div class="summon-menu"><span class="summon-menu-label">`)
		r.buf.WriteString(escapeText(menu.Label))
		r.buf.WriteString(`</span><ul>`)
		for _, item := range menu.Items {
			id := reg.Register(item.Action)
			r.buf.WriteString(fmt.Sprintf(`<li><a href="#" data-summon-click="%s">%s</a></li>`, id, escapeText(item.Label)))
		}
		r.buf.WriteString(`</ul></div>`)
	}
	r.buf.WriteString("</nav>")
}
