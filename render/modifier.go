package render

import "strings"

// orderedPairs is an insertion-order-preserving string->string map. A
// repeated key overrides the stored value but keeps its original
// position, matching spec §4.6: "Insertion order of style properties is
// preserved; later writes to the same property override earlier."
//
// Grounded on the teacher's render pipeline need for deterministic
// attribute/style output (render_context.go's pooled strings.Builder
// already assumes ordered, single-pass emission); the teacher itself
// has no equivalent type since Lipgloss styles are not HTML attributes,
// so this type is original to this module but follows its idiom
// (simple struct + slice, no reflection).
type orderedPairs struct {
	keys []string
	vals map[string]string
}

func newOrderedPairs() orderedPairs {
	return orderedPairs{vals: make(map[string]string)}
}

func (o *orderedPairs) set(key, value string) {
	if o.vals == nil {
		o.vals = make(map[string]string)
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = value
}

func (o orderedPairs) each(fn func(key, value string)) {
	for _, k := range o.keys {
		fn(k, o.vals[k])
	}
}

func (o orderedPairs) len() int { return len(o.keys) }

// EventBinding associates a DOM event name ("click", "submit", "input",
// "change", ...) with a registered callback id.
type EventBinding struct {
	Event string
	ID    string
}

// Modifier is the ordered collection of styles, attributes, and event
// bindings passed to a renderer op (spec GLOSSARY "Modifier").
type Modifier struct {
	styles     orderedPairs
	attrs      orderedPairs
	events     []EventBinding
}

// NewModifier returns an empty Modifier.
func NewModifier() Modifier {
	return Modifier{styles: newOrderedPairs(), attrs: newOrderedPairs()}
}

// Style sets a style property. camelCase names without a hyphen are
// normalized to kebab-case (spec §4.6 "Style property names are
// normalized to kebab-case if they arrive in camelCase and do not
// already contain '-'").
func (m Modifier) Style(name, value string) Modifier {
	m.styles.set(normalizeStyleName(name), value)
	return m
}

// Attr sets an HTML attribute. data-* attributes pass through as-is.
func (m Modifier) Attr(name, value string) Modifier {
	m.attrs.set(name, value)
	return m
}

// On registers an event binding.
func (m Modifier) On(event, callbackID string) Modifier {
	m.events = append(m.events, EventBinding{Event: event, ID: callbackID})
	return m
}

func normalizeStyleName(name string) string {
	if strings.Contains(name, "-") {
		return name
	}
	hasUpper := false
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return name
	}
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// styleAttr renders the style map to a single "k:v;k2:v2;" string, or
// "" if there are no properties.
func (m Modifier) styleAttr() string {
	if m.styles.len() == 0 {
		return ""
	}
	var b strings.Builder
	m.styles.each(func(k, v string) {
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(v)
		b.WriteByte(';')
	})
	return b.String()
}
