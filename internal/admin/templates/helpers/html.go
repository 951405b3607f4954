package helpers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Markup writes escaped HTML for hand-written components. The first write
// error sticks and later calls become no-ops.
type Markup struct {
	w   io.Writer
	err error
}

// NewMarkup wraps w.
func NewMarkup(w io.Writer) *Markup {
	return &Markup{w: w}
}

// Err returns the first write error.
func (m *Markup) Err() error {
	return m.err
}

// Raw writes trusted markup unchanged.
func (m *Markup) Raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

// Text writes s with HTML escaping.
func (m *Markup) Text(s string) {
	m.Raw(templ.EscapeString(s))
}

// Textf formats then escapes.
func (m *Markup) Textf(format string, args ...any) {
	m.Text(fmt.Sprintf(format, args...))
}

// Open writes a start tag. attrs are name/value pairs; a pair whose name ends
// in "?" is a boolean attribute written only when its value is non-empty.
func (m *Markup) Open(tag string, attrs ...string) {
	m.Raw("<" + tag + formatAttrs(attrs) + ">")
}

// Void writes a tag without content or end tag.
func (m *Markup) Void(tag string, attrs ...string) {
	m.Open(tag, attrs...)
}

// Close writes an end tag.
func (m *Markup) Close(tag string) {
	m.Raw("</" + tag + ">")
}

// Element writes an element with escaped text content.
func (m *Markup) Element(tag, text string, attrs ...string) {
	m.Open(tag, attrs...)
	m.Text(text)
	m.Close(tag)
}

// Render renders a nested component.
func (m *Markup) Render(ctx context.Context, c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(ctx, m.w)
}

// Component adapts a markup-writing function to templ.Component.
func Component(fn func(ctx context.Context, m *Markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(w)
		fn(ctx, m)
		return m.Err()
	})
}

// Bool is the value to pass for a "name?" attribute.
func Bool(v bool) string {
	if v {
		return "true"
	}
	return ""
}

func formatAttrs(attrs []string) string {
	if len(attrs) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i+1 < len(attrs); i += 2 {
		name, value := attrs[i], attrs[i+1]
		if strings.HasSuffix(name, "?") {
			if value == "" {
				continue
			}
			b.WriteString(" " + strings.TrimSuffix(name, "?"))
			continue
		}
		b.WriteString(" " + name + `="` + templ.EscapeString(value) + `"`)
	}
	return b.String()
}
