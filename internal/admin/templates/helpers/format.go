package helpers

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/a-h/templ"
)

// Date formats ts in layout, defaulting to "Jan 2, 2006". Zero times render as "".
func Date(ts time.Time, layout string) string {
	if ts.IsZero() {
		return ""
	}
	if layout == "" {
		layout = "Jan 2, 2006"
	}
	return ts.Format(layout)
}

// Plural returns "1 employee" or "3 employees".
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// Initials returns up to two upper-case initials for an avatar.
func Initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		out = append(out, unicode.ToUpper(r[0]))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

// NavClass returns sidebar link classes.
func NavClass(active bool) string {
	if active {
		return "flex items-center gap-2 rounded-md bg-slate-900 px-3 py-2 text-sm font-medium text-white shadow-sm"
	}
	return "flex items-center gap-2 rounded-md px-3 py-2 text-sm font-medium text-slate-600 hover:bg-slate-100 hover:text-slate-900"
}

// BadgeClass maps tones to badge classes.
func BadgeClass(tone string) string {
	base := "inline-flex items-center rounded-full px-2 py-1 text-xs font-medium "
	switch tone {
	case "success":
		return base + "bg-emerald-100 text-emerald-700"
	case "warning":
		return base + "bg-amber-100 text-amber-700"
	case "danger":
		return base + "bg-rose-100 text-rose-700"
	case "info":
		return base + "bg-sky-100 text-sky-700"
	default:
		return base + "bg-slate-100 text-slate-700"
	}
}

// ButtonClass maps variants to button classes.
func ButtonClass(variant string) string {
	base := "inline-flex items-center justify-center gap-2 rounded-md px-3 py-2 text-sm font-medium "
	switch variant {
	case "primary":
		return base + "bg-slate-900 text-white hover:bg-slate-700"
	case "ghost":
		return base + "text-slate-600 hover:bg-slate-100"
	default:
		return base + "border border-slate-300 bg-white text-slate-700 hover:bg-slate-50"
	}
}

// TextComponent renders value as escaped text.
func TextComponent(value string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(value))
		return err
	})
}
