package helpers

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// Segment is a run of text that either matches the search term or not.
type Segment struct {
	Text  string
	Match bool
}

// Segments splits text around case-insensitive occurrences of term.
func Segments(text, term string) []Segment {
	term = strings.TrimSpace(term)
	if text == "" {
		return nil
	}
	if term == "" {
		return []Segment{{Text: text}}
	}

	lowerText := strings.ToLower(text)
	lowerTerm := strings.ToLower(term)
	// ToLower may change byte lengths for some scripts; fall back to no highlight.
	if len(lowerText) != len(text) {
		return []Segment{{Text: text}}
	}

	var out []Segment
	for cursor := 0; cursor < len(text); {
		idx := strings.Index(lowerText[cursor:], lowerTerm)
		if idx < 0 {
			out = append(out, Segment{Text: text[cursor:]})
			break
		}
		if idx > 0 {
			out = append(out, Segment{Text: text[cursor : cursor+idx]})
		}
		end := cursor + idx + len(lowerTerm)
		out = append(out, Segment{Text: text[cursor+idx : end], Match: true})
		cursor = end
	}
	return out
}

// Highlight renders text with matches of term wrapped in <mark>.
func Highlight(text, term string) templ.Component {
	return Component(func(_ context.Context, m *Markup) {
		for _, seg := range Segments(text, term) {
			if seg.Match {
				m.Element("mark", seg.Text, "class", "rounded bg-amber-100 px-0.5 text-slate-900")
				continue
			}
			m.Text(seg.Text)
		}
	})
}
