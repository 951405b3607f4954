// Package content renders the static markdown pages bundled with the admin.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

//go:embed pages/*.md
var embedded embed.FS

// ErrPageNotFound is returned for unknown or malformed slugs.
var ErrPageNotFound = errors.New("content: page not found")

// Page is a rendered, sanitised markdown page.
type Page struct {
	Slug    string
	Title   string
	Summary string
	HTML    string
}

type frontMatter struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
}

// Library renders pages from a file system once and serves them from memory.
type Library struct {
	fsys     fs.FS
	markdown goldmark.Markdown
	policy   *bluemonday.Policy

	mu    sync.Mutex
	pages map[string]*cachedPage
}

type cachedPage struct {
	once sync.Once
	page Page
	err  error
}

// NewLibrary returns a library over the embedded pages.
func NewLibrary() *Library {
	sub, err := fs.Sub(embedded, "pages")
	if err != nil {
		panic(fmt.Sprintf("content: embedded pages: %v", err))
	}
	return NewLibraryFS(sub)
}

// NewLibraryFS returns a library reading <slug>.md files from fsys.
func NewLibraryFS(fsys fs.FS) *Library {
	return &Library{
		fsys:     fsys,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:   newPagePolicy(),
		pages:    make(map[string]*cachedPage),
	}
}

// Page returns the rendered page for slug, rendering it on first use.
func (l *Library) Page(slug string) (Page, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" || strings.ContainsAny(slug, "/\\.") {
		return Page{}, fmt.Errorf("%w: invalid slug %q", ErrPageNotFound, slug)
	}

	l.mu.Lock()
	entry, ok := l.pages[slug]
	if !ok {
		entry = &cachedPage{}
		l.pages[slug] = entry
	}
	l.mu.Unlock()

	entry.once.Do(func() {
		entry.page, entry.err = l.render(slug)
	})
	return entry.page, entry.err
}

func (l *Library) render(slug string) (Page, error) {
	raw, err := fs.ReadFile(l.fsys, slug+".md")
	if errors.Is(err, fs.ErrNotExist) {
		return Page{}, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
	}
	if err != nil {
		return Page{}, fmt.Errorf("content: read %s: %w", slug, err)
	}

	fm, body := splitFrontMatter(string(raw))
	var meta frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter for %s: %w", slug, err)
		}
	}

	var buf bytes.Buffer
	if err := l.markdown.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", slug, err)
	}

	return Page{
		Slug:    slug,
		Title:   strings.TrimSpace(meta.Title),
		Summary: strings.TrimSpace(meta.Summary),
		HTML:    strings.TrimSpace(l.policy.Sanitize(buf.String())),
	}, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n"), strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n\r")
		}
	}
	return "", input
}

func newPagePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("table", "p", "span")
	policy.RequireNoFollowOnLinks(true)
	return policy
}
