package helpers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"finitefield.org/roster-admin/internal/admin/httpserver/middleware"
)

func TestSetRawQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rawQuery string
		key      string
		value    string
		want     map[string]string
	}{
		{
			name:     "updates existing key",
			rawQuery: "region=eu&page=2",
			key:      "page",
			value:    "3",
			want: map[string]string{
				"region": "eu",
				"page":   "3",
			},
		},
		{
			name:     "adds new key when missing",
			rawQuery: "region=eu",
			key:      "page",
			value:    "1",
			want: map[string]string{
				"region": "eu",
				"page":   "1",
			},
		},
		{
			name:     "handles empty input",
			rawQuery: "",
			key:      "page",
			value:    "1",
			want: map[string]string{
				"page": "1",
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := SetRawQuery(tc.rawQuery, tc.key, tc.value)
			values, err := url.ParseQuery(got)
			if err != nil {
				t.Fatalf("ParseQuery returned error: %v", err)
			}
			for k, expected := range tc.want {
				if got := values.Get(k); got != expected {
					t.Errorf("expected %s=%s, got %s", k, expected, got)
				}
			}
		})
	}
}

func TestDelRawQuery(t *testing.T) {
	t.Parallel()

	raw := "department=Sales&page=2"
	got := DelRawQuery(raw, "page")
	values, err := url.ParseQuery(got)
	if err != nil {
		t.Fatalf("ParseQuery returned error: %v", err)
	}
	if values.Get("page") != "" {
		t.Errorf("expected page param removed, got %q", values.Get("page"))
	}
	if values.Get("department") != "Sales" {
		t.Errorf("expected department preserved, got %q", values.Get("department"))
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	u := BuildURL("/admin/reports", "page=2&region=eu")
	if u != "/admin/reports?page=2&region=eu" {
		t.Errorf("unexpected URL: %s", u)
	}

	// handles empty raw query without trailing question mark
	u = BuildURL("/admin/reports?page=1", "")
	if u != "/admin/reports" {
		t.Errorf("expected query stripped when empty, got %s", u)
	}
}

func TestBuildQueryURLSkipsDefaults(t *testing.T) {
	t.Parallel()

	got := BuildQueryURL("/admin/incomplete-mappings", map[string]string{
		"department": "Sales",
		"position":   "all",
		"report":     "",
	})
	if got != "/admin/incomplete-mappings?department=Sales" {
		t.Errorf("unexpected URL: %s", got)
	}
}

func TestSegments(t *testing.T) {
	t.Parallel()

	segs := Segments("Alice Johnson", "jOHN")
	if len(segs) != 3 || segs[1].Text != "John" || !segs[1].Match || segs[2].Text != "son" {
		t.Fatalf("unexpected segments: %+v", segs)
	}
	if segs := Segments("Alice", ""); len(segs) != 1 || segs[0].Match {
		t.Fatalf("empty term must not highlight: %+v", segs)
	}
	if segs := Segments("", "x"); segs != nil {
		t.Fatalf("empty text yields no segments: %+v", segs)
	}
}

func TestHighlightEscapes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Highlight("<b>Sales</b>", "sales").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `&lt;b&gt;<mark class="rounded bg-amber-100 px-0.5 text-slate-900">Sales</mark>&lt;/b&gt;`
	if buf.String() != want {
		t.Errorf("unexpected markup: %s", buf.String())
	}
}

func TestMarkupAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := NewMarkup(&buf)
	m.Void("input", "type", "checkbox", "name", `a"b`, "checked?", Bool(true), "disabled?", Bool(false))
	if m.Err() != nil {
		t.Fatalf("unexpected error: %v", m.Err())
	}
	if buf.String() != `<input type="checkbox" name="a&#34;b" checked>` {
		t.Errorf("unexpected markup: %s", buf.String())
	}
}

func TestFormatters(t *testing.T) {
	t.Parallel()

	if got := Initials("john  doe smith"); got != "JD" {
		t.Errorf("Initials = %q", got)
	}
	if got := Initials(" "); got != "?" {
		t.Errorf("Initials blank = %q", got)
	}
	if got := Plural(1, "employee", "employees"); got != "1 employee" {
		t.Errorf("Plural = %q", got)
	}
	if got := Plural(0, "employee", "employees"); got != "0 employees" {
		t.Errorf("Plural = %q", got)
	}
	if got := Date(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), ""); got != "Mar 1, 2025" {
		t.Errorf("Date = %q", got)
	}
	if got := Date(time.Time{}, ""); got != "" {
		t.Errorf("zero Date = %q", got)
	}
}

func TestNavActive(t *testing.T) {
	t.Parallel()

	var ctx context.Context
	handler := middleware.RequestInfoMiddleware("/admin")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/employees/e1/", nil))

	if !NavActive(ctx, "/admin/employees", true) {
		t.Error("prefix match expected")
	}
	if NavActive(ctx, "/admin/employees", false) {
		t.Error("exact match must fail for nested path")
	}
	if NavActive(ctx, "/admin/employees/new", true) {
		t.Error("sibling path must not match")
	}
	if got := Href(ctx, "reports"); got != "/admin/reports" {
		t.Errorf("Href = %q", got)
	}
}
