package helpers

import (
	"context"
	"strings"

	"finitefield.org/roster-admin/internal/admin/httpserver/middleware"
)

// RequestPath returns the normalised request path.
func RequestPath(ctx context.Context) string {
	return normalizeRoute(middleware.RequestPathFromContext(ctx))
}

// BasePath returns the admin base path.
func BasePath(ctx context.Context) string {
	return middleware.BasePathFromContext(ctx)
}

// Href joins suffix onto the admin base path.
func Href(ctx context.Context, suffix string) string {
	return middleware.JoinBasePath(BasePath(ctx), suffix)
}

// NavActive reports whether the current path matches pattern, or sits under it when prefix is set.
func NavActive(ctx context.Context, pattern string, prefix bool) bool {
	current := RequestPath(ctx)
	target := normalizeRoute(pattern)
	if current == target {
		return true
	}
	if !prefix || target == "/" {
		return false
	}
	return strings.HasPrefix(current, target+"/")
}

func normalizeRoute(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	path = strings.TrimRight(path, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
