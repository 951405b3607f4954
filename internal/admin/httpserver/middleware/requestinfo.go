package middleware

import (
	"context"
	"net/http"
	"strings"
)

type requestInfoKey struct{}

// RequestInfo is the request metadata that page components read while rendering.
type RequestInfo struct {
	Path     string
	RawQuery string
	Method   string
	BasePath string
}

// RequestInfoMiddleware stores the request path, query and admin base path in the context.
func RequestInfoMiddleware(basePath string) func(http.Handler) http.Handler {
	base := NormalizeBasePath(basePath)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := RequestInfo{
				Path:     r.URL.Path,
				RawQuery: r.URL.RawQuery,
				Method:   r.Method,
				BasePath: base,
			}
			next.ServeHTTP(w, r.WithContext(WithRequestInfo(r.Context(), info)))
		})
	}
}

// WithRequestInfo returns a child context carrying info.
func WithRequestInfo(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, info)
}

// RequestInfoFromContext returns the stored metadata, if any.
func RequestInfoFromContext(ctx context.Context) (RequestInfo, bool) {
	if ctx == nil {
		return RequestInfo{}, false
	}
	info, ok := ctx.Value(requestInfoKey{}).(RequestInfo)
	return info, ok
}

// RequestPathFromContext returns the request path or "".
func RequestPathFromContext(ctx context.Context) string {
	info, _ := RequestInfoFromContext(ctx)
	return info.Path
}

// RawQueryFromContext returns the encoded query string or "".
func RawQueryFromContext(ctx context.Context) string {
	info, _ := RequestInfoFromContext(ctx)
	return info.RawQuery
}

// BasePathFromContext returns the admin base path, "/" when unset.
func BasePathFromContext(ctx context.Context) string {
	if info, ok := RequestInfoFromContext(ctx); ok && info.BasePath != "" {
		return info.BasePath
	}
	return "/"
}

// NormalizeBasePath yields "/" or a leading-slash path without trailing slash.
func NormalizeBasePath(base string) string {
	base = strings.TrimSpace(base)
	if base == "" || base == "/" {
		return "/"
	}
	base = "/" + strings.Trim(base, "/")
	if base == "/" {
		return "/"
	}
	return base
}

// JoinBasePath appends suffix to the admin base path.
func JoinBasePath(base, suffix string) string {
	base = NormalizeBasePath(base)
	if !strings.HasPrefix(suffix, "/") {
		suffix = "/" + suffix
	}
	if base == "/" {
		return suffix
	}
	return base + suffix
}
