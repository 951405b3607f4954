package middleware

import (
	"context"
	"net/http"
	"strings"
)

// DefaultEnvironment is used when no environment label is configured.
const DefaultEnvironment = "Development"

type environmentKey struct{}

// Environment tags requests with the deployment label shown in the top bar.
func Environment(label string) func(http.Handler) http.Handler {
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultEnvironment
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), environmentKey{}, label)))
		})
	}
}

// EnvironmentFromContext returns the label set by Environment or DefaultEnvironment.
func EnvironmentFromContext(ctx context.Context) string {
	if ctx != nil {
		if label, ok := ctx.Value(environmentKey{}).(string); ok && label != "" {
			return label
		}
	}
	return DefaultEnvironment
}

// EnvironmentBadge abbreviates well-known environment names.
func EnvironmentBadge(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "development", "dev", "local":
		return "DEV"
	case "staging", "stg":
		return "STG"
	case "production", "prod":
		return "PROD"
	default:
		label = strings.ToUpper(strings.TrimSpace(label))
		if len(label) > 4 {
			label = label[:4]
		}
		return label
	}
}
