package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type htmxKey struct{}

// HTMXInfo is the subset of htmx request headers the handlers act on.
type HTMXInfo struct {
	Request    bool
	Boosted    bool
	Target     string
	Trigger    string
	CurrentURL string
}

// HTMX parses HX-* request headers into the context.
func HTMX() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := HTMXInfo{
				Request:    headerTrue(r, "HX-Request"),
				Boosted:    headerTrue(r, "HX-Boosted"),
				Target:     r.Header.Get("HX-Target"),
				Trigger:    r.Header.Get("HX-Trigger"),
				CurrentURL: r.Header.Get("HX-Current-URL"),
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), htmxKey{}, info)))
		})
	}
}

// HTMXInfoFromContext returns the parsed headers, zero when absent.
func HTMXInfoFromContext(ctx context.Context) HTMXInfo {
	info, _ := ctx.Value(htmxKey{}).(HTMXInfo)
	return info
}

// IsHTMXRequest reports whether htmx issued the request. Boosted navigations count as full page loads.
func IsHTMXRequest(ctx context.Context) bool {
	info := HTMXInfoFromContext(ctx)
	return info.Request && !info.Boosted
}

// RequireHTMX answers 404 to anything that is not an htmx fragment request.
func RequireHTMX() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "HX-Request")
			if !IsHTMXRequest(r.Context()) {
				http.NotFound(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Toast tones understood by the toast region.
const (
	ToneSuccess = "success"
	ToneInfo    = "info"
	ToneWarning = "warning"
	ToneDanger  = "danger"
)

// EventMappingsChanged is raised after a report mapping changes so listing fragments can refresh.
const EventMappingsChanged = "mappings:changed"

// TriggerToast sets an HX-Trigger header that raises a toast on the client,
// plus any additional argument-less events.
func TriggerToast(w http.ResponseWriter, message, tone string, events ...string) {
	triggers := map[string]any{
		"toast": map[string]string{"message": message, "tone": tone},
	}
	for _, name := range events {
		triggers[name] = true
	}
	payload, err := json.Marshal(triggers)
	if err != nil {
		return
	}
	w.Header().Set("HX-Trigger", string(payload))
}

// Redirect sends htmx callers an HX-Redirect and everyone else a 303.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	if IsHTMXRequest(r.Context()) {
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func headerTrue(r *http.Request, name string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Header.Get(name)), "true")
}
