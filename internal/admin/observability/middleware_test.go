package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{name: "ok logs info", status: http.StatusOK, level: zapcore.InfoLevel},
		{name: "not found logs warn", status: http.StatusNotFound, level: zapcore.WarnLevel},
		{name: "failure logs error", status: http.StatusInternalServerError, level: zapcore.ErrorLevel},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zapcore.DebugLevel)
			handler := InjectLoggerMiddleware(zap.New(core))(RequestLoggerMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte("body"))
			})))

			req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			entries := logs.FilterMessage("request completed").All()
			require.Len(t, entries, 1)
			require.Equal(t, tc.level, entries[0].Level)
			fields := entries[0].ContextMap()
			require.EqualValues(t, tc.status, fields["status"])
			require.EqualValues(t, 4, fields["bytes"])
			require.Equal(t, "/admin/reports", fields["path"])
		})
	}
}

func TestRecoveryMiddlewareWritesEnvelope(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	handler := RecoveryMiddleware(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	require.Equal(t, "internal_server_error", payload["error"])
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestFromContextDefaultsToNoop(t *testing.T) {
	t.Parallel()

	require.NotNil(t, FromContext(context.Background()))

	logger := zap.NewExample()
	require.Same(t, logger, FromContext(WithLogger(context.Background(), logger)))
}

func TestNewLoggerFallsBackOnInvalidLevel(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger("chatty")
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNamedLogger(t *testing.T) {
	t.Parallel()

	require.NotNil(t, Named(nil, "reports"))

	core, logs := observer.New(zapcore.InfoLevel)
	Named(zap.New(core), "reports").Info("seeded")
	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "reports", entries[0].LoggerName)
}
