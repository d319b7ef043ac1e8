package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taskmate/taskmate-web/internal/platform/logging"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/httpx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerLogsMethodAndPath(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	h := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/app/teams/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["method"] != "GET" || fields["path"] != "/app/teams/" || fields["status"] != int64(204) || fields["request_id"] != "req-123" {
		t.Fatalf("fields = %v", fields)
	}
}

func TestRequestLoggerCapturesImplicitStatusOKAndBytes(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	h := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/up", nil))
	fields := logs.All()[0].ContextMap()
	if fields["status"] != int64(200) || fields["bytes"] != int64(2) {
		t.Fatalf("fields = %v", fields)
	}
	if _, ok := fields["latency"]; !ok {
		t.Fatal("latency field missing")
	}
}

func TestRequestLoggerUsesLevelByStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		level  zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusNotFound, zapcore.WarnLevel},
		{http.StatusBadGateway, zapcore.ErrorLevel},
	}
	for _, tc := range tests {
		core, logs := observer.New(zapcore.DebugLevel)
		h := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		if got := logs.All()[0].Level; got != tc.level {
			t.Fatalf("level for %d = %v, want %v", tc.status, got, tc.level)
		}
	}
}

func TestRequestLoggerPrefersRequestScopedLogger(t *testing.T) {
	t.Parallel()

	baseCore, baseLogs := observer.New(zapcore.DebugLevel)
	scopedCore, scopedLogs := observer.New(zapcore.DebugLevel)
	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}),
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx, _ := logging.WithRequestID(r.Context(), zap.New(scopedCore), "req-9")
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		},
		RequestLogger(zap.New(baseCore)),
	)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if baseLogs.Len() != 0 || scopedLogs.Len() != 1 {
		t.Fatalf("base logs = %d, scoped logs = %d", baseLogs.Len(), scopedLogs.Len())
	}
	if got := scopedLogs.All()[0].ContextMap()["request_id"]; got != "req-9" {
		t.Fatalf("request_id = %v, want req-9", got)
	}
}
