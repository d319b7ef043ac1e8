// Package observability provides request logging for the web service.
package observability

import (
	"net/http"
	"time"

	"github.com/taskmate/taskmate-web/internal/platform/logging"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/httpx"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request with method, path, status, bytes,
// latency and request id. It prefers the request-scoped logger attached by
// httpx.RequestID and falls back to base.
func RequestLogger(base *zap.Logger) httpx.Middleware {
	if base == nil {
		base = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(recorder, r)

			logger, scoped := logging.Lookup(r.Context())
			if !scoped {
				logger = base
			}
			status := recorder.status
			if status == 0 {
				status = http.StatusOK
			}
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", recorder.bytes),
				zap.Duration("latency", time.Since(start)),
			}
			if requestID := r.Header.Get(httpx.RequestIDHeader); requestID != "" && !scoped {
				fields = append(fields, zap.String("request_id", requestID))
			}
			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("http request", fields...)
			case status >= http.StatusBadRequest:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
