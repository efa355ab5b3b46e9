package middleware

import (
	"net/http"
	"time"

	"petrescue/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// HTTPRecorder lo implementa metrics.Collector.
type HTTPRecorder interface {
	RecordHTTP(method string, status int)
}

// Logging escribe una línea por request; el nivel depende del status.
// rec puede ser nil.
func Logging(log logger.Logger, rec HTTPRecorder) func(http.Handler) http.Handler {
	log = logger.OrNop(log)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if rec != nil {
				rec.RecordHTTP(r.Method, status)
			}

			fields := map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": float64(time.Since(start).Microseconds()) / 1000,
				"request_id":  GetRequestID(r.Context()),
			}
			if actor, ok := GetActor(r.Context()); ok {
				fields["user_id"] = actor.UserID
			}

			switch {
			case status >= 500:
				log.Error("http_request", fields)
			case status >= 400:
				log.Warn("http_request", fields)
			default:
				log.Info("http_request", fields)
			}
		})
	}
}
