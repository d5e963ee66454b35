package middleware

import (
	"net/http"
	"time"

	"puppy-store/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLog registra una línea por request con status y duración, y deja en el
// contexto un logger con el request_id (logger.FromContext) para los handlers.
// Va después de chimw.RequestID.
func RequestLog(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLog := log
			if id := chimw.GetReqID(r.Context()); id != "" {
				reqLog = log.With(map[string]any{"request_id": id})
			}
			r = r.WithContext(logger.NewContext(r.Context(), reqLog))

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			}

			switch {
			case status >= 500:
				reqLog.Error("http request", fields)
			case status >= 400:
				reqLog.Warn("http request", fields)
			default:
				reqLog.Info("http request", fields)
			}
		})
	}
}
