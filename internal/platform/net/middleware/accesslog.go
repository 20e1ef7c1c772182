package middleware

import (
	"net/http"
	"time"

	"mvpauth/internal/platform/logger"
	pnet "mvpauth/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions tune AccessLogZerolog
type AccessLogOptions struct {
	// Slow logs requests at warn once they take this long, 0 never
	Slow time.Duration
	// Log overrides the request scoped logger, tests use it
	Log *logger.Logger
}

// AccessLogZerolog logs one line per request once the handler returns
func AccessLogZerolog(opt AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			took := time.Since(start)

			log := opt.Log
			if log == nil {
				log = logger.C(r.Context())
			}
			ev := log.Info()
			if opt.Slow > 0 && took >= opt.Slow {
				ev = log.Warn()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", took).
				Str("request_id", pnet.RequestID(r.Context())).
				Msg("request")
		})
	}
}
