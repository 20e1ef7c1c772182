package middleware

import (
	"net/http"
	"runtime/debug"

	perr "mvpauth/internal/platform/errors"
	"mvpauth/internal/platform/logger"
	pnet "mvpauth/internal/platform/net"
	phttp "mvpauth/internal/platform/net/http"
)

var panicReply = phttp.Handle(func(*http.Request) phttp.Response {
	return phttp.Error(perr.PanicErrf("panic recovered"))
})

// RecoverJSON turns a panic into the standard 500 envelope and logs the stack
// http.ErrAbortHandler is re-panicked so net/http can drop the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			id := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Str("request_id", id).
				Str("path", r.URL.Path).
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			if id != "" {
				w.Header().Set("X-Request-ID", id)
			}
			panicReply(w, r)
		}()
		next.ServeHTTP(w, r)
	})
}
