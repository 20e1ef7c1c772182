// Package middleware exposes the chi and cors middlewares the stacks are built from,
// plus the JSON recoverer and the zerolog access log
package middleware

import (
	"net/http"
	"time"

	pstrings "mvpauth/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the shape every entry of a stack has
type Middleware = func(http.Handler) http.Handler

// RequestID reuses an inbound X-Request-ID or mints one
func RequestID() Middleware { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP for RemoteAddr
func RealIP() Middleware { return chimw.RealIP }

// Timeout cancels the request context after d and answers 504 if nothing was written
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// NoCache marks every response uncacheable, session views go stale fast
func NoCache() Middleware { return chimw.NoCache }

// Compress gzips and deflates text and JSON bodies at level
func Compress(level int) Middleware { return chimw.Compress(level) }

// StripSlashes routes /console/ as /console, it works inside mounted subrouters
func StripSlashes() Middleware { return chimw.StripSlashes }

// Throttle caps in flight requests, extra ones get 429
func Throttle(limit int) Middleware { return chimw.Throttle(limit) }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// CORSOptions are the go-chi/cors knobs the console uses, empty lists take defaults
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	defaultMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	defaultHeaders = []string{"Accept", "Content-Type", "X-Request-ID"}
)

// CORS lets a browser console on another origin drive the API
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, defaultMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, defaultHeaders),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-ID"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
