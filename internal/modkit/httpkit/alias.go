// Package httpkit is what modules use to declare routes
// modules import it instead of internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "mvpauth/internal/platform/net/http"
)

type (
	// Envelope is the JSON body every route writes
	Envelope = phttp.Envelope

	// Response lets a handler pick a non 200 status
	Response = phttp.Response

	// Handler is the platform handler shape
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// OK is a 200 with data
func OK(data any) Response { return phttp.OK(data) }

// Accepted is a 202 with data
func Accepted(data any) Response { return phttp.Accepted(data) }

// Error maps err onto the envelope
func Error(err error) Response { return phttp.Error(err) }

// Get mounts a body-less GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.NoBody(h))
}

// Post mounts a body-less POST, for commands that carry no input
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, phttp.NoBody(h))
}

// PostBound mounts a POST whose body is decoded and validated into T
func PostBound[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}
