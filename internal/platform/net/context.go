// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keySender ctxKey = "sender"

// WithRequest annotates context with common request scoped ids
// sender is the calling package of an inbound intent
func WithRequest(ctx context.Context, reqID, sender string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if sender != "" {
		ctx = context.WithValue(ctx, keySender, sender)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// Sender returns the calling package on the context if present
func Sender(ctx context.Context) string {
	if v, ok := ctx.Value(keySender).(string); ok {
		return v
	}
	return ""
}
