// Package domain holds the handshake audit trail types
package domain

import (
	"context"
	"time"
)

// Kind says which side of the handshake an entry records
type Kind string

const (
	// KindDispatch is an outgoing verification request
	KindDispatch Kind = "dispatch"
	// KindResult is a result accepted by the intake endpoint
	KindResult Kind = "result"
)

// Entry is one journal line
// it never carries tokens, codes or device identifiers
type Entry struct {
	ID        string    `json:"id"`
	At        time.Time `json:"at"`
	Kind      Kind      `json:"kind"`
	Route     string    `json:"route,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Result    string    `json:"result,omitempty"`
	Delivered int       `json:"delivered"`
}

// DefaultLimit and MaxLimit bound Recent
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// QueryPort reads the journal back
type QueryPort interface {
	Recent(ctx context.Context, limit int) ([]Entry, error)
}
