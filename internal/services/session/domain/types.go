// Package domain holds the request/result session state
package domain

import (
	"context"

	dispatch "mvpauth/internal/services/dispatch/domain"
	"mvpauth/internal/services/relay"
)

// Phase is where a session stands in the handshake
type Phase string

const (
	// PhaseIdle means nothing is outstanding
	PhaseIdle Phase = "idle"
	// PhaseAwaitingResult means a request went out and no result came back yet
	// it has no deadline, and since results carry no request id any result ends it
	PhaseAwaitingResult Phase = "awaiting_result"
	// PhaseDelivered means a result was shown
	PhaseDelivered Phase = "delivered"
	// PhaseLost means the session was destroyed with a request outstanding
	PhaseLost Phase = "lost"
)

// Notice texts owned by the session
const (
	MsgScanned   = "Scanned"
	MsgCancelled = "Cancelled"
)

// State is a snapshot of one session
type State struct {
	Phase       Phase  `json:"phase"`
	LastScanned string `json:"last_scanned,omitempty"`
	Display     string `json:"display"`
	Subscribed  bool   `json:"subscribed"`
	Destroyed   bool   `json:"destroyed"`
}

// Dispatcher is the part of the dispatcher a session drives
type Dispatcher interface {
	DispatchPayload(ctx context.Context, raw string) dispatch.Outcome
}

// Bus is the part of the relay a session listens on
type Bus interface {
	Subscribe(channel string, h relay.Handler) relay.Subscription
	Unsubscribe(s relay.Subscription) bool
}
