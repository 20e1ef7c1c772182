// Package domain holds the result envelope and intake contracts
package domain

import (
	"context"

	"mvpauth/internal/platform/intent"
	"mvpauth/internal/services/relay"
)

// Placeholder replaces an absent status
const Placeholder = "No result data"

// Progress notice texts for the foreground service variant
const (
	NoticeKey      = "mvp-result"
	NoticeWaiting  = "Waiting for MVP app result..."
	NoticeReceived = "Result received: "
	NoticeNoStatus = "Result received: No status"
)

// Mode selects how the peer's reply reaches this process
type Mode string

const (
	// ModeReceiver accepts a broadcast on the callback action
	ModeReceiver Mode = "receiver"
	// ModeForegroundService accepts a service start and tracks it with an ongoing notice
	ModeForegroundService Mode = "foreground_service"
)

// ResultEnvelope is the raw reply; Status is nil when the peer sent none
type ResultEnvelope struct {
	Status *string
}

// Text normalises the envelope into display text
func (e ResultEnvelope) Text() string {
	if e.Status == nil {
		return Placeholder
	}
	return *e.Status
}

// Publisher is the relay surface intake writes to
type Publisher interface {
	Publish(ev relay.Event) int
}

// Recorder keeps an audit trail of accepted results
type Recorder interface {
	RecordResult(ctx context.Context, text string, delivered int)
}

// IntakePort receives inbound intents addressed at the result endpoint
type IntakePort interface {
	Receive(ctx context.Context, in intent.Intent) error
}
