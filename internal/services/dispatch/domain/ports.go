package domain

import (
	"context"

	"mvpauth/internal/platform/intent"
)

// Starter is the part of the host a dispatcher needs
type Starter interface {
	StartActivity(ctx context.Context, in intent.Intent) error
	StartService(ctx context.Context, in intent.Intent) error
}

// DeviceID supplies the local device identifier
type DeviceID interface {
	ID() string
}

// PeerCheck is the advisory availability check run before delivery
type PeerCheck interface {
	IsPeerInstalled(ctx context.Context) bool
}

// Recorder keeps an audit trail of attempts, never credential values
type Recorder interface {
	RecordDispatch(ctx context.Context, o Outcome)
}

// DispatchPort is what sessions call
type DispatchPort interface {
	Dispatch(ctx context.Context, req VerificationRequest) Outcome
	DispatchPayload(ctx context.Context, raw string) Outcome
}
