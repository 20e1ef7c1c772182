// Package domain holds the console view types
package domain

import (
	"context"

	"mvpauth/internal/platform/notice"
	dispatch "mvpauth/internal/services/dispatch/domain"
	journal "mvpauth/internal/services/journal/domain"
	session "mvpauth/internal/services/session/domain"
)

// Peer check texts
const (
	MsgPeerInstalled    = "MVP installed!"
	MsgPeerNotInstalled = "MVP not installed!"
)

// ScanInput is the scanner result, an empty payload means the scan was cancelled
type ScanInput struct {
	Payload string `json:"payload" validate:"max=65536"`
}

// PeerStatus answers a peer check
type PeerStatus struct {
	Installed bool   `json:"installed"`
	Message   string `json:"message"`
}

// View is everything the form shows
type View struct {
	Open    bool            `json:"open"`
	State   *session.State  `json:"state,omitempty"`
	Notices []notice.Notice `json:"notices"`
}

// PeerCheck answers whether the verifier is installed
type PeerCheck interface {
	IsPeerInstalled(ctx context.Context) bool
}

// NoticeBoard is where the console reads notices back
type NoticeBoard interface {
	notice.Sink
	Recent() []notice.Notice
}

// ServicePort is the console contract used by the http layer
type ServicePort interface {
	Open(ctx context.Context) View
	Resume(ctx context.Context) (View, error)
	Stop(ctx context.Context) (View, error)
	Close(ctx context.Context) (View, error)
	Scan(ctx context.Context, in ScanInput) (View, error)
	Authenticate(ctx context.Context) (dispatch.Outcome, error)
	CheckPeer(ctx context.Context) PeerStatus
	View(ctx context.Context) View
	Journal(ctx context.Context, limit int) ([]journal.Entry, error)
}
