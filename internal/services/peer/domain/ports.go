// Package domain holds the peer availability contracts
package domain

import (
	"context"

	"mvpauth/internal/platform/intent"
)

// NotInstalledNotice is shown when the verifier cannot be found
const NotInstalledNotice = "MVP app not installed."

// Launcher lists launchable entry points of an installed package
type Launcher interface {
	QueryLaunchable(ctx context.Context, pkg string) ([]intent.Component, error)
}

// CheckPort answers whether the verifier application is installed
// the answer is advisory, dispatch handles its own failures
type CheckPort interface {
	IsPeerInstalled(ctx context.Context) bool
}
