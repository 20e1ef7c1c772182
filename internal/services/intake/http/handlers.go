// Package http exposes the intake endpoint to the host
package http

import (
	"mvpauth/internal/modkit/httpkit"
	"mvpauth/internal/platform/intent"
	dom "mvpauth/internal/services/intake/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Intake dom.IntakePort
	Mode   dom.Mode
}

// Register mounts /intents/broadcast, or /intents/service in foreground service mode
//
// @Summary Deliver the verifier result
// @Tags Intake
// @Accept json
// @Success 202 {object} intent.Accepted
// @Router /intents/broadcast [post]
func Register(r httpkit.Router, d Deps) {
	in := intent.Inbound{}
	if d.Mode == dom.ModeForegroundService {
		in.Service = d.Intake.Receive
	} else {
		in.Broadcast = d.Intake.Receive
	}
	intent.Mount(r, in)
}
