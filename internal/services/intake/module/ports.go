package module

import dom "mvpauth/internal/services/intake/domain"

// Ports holds the ports exposed by the intake module
type Ports struct {
	Intake dom.IntakePort
}

// Needs are optional ports injected from other modules
type Needs struct {
	Publisher dom.Publisher
	Recorder  dom.Recorder
}
