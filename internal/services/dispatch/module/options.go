package module

import (
	"mvpauth/internal/core/addressing"
	"mvpauth/internal/platform/config"
)

// Options controls the dispatcher
type Options struct {
	Addressing     addressing.Addressing
	DeviceOverride string
	StateDir       string
}

// FromConfig reads identity under MVPAUTH_
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("MVPAUTH_")
	return Options{
		Addressing:     addressing.FromConfig(cfg),
		DeviceOverride: c.MayString("DEVICE_ID", ""),
		StateDir:       c.MayString("STATE_DIR", ".mvpauth"),
	}
}
