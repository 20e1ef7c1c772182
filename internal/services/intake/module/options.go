package module

import (
	"mvpauth/internal/core/addressing"
	"mvpauth/internal/platform/config"
	dom "mvpauth/internal/services/intake/domain"
)

// Options controls the intake endpoint
type Options struct {
	Mode        dom.Mode
	Action      string
	StatusExtra string
	Channel     string
}

// FromConfig reads INTAKE_MODE and the addressing it listens on
func FromConfig(cfg config.Conf) Options {
	a := addressing.FromConfig(cfg)
	return fromAddressing(cfg, a)
}

func fromAddressing(cfg config.Conf, a addressing.Addressing) Options {
	c := cfg.Prefix("INTAKE_")
	mode := dom.Mode(c.MayEnum("MODE", string(dom.ModeReceiver),
		string(dom.ModeReceiver), string(dom.ModeForegroundService)))
	o := Options{
		Mode:        mode,
		Action:      a.CallbackAction,
		StatusExtra: a.StatusExtra,
		Channel:     a.RelayChannel,
	}
	if mode == dom.ModeForegroundService {
		o.Action = a.ForegroundResultAction
	}
	return o
}
