package module

import (
	"time"

	"mvpauth/internal/core/addressing"
	"mvpauth/internal/platform/config"
	"mvpauth/internal/services/peermock/service"
)

// DefaultResultService is the requester component answered in service mode
const DefaultResultService = addressing.DefaultRequesterPackage + ".ResultService"

// FromConfig reads PEER_REPLY_* with the shared addressing
func FromConfig(cfg config.Conf) service.Config {
	c := cfg.Prefix("PEER_")
	return service.Config{
		Addressing:    addressing.FromConfig(cfg),
		Status:        c.MayString("REPLY_STATUS", "APPROVED"),
		Delay:         c.MayDuration("REPLY_DELAY", 500*time.Millisecond),
		ReplyTo:       service.ReplyTo(c.MayEnum("REPLY_TO", string(service.ReplyBroadcast), string(service.ReplyBroadcast), string(service.ReplyService))),
		ResultService: c.MayString("RESULT_SERVICE", DefaultResultService),
	}
}
