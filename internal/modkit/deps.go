// Package modkit provides module wiring and core deps
package modkit

import (
	"mvpauth/internal/core/addressing"
	"mvpauth/internal/modkit/repokit"
	"mvpauth/internal/platform/config"
	"mvpauth/internal/platform/intent"
	"mvpauth/internal/platform/logger"
	"mvpauth/internal/platform/notice"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	PG      repokit.TxRunner
	Host    intent.Host
	Notices notice.Sink
	Addr    addressing.Addressing
}

// NoticeSink returns Notices or a sink that drops everything
func (d Deps) NoticeSink() notice.Sink {
	if d.Notices == nil {
		return notice.Discard
	}
	return d.Notices
}
