// Package service implements the peer availability check
package service

import (
	"context"

	"mvpauth/internal/platform/logger"
	"mvpauth/internal/platform/notice"
	dom "mvpauth/internal/services/peer/domain"
)

// Service checks the host registry for the verifier application
type Service struct {
	host    dom.Launcher
	pkg     string
	notices notice.Sink
}

// New builds a checker for pkg
func New(host dom.Launcher, pkg string, notices notice.Sink) *Service {
	if notices == nil {
		notices = notice.Discard
	}
	return &Service{host: host, pkg: pkg, notices: notices}
}

// IsPeerInstalled implements dom.CheckPort
// registry failures count as not installed
func (s *Service) IsPeerInstalled(ctx context.Context) bool {
	log := logger.C(ctx).With().Str("component", "peer").Str("package", s.pkg).Logger()

	comps, err := s.host.QueryLaunchable(ctx, s.pkg)
	if err != nil {
		log.Warn().Err(err).Msg("host registry lookup failed")
	}
	if err != nil || len(comps) == 0 {
		log.Warn().Msg("peer app not found, check package name and host registry")
		notice.ShortText(s.notices, dom.NotInstalledNotice)
		return false
	}
	log.Debug().Int("entry_points", len(comps)).Msg("peer app installed")
	return true
}

var _ dom.CheckPort = (*Service)(nil)
