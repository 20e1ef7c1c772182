// Package service implements a stand in verifier for local runs and tests
// it answers every request it can parse with a configured status
package service

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"mvpauth/internal/core/addressing"
	perr "mvpauth/internal/platform/errors"
	"mvpauth/internal/platform/intent"
	"mvpauth/internal/platform/logger"
)

// ReplyTo picks how results travel back to the requester
type ReplyTo string

// Reply shapes understood by the requester intake
const (
	ReplyBroadcast ReplyTo = "broadcast"
	ReplyService   ReplyTo = "service"
)

// Config controls the replies
type Config struct {
	Addressing addressing.Addressing
	Status     string
	Delay      time.Duration
	ReplyTo    ReplyTo
	// ResultService is the requester component targeted in ReplyService mode
	ResultService string
}

// Replier is the part of the host the mock answers through
type Replier interface {
	StartService(ctx context.Context, in intent.Intent) error
	SendBroadcast(ctx context.Context, in intent.Intent) (int, error)
}

// Service is the mock verifier
type Service struct {
	host Replier
	cfg  Config
	wg   sync.WaitGroup
}

// sleep is swapped in tests
var sleep = time.Sleep

// New builds a mock answering through host
func New(host Replier, cfg Config) *Service {
	if cfg.ReplyTo == "" {
		cfg.ReplyTo = ReplyBroadcast
	}
	return &Service{host: host, cfg: cfg}
}

// HandleToken is the background processing endpoint
func (s *Service) HandleToken(ctx context.Context, in intent.Intent) error {
	tok, _ := in.Extra("token")
	if strings.TrimSpace(tok) == "" {
		return perr.WithField(perr.InvalidArgf("token extra is required"), "token")
	}
	pkg, _ := in.Extra("packageName")
	if pkg == "" {
		return perr.WithField(perr.InvalidArgf("packageName extra is required"), "packageName")
	}
	logger.C(ctx).Info().Str("component", "peermock").Str("reply_to", pkg).Msg("token request received")
	s.reply(ctx, pkg, s.cfg.Addressing.CallbackAction)
	return nil
}

// HandleLink is the browsable entry point, it reads the verify link in Data
func (s *Service) HandleLink(ctx context.Context, in intent.Intent) error {
	u, err := url.Parse(in.Data)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "unparseable verify link")
	}
	a := s.cfg.Addressing
	if !strings.EqualFold(u.Scheme, a.LinkScheme) || u.Host != a.LinkAuthority {
		return perr.InvalidArgf("unexpected link %s://%s", u.Scheme, u.Host)
	}
	q := u.Query()
	for _, k := range []string{"imoNumber", "code", "packageName"} {
		if q.Get(k) == "" {
			return perr.WithField(perr.InvalidArgf("%s is required", k), k)
		}
	}
	action := q.Get("action")
	if action == "" {
		action = a.CallbackAction
	}
	logger.C(ctx).Info().
		Str("component", "peermock").
		Str("reply_to", q.Get("packageName")).
		Bool("has_device", q.Get("deviceCode") != "").
		Msg("code request received")
	s.reply(ctx, q.Get("packageName"), action)
	return nil
}

// Wait blocks until every pending reply has been attempted
func (s *Service) Wait() { s.wg.Wait() }

// reply answers asynchronously so the inbound delivery returns first
func (s *Service) reply(ctx context.Context, pkg, action string) {
	ctx = context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if s.cfg.Delay > 0 {
			sleep(s.cfg.Delay)
		}
		log := logger.C(ctx).With().Str("component", "peermock").Str("status", s.cfg.Status).Logger()

		if s.cfg.ReplyTo == ReplyService {
			in := intent.New(s.cfg.Addressing.ForegroundResultAction).
				WithComponent(pkg, s.cfg.ResultService)
			in = withStatus(in, s.cfg.Addressing.StatusExtra, s.cfg.Status)
			in.Foreground = true
			if err := s.host.StartService(ctx, in); err != nil {
				log.Warn().Err(err).Msg("result service start failed")
				return
			}
			log.Debug().Msg("result sent to service")
			return
		}

		in := withStatus(intent.New(action), s.cfg.Addressing.StatusExtra, s.cfg.Status)
		in.Package = pkg
		n, err := s.host.SendBroadcast(ctx, in)
		if err != nil {
			log.Warn().Err(err).Msg("result broadcast failed")
			return
		}
		log.Debug().Int("receivers", n).Msg("result broadcast")
	}()
}

// withStatus leaves the extra off when status is empty, the requester shows
// its no status text then
func withStatus(in intent.Intent, key, status string) intent.Intent {
	if status == "" {
		return in
	}
	return in.PutExtra(key, status)
}
