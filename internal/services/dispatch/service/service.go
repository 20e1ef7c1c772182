// Package service implements the request dispatcher
package service

import (
	"context"
	"errors"

	"mvpauth/internal/core/addressing"
	"mvpauth/internal/core/scan"
	perr "mvpauth/internal/platform/errors"
	"mvpauth/internal/platform/logger"
	"mvpauth/internal/platform/notice"
	dom "mvpauth/internal/services/dispatch/domain"
)

// Config carries what a dispatcher needs besides its ports
type Config struct {
	Addressing addressing.Addressing
}

// Service builds verification requests and hands them to the host
type Service struct {
	host     dom.Starter
	device   dom.DeviceID
	notices  notice.Sink
	recorder dom.Recorder
	peer     dom.PeerCheck
	addr     addressing.Addressing
}

// Option tweaks a Service
type Option func(*Service)

// WithNotices routes user facing messages to s
func WithNotices(s notice.Sink) Option {
	return func(svc *Service) {
		if s != nil {
			svc.notices = s
		}
	}
}

// WithRecorder keeps an audit trail of attempts
func WithRecorder(r dom.Recorder) Option {
	return func(svc *Service) { svc.recorder = r }
}

// WithPeerCheck asks c before every delivery; a missing peer is logged and
// delivery is still attempted, the host has the final word
func WithPeerCheck(c dom.PeerCheck) Option {
	return func(svc *Service) { svc.peer = c }
}

// New builds a dispatcher over host
func New(host dom.Starter, device dom.DeviceID, cfg Config, opts ...Option) *Service {
	s := &Service{
		host:    host,
		device:  device,
		notices: notice.Discard,
		addr:    cfg.Addressing,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DispatchPayload decodes a raw scan, builds the request and dispatches it
// decoding failures never reach the host
func (s *Service) DispatchPayload(ctx context.Context, raw string) dom.Outcome {
	p, err := scan.DecodeString(raw)
	if err != nil {
		reason := dom.ReasonMalformedPayload
		if errors.Is(err, scan.ErrNoPayload) {
			reason = dom.ReasonNoPayload
		}
		logger.C(ctx).Warn().Err(err).Str("reason", string(reason)).Msg("scanned payload rejected")
		return s.reject(ctx, rejection(reason, reason.Message()))
	}

	notice.ShortText(s.notices, dom.MsgSentToBackground)

	req, err := FromPayload(p)
	if err != nil {
		logger.C(ctx).Warn().Str("scan", p.String()).Msg("scanned payload rejected")
		return s.reject(ctx, err)
	}
	return s.Dispatch(ctx, req)
}

// Dispatch validates req and attempts delivery to the peer
func (s *Service) Dispatch(ctx context.Context, req dom.VerificationRequest) dom.Outcome {
	log := logger.C(ctx).With().Str("component", "dispatch").Logger()

	device := ""
	if _, ok := req.(dom.CodeRequest); ok && s.device != nil {
		device = s.device.ID()
	}
	env, err := BuildEnvelope(req, s.addr, device)
	if err != nil {
		return s.reject(ctx, err)
	}

	if s.peer != nil && !s.peer.IsPeerInstalled(ctx) {
		log.Warn().Str("route", string(env.Route)).Msg("peer looks unavailable, dispatching anyway")
	}
	log.Debug().Str("route", string(env.Route)).Str("target", env.Intent.Target()).Msg("attempting dispatch")

	switch env.Route {
	case dom.RouteBackground:
		err = s.host.StartService(ctx, env.Intent)
	default:
		err = s.host.StartActivity(ctx, env.Intent)
	}
	if err != nil {
		msg := dom.MsgActivityStartFail
		if env.Route == dom.RouteBackground {
			msg = dom.MsgServiceStartFailed
		}
		log.Error().Err(err).Str("route", string(env.Route)).Msg("dispatch failed")
		notice.ShortText(s.notices, msg)
		return s.record(ctx, dom.Outcome{
			Kind:    dom.DeliveryFailed,
			Route:   env.Route,
			Message: msg,
			Err:     perr.Wrap(err, perr.ErrorCodeUnavailable, msg),
		})
	}

	log.Debug().Str("route", string(env.Route)).Msg("dispatch sent")
	return s.record(ctx, dom.Outcome{
		Kind:    dom.Dispatched,
		Route:   env.Route,
		Message: dom.MsgAwaitingResult,
	})
}

func (s *Service) reject(ctx context.Context, err error) dom.Outcome {
	reason, ok := ReasonOf(err)
	if !ok {
		reason = dom.ReasonMalformedPayload
	}
	msg := reason.Message()
	if reason == dom.ReasonNoPayload {
		notice.ShortText(s.notices, msg)
	} else {
		notice.LongText(s.notices, msg)
	}
	return s.record(ctx, dom.Outcome{Kind: dom.Rejected, Reason: reason, Message: msg, Err: err})
}

func (s *Service) record(ctx context.Context, o dom.Outcome) dom.Outcome {
	if s.recorder != nil {
		s.recorder.RecordDispatch(ctx, o)
	}
	return o
}

var _ dom.DispatchPort = (*Service)(nil)
