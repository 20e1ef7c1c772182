// Package service implements the result intake endpoint
// it is the only component the peer can reach; everything else hears results
// through the relay
package service

import (
	"context"

	"mvpauth/internal/platform/intent"
	"mvpauth/internal/platform/logger"
	"mvpauth/internal/platform/notice"
	dom "mvpauth/internal/services/intake/domain"
	"mvpauth/internal/services/relay"
)

// Config fixes what the endpoint accepts and where it publishes
type Config struct {
	Mode        dom.Mode
	Action      string
	StatusExtra string
	Channel     string
}

// Service is the intake endpoint
type Service struct {
	cfg      Config
	relay    dom.Publisher
	notices  notice.Sink
	recorder dom.Recorder
}

// Option tweaks a Service
type Option func(*Service)

// WithNotices routes progress notices in foreground service mode
func WithNotices(s notice.Sink) Option {
	return func(svc *Service) {
		if s != nil {
			svc.notices = s
		}
	}
}

// WithRecorder keeps an audit trail of accepted results
func WithRecorder(r dom.Recorder) Option {
	return func(svc *Service) { svc.recorder = r }
}

// New builds the endpoint; pub is usually relay.Default()
func New(pub dom.Publisher, cfg Config, opts ...Option) *Service {
	if cfg.Mode == "" {
		cfg.Mode = dom.ModeReceiver
	}
	if cfg.Channel == "" {
		cfg.Channel = relay.ResultChannel
	}
	s := &Service{cfg: cfg, relay: pub, notices: notice.Discard}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Mode reports which delivery shape the endpoint accepts
func (s *Service) Mode() dom.Mode { return s.cfg.Mode }

// Receive implements dom.IntakePort
// anything not carrying exactly the expected action is dropped without error
func (s *Service) Receive(ctx context.Context, in intent.Intent) error {
	log := logger.C(ctx).With().Str("component", "intake").Logger()

	if in.Action != s.cfg.Action {
		log.Debug().Str("action", in.Action).Str("sender", intent.SenderFrom(ctx)).Msg("ignoring stray signal")
		return nil
	}

	foreground := s.cfg.Mode == dom.ModeForegroundService
	if foreground {
		notice.Progress(s.notices, dom.NoticeKey, dom.NoticeWaiting)
	}

	var env dom.ResultEnvelope
	if v, ok := in.Extra(s.cfg.StatusExtra); ok {
		env.Status = &v
	}
	text := env.Text()

	n := s.relay.Publish(relay.Event{Channel: s.cfg.Channel, ResultText: text})
	log.Debug().Bool("has_status", env.Status != nil).Int("delivered", n).Msg("result relayed")

	if s.recorder != nil {
		s.recorder.RecordResult(ctx, text, n)
	}

	if foreground {
		done := dom.NoticeNoStatus
		if env.Status != nil {
			done = dom.NoticeReceived + *env.Status
		}
		notice.Progress(s.notices, dom.NoticeKey, done)
		log.Debug().Msg("foreground run finished")
	}
	return nil
}

var _ dom.IntakePort = (*Service)(nil)
