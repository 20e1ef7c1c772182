// Package service implements the request/result session
package service

import (
	"context"
	"sync"

	perr "mvpauth/internal/platform/errors"
	"mvpauth/internal/platform/logger"
	"mvpauth/internal/platform/notice"
	dispatch "mvpauth/internal/services/dispatch/domain"
	"mvpauth/internal/services/relay"
	dom "mvpauth/internal/services/session/domain"
)

// Session ties one form to the relay for as long as it is resumed
//
// The lock is never held across dispatch: the peer may answer before the host
// call returns, and that answer has to land. results counts delivered events
// so Authenticate can tell whether one arrived while it was dispatching.
type Session struct {
	mu sync.Mutex

	dispatcher dom.Dispatcher
	bus        dom.Bus
	channel    string
	notices    notice.Sink

	state dom.State
	sub     relay.Subscription
	gen     uint64
	results uint64
}

// Option tweaks a Session
type Option func(*Session)

// WithNotices routes user facing messages to s
func WithNotices(s notice.Sink) Option {
	return func(ss *Session) {
		if s != nil {
			ss.notices = s
		}
	}
}

// WithChannel listens on a channel other than the default result channel
func WithChannel(ch string) Option {
	return func(ss *Session) {
		if ch != "" {
			ss.channel = ch
		}
	}
}

// New builds an idle, unsubscribed session
func New(d dom.Dispatcher, bus dom.Bus, opts ...Option) *Session {
	s := &Session{
		dispatcher: d,
		bus:        bus,
		channel:    relay.ResultChannel,
		notices:    notice.Discard,
		state:      dom.State{Phase: dom.PhaseIdle},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Resume subscribes to the result channel, a no-op when already subscribed
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Destroyed || s.state.Subscribed {
		return
	}
	s.gen++
	gen := s.gen
	s.sub = s.bus.Subscribe(s.channel, func(ev relay.Event) { s.onResult(gen, ev) })
	s.state.Subscribed = s.sub.Active()
	if !s.state.Subscribed {
		logger.Named("session").Warn().Str("channel", s.channel).Msg("relay refused subscription")
		return
	}
	logger.Named("session").Debug().Str("channel", s.channel).Msg("result receiver registered")
}

// Stop unsubscribes, a no-op when not subscribed
// results published while stopped are lost
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Session) stopLocked() {
	if !s.state.Subscribed {
		return
	}
	s.bus.Unsubscribe(s.sub)
	s.sub = relay.Subscription{}
	s.state.Subscribed = false
	logger.Named("session").Debug().Str("channel", s.channel).Msg("result receiver unregistered")
}

// Destroy stops the session for good
// an outstanding request is marked lost and nothing afterwards has any effect
func (s *Session) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Destroyed {
		return
	}
	s.stopLocked()
	if s.state.Phase == dom.PhaseAwaitingResult {
		s.state.Phase = dom.PhaseLost
		logger.Named("session").Warn().Msg("session destroyed with a request outstanding")
	}
	s.state.LastScanned = ""
	s.state.Destroyed = true
}

// Scan takes the scanner result, an empty result means the scan was cancelled
func (s *Session) Scan(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Destroyed {
		return
	}
	if raw == "" {
		notice.LongText(s.notices, dom.MsgCancelled)
		return
	}
	notice.LongText(s.notices, dom.MsgScanned)
	s.state.LastScanned = raw
	s.state.Display = raw
	if s.state.Phase == dom.PhaseDelivered {
		s.state.Phase = dom.PhaseIdle
	}
}

// Authenticate dispatches whatever was scanned last
// a result that arrives before the dispatch returns wins over the awaiting text
func (s *Session) Authenticate(ctx context.Context) dispatch.Outcome {
	s.mu.Lock()
	if s.state.Destroyed {
		s.mu.Unlock()
		return closedOutcome()
	}
	raw, seen := s.state.LastScanned, s.results
	s.mu.Unlock()

	o := s.dispatcher.DispatchPayload(ctx, raw)

	s.mu.Lock()
	defer s.mu.Unlock()
	answered := s.results != seen
	switch {
	case o.Kind == dispatch.Dispatched && s.state.Destroyed && !answered:
		// closed while the request went out, nobody is left to show it
		s.state.Phase = dom.PhaseLost
	case o.Kind == dispatch.Dispatched && !answered:
		s.state.Phase = dom.PhaseAwaitingResult
		s.state.Display = dispatch.MsgAwaitingResult
	case o.Kind == dispatch.DeliveryFailed && !answered:
		s.state.Phase = dom.PhaseIdle
	}
	logger.C(ctx).Debug().
		Str("outcome", string(o.Kind)).
		Str("phase", string(s.state.Phase)).
		Bool("answered", answered).
		Msg("authenticate")
	return o
}

func closedOutcome() dispatch.Outcome {
	return dispatch.Outcome{
		Kind:    dispatch.Rejected,
		Reason:  dispatch.ReasonSessionClosed,
		Message: dispatch.MsgSessionClosed,
		Err:     perr.Conflictf("session is closed"),
	}
}

// State returns a snapshot
func (s *Session) State() dom.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) onResult(gen uint64, ev relay.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// a publish that snapshotted the handler before Stop still calls it
	if s.state.Destroyed || !s.state.Subscribed || gen != s.gen {
		return
	}
	if s.state.Phase != dom.PhaseAwaitingResult {
		logger.Named("session").Debug().Str("phase", string(s.state.Phase)).Msg("result arrived with nothing outstanding")
	}
	s.results++
	s.state.Phase = dom.PhaseDelivered
	s.state.Display = ev.ResultText
	notice.LongText(s.notices, ev.ResultText)
}
