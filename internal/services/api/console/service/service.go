// Package service holds the one form session the console drives
package service

import (
	"context"
	"sync"

	perr "mvpauth/internal/platform/errors"
	"mvpauth/internal/platform/logger"
	"mvpauth/internal/platform/notice"
	dom "mvpauth/internal/services/api/console/domain"
	dispatch "mvpauth/internal/services/dispatch/domain"
	journal "mvpauth/internal/services/journal/domain"
	sessiondom "mvpauth/internal/services/session/domain"
	session "mvpauth/internal/services/session/service"
)

// ErrNoSession is returned by every form action while no session is open
var ErrNoSession = perr.Conflictf("no open session, call open first")

// Deps are what the console needs
type Deps struct {
	Dispatcher sessiondom.Dispatcher
	Bus        sessiondom.Bus
	Channel    string
	Peer       dom.PeerCheck
	Board      dom.NoticeBoard
	Journal    journal.QueryPort
}

// Service implements domain.ServicePort
type Service struct {
	mu   sync.Mutex
	deps Deps
	cur  *session.Session
}

// New builds a console with no open session
func New(d Deps) *Service {
	if d.Dispatcher == nil || d.Bus == nil {
		panic("console.Service requires a dispatcher and a bus")
	}
	if d.Board == nil {
		d.Board = notice.NewBoard(notice.DefaultCapacity)
	}
	return &Service{deps: d}
}

// Open creates a session and resumes it, a session already open is destroyed first
func (s *Service) Open(ctx context.Context) dom.View {
	s.mu.Lock()
	if s.cur != nil {
		logger.C(ctx).Debug().Msg("replacing open session")
		s.cur.Destroy()
	}
	s.cur = session.New(s.deps.Dispatcher, s.deps.Bus,
		session.WithNotices(s.deps.Board),
		session.WithChannel(s.deps.Channel),
	)
	s.cur.Resume()
	s.mu.Unlock()
	return s.View(ctx)
}

// Resume re-subscribes the open session
func (s *Service) Resume(ctx context.Context) (dom.View, error) {
	return s.with(ctx, (*session.Session).Resume)
}

// Stop unsubscribes the open session
func (s *Service) Stop(ctx context.Context) (dom.View, error) {
	return s.with(ctx, (*session.Session).Stop)
}

// Close destroys the open session
func (s *Service) Close(ctx context.Context) (dom.View, error) {
	s.mu.Lock()
	cur := s.cur
	s.cur = nil
	s.mu.Unlock()
	if cur == nil {
		return dom.View{}, ErrNoSession
	}
	cur.Destroy()
	st := cur.State()
	return dom.View{State: &st, Notices: s.notices()}, nil
}

// Scan hands a scanner result to the open session
func (s *Service) Scan(ctx context.Context, in dom.ScanInput) (dom.View, error) {
	return s.with(ctx, func(ss *session.Session) { ss.Scan(in.Payload) })
}

// Authenticate dispatches what the open session scanned last
// a rejected or failed dispatch is an outcome, not an error
func (s *Service) Authenticate(ctx context.Context) (dispatch.Outcome, error) {
	cur := s.current()
	if cur == nil {
		return dispatch.Outcome{}, ErrNoSession
	}
	o := cur.Authenticate(ctx)
	if perr.IsCode(o.Err, perr.ErrorCodeConflict) {
		return o, ErrNoSession
	}
	return o, nil
}

// CheckPeer reports whether the verifier is installed
func (s *Service) CheckPeer(ctx context.Context) dom.PeerStatus {
	ok := s.deps.Peer != nil && s.deps.Peer.IsPeerInstalled(ctx)
	msg := dom.MsgPeerNotInstalled
	if ok {
		msg = dom.MsgPeerInstalled
	}
	notice.ShortText(s.deps.Board, msg)
	return dom.PeerStatus{Installed: ok, Message: msg}
}

// View returns the current state and recent notices
func (s *Service) View(context.Context) dom.View {
	v := dom.View{Notices: s.notices()}
	if cur := s.current(); cur != nil {
		st := cur.State()
		v.Open = true
		v.State = &st
	}
	return v
}

func (s *Service) notices() []notice.Notice {
	if ns := s.deps.Board.Recent(); ns != nil {
		return ns
	}
	return []notice.Notice{}
}

// Journal returns recent audit entries
func (s *Service) Journal(ctx context.Context, limit int) ([]journal.Entry, error) {
	if s.deps.Journal == nil {
		return []journal.Entry{}, nil
	}
	return s.deps.Journal.Recent(ctx, limit)
}

func (s *Service) current() *session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

func (s *Service) with(ctx context.Context, fn func(*session.Session)) (dom.View, error) {
	cur := s.current()
	if cur == nil {
		return dom.View{}, ErrNoSession
	}
	fn(cur)
	return s.View(ctx), nil
}

var _ dom.ServicePort = (*Service)(nil)
