// Package service records dispatch attempts and accepted results
package service

import (
	"context"
	"time"

	perr "mvpauth/internal/platform/errors"
	"mvpauth/internal/platform/logger"
	dispatch "mvpauth/internal/services/dispatch/domain"
	dom "mvpauth/internal/services/journal/domain"
	"mvpauth/internal/services/journal/repo"

	"github.com/google/uuid"
)

var (
	now   = func() time.Time { return time.Now().UTC() }
	newID = uuid.NewString
)

// Service is the journal
// recording never fails the caller, storage errors are logged and dropped
// after one retry of transient contention
type Service struct {
	repo repo.Repo
}

// New constructs a journal over r
func New(r repo.Repo) *Service {
	if r == nil {
		panic("journal.Service requires a non nil Repo")
	}
	return &Service{repo: r}
}

// RecordDispatch implements the dispatcher recorder
func (s *Service) RecordDispatch(ctx context.Context, o dispatch.Outcome) {
	s.append(ctx, dom.Entry{
		Kind:    dom.KindDispatch,
		Route:   string(o.Route),
		Outcome: string(o.Kind),
		Reason:  string(o.Reason),
	})
}

// RecordResult implements the intake recorder
func (s *Service) RecordResult(ctx context.Context, text string, delivered int) {
	s.append(ctx, dom.Entry{
		Kind:      dom.KindResult,
		Result:    text,
		Delivered: delivered,
	})
}

// Recent implements domain.QueryPort
func (s *Service) Recent(ctx context.Context, limit int) ([]dom.Entry, error) {
	if limit <= 0 {
		limit = dom.DefaultLimit
	}
	limit = min(limit, dom.MaxLimit)
	return s.repo.Recent(ctx, limit)
}

func (s *Service) append(ctx context.Context, e dom.Entry) {
	e.ID = newID()
	e.At = now()
	err := s.repo.Append(ctx, e)
	if perr.IsRetryable(err) {
		err = s.repo.Append(ctx, e)
	}
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("kind", string(e.Kind)).Msg("journal append failed")
	}
}

var _ dom.QueryPort = (*Service)(nil)
