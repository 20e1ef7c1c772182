// Package store opens the optional postgres backend and hides pgx behind
// the small query surface repos are written against
package store

import (
	"context"
	"errors"
	"fmt"

	"mvpauth/internal/platform/logger"
)

// Row is one result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set, Close must be called
type Rows interface {
	Row
	Next() bool
	Err() error
	Close()
}

// CommandTag reports what a write touched
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs statements, a pool or an open transaction
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also run fn in one transaction
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Store owns the backends, the zero value has none and is usable
type Store struct {
	Log logger.Logger
	PG  TxRunner // nil unless postgres is configured
}

// Open brings up what cfg enables, postgres only when cfg.PG.Enabled
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: logger.Get().With().Str("component", "store").Logger()}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	if !cfg.PG.Enabled {
		return s, nil
	}
	pg, err := openPG(ctx, cfg, s)
	if err != nil {
		return nil, err
	}
	s.PG = pg
	return s, nil
}

// Enabled reports whether postgres is configured
func (s *Store) Enabled() bool { return s != nil && s.PG != nil }

// Guard pings every open backend
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	if p, ok := s.PG.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
	}
	return nil
}

// Close releases the backends, safe on a nil or empty store
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
