// Package repo stores journal entries in postgres or in memory
package repo

import (
	"context"
	"sync"

	"mvpauth/internal/modkit/repokit"
	perr "mvpauth/internal/platform/errors"
	"mvpauth/internal/platform/store"
	dom "mvpauth/internal/services/journal/domain"
)

// Repo is the journal storage contract
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Append(ctx context.Context, e dom.Entry) error
	Recent(ctx context.Context, limit int) ([]dom.Entry, error)
}

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a repo binder for postgres
func NewPG() repokit.Binder[Repo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Repo { return &pg{q: q} }

const schema = `
CREATE TABLE IF NOT EXISTS mvpauth_journal (
	id         uuid        PRIMARY KEY,
	at         timestamptz NOT NULL,
	kind       text        NOT NULL,
	route      text        NOT NULL DEFAULT '',
	outcome    text        NOT NULL DEFAULT '',
	reason     text        NOT NULL DEFAULT '',
	result     text        NOT NULL DEFAULT '',
	delivered  integer     NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS mvpauth_journal_at_idx ON mvpauth_journal (at DESC)`

// EnsureSchema creates the journal table when missing
func (p *pg) EnsureSchema(ctx context.Context) error {
	_, err := p.q.Exec(ctx, schema)
	return perr.FromPostgres(err, "journal schema")
}

// Append implements Repo
func (p *pg) Append(ctx context.Context, e dom.Entry) error {
	err := store.ExecOne(ctx, p.q, `
		INSERT INTO mvpauth_journal (id, at, kind, route, outcome, reason, result, delivered)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.At, string(e.Kind), e.Route, e.Outcome, e.Reason, e.Result, e.Delivered)
	return perr.FromPostgres(err, "journal append")
}

// Recent implements Repo, newest first
func (p *pg) Recent(ctx context.Context, limit int) ([]dom.Entry, error) {
	es, err := store.Many(ctx, p.q, scanEntry, `
		SELECT id::text, at, kind, route, outcome, reason, result, delivered
		FROM mvpauth_journal
		ORDER BY at DESC, id
		LIMIT $1`, limit)
	return es, perr.FromPostgres(err, "journal recent")
}

func scanEntry(r store.Row) (dom.Entry, error) {
	var (
		e    dom.Entry
		kind string
	)
	if err := r.Scan(&e.ID, &e.At, &kind, &e.Route, &e.Outcome, &e.Reason, &e.Result, &e.Delivered); err != nil {
		return dom.Entry{}, err
	}
	e.Kind = dom.Kind(kind)
	return e, nil
}

// Memory keeps the newest entries in process when no database is configured
type Memory struct {
	mu  sync.Mutex
	cap int
	xs  []dom.Entry
}

// NewMemory keeps up to capacity entries
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = dom.MaxLimit
	}
	return &Memory{cap: capacity}
}

// EnsureSchema implements Repo
func (m *Memory) EnsureSchema(context.Context) error { return nil }

// Append implements Repo
func (m *Memory) Append(_ context.Context, e dom.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.xs = append(m.xs, e)
	if over := len(m.xs) - m.cap; over > 0 {
		m.xs = append(m.xs[:0:0], m.xs[over:]...)
	}
	return nil
}

// Recent implements Repo, newest first
func (m *Memory) Recent(_ context.Context, limit int) ([]dom.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := min(limit, len(m.xs))
	out := make([]dom.Entry, 0, n)
	for i := len(m.xs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.xs[i])
	}
	return out, nil
}

var _ Repo = (*Memory)(nil)
