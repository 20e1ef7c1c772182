// Package pg opens the pgxpool the journal writes through
package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is what the pool is built from
type Config struct {
	URL      string
	MaxConns int32 // pgxpool default when 0
	SlowMs   int   // statements at or above this are flagged slow, negative never
}

// PG holds the pool and the tracer statements report to
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int
}

// Option adjusts Open
type Option func(*opening)

type opening struct {
	tracer QueryTracer
	tune   []func(*pgxpool.Config)
}

// WithTracer reports every statement to t
func WithTracer(t QueryTracer) Option { return func(o *opening) { o.tracer = t } }

// WithPoolConfig edits the parsed pool config before the pool is created
func WithPoolConfig(fn func(*pgxpool.Config)) Option {
	return func(o *opening) {
		if fn != nil {
			o.tune = append(o.tune, fn)
		}
	}
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL and creates the pool, it does not wait for the server
func Open(ctx context.Context, cfg Config, opts ...Option) (*PG, error) {
	var o opening
	for _, fn := range opts {
		fn(&o)
	}

	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	for _, fn := range o.tune {
		fn(pc)
	}

	pool, err := newPool(ctx, pc)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool, Tracer: o.tracer, SlowMs: cfg.SlowMs}, nil
}

// Close closes the pool, nil safe
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
