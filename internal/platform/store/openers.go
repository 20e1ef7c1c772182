package store

import (
	"context"
	"fmt"
	"time"

	"mvpauth/internal/platform/store/pg"

	"github.com/jackc/pgx/v5/pgxpool"
)

var sleep = time.Sleep

const (
	firstBackoff = 150 * time.Millisecond
	maxBackoff   = 2 * time.Second
)

// openPG opens the pool and pings it with doubling backoff until it answers
// or cfg.PG.ConnectRetries attempts are spent
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	opts := []pg.Option{pg.WithPoolConfig(applicationName(cfg.AppName))}
	if cfg.PG.LogSQL {
		opts = append(opts, pg.WithTracer(pg.Tracer(s.Log)))
	}
	p, err := pg.Open(ctx, pg.Config{URL: cfg.PG.URL, MaxConns: cfg.PG.MaxConns, SlowMs: cfg.PG.SlowQueryMs}, opts...)
	if err != nil {
		return nil, err
	}

	tries := cfg.PG.ConnectRetries
	if tries <= 0 {
		tries = 20
	}
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	wait := firstBackoff
	var pingErr error
	for i := range tries {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		pingErr = p.Pool.Ping(pctx)
		cancel()
		if pingErr == nil {
			return newPool(p), nil
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		s.Log.Warn().Err(pingErr).Int("attempt", i+1).Int("of", tries).Msg("postgres not answering yet")
		sleep(wait)
		wait = min(2*wait, maxBackoff)
	}
	p.Close()
	return nil, fmt.Errorf("postgres unreachable after %d pings: %w", tries, pingErr)
}

// applicationName tags connections so the journal shows up in pg_stat_activity
func applicationName(name string) func(*pgxpool.Config) {
	if name == "" {
		return nil
	}
	return func(pc *pgxpool.Config) {
		if pc.ConnConfig.RuntimeParams == nil {
			pc.ConnConfig.RuntimeParams = map[string]string{}
		}
		pc.ConnConfig.RuntimeParams["application_name"] = name
	}
}
