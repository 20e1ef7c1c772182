package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"mvpauth/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dsn = "postgres://journal:pw@db:5432/mvpauth?sslmode=disable"

func TestOpen_BadURL(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://bad"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_PoolError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("boom")
	})

	if _, err := Open(context.Background(), Config{URL: dsn}); err == nil {
		t.Fatalf("pool error swallowed")
	}
}

type nopTracer struct{}

func (nopTracer) OnQuery(context.Context, QueryEvent) {}

func TestOpen_AppliesConfigAndOptions(t *testing.T) {
	testkit.Serial(t)

	var seen *pgxpool.Config
	// zero pool, never closed
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = pc
		return &pgxpool.Pool{}, nil
	})

	p, err := Open(context.Background(), Config{URL: dsn, MaxConns: 7, SlowMs: 120},
		WithTracer(nopTracer{}),
		WithPoolConfig(nil),
		WithPoolConfig(func(pc *pgxpool.Config) { pc.MaxConnIdleTime = 42 * time.Second }),
	)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if seen.MaxConns != 7 || seen.MaxConnIdleTime != 42*time.Second {
		t.Fatalf("pool config not applied: conns=%d idle=%v", seen.MaxConns, seen.MaxConnIdleTime)
	}
	if p.SlowMs != 120 || p.Tracer == nil || p.Pool == nil {
		t.Fatalf("pg = %+v", p)
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var p *PG
	p.Close()
	(&PG{}).Close()
}
