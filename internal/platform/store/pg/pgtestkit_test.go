package pg

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// openTest opens dsn with the given options and closes it on cleanup
func openTest(t *testing.T, dsn string, opts ...Option) *PG {
	t.Helper()
	p, err := Open(context.Background(), Config{URL: dsn}, opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(p.Close)
	return p
}

// acquire holds one connection until cleanup, for session level checks
func acquire(ctx context.Context, t *testing.T, p *PG) *pgxpool.Conn {
	t.Helper()
	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	t.Cleanup(conn.Release)
	return conn
}
