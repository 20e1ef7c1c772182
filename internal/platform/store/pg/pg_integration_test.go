//go:build integration_pg

package pg

import (
	"context"
	"testing"
	"time"

	"mvpauth/internal/platform/store/pgtest"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_PoolConfigReachesServer(t *testing.T) {
	dsn := pgtest.Start(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	const app = "mvpauth-pg-integration"
	p := openTest(t, dsn, WithPoolConfig(func(pc *pgxpool.Config) {
		pc.ConnConfig.RuntimeParams["application_name"] = app
		pc.MinConns = 1
	}))

	var got string
	if err := acquire(ctx, t, p).QueryRow(ctx, `select current_setting('application_name')`).Scan(&got); err != nil {
		t.Fatalf("query: %v", err)
	}
	if got != app {
		t.Fatalf("application_name = %q, want %q", got, app)
	}
}
