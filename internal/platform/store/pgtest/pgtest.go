//go:build integration_pg

// Package pgtest starts a disposable postgres for integration tests
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Image is the postgres image Start runs
const Image = "postgres:16-alpine"

const (
	user = "journal"
	pass = "journal"
	db   = "mvpauth"
)

// Start boots postgres and returns a DSN for it, the container goes away with the test
func Start(t *testing.T) string {
	t.Helper()

	// pulls on a cold machine take a while
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	ready := wait.ForAll(
		wait.ForListeningPort("5432/tcp"),
		wait.ForLog("database system is ready to accept connections"),
	).WithDeadline(2 * time.Minute)

	pgc, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		Started: true,
		ContainerRequest: tc.ContainerRequest{
			Image:        Image,
			ExposedPorts: []string{"5432/tcp"},
			Env:          map[string]string{"POSTGRES_USER": user, "POSTGRES_PASSWORD": pass, "POSTGRES_DB": db},
			WaitingFor:   ready,
		},
	})
	if err != nil {
		t.Fatalf("pgtest: start: %v", err)
	}
	t.Cleanup(func() { _ = pgc.Terminate(context.Background()) })

	endpoint, err := pgc.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		t.Fatalf("pgtest: endpoint: %v", err)
	}
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", user, pass, endpoint, db)
}
