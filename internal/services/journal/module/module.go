// Package module wires the journal and exposes its recorder ports
package module

import (
	"context"
	"fmt"
	"time"

	"mvpauth/internal/modkit"
	"mvpauth/internal/modkit/httpkit"
	"mvpauth/internal/modkit/repokit"
	"mvpauth/internal/platform/logger"
	dispatch "mvpauth/internal/services/dispatch/domain"
	intake "mvpauth/internal/services/intake/domain"
	dom "mvpauth/internal/services/journal/domain"
	"mvpauth/internal/services/journal/repo"
	"mvpauth/internal/services/journal/service"
)

// Ports exposed by the journal module
type Ports struct {
	Dispatch dispatch.Recorder
	Results  intake.Recorder
	Query    dom.QueryPort
}

// Module implements the journal module
type Module struct {
	ports   Ports
	durable bool
}

// New builds the journal on postgres when deps.PG is set, in memory otherwise
// the table is created at boot, a failure there panics
func New(deps modkit.Deps) *Module {
	var r repo.Repo
	durable := deps.PG != nil
	if durable {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// table and index land together or not at all
		err := repokit.WithTx(ctx, deps.PG, func(q repokit.Queryer) error {
			return repokit.MustBind(repo.NewPG(), q).EnsureSchema(ctx)
		})
		if err != nil {
			panic(fmt.Errorf("journal schema: %w", err))
		}
		r = repokit.MustBind(repo.NewPG(), repokit.Queryer(deps.PG))
	} else {
		r = repo.NewMemory(dom.MaxLimit)
	}
	logger.Named("journal").Debug().Bool("durable", durable).Msg("journal ready")

	svc := service.New(r)
	return &Module{
		ports:   Ports{Dispatch: svc, Results: svc, Query: svc},
		durable: durable,
	}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "journal" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Durable reports whether entries survive a restart
func (m *Module) Durable() bool { return m.durable }

// MountRoutes satisfies modkit.Module, the console serves the journal
func (m *Module) MountRoutes(httpkit.Router) {}
