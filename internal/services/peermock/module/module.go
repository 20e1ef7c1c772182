// Package module mounts the mock verifier's intent routes
package module

import (
	"net/http"

	"mvpauth/internal/modkit"
	"mvpauth/internal/modkit/httpkit"
	"mvpauth/internal/platform/intent"
	str "mvpauth/internal/platform/strings"
	"mvpauth/internal/services/peermock/service"
)

// Module implements the modkit.Module interface
type Module struct {
	name string
	mws  []func(http.Handler) http.Handler
	svc  *service.Service
}

// New builds the mock; replies go through deps.Host
func New(deps modkit.Deps, cfg service.Config, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("peermock")}, opts...)...)
	if deps.Host == nil {
		panic("peermock module requires deps.Host")
	}
	if cfg.Addressing.CallbackAction == "" {
		cfg.Addressing = deps.Addr
	}
	return &Module{name: b.Name, mws: b.Mw, svc: service.New(deps.Host, cfg)}
}

// MountRoutes mounts /intents/activity and /intents/service
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Group(func(g httpkit.Router) {
		for _, mw := range m.mws {
			g.Use(mw)
		}
		intent.Mount(g, intent.Inbound{
			Activity: m.svc.HandleLink,
			Service:  m.svc.HandleToken,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.Or(m.name, "peermock") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }

// Wait blocks until pending replies are sent
func (m *Module) Wait() { m.svc.Wait() }
