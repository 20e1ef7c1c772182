// Package module wires the console endpoints into the API
package module

import (
	"net/http"

	"mvpauth/internal/modkit"
	"mvpauth/internal/modkit/httpkit"
	str "mvpauth/internal/platform/strings"
	consolehttp "mvpauth/internal/services/api/console/http"
	"mvpauth/internal/services/api/console/service"
)

// Needs are the ports the console is built from
type Needs = service.Deps

// Ports exposed by the console module
type Ports struct {
	Console *service.Service
}

// Module implements the modkit.Module interface
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	svc    *service.Service
}

// New constructs the console, Needs must be injected with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("console"),
		modkit.WithPrefix("/console"),
	}, opts...)...)

	needs, ok := b.Ports.(Needs)
	if !ok {
		panic("console module requires Needs ports")
	}
	if needs.Channel == "" {
		needs.Channel = deps.Addr.RelayChannel
	}

	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    service.New(needs),
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		rr.Use(m.mws...)
		consolehttp.Register(rr, consolehttp.Deps{Console: m.svc})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.Or(m.name, "console") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return Ports{Console: m.svc} }
