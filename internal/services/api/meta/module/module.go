// Package module mounts the meta endpoints
package module

import (
	"net/http"
	"time"

	"mvpauth/internal/modkit"
	"mvpauth/internal/modkit/httpkit"
	str "mvpauth/internal/platform/strings"

	metahttp "mvpauth/internal/services/api/meta/http"
)

// ServiceName is what /meta/service reports
const ServiceName = "mvpauth-api"

// Needs are optional ports, Listeners feeds the relay readiness check
type Needs struct {
	Listeners func() int
}

// Module implements modkit.Module
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	deps   metahttp.Deps
}

// New builds the module, it starts its uptime clock immediately
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	needs, _ := b.Ports.(Needs)

	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		deps: metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   time.Now(),
			PG:          deps.PG,
			Swagger:     b.SwaggerOn,
			Listeners:   needs.Listeners,
		},
	}
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(str.MustPrefix(m.prefix), func(rr httpkit.Router) {
		rr.Use(m.mws...)
		metahttp.Register(rr, m.deps)
	})
}

// Name implements modkit.Module
func (m *Module) Name() string { return str.Or(m.name, "meta") }

// Ports implements modkit.Module, meta exposes none
func (m *Module) Ports() any { return nil }
