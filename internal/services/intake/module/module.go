// Package module wires the result intake endpoint
package module

import (
	"net/http"

	"mvpauth/internal/modkit"
	"mvpauth/internal/modkit/httpkit"
	str "mvpauth/internal/platform/strings"
	dom "mvpauth/internal/services/intake/domain"
	intakehttp "mvpauth/internal/services/intake/http"
	"mvpauth/internal/services/intake/service"
	"mvpauth/internal/services/relay"
)

// Module implements the modkit.Module interface
// routes are host facing and belong on the root router, not under /api
type Module struct {
	name string
	mws  []func(http.Handler) http.Handler
	svc  *service.Service
	opts Options
}

// New constructs the intake module; it publishes on relay.Default() unless
// Needs.Publisher is injected
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("intake")}, opts...)...)

	o := FromConfig(deps.Cfg)
	if deps.Addr.CallbackAction != "" {
		o = fromAddressing(deps.Cfg, deps.Addr)
	}

	var pub dom.Publisher = relay.Default()
	svcOpts := []service.Option{service.WithNotices(deps.NoticeSink())}
	if needs, ok := b.Ports.(Needs); ok {
		if needs.Publisher != nil {
			pub = needs.Publisher
		}
		if needs.Recorder != nil {
			svcOpts = append(svcOpts, service.WithRecorder(needs.Recorder))
		}
	}

	return &Module{
		name: b.Name,
		mws:  b.Mw,
		svc:  service.New(pub, service.Config(o), svcOpts...),
		opts: o,
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Group(func(g httpkit.Router) {
		g.Use(m.mws...)
		intakehttp.Register(g, intakehttp.Deps{Intake: m.svc, Mode: m.opts.Mode})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.Or(m.name, "intake") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return Ports{Intake: m.svc} }

// Options reports the resolved options
func (m *Module) Options() Options { return m.opts }
