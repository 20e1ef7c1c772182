// Package module wires the request dispatcher and exposes its port
package module

import (
	"mvpauth/internal/core/deviceid"
	"mvpauth/internal/modkit"
	"mvpauth/internal/modkit/httpkit"
	"mvpauth/internal/services/dispatch/service"
)

// Module defines the dispatch module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the dispatcher from deps, config defaults and non-zero overrides
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	o := FromConfig(deps.Cfg)
	if deps.Addr.PeerPackage != "" {
		o.Addressing = deps.Addr
	}
	if overrides.Addressing.PeerPackage != "" {
		o.Addressing = overrides.Addressing
	}
	if overrides.DeviceOverride != "" {
		o.DeviceOverride = overrides.DeviceOverride
	}
	if overrides.StateDir != "" {
		o.StateDir = overrides.StateDir
	}

	b := modkit.Build(opts...)
	var svcOpts []service.Option
	svcOpts = append(svcOpts, service.WithNotices(deps.NoticeSink()))
	if needs, ok := b.Ports.(Needs); ok {
		if needs.Recorder != nil {
			svcOpts = append(svcOpts, service.WithRecorder(needs.Recorder))
		}
		if needs.Peer != nil {
			svcOpts = append(svcOpts, service.WithPeerCheck(needs.Peer))
		}
	}

	svc := service.New(
		deps.Host,
		deviceid.New(o.DeviceOverride, o.StateDir),
		service.Config{Addressing: o.Addressing},
		svcOpts...,
	)
	return &Module{deps: deps, ports: Ports{Dispatcher: svc}}
}

// Ports returns the module ports (Dispatcher)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "dispatch" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
