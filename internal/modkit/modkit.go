// Package modkit is the shared wiring for API modules: deps, options and the module contract
package modkit

import (
	"net/http"

	"mvpauth/internal/modkit/module"
)

// Module is the contract every API module satisfies
type Module = module.Module

// Option adjusts how a module is built
type Option func(*Built)

// Built is the resolved option set a module constructor reads
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
	SwaggerOn bool
}

// Build resolves opts in order, later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// WithName names the module in logs and panics
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix mounts the module under prefix
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends per module middleware, outermost first
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands a module the ports it needs from its siblings
// the concrete type is declared by the receiving module
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithSwagger tells the module whether the docs UI is mounted
func WithSwagger(enabled bool) Option { return func(b *Built) { b.SwaggerOn = enabled } }
