// Package module holds the module contract and port lookup
package module

import phttp "mvpauth/internal/platform/net/http"

// Module is what the API composes
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
