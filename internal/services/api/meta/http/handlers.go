// Package http serves liveness, readiness and build info under /meta
package http

import (
	"context"
	"net/http"
	"time"

	"mvpauth/internal/core/version"
	"mvpauth/internal/modkit/httpkit"
)

// Pinger is a backend that can answer a readiness probe
type Pinger interface {
	Ping(context.Context) error
}

// Deps are what the meta routes report on
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any // journal backend, nil when the journal is in memory
	Swagger     bool
	// Listeners counts session subscriptions on the relay, nil skips the check
	Listeners func() int
}

// Check statuses, only fail and unknown affect the overall status
const (
	StatusOK       = "ok"
	StatusFail     = "fail"
	StatusSkipped  = "skipped"
	StatusUnknown  = "unknown"
	StatusDegraded = "degraded"
)

const readyTimeout = 2 * time.Second

type handlers struct{ Deps }

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	h := handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse says the process is up
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"mvpauth-api"`
	Started string `json:"started" example:"2026-10-14T09:00:00Z"`
	Now     string `json:"now"     example:"2026-10-14T09:05:00Z"`
}

// ReadyCheck is one dependency probe
type ReadyCheck struct {
	Name      string `json:"name"   example:"pg"`
	Status    string `json:"status" example:"ok"`
	Error     string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
	Listeners int    `json:"listeners,omitempty" example:"1"`
}

// ReadyResponse folds the checks into one status: ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-14T09:05:00Z"`
}

// ServiceResponse names the service and its uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"mvpauth-api"`
	Started string `json:"started" example:"2026-10-14T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
	Swagger bool   `json:"swagger" example:"true"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Started: stamp(h.StartedAt), Now: stamp(time.Now())}, nil
}

// @Summary Readiness with the journal store and relay checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := []ReadyCheck{probe(ctx, "pg", h.PG), h.relay()}
	return ReadyResponse{Status: overall(checks), Checks: checks, Now: stamp(time.Now())}, nil
}

func probe(ctx context.Context, name string, backend any) ReadyCheck {
	if backend == nil {
		return ReadyCheck{Name: name, Status: StatusSkipped}
	}
	p, ok := backend.(Pinger)
	if !ok {
		return ReadyCheck{Name: name, Status: StatusUnknown}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: StatusFail, Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: StatusOK}
}

// relay is always ok when counted, with no listener results are dropped until a session resumes
func (h handlers) relay() ReadyCheck {
	if h.Listeners == nil {
		return ReadyCheck{Name: "relay", Status: StatusSkipped}
	}
	return ReadyCheck{Name: "relay", Status: StatusOK, Listeners: h.Listeners()}
}

func overall(checks []ReadyCheck) string {
	s := StatusOK
	for _, c := range checks {
		switch c.Status {
		case StatusFail:
			return StatusFail
		case StatusUnknown:
			s = StatusDegraded
		}
	}
	return s
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (handlers) version(*http.Request) (any, error) { return version.Info(), nil }

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: stamp(h.StartedAt),
		Uptime:  int64(time.Since(h.StartedAt) / time.Second),
		Swagger: h.Swagger,
	}, nil
}
