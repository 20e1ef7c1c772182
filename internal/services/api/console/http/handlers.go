// Package http provides the console endpoints
package http

import (
	"net/http"
	"strconv"

	"mvpauth/internal/modkit/httpkit"
	perr "mvpauth/internal/platform/errors"
	dom "mvpauth/internal/services/api/console/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Console dom.ServicePort
}

type handlers struct {
	deps Deps
}

// Register mounts the console routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/", h.view)
	httpkit.Get(r, "/journal", h.journal)
	httpkit.Post(r, "/open", h.open)
	httpkit.Post(r, "/resume", h.resume)
	httpkit.Post(r, "/stop", h.stop)
	httpkit.Post(r, "/close", h.close)
	httpkit.PostBound(r, "/scan", h.scan)
	httpkit.Post(r, "/authenticate", h.authenticate)
	httpkit.Post(r, "/check-peer", h.checkPeer)
}

// @Summary Current session state and recent notices
// @Tags Console
// @Produce json
// @Success 200 {object} domain.View
// @Router /console [get]
func (h *handlers) view(r *http.Request) (any, error) {
	return h.deps.Console.View(r.Context()), nil
}

// @Summary Open a session and start listening for results
// @Tags Console
// @Produce json
// @Success 200 {object} domain.View
// @Router /console/open [post]
func (h *handlers) open(r *http.Request) (any, error) {
	return h.deps.Console.Open(r.Context()), nil
}

// @Summary Resume listening for results
// @Tags Console
// @Produce json
// @Success 200 {object} domain.View
// @Failure 409 {object} httpkit.Envelope
// @Router /console/resume [post]
func (h *handlers) resume(r *http.Request) (any, error) {
	return h.deps.Console.Resume(r.Context())
}

// @Summary Stop listening, results published meanwhile are lost
// @Tags Console
// @Produce json
// @Success 200 {object} domain.View
// @Failure 409 {object} httpkit.Envelope
// @Router /console/stop [post]
func (h *handlers) stop(r *http.Request) (any, error) {
	return h.deps.Console.Stop(r.Context())
}

// @Summary Close the session, an outstanding request is lost
// @Tags Console
// @Produce json
// @Success 200 {object} domain.View
// @Failure 409 {object} httpkit.Envelope
// @Router /console/close [post]
func (h *handlers) close(r *http.Request) (any, error) {
	return h.deps.Console.Close(r.Context())
}

// @Summary Hand a scanner result to the session
// @Tags Console
// @Accept json
// @Produce json
// @Param body body domain.ScanInput true "scanned payload, empty when cancelled"
// @Success 200 {object} domain.View
// @Failure 409 {object} httpkit.Envelope
// @Router /console/scan [post]
func (h *handlers) scan(r *http.Request, in dom.ScanInput) (any, error) {
	return h.deps.Console.Scan(r.Context(), in)
}

// @Summary Send the last scanned payload to the verifier
// @Tags Console
// @Produce json
// @Success 200 {object} httpkit.Envelope "data is the dispatch outcome"
// @Failure 400 {object} httpkit.Envelope "rejected, field carries the reason"
// @Failure 409 {object} httpkit.Envelope
// @Failure 503 {object} httpkit.Envelope "verifier could not be started"
// @Router /console/authenticate [post]
func (h *handlers) authenticate(r *http.Request) (any, error) {
	o, err := h.deps.Console.Authenticate(r.Context())
	if err != nil {
		return nil, err
	}
	if o.Err != nil {
		return nil, o.Err
	}
	return o, nil
}

// @Summary Check whether the verifier is installed
// @Tags Console
// @Produce json
// @Success 200 {object} domain.PeerStatus
// @Router /console/check-peer [post]
func (h *handlers) checkPeer(r *http.Request) (any, error) {
	return h.deps.Console.CheckPeer(r.Context()), nil
}

// @Summary Recent dispatch attempts and accepted results
// @Tags Console
// @Produce json
// @Param limit query int false "max entries"
// @Success 200 {object} httpkit.Envelope "data is a list of journal entries"
// @Router /console/journal [get]
func (h *handlers) journal(r *http.Request) (any, error) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, perr.WithField(perr.InvalidArgf("limit must be a non negative integer"), "limit")
		}
		limit = n
	}
	return h.deps.Console.Journal(r.Context(), limit)
}
