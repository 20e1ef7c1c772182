package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	perr "mvpauth/internal/platform/errors"
	"mvpauth/internal/platform/logger"
)

// Host is the inter-process surface an application talks to
type Host interface {
	// QueryLaunchable lists launcher activities of an installed package
	QueryLaunchable(ctx context.Context, pkg string) ([]Component, error)
	// StartActivity delivers an explicit intent to an activity
	StartActivity(ctx context.Context, in Intent) error
	// StartService delivers an explicit intent to a service
	StartService(ctx context.Context, in Intent) error
	// SendBroadcast delivers to every matching receiver and returns how many accepted it
	SendBroadcast(ctx context.Context, in Intent) (int, error)
}

// HostOption mutates an HTTPHost
type HostOption func(*HTTPHost)

// WithHTTPClient swaps the transport client
func WithHTTPClient(c *http.Client) HostOption {
	return func(h *HTTPHost) {
		if c != nil {
			h.client = c
		}
	}
}

// WithSender names the calling package on outbound deliveries
func WithSender(pkg string) HostOption {
	return func(h *HTTPHost) { h.sender = pkg }
}

// SenderHeader carries the calling package identity
const SenderHeader = "X-Intent-Sender"

// HTTPHost resolves intents against a Registry and posts them as JSON to
// <endpoint>/intents/<route>
type HTTPHost struct {
	reg    *Registry
	client *http.Client
	sender string
}

// NewHTTPHost builds a host client over reg
func NewHTTPHost(reg *Registry, opts ...HostOption) *HTTPHost {
	h := &HTTPHost{
		reg:    reg,
		client: &http.Client{Timeout: 5 * time.Second},
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// QueryLaunchable implements Host
func (h *HTTPHost) QueryLaunchable(_ context.Context, pkg string) ([]Component, error) {
	return h.reg.Launchable(pkg)
}

// StartActivity implements Host
func (h *HTTPHost) StartActivity(ctx context.Context, in Intent) error {
	return h.start(ctx, in, KindActivity)
}

// StartService implements Host
func (h *HTTPHost) StartService(ctx context.Context, in Intent) error {
	return h.start(ctx, in, KindService)
}

func (h *HTTPHost) start(ctx context.Context, in Intent, kind Kind) error {
	res, err := h.reg.ResolveExplicit(in, kind)
	if err != nil {
		return err
	}
	return h.post(ctx, res, in)
}

// SendBroadcast implements Host
// a receiver that fails is logged and skipped, zero receivers is not an error
func (h *HTTPHost) SendBroadcast(ctx context.Context, in Intent) (int, error) {
	if strings.TrimSpace(in.Action) == "" {
		return 0, perr.InvalidArgf("broadcast needs an action")
	}
	targets, err := h.reg.Receivers(in)
	if err != nil {
		return 0, err
	}
	log := logger.C(ctx)
	n := 0
	for _, t := range targets {
		if err := h.post(ctx, t, in); err != nil {
			log.Warn().Err(err).Str("receiver", t.Component.String()).Msg("broadcast delivery failed")
			continue
		}
		n++
	}
	if len(targets) == 0 {
		log.Debug().Str("action", in.Action).Msg("broadcast has no receivers")
	}
	return n, nil
}

func (h *HTTPHost) post(ctx context.Context, res Resolved, in Intent) error {
	if res.Endpoint == "" {
		return perr.Newf(perr.ErrorCodeUnavailable, "%s has no endpoint", res.Component)
	}
	if in.Component == nil {
		c := res.Component
		in.Component = &c
	}
	body, err := json.Marshal(in)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode intent")
	}
	url := strings.TrimRight(res.Endpoint, "/") + "/intents/" + res.Kind.Route()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "build delivery request")
	}
	req.Header.Set("Content-Type", "application/json")
	if h.sender != "" {
		req.Header.Set(SenderHeader, h.sender)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "deliver to %s", res.Component)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return perr.Newf(perr.ErrorCodeUnavailable, "%s refused delivery: %s", res.Component, resp.Status)
	}
	return nil
}
