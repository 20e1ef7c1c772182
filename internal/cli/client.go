package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	perr "mvpauth/internal/platform/errors"
)

// ConsolePath is where the API serves the console, no trailing slash
const ConsolePath = "/api/v1/console"

// APIError is a non 2xx envelope returned by the API
type APIError struct {
	Status  int
	Code    perr.ErrorCode
	Message string
	Field   string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s, %d)", e.Message, e.Field, e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       perr.ErrorCode  `json:"code"`
	Error      string          `json:"error"`
	Field      string          `json:"field"`
	Data       json.RawMessage `json:"data"`
}

// Client talks to the console endpoints
type Client struct {
	base string
	http *http.Client
}

// NewClient targets the API at base, for example http://127.0.0.1:4000
func NewClient(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{base: strings.TrimRight(base, "/"), http: hc}
}

// Do calls method on the console path and decodes data into out when non nil
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeJSON, "encode request")
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+ConsolePath+path, rd)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "api unreachable")
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&env); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "unexpected response (%d)", res.StatusCode)
	}
	if res.StatusCode >= 300 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		return &APIError{Status: res.StatusCode, Code: env.Code, Message: msg, Field: env.Field}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "decode response data")
	}
	return nil
}
