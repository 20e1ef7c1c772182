// Package cli is the mvpauthctl command tree, a terminal stand in for the form
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mvpauth/internal/core/version"
	perr "mvpauth/internal/platform/errors"
)

// DefaultAddr matches the API default listen port
const DefaultAddr = "http://127.0.0.1:4000"

// GlobalOpts are parsed before subcommand dispatch
type GlobalOpts struct {
	Addr string
	JSON bool
}

// NewRootCmd builds the command tree; newClient is swapped in tests
func NewRootCmd(newClient func(addr string) *Client) *cobra.Command {
	if newClient == nil {
		newClient = func(addr string) *Client { return NewClient(addr, nil) }
	}
	var g GlobalOpts

	root := &cobra.Command{
		Use:   "mvpauthctl",
		Short: "Drive the mvpauth requester from a terminal",
		Long: `mvpauthctl drives the single requester session over the console API.

A typical run is open, scan, authenticate, then status until the verifier
result shows up. Results published while the session is stopped are lost.`,
		Version:       version.Info().Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&g.Addr, "addr", envOr("MVPAUTH_ADDR", DefaultAddr), "API base address")
	root.PersistentFlags().BoolVar(&g.JSON, "json", false, "print raw JSON data")
	root.CompletionOptions.DisableDefaultCmd = true

	c := func() *Client { return newClient(g.Addr) }
	root.AddCommand(
		newViewCmd("open", "Open a session and start listening", "/open", true, c, &g),
		newViewCmd("resume", "Resume listening for results", "/resume", true, c, &g),
		newViewCmd("stop", "Stop listening, results meanwhile are lost", "/stop", true, c, &g),
		newViewCmd("close", "Close the session", "/close", true, c, &g),
		newViewCmd("status", "Show the session and recent notices", "", false, c, &g),
		newScanCmd(c, &g),
		newAuthenticateCmd(c, &g),
		newCheckPeerCmd(c, &g),
		newJournalCmd(c, &g),
	)
	return root
}

// Execute runs the tree against os args
func Execute(ctx context.Context, stdout, stderr io.Writer) error {
	root := NewRootCmd(nil)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// ExitCode maps an error to a process exit status
// 2 for rejected input, 3 for state conflicts, 4 when the API or peer is unavailable
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var api *APIError
	if errors.As(err, &api) {
		return exitFor(api.Code)
	}
	if e, ok := perr.As(err); ok {
		return exitFor(e.Code())
	}
	return 1
}

func exitFor(c perr.ErrorCode) int {
	switch c {
	case perr.ErrorCodeValidation, perr.ErrorCodeInvalidArgument, perr.ErrorCodeJSON:
		return 2
	case perr.ErrorCodeConflict:
		return 3
	case perr.ErrorCodeUnavailable:
		return 4
	}
	return 1
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
