package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	perr "mvpauth/internal/platform/errors"
	console "mvpauth/internal/services/api/console/domain"
	dispatch "mvpauth/internal/services/dispatch/domain"
	journal "mvpauth/internal/services/journal/domain"
)

// maxPayloadBytes mirrors the console scan limit
const maxPayloadBytes = 64 << 10

// newViewCmd covers every action that answers with the session view
func newViewCmd(use, short, path string, post bool, c func() *Client, g *GlobalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			method := http.MethodGet
			if post {
				method = http.MethodPost
			}
			var v console.View
			if err := c().Do(cmd.Context(), method, path, nil, &v); err != nil {
				return err
			}
			return printOut(cmd.OutOrStdout(), g, v, renderView)
		},
	}
}

func newScanCmd(c func() *Client, g *GlobalOpts) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "scan [payload]",
		Short: "Hand a scanned payload to the session",
		Long: `Hand a scanned payload to the session.

The payload comes from the argument, from --file, or from stdin with --file -.
An empty payload is a cancelled scan.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd.InOrStdin(), file, args)
			if err != nil {
				return err
			}
			var v console.View
			if err := c().Do(cmd.Context(), http.MethodPost, "/scan", console.ScanInput{Payload: payload}, &v); err != nil {
				return err
			}
			return printOut(cmd.OutOrStdout(), g, v, renderView)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the payload from a file, - for stdin")
	return cmd
}

func newAuthenticateCmd(c func() *Client, g *GlobalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "authenticate",
		Short: "Send the last scanned payload to the verifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var o dispatch.Outcome
			if err := c().Do(cmd.Context(), http.MethodPost, "/authenticate", nil, &o); err != nil {
				return err
			}
			return printOut(cmd.OutOrStdout(), g, o, renderOutcome)
		},
	}
}

func newCheckPeerCmd(c func() *Client, g *GlobalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "check-peer",
		Short: "Report whether the verifier is installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var st console.PeerStatus
			if err := c().Do(cmd.Context(), http.MethodPost, "/check-peer", nil, &st); err != nil {
				return err
			}
			return printOut(cmd.OutOrStdout(), g, st, func(w io.Writer, st console.PeerStatus) {
				fmt.Fprintln(w, st.Message)
			})
		},
	}
}

func newJournalCmd(c func() *Client, g *GlobalOpts) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List recent dispatch attempts and results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return perr.WithField(perr.InvalidArgf("limit must not be negative"), "limit")
			}
			var es []journal.Entry
			path := "/journal?limit=" + strconv.Itoa(limit)
			if err := c().Do(cmd.Context(), http.MethodGet, path, nil, &es); err != nil {
				return err
			}
			return printOut(cmd.OutOrStdout(), g, es, renderJournal)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", journal.DefaultLimit, "entries to show")
	return cmd
}

// readPayload prefers the argument, an explicit file wins over an argument
func readPayload(stdin io.Reader, file string, args []string) (string, error) {
	if file == "" {
		if len(args) == 0 {
			return "", nil
		}
		return args[0], nil
	}
	if len(args) > 0 {
		return "", perr.InvalidArgf("give the payload as an argument or with --file, not both")
	}
	var r io.Reader = stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return "", perr.Wrap(err, perr.ErrorCodeInvalidArgument, "open payload file")
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(io.LimitReader(r, maxPayloadBytes+1))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read payload")
	}
	if len(b) > maxPayloadBytes {
		return "", perr.InvalidArgf("payload exceeds %d bytes", maxPayloadBytes)
	}
	// scanners and editors leave a trailing newline
	return strings.TrimRight(string(b), "\r\n"), nil
}
