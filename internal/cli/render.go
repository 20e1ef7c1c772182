package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	console "mvpauth/internal/services/api/console/domain"
	dispatch "mvpauth/internal/services/dispatch/domain"
	journal "mvpauth/internal/services/journal/domain"
)

func printOut[T any](w io.Writer, g *GlobalOpts, v T, human func(io.Writer, T)) error {
	if g.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	human(w, v)
	return nil
}

func renderView(w io.Writer, v console.View) {
	if !v.Open || v.State == nil {
		fmt.Fprintln(w, "session: closed")
	} else {
		st := v.State
		listening := "no"
		if st.Subscribed {
			listening = "yes"
		}
		fmt.Fprintf(w, "session:   %s\n", st.Phase)
		fmt.Fprintf(w, "listening: %s\n", listening)
		fmt.Fprintf(w, "display:   %s\n", orDash(st.Display))
		fmt.Fprintf(w, "scanned:   %s\n", orDash(st.LastScanned))
	}
	if len(v.Notices) == 0 {
		return
	}
	fmt.Fprintln(w, "notices:")
	for _, n := range v.Notices {
		fmt.Fprintf(w, "  [%s] %s\n", n.Duration, n.Text)
	}
}

func renderOutcome(w io.Writer, o dispatch.Outcome) {
	if o.Route != "" {
		fmt.Fprintf(w, "%s via %s: %s\n", o.Kind, o.Route, o.Message)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", o.Kind, o.Message)
}

func renderJournal(w io.Writer, es []journal.Entry) {
	if len(es) == 0 {
		fmt.Fprintln(w, "journal is empty")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "AT\tKIND\tROUTE\tOUTCOME\tDETAIL")
	for _, e := range es {
		detail := e.Reason
		if e.Kind == journal.KindResult {
			detail = fmt.Sprintf("%s (%d listening)", e.Result, e.Delivered)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.At.Local().Format(time.DateTime), e.Kind, orDash(e.Route), orDash(e.Outcome), orDash(detail))
	}
	_ = tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
