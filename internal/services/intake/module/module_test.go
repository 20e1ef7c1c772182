package module

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mvpauth/internal/core/addressing"
	"mvpauth/internal/modkit"
	"mvpauth/internal/platform/config"
	phttp "mvpauth/internal/platform/net/http"
	dom "mvpauth/internal/services/intake/domain"
	"mvpauth/internal/services/relay"

	"github.com/go-chi/chi/v5"
)

func TestFromConfig_Modes(t *testing.T) {
	o := FromConfig(config.New())
	if o.Mode != dom.ModeReceiver || o.Action != addressing.DefaultCallbackAction {
		t.Fatalf("default options = %+v", o)
	}

	t.Setenv("INTAKE_MODE", "foreground_service")
	o = FromConfig(config.New())
	if o.Mode != dom.ModeForegroundService || o.Action != addressing.DefaultForegroundResultAction {
		t.Fatalf("foreground options = %+v", o)
	}
}

func TestModule_BroadcastRoundTrip(t *testing.T) {
	bus := relay.NewBus()
	var got []string
	bus.Subscribe(relay.ResultChannel, func(ev relay.Event) { got = append(got, ev.ResultText) })

	m := New(modkit.Deps{Cfg: config.New()}, modkit.WithPorts(Needs{Publisher: bus}))
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	cases := []struct {
		body string
		want []string
	}{
		{`{"action":"` + addressing.DefaultCallbackAction + `","extras":{"status":"APPROVED"}}`, []string{"APPROVED"}},
		{`{"action":"spoofed","extras":{"status":"APPROVED"}}`, []string{"APPROVED"}},
		{`{"action":"` + addressing.DefaultCallbackAction + `"}`, []string{"APPROVED", dom.Placeholder}},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/intents/broadcast", strings.NewReader(tc.body))
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, req)
		if rr.Code != http.StatusAccepted {
			t.Fatalf("status = %d body %s", rr.Code, rr.Body.String())
		}
		if strings.Join(got, "|") != strings.Join(tc.want, "|") {
			t.Fatalf("relayed = %v, want %v", got, tc.want)
		}
	}

	if m.Name() != "intake" {
		t.Fatalf("name = %q", m.Name())
	}
	if _, ok := m.Ports().(Ports); !ok {
		t.Fatalf("ports type = %T", m.Ports())
	}
}
