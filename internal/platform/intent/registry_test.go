package intent

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	perr "mvpauth/internal/platform/errors"
)

const testManifest = `
apps:
  - package: com.bunkerchain.mvp_app
    endpoint: http://127.0.0.1:4100
    components:
      - class: com.bunkerchain.mvp_app.main.SplashActivity
        kind: activity
        launcher: true
        actions: [intent.action.VIEW]
        schemes: [bunkerchain]
      - class: com.bunkerchain.mvp_app.main.TokenProcessingService
        kind: service
  - package: com.example.mvpauthenticatorjava
    endpoint: http://127.0.0.1:4000
    components:
      - class: com.example.mvpauthenticatorjava.ResultReceiver
        kind: receiver
        actions: [com.example.mvpauthenticatorkotlin.ACTION_MVP_RESULT]
`

func fileRegistry(t *testing.T, body string) *Registry {
	t.Helper()
	p := filepath.Join(t.TempDir(), "host.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return NewFileRegistry(p)
}

func TestParseManifest_Shape(t *testing.T) {
	m, err := ParseManifest([]byte(testManifest))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(m.Apps) != 2 || len(m.Apps[0].Components) != 2 {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if m.Apps[0].Components[0].Kind != KindActivity || !m.Apps[0].Components[0].Launcher {
		t.Fatalf("splash decl = %+v", m.Apps[0].Components[0])
	}
}

func TestParseManifest_Rejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"unknown field", "apps:\n  - package: a\n    colour: red\n"},
		{"missing package", "apps:\n  - endpoint: http://x\n"},
		{"duplicate package", "apps:\n  - package: a\n  - package: a\n"},
		{"missing class", "apps:\n  - package: a\n    components:\n      - kind: service\n"},
		{"bad kind", "apps:\n  - package: a\n    components:\n      - class: X\n        kind: widget\n"},
		{"not yaml", "apps: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tc.doc))
			if err == nil {
				t.Fatalf("expected error")
			}
			if perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
				t.Fatalf("code = %v, want InvalidArgument", perr.CodeOf(err))
			}
		})
	}
}

func TestRegistry_Launchable(t *testing.T) {
	r := fileRegistry(t, testManifest)

	got, err := r.Launchable("com.bunkerchain.mvp_app")
	if err != nil {
		t.Fatalf("launchable: %v", err)
	}
	if len(got) != 1 || got[0].Class != "com.bunkerchain.mvp_app.main.SplashActivity" {
		t.Fatalf("launchable = %+v", got)
	}

	got, err = r.Launchable("com.example.missing")
	if err != nil || len(got) != 0 {
		t.Fatalf("missing package: got %+v err %v", got, err)
	}
}

func TestRegistry_ReadsOnEveryLookup(t *testing.T) {
	p := filepath.Join(t.TempDir(), "host.yaml")
	if err := os.WriteFile(p, []byte("apps: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	r := NewFileRegistry(p)
	if got, _ := r.Launchable("com.bunkerchain.mvp_app"); len(got) != 0 {
		t.Fatalf("expected nothing installed, got %+v", got)
	}
	if err := os.WriteFile(p, []byte(testManifest), 0o600); err != nil {
		t.Fatal(err)
	}
	if got, _ := r.Launchable("com.bunkerchain.mvp_app"); len(got) != 1 {
		t.Fatalf("expected install to be visible, got %+v", got)
	}
}

func TestRegistry_MissingFileIsUnavailable(t *testing.T) {
	r := NewFileRegistry(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := r.Launchable("x")
	if perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("code = %v, want Unavailable", perr.CodeOf(err))
	}
}

func TestRegistry_ResolveExplicit(t *testing.T) {
	r := fileRegistry(t, testManifest)
	const peer = "com.bunkerchain.mvp_app"

	cases := []struct {
		name    string
		in      Intent
		kind    Kind
		wantErr bool
	}{
		{"service ok", New("").WithComponent(peer, peer+".main.TokenProcessingService"), KindService, false},
		{"activity with scheme", Intent{Action: ActionView, Data: "bunkerchain://verify?a=1"}.
			WithComponent(peer, peer+".main.SplashActivity"), KindActivity, false},
		{"wrong kind", New("").WithComponent(peer, peer+".main.TokenProcessingService"), KindActivity, true},
		{"wrong scheme", Intent{Data: "https://verify"}.WithComponent(peer, peer+".main.SplashActivity"), KindActivity, true},
		{"undeclared class", New("").WithComponent(peer, peer+".Nope"), KindService, true},
		{"not installed", New("").WithComponent("com.other", "com.other.X"), KindService, true},
		{"no component", New(ActionView), KindActivity, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := r.ResolveExplicit(tc.in, tc.kind)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", res)
				}
				if !errors.Is(err, ErrNotResolvable) {
					t.Fatalf("error %v does not wrap ErrNotResolvable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if res.Endpoint != "http://127.0.0.1:4100" || res.Kind != tc.kind {
				t.Fatalf("resolved = %+v", res)
			}
		})
	}
}

func TestRegistry_Receivers(t *testing.T) {
	r := fileRegistry(t, testManifest)
	const action = "com.example.mvpauthenticatorkotlin.ACTION_MVP_RESULT"

	got, err := r.Receivers(New(action))
	if err != nil || len(got) != 1 {
		t.Fatalf("receivers = %+v err %v", got, err)
	}
	if got[0].Component.Package != "com.example.mvpauthenticatorjava" {
		t.Fatalf("receiver = %+v", got[0])
	}

	narrowed := New(action)
	narrowed.Package = "com.bunkerchain.mvp_app"
	if got, _ := r.Receivers(narrowed); len(got) != 0 {
		t.Fatalf("expected no receivers in peer package, got %+v", got)
	}

	if got, _ := r.Receivers(New("some.other.ACTION")); len(got) != 0 {
		t.Fatalf("expected no receivers for other action, got %+v", got)
	}
}
