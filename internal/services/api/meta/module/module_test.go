package module

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mvpauth/internal/modkit"
	phttp "mvpauth/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestMeta_MountsUnderPrefix(t *testing.T) {
	m := New(modkit.Deps{}, modkit.WithSwagger(true), modkit.WithPorts(Needs{Listeners: func() int { return 1 }}))
	if m.Name() != "meta" || m.Ports() != nil {
		t.Fatalf("name %q ports %v", m.Name(), m.Ports())
	}

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/service", nil))
	var env struct {
		Data struct {
			Name    string `json:"name"`
			Swagger bool   `json:"swagger"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusOK || env.Data.Name != ServiceName || !env.Data.Swagger {
		t.Fatalf("service: %d %+v", rec.Code, env.Data)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ready without pg but with a listener should pass, got %d %s", rec.Code, rec.Body.String())
	}
}
