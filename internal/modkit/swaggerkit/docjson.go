package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"

	"mvpauth/internal/platform/config"
	perr "mvpauth/internal/platform/errors"
)

//go:embed openapi.json
var openapiDoc []byte

// docSource is swapped in tests
var docSource = func() []byte { return openapiDoc }

// Mutator edits the decoded document before it is served
type Mutator func(doc map[string]any)

var mutators []Mutator

// Register adds a Mutator, call it before Mount
func Register(m Mutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// errorExamples are injected into every operation that does not declare the status
var errorExamples = map[string]struct {
	desc string
	ex   map[string]any
}{
	"400": {"Bad Request", map[string]any{
		"status_code": http.StatusBadRequest,
		"status":      "Bad Request",
		"code":        perr.ErrorCodeValidation,
		"error":       "Invalid QR code format.",
		"field":       "malformed_payload",
	}},
	"500": {"Internal Server Error", map[string]any{
		"status_code": http.StatusInternalServerError,
		"status":      "Internal Server Error",
		"code":        perr.ErrorCodePanic,
		"error":       "panic recovered",
	}},
}

func serveDoc(w http.ResponseWriter, _ *http.Request) {
	var doc map[string]any
	if err := json.Unmarshal(docSource(), &doc); err != nil {
		http.Error(w, "openapi document is not valid JSON", http.StatusInternalServerError)
		return
	}
	normalize(doc, "/api/v1")
	if sfx := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); sfx != "" {
		if info, ok := doc["info"].(map[string]any); ok {
			info["title"] = strings.TrimSpace(str(info["title"]) + " " + sfx)
		}
	}
	for _, m := range mutators {
		m(doc)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(doc)
}

// normalize pins the document to OAS 3.0.3, which the UI renders, gives it a
// server and the shared error schema, and fills in default error responses
func normalize(doc map[string]any, server string) {
	delete(doc, "swagger")
	doc["openapi"] = "3.0.3"
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": server}}
	}

	schemas := child(child(doc, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorSchema()
	}

	paths, _ := doc["paths"].(map[string]any)
	for _, p := range paths {
		item, _ := p.(map[string]any)
		for _, o := range item {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for status, e := range errorExamples {
				if _, ok := resps[status]; ok {
					continue
				}
				resps[status] = map[string]any{
					"description": e.desc,
					"content": map[string]any{"application/json": map[string]any{
						"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
						"example": e.ex,
					}},
				}
			}
		}
	}
}

// errorSchema mirrors the runtime error envelope
func errorSchema() map[string]any {
	prop := func(t string) map[string]any { return map[string]any{"type": t} }
	return map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": prop("integer"),
			"status":      prop("string"),
			"code":        prop("integer"),
			"error":       prop("string"),
			"field":       prop("string"),
			"request_id":  prop("string"),
		},
		"required": []any{"status_code", "status"},
	}
}

// child returns m[k] as an object, creating it when absent
func child(m map[string]any, k string) map[string]any {
	c, ok := m[k].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[k] = c
	}
	return c
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
