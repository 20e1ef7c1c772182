// Package bind decodes request bodies and validates them with go-playground/validator
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "mvpauth/internal/platform/errors"
	"mvpauth/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	setup sync.Once
	v     *validator.Validate
	trans ut.Translator
)

// rules lazily builds the validator, field names come from json tags
func rules() (*validator.Validate, ut.Translator) {
	setup.Do(func() {
		loc := en.New()
		trans, _ = ut.New(loc, loc).GetTranslator("en")

		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)
		for tag, text := range map[string]string{
			"min":   "{0} must be at least {1}",
			"max":   "{0} must be at most {1}",
			"oneof": "{0} must be one of {1}",
		} {
			reword(tag, text)
		}
	})
	return v, trans
}

func reword(tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// Struct runs the validate tags on s
func Struct(s any) error {
	val, _ := rules()
	return val.Struct(s)
}

// FirstFailure names the first failing field and describes it in english
// errors that did not come from the validator keep their own text
func FirstFailure(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var fails validator.ValidationErrors
	if !errors.As(err, &fails) || len(fails) == 0 {
		return "", err.Error()
	}
	_, tr := rules()
	return fails[0].Field(), fails[0].Translate(tr)
}

// Options tunes ParseJSON
type Options struct {
	MaxBytes        int64 // 0 means DefaultMaxBytes
	DisallowUnknown bool
	AllowEmptyBody  bool
}

// DefaultMaxBytes caps a body when Options.MaxBytes is 0
const DefaultMaxBytes = 1 << 20

// Strict rejects unknown fields and empty bodies, the default for API routes
var Strict = Options{DisallowUnknown: true}

// ParseJSON reads exactly one JSON value into T and validates it
// decode failures carry ErrorCodeJSON, rule failures ErrorCodeValidation and the field
func ParseJSON[T any](r *http.Request, opts ...Options) (T, error) {
	var out T
	o := Strict
	if len(opts) > 0 {
		o = opts[0]
	}
	limit := o.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("close request body")
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	switch {
	case err != nil:
		return out, perr.Wrap(err, perr.ErrorCodeJSON, "read body")
	case int64(len(raw)) > limit:
		return out, perr.JSONErrf("body exceeds %d bytes", limit)
	case len(bytes.TrimSpace(raw)) == 0 && o.AllowEmptyBody:
		return out, nil
	case len(bytes.TrimSpace(raw)) == 0:
		return out, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&out); err != nil {
		var zero T
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		var zero T
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	err = Struct(out)
	var notStruct *validator.InvalidValidationError
	if err == nil || errors.As(err, &notStruct) {
		return out, nil
	}
	field, msg := FirstFailure(err)
	var zero T
	return zero, perr.WithField(perr.Validationf("%s", msg), field)
}
