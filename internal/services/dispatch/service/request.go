package service

import (
	"net/url"
	"strings"

	"mvpauth/internal/core/addressing"
	"mvpauth/internal/core/scan"
	perr "mvpauth/internal/platform/errors"
	"mvpauth/internal/platform/intent"
	"mvpauth/internal/platform/net/http/bind"
	dom "mvpauth/internal/services/dispatch/domain"
)

// codeFields are checked once the authentication code has been derived
type codeFields struct {
	CodeType           string `json:"codeType"           validate:"oneof=imoNumber licenseNumber"`
	AuthenticationCode string `json:"authenticationCode" validate:"required"`
	Code               string `json:"code"               validate:"required"`
}

// rejection builds the validation error for reason
func rejection(reason dom.Reason, msg string) error {
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), string(reason))
}

// ReasonOf pulls the rejection reason out of a validation error
func ReasonOf(err error) (dom.Reason, bool) {
	e, ok := perr.As(err)
	if !ok || e.Code() != perr.ErrorCodeValidation || e.Field() == "" {
		return "", false
	}
	return dom.Reason(e.Field()), true
}

// FromPayload turns a decoded scan into exactly one request variant
// a non-empty token wins, otherwise codeType selects the identifier
func FromPayload(p scan.Payload) (dom.VerificationRequest, error) {
	if p.HasToken() {
		return dom.TokenRequest{Token: p.Token}, nil
	}

	var auth string
	switch dom.CodeType(p.CodeType) {
	case dom.CodeTypeIMO:
		auth = p.ImoNumber + p.AccountNumber
	case dom.CodeTypeLicense:
		auth = p.LicenseNumber + p.AccountNumber
	}
	f := codeFields{CodeType: p.CodeType, AuthenticationCode: auth, Code: p.Code}
	if err := validateCode(f); err != nil {
		return nil, err
	}
	return dom.CodeRequest{AuthenticationCode: auth, Code: p.Code}, nil
}

// Validate checks a request built by hand against the same rules
func Validate(req dom.VerificationRequest) error {
	switch r := req.(type) {
	case dom.TokenRequest:
		if r.Token == "" {
			return rejection(dom.ReasonEmptyToken, dom.MsgEmptyToken)
		}
		return nil
	case dom.CodeRequest:
		// the code type is already folded into AuthenticationCode
		return validateCode(codeFields{
			CodeType:           string(dom.CodeTypeIMO),
			AuthenticationCode: r.AuthenticationCode,
			Code:               r.Code,
		})
	case nil:
		return rejection(dom.ReasonNoPayload, dom.MsgNoPayload)
	}
	return rejection(dom.ReasonMalformedPayload, dom.MsgMalformed)
}

func validateCode(f codeFields) error {
	err := bind.Struct(f)
	if err == nil {
		return nil
	}
	field, _ := bind.FirstFailure(err)
	if field == "codeType" {
		return rejection(dom.ReasonUnsupportedCodeType, dom.MsgUnsupportedType)
	}
	return rejection(dom.ReasonIncompleteCodeFields, dom.MsgIncomplete)
}

// BuildEnvelope addresses req at the peer
func BuildEnvelope(req dom.VerificationRequest, a addressing.Addressing, deviceID string) (dom.Envelope, error) {
	if err := Validate(req); err != nil {
		return dom.Envelope{}, err
	}
	switch r := req.(type) {
	case dom.TokenRequest:
		in := intent.Intent{Foreground: true}.
			WithComponent(a.PeerPackage, a.PeerServiceClass).
			PutExtra("token", r.Token).
			PutExtra("packageName", a.RequesterPackage)
		return dom.Envelope{Route: dom.RouteBackground, Intent: in}, nil

	case dom.CodeRequest:
		data := verifyLink(a, [][2]string{
			{"appName", a.AppName},
			{"deviceCode", deviceID},
			{"imoNumber", r.AuthenticationCode},
			{"code", r.Code},
			{"packageName", a.RequesterPackage},
			{"action", a.CallbackAction},
		})
		in := intent.Intent{Action: intent.ActionView, Data: data}.
			WithCategory(intent.CategoryBrowsable).
			WithCategory(intent.CategoryDefault).
			WithFlag(intent.FlagNewTask).
			WithComponent(a.PeerPackage, a.PeerEntryClass)
		return dom.Envelope{Route: dom.RouteForeground, Intent: in}, nil
	}
	return dom.Envelope{}, rejection(dom.ReasonMalformedPayload, dom.MsgMalformed)
}

// verifyLink renders scheme://authority?k=v&... keeping parameter order
func verifyLink(a addressing.Addressing, params [][2]string) string {
	var b strings.Builder
	b.WriteString(a.LinkScheme)
	b.WriteString("://")
	b.WriteString(a.LinkAuthority)
	for i, kv := range params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(queryEscape(kv[0]))
		b.WriteByte('=')
		b.WriteString(queryEscape(kv[1]))
	}
	return b.String()
}

// queryEscape percent encodes spaces as %20 rather than +
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
