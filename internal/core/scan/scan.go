// Package scan decodes the raw text a QR scanner hands back into a typed payload
//
// Input is sniffed for a byte order mark (UTF-8 with or without BOM, UTF-16 with BOM)
// and must then be a single flat JSON object. Known fields must be strings,
// unknown fields are ignored.
package scan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	perr "mvpauth/internal/platform/errors"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Payload is the decoded scan
type Payload struct {
	Token         string `json:"token"`
	AccountNumber string `json:"accountNumber"`
	Code          string `json:"code"`
	CodeType      string `json:"codeType"`
	ImoNumber     string `json:"imoNumber"`
	LicenseNumber string `json:"licenseNumber"`
}

var (
	// ErrNoPayload means nothing was scanned
	ErrNoPayload = perr.New(perr.ErrorCodeValidation, "no payload scanned")
	// ErrMalformed means the scan is not a flat JSON object of strings
	ErrMalformed = perr.New(perr.ErrorCodeValidation, "payload is not a valid JSON object")
)

// DecodeString decodes a scan handed over as text
func DecodeString(s string) (Payload, error) { return Decode([]byte(s)) }

// Decode turns raw scanner bytes into a Payload
func Decode(raw []byte) (Payload, error) {
	text, err := toUTF8(raw)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	text = bytes.TrimSpace(text)
	if len(text) == 0 {
		return Payload{}, ErrNoPayload
	}
	// null, arrays and scalars would decode without error into a struct
	if text[0] != '{' {
		return Payload{}, fmt.Errorf("%w: top level value is not an object", ErrMalformed)
	}

	var p Payload
	dec := json.NewDecoder(bytes.NewReader(text))
	if err := dec.Decode(&p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return Payload{}, fmt.Errorf("%w: unexpected trailing data", ErrMalformed)
	}
	return p, nil
}

// HasToken reports whether the payload takes the token path
func (p Payload) HasToken() bool { return p.Token != "" }

// String renders the payload without credential values
func (p Payload) String() string {
	var b strings.Builder
	b.WriteString("scan{")
	if p.HasToken() {
		b.WriteString("token")
	} else {
		b.WriteString("codeType=")
		b.WriteString(p.CodeType)
	}
	b.WriteString("}")
	return b.String()
}

func toUTF8(raw []byte) ([]byte, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	return out, err
}
