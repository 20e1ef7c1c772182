package scan

import (
	"errors"
	"testing"

	perr "mvpauth/internal/platform/errors"
)

func utf16le(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for _, r := range s {
		out = append(out, byte(r), 0)
	}
	return out
}

func TestDecode_Token(t *testing.T) {
	p, err := DecodeString(`{"token":"abc123"}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !p.HasToken() || p.Token != "abc123" {
		t.Fatalf("payload = %+v", p)
	}
}

func TestDecode_CodeFieldsAndUnknownIgnored(t *testing.T) {
	p, err := DecodeString(`{"codeType":"imoNumber","imoNumber":"IMO1","accountNumber":"ACC1","code":"999","issuer":"x","v":2}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Payload{CodeType: "imoNumber", ImoNumber: "IMO1", AccountNumber: "ACC1", Code: "999"}
	if p != want {
		t.Fatalf("payload = %+v, want %+v", p, want)
	}
	if p.HasToken() {
		t.Fatalf("no token expected")
	}
}

func TestDecode_Encodings(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
	}{
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"token":"t1"}`)...)},
		{"utf16le bom", utf16le(`{"token":"t1"}`)},
		{"padded", []byte(" \n{\"token\":\"t1\"}\n ")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Decode(tc.raw)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if p.Token != "t1" {
				t.Fatalf("token = %q", p.Token)
			}
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		_, err := DecodeString(raw)
		if !errors.Is(err, ErrNoPayload) {
			t.Fatalf("DecodeString(%q) err = %v, want ErrNoPayload", raw, err)
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := []string{
		`not json`,
		`{"token":`,
		`null`,
		`["token"]`,
		`"abc"`,
		`{"token":123}`,
		`{"code":{"nested":true}}`,
		`{"token":"a"} {"token":"b"}`,
	}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			_, err := DecodeString(raw)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("err = %v, want ErrMalformed", err)
			}
			if perr.CodeOf(err) != perr.ErrorCodeValidation {
				t.Fatalf("code = %v, want Validation", perr.CodeOf(err))
			}
		})
	}
}

func TestPayload_StringHidesValues(t *testing.T) {
	p := Payload{Token: "secret"}
	if s := p.String(); s != "scan{token}" {
		t.Fatalf("String = %q", s)
	}
	p = Payload{CodeType: "licenseNumber", Code: "999"}
	if s := p.String(); s != "scan{codeType=licenseNumber}" {
		t.Fatalf("String = %q", s)
	}
}
