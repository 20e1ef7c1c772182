package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"mvpauth/internal/core/addressing"
	perr "mvpauth/internal/platform/errors"
	"mvpauth/internal/platform/intent"
	"mvpauth/internal/platform/notice"
	dom "mvpauth/internal/services/dispatch/domain"
)

type fakeHost struct {
	activities []intent.Intent
	services   []intent.Intent
	err        error
}

func (f *fakeHost) StartActivity(_ context.Context, in intent.Intent) error {
	f.activities = append(f.activities, in)
	return f.err
}

func (f *fakeHost) StartService(_ context.Context, in intent.Intent) error {
	f.services = append(f.services, in)
	return f.err
}

func (f *fakeHost) calls() int { return len(f.activities) + len(f.services) }

type fixedDevice string

func (d fixedDevice) ID() string { return string(d) }

type memRecorder struct{ outcomes []dom.Outcome }

func (m *memRecorder) RecordDispatch(_ context.Context, o dom.Outcome) { m.outcomes = append(m.outcomes, o) }

func newSvc(host *fakeHost) (*Service, *notice.Board, *memRecorder) {
	board := notice.NewBoard(16)
	rec := &memRecorder{}
	return New(host, fixedDevice("dev-1"), Config{Addressing: addressing.Defaults()},
		WithNotices(board), WithRecorder(rec)), board, rec
}

func TestDispatchPayload_Token(t *testing.T) {
	host := &fakeHost{}
	s, board, rec := newSvc(host)

	o := s.DispatchPayload(context.Background(), `{"token":"abc123"}`)
	if o.Kind != dom.Dispatched || o.Route != dom.RouteBackground {
		t.Fatalf("outcome = %+v", o)
	}
	if len(host.services) != 1 || len(host.activities) != 0 {
		t.Fatalf("services=%d activities=%d", len(host.services), len(host.activities))
	}
	in := host.services[0]
	if in.Component == nil || in.Component.Package != addressing.DefaultPeerPackage ||
		in.Component.Class != addressing.DefaultPeerServiceClass {
		t.Fatalf("component = %+v", in.Component)
	}
	if !in.Foreground {
		t.Fatalf("token delivery should request foreground")
	}
	if v, _ := in.Extra("token"); v != "abc123" {
		t.Fatalf("token extra = %q", v)
	}
	if v, _ := in.Extra("packageName"); v != addressing.DefaultRequesterPackage {
		t.Fatalf("packageName extra = %q", v)
	}
	if n := board.Recent(); len(n) != 1 || n[0].Text != dom.MsgSentToBackground {
		t.Fatalf("notices = %+v", n)
	}
	if len(rec.outcomes) != 1 || rec.outcomes[0].Kind != dom.Dispatched {
		t.Fatalf("recorded = %+v", rec.outcomes)
	}
}

func TestDispatchPayload_Code(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		auth string
	}{
		{"imo", `{"codeType":"imoNumber","imoNumber":"IMO1","accountNumber":"ACC1","code":"999"}`, "IMO1ACC1"},
		{"license", `{"codeType":"licenseNumber","licenseNumber":"L 7","accountNumber":"A&B","code":"42","imoNumber":"ignored"}`, "L 7A&B"},
		{"empty token falls through", `{"token":"","codeType":"imoNumber","imoNumber":"I","code":"1"}`, "I"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			host := &fakeHost{}
			s, _, _ := newSvc(host)

			o := s.DispatchPayload(context.Background(), tc.raw)
			if o.Kind != dom.Dispatched || o.Route != dom.RouteForeground {
				t.Fatalf("outcome = %+v", o)
			}
			if len(host.activities) != 1 || len(host.services) != 0 {
				t.Fatalf("activities=%d services=%d", len(host.activities), len(host.services))
			}
			in := host.activities[0]
			if in.Action != intent.ActionView || in.Component.Class != addressing.DefaultPeerEntryClass {
				t.Fatalf("intent = %+v", in)
			}
			if len(in.Categories) != 2 || len(in.Flags) != 1 || in.Flags[0] != intent.FlagNewTask {
				t.Fatalf("categories=%v flags=%v", in.Categories, in.Flags)
			}
			u, err := url.Parse(in.Data)
			if err != nil {
				t.Fatalf("data uri: %v", err)
			}
			if u.Scheme != "bunkerchain" || u.Host != "verify" {
				t.Fatalf("uri = %s", in.Data)
			}
			q := u.Query()
			if q.Get("imoNumber") != tc.auth {
				t.Fatalf("imoNumber = %q, want %q", q.Get("imoNumber"), tc.auth)
			}
			if q.Get("deviceCode") != "dev-1" || q.Get("appName") != addressing.DefaultAppName ||
				q.Get("packageName") != addressing.DefaultRequesterPackage ||
				q.Get("action") != addressing.DefaultCallbackAction {
				t.Fatalf("query = %v", q)
			}
			if strings.Contains(in.Data, "+") {
				t.Fatalf("spaces must be percent encoded: %s", in.Data)
			}
		})
	}
}

func TestBuildEnvelope_QueryOrder(t *testing.T) {
	env, err := BuildEnvelope(dom.CodeRequest{AuthenticationCode: "IMO1ACC1", Code: "999"}, addressing.Defaults(), "dev")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := "bunkerchain://verify?appName=mvpauthenticatorjava&deviceCode=dev&imoNumber=IMO1ACC1&code=999" +
		"&packageName=com.example.mvpauthenticatorjava&action=com.example.mvpauthenticatorkotlin.ACTION_MVP_RESULT"
	if env.Intent.Data != want {
		t.Fatalf("data =\n%s\nwant\n%s", env.Intent.Data, want)
	}
}

func TestDispatchPayload_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		reason dom.Reason
		msg    string
	}{
		{"empty", "", dom.ReasonNoPayload, dom.MsgNoPayload},
		{"blank", "   ", dom.ReasonNoPayload, dom.MsgNoPayload},
		{"not json", "hello", dom.ReasonMalformedPayload, dom.MsgMalformed},
		{"truncated", `{"token":`, dom.ReasonMalformedPayload, dom.MsgMalformed},
		{"unknown code type", `{"codeType":"unknown"}`, dom.ReasonUnsupportedCodeType, dom.MsgUnsupportedType},
		{"no code type", `{"imoNumber":"I","code":"1"}`, dom.ReasonUnsupportedCodeType, dom.MsgUnsupportedType},
		{"missing code", `{"codeType":"imoNumber","imoNumber":"I","accountNumber":"A"}`, dom.ReasonIncompleteCodeFields, dom.MsgIncomplete},
		{"empty auth", `{"codeType":"licenseNumber","code":"1"}`, dom.ReasonIncompleteCodeFields, dom.MsgIncomplete},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			host := &fakeHost{}
			s, board, rec := newSvc(host)

			o := s.DispatchPayload(context.Background(), tc.raw)
			if o.Kind != dom.Rejected || o.Reason != tc.reason || o.Message != tc.msg {
				t.Fatalf("outcome = %+v", o)
			}
			if host.calls() != 0 {
				t.Fatalf("host was called %d times", host.calls())
			}
			if perr.CodeOf(o.Err) != perr.ErrorCodeValidation {
				t.Fatalf("err code = %v", perr.CodeOf(o.Err))
			}
			last, _ := board.Last()
			if last.Text != tc.msg {
				t.Fatalf("last notice = %q", last.Text)
			}
			if len(rec.outcomes) != 1 || rec.outcomes[0].Kind != dom.Rejected {
				t.Fatalf("recorded = %+v", rec.outcomes)
			}
		})
	}
}

func TestDispatch_HandBuiltRequests(t *testing.T) {
	cases := []struct {
		name   string
		req    dom.VerificationRequest
		reason dom.Reason
	}{
		{"empty token", dom.TokenRequest{}, dom.ReasonEmptyToken},
		{"empty auth", dom.CodeRequest{Code: "1"}, dom.ReasonIncompleteCodeFields},
		{"empty code", dom.CodeRequest{AuthenticationCode: "A"}, dom.ReasonIncompleteCodeFields},
		{"nil", nil, dom.ReasonNoPayload},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			host := &fakeHost{}
			s, _, _ := newSvc(host)
			o := s.Dispatch(context.Background(), tc.req)
			if o.Kind != dom.Rejected || o.Reason != tc.reason {
				t.Fatalf("outcome = %+v", o)
			}
			if host.calls() != 0 {
				t.Fatalf("host called")
			}
		})
	}
}

func TestDispatch_DeliveryFailed(t *testing.T) {
	cases := []struct {
		name string
		req  dom.VerificationRequest
		msg  string
	}{
		{"service", dom.TokenRequest{Token: "t"}, dom.MsgServiceStartFailed},
		{"activity", dom.CodeRequest{AuthenticationCode: "A", Code: "1"}, dom.MsgActivityStartFail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cause := intent.ErrNotResolvable
			host := &fakeHost{err: cause}
			s, board, rec := newSvc(host)

			o := s.Dispatch(context.Background(), tc.req)
			if o.Kind != dom.DeliveryFailed || o.Message != tc.msg || o.OK() {
				t.Fatalf("outcome = %+v", o)
			}
			if perr.CodeOf(o.Err) != perr.ErrorCodeUnavailable || !errors.Is(o.Err, cause) {
				t.Fatalf("err = %v", o.Err)
			}
			if last, _ := board.Last(); last.Text != tc.msg {
				t.Fatalf("notice = %q", last.Text)
			}
			if len(rec.outcomes) != 1 || rec.outcomes[0].Kind != dom.DeliveryFailed {
				t.Fatalf("recorded = %+v", rec.outcomes)
			}
		})
	}
}

func TestDispatch_TokenSkipsDeviceLookup(t *testing.T) {
	host := &fakeHost{}
	s := New(host, nil, Config{Addressing: addressing.Defaults()})
	if o := s.Dispatch(context.Background(), dom.TokenRequest{Token: "t"}); !o.OK() {
		t.Fatalf("outcome = %+v", o)
	}
}

type peerCheck struct {
	installed bool
	asked     int
}

func (p *peerCheck) IsPeerInstalled(context.Context) bool { p.asked++; return p.installed }

func TestDispatch_PeerCheckIsAdvisory(t *testing.T) {
	for _, installed := range []bool{true, false} {
		host := &fakeHost{}
		check := &peerCheck{installed: installed}
		s := New(host, fixedDevice("dev-1"), Config{Addressing: addressing.Defaults()}, WithPeerCheck(check))

		o := s.DispatchPayload(context.Background(), `{"token":"abc123"}`)
		if o.Kind != dom.Dispatched || host.calls() != 1 || check.asked != 1 {
			t.Fatalf("installed=%v: outcome %+v calls %d asked %d", installed, o, host.calls(), check.asked)
		}
	}
}

func TestDispatch_PeerCheckSkippedOnRejection(t *testing.T) {
	check := &peerCheck{}
	s := New(&fakeHost{}, fixedDevice("dev-1"), Config{Addressing: addressing.Defaults()}, WithPeerCheck(check))
	if o := s.DispatchPayload(context.Background(), `{"token":""}`); o.Kind != dom.Rejected || check.asked != 0 {
		t.Fatalf("outcome %+v asked %d", o, check.asked)
	}
}
