package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mvpauth/internal/core/addressing"
	perr "mvpauth/internal/platform/errors"
	"mvpauth/internal/platform/intent"
	"mvpauth/internal/platform/testkit"
	dispatch "mvpauth/internal/services/dispatch/domain"
	dispatchsvc "mvpauth/internal/services/dispatch/service"
)

type replier struct {
	mu        sync.Mutex
	broadcast []intent.Intent
	started   []intent.Intent
	err       error
}

func (r *replier) StartService(_ context.Context, in intent.Intent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, in)
	return r.err
}

func (r *replier) SendBroadcast(_ context.Context, in intent.Intent) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcast = append(r.broadcast, in)
	return 1, r.err
}

func envelope(t *testing.T, req dispatch.VerificationRequest) intent.Intent {
	t.Helper()
	env, err := dispatchsvc.BuildEnvelope(req, addressing.Defaults(), "dev-1")
	if err != nil {
		t.Fatalf("envelope: %v", err)
	}
	return env.Intent
}

func TestHandleToken_BroadcastsStatusToRequester(t *testing.T) {
	r := &replier{}
	s := New(r, Config{Addressing: addressing.Defaults(), Status: "APPROVED"})

	if err := s.HandleToken(context.Background(), envelope(t, dispatch.TokenRequest{Token: "abc"})); err != nil {
		t.Fatalf("handle: %v", err)
	}
	s.Wait()

	if len(r.broadcast) != 1 {
		t.Fatalf("broadcasts = %d", len(r.broadcast))
	}
	got := r.broadcast[0]
	if got.Action != addressing.DefaultCallbackAction || got.Package != addressing.DefaultRequesterPackage {
		t.Fatalf("reply = %+v", got)
	}
	if v, _ := got.Extra(addressing.DefaultStatusExtra); v != "APPROVED" {
		t.Fatalf("status = %q", v)
	}
}

func TestHandleLink_UsesCallbackActionFromLink(t *testing.T) {
	r := &replier{}
	a := addressing.Defaults()
	a.CallbackAction = "custom.RESULT"
	s := New(r, Config{Addressing: addressing.Defaults(), Status: "DENIED"})

	env, err := dispatchsvc.BuildEnvelope(dispatch.CodeRequest{AuthenticationCode: "IMO1ACC", Code: "9"}, a, "dev-1")
	if err != nil {
		t.Fatalf("envelope: %v", err)
	}
	if err := s.HandleLink(context.Background(), env.Intent); err != nil {
		t.Fatalf("handle: %v", err)
	}
	s.Wait()

	if len(r.broadcast) != 1 || r.broadcast[0].Action != "custom.RESULT" {
		t.Fatalf("broadcasts = %+v", r.broadcast)
	}
}

func TestHandleLink_Rejects(t *testing.T) {
	s := New(&replier{}, Config{Addressing: addressing.Defaults()})
	cases := []struct {
		name, data, field string
	}{
		{"wrong scheme", "https://verify?imoNumber=1&code=2&packageName=p", ""},
		{"wrong authority", "bunkerchain://other?imoNumber=1&code=2&packageName=p", ""},
		{"missing code", "bunkerchain://verify?imoNumber=1&packageName=p", "code"},
		{"missing package", "bunkerchain://verify?imoNumber=1&code=2", "packageName"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.HandleLink(context.Background(), intent.Intent{Data: tc.data})
			e, ok := perr.As(err)
			if !ok || e.Code() != perr.ErrorCodeInvalidArgument {
				t.Fatalf("err = %v", err)
			}
			if tc.field != "" && e.Field() != tc.field {
				t.Fatalf("field = %q, want %q", e.Field(), tc.field)
			}
		})
	}
}

func TestHandleToken_Rejects(t *testing.T) {
	s := New(&replier{}, Config{Addressing: addressing.Defaults()})
	err := s.HandleToken(context.Background(), intent.New("").PutExtra("packageName", "p"))
	if e, ok := perr.As(err); !ok || e.Field() != "token" {
		t.Fatalf("err = %v", err)
	}
}

func TestReply_ServiceModeAndDelay(t *testing.T) {
	testkit.Serial(t)
	var slept time.Duration
	testkit.Swap(t, &sleep, func(d time.Duration) { slept = d })

	r := &replier{}
	s := New(r, Config{
		Addressing:    addressing.Defaults(),
		ReplyTo:       ReplyService,
		Delay:         time.Second,
		ResultService: "com.example.mvpauthenticatorjava.ResultService",
	})
	if err := s.HandleToken(context.Background(), envelope(t, dispatch.TokenRequest{Token: "abc"})); err != nil {
		t.Fatalf("handle: %v", err)
	}
	s.Wait()

	if slept != time.Second {
		t.Fatalf("slept = %v", slept)
	}
	if len(r.started) != 1 || len(r.broadcast) != 0 {
		t.Fatalf("started = %d broadcast = %d", len(r.started), len(r.broadcast))
	}
	got := r.started[0]
	if got.Action != addressing.DefaultForegroundResultAction || got.Component.Class != "com.example.mvpauthenticatorjava.ResultService" {
		t.Fatalf("reply = %+v", got)
	}
	if _, ok := got.Extra(addressing.DefaultStatusExtra); ok {
		t.Fatalf("empty status should leave the extra off")
	}
}

func TestReply_FailureIsLoggedNotReturned(t *testing.T) {
	r := &replier{err: errors.New("down")}
	s := New(r, Config{Addressing: addressing.Defaults(), Status: "APPROVED"})
	if err := s.HandleToken(context.Background(), envelope(t, dispatch.TokenRequest{Token: "abc"})); err != nil {
		t.Fatalf("handle: %v", err)
	}
	s.Wait()
	if len(r.broadcast) != 1 {
		t.Fatalf("broadcast attempts = %d", len(r.broadcast))
	}
}
