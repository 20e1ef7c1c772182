package addressing

import (
	"testing"

	"mvpauth/internal/platform/config"
	perr "mvpauth/internal/platform/errors"
)

func TestFromConfig_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("MVPAUTH_PEER_PACKAGE", "org.example.peer")
	t.Setenv("MVPAUTH_LINK_SCHEME", "BunkerChain")

	a := FromConfig(config.New())
	if a.PeerPackage != "org.example.peer" {
		t.Fatalf("peer package = %q", a.PeerPackage)
	}
	if a.LinkScheme != "bunkerchain" {
		t.Fatalf("scheme should be lower cased, got %q", a.LinkScheme)
	}
	if a.CallbackAction != DefaultCallbackAction || a.RelayChannel != DefaultRelayChannel {
		t.Fatalf("defaults not applied: %+v", a)
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidate_ReportsField(t *testing.T) {
	a := Defaults()
	a.StatusExtra = " "
	err := a.Validate()
	e, ok := perr.As(err)
	if !ok || e.Field() != "status_extra" || e.Code() != perr.ErrorCodeInvalidArgument {
		t.Fatalf("err = %v", err)
	}
}
