// Package addressing holds the fixed identities both sides of the handshake agree on
package addressing

import (
	"strings"

	"mvpauth/internal/platform/config"
	perr "mvpauth/internal/platform/errors"
)

// Defaults shared with the verifier application
const (
	DefaultRequesterPackage = "com.example.mvpauthenticatorjava"
	DefaultAppName          = "mvpauthenticatorjava"

	DefaultPeerPackage      = "com.bunkerchain.mvp_app"
	DefaultPeerEntryClass   = "com.bunkerchain.mvp_app.main.SplashActivity"
	DefaultPeerServiceClass = "com.bunkerchain.mvp_app.main.TokenProcessingService"

	DefaultLinkScheme    = "bunkerchain"
	DefaultLinkAuthority = "verify"

	DefaultCallbackAction         = "com.example.mvpauthenticatorkotlin.ACTION_MVP_RESULT"
	DefaultForegroundResultAction = "com.example.mvpauthenticatorjava.MVP_RESULT"
	DefaultStatusExtra            = "status"

	DefaultRelayChannel = "mvpauth.relay.RESULT"
)

// Addressing names every package, component, action and field in play
type Addressing struct {
	RequesterPackage string
	AppName          string

	PeerPackage      string
	PeerEntryClass   string
	PeerServiceClass string

	LinkScheme    string
	LinkAuthority string

	CallbackAction         string
	ForegroundResultAction string
	StatusExtra            string

	RelayChannel string
}

// Defaults returns the stock addressing
func Defaults() Addressing {
	return Addressing{
		RequesterPackage:       DefaultRequesterPackage,
		AppName:                DefaultAppName,
		PeerPackage:            DefaultPeerPackage,
		PeerEntryClass:         DefaultPeerEntryClass,
		PeerServiceClass:       DefaultPeerServiceClass,
		LinkScheme:             DefaultLinkScheme,
		LinkAuthority:          DefaultLinkAuthority,
		CallbackAction:         DefaultCallbackAction,
		ForegroundResultAction: DefaultForegroundResultAction,
		StatusExtra:            DefaultStatusExtra,
		RelayChannel:           DefaultRelayChannel,
	}
}

// FromConfig reads overrides under MVPAUTH_
func FromConfig(cfg config.Conf) Addressing {
	c := cfg.Prefix("MVPAUTH_")
	d := Defaults()
	return Addressing{
		RequesterPackage:       c.MayString("REQUESTER_PACKAGE", d.RequesterPackage),
		AppName:                c.MayString("APP_NAME", d.AppName),
		PeerPackage:            c.MayString("PEER_PACKAGE", d.PeerPackage),
		PeerEntryClass:         c.MayString("PEER_ENTRY", d.PeerEntryClass),
		PeerServiceClass:       c.MayString("PEER_SERVICE", d.PeerServiceClass),
		LinkScheme:             strings.ToLower(c.MayString("LINK_SCHEME", d.LinkScheme)),
		LinkAuthority:          c.MayString("LINK_AUTHORITY", d.LinkAuthority),
		CallbackAction:         c.MayString("CALLBACK_ACTION", d.CallbackAction),
		ForegroundResultAction: c.MayString("FG_RESULT_ACTION", d.ForegroundResultAction),
		StatusExtra:            c.MayString("STATUS_EXTRA", d.StatusExtra),
		RelayChannel:           c.MayString("RELAY_CHANNEL", d.RelayChannel),
	}
}

// Validate reports the first empty field
func (a Addressing) Validate() error {
	fields := []struct{ name, v string }{
		{"requester_package", a.RequesterPackage},
		{"app_name", a.AppName},
		{"peer_package", a.PeerPackage},
		{"peer_entry", a.PeerEntryClass},
		{"peer_service", a.PeerServiceClass},
		{"link_scheme", a.LinkScheme},
		{"link_authority", a.LinkAuthority},
		{"callback_action", a.CallbackAction},
		{"fg_result_action", a.ForegroundResultAction},
		{"status_extra", a.StatusExtra},
		{"relay_channel", a.RelayChannel},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.v) == "" {
			return perr.WithField(perr.InvalidArgf("%s must not be empty", f.name), f.name)
		}
	}
	return nil
}
