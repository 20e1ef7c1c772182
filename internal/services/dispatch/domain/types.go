// Package domain holds verification request types and dispatch outcomes
package domain

import "mvpauth/internal/platform/intent"

// CodeType selects which identifier prefixes the account number
type CodeType string

// Recognised code types
const (
	CodeTypeIMO     CodeType = "imoNumber"
	CodeTypeLicense CodeType = "licenseNumber"
)

// Valid reports whether c is recognised
func (c CodeType) Valid() bool { return c == CodeTypeIMO || c == CodeTypeLicense }

// VerificationRequest is either a TokenRequest or a CodeRequest
type VerificationRequest interface {
	isVerificationRequest()
	Route() Route
}

// TokenRequest asks the peer's background endpoint to check a token
type TokenRequest struct {
	Token string
}

// CodeRequest asks the peer's foreground entry point to check an account/code pair
// AuthenticationCode is the type selected identifier followed by the account number
type CodeRequest struct {
	AuthenticationCode string
	Code               string
}

func (TokenRequest) isVerificationRequest() {}
func (CodeRequest) isVerificationRequest()  {}

// Route implements VerificationRequest
func (TokenRequest) Route() Route { return RouteBackground }

// Route implements VerificationRequest
func (CodeRequest) Route() Route { return RouteForeground }

// Route names the peer endpoint a request is addressed to
type Route string

const (
	// RouteBackground is the peer's long running processing service
	RouteBackground Route = "background"
	// RouteForeground is the peer's browsable entry activity
	RouteForeground Route = "foreground"
)

// Envelope is the addressed, ready to deliver form of a request
// it lives only for the duration of one delivery attempt
type Envelope struct {
	Route  Route
	Intent intent.Intent
}
