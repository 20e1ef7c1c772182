package domain

// OutcomeKind classifies one dispatch attempt
type OutcomeKind string

const (
	// Dispatched means the host accepted delivery; the only confirmation of
	// receipt is a later result on the relay
	Dispatched OutcomeKind = "dispatched"
	// Rejected means the request failed validation and nothing was sent
	Rejected OutcomeKind = "rejected"
	// DeliveryFailed means the peer component could not be resolved or started
	DeliveryFailed OutcomeKind = "delivery_failed"
)

// Reason explains a rejection
type Reason string

// Rejection reasons
const (
	ReasonNoPayload            Reason = "no_payload"
	ReasonMalformedPayload     Reason = "malformed_payload"
	ReasonEmptyToken           Reason = "empty_token"
	ReasonUnsupportedCodeType  Reason = "unsupported_code_type"
	ReasonIncompleteCodeFields Reason = "incomplete_code_fields"
	// ReasonSessionClosed is a form action on a destroyed session, nothing was decoded
	ReasonSessionClosed Reason = "session_closed"
)

// User facing texts
const (
	MsgNoPayload          = "Please scan a QR code first."
	MsgMalformed          = "Invalid QR code format."
	MsgEmptyToken         = "QR code token is empty."
	MsgUnsupportedType    = "QR code has an unsupported code type."
	MsgIncomplete         = "Incomplete QR code data for this verification type."
	MsgSentToBackground   = "Verification sent to background..."
	MsgServiceStartFailed = "Could not start MVP app service."
	MsgActivityStartFail  = "Could not start MVP app."
	MsgAwaitingResult     = "Token sent. Waiting for background result..."
	MsgSessionClosed      = "Session is closed."
)

// Message returns the user facing text for r
func (r Reason) Message() string {
	switch r {
	case ReasonNoPayload:
		return MsgNoPayload
	case ReasonMalformedPayload:
		return MsgMalformed
	case ReasonEmptyToken:
		return MsgEmptyToken
	case ReasonUnsupportedCodeType:
		return MsgUnsupportedType
	case ReasonIncompleteCodeFields:
		return MsgIncomplete
	case ReasonSessionClosed:
		return MsgSessionClosed
	}
	return MsgMalformed
}

// Outcome is the result of one dispatch attempt
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	Route   Route       `json:"route,omitempty"`
	Reason  Reason      `json:"reason,omitempty"`
	Message string      `json:"message"`
	Err     error       `json:"-"`
}

// OK reports whether the request went out
func (o Outcome) OK() bool { return o.Kind == Dispatched }
