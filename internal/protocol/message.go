// Package protocol defines the wire messages exchanged over a connection and
// the codec between JSON frames and typed requests/responses.
//
// Every frame is a single UTF-8 JSON object carrying a `type` discriminant
// and a client-chosen `uuid` correlation id that is echoed verbatim on the
// matching response.
package protocol

// Kind discriminates message variants on the wire.
type Kind int

const (
	KindInvalid     Kind = -1
	KindSignup      Kind = 0
	KindLogin       Kind = 1
	KindToken       Kind = 2
	KindHeartbeat   Kind = 3
	KindCreateEvent Kind = 4
)

// Known reports whether k is part of the wire enumeration.
func (k Kind) Known() bool {
	return k >= KindInvalid && k <= KindCreateEvent
}

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "INVALID"
	case KindSignup:
		return "SIGNUP"
	case KindLogin:
		return "LOGIN"
	case KindToken:
		return "TOKEN"
	case KindHeartbeat:
		return "HEARTBEAT"
	case KindCreateEvent:
		return "CREATE_EVENT"
	default:
		return "UNKNOWN"
	}
}

// SignupPayload carries the fields of a SIGNUP request.
type SignupPayload struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginPayload carries the fields of a LOGIN request.
type LoginPayload struct {
	Email    string
	Password string
}

// TokenPayload carries the fields of a TOKEN (session resume) request.
type TokenPayload struct {
	Token string
	Email string
}

// HeartbeatPayload carries the fields of a HEARTBEAT request.
type HeartbeatPayload struct {
	Token string
}

// Request is a decoded client frame. Exactly the variant payload named by
// Kind is non-nil; a Request is never partially populated.
type Request struct {
	Kind Kind
	UUID string

	Signup    *SignupPayload
	Login     *LoginPayload
	Token     *TokenPayload
	Heartbeat *HeartbeatPayload
}

// Response is a server frame. uuid, type, ok and reason are always present
// on the wire (reason is explicitly null on success); token and first_name
// appear only for the kinds that declare them.
type Response struct {
	UUID      string  `json:"uuid"`
	Type      Kind    `json:"type"`
	OK        bool    `json:"ok"`
	Reason    *string `json:"reason"`
	Token     *string `json:"token,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
}

// Failure builds a negative response of the given kind.
func Failure(kind Kind, uuid, reason string) *Response {
	return &Response{UUID: uuid, Type: kind, OK: false, Reason: &reason}
}

// Invalid builds the response sent for frames that never decoded.
func Invalid(uuid, reason string) *Response {
	return Failure(KindInvalid, uuid, reason)
}

// SignupSuccess builds the response to a successful signup.
func SignupSuccess(uuid, token string) *Response {
	return &Response{UUID: uuid, Type: KindSignup, OK: true, Token: &token}
}

// LoginSuccess builds the response to a successful login.
func LoginSuccess(uuid, token, firstName string) *Response {
	return &Response{UUID: uuid, Type: KindLogin, OK: true, Token: &token, FirstName: &firstName}
}

// TokenSuccess builds the response to a successful session resume.
func TokenSuccess(uuid, firstName string) *Response {
	return &Response{UUID: uuid, Type: KindToken, OK: true, FirstName: &firstName}
}

// HeartbeatSuccess builds the response to a successful heartbeat.
func HeartbeatSuccess(uuid string) *Response {
	return &Response{UUID: uuid, Type: KindHeartbeat, OK: true}
}
