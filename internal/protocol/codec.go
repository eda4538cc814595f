package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnknownMessageKind marks frames that are not JSON objects or whose
	// type field is absent, mistyped, or outside the enumeration.
	ErrUnknownMessageKind = errors.New("unknown message kind")

	// ErrMalformedPayload marks frames with a known kind but missing or
	// mistyped required fields.
	ErrMalformedPayload = errors.New("malformed payload")
)

// Decode parses a frame into a typed Request. Binary frames are assumed to be
// UTF-8 text. The second return value is the salvaged correlation id: on a
// decode failure it holds whatever uuid could still be read from the
// envelope, so the error response can echo it.
func Decode(data []byte) (*Request, string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, "", fmt.Errorf("%w: frame is not a JSON object", ErrUnknownMessageKind)
	}

	// A missing uuid is not a decode failure; responses then carry an empty
	// correlation id.
	uuid := ""
	if raw, ok := obj["uuid"]; ok {
		// Ignore a mistyped uuid rather than failing the whole frame over it.
		_ = json.Unmarshal(raw, &uuid)
	}

	rawKind, ok := obj["type"]
	if !ok {
		return nil, uuid, fmt.Errorf("%w: missing type field", ErrUnknownMessageKind)
	}
	var kind Kind
	if err := json.Unmarshal(rawKind, &kind); err != nil {
		return nil, uuid, fmt.Errorf("%w: type is not an integer", ErrUnknownMessageKind)
	}
	if !kind.Known() {
		return nil, uuid, fmt.Errorf("%w: type %d", ErrUnknownMessageKind, kind)
	}

	req := &Request{Kind: kind, UUID: uuid}

	switch kind {
	case KindSignup:
		first, err := stringField(obj, "first_name")
		if err != nil {
			return nil, uuid, err
		}
		last, err := stringField(obj, "last_name")
		if err != nil {
			return nil, uuid, err
		}
		email, err := stringField(obj, "email")
		if err != nil {
			return nil, uuid, err
		}
		password, err := stringField(obj, "password")
		if err != nil {
			return nil, uuid, err
		}
		req.Signup = &SignupPayload{FirstName: first, LastName: last, Email: email, Password: password}

	case KindLogin:
		email, err := stringField(obj, "email")
		if err != nil {
			return nil, uuid, err
		}
		password, err := stringField(obj, "password")
		if err != nil {
			return nil, uuid, err
		}
		req.Login = &LoginPayload{Email: email, Password: password}

	case KindToken:
		token, err := stringField(obj, "token")
		if err != nil {
			return nil, uuid, err
		}
		email, err := stringField(obj, "email")
		if err != nil {
			return nil, uuid, err
		}
		req.Token = &TokenPayload{Token: token, Email: email}

	case KindHeartbeat:
		token, err := stringField(obj, "token")
		if err != nil {
			return nil, uuid, err
		}
		req.Heartbeat = &HeartbeatPayload{Token: token}

	case KindInvalid, KindCreateEvent:
		// Valid on the wire but carry no routed payload; the dispatcher
		// answers these with a not-implemented response.
	}

	return req, uuid, nil
}

// Encode serializes a response frame. Optional fields that apply to the kind
// are emitted explicitly, null included, so clients never guess at absence.
func Encode(resp *Response) ([]byte, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encoding %s response: %w", resp.Type, err)
	}
	return data, nil
}

// stringField extracts a required string field. The key must be present and
// hold a JSON string; empty strings are fine here, handlers own the
// empty-field business rules.
func stringField(obj map[string]json.RawMessage, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("%w: missing field %q", ErrMalformedPayload, key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: field %q is not a string", ErrMalformedPayload, key)
	}
	return s, nil
}
