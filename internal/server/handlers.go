package server

import (
	"context"
	"log/slog"

	"meetup-backend/internal/auth"
	"meetup-backend/internal/models"
	"meetup-backend/internal/protocol"
	"meetup-backend/internal/session"
)

// Handlers implements the business rules behind each routed message kind.
// They are shared by every connection; all mutable state lives in the
// credential store and the session registry.
type Handlers struct {
	store    *auth.CredentialStore
	sessions *session.Registry
	log      *slog.Logger
}

// NewHandlers wires the auth handlers to their collaborators.
func NewHandlers(store *auth.CredentialStore, sessions *session.Registry, log *slog.Logger) *Handlers {
	return &Handlers{store: store, sessions: sessions, log: log}
}

// Signup validates the four signup fields in order, creates the account and
// issues a fresh session token. The second return value is the token the
// connection adopts as its active session, empty on failure.
//
// "Could not sign up user" deliberately covers both an existing account and
// a failed insert; logs tell the two apart, clients do not.
func (h *Handlers) Signup(ctx context.Context, uuid string, p *protocol.SignupPayload) (*protocol.Response, string) {
	if p.FirstName == "" {
		return protocol.Failure(protocol.KindSignup, uuid, "No first name provided"), ""
	}
	if p.LastName == "" {
		return protocol.Failure(protocol.KindSignup, uuid, "No last name provided"), ""
	}
	if p.Email == "" {
		return protocol.Failure(protocol.KindSignup, uuid, "No email provided"), ""
	}
	if p.Password == "" {
		return protocol.Failure(protocol.KindSignup, uuid, "No password provided"), ""
	}

	if h.store.UserExists(ctx, p.Email) {
		h.log.Warn("signup for existing email", "email", p.Email)
		return protocol.Failure(protocol.KindSignup, uuid, "Could not sign up user"), ""
	}

	ok := h.store.AddUser(ctx, models.Signup{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Password:  p.Password,
	})
	if !ok {
		return protocol.Failure(protocol.KindSignup, uuid, "Could not sign up user"), ""
	}

	token := h.sessions.Issue()
	h.log.Info("user signed up", "email", p.Email)
	return protocol.SignupSuccess(uuid, token), token
}

// Login verifies credentials and issues a session token. "Invalid
// credentials" is identical whether the account is absent or the password is
// wrong, so the response leaks nothing about which emails exist.
func (h *Handlers) Login(ctx context.Context, uuid string, p *protocol.LoginPayload) (*protocol.Response, string) {
	if p.Email == "" {
		return protocol.Failure(protocol.KindLogin, uuid, "No email provided"), ""
	}
	if p.Password == "" {
		return protocol.Failure(protocol.KindLogin, uuid, "No password provided"), ""
	}

	if !h.store.VerifyCredentials(ctx, p.Email, p.Password) {
		return protocol.Failure(protocol.KindLogin, uuid, "Invalid credentials"), ""
	}

	firstName := ""
	if user, ok := h.store.GetUser(ctx, p.Email); ok {
		firstName = user.FirstName
	}

	token := h.sessions.Issue()
	h.log.Info("user logged in", "email", p.Email)
	return protocol.LoginSuccess(uuid, token, firstName), token
}

// Token resumes a prior session. A valid token refreshes the session and is
// adopted by the connection; a missing user only blanks the display name.
func (h *Handlers) Token(ctx context.Context, uuid string, p *protocol.TokenPayload) (*protocol.Response, string) {
	firstName := ""
	if user, ok := h.store.GetUser(ctx, p.Email); ok {
		firstName = user.FirstName
	}

	if !h.sessions.Touch(p.Token) {
		return protocol.Failure(protocol.KindToken, uuid, "Expired or invalid token"), ""
	}

	return protocol.TokenSuccess(uuid, firstName), p.Token
}

// Heartbeat keeps a session alive without other traffic.
func (h *Handlers) Heartbeat(_ context.Context, uuid string, p *protocol.HeartbeatPayload) (*protocol.Response, string) {
	if !h.sessions.Touch(p.Token) {
		return protocol.Failure(protocol.KindHeartbeat, uuid, "Expired or invalid token"), ""
	}
	return protocol.HeartbeatSuccess(uuid), p.Token
}
