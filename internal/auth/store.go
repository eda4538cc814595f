// Package auth implements password hashing and the credential store that
// mediates all account access for the connection handlers.
package auth

import (
	"context"
	"errors"
	"log/slog"

	"meetup-backend/internal/database"
	"meetup-backend/internal/models"
)

// CredentialStore wraps the user repository behind boolean results. Store
// faults are logged here and reported to callers as negative outcomes, so a
// database hiccup degrades to a failed request instead of a dropped
// connection.
type CredentialStore struct {
	users *database.UserRepo
	log   *slog.Logger
}

// NewCredentialStore creates a credential store over the given repository.
func NewCredentialStore(users *database.UserRepo, log *slog.Logger) *CredentialStore {
	return &CredentialStore{users: users, log: log}
}

// UserExists reports whether an account with the given email exists.
func (s *CredentialStore) UserExists(ctx context.Context, email string) bool {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		s.log.Error("checking user existence", "email", email, "err", err)
		return false
	}
	return exists
}

// VerifyCredentials reports whether email and password name a valid account.
// A wrong password is a normal negative result; it is logged at warn level
// and never surfaces as an error.
func (s *CredentialStore) VerifyCredentials(ctx context.Context, email, password string) bool {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, database.ErrUserNotFound) {
			s.log.Error("loading user for credential check", "email", email, "err", err)
		}
		return false
	}

	ok, err := VerifyPassword(password, user.KDF)
	if err != nil {
		s.log.Error("verifying password hash", "email", email, "err", err)
		return false
	}
	if !ok {
		s.log.Warn("invalid credentials supplied", "email", email)
	}
	return ok
}

// AddUser hashes the signup password and inserts the account. Existence is
// checked by callers beforehand; the unique constraint underneath is only
// the race-safety net, and a losing writer gets false, not corruption.
func (s *CredentialStore) AddUser(ctx context.Context, signup models.Signup) bool {
	kdf, err := HashPassword(signup.Password)
	if err != nil {
		s.log.Error("hashing signup password", "email", signup.Email, "err", err)
		return false
	}

	user := &models.User{
		FirstName: signup.FirstName,
		LastName:  signup.LastName,
		Email:     signup.Email,
		KDF:       kdf,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.log.Error("creating user", "email", signup.Email, "err", err)
		return false
	}
	return true
}

// GetUser looks up an account by email, reporting absence as a boolean.
func (s *CredentialStore) GetUser(ctx context.Context, email string) (*models.User, bool) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, database.ErrUserNotFound) {
			s.log.Error("loading user", "email", email, "err", err)
		}
		return nil, false
	}
	return user, true
}
