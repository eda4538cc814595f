package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"meetup-backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepo handles user database operations
type UserRepo struct{}

// NewUserRepo creates a new user repository
func NewUserRepo() *UserRepo {
	return &UserRepo{}
}

// Create inserts a new user. The email unique constraint is the final
// arbiter when two signups race the same address; the loser gets
// ErrUserAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	result, err := DB.ExecContext(ctx, `
		INSERT INTO users (first_name, last_name, email, kdf)
		VALUES (?, ?, ?, ?)
	`, user.FirstName, user.LastName, user.Email, user.KDF)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id

	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}

	err := DB.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, kdf
		FROM users WHERE email = ?
	`, email).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.KDF)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ExistsByEmail checks if a user with the given email exists
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int
	err := DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&count)
	return count > 0, err
}

// Count returns the total number of users
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// isUniqueViolation reports whether err is a sqlite unique-constraint
// failure. modernc.org/sqlite surfaces these as plain errors, so the
// constraint name has to be matched textually.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
