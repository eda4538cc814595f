package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetup-backend/internal/database"
	"meetup-backend/internal/models"
)

func newTestStore(t *testing.T) *CredentialStore {
	t.Helper()
	require.NoError(t, database.Open(database.Config{Path: ":memory:"}))
	t.Cleanup(func() { database.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCredentialStore(database.NewUserRepo(), log)
}

func testSignup(email string) models.Signup {
	return models.Signup{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "hunter2",
	}
}

func TestAddUserAndExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.False(t, store.UserExists(ctx, "ada@example.com"))
	require.True(t, store.AddUser(ctx, testSignup("ada@example.com")))
	assert.True(t, store.UserExists(ctx, "ada@example.com"))
}

func TestAddUserDuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.True(t, store.AddUser(ctx, testSignup("ada@example.com")))
	assert.False(t, store.AddUser(ctx, testSignup("ada@example.com")))

	repo := database.NewUserRepo()
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestVerifyCredentials(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.True(t, store.AddUser(ctx, testSignup("ada@example.com")))

	assert.True(t, store.VerifyCredentials(ctx, "ada@example.com", "hunter2"))
	assert.False(t, store.VerifyCredentials(ctx, "ada@example.com", "wrong"))
	assert.False(t, store.VerifyCredentials(ctx, "nobody@example.com", "hunter2"))
}

func TestPasswordIsNeverStoredInClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.True(t, store.AddUser(ctx, testSignup("ada@example.com")))

	user, ok := store.GetUser(ctx, "ada@example.com")
	require.True(t, ok)
	assert.NotContains(t, user.KDF, "hunter2")
	assert.Contains(t, user.KDF, "$argon2id$")
}

func TestGetUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, ok := store.GetUser(ctx, "ada@example.com")
	assert.False(t, ok)

	require.True(t, store.AddUser(ctx, testSignup("ada@example.com")))

	user, ok := store.GetUser(ctx, "ada@example.com")
	require.True(t, ok)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "Lovelace", user.LastName)
	assert.Equal(t, "ada@example.com", user.Email)
}
