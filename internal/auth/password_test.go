package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	ok, err := VerifyPassword("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPassword("same password")
	require.NoError(t, err)
	b, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerifyMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"not a hash",
		"$argon2i$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=4$!!$aGFzaA",
		"$argon2id$v=19$bogus$c2FsdA$aGFzaA",
	}

	for _, encoded := range cases {
		ok, err := VerifyPassword("anything", encoded)
		assert.ErrorIs(t, err, ErrMalformedHash, "encoded=%q", encoded)
		assert.False(t, ok)
	}
}

func TestEmptyPasswordStillHashes(t *testing.T) {
	// Empty passwords are rejected upstream by the handlers; the primitive
	// itself must not choke on them.
	encoded, err := HashPassword("")
	require.NoError(t, err)

	ok, err := VerifyPassword("", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}
