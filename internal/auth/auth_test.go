// internal/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	assert.NoError(t, VerifyPassword("hunter2", hash))
	assert.ErrorIs(t, VerifyPassword("hunter3", hash), ErrInvalidCredentials)
}

func TestHashPasswordUnique(t *testing.T) {
	h1, err := HashPassword("same")
	require.NoError(t, err)
	h2, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "salts should differ between hashes")
}

func TestVerifyPasswordMalformed(t *testing.T) {
	assert.ErrorIs(t, VerifyPassword("x", "not-a-hash"), ErrMalformedHash)
	assert.ErrorIs(t, VerifyPassword("x", "$bcrypt$v=19$m=1,t=1,p=1$a$b"), ErrMalformedHash)
}

func TestCreateAndVerifyToken(t *testing.T) {
	userID := uuid.New()
	token, err := CreateToken("test-secret", userID, "alice", time.Hour)
	require.NoError(t, err)

	claims, err := VerifyToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := CreateToken("secret-a", uuid.New(), "bob", time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken("secret-b", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := CreateToken("test-secret", uuid.New(), "carol", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken("test-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
