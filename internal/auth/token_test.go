package auth_test

import (
	"testing"
	"time"

	"quickchat/backend/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)

	signed, err := tokens.Issue("user-a", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-a", claims.UserID)
	assert.Equal(t, "alice", claims.Nickname)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", -time.Minute)

	signed, err := tokens.Issue("user-a", "alice")
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenService("secret-one", time.Hour)
	verifier := auth.NewTokenService("secret-two", time.Hour)

	signed, err := issuer.Issue("user-a", "alice")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)

	for _, tokenString := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		_, err := tokens.Verify(tokenString)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	}
}
