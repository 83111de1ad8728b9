package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocchau04/ktpm-webbansach/jwt"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	verifier := jwt.NewVerifier("your_secret_key")

	token, err := verifier.GenerateToken(42, "user", time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := verifier.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestVerifyTokenAdminRole(t *testing.T) {
	verifier := jwt.NewVerifier("your_secret_key")

	token, err := verifier.GenerateToken(1, "admin", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := verifier.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	signer := jwt.NewVerifier("your_secret_key")
	verifier := jwt.NewVerifier("another_secret")

	token, err := signer.GenerateToken(42, "user", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestVerifyTokenExpired(t *testing.T) {
	verifier := jwt.NewVerifier("your_secret_key")

	token, err := verifier.GenerateToken(42, "user", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyTokenGarbage(t *testing.T) {
	verifier := jwt.NewVerifier("your_secret_key")

	_, err := verifier.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}
