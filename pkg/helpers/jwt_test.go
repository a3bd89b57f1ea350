package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndValidate(t *testing.T) {
	m := NewTokenManager("super-secret", 30*time.Minute)

	tok, exp, err := m.Issue("u@example.com", 30*time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 2*time.Second)

	sub, err := m.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "u@example.com", sub)
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	m := NewTokenManager("super-secret", 30*time.Minute)

	// Issue with no explicit ttl falls back to the configured default.
	_, exp, err := m.Issue("u@example.com", 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 2*time.Second)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("super-secret", 30*time.Minute)

	tok, _, err := m.Issue("u@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = m.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("right-secret", time.Hour)
	verifier := NewTokenManager("wrong-secret", time.Hour)

	tok, _, err := issuer.Issue("u@example.com", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Malformed(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	_, err := m.Validate("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_MissingSubject(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	// Hand-rolled token with exp but no sub claim.
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Validate(tok)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestTokenManager_RejectsNonHMAC(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "u@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	// alg=none style tokens must never pass.
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
