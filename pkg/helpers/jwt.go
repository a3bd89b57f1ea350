package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers bad signatures, malformed tokens, and expiry.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrMissingSubject means the token verified but carries no subject claim.
	ErrMissingSubject = errors.New("token has no subject")
)

// TokenManager issues and validates HS256 bearer tokens carrying the
// subject (the user's email) and an expiry. Tokens are self-contained;
// validity is purely signature plus expiry, with no server-side state.
type TokenManager struct {
	secret     []byte
	defaultTTL time.Duration
}

// NewTokenManager builds a TokenManager from the process-wide signing secret
// and the operational token lifetime. The secret is loaded once at startup;
// tokens signed under a different secret never validate here.
func NewTokenManager(secret string, defaultTTL time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), defaultTTL: defaultTTL}
}

// Issue signs a token for subject expiring after ttl. A non-positive ttl
// falls back to the configured default rather than a hardcoded constant.
func (m *TokenManager) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Validate verifies signature and expiry and returns the subject claim.
func (m *TokenManager) Validate(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}
