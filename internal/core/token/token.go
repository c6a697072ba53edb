// Package token issues and verifies the signed session credential. Tokens are
// stateless HS256 JWTs binding exactly one principal id with an expiry; there
// is no server-side revocation list, so logout only clears the client-held
// copy and a token stays valid until its expiry elapses.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid covers every verification failure: bad signature, wrong
// algorithm, malformed payload, or elapsed expiry.
var ErrInvalid = errors.New("invalid token")

// Manager mints and verifies session tokens with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

const defaultTTL = 7 * 24 * time.Hour

// NewManager returns a Manager. ttl <= 0 falls back to seven days.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue mints a signed token for principalID with the configured expiry.
func (m *Manager) Issue(principalID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": principalID,
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded principal id.
// Pure and side-effect-free; it never refreshes the token.
func (m *Manager) Verify(signed string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", ErrInvalid
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalid
	}
	return sub, nil
}
