// Package session implements the signed, expiring session tokens carried in
// the login cookie. Tokens are self-contained; nothing is stored server-side.
package session

import (
	"crypto/rand"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the validity window of an issued token.
const DefaultTTL = 24 * time.Hour

// Service issues and verifies session tokens. The signing key is fixed at
// construction; a service built with a generated key invalidates all
// outstanding sessions on restart.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// New creates a Service with the given signing secret and token TTL.
// An empty secret is replaced by a random per-process key; a zero ttl
// falls back to DefaultTTL. A negative ttl issues already-expired tokens,
// which the tests rely on.
func New(secret []byte, ttl time.Duration) *Service {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			// crypto/rand failing means the platform is broken.
			panic(err)
		}
		slog.Warn("no session secret configured, generated a per-process key; restart will invalidate sessions")
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: secret, ttl: ttl}
}

// Issue creates a signed token binding the username to the current time.
func (s *Service) Issue(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})
	return token.SignedString(s.secret)
}

// Verify checks a token's signature and validity window and returns the
// embedded username. Any failure (malformed token, wrong algorithm, bad
// signature, expiry) yields ("", false); the failure modes are deliberately
// indistinguishable to the caller.
func (s *Service) Verify(tokenString string) (string, bool) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
