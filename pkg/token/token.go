package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Validation failures stay distinct internally so the middleware can log
// what actually happened; the HTTP boundary collapses all of them into one
// generic 401.
var (
	ErrMalformed    = errors.New("token malformed")
	ErrBadSignature = errors.New("token signature invalid")
	ErrExpired      = errors.New("token expired")
)

// Manager issues and validates signed bearer tokens. The signing secret is
// the sole trust anchor between the auth and tasks services and is injected
// once at construction, never read from process-wide state at call time.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

type claims struct {
	jwt.RegisteredClaims
}

// Issue signs a token for subject, valid from now until now+ttl.
func (m *Manager) Issue(subject string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.ttl)
	c := &claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Validate checks the signature and expiry of a raw token and returns its
// subject. The signature is recomputed with the manager's secret and
// compared constant-time by the HMAC verifier; expiry is an absolute
// deadline checked against the local clock, so issuer and validator clocks
// need not agree on "now".
func (m *Manager) Validate(raw string) (string, error) {
	c := &claims{}
	tkn, err := jwt.ParseWithClaims(raw, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrMalformed
		}
		return m.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		default:
			return "", ErrMalformed
		}
	}
	if !tkn.Valid || c.Subject == "" {
		return "", ErrMalformed
	}
	return c.Subject, nil
}
