// Package token mints and verifies the self-contained session tokens used as
// bearer credentials. Tokens are HS256 JWTs signed with a process-wide secret
// that is loaded once at startup and never mutated.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/messagely/messaging-api/internal/core/domain"
)

// Claims binds a username to the token alongside the registered expiry claim.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Issuer signs and parses session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer returns an Issuer signing with secret. If ttl <= 0 a 24h default
// is applied.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue mints a signed token bound to username.
func (i *Issuer) Issue(username string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.ttl)),
		},
		Username: username,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Parse verifies the signature before trusting anything in the token. Any
// tampering, expiry or structural failure yields domain.ErrInvalidToken; a
// partial claim set is never returned.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !tkn.Valid || claims.Username == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
