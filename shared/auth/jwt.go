package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any credential that fails verification,
// whether tampered, malformed or expired. Callers treat it as "not
// authenticated", never as a server failure.
var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims carries the authenticated user ID in the subject claim.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// JWTAuthenticator issues and verifies stateless session credentials signed
// with a process-wide secret. It holds no mutable state.
type JWTAuthenticator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTAuthenticator creates a new JWTAuthenticator instance.
func NewJWTAuthenticator(secret, issuer string, ttl time.Duration) JWTAuthenticator {
	return JWTAuthenticator{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// TTL reports the credential lifetime, used by callers to set cookie expiry.
func (a JWTAuthenticator) TTL() time.Duration {
	return a.ttl
}

// Issue generates a signed credential embedding the user ID and an expiry
// of now plus the configured lifetime.
func (a JWTAuthenticator) Issue(userID string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    a.issuer,
			Audience:  jwt.ClaimStrings{a.issuer},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString(a.secret)
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// Verify validates a credential and returns the embedded user ID. Any
// failure, including expiry, yields ErrInvalidToken.
func (a JWTAuthenticator) Verify(tokenStr string) (string, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return a.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithAudience(a.issuer),
		jwt.WithIssuer(a.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
