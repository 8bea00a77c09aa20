// Package auth issues and checks the bearer tokens that guard the planner API.
//
// Tokens are HS256 JWTs minted by the operator with "planner token". The
// subject names the household or client the token was handed to; there are
// no user accounts behind it.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer is the "iss" claim on every planner token.
const TokenIssuer = "debtplanner"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
	ErrNoSubject    = errors.New("token subject is required")
)

// Claims identifies the holder of an API token in the standard "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
}

// Issuer signs and verifies planner API tokens with one shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(TokenIssuer),
			jwt.WithExpirationRequired(),
		),
		now: time.Now,
	}
}

// Issue returns a signed token for subject that expires after the issuer's ttl.
func (i *Issuer) Issue(subject string) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", ErrNoSubject
	}

	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token for %s: %w", subject, err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiry and returns the claims.
// Every failure wraps ErrInvalidToken.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, err := i.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, ErrNoSubject)
	}
	return claims, nil
}
