package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vedran77/quill/internal/domain"
)

// TokenTTL is the lifetime of every issued bearer token.
const TokenTTL = 86400 * time.Second

// Claims is the token payload: {"id": <subject>, "iat": ..., "exp": ...}.
type Claims struct {
	Principal domain.Subject `json:"id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 tokens with a process-wide secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}
}

// WithClock returns a copy of the issuer that reads time from now.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	cp := *i
	cp.now = now
	return &cp
}

func (i *TokenIssuer) Issue(subject domain.Subject) (string, error) {
	if !subject.Valid() {
		return "", domain.ErrInvalidSubject
	}
	now := i.now()
	claims := Claims{
		Principal: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify checks signature and expiry and returns the token's subject.
// An empty token yields ErrMissingToken; every other failure ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenStr string) (domain.Subject, error) {
	if tokenStr == "" {
		return domain.Subject{}, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Subject{}, fmt.Errorf("%w: expired", ErrInvalidToken)
		}
		return domain.Subject{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || !claims.Principal.Valid() {
		return domain.Subject{}, ErrInvalidToken
	}
	return claims.Principal, nil
}
