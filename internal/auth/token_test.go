package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/quill/internal/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenIssuer_UserRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret")

	tok, err := issuer.Issue(domain.UserSubject(42))
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	sub, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, domain.UserSubject(42), sub)
}

func TestTokenIssuer_AdminRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret")

	tok, err := issuer.Issue(domain.AdminSubject("admin"))
	require.NoError(t, err)

	sub, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.True(t, sub.IsAdmin())
	assert.Equal(t, "admin", sub.Admin)
}

func TestTokenIssuer_LifetimeIs86400Seconds(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("secret").WithClock(fixedClock(issuedAt))

	tok, err := issuer.Issue(domain.UserSubject(1))
	require.NoError(t, err)

	_, err = issuer.WithClock(fixedClock(issuedAt.Add(86399 * time.Second))).Verify(tok)
	assert.NoError(t, err)

	_, err = issuer.WithClock(fixedClock(issuedAt.Add(86401 * time.Second))).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_ClaimsShape(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	tok, err := issuer.Issue(domain.UserSubject(9))
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	assert.Equal(t, float64(9), claims["id"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	iat, err := claims.GetIssuedAt()
	require.NoError(t, err)
	assert.Equal(t, TokenTTL, exp.Sub(iat.Time))
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	good, err := issuer.Issue(domain.UserSubject(1))
	require.NoError(t, err)

	_, err = issuer.Verify("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = issuer.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenIssuer("other-secret").Verify(good)
	assert.ErrorIs(t, err, ErrInvalidToken)

	tampered := good[:len(good)-2] + flip(good[len(good)-2:])
	_, err = issuer.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": 1, "exp": time.Now().Add(time.Hour).Unix()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsMissingOrBadSubject(t *testing.T) {
	sign := func(claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()
	issuer := NewTokenIssuer("secret")

	_, err := issuer.Verify(sign(jwt.MapClaims{"exp": exp}))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Verify(sign(jwt.MapClaims{"exp": exp, "id": 0}))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Verify(sign(jwt.MapClaims{"id": 5}))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_IssueRejectsInvalidSubject(t *testing.T) {
	_, err := NewTokenIssuer("s").Issue(domain.Subject{})
	assert.ErrorIs(t, err, domain.ErrInvalidSubject)
}

func flip(s string) string {
	if strings.HasPrefix(s, "A") {
		return "B" + s[1:]
	}
	return "A" + s[1:]
}
