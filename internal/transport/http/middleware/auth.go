package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vedran77/quill/internal/auth"
	"github.com/vedran77/quill/internal/domain"
)

type contextKey string

const SubjectKey contextKey = "subject"

// TokenVerifier decodes a bearer token into its subject.
type TokenVerifier interface {
	Verify(token string) (domain.Subject, error)
}

// Auth guards next with a bearer token. A missing token answers a bare 401,
// any other verification failure a bare 403.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := verifier.Verify(BearerToken(r))
			if err != nil {
				if errors.Is(err, auth.ErrMissingToken) {
					w.WriteHeader(http.StatusUnauthorized)
				} else {
					w.WriteHeader(http.StatusForbidden)
				}
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken returns the second word of the Authorization header, or "" when
// there is none. The scheme word is not checked, so "Basic xyz" yields "xyz"
// and fails verification rather than counting as missing.
func BearerToken(r *http.Request) string {
	fields := strings.Fields(r.Header.Get("Authorization"))
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// SubjectFrom returns the authenticated subject stored by Auth.
func SubjectFrom(ctx context.Context) (domain.Subject, bool) {
	s, ok := ctx.Value(SubjectKey).(domain.Subject)
	return s, ok
}
