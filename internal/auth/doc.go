// Package auth holds the credential primitives used by the identity service:
// bcrypt password hashing, Ethereum personal-message signature recovery, and
// HS256 bearer tokens carrying a domain.Subject.
package auth
