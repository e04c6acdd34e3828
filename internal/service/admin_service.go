package service

import (
	"errors"
	"fmt"

	"github.com/vedran77/quill/internal/domain"
)

// AdminAuthenticator is the fixed administrator login. It never consults the
// credential store and its tokens carry the admin username as subject.
type AdminAuthenticator struct {
	username     string
	passwordHash string
	hasher       PasswordHasher
	tokens       TokenIssuer
}

// NewAdminAuthenticator hashes password once; the plaintext is not retained.
func NewAdminAuthenticator(username, password string, hasher PasswordHasher, tokens TokenIssuer) (*AdminAuthenticator, error) {
	if username == "" || password == "" {
		return nil, errors.New("admin username and password are required")
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password: %w", err)
	}
	return &AdminAuthenticator{
		username:     username,
		passwordHash: hash,
		hasher:       hasher,
		tokens:       tokens,
	}, nil
}

func (a *AdminAuthenticator) Username() string {
	return a.username
}

// Matches reports whether username names the administrator.
func (a *AdminAuthenticator) Matches(username string) bool {
	return username == a.username
}

func (a *AdminAuthenticator) Login(input LoginInput) (*LoginResponse, error) {
	if !a.Matches(input.Username) || !a.hasher.Compare(a.passwordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := a.tokens.Issue(domain.AdminSubject(a.username))
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	return &LoginResponse{Auth: true, Token: token}, nil
}
