package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vedran77/quill/internal/domain"
	"github.com/vedran77/quill/internal/repository"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrAddressTaken       = errors.New("ethereum address already in use")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// PasswordHasher hashes and checks stored passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// SignatureVerifier reports whether signature over message was made by the
// key controlling address.
type SignatureVerifier interface {
	Verify(message, address, signature string) bool
}

// TokenIssuer mints bearer tokens for a subject.
type TokenIssuer interface {
	Issue(subject domain.Subject) (string, error)
}

type AuthService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	verifier SignatureVerifier
	tokens   TokenIssuer

	// reserved usernames cannot be registered; the admin login path owns them.
	reserved map[string]struct{}
	now      func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	verifier SignatureVerifier,
	tokens TokenIssuer,
	reserved ...string,
) *AuthService {
	r := make(map[string]struct{}, len(reserved))
	for _, name := range reserved {
		r[name] = struct{}{}
	}
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		verifier: verifier,
		tokens:   tokens,
		reserved: r,
		now:      time.Now,
	}
}

type SignupInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Web3SignupInput struct {
	Message    string `json:"message"`
	EthAddress string `json:"ethAddress"`
	Signature  string `json:"signature"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Auth  bool   `json:"auth"`
	Token string `json:"token"`
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	if _, ok := s.reserved[input.Username]; ok {
		return nil, ErrUsernameTaken
	}

	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("looking up username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	username := input.Username
	user := &domain.User{
		Username:     &username,
		PasswordHash: &hash,
		CreatedAt:    s.now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Web3Signup registers a wallet-only account. The address must be free and
// the signature must prove control of it.
func (s *AuthService) Web3Signup(ctx context.Context, input Web3SignupInput) (*domain.User, error) {
	existing, err := s.userRepo.GetByEthAddress(ctx, input.EthAddress)
	if err != nil {
		return nil, fmt.Errorf("looking up address: %w", err)
	}
	if existing != nil {
		return nil, ErrAddressTaken
	}

	if !s.verifier.Verify(input.Message, input.EthAddress, input.Signature) {
		return nil, ErrInvalidSignature
	}

	address := input.EthAddress
	user := &domain.User{
		EthAddress: &address,
		CreatedAt:  s.now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAddressTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("looking up username: %w", err)
	}
	if user == nil || !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Compare(*user.PasswordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.UserSubject(user.ID))
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &LoginResponse{Auth: true, Token: token}, nil
}
