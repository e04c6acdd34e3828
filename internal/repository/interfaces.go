package repository

import (
	"context"
	"errors"

	"github.com/vedran77/quill/internal/domain"
)

// ErrDuplicate is returned by Create when a unique constraint rejects the row.
var ErrDuplicate = errors.New("duplicate key")

// UserRepository is the credential store. Lookups return (nil, nil) when no
// row matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEthAddress(ctx context.Context, address string) (*domain.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	List(ctx context.Context) ([]domain.Post, error)
}

type FileRepository interface {
	Create(ctx context.Context, file *domain.File) error
	ListByUser(ctx context.Context, userID int64) ([]domain.File, error)
}
