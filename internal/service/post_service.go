package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vedran77/quill/internal/domain"
	"github.com/vedran77/quill/internal/repository"
)

// Notifier broadcasts real-time events to connected clients.
type Notifier interface {
	NotifyNewPost(post *domain.Post)
	NotifyFileUploaded(file *domain.File)
}

type PostService struct {
	postRepo repository.PostRepository
	notifier Notifier
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *PostService) SetNotifier(n Notifier) {
	s.notifier = n
}

type CreatePostInput struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

func (s *PostService) Create(ctx context.Context, input CreatePostInput) (*domain.Post, error) {
	post := &domain.Post{
		Title:     input.Title,
		Text:      input.Text,
		CreatedAt: time.Now(),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewPost(post)
	}

	return post, nil
}
