package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/quill/internal/domain"
	"github.com/vedran77/quill/internal/repository"
)

// ContentStore pushes content to content-addressed storage and returns its CID.
type ContentStore interface {
	Put(ctx context.Context, name string, content []byte) (string, error)
}

type UploadService struct {
	store    ContentStore
	fileRepo repository.FileRepository
	userRepo repository.UserRepository
	notifier Notifier
}

func NewUploadService(store ContentStore, fileRepo repository.FileRepository, userRepo repository.UserRepository) *UploadService {
	return &UploadService{
		store:    store,
		fileRepo: fileRepo,
		userRepo: userRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *UploadService) SetNotifier(n Notifier) {
	s.notifier = n
}

type UploadHTMLInput struct {
	HTMLContent string `json:"htmlContent"`
}

type UploadResponse struct {
	CID string `json:"cid"`
}

// UploadHTML stores htmlContent and records the resulting CID. The file is
// linked to the uploader when the subject is a stored user.
func (s *UploadService) UploadHTML(ctx context.Context, subject domain.Subject, input UploadHTMLInput) (*UploadResponse, error) {
	name := uuid.NewString() + ".html"

	cid, err := s.store.Put(ctx, name, []byte(input.HTMLContent))
	if err != nil {
		return nil, fmt.Errorf("storing content: %w", err)
	}

	file := &domain.File{CID: cid, CreatedAt: time.Now()}

	if subject.IsUser() {
		user, err := s.userRepo.GetByID(ctx, subject.UserID)
		if err != nil {
			return nil, fmt.Errorf("looking up uploader: %w", err)
		}
		if user != nil {
			file.UserID = &user.ID
		}
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("recording file: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyFileUploaded(file)
	}

	return &UploadResponse{CID: cid}, nil
}

// ListFiles returns the uploads linked to subject. Admin uploads are never
// linked, so the admin always gets an empty list.
func (s *UploadService) ListFiles(ctx context.Context, subject domain.Subject) ([]domain.File, error) {
	if !subject.IsUser() {
		return []domain.File{}, nil
	}
	files, err := s.fileRepo.ListByUser(ctx, subject.UserID)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []domain.File{}
	}
	return files, nil
}
