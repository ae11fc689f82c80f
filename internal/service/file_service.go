package service

import (
	"context"
	"io"
	"log"

	"github.com/google/uuid"

	"skybox/internal/fileservice"
	"skybox/internal/repository"
)

// FileService proxies file operations to the downstream file service on
// behalf of a resolved account and keeps the per-user storage counter in
// step with uploads.
type FileService interface {
	Upload(ctx context.Context, ownerID uuid.UUID, parentID, filename, contentType string, content io.Reader) (*fileservice.File, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]fileservice.File, error)
	Delete(ctx context.Context, ownerID uuid.UUID, fileID string) error
	Rename(ctx context.Context, ownerID uuid.UUID, fileID, newName string) error
	CreateFolder(ctx context.Context, ownerID uuid.UUID, parentID, name string) error
}

type fileSvc struct {
	client fileservice.FileClient
	users  repository.UserRepository
}

// NewFileService creates a new file service.
func NewFileService(client fileservice.FileClient, users repository.UserRepository) FileService {
	return &fileSvc{client: client, users: users}
}

// Upload forwards the file and adds the stored size to the owner's quota
// counter. The counter is advisory; a failed update does not undo the upload.
func (s *fileSvc) Upload(ctx context.Context, ownerID uuid.UUID, parentID, filename, contentType string, content io.Reader) (*fileservice.File, error) {
	stored, err := s.client.Upload(ctx, ownerID.String(), parentID, filename, contentType, content)
	if err != nil {
		return nil, err
	}

	if stored.Size > 0 {
		if err := s.users.AddStorageUsed(ctx, ownerID, stored.Size); err != nil {
			log.Printf("storage counter update failed for user %s: %v", ownerID, err)
		}
	}
	return stored, nil
}

func (s *fileSvc) List(ctx context.Context, ownerID uuid.UUID) ([]fileservice.File, error) {
	return s.client.List(ctx, ownerID.String())
}

func (s *fileSvc) Delete(ctx context.Context, ownerID uuid.UUID, fileID string) error {
	return s.client.Delete(ctx, ownerID.String(), fileID)
}

func (s *fileSvc) Rename(ctx context.Context, ownerID uuid.UUID, fileID, newName string) error {
	return s.client.Rename(ctx, ownerID.String(), fileID, newName)
}

func (s *fileSvc) CreateFolder(ctx context.Context, ownerID uuid.UUID, parentID, name string) error {
	return s.client.CreateFolder(ctx, ownerID.String(), parentID, name)
}
