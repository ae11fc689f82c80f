package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"skybox/internal/fileservice"
)

// MockFileClient is a mock implementation of fileservice.FileClient.
type MockFileClient struct {
	mock.Mock
}

func (m *MockFileClient) Upload(ctx context.Context, ownerID, parentID, filename, contentType string, content io.Reader) (*fileservice.File, error) {
	args := m.Called(ctx, ownerID, parentID, filename, contentType, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fileservice.File), args.Error(1)
}

func (m *MockFileClient) List(ctx context.Context, ownerID string) ([]fileservice.File, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fileservice.File), args.Error(1)
}

func (m *MockFileClient) Delete(ctx context.Context, ownerID, fileID string) error {
	args := m.Called(ctx, ownerID, fileID)
	return args.Error(0)
}

func (m *MockFileClient) Rename(ctx context.Context, ownerID, fileID, newName string) error {
	args := m.Called(ctx, ownerID, fileID, newName)
	return args.Error(0)
}

func (m *MockFileClient) CreateFolder(ctx context.Context, ownerID, parentID, name string) error {
	args := m.Called(ctx, ownerID, parentID, name)
	return args.Error(0)
}

func TestFileService_UploadUpdatesStorageCounter(t *testing.T) {
	client := new(MockFileClient)
	users := new(MockUserRepository)
	ownerID := uuid.New()

	client.On("Upload", mock.Anything, ownerID.String(), "", "notes.txt", "text/plain", mock.Anything).
		Return(&fileservice.File{FileID: uuid.NewString(), Size: 42}, nil)
	users.On("AddStorageUsed", mock.Anything, ownerID, int64(42)).Return(nil)

	svc := NewFileService(client, users)
	stored, err := svc.Upload(context.Background(), ownerID, "", "notes.txt", "text/plain", strings.NewReader("hello"))

	assert.NoError(t, err)
	assert.Equal(t, int64(42), stored.Size)
	client.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestFileService_UploadFailureSkipsCounter(t *testing.T) {
	client := new(MockFileClient)
	users := new(MockUserRepository)
	ownerID := uuid.New()

	client.On("Upload", mock.Anything, ownerID.String(), "", "notes.txt", "text/plain", mock.Anything).
		Return(nil, errors.New("upstream down"))

	svc := NewFileService(client, users)
	_, err := svc.Upload(context.Background(), ownerID, "", "notes.txt", "text/plain", strings.NewReader("hello"))

	assert.Error(t, err)
	users.AssertNotCalled(t, "AddStorageUsed", mock.Anything, mock.Anything, mock.Anything)
}

func TestFileService_PassThroughOperations(t *testing.T) {
	client := new(MockFileClient)
	users := new(MockUserRepository)
	ownerID := uuid.New()

	client.On("List", mock.Anything, ownerID.String()).Return([]fileservice.File{{FileName: "a"}}, nil)
	client.On("Delete", mock.Anything, ownerID.String(), "f1").Return(nil)
	client.On("Rename", mock.Anything, ownerID.String(), "f1", "b").Return(nil)
	client.On("CreateFolder", mock.Anything, ownerID.String(), "", "docs").Return(nil)

	svc := NewFileService(client, users)
	ctx := context.Background()

	files, err := svc.List(ctx, ownerID)
	assert.NoError(t, err)
	assert.Len(t, files, 1)

	assert.NoError(t, svc.Delete(ctx, ownerID, "f1"))
	assert.NoError(t, svc.Rename(ctx, ownerID, "f1", "b"))
	assert.NoError(t, svc.CreateFolder(ctx, ownerID, "", "docs"))

	client.AssertExpectations(t)
}
