// Package fileservice proxies file operations to the downstream file
// service. The service owns the file metadata and object storage; this
// backend only supplies the resolved user id as the caller identity.
package fileservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"
)

// File is the metadata record returned by the file service.
type File struct {
	FileID       string     `json:"file_id"`
	OwnerID      string     `json:"owner_id"`
	ParentID     *string    `json:"parent_id"`
	FileName     string     `json:"file_name"`
	Extension    *string    `json:"extension"`
	Size         int64      `json:"size"`
	FileType     string     `json:"file_type"`
	CreatedAt    time.Time  `json:"created_at"`
	LastModified *time.Time `json:"last_modified"`
	URL          string     `json:"url,omitempty"`
}

// FileClient defines the downstream file-service operations.
type FileClient interface {
	Upload(ctx context.Context, ownerID, parentID, filename, contentType string, content io.Reader) (*File, error)
	List(ctx context.Context, ownerID string) ([]File, error)
	Delete(ctx context.Context, ownerID, fileID string) error
	Rename(ctx context.Context, ownerID, fileID, newName string) error
	CreateFolder(ctx context.Context, ownerID, parentID, name string) error
}

// Client is the HTTP implementation of FileClient.
type Client struct {
	baseURL string
	http    *http.Client
}

// Ensure Client implements FileClient
var _ FileClient = (*Client)(nil)

// NewClient creates a file-service client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// Upload forwards a file as multipart form data together with the owner
// identity and decodes the stored file metadata from the response.
func (c *Client) Upload(ctx context.Context, ownerID, parentID, filename, contentType string, content io.Reader) (*File, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}
	if err := w.WriteField("user_id", ownerID); err != nil {
		return nil, fmt.Errorf("write user_id field: %w", err)
	}
	if err := w.WriteField("parent_id", parentID); err != nil {
		return nil, fmt.Errorf("write parent_id field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-file", &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call file service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("file service upload returned status %d", resp.StatusCode)
	}

	var stored File
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &stored, nil
}

// List returns all files owned by ownerID.
func (c *Client) List(ctx context.Context, ownerID string) ([]File, error) {
	var files []File
	err := c.postJSON(ctx, "/get-files", map[string]string{"owner_id": ownerID}, &files)
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Delete removes a file owned by ownerID.
func (c *Client) Delete(ctx context.Context, ownerID, fileID string) error {
	return c.postJSON(ctx, "/delete-file", map[string]string{
		"owner_id": ownerID,
		"file_id":  fileID,
	}, nil)
}

// Rename changes the display name of a file owned by ownerID.
func (c *Client) Rename(ctx context.Context, ownerID, fileID, newName string) error {
	return c.postJSON(ctx, "/rename-file", map[string]string{
		"owner_id":  ownerID,
		"file_id":   fileID,
		"file_name": newName,
	}, nil)
}

// CreateFolder creates a folder entry for ownerID.
func (c *Client) CreateFolder(ctx context.Context, ownerID, parentID, name string) error {
	return c.postJSON(ctx, "/create-folder", map[string]string{
		"owner_id":    ownerID,
		"parent_id":   parentID,
		"folder_name": name,
	}, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call file service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("file service %s returned status %d", path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
