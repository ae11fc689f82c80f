// Package provision talks to the external bucket-provisioning service. Each
// account owns one bucket keyed by its user id; the bucket must exist before
// the account row is committed.
package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// BucketProvisioner defines the interface for bucket lifecycle operations.
type BucketProvisioner interface {
	CreateBucket(ctx context.Context, ownerID string) error
	ReleaseBucket(ctx context.Context, ownerID string) error
}

// Client calls the provisioning service over HTTP with a hard per-call
// timeout. A timeout is reported like any other provisioning failure.
type Client struct {
	baseURL string
	http    *http.Client
}

// Ensure Client implements BucketProvisioner
var _ BucketProvisioner = (*Client)(nil)

// NewClient creates a provisioning client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type bucketRequest struct {
	OwnerID string `json:"owner_id"`
}

// CreateBucket reserves storage for ownerID.
func (c *Client) CreateBucket(ctx context.Context, ownerID string) error {
	return c.post(ctx, "/create-bucket", bucketRequest{OwnerID: ownerID})
}

// ReleaseBucket deletes the reservation created for ownerID. Used as the
// compensating action when account creation fails after the bucket exists.
func (c *Client) ReleaseBucket(ctx context.Context, ownerID string) error {
	return c.post(ctx, "/delete-bucket", bucketRequest{OwnerID: ownerID})
}

func (c *Client) post(ctx context.Context, path string, body bucketRequest) error {
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
		return fmt.Errorf("call provisioner: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("provisioner %s returned status %d", path, resp.StatusCode)
	}
	return nil
}
