package provision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientCreateBucket(t *testing.T) {
	var gotPath string
	var gotOwner string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body bucketRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotOwner = body.OwnerID
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	err := client.CreateBucket(context.Background(), "owner-1")

	assert.NoError(t, err)
	assert.Equal(t, "/create-bucket", gotPath)
	assert.Equal(t, "owner-1", gotOwner)
}

func TestClientReleaseBucket(t *testing.T) {
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	err := client.ReleaseBucket(context.Background(), "owner-1")

	assert.NoError(t, err)
	assert.Equal(t, "/delete-bucket", gotPath)
}

func TestClientNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	err := client.CreateBucket(context.Background(), "owner-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 20*time.Millisecond)
	err := client.CreateBucket(context.Background(), "owner-1")

	assert.Error(t, err)
}

func TestClientUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond)
	err := client.CreateBucket(context.Background(), "owner-1")
	assert.Error(t, err)
}
