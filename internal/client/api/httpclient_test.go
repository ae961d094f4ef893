package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktb-chat/chatclient/internal/httpx"
)

func TestNegotiateUpload_Success(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody UploadRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"success":      true,
			"presignedUrl": "https://bucket.example/put-here",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	grant, err := c.NegotiateUpload(context.Background(), &UploadRequest{
		FileKey:  "k-photo.jpg",
		FileName: "photo.jpg",
		FileSize: 123,
		MimeType: "image/jpeg",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/put-here", grant.PresignedURL)

	assert.Equal(t, "/api/files/upload", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "k-photo.jpg", gotBody.FileKey)
	assert.Equal(t, "photo.jpg", gotBody.FileName)
	assert.Equal(t, int64(123), gotBody.FileSize)
	assert.Equal(t, "image/jpeg", gotBody.MimeType)
}

func TestNegotiateUpload_RejectedCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "quota exceeded"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.NegotiateUpload(context.Background(), &UploadRequest{FileKey: "k"})

	var rej *RejectedError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, "quota exceeded", rej.Message)
}

func TestNegotiateUpload_SuccessWithoutURLIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.NegotiateUpload(context.Background(), &UploadRequest{FileKey: "k"})

	var rej *RejectedError
	assert.True(t, errors.As(err, &rej))
}

func TestNegotiateUpload_HTTPFailureBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"message": "token expired"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.NegotiateUpload(context.Background(), &UploadRequest{FileKey: "k"})

	var se *httpx.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "token expired", se.Message)
}
