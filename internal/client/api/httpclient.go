package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ktb-chat/chatclient/internal/httpx"
)

const negotiateTimeout = 12 * time.Second

// HTTPClient implements API over the backend's JSON REST interface.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: negotiateTimeout},
	}
}

type uploadResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	PresignedURL string `json:"presignedUrl"`
}

func (c *HTTPClient) NegotiateUpload(ctx context.Context, req *UploadRequest) (*UploadGrant, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding upload request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/files/upload", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpx.ErrorFromResponse(resp)
	}

	var payload uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}

	if !payload.Success {
		return nil, &RejectedError{Message: payload.Message}
	}
	if payload.PresignedURL == "" {
		return nil, &RejectedError{Message: payload.Message}
	}

	return &UploadGrant{PresignedURL: payload.PresignedURL}, nil
}
