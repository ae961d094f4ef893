// Package api talks to the chat backend's REST endpoints. Its only job in
// this client is negotiating presigned upload URLs; the file bytes themselves
// never pass through the backend.
package api

import (
	"context"
	"fmt"
)

// API is the backend surface the transfer client depends on.
type API interface {
	// NegotiateUpload registers the upcoming upload and returns a grant with
	// the presigned PUT URL. A backend answer of success=false comes back as
	// a *RejectedError carrying the server message.
	NegotiateUpload(ctx context.Context, req *UploadRequest) (*UploadGrant, error)
}

// UploadRequest describes the file about to be uploaded. The object key is
// generated client-side and sent along so the backend can presign it.
type UploadRequest struct {
	FileKey  string `json:"fileKey"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
}

// UploadGrant is a successful negotiation result.
type UploadGrant struct {
	PresignedURL string
}

// RejectedError means the backend answered the negotiation with
// success=false. Message is the server-supplied text, possibly empty.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("upload negotiation rejected: %s", e.Message)
}
